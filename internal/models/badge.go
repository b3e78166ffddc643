package models

import "time"

type Badge struct {
	ID          string     `json:"id"`
	Nom         string     `json:"nom"`
	Description string     `json:"description"`
	Icone       string     `json:"icone"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}
