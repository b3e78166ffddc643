package models

import (
	"time"

	"github.com/julianstephens/aidant/internal/constants"
)

// Intervention is a dated visit with a lifecycle status.
type Intervention struct {
	ID             int64                        `json:"id"`
	BeneficiaireID int64                        `json:"beneficiaireId" validate:"required"`
	Date           string                       `json:"date" validate:"required,date"`       // YYYY-MM-DD
	HeureDebut     string                       `json:"heureDebut" validate:"required,hhmm"` // HH:MM
	HeureFin       string                       `json:"heureFin" validate:"required,hhmm"`   // HH:MM
	Type           string                       `json:"type"`
	Notes          string                       `json:"notes"`
	Statut         constants.InterventionStatus `json:"statut" validate:"required,oneof=planifie effectue annule"`
	CreatedAt      time.Time                    `json:"createdAt"`
}

// Creneau is a planned time slot without status tracking.
type Creneau struct {
	ID             int64     `json:"id"`
	BeneficiaireID int64     `json:"beneficiaireId" validate:"required"`
	Date           string    `json:"date" validate:"required,date"`
	HeureDebut     string    `json:"heureDebut" validate:"required,hhmm"`
	HeureFin       string    `json:"heureFin" validate:"required,hhmm"`
	Type           string    `json:"type"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TimeRange is implemented by anything that spans a start and an end time of day.
type TimeRange interface {
	Start() string
	End() string
}

func (s WeeklySlot) Start() string   { return s.HeureDebut }
func (s WeeklySlot) End() string     { return s.HeureFin }
func (i Intervention) Start() string { return i.HeureDebut }
func (i Intervention) End() string   { return i.HeureFin }
func (c Creneau) Start() string      { return c.HeureDebut }
func (c Creneau) End() string        { return c.HeureFin }
