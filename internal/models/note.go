package models

import (
	"time"

	"github.com/julianstephens/aidant/internal/constants"
)

type Note struct {
	ID             int64                    `json:"id"`
	BeneficiaireID int64                    `json:"beneficiaireId" validate:"required"`
	Date           string                   `json:"date" validate:"required,date"`
	Categorie      constants.NoteCategory   `json:"categorie" validate:"required,oneof=sante comportement famille administratif"`
	Contenu        string                   `json:"contenu" validate:"required"`
	Importance     constants.NoteImportance `json:"importance" validate:"required,oneof=normale importante urgente"`
	CreatedAt      time.Time                `json:"createdAt"`
}
