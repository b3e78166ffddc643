package models

import (
	"time"

	"github.com/julianstephens/aidant/internal/constants"
)

type Address struct {
	Rue        string `json:"rue"`
	CodePostal string `json:"codePostal" validate:"omitempty,numeric,len=5"`
	Ville      string `json:"ville"`
}

type EmergencyContact struct {
	Nom       string `json:"nom"`
	Lien      string `json:"lien"`
	Telephone string `json:"telephone"`
}

// ContractTerms holds the financial terms agreed with a care recipient.
type ContractTerms struct {
	TauxHoraireNet float64 `json:"tauxHoraireNet" validate:"gte=0"` // €/h net
	IndemniteKm    float64 `json:"indemniteKm" validate:"gte=0"`    // €/km
	KmParVisite    float64 `json:"kmParVisite" validate:"gte=0"`
	DateDebut      string  `json:"dateDebut" validate:"omitempty,date"` // YYYY-MM-DD
	NumeroCesu     string  `json:"numeroCesu,omitempty"`
}

type HealthNotes struct {
	Pathologies string `json:"pathologies"`
	Traitements string `json:"traitements"`
	Allergies   string `json:"allergies"`
	Mobilite    string `json:"mobilite"`
	Remarques   string `json:"remarques"`
}

// WeeklySlot is a recurring weekly time range, e.g. every lundi 09:00-12:00.
type WeeklySlot struct {
	Jour       constants.Weekday `json:"jour" validate:"required,jour"`
	HeureDebut string            `json:"heureDebut" validate:"required,hhmm"`
	HeureFin   string            `json:"heureFin" validate:"required,hhmm"`
}

type Beneficiary struct {
	ID                int64                       `json:"id"`
	Civilite          string                      `json:"civilite" validate:"omitempty,oneof=M. Mme"`
	Prenom            string                      `json:"prenom" validate:"required"`
	Nom               string                      `json:"nom" validate:"required"`
	DateNaissance     string                      `json:"dateNaissance,omitempty" validate:"omitempty,date"`
	Adresse           Address                     `json:"adresse"`
	Telephone         string                      `json:"telephone"`
	NotesAcces        string                      `json:"notesAcces"`
	ContactUrgence    EmergencyContact            `json:"contactUrgence"`
	Contrat           ContractTerms               `json:"contrat"`
	Sante             HealthNotes                 `json:"sante"`
	CreneauxHabituels []WeeklySlot                `json:"creneauxHabituels" validate:"dive"`
	Statut            constants.BeneficiaryStatus `json:"statut" validate:"required,oneof=actif pause termine"`
	CreatedAt         time.Time                   `json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`
}

// FullName returns "Prenom Nom".
func (b Beneficiary) FullName() string {
	if b.Prenom == "" {
		return b.Nom
	}
	if b.Nom == "" {
		return b.Prenom
	}
	return b.Prenom + " " + b.Nom
}

// IsActive reports whether the beneficiary is currently followed.
func (b Beneficiary) IsActive() bool {
	return b.Statut == constants.StatusActif
}
