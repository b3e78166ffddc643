package models

import "time"

type Diploma struct {
	Intitule  string `json:"intitule" validate:"required"`
	Annee     int    `json:"annee" validate:"omitempty,gte=1950,lte=2100"`
	Organisme string `json:"organisme"`
}

// Profile is the caregiver's own professional identity.
type Profile struct {
	Prenom             string       `json:"prenom" validate:"required"`
	Nom                string       `json:"nom" validate:"required"`
	Email              string       `json:"email" validate:"omitempty,email"`
	Telephone          string       `json:"telephone"`
	Adresse            Address      `json:"adresse"`
	DateNaissance      string       `json:"dateNaissance,omitempty" validate:"omitempty,date"`
	NumeroSiret        string       `json:"numeroSiret,omitempty" validate:"omitempty,numeric,len=14"`
	NumeroCesu         string       `json:"numeroCesu,omitempty"`
	Photo              string       `json:"photo,omitempty"` // data URI
	Diplomes           []Diploma    `json:"diplomes" validate:"dive"`
	ExperienceAnnees   int          `json:"experienceAnnees" validate:"gte=0"`
	Competences        []string     `json:"competences"`
	Disponibilites     []WeeklySlot `json:"disponibilites" validate:"dive"`
	ZoneIntervention   string       `json:"zoneIntervention"`
	TarifHoraireNet    float64      `json:"tarifHoraireNet" validate:"gte=0"`
	IndemniteKm        float64      `json:"indemniteKm" validate:"gte=0"`
	OnboardingComplete bool         `json:"onboardingComplete"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

func (p Profile) FullName() string {
	if p.Prenom == "" {
		return p.Nom
	}
	return p.Prenom + " " + p.Nom
}

// User is a locally registered account. PasswordHash is a bcrypt hash.
type User struct {
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"passwordHash"`
	Prenom       string    `json:"prenom"`
	Nom          string    `json:"nom"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is the persisted "logged-in" marker.
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Prenom    string    `json:"prenom"`
	Nom       string    `json:"nom"`
	StartedAt time.Time `json:"startedAt"`
}
