package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/aidant/internal/constants"
)

// RatingField names one of the five assessments of a transmission.
type RatingField string

const (
	RatingHumeur   RatingField = "humeur"
	RatingAppetit  RatingField = "appetit"
	RatingSommeil  RatingField = "sommeil"
	RatingMobilite RatingField = "mobilite"
	RatingHygiene  RatingField = "hygiene"
)

// RatingFields lists the assessments in display order.
var RatingFields = []RatingField{RatingHumeur, RatingAppetit, RatingSommeil, RatingMobilite, RatingHygiene}

// Transmission is a care-log entry written after a visit.
type Transmission struct {
	ID              int64             `json:"id"`
	BeneficiaireID  int64             `json:"beneficiaireId" validate:"required"`
	Date            string            `json:"date" validate:"required,date"`
	Heure           string            `json:"heure" validate:"omitempty,hhmm"`
	Humeur          *constants.Rating `json:"humeur" validate:"omitempty,oneof=bien moyen mauvais"`
	Appetit         *constants.Rating `json:"appetit" validate:"omitempty,oneof=bien moyen mauvais"`
	Sommeil         *constants.Rating `json:"sommeil" validate:"omitempty,oneof=bien moyen mauvais"`
	Mobilite        *constants.Rating `json:"mobilite" validate:"omitempty,oneof=bien moyen mauvais"`
	Hygiene         *constants.Rating `json:"hygiene" validate:"omitempty,oneof=bien moyen mauvais"`
	TachesRealisees []string          `json:"tachesRealisees"`
	Observations    string            `json:"observations"`
	Incidents       string            `json:"incidents"`
	MessageFamille  string            `json:"messageFamille"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// ParseRatingField maps a user-supplied name to a RatingField.
func ParseRatingField(s string) (RatingField, error) {
	for _, f := range RatingFields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("critère inconnu %q (attendu : humeur, appetit, sommeil, mobilite, hygiene)", s)
}

// Rating returns a pointer to the rating slot for field, or nil for an unknown field.
func (t *Transmission) Rating(field RatingField) **constants.Rating {
	switch field {
	case RatingHumeur:
		return &t.Humeur
	case RatingAppetit:
		return &t.Appetit
	case RatingSommeil:
		return &t.Sommeil
	case RatingMobilite:
		return &t.Mobilite
	case RatingHygiene:
		return &t.Hygiene
	}
	return nil
}

// NextRating advances a rating along unset -> bien -> moyen -> mauvais -> unset.
func NextRating(r *constants.Rating) *constants.Rating {
	next := func(v constants.Rating) *constants.Rating { return &v }
	if r == nil {
		return next(constants.RatingBien)
	}
	switch *r {
	case constants.RatingBien:
		return next(constants.RatingMoyen)
	case constants.RatingMoyen:
		return next(constants.RatingMauvais)
	default:
		return nil
	}
}

// FormatRating renders a nullable rating for display.
func FormatRating(r *constants.Rating) string {
	if r == nil {
		return "-"
	}
	return string(*r)
}
