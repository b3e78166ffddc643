package validation

import (
	"errors"
	"testing"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
)

func TestStruct_Beneficiary(t *testing.T) {
	valid := models.Beneficiary{
		Prenom:  "Jeanne",
		Nom:     "Martin",
		Adresse: models.Address{CodePostal: "69003"},
		CreneauxHabituels: []models.WeeklySlot{
			{Jour: "lundi", HeureDebut: "09:00", HeureFin: "12:00"},
		},
		Statut: constants.StatusActif,
	}
	if err := Struct(valid); err != nil {
		t.Fatalf("Struct(valid) error = %v", err)
	}

	invalid := valid
	invalid.Prenom = ""
	invalid.Adresse.CodePostal = "690"
	invalid.DateNaissance = "12/05/1938"
	invalid.CreneauxHabituels = []models.WeeklySlot{{Jour: "monday", HeureDebut: "9h", HeureFin: "12:00"}}

	err := Struct(invalid)
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("Struct(invalid) error = %v, want FieldErrors", err)
	}

	tests := []struct {
		field string
		want  string
	}{
		{"prenom", "prenom est obligatoire"},
		{"dateNaissance", "dateNaissance doit être une date au format AAAA-MM-JJ"},
		{"creneauxHabituels[0].jour", "jour doit être un jour de la semaine (lundi ... dimanche)"},
		{"creneauxHabituels[0].heureDebut", "heureDebut doit être une heure au format HH:MM"},
	}
	for _, tt := range tests {
		got, ok := fe.Get(tt.field)
		if !ok {
			t.Errorf("missing error for %s in %v", tt.field, fe)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.field, got, tt.want)
		}
	}
	if _, ok := fe.Get("adresse.codePostal"); !ok {
		t.Errorf("missing error for adresse.codePostal in %v", fe)
	}
}

func TestVar(t *testing.T) {
	if err := Var("email", "marie@example.fr", "required,email"); err != nil {
		t.Errorf("Var(valid email) error = %v", err)
	}
	err := Var("email", "pas-un-email", "required,email")
	var fe FieldErrors
	if !errors.As(err, &fe) || len(fe) != 1 || fe[0].Field != "email" {
		t.Errorf("Var(invalid email) error = %v", err)
	}
}

func TestValidateSlot(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    string
	}{
		{"valid", "09:00", "12:00", ""},
		{"end before start", "12:00", "09:00", "l'heure de fin doit être après l'heure de début"},
		{"empty range", "09:00", "09:00", "l'heure de fin doit être après l'heure de début"},
		{"bad start", "9h", "12:00", `heure de début invalide "9h" (format HH:MM)`},
		{"unpadded start", "9:30", "10:00", `heure de début invalide "9:30" (format HH:MM)`},
		{"bad end", "09:00", "24:00", `heure de fin invalide "24:00" (format HH:MM)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlot(tt.start, tt.end)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("got %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeSlot(t *testing.T) {
	tests := []struct {
		name               string
		start, end         string
		wantStart, wantEnd string
		wantErr            bool
	}{
		{name: "padded", start: "09:00", end: "12:00", wantStart: "09:00", wantEnd: "12:00"},
		{name: "unpadded", start: "9:30", end: "10:00", wantStart: "09:30", wantEnd: "10:00"},
		{name: "reversed after padding", start: "10:00", end: "9:00", wantErr: true},
		{name: "bad end", start: "09:00", end: "midi", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := NormalizeSlot(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeSlot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("NormalizeSlot() = %q, %q; want %q, %q", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
