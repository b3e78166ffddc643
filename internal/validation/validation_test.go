package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
)

func countType(result ValidationResult, ct constants.ConflictType) int {
	n := 0
	for _, c := range result.Conflicts {
		if c.Type == ct {
			n++
		}
	}
	return n
}

func TestValidateSchedule_OverlapWithinBeneficiary(t *testing.T) {
	validator := New()

	beneficiaries := []models.Beneficiary{
		{ID: 1, Prenom: "Jeanne", Nom: "Martin", Statut: constants.StatusActif, CreneauxHabituels: []models.WeeklySlot{
			{Jour: "lundi", HeureDebut: "09:00", HeureFin: "12:00"},
			{Jour: "lundi", HeureDebut: "11:00", HeureFin: "13:00"},
			{Jour: "mardi", HeureDebut: "11:00", HeureFin: "13:00"},
		}},
	}

	result := validator.ValidateSchedule(beneficiaries)
	if got := countType(result, constants.ConflictOverlappingSlots); got != 1 {
		t.Errorf("Expected 1 overlapping slot conflict, got %d: %s", got, result.FormatReport())
	}
}

func TestValidateSchedule_DoubleBooking(t *testing.T) {
	validator := New()

	beneficiaries := []models.Beneficiary{
		{ID: 1, Prenom: "Jeanne", Nom: "Martin", Statut: constants.StatusActif, CreneauxHabituels: []models.WeeklySlot{
			{Jour: "lundi", HeureDebut: "09:00", HeureFin: "12:00"},
		}},
		{ID: 2, Prenom: "Henri", Nom: "Dubois", Statut: constants.StatusActif, CreneauxHabituels: []models.WeeklySlot{
			{Jour: "lundi", HeureDebut: "11:30", HeureFin: "13:00"},
			{Jour: "lundi", HeureDebut: "12:00", HeureFin: "12:30"}, // touches Jeanne's end, no overlap
		}},
		{ID: 3, Prenom: "Ana", Nom: "Lopez", Statut: constants.StatusPause, CreneauxHabituels: []models.WeeklySlot{
			{Jour: "lundi", HeureDebut: "09:00", HeureFin: "10:00"},
		}},
	}

	result := validator.ValidateSchedule(beneficiaries)
	if got := countType(result, constants.ConflictDoubleBooking); got != 1 {
		t.Fatalf("Expected 1 double booking, got %d: %s", got, result.FormatReport())
	}
	// Henri's own two slots overlap as well
	if got := countType(result, constants.ConflictOverlappingSlots); got != 1 {
		t.Errorf("Expected 1 overlapping slot conflict, got %d", got)
	}
	for _, c := range result.Conflicts {
		if c.Type == constants.ConflictDoubleBooking && (c.Items[0] != "Jeanne Martin" || c.Items[1] != "Henri Dubois") {
			t.Errorf("Unexpected items %v", c.Items)
		}
	}
}

func TestValidateSchedule_InvalidSlots(t *testing.T) {
	validator := New()

	beneficiaries := []models.Beneficiary{
		{ID: 1, Prenom: "Jeanne", Nom: "Martin", Statut: constants.StatusActif, CreneauxHabituels: []models.WeeklySlot{
			{Jour: "monday", HeureDebut: "09:00", HeureFin: "12:00"},
			{Jour: "mardi", HeureDebut: "12:00", HeureFin: "09:00"},
			{Jour: "mercredi", HeureDebut: "25:00", HeureFin: "26:00"},
		}},
	}

	result := validator.ValidateSchedule(beneficiaries)
	if got := countType(result, constants.ConflictInvalidWeekday); got != 1 {
		t.Errorf("Expected 1 invalid weekday conflict, got %d", got)
	}
	if got := countType(result, constants.ConflictInvalidTime); got != 2 {
		t.Errorf("Expected 2 invalid time conflicts, got %d", got)
	}
}

func TestValidateInterventions(t *testing.T) {
	validator := New()

	beneficiaries := []models.Beneficiary{
		{ID: 1, Prenom: "Jeanne", Nom: "Martin"},
		{ID: 2, Prenom: "Henri", Nom: "Dubois"},
	}
	interventions := []models.Intervention{
		{ID: 10, BeneficiaireID: 1, Date: "2024-04-15", HeureDebut: "09:00", HeureFin: "12:00", Statut: constants.InterventionPlanifie},
		{ID: 11, BeneficiaireID: 2, Date: "2024-04-15", HeureDebut: "10:00", HeureFin: "11:00", Statut: constants.InterventionPlanifie},
		{ID: 12, BeneficiaireID: 2, Date: "2024-04-15", HeureDebut: "09:30", HeureFin: "10:30", Statut: constants.InterventionAnnule},
		{ID: 13, BeneficiaireID: 2, Date: "2024-04-16", HeureDebut: "10:00", HeureFin: "11:00", Statut: constants.InterventionPlanifie},
		{ID: 14, BeneficiaireID: 1, Date: "2024-04-17", HeureDebut: "11:00", HeureFin: "10:00", Statut: constants.InterventionPlanifie},
	}

	result := validator.ValidateInterventions(interventions, beneficiaries)
	if got := countType(result, constants.ConflictInterventionClash); got != 1 {
		t.Errorf("Expected 1 clash, got %d: %s", got, result.FormatReport())
	}
	if got := countType(result, constants.ConflictInvalidTime); got != 1 {
		t.Errorf("Expected 1 invalid time, got %d", got)
	}
	if !strings.Contains(result.FormatReport(), "15/04/2024") {
		t.Errorf("Report should use display dates:\n%s", result.FormatReport())
	}
}

func TestFormatReport_NoConflicts(t *testing.T) {
	result := New().ValidateSchedule(nil)
	if result.HasConflicts() {
		t.Fatal("Expected no conflicts for an empty planning")
	}
	if result.FormatReport() != "Aucun conflit détecté." {
		t.Errorf("Unexpected report %q", result.FormatReport())
	}
}

func TestTimesOverlap(t *testing.T) {
	tests := []struct {
		s1, e1, s2, e2 string
		want           bool
	}{
		{"09:00", "10:00", "09:30", "10:30", true},
		{"09:00", "10:00", "10:00", "11:00", false},
		{"09:00", "12:00", "10:00", "11:00", true},
		{"bad", "10:00", "09:00", "11:00", false},
	}
	for _, tt := range tests {
		if got := timesOverlap(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
			t.Errorf("timesOverlap(%s-%s, %s-%s) = %v, want %v", tt.s1, tt.e1, tt.s2, tt.e2, got, tt.want)
		}
	}
}
