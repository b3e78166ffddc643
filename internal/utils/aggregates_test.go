package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
)

func TestDurationMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		want    int
		wantErr error
	}{
		{"morning slot", "09:00", "12:00", 180, nil},
		{"with minutes", "08:15", "10:45", 150, nil},
		{"one minute", "10:00", "10:01", 1, nil},
		{"equal times", "10:00", "10:00", 0, ErrInvalidTimeRange},
		{"end before start", "14:00", "09:00", 0, ErrInvalidTimeRange},
		{"overnight is invalid", "22:00", "02:00", 0, ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DurationMinutes(tt.start, tt.end)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DurationMinutes() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DurationMinutes(%s, %s) = %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestDurationMinutes_ParseError(t *testing.T) {
	for _, tc := range [][2]string{{"9h", "12:00"}, {"09:00", "25:00"}, {"", ""}} {
		got, err := DurationMinutes(tc[0], tc[1])
		if err == nil {
			t.Errorf("DurationMinutes(%q, %q) expected error", tc[0], tc[1])
		}
		if errors.Is(err, ErrInvalidTimeRange) {
			t.Errorf("DurationMinutes(%q, %q) should be a parse error, got %v", tc[0], tc[1], err)
		}
		if got != 0 {
			t.Errorf("DurationMinutes(%q, %q) = %d, want 0", tc[0], tc[1], got)
		}
	}
}

func fiveMornings() []models.WeeklySlot {
	var slots []models.WeeklySlot
	for _, d := range constants.Weekdays[:5] {
		slots = append(slots, models.WeeklySlot{Jour: d, HeureDebut: "09:00", HeureFin: "12:00"})
	}
	return slots
}

func TestRevenue(t *testing.T) {
	slots := fiveMornings()

	if got := WeeklyMinutes(slots); got != 900 {
		t.Errorf("WeeklyMinutes() = %d, want 900", got)
	}
	if got := WeeklyHours(slots); got != 15 {
		t.Errorf("WeeklyHours() = %v, want 15", got)
	}
	if got := WeeklyRevenue(slots, 12); got != 180 {
		t.Errorf("WeeklyRevenue() = %v, want 180", got)
	}
	if got := MonthlyRevenue(slots, 12, 4); got != 720 {
		t.Errorf("MonthlyRevenue() = %v, want 720", got)
	}
	if got := MonthlyRevenue(slots, 12, 0); got != 720 {
		t.Errorf("MonthlyRevenue() with default weeks = %v, want 720", got)
	}
}

func TestWeeklyMinutes_SkipsInvalidSlots(t *testing.T) {
	slots := []models.WeeklySlot{
		{Jour: "lundi", HeureDebut: "09:00", HeureFin: "10:30"},
		{Jour: "mardi", HeureDebut: "12:00", HeureFin: "11:00"},
		{Jour: "mercredi", HeureDebut: "bad", HeureFin: "11:00"},
	}
	if got := WeeklyMinutes(slots); got != 90 {
		t.Errorf("WeeklyMinutes() = %d, want 90", got)
	}
	if got := WeeklyMinutes([]models.WeeklySlot{}); got != 0 {
		t.Errorf("WeeklyMinutes(empty) = %d, want 0", got)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestMonthElapsedPercent(t *testing.T) {
	tests := []struct {
		date string
		want float64
	}{
		{"2024-04-15", 50},
		{"2024-04-30", 100},
		{"2024-02-29", 100},
		{"2023-02-07", 25},
	}
	for _, tt := range tests {
		d, _ := ParseDate(tt.date)
		if got := MonthElapsedPercent(d); got != tt.want {
			t.Errorf("MonthElapsedPercent(%s) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestEstimateBeneficiary(t *testing.T) {
	b := models.Beneficiary{
		Statut:            constants.StatusActif,
		CreneauxHabituels: fiveMornings(),
		Contrat:           models.ContractTerms{TauxHoraireNet: 12, IndemniteKm: 0.5, KmParVisite: 4},
	}

	e := EstimateBeneficiary(b, 4)
	if e.HeuresSemaine != 15 || e.HeuresMois != 60 {
		t.Errorf("hours = %v/%v, want 15/60", e.HeuresSemaine, e.HeuresMois)
	}
	if e.RevenuSemaine != 180 || e.RevenuMois != 720 {
		t.Errorf("revenue = %v/%v, want 180/720", e.RevenuSemaine, e.RevenuMois)
	}
	if e.VisitesSemaine != 5 || e.KmSemaine != 20 || e.IndemnitesSemaine != 10 || e.IndemnitesMois != 40 {
		t.Errorf("mileage = %+v", e)
	}
	if e.TotalMois != 760 {
		t.Errorf("TotalMois = %v, want 760", e.TotalMois)
	}
}

func TestEstimateBeneficiary_RoundsOnce(t *testing.T) {
	b := models.Beneficiary{
		Statut:            constants.StatusActif,
		CreneauxHabituels: []models.WeeklySlot{{Jour: "lundi", HeureDebut: "09:00", HeureFin: "09:20"}},
		Contrat:           models.ContractTerms{TauxHoraireNet: 10, IndemniteKm: 0.333, KmParVisite: 1},
	}

	e := EstimateBeneficiary(b, 4)
	got := []float64{e.HeuresSemaine, e.HeuresMois, e.RevenuSemaine, e.RevenuMois, e.IndemnitesSemaine, e.IndemnitesMois}
	want := []float64{0.33, 1.33, 3.33, 13.33, 0.33, 1.33}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("estimate mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, time.April, 15, 10, 0, 0, 0, time.UTC)
	beneficiaries := []models.Beneficiary{
		{ID: 1, Statut: constants.StatusActif, CreneauxHabituels: fiveMornings(), Contrat: models.ContractTerms{TauxHoraireNet: 12}},
		{ID: 2, Statut: constants.StatusPause, CreneauxHabituels: fiveMornings(), Contrat: models.ContractTerms{TauxHoraireNet: 20}},
	}
	interventions := []models.Intervention{
		{BeneficiaireID: 1, Date: "2024-04-02", HeureDebut: "09:00", HeureFin: "11:00", Statut: constants.InterventionEffectue},
		{BeneficiaireID: 2, Date: "2024-04-03", HeureDebut: "09:00", HeureFin: "10:00", Statut: constants.InterventionEffectue},
		{BeneficiaireID: 1, Date: "2024-04-04", HeureDebut: "09:00", HeureFin: "12:00", Statut: constants.InterventionAnnule},
		{BeneficiaireID: 1, Date: "2024-04-20", HeureDebut: "09:00", HeureFin: "12:00", Statut: constants.InterventionPlanifie},
		{BeneficiaireID: 1, Date: "2024-03-30", HeureDebut: "09:00", HeureFin: "12:00", Statut: constants.InterventionEffectue},
	}

	s := Summarize(beneficiaries, interventions, now, 4)
	if s.BeneficiairesActifs != 1 {
		t.Errorf("BeneficiairesActifs = %d, want 1", s.BeneficiairesActifs)
	}
	if s.RevenuMoisEstime != 720 {
		t.Errorf("RevenuMoisEstime = %v, want 720", s.RevenuMoisEstime)
	}
	if s.InterventionsMois != 4 || s.InterventionsAnnulees != 1 || s.InterventionsAVenir != 1 {
		t.Errorf("counts = %d/%d/%d, want 4/1/1", s.InterventionsMois, s.InterventionsAnnulees, s.InterventionsAVenir)
	}
	if s.HeuresRealiseesMois != 3 {
		t.Errorf("HeuresRealiseesMois = %v, want 3", s.HeuresRealiseesMois)
	}
	// 2h at 12 + 1h at 20
	if s.RevenuRealiseMois != 44 {
		t.Errorf("RevenuRealiseMois = %v, want 44", s.RevenuRealiseMois)
	}
	if s.MoisEcoulePourcent != 50 {
		t.Errorf("MoisEcoulePourcent = %v, want 50", s.MoisEcoulePourcent)
	}
}

func TestFormatters(t *testing.T) {
	if got := FormatMinutes(180); got != "3h" {
		t.Errorf("FormatMinutes(180) = %q", got)
	}
	if got := FormatMinutes(150); got != "2h30" {
		t.Errorf("FormatMinutes(150) = %q", got)
	}
	if got := FormatEuros(180, ""); got != "180,00 €" {
		t.Errorf("FormatEuros(180) = %q", got)
	}
}
