package utils

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
)

// ErrInvalidTimeRange is returned when a slot's end is not after its start.
var ErrInvalidTimeRange = errors.New("l'heure de fin doit être après l'heure de début")

// DurationMinutes returns the number of minutes between two HH:MM times of the same day.
// It returns 0 and ErrInvalidTimeRange when end is not strictly after start.
func DurationMinutes(start, end string) (int, error) {
	s, err := ParseTimeToMinutes(start)
	if err != nil {
		return 0, fmt.Errorf("heure de début invalide %q: %w", start, err)
	}
	e, err := ParseTimeToMinutes(end)
	if err != nil {
		return 0, fmt.Errorf("heure de fin invalide %q: %w", end, err)
	}
	if e <= s {
		return 0, ErrInvalidTimeRange
	}
	return e - s, nil
}

// SlotMinutes is DurationMinutes for anything with a start and an end.
// Invalid ranges count as zero.
func SlotMinutes(r models.TimeRange) int {
	m, err := DurationMinutes(r.Start(), r.End())
	if err != nil {
		return 0
	}
	return m
}

// WeeklyMinutes sums the duration of every slot. Invalid slots count as zero.
func WeeklyMinutes[T models.TimeRange](slots []T) int {
	total := 0
	for _, s := range slots {
		total += SlotMinutes(s)
	}
	return total
}

// WeeklyHours is WeeklyMinutes expressed in hours.
func WeeklyHours[T models.TimeRange](slots []T) float64 {
	return float64(WeeklyMinutes(slots)) / 60
}

// WeeklyRevenue is the net amount earned for one week of slots at the given hourly rate.
func WeeklyRevenue[T models.TimeRange](slots []T, hourlyRate float64) float64 {
	return Round2(WeeklyHours(slots) * hourlyRate)
}

// MonthlyRevenue extrapolates the weekly hours with a fixed weeks-per-month multiplier,
// rounding once at the end.
// A non-positive multiplier falls back to the default of 4.
func MonthlyRevenue[T models.TimeRange](slots []T, hourlyRate, weeksPerMonth float64) float64 {
	return Round2(WeeklyHours(slots) * hourlyRate * normalizeWeeks(weeksPerMonth))
}

// DaysInMonth returns the number of days of the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthElapsedPercent returns dayOfMonth / daysInMonth * 100 for t.
func MonthElapsedPercent(t time.Time) float64 {
	return float64(t.Day()) / float64(DaysInMonth(t.Year(), t.Month())) * 100
}

// Round2 rounds to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func normalizeWeeks(weeksPerMonth float64) float64 {
	if weeksPerMonth <= 0 {
		return constants.DefaultWeeksPerMonth
	}
	return weeksPerMonth
}

// Estimate is the projected weekly and monthly workload for one care recipient.
type Estimate struct {
	HeuresSemaine     float64
	HeuresMois        float64
	RevenuSemaine     float64
	RevenuMois        float64
	VisitesSemaine    int
	KmSemaine         float64
	IndemnitesSemaine float64
	IndemnitesMois    float64
	TotalMois         float64
}

// EstimateBeneficiary projects hours, wages and mileage from a beneficiary's recurring slots.
func EstimateBeneficiary(b models.Beneficiary, weeksPerMonth float64) Estimate {
	weeks := normalizeWeeks(weeksPerMonth)
	slots := b.CreneauxHabituels

	visits := 0
	for _, s := range slots {
		if SlotMinutes(s) > 0 {
			visits++
		}
	}

	hours := WeeklyHours(slots)
	km := float64(visits) * b.Contrat.KmParVisite
	allowance := km * b.Contrat.IndemniteKm

	e := Estimate{
		HeuresSemaine:     Round2(hours),
		HeuresMois:        Round2(hours * weeks),
		RevenuSemaine:     WeeklyRevenue(slots, b.Contrat.TauxHoraireNet),
		RevenuMois:        MonthlyRevenue(slots, b.Contrat.TauxHoraireNet, weeks),
		VisitesSemaine:    visits,
		KmSemaine:         Round2(km),
		IndemnitesSemaine: Round2(allowance),
		IndemnitesMois:    Round2(allowance * weeks),
	}
	e.TotalMois = Round2(e.RevenuMois + e.IndemnitesMois)
	return e
}

// Summary aggregates the dashboard figures.
type Summary struct {
	BeneficiairesActifs   int
	HeuresSemaine         float64
	RevenuSemaine         float64
	RevenuMoisEstime      float64
	IndemnitesMois        float64
	InterventionsMois     int
	HeuresRealiseesMois   float64
	RevenuRealiseMois     float64
	MoisEcoulePourcent    float64
	ProgressionObjectif   float64 // realised / estimated revenue, in percent
	InterventionsAVenir   int
	InterventionsAnnulees int
}

// Summarize computes the dashboard over active beneficiaries and this month's interventions.
// Realised figures only count interventions marked effectue, paid at their beneficiary's rate.
func Summarize(beneficiaries []models.Beneficiary, interventions []models.Intervention, now time.Time, weeksPerMonth float64) Summary {
	var s Summary
	rates := make(map[int64]float64, len(beneficiaries))
	for _, b := range beneficiaries {
		rates[b.ID] = b.Contrat.TauxHoraireNet
		if !b.IsActive() {
			continue
		}
		e := EstimateBeneficiary(b, weeksPerMonth)
		s.BeneficiairesActifs++
		s.HeuresSemaine += e.HeuresSemaine
		s.RevenuSemaine += e.RevenuSemaine
		s.RevenuMoisEstime += e.RevenuMois
		s.IndemnitesMois += e.IndemnitesMois
	}

	month := now.Format("2006-01")
	today := now.Format(constants.DateFormat)
	realisedMinutes := 0
	for _, i := range interventions {
		if len(i.Date) < 7 || i.Date[:7] != month {
			continue
		}
		s.InterventionsMois++
		switch i.Statut {
		case constants.InterventionEffectue:
			m := SlotMinutes(i)
			realisedMinutes += m
			s.RevenuRealiseMois += float64(m) / 60 * rates[i.BeneficiaireID]
		case constants.InterventionAnnule:
			s.InterventionsAnnulees++
		case constants.InterventionPlanifie:
			if i.Date >= today {
				s.InterventionsAVenir++
			}
		}
	}

	s.HeuresSemaine = Round2(s.HeuresSemaine)
	s.RevenuSemaine = Round2(s.RevenuSemaine)
	s.RevenuMoisEstime = Round2(s.RevenuMoisEstime)
	s.IndemnitesMois = Round2(s.IndemnitesMois)
	s.HeuresRealiseesMois = Round2(float64(realisedMinutes) / 60)
	s.RevenuRealiseMois = Round2(s.RevenuRealiseMois)
	s.MoisEcoulePourcent = Round2(MonthElapsedPercent(now))
	if s.RevenuMoisEstime > 0 {
		s.ProgressionObjectif = Round2(s.RevenuRealiseMois / s.RevenuMoisEstime * 100)
	}
	return s
}

// FormatMinutes renders a duration as "3h" or "2h30".
func FormatMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02d", h, m)
}

// FormatEuros renders an amount with two decimals and a comma separator, e.g. "180,00 €".
func FormatEuros(v float64, currency string) string {
	if currency == "" {
		currency = constants.DefaultCurrency
	}
	s := fmt.Sprintf("%.2f", v)
	out := []byte(s)
	for i, c := range out {
		if c == '.' {
			out[i] = ','
		}
	}
	return string(out) + " " + currency
}
