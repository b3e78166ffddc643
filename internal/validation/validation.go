package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/utils"
)

// Conflict represents a detected conflict in the planning
type Conflict struct {
	Type        constants.ConflictType
	Description string
	Jour        constants.Weekday // for weekly slots
	Date        string            // YYYY-MM-DD, for interventions
	Items       []string          // beneficiary names involved
	TimeRange   string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "Aucun conflit détecté."
	}

	var b strings.Builder
	b.WriteString("Conflits détectés :\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks the planning for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

type placedSlot struct {
	owner  int64
	name   string
	active bool
	slot   models.WeeklySlot
}

// ValidateSchedule checks the recurring weekly slots of every beneficiary.
// Overlaps inside one beneficiary's week are always reported; overlaps
// between two beneficiaries only when both are active.
func (v *Validator) ValidateSchedule(beneficiaries []models.Beneficiary) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	byDay := make(map[constants.Weekday][]placedSlot)
	for _, b := range beneficiaries {
		name := b.FullName()
		for _, slot := range b.CreneauxHabituels {
			if !utils.IsWeekday(string(slot.Jour)) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        constants.ConflictInvalidWeekday,
					Description: fmt.Sprintf("%s : jour inconnu %q", name, slot.Jour),
					Items:       []string{name},
				})
				continue
			}
			if err := ValidateSlot(slot.HeureDebut, slot.HeureFin); err != nil {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        constants.ConflictInvalidTime,
					Description: fmt.Sprintf("%s, %s %s-%s : %v", name, slot.Jour, slot.HeureDebut, slot.HeureFin, err),
					Jour:        slot.Jour,
					Items:       []string{name},
					TimeRange:   slot.HeureDebut + "-" + slot.HeureFin,
				})
				continue
			}
			byDay[slot.Jour] = append(byDay[slot.Jour], placedSlot{owner: b.ID, name: name, active: b.IsActive(), slot: slot})
		}
	}

	for _, day := range constants.Weekdays {
		slots := byDay[day]
		sort.SliceStable(slots, func(i, j int) bool {
			return slots[i].slot.HeureDebut < slots[j].slot.HeureDebut
		})

		// O(n²) per day; a caregiver's week holds a few dozen slots at most.
		for i := 0; i < len(slots); i++ {
			for j := i + 1; j < len(slots); j++ {
				s1, s2 := slots[i], slots[j]
				if !timesOverlap(s1.slot.HeureDebut, s1.slot.HeureFin, s2.slot.HeureDebut, s2.slot.HeureFin) {
					continue
				}
				switch {
				case s1.owner == s2.owner:
					result.Conflicts = append(result.Conflicts, Conflict{
						Type: constants.ConflictOverlappingSlots,
						Description: fmt.Sprintf("%s, %s : créneaux %s-%s et %s-%s se chevauchent",
							s1.name, day, s1.slot.HeureDebut, s1.slot.HeureFin, s2.slot.HeureDebut, s2.slot.HeureFin),
						Jour:      day,
						Items:     []string{s1.name},
						TimeRange: fmt.Sprintf("%s-%s", s1.slot.HeureDebut, s1.slot.HeureFin),
					})
				case s1.active && s2.active:
					result.Conflicts = append(result.Conflicts, Conflict{
						Type: constants.ConflictDoubleBooking,
						Description: fmt.Sprintf("%s : \"%s\" (%s-%s) et \"%s\" (%s-%s) en même temps",
							day, s1.name, s1.slot.HeureDebut, s1.slot.HeureFin, s2.name, s2.slot.HeureDebut, s2.slot.HeureFin),
						Jour:      day,
						Items:     []string{s1.name, s2.name},
						TimeRange: fmt.Sprintf("%s-%s", s1.slot.HeureDebut, s1.slot.HeureFin),
					})
				}
			}
		}
	}

	return result
}

// ValidateInterventions reports dated interventions that overlap on the same
// day. Cancelled interventions are ignored.
func (v *Validator) ValidateInterventions(interventions []models.Intervention, beneficiaries []models.Beneficiary) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	names := make(map[int64]string, len(beneficiaries))
	for _, b := range beneficiaries {
		names[b.ID] = b.FullName()
	}
	nameOf := func(id int64) string {
		if n, ok := names[id]; ok {
			return n
		}
		return fmt.Sprintf("#%d", id)
	}

	byDate := make(map[string][]models.Intervention)
	var dates []string
	for _, i := range interventions {
		if i.Statut == constants.InterventionAnnule {
			continue
		}
		if _, err := utils.DurationMinutes(i.HeureDebut, i.HeureFin); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        constants.ConflictInvalidTime,
				Description: fmt.Sprintf("%s, %s : horaire invalide %s-%s", utils.FormatDisplayDate(i.Date), nameOf(i.BeneficiaireID), i.HeureDebut, i.HeureFin),
				Date:        i.Date,
				Items:       []string{nameOf(i.BeneficiaireID)},
			})
			continue
		}
		if _, ok := byDate[i.Date]; !ok {
			dates = append(dates, i.Date)
		}
		byDate[i.Date] = append(byDate[i.Date], i)
	}
	sort.Strings(dates)

	for _, date := range dates {
		items := byDate[date]
		sort.SliceStable(items, func(a, b int) bool { return items[a].HeureDebut < items[b].HeureDebut })
		for a := 0; a < len(items); a++ {
			for b := a + 1; b < len(items); b++ {
				i1, i2 := items[a], items[b]
				if !timesOverlap(i1.HeureDebut, i1.HeureFin, i2.HeureDebut, i2.HeureFin) {
					continue
				}
				n1, n2 := nameOf(i1.BeneficiaireID), nameOf(i2.BeneficiaireID)
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: constants.ConflictInterventionClash,
					Description: fmt.Sprintf("%s : %s-%s \"%s\" chevauche \"%s\"",
						utils.FormatDisplayDate(date), i1.HeureDebut, i1.HeureFin, n1, n2),
					Date:      date,
					Items:     []string{n1, n2},
					TimeRange: fmt.Sprintf("%s-%s", i1.HeureDebut, i1.HeureFin),
				})
			}
		}
	}

	return result
}

// timesOverlap checks if two HH:MM ranges overlap. Touching ranges do not.
func timesOverlap(start1, end1, start2, end2 string) bool {
	s1, err := utils.ParseTimeToMinutes(start1)
	if err != nil {
		return false
	}
	e1, err := utils.ParseTimeToMinutes(end1)
	if err != nil {
		return false
	}
	s2, err := utils.ParseTimeToMinutes(start2)
	if err != nil {
		return false
	}
	e2, err := utils.ParseTimeToMinutes(end2)
	if err != nil {
		return false
	}
	return s1 < e2 && s2 < e1
}
