package store

import (
	"sort"
	"time"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/storage"
	"github.com/julianstephens/aidant/internal/utils"
)

type InterventionStore struct {
	r   *records[models.Intervention]
	now clock
}

func newInterventionStore(backend storage.Backend, ids *idGenerator, now clock) *InterventionStore {
	template := models.Intervention{Statut: constants.InterventionPlanifie}
	return &InterventionStore{
		r: newRecords(backend, constants.KeyInterventions, "intervention", ids, template,
			func(i *models.Intervention) *int64 { return &i.ID },
			func(i models.Intervention) models.Intervention { return i }),
		now: now,
	}
}

func (s *InterventionStore) Add(i models.Intervention) (models.Intervention, error) {
	return s.r.add(i, func(i *models.Intervention) {
		i.CreatedAt = s.now()
		if i.Statut == "" {
			i.Statut = constants.InterventionPlanifie
		}
	})
}

func (s *InterventionStore) Update(id int64, patch func(*models.Intervention)) (models.Intervention, error) {
	return s.r.update(id, func(i *models.Intervention) {
		created := i.CreatedAt
		patch(i)
		i.CreatedAt = created
	})
}

func (s *InterventionStore) SetStatus(id int64, status constants.InterventionStatus) (models.Intervention, error) {
	return s.Update(id, func(i *models.Intervention) { i.Statut = status })
}

func (s *InterventionStore) Delete(id int64) error {
	return s.r.remove(id)
}

func (s *InterventionStore) GetByID(id int64) (models.Intervention, bool) {
	return s.r.get(id)
}

// List returns every intervention sorted by date then start time.
func (s *InterventionStore) List() []models.Intervention {
	return sortInterventions(s.r.snapshot(nil))
}

func (s *InterventionStore) ByBeneficiary(id int64) []models.Intervention {
	return sortInterventions(s.r.snapshot(func(i models.Intervention) bool { return i.BeneficiaireID == id }))
}

func (s *InterventionStore) ByDate(date string) []models.Intervention {
	return sortInterventions(s.r.snapshot(func(i models.Intervention) bool { return i.Date == date }))
}

// Between returns interventions dated within [from, to], both YYYY-MM-DD.
func (s *InterventionStore) Between(from, to string) []models.Intervention {
	return sortInterventions(s.r.snapshot(func(i models.Intervention) bool {
		return i.Date >= from && i.Date <= to
	}))
}

// GenerateWeek materializes the recurring slots of every active beneficiary
// into planned interventions for the week starting on monday. Slots already
// present (same beneficiary, date and start time) are skipped.
func (s *InterventionStore) GenerateWeek(monday time.Time, beneficiaries []models.Beneficiary) ([]models.Intervention, error) {
	monday = utils.WeekStart(monday)
	from := monday.Format(constants.DateFormat)
	to := monday.AddDate(0, 0, 6).Format(constants.DateFormat)

	existing := make(map[slotRef]bool)
	for _, i := range s.Between(from, to) {
		existing[slotKey(i.BeneficiaireID, i.Date, i.HeureDebut)] = true
	}

	var batch []models.Intervention
	for _, b := range beneficiaries {
		if !b.IsActive() {
			continue
		}
		for _, slot := range b.CreneauxHabituels {
			if utils.SlotMinutes(slot) == 0 {
				continue
			}
			date, err := utils.DateForWeekday(monday, slot.Jour)
			if err != nil {
				continue
			}
			key := slotKey(b.ID, date, slot.HeureDebut)
			if existing[key] {
				continue
			}
			existing[key] = true
			batch = append(batch, models.Intervention{
				BeneficiaireID: b.ID,
				Date:           date,
				HeureDebut:     timeKey(slot.HeureDebut),
				HeureFin:       timeKey(slot.HeureFin),
				Type:           "habituel",
				Statut:         constants.InterventionPlanifie,
			})
		}
	}
	if len(batch) == 0 {
		return nil, nil
	}

	created := make([]models.Intervention, 0, len(batch))
	if _, err := s.r.addMany(batch, func(i *models.Intervention) {
		i.CreatedAt = s.now()
		created = append(created, *i)
	}); err != nil {
		return nil, err
	}
	return sortInterventions(created), nil
}

type slotRef struct {
	beneficiaryID int64
	date, start   string
}

func slotKey(beneficiaryID int64, date, start string) slotRef {
	return slotRef{beneficiaryID, date, timeKey(start)}
}

func sortInterventions(items []models.Intervention) []models.Intervention {
	sort.SliceStable(items, func(a, b int) bool {
		if items[a].Date != items[b].Date {
			return items[a].Date < items[b].Date
		}
		return timeKey(items[a].HeureDebut) < timeKey(items[b].HeureDebut)
	})
	return items
}
