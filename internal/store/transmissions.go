package store

import (
	"fmt"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/storage"
)

type TransmissionStore struct {
	r   *records[models.Transmission]
	now clock
}

func newTransmissionStore(backend storage.Backend, ids *idGenerator, now clock) *TransmissionStore {
	template := models.Transmission{TachesRealisees: []string{}}
	return &TransmissionStore{
		r: newRecords(backend, constants.KeyTransmissions, "transmission", ids, template,
			func(t *models.Transmission) *int64 { return &t.ID }, cloneTransmission),
		now: now,
	}
}

func cloneTransmission(t models.Transmission) models.Transmission {
	t.TachesRealisees = cloneStrings(t.TachesRealisees)
	for _, f := range models.RatingFields {
		slot := t.Rating(f)
		if *slot != nil {
			v := **slot
			*slot = &v
		}
	}
	return t
}

func (s *TransmissionStore) Add(t models.Transmission) (models.Transmission, error) {
	return s.r.add(t, func(t *models.Transmission) {
		t.CreatedAt = s.now()
		if t.TachesRealisees == nil {
			t.TachesRealisees = []string{}
		}
	})
}

func (s *TransmissionStore) Update(id int64, patch func(*models.Transmission)) (models.Transmission, error) {
	return s.r.update(id, func(t *models.Transmission) {
		created := t.CreatedAt
		patch(t)
		t.CreatedAt = created
	})
}

// SetRating sets one of the five assessments; nil clears it.
func (s *TransmissionStore) SetRating(id int64, field models.RatingField, value *constants.Rating) (models.Transmission, error) {
	if (&models.Transmission{}).Rating(field) == nil {
		return models.Transmission{}, fmt.Errorf("critère inconnu %q", field)
	}
	return s.Update(id, func(t *models.Transmission) {
		if value == nil {
			*t.Rating(field) = nil
			return
		}
		v := *value
		*t.Rating(field) = &v
	})
}

// CycleRating advances an assessment along unset -> bien -> moyen -> mauvais -> unset.
func (s *TransmissionStore) CycleRating(id int64, field models.RatingField) (models.Transmission, error) {
	if (&models.Transmission{}).Rating(field) == nil {
		return models.Transmission{}, fmt.Errorf("critère inconnu %q", field)
	}
	return s.Update(id, func(t *models.Transmission) {
		slot := t.Rating(field)
		*slot = models.NextRating(*slot)
	})
}

func (s *TransmissionStore) Delete(id int64) error {
	return s.r.remove(id)
}

func (s *TransmissionStore) GetByID(id int64) (models.Transmission, bool) {
	return s.r.get(id)
}

// List returns every transmission, newest first.
func (s *TransmissionStore) List() []models.Transmission {
	return sortTransmissions(s.r.snapshot(nil))
}

func (s *TransmissionStore) ByBeneficiary(id int64) []models.Transmission {
	return sortTransmissions(s.r.snapshot(func(t models.Transmission) bool { return t.BeneficiaireID == id }))
}

func (s *TransmissionStore) ByDate(date string) []models.Transmission {
	return sortTransmissions(s.r.snapshot(func(t models.Transmission) bool { return t.Date == date }))
}

// LastByBeneficiary returns the most recent transmission by date, time, then creation.
func (s *TransmissionStore) LastByBeneficiary(id int64) (models.Transmission, bool) {
	items := s.ByBeneficiary(id)
	if len(items) == 0 {
		return models.Transmission{}, false
	}
	return items[0], true
}

func sortTransmissions(items []models.Transmission) []models.Transmission {
	sortByDesc(items, func(t models.Transmission) string {
		return t.Date + " " + timeKey(t.Heure) + " " + t.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000000")
	})
	return items
}
