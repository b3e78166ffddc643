package store

import (
	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/storage"
)

type CreneauStore struct {
	r   *records[models.Creneau]
	now clock
}

func newCreneauStore(backend storage.Backend, ids *idGenerator, now clock) *CreneauStore {
	return &CreneauStore{
		r: newRecords(backend, constants.KeyCreneaux, "créneau", ids, models.Creneau{},
			func(c *models.Creneau) *int64 { return &c.ID },
			func(c models.Creneau) models.Creneau { return c }),
		now: now,
	}
}

func (s *CreneauStore) Add(c models.Creneau) (models.Creneau, error) {
	return s.r.add(c, func(c *models.Creneau) { c.CreatedAt = s.now() })
}

func (s *CreneauStore) Update(id int64, patch func(*models.Creneau)) (models.Creneau, error) {
	return s.r.update(id, func(c *models.Creneau) {
		created := c.CreatedAt
		patch(c)
		c.CreatedAt = created
	})
}

func (s *CreneauStore) Delete(id int64) error {
	return s.r.remove(id)
}

func (s *CreneauStore) GetByID(id int64) (models.Creneau, bool) {
	return s.r.get(id)
}

func (s *CreneauStore) List() []models.Creneau {
	return sortCreneaux(s.r.snapshot(nil))
}

func (s *CreneauStore) ByBeneficiary(id int64) []models.Creneau {
	return sortCreneaux(s.r.snapshot(func(c models.Creneau) bool { return c.BeneficiaireID == id }))
}

func (s *CreneauStore) ByDate(date string) []models.Creneau {
	return sortCreneaux(s.r.snapshot(func(c models.Creneau) bool { return c.Date == date }))
}

func sortCreneaux(items []models.Creneau) []models.Creneau {
	sortBy(items, func(c models.Creneau) string { return c.Date + " " + timeKey(c.HeureDebut) })
	return items
}
