package store

import (
	"sort"
	"strings"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/storage"
)

// BeneficiaryStore holds care recipients. No validation happens here.
type BeneficiaryStore struct {
	r   *records[models.Beneficiary]
	now clock
}

func newBeneficiaryStore(backend storage.Backend, ids *idGenerator, now clock) *BeneficiaryStore {
	template := models.Beneficiary{
		Statut:            constants.StatusActif,
		CreneauxHabituels: []models.WeeklySlot{},
	}
	return &BeneficiaryStore{
		r: newRecords(backend, constants.KeyBeneficiaries, "bénéficiaire", ids, template,
			func(b *models.Beneficiary) *int64 { return &b.ID }, cloneBeneficiary),
		now: now,
	}
}

func cloneBeneficiary(b models.Beneficiary) models.Beneficiary {
	if b.CreneauxHabituels != nil {
		slots := make([]models.WeeklySlot, len(b.CreneauxHabituels))
		copy(slots, b.CreneauxHabituels)
		b.CreneauxHabituels = slots
	}
	return b
}

// Add assigns id and timestamps, appends and persists.
func (s *BeneficiaryStore) Add(b models.Beneficiary) (models.Beneficiary, error) {
	return s.r.add(b, func(b *models.Beneficiary) {
		now := s.now()
		b.CreatedAt = now
		b.UpdatedAt = now
		if b.Statut == "" {
			b.Statut = constants.StatusActif
		}
		if b.CreneauxHabituels == nil {
			b.CreneauxHabituels = []models.WeeklySlot{}
		}
	})
}

// Update applies a partial patch and refreshes UpdatedAt. CreatedAt is preserved.
func (s *BeneficiaryStore) Update(id int64, patch func(*models.Beneficiary)) (models.Beneficiary, error) {
	return s.r.update(id, func(b *models.Beneficiary) {
		created := b.CreatedAt
		patch(b)
		b.CreatedAt = created
		b.UpdatedAt = s.now()
	})
}

// Delete removes the beneficiary only. Interventions, notes and logs that reference it are kept.
func (s *BeneficiaryStore) Delete(id int64) error {
	return s.r.remove(id)
}

func (s *BeneficiaryStore) GetByID(id int64) (models.Beneficiary, bool) {
	return s.r.get(id)
}

func (s *BeneficiaryStore) List() []models.Beneficiary {
	return s.r.snapshot(nil)
}

func (s *BeneficiaryStore) Actifs() []models.Beneficiary {
	return s.r.snapshot(func(b models.Beneficiary) bool { return b.IsActive() })
}

func (s *BeneficiaryStore) ByStatus(status constants.BeneficiaryStatus) []models.Beneficiary {
	return s.r.snapshot(func(b models.Beneficiary) bool { return b.Statut == status })
}

// Search matches query against first name, last name and city, case-insensitively.
// Results are sorted by last name.
func (s *BeneficiaryStore) Search(query string) []models.Beneficiary {
	q := strings.ToLower(strings.TrimSpace(query))
	out := s.r.snapshot(func(b models.Beneficiary) bool {
		if q == "" {
			return true
		}
		for _, field := range []string{b.Prenom, b.Nom, b.Adresse.Ville} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	})
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Nom) < strings.ToLower(out[j].Nom)
	})
	return out
}

func (s *BeneficiaryStore) Count() int {
	return s.r.count()
}
