package store

import (
	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/storage"
)

type NoteStore struct {
	r   *records[models.Note]
	now clock
}

// NoteFilter selects notes; zero fields match everything.
type NoteFilter struct {
	BeneficiaireID int64
	Categorie      constants.NoteCategory
	Importance     constants.NoteImportance
}

func newNoteStore(backend storage.Backend, ids *idGenerator, now clock) *NoteStore {
	template := models.Note{Importance: constants.ImportanceNormale}
	return &NoteStore{
		r: newRecords(backend, constants.KeyNotes, "note", ids, template,
			func(n *models.Note) *int64 { return &n.ID },
			func(n models.Note) models.Note { return n }),
		now: now,
	}
}

func (s *NoteStore) Add(n models.Note) (models.Note, error) {
	return s.r.add(n, func(n *models.Note) {
		n.CreatedAt = s.now()
		if n.Importance == "" {
			n.Importance = constants.ImportanceNormale
		}
	})
}

func (s *NoteStore) Update(id int64, patch func(*models.Note)) (models.Note, error) {
	return s.r.update(id, func(n *models.Note) {
		created := n.CreatedAt
		patch(n)
		n.CreatedAt = created
	})
}

func (s *NoteStore) Delete(id int64) error {
	return s.r.remove(id)
}

func (s *NoteStore) GetByID(id int64) (models.Note, bool) {
	return s.r.get(id)
}

// List returns every note, newest first.
func (s *NoteStore) List() []models.Note {
	return sortNotes(s.r.snapshot(nil))
}

// ByBeneficiary returns a beneficiary's notes, newest first.
func (s *NoteStore) ByBeneficiary(id int64) []models.Note {
	return s.Filter(NoteFilter{BeneficiaireID: id})
}

func (s *NoteStore) Filter(f NoteFilter) []models.Note {
	return sortNotes(s.r.snapshot(func(n models.Note) bool {
		if f.BeneficiaireID != 0 && n.BeneficiaireID != f.BeneficiaireID {
			return false
		}
		if f.Categorie != "" && n.Categorie != f.Categorie {
			return false
		}
		if f.Importance != "" && n.Importance != f.Importance {
			return false
		}
		return true
	}))
}

func sortNotes(items []models.Note) []models.Note {
	sortByDesc(items, func(n models.Note) string {
		return n.Date + " " + n.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000000")
	})
	return items
}
