package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/storage"
)

//go:embed badges.json
var badgeCatalogJSON []byte

// BadgeCatalog returns the built-in badges, all locked.
func BadgeCatalog() []models.Badge {
	var catalog []models.Badge
	if err := json.Unmarshal(badgeCatalogJSON, &catalog); err != nil {
		panic(fmt.Sprintf("invalid embedded badge catalog: %v", err))
	}
	return catalog
}

// BadgeStore keeps unlock state for the static catalog. Unlocking is manual.
type BadgeStore struct {
	guard
	mu     sync.RWMutex
	badges []models.Badge
	coll   *storage.Collection[[]models.Badge]
	now    clock
}

func newBadgeStore(backend storage.Backend, now clock) *BadgeStore {
	s := &BadgeStore{
		coll: storage.NewCollection[[]models.Badge](backend, constants.KeyBadges),
		now:  now,
	}
	s.badges = s.load()
	return s
}

// load merges persisted unlock flags onto the catalog. Names and descriptions always come from the catalog.
func (s *BadgeStore) load() []models.Badge {
	catalog := BadgeCatalog()
	raw, found, err := s.coll.LoadRaw()
	if err != nil {
		s.mark(s.coll.Key(), err)
		return catalog
	}
	if !found {
		return catalog
	}
	stored, err := storage.DecodeRecords(raw, models.Badge{})
	if err != nil {
		s.mark(s.coll.Key(), err)
	}
	state := make(map[string]models.Badge, len(stored))
	for _, b := range stored {
		state[b.ID] = b
	}
	for i := range catalog {
		if b, ok := state[catalog[i].ID]; ok {
			catalog[i].Unlocked = b.Unlocked
			catalog[i].UnlockedAt = b.UnlockedAt
		}
	}
	return catalog
}

func (s *BadgeStore) List() []models.Badge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Badge, len(s.badges))
	for i, b := range s.badges {
		out[i] = cloneBadge(b)
	}
	return out
}

// Unlocked returns how many badges are unlocked and the catalog size.
func (s *BadgeStore) Unlocked() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, b := range s.badges {
		if b.Unlocked {
			n++
		}
	}
	return n, len(s.badges)
}

func (s *BadgeStore) Unlock(id string) (models.Badge, error) {
	return s.set(id, true)
}

func (s *BadgeStore) Lock(id string) (models.Badge, error) {
	return s.set(id, false)
}

// Toggle flips the unlock state of a badge.
func (s *BadgeStore) Toggle(id string) (models.Badge, error) {
	s.mu.RLock()
	unlocked := false
	for _, b := range s.badges {
		if b.ID == id {
			unlocked = b.Unlocked
		}
	}
	s.mu.RUnlock()
	return s.set(id, !unlocked)
}

func (s *BadgeStore) set(id string, unlocked bool) (models.Badge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Badge, len(s.badges))
	copy(next, s.badges)
	for i := range next {
		if next[i].ID != id {
			continue
		}
		if next[i].Unlocked == unlocked {
			return cloneBadge(next[i]), nil
		}
		next[i].Unlocked = unlocked
		next[i].UnlockedAt = nil
		if unlocked {
			now := s.now()
			next[i].UnlockedAt = &now
		}
		if err := s.check(); err != nil {
			return models.Badge{}, err
		}
		if err := s.coll.Save(next); err != nil {
			return models.Badge{}, err
		}
		s.badges = next
		return cloneBadge(next[i]), nil
	}
	return models.Badge{}, fmt.Errorf("%w: badge %q", ErrNotFound, id)
}

func cloneBadge(b models.Badge) models.Badge {
	if b.UnlockedAt != nil {
		t := *b.UnlockedAt
		b.UnlockedAt = &t
	}
	return b
}

func (s *BadgeStore) reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	catalog := BadgeCatalog()
	if err := s.coll.Save(catalog); err != nil {
		return err
	}
	s.badges = catalog
	s.clear()
	return nil
}

func (s *BadgeStore) repair() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.coll.Save(s.badges); err != nil {
		return err
	}
	s.clear()
	return nil
}
