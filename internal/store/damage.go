package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/julianstephens/aidant/internal/logger"
	"github.com/julianstephens/aidant/internal/storage"
)

// ErrDamaged is returned by writes to a store whose stored value did not load cleanly.
var ErrDamaged = errors.New("données endommagées, lancez 'aidant doctor --repair' ou restaurez une sauvegarde")

// Damage describes a stored value that did not load cleanly.
type Damage struct {
	Key string
	// Skipped counts list elements left out. Zero means the whole value was unusable.
	Skipped int
	Err     error
}

func (d Damage) String() string {
	if d.Skipped > 0 {
		return fmt.Sprintf("%s: %d enregistrement(s) illisible(s)", d.Key, d.Skipped)
	}
	return fmt.Sprintf("%s: illisible (%v)", d.Key, d.Err)
}

// guard keeps a store read-only after a bad load, so the next save cannot
// overwrite records that are still on disk.
type guard struct {
	mu     sync.Mutex
	damage *Damage
}

// mark flags key as damaged. err is the decode or read error; a storage.RecordErrors
// means the readable elements were kept.
func (g *guard) mark(key string, err error) {
	d := Damage{Key: key, Err: err}
	var skipped storage.RecordErrors
	if errors.As(err, &skipped) {
		d.Skipped = len(skipped)
	}
	logger.Warn("Stored data did not load cleanly, writes disabled until repair", "key", key, "error", err)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.damage = &d
}

func (g *guard) check() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.damage != nil {
		return fmt.Errorf("%w (%s)", ErrDamaged, g.damage.Key)
	}
	return nil
}

func (g *guard) clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.damage = nil
}

func (g *guard) state() (Damage, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.damage == nil {
		return Damage{}, false
	}
	return *g.damage, true
}

// damaged is implemented by every store that loads from the backend.
type damaged interface {
	state() (Damage, bool)
	repair() error
}

func (s *State) guarded() []damaged {
	return []damaged{
		s.Beneficiaries.r, s.Interventions.r, s.Creneaux.r, s.Transmissions.r, s.Notes.r,
		s.Badges, s.Profile, s.Auth, s.Settings,
	}
}

// Damaged lists the stored values that did not load cleanly.
func (s *State) Damaged() []Damage {
	var out []Damage
	for _, g := range s.guarded() {
		if d, ok := g.state(); ok {
			out = append(out, d)
		}
	}
	return out
}

// Repair rewrites every damaged value with what was recovered from it and
// re-enables writes. Unreadable records are dropped.
func (s *State) Repair() ([]Damage, error) {
	var repaired []Damage
	for _, g := range s.guarded() {
		d, ok := g.state()
		if !ok {
			continue
		}
		if err := g.repair(); err != nil {
			return repaired, fmt.Errorf("failed to repair %s: %w", d.Key, err)
		}
		repaired = append(repaired, d)
	}
	return repaired, nil
}
