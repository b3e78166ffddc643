// Package store holds the application state: one store per collection, each
// persisted synchronously to a storage.Backend on every mutation.
package store

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/aidant/internal/storage"
)

type clock func() time.Time

type options struct {
	now        clock
	bcryptCost int
}

type Option func(*options)

// WithClock replaces time.Now for timestamps and ids.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithBcryptCost sets the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(o *options) { o.bcryptCost = cost }
}

// State groups every store. It is built once and passed to commands and the TUI.
type State struct {
	Backend       storage.Backend
	Beneficiaries *BeneficiaryStore
	Interventions *InterventionStore
	Creneaux      *CreneauStore
	Transmissions *TransmissionStore
	Notes         *NoteStore
	Badges        *BadgeStore
	Profile       *ProfileStore
	Auth          *AuthStore
	Settings      *SettingsStore
}

// NewState loads every collection from backend. Missing collections fall
// back to their defaults. A malformed one keeps the records it could read and
// refuses writes until Repair or ResetRecords; see Damaged.
func NewState(backend storage.Backend, opts ...Option) *State {
	o := options{now: time.Now, bcryptCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(&o)
	}
	ids := &idGenerator{now: o.now}

	return &State{
		Backend:       backend,
		Beneficiaries: newBeneficiaryStore(backend, ids, o.now),
		Interventions: newInterventionStore(backend, ids, o.now),
		Creneaux:      newCreneauStore(backend, ids, o.now),
		Transmissions: newTransmissionStore(backend, ids, o.now),
		Notes:         newNoteStore(backend, ids, o.now),
		Badges:        newBadgeStore(backend, o.now),
		Profile:       newProfileStore(backend, o.now),
		Auth:          newAuthStore(backend, o.now, o.bcryptCost),
		Settings:      newSettingsStore(backend),
	}
}

// Route resolves which screen the current session may reach.
func (s *State) Route() Route {
	sess, ok := s.Auth.Session()
	return Resolve(sess, ok, s.Profile.Get())
}

// ResetRecords empties every record collection and restores the badge
// catalog and a blank profile. Accounts and settings are kept.
func (s *State) ResetRecords() error {
	if err := s.Beneficiaries.r.reset(nil); err != nil {
		return err
	}
	if err := s.Interventions.r.reset(nil); err != nil {
		return err
	}
	if err := s.Creneaux.r.reset(nil); err != nil {
		return err
	}
	if err := s.Transmissions.r.reset(nil); err != nil {
		return err
	}
	if err := s.Notes.r.reset(nil); err != nil {
		return err
	}
	if err := s.Badges.reset(); err != nil {
		return err
	}
	return s.Profile.reset()
}
