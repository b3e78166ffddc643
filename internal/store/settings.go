package store

import (
	"sync"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/storage"
)

func DefaultSettings() models.Settings {
	return models.Settings{
		Timezone:        constants.DefaultTimezone,
		SemainesParMois: constants.DefaultWeeksPerMonth,
		Devise:          constants.DefaultCurrency,
	}
}

type SettingsStore struct {
	guard
	mu       sync.RWMutex
	settings models.Settings
	coll     *storage.Collection[models.Settings]
}

func newSettingsStore(backend storage.Backend) *SettingsStore {
	s := &SettingsStore{coll: storage.NewCollection[models.Settings](backend, constants.KeySettings)}
	s.settings = DefaultSettings()

	raw, found, err := s.coll.LoadRaw()
	if err != nil {
		s.mark(s.coll.Key(), err)
		return s
	}
	if found {
		settings, err := storage.DecodeRecord(raw, DefaultSettings())
		if err != nil {
			s.mark(s.coll.Key(), err)
			return s
		}
		s.settings = withDefaults(settings)
	}
	return s
}

func withDefaults(s models.Settings) models.Settings {
	d := DefaultSettings()
	if s.Timezone == "" {
		s.Timezone = d.Timezone
	}
	if s.SemainesParMois <= 0 {
		s.SemainesParMois = d.SemainesParMois
	}
	if s.Devise == "" {
		s.Devise = d.Devise
	}
	return s
}

func (s *SettingsStore) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *SettingsStore) Save(settings models.Settings) error {
	settings = withDefaults(settings)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	if err := s.coll.Save(settings); err != nil {
		return err
	}
	s.settings = settings
	return nil
}

func (s *SettingsStore) repair() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.coll.Save(s.settings); err != nil {
		return err
	}
	s.clear()
	return nil
}
