package store

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/storage"
)

// DefaultProfile is the template every stored profile is merged onto.
func DefaultProfile() models.Profile {
	return models.Profile{
		Diplomes:       []models.Diploma{},
		Competences:    []string{},
		Disponibilites: []models.WeeklySlot{},
	}
}

// ProfileStore holds the single caregiver profile.
type ProfileStore struct {
	guard
	mu      sync.RWMutex
	profile models.Profile
	coll    *storage.Collection[models.Profile]
	now     clock
}

func newProfileStore(backend storage.Backend, now clock) *ProfileStore {
	s := &ProfileStore{
		coll: storage.NewCollection[models.Profile](backend, constants.KeyProfile),
		now:  now,
	}
	s.profile = s.load()
	return s
}

func (s *ProfileStore) load() models.Profile {
	raw, found, err := s.coll.LoadRaw()
	if err != nil {
		s.mark(s.coll.Key(), err)
		return DefaultProfile()
	}
	if !found {
		return DefaultProfile()
	}
	p, err := storage.DecodeRecord(raw, DefaultProfile())
	if err != nil {
		s.mark(s.coll.Key(), err)
		return DefaultProfile()
	}
	return p
}

func cloneProfile(p models.Profile) models.Profile {
	p.Diplomes = append(make([]models.Diploma, 0, len(p.Diplomes)), p.Diplomes...)
	p.Competences = append(make([]string, 0, len(p.Competences)), p.Competences...)
	p.Disponibilites = append(make([]models.WeeklySlot, 0, len(p.Disponibilites)), p.Disponibilites...)
	return p
}

func (s *ProfileStore) Get() models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProfile(s.profile)
}

// Update applies patch to a copy of the profile and persists it.
func (s *ProfileStore) Update(patch func(*models.Profile)) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return models.Profile{}, err
	}

	next := cloneProfile(s.profile)
	patch(&next)
	next.UpdatedAt = s.now()
	if err := s.coll.Save(next); err != nil {
		return models.Profile{}, err
	}
	s.profile = next
	return cloneProfile(next), nil
}

func (s *ProfileStore) CompleteOnboarding() (models.Profile, error) {
	return s.Update(func(p *models.Profile) { p.OnboardingComplete = true })
}

// SetPhoto reads an image file and stores it inline as a data URI.
func (s *ProfileStore) SetPhoto(path string) (models.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Profile{}, fmt.Errorf("impossible de lire la photo: %w", err)
	}
	uri, err := PhotoDataURI(data)
	if err != nil {
		return models.Profile{}, err
	}
	return s.Update(func(p *models.Profile) { p.Photo = uri })
}

// PhotoDataURI validates image bytes and encodes them as a data URI.
func PhotoDataURI(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("la photo est vide")
	}
	if len(data) > constants.MaxPhotoBytes {
		return "", fmt.Errorf("la photo dépasse %d Mo", constants.MaxPhotoBytes>>20)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("format non pris en charge (%s) : une image est attendue", mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (s *ProfileStore) reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := DefaultProfile()
	if err := s.coll.Save(p); err != nil {
		return err
	}
	s.profile = p
	s.clear()
	return nil
}

func (s *ProfileStore) repair() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.coll.Save(s.profile); err != nil {
		return err
	}
	s.clear()
	return nil
}
