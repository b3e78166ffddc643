package store

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/logger"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/storage"
)

var (
	ErrEmailAlreadyUsed   = errors.New("cette adresse e-mail est déjà utilisée")
	ErrInvalidCredentials = errors.New("e-mail ou mot de passe incorrect")
	ErrNotLoggedIn        = errors.New("aucune session ouverte, connectez-vous avec 'aidant login'")
)

// AuthStore is a local convenience lock: it gates the UI on this machine and is not a security boundary.
type AuthStore struct {
	guard
	mu         sync.RWMutex
	users      []models.User
	session    *models.Session
	usersColl  *storage.Collection[[]models.User]
	sessColl   *storage.Collection[models.Session]
	now        clock
	bcryptCost int
}

func newAuthStore(backend storage.Backend, now clock, cost int) *AuthStore {
	s := &AuthStore{
		usersColl:  storage.NewCollection[[]models.User](backend, constants.KeyUsers),
		sessColl:   storage.NewCollection[models.Session](backend, constants.KeySession),
		now:        now,
		bcryptCost: cost,
		users:      []models.User{},
	}

	if raw, found, err := s.usersColl.LoadRaw(); err != nil {
		s.mark(s.usersColl.Key(), err)
	} else if found {
		users, err := storage.DecodeRecords(raw, models.User{})
		if err != nil {
			s.mark(s.usersColl.Key(), err)
		}
		if users != nil {
			s.users = users
		}
	}

	if sess, found, err := s.sessColl.Load(); err != nil {
		logger.Warn("Malformed session, logging out", "error", err)
	} else if found && sess.Email != "" {
		s.session = &sess
	}
	return s
}

func (s *AuthStore) findUser(email string) int {
	for i, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return i
		}
	}
	return -1
}

// Register creates an account and opens a session for it.
func (s *AuthStore) Register(email, password, prenom, nom string) (models.Session, error) {
	email = strings.TrimSpace(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUser(email) >= 0 {
		return models.Session{}, ErrEmailAlreadyUsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return models.Session{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Prenom:       prenom,
		Nom:          nom,
		CreatedAt:    s.now(),
	}
	if err := s.check(); err != nil {
		return models.Session{}, err
	}
	users := append(append([]models.User(nil), s.users...), user)
	if err := s.usersColl.Save(users); err != nil {
		return models.Session{}, err
	}
	s.users = users

	return s.openSession(user)
}

// Login opens a session when email and password match a registered user.
func (s *AuthStore) Login(email, password string) (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findUser(strings.TrimSpace(email))
	if i < 0 {
		return models.Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.users[i].PasswordHash), []byte(password)); err != nil {
		return models.Session{}, ErrInvalidCredentials
	}
	return s.openSession(s.users[i])
}

// Logout clears the persisted session. Logging out twice is not an error.
func (s *AuthStore) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sessColl.Clear(); err != nil {
		return err
	}
	s.session = nil
	return nil
}

func (s *AuthStore) Session() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return models.Session{}, false
	}
	return *s.session, true
}

func (s *AuthStore) repair() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usersColl.Save(s.users); err != nil {
		return err
	}
	s.clear()
	return nil
}

func (s *AuthStore) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// openSession persists a new session. Caller holds mu.
func (s *AuthStore) openSession(u models.User) (models.Session, error) {
	sess := models.Session{
		ID:        uuid.NewString(),
		Email:     u.Email,
		Prenom:    u.Prenom,
		Nom:       u.Nom,
		StartedAt: s.now(),
	}
	if err := s.sessColl.Save(sess); err != nil {
		return models.Session{}, err
	}
	s.session = &sess
	return sess, nil
}
