package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/aidant/internal/backup"
	"github.com/julianstephens/aidant/internal/config"
	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/logger"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/storage"
	"github.com/julianstephens/aidant/internal/storage/postgres"
	"github.com/julianstephens/aidant/internal/storage/sqlite"
	"github.com/julianstephens/aidant/internal/store"
	"github.com/julianstephens/aidant/internal/utils"
	"github.com/julianstephens/aidant/internal/validation"
)

type Context struct {
	Backend storage.Backend
	State   *store.State
	Config  config.Config

	// In is read for confirmations; nil means os.Stdin.
	In io.Reader
}

// NewBackend picks the storage backend for a --config value: a PostgreSQL
// connection string, a .json file, or a SQLite database file.
func NewBackend(path string) (storage.Backend, error) {
	if config.IsPostgres(path) {
		if valid, err := postgres.ValidateConnString(path); !valid {
			return nil, err
		}
		connStr := config.ResolveConnectionString(path)
		if connStr != path {
			if valid, err := postgres.ValidateConnString(connStr); !valid && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
		}
		return postgres.New(connStr), nil
	}

	path = config.ExpandPath(path)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Backend.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		if errors.Is(err, backup.ErrNotFileBacked) {
			return
		}
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// RequireSession fails unless someone is logged in.
func (c *Context) RequireSession() (models.Session, error) {
	sess, ok := c.State.Auth.Session()
	if !ok {
		return models.Session{}, store.ErrNotLoggedIn
	}
	return sess, nil
}

// RequireApp fails unless the route guard lets the user reach the application.
func (c *Context) RequireApp() error {
	switch c.State.Route() {
	case store.RouteLogin:
		_, err := c.RequireSession()
		return err
	case store.RouteOnboarding:
		return fmt.Errorf("profil incomplet, terminez-le avec '%s profile complete'", constants.AppName)
	}
	return nil
}

// Today returns today's date in the configured timezone.
func (c *Context) Today() time.Time {
	now, err := utils.NowInTimezone(c.State.Settings.Get().Timezone)
	if err != nil {
		logger.Warn("Invalid timezone setting, using local time", "error", err)
		now = time.Now()
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// ResolveDate accepts YYYY-MM-DD, DD/MM/YYYY, "today"/"aujourdhui" or "" (today).
func (c *Context) ResolveDate(s string) (string, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "today", "aujourdhui", "aujourd'hui":
		return c.Today().Format(constants.DateFormat), nil
	case "demain", "tomorrow":
		return c.Today().AddDate(0, 0, 1).Format(constants.DateFormat), nil
	}
	if utils.ValidateDateFormat(s) {
		return s, nil
	}
	if t, err := time.Parse(constants.DisplayDateFormat, s); err == nil {
		return t.Format(constants.DateFormat), nil
	}
	return "", fmt.Errorf("date invalide %q (attendu AAAA-MM-JJ ou JJ/MM/AAAA)", s)
}

// Confirm asks a yes/no question on stdout and reads the answer.
func (c *Context) Confirm(question string) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	fmt.Printf("%s [o/N] : ", question)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "o" || response == "oui" || response == "y" || response == "yes", nil
}

// BeneficiaryName returns the full name for id, or "#id" when unknown.
func (c *Context) BeneficiaryName(id int64) string {
	if b, ok := c.State.Beneficiaries.GetByID(id); ok {
		return b.FullName()
	}
	return fmt.Sprintf("#%d", id)
}

// FormatSlots renders weekly slots as "lundi 09:00-12:00, jeudi 14:00-16:00".
func FormatSlots(slots []models.WeeklySlot) string {
	if len(slots) == 0 {
		return "aucun"
	}
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = fmt.Sprintf("%s %s-%s", s.Jour, s.HeureDebut, s.HeureFin)
	}
	return strings.Join(parts, ", ")
}

// ParseStatus checks a beneficiary status flag value.
func ParseStatus(s string) (constants.BeneficiaryStatus, error) {
	switch st := constants.BeneficiaryStatus(strings.ToLower(s)); st {
	case constants.StatusActif, constants.StatusPause, constants.StatusTermine:
		return st, nil
	}
	return "", fmt.Errorf("statut invalide %q (actif, pause, termine)", s)
}

// ParseWeeklySlot checks a recurring slot given as day, start and end.
func ParseWeeklySlot(jour, start, end string) (models.WeeklySlot, error) {
	day, err := utils.ParseWeekday(jour)
	if err != nil {
		return models.WeeklySlot{}, err
	}
	start, end, err = validation.NormalizeSlot(start, end)
	if err != nil {
		return models.WeeklySlot{}, err
	}
	return models.WeeklySlot{Jour: day, HeureDebut: start, HeureFin: end}, nil
}

// ParseSlotSpec reads a slot written as "lundi=09:00-12:00".
func ParseSlotSpec(spec string) (models.WeeklySlot, error) {
	day, hours, ok := strings.Cut(spec, "=")
	if !ok {
		return models.WeeklySlot{}, fmt.Errorf("créneau invalide %q (attendu jour=HH:MM-HH:MM)", spec)
	}
	start, end, ok := strings.Cut(hours, "-")
	if !ok {
		return models.WeeklySlot{}, fmt.Errorf("créneau invalide %q (attendu jour=HH:MM-HH:MM)", spec)
	}
	return ParseWeeklySlot(day, strings.TrimSpace(start), strings.TrimSpace(end))
}

// Beneficiary looks up a beneficiary referenced by a command argument.
func (c *Context) Beneficiary(id int64) (models.Beneficiary, error) {
	b, ok := c.State.Beneficiaries.GetByID(id)
	if !ok {
		return models.Beneficiary{}, fmt.Errorf("bénéficiaire introuvable (ID: %d)", id)
	}
	return b, nil
}

// DataDir is the directory holding logs, backups and the lockfile.
func (c *Context) DataDir() string {
	if c.Config.Path != "" {
		return config.ConfigDir(c.Config.Path)
	}
	return config.ConfigDir(c.Backend.GetConfigPath())
}
