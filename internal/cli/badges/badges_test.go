package badges

import (
	"errors"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/storage/sqlite"
	"github.com/julianstephens/aidant/internal/store"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	backend := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := backend.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = backend.Close() })

	state := store.NewState(backend, store.WithBcryptCost(bcrypt.MinCost))
	if _, err := state.Auth.Register("a@b.fr", "secret123", "Anne", "Martin"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := state.Profile.Update(func(p *models.Profile) {
		p.Prenom, p.Nom, p.OnboardingComplete = "Anne", "Martin", true
	}); err != nil {
		t.Fatalf("failed to complete profile: %v", err)
	}
	return &cli.Context{Backend: backend, State: state}
}

func TestBadgeCommands(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&UnlockCmd{ID: "premier-pas"}).Run(ctx); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	if unlocked, total := ctx.State.Badges.Unlocked(); unlocked != 1 || total == 0 {
		t.Errorf("unlocked %d/%d, want 1/n", unlocked, total)
	}
	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}

	if err := (&LockCmd{ID: "premier-pas"}).Run(ctx); err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	if unlocked, _ := ctx.State.Badges.Unlocked(); unlocked != 0 {
		t.Errorf("expected no unlocked badge, got %d", unlocked)
	}

	if err := (&UnlockCmd{ID: "inexistant"}).Run(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
