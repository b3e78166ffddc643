package creneaux

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

func setupTestDB(t *testing.T) (*cli.Context, models.Beneficiary) {
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
	b, err := state.Beneficiaries.Add(models.Beneficiary{Prenom: "Jeanne", Nom: "Dupont"})
	if err != nil {
		t.Fatalf("failed to add beneficiary: %v", err)
	}
	return &cli.Context{Backend: backend, State: state}, b
}

func TestCreneauCommands(t *testing.T) {
	ctx, b := setupTestDB(t)

	if err := (&AddCmd{Beneficiaire: b.ID, Date: "2024-04-16", Debut: "14:00", Fin: "15:30", Type: "courses"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := (&AddCmd{Beneficiaire: b.ID, Date: "2024-04-16", Debut: "15:30", Fin: "15:30"}).Run(ctx); err == nil {
		t.Error("expected error for an empty slot")
	}
	if err := (&AddCmd{Beneficiaire: 7, Date: "2024-04-16", Debut: "09:00", Fin: "10:00"}).Run(ctx); err == nil {
		t.Error("expected error for unknown beneficiary")
	}

	list := ctx.State.Creneaux.ByDate("2024-04-16")
	if len(list) != 1 || list[0].Type != "courses" {
		t.Fatalf("unexpected slots: %+v", list)
	}

	if err := (&ListCmd{Date: "2024-04-16", Beneficiaire: b.ID}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}

	if err := (&DeleteCmd{ID: list[0].ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := (&DeleteCmd{ID: list[0].ID}).Run(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestAddCmd_PadsTypedTimes(t *testing.T) {
	ctx, b := setupTestDB(t)

	if err := (&AddCmd{Beneficiaire: b.ID, Date: "2024-04-16", Debut: "9:30", Fin: "10:00"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	got := ctx.State.Creneaux.ByDate("2024-04-16")
	if len(got) != 1 || got[0].HeureDebut != "09:30" || got[0].HeureFin != "10:00" {
		t.Errorf("stored slot = %+v, want 09:30-10:00", got)
	}
}
