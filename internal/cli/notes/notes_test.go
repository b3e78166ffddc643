package notes

import (
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/constants"
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

func TestAddCmd(t *testing.T) {
	tests := []struct {
		name    string
		cmd     func(id int64) AddCmd
		wantErr bool
	}{
		{"defaults", func(id int64) AddCmd {
			return AddCmd{Beneficiaire: id, Contenu: "Tension élevée", Categorie: "sante", Importance: "normale"}
		}, false},
		{"urgent family note", func(id int64) AddCmd {
			return AddCmd{Beneficiaire: id, Contenu: "Appeler la fille", Categorie: "Famille", Importance: "urgente", Date: "2024-04-15"}
		}, false},
		{"empty content", func(id int64) AddCmd {
			return AddCmd{Beneficiaire: id, Contenu: "  ", Categorie: "sante", Importance: "normale"}
		}, true},
		{"unknown category", func(id int64) AddCmd {
			return AddCmd{Beneficiaire: id, Contenu: "x", Categorie: "loisirs", Importance: "normale"}
		}, true},
		{"unknown importance", func(id int64) AddCmd {
			return AddCmd{Beneficiaire: id, Contenu: "x", Categorie: "sante", Importance: "critique"}
		}, true},
		{"unknown beneficiary", func(int64) AddCmd {
			return AddCmd{Beneficiaire: 404, Contenu: "x", Categorie: "sante", Importance: "normale"}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, b := setupTestDB(t)
			cmd := tt.cmd(b.ID)
			err := cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			want := 1
			if tt.wantErr {
				want = 0
			}
			if n := len(ctx.State.Notes.List()); n != want {
				t.Errorf("stored %d notes, want %d", n, want)
			}
		})
	}
}

func TestListAndDelete(t *testing.T) {
	ctx, b := setupTestDB(t)
	n, err := ctx.State.Notes.Add(models.Note{
		BeneficiaireID: b.ID, Date: "2024-04-15", Categorie: constants.CategorieSante,
		Contenu: "RAS", Importance: constants.ImportanceUrgente,
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, cmd := range []ListCmd{{}, {Beneficiaire: b.ID, Categorie: "sante", Importance: "urgente"}} {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("list failed: %v", err)
		}
	}
	if err := (&ListCmd{Categorie: "loisirs"}).Run(ctx); err == nil {
		t.Error("expected error for unknown category filter")
	}

	if err := (&DeleteCmd{ID: n.ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(ctx.State.Notes.List()) != 0 {
		t.Error("note should be deleted")
	}
}
