package interventions

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
	b, err := state.Beneficiaries.Add(models.Beneficiary{
		Prenom: "Jeanne",
		Nom:    "Dupont",
		CreneauxHabituels: []models.WeeklySlot{
			{Jour: "lundi", HeureDebut: "09:00", HeureFin: "12:00"},
			{Jour: "jeudi", HeureDebut: "14:00", HeureFin: "16:00"},
		},
	})
	if err != nil {
		t.Fatalf("failed to add beneficiary: %v", err)
	}
	return &cli.Context{Backend: backend, State: state}, b
}

func TestAddCmd(t *testing.T) {
	ctx, b := setupTestDB(t)

	tests := []struct {
		name    string
		cmd     AddCmd
		wantErr bool
	}{
		{"iso date", AddCmd{Beneficiaire: b.ID, Date: "2024-04-16", Debut: "09:00", Fin: "11:00"}, false},
		{"display date", AddCmd{Beneficiaire: b.ID, Date: "17/04/2024", Debut: "09:00", Fin: "11:00"}, false},
		{"today", AddCmd{Beneficiaire: b.ID, Date: "aujourdhui", Debut: "18:00", Fin: "19:00"}, false},
		{"overlap is allowed", AddCmd{Beneficiaire: b.ID, Date: "2024-04-16", Debut: "10:00", Fin: "12:00"}, false},
		{"unknown beneficiary", AddCmd{Beneficiaire: 999, Date: "2024-04-16", Debut: "09:00", Fin: "11:00"}, true},
		{"bad date", AddCmd{Beneficiaire: b.ID, Date: "16 avril", Debut: "09:00", Fin: "11:00"}, true},
		{"reversed times", AddCmd{Beneficiaire: b.ID, Date: "2024-04-16", Debut: "11:00", Fin: "09:00"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(ctx.State.Interventions.List())
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			after := len(ctx.State.Interventions.List())
			if tt.wantErr && after != before {
				t.Error("a failed add must not store anything")
			}
			if !tt.wantErr && after != before+1 {
				t.Error("expected one new intervention")
			}
		})
	}

	if got := ctx.State.Interventions.ByDate("2024-04-17"); len(got) != 1 || got[0].Statut != constants.InterventionPlanifie {
		t.Errorf("unexpected interventions on 2024-04-17: %+v", got)
	}
}

func TestStatusAndDelete(t *testing.T) {
	ctx, b := setupTestDB(t)
	i, err := ctx.State.Interventions.Add(models.Intervention{BeneficiaireID: b.ID, Date: "2024-04-16", HeureDebut: "09:00", HeureFin: "10:00"})
	if err != nil {
		t.Fatal(err)
	}

	if err := (&StatusCmd{ID: i.ID, Statut: "effectue"}).Run(ctx); err != nil {
		t.Fatalf("status failed: %v", err)
	}
	got, _ := ctx.State.Interventions.GetByID(i.ID)
	if got.Statut != constants.InterventionEffectue {
		t.Errorf("status = %q, want effectue", got.Statut)
	}
	if err := (&StatusCmd{ID: i.ID, Statut: "fini"}).Run(ctx); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := (&StatusCmd{ID: 1, Statut: "annule"}).Run(ctx); err == nil {
		t.Error("expected error for unknown id")
	}

	if err := (&DeleteCmd{ID: i.ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := ctx.State.Interventions.GetByID(i.ID); ok {
		t.Error("intervention should be deleted")
	}
}

func TestGenerateCmd(t *testing.T) {
	ctx, b := setupTestDB(t)

	// Any day of the week plans the whole week, Monday first.
	if err := (&GenerateCmd{Semaine: "2024-04-17"}).Run(ctx); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	week := ctx.State.Interventions.Between("2024-04-15", "2024-04-21")
	if len(week) != 2 {
		t.Fatalf("expected 2 interventions, got %d", len(week))
	}
	if week[0].Date != "2024-04-15" || week[1].Date != "2024-04-18" || week[0].BeneficiaireID != b.ID {
		t.Errorf("unexpected week: %+v", week)
	}

	// Running again is idempotent.
	if err := (&GenerateCmd{Semaine: "2024-04-15"}).Run(ctx); err != nil {
		t.Fatalf("second generate failed: %v", err)
	}
	if n := len(ctx.State.Interventions.List()); n != 2 {
		t.Errorf("expected 2 interventions after regenerate, got %d", n)
	}
}

func TestListCmd(t *testing.T) {
	ctx, b := setupTestDB(t)
	if err := (&GenerateCmd{Semaine: "2024-04-15"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	cmds := []ListCmd{
		{},
		{Date: "2024-04-15"},
		{Semaine: "2024-04-18"},
		{From: "2024-04-16", To: "2024-04-30"},
		{Beneficiaire: b.ID, Statut: "planifie"},
	}
	for _, cmd := range cmds {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("list %+v failed: %v", cmd, err)
		}
	}
	if err := (&ListCmd{Statut: "fini"}).Run(ctx); err == nil {
		t.Error("expected error for unknown status")
	}
}
