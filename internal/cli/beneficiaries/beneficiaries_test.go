package beneficiaries

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/crypto/bcrypt"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/constants"
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
	return &cli.Context{Backend: backend, State: state, In: strings.NewReader("")}
}

func ptr[T any](v T) *T { return &v }

func TestAddCmd(t *testing.T) {
	ctx := setupTestDB(t)

	cmd := &AddCmd{
		Prenom: "Jeanne",
		Nom:    "Dupont",
		Fields: Fields{
			Ville:    ptr("Lyon"),
			Taux:     ptr(12.0),
			Creneaux: []string{"lundi=09:00-12:00", "jeudi=14:00-16:00"},
		},
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	list := ctx.State.Beneficiaries.List()
	if len(list) != 1 {
		t.Fatalf("expected 1 beneficiary, got %d", len(list))
	}
	b := list[0]
	if b.Statut != constants.StatusActif {
		t.Errorf("status = %q, want actif", b.Statut)
	}
	want := []models.WeeklySlot{
		{Jour: "lundi", HeureDebut: "09:00", HeureFin: "12:00"},
		{Jour: "jeudi", HeureDebut: "14:00", HeureFin: "16:00"},
	}
	if diff := cmp.Diff(want, b.CreneauxHabituels); diff != "" {
		t.Errorf("slots mismatch (-want +got):\n%s", diff)
	}
}

func TestAddCmd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  AddCmd
	}{
		{"missing name", AddCmd{Prenom: "Jeanne"}},
		{"bad slot", AddCmd{Prenom: "J", Nom: "D", Fields: Fields{Creneaux: []string{"lundi=12:00-09:00"}}}},
		{"bad slot syntax", AddCmd{Prenom: "J", Nom: "D", Fields: Fields{Creneaux: []string{"lundi 09:00"}}}},
		{"bad day", AddCmd{Prenom: "J", Nom: "D", Fields: Fields{Creneaux: []string{"funday=09:00-10:00"}}}},
		{"bad status", AddCmd{Prenom: "J", Nom: "D", Fields: Fields{Statut: ptr("archive")}}},
		{"bad postcode", AddCmd{Prenom: "J", Nom: "D", Fields: Fields{CodePostal: ptr("69")}}},
		{"negative rate", AddCmd{Prenom: "J", Nom: "D", Fields: Fields{Taux: ptr(-3.0)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupTestDB(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}
			if n := ctx.State.Beneficiaries.Count(); n != 0 {
				t.Errorf("nothing should be stored, got %d", n)
			}
		})
	}
}

func TestCommands_RequireCompletedProfile(t *testing.T) {
	ctx := setupTestDB(t)
	if _, err := ctx.State.Profile.Update(func(p *models.Profile) { p.OnboardingComplete = false }); err != nil {
		t.Fatal(err)
	}
	err := (&AddCmd{Prenom: "J", Nom: "D"}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "profil incomplet") {
		t.Errorf("expected onboarding error, got %v", err)
	}
}

func TestEditCmd(t *testing.T) {
	ctx := setupTestDB(t)
	b, err := ctx.State.Beneficiaries.Add(models.Beneficiary{Prenom: "Jeanne", Nom: "Dupont"})
	if err != nil {
		t.Fatal(err)
	}

	cmd := &EditCmd{ID: b.ID, Nom: ptr("Durand"), Fields: Fields{Statut: ptr("pause")}}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	got, _ := ctx.State.Beneficiaries.GetByID(b.ID)
	if got.Nom != "Durand" || got.Statut != constants.StatusPause {
		t.Errorf("unexpected beneficiary after edit: %+v", got)
	}
	if !got.CreatedAt.Equal(b.CreatedAt) {
		t.Error("edit must keep the creation date")
	}

	if err := (&EditCmd{ID: b.ID, Nom: ptr("")}).Run(ctx); err == nil {
		t.Error("expected validation error for empty name")
	}
	if err := (&EditCmd{ID: 999, Nom: ptr("X")}).Run(ctx); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestDeleteCmd(t *testing.T) {
	ctx := setupTestDB(t)
	b, err := ctx.State.Beneficiaries.Add(models.Beneficiary{Prenom: "Jeanne", Nom: "Dupont"})
	if err != nil {
		t.Fatal(err)
	}

	// Declined confirmation keeps the record.
	ctx.In = strings.NewReader("n\n")
	if err := (&DeleteCmd{ID: b.ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if ctx.State.Beneficiaries.Count() != 1 {
		t.Fatal("beneficiary should not be deleted without confirmation")
	}

	ctx.In = strings.NewReader("oui\n")
	if err := (&DeleteCmd{ID: b.ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if ctx.State.Beneficiaries.Count() != 0 {
		t.Error("beneficiary should be deleted")
	}
}

func TestSlotCommands(t *testing.T) {
	ctx := setupTestDB(t)
	b, err := ctx.State.Beneficiaries.Add(models.Beneficiary{Prenom: "Jeanne", Nom: "Dupont"})
	if err != nil {
		t.Fatal(err)
	}

	if err := (&SlotAddCmd{ID: b.ID, Jour: "mardi", Debut: "08:00", Fin: "10:00"}).Run(ctx); err != nil {
		t.Fatalf("slot add failed: %v", err)
	}
	if err := (&SlotAddCmd{ID: b.ID, Jour: "mardi", Debut: "8h", Fin: "10:00"}).Run(ctx); err == nil {
		t.Error("expected error for invalid time")
	}
	if err := (&SlotRemoveCmd{ID: b.ID, Index: 2}).Run(ctx); err == nil {
		t.Error("expected error for out-of-range slot")
	}
	if err := (&SlotRemoveCmd{ID: b.ID, Index: 1}).Run(ctx); err != nil {
		t.Fatalf("slot remove failed: %v", err)
	}
	got, _ := ctx.State.Beneficiaries.GetByID(b.ID)
	if len(got.CreneauxHabituels) != 0 {
		t.Errorf("expected no slots, got %+v", got.CreneauxHabituels)
	}
}

func TestListAndShow(t *testing.T) {
	ctx := setupTestDB(t)
	if err := store.SeedDemo(ctx.State, ctx.Today()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	for _, cmd := range []*ListCmd{{}, {Statut: "actif"}, {Search: "a", Statut: "pause"}} {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("list %+v failed: %v", cmd, err)
		}
	}
	if err := (&ListCmd{Statut: "inconnu"}).Run(ctx); err == nil {
		t.Error("expected error for unknown status")
	}

	for _, b := range ctx.State.Beneficiaries.List() {
		if err := (&ShowCmd{ID: b.ID}).Run(ctx); err != nil {
			t.Errorf("show %d failed: %v", b.ID, err)
		}
	}
	if err := (&ShowCmd{ID: 42}).Run(ctx); err == nil {
		t.Error("expected error for unknown id")
	}
}
