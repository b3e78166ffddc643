package system

import (
	"testing"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
)

func TestValidateCmd(t *testing.T) {
	ctx := setupAppDB(t)

	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Fatalf("validate on empty state failed: %v", err)
	}

	a, err := ctx.State.Beneficiaries.Add(models.Beneficiary{Prenom: "Jeanne", Nom: "Dupont", Statut: constants.StatusActif})
	if err != nil {
		t.Fatal(err)
	}
	b, err := ctx.State.Beneficiaries.Add(models.Beneficiary{Prenom: "Henri", Nom: "Dubois", Statut: constants.StatusActif})
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []int64{a.ID, b.ID} {
		if _, err := ctx.State.Interventions.Add(models.Intervention{
			BeneficiaireID: id,
			Date:           "2024-03-04",
			HeureDebut:     "09:00",
			HeureFin:       "11:00",
			Statut:         constants.InterventionPlanifie,
		}); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		cmd     ValidateCmd
		wantErr bool
	}{
		{name: "all interventions", cmd: ValidateCmd{}, wantErr: true},
		{name: "range containing the clash", cmd: ValidateCmd{From: "2024-03-01", To: "2024-03-10"}, wantErr: true},
		{name: "range before the clash", cmd: ValidateCmd{To: "2024-03-01"}, wantErr: false},
		{name: "invalid date", cmd: ValidateCmd{From: "mars"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
