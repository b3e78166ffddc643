package interventions

import (
	"fmt"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/validation"
)

type AddCmd struct {
	Beneficiaire int64  `arg:"" help:"ID du bénéficiaire."`
	Date         string `arg:"" help:"Date (AAAA-MM-JJ, JJ/MM/AAAA, aujourdhui, demain)."`
	Debut        string `arg:"" help:"Heure de début (HH:MM)."`
	Fin          string `arg:"" help:"Heure de fin (HH:MM)."`
	Type         string `short:"t" help:"Type d'intervention." default:"ponctuel"`
	Notes        string `short:"n" help:"Notes."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	b, err := ctx.Beneficiary(c.Beneficiaire)
	if err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	start, end, err := validation.NormalizeSlot(c.Debut, c.Fin)
	if err != nil {
		return err
	}

	i := models.Intervention{
		BeneficiaireID: b.ID,
		Date:           date,
		HeureDebut:     start,
		HeureFin:       end,
		Type:           c.Type,
		Notes:          c.Notes,
		Statut:         constants.InterventionPlanifie,
	}
	if err := validation.Struct(i); err != nil {
		return err
	}

	added, err := ctx.State.Interventions.Add(i)
	if err != nil {
		return fmt.Errorf("failed to add intervention: %w", err)
	}
	fmt.Printf("✓ Intervention planifiée : %s le %s de %s à %s (ID: %d)\n",
		b.FullName(), added.Date, added.HeureDebut, added.HeureFin, added.ID)

	// Overlaps are reported, not refused.
	result := validation.New().ValidateInterventions(ctx.State.Interventions.ByDate(date), ctx.State.Beneficiaries.List())
	for _, conflict := range result.Conflicts {
		fmt.Printf("⚠ %s\n", conflict.Description)
	}
	return nil
}
