package interventions

import (
	"errors"
	"fmt"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/store"
)

type StatusCmd struct {
	ID     int64  `arg:"" help:"ID de l'intervention."`
	Statut string `arg:"" help:"Nouveau statut (planifie, effectue, annule)."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	status, err := ParseStatus(c.Statut)
	if err != nil {
		return err
	}
	i, err := ctx.State.Interventions.SetStatus(c.ID, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update intervention: %w", err)
	}
	fmt.Printf("✓ Intervention %d : %s\n", i.ID, i.Statut)
	return nil
}

type DeleteCmd struct {
	ID int64 `arg:"" help:"ID de l'intervention."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	i, ok := ctx.State.Interventions.GetByID(c.ID)
	if !ok {
		return fmt.Errorf("intervention introuvable (ID: %d)", c.ID)
	}
	if err := ctx.State.Interventions.Delete(c.ID); err != nil {
		return fmt.Errorf("failed to delete intervention: %w", err)
	}
	fmt.Printf("✓ Intervention supprimée : %s le %s (ID: %d)\n", ctx.BeneficiaryName(i.BeneficiaireID), i.Date, c.ID)
	return nil
}
