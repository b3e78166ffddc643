package beneficiaries

import (
	"fmt"

	"github.com/julianstephens/aidant/internal/cli"
)

type DeleteCmd struct {
	ID  int64 `arg:"" help:"ID du bénéficiaire."`
	Yes bool  `short:"y" help:"Ne pas demander de confirmation."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}

	b, ok := ctx.State.Beneficiaries.GetByID(c.ID)
	if !ok {
		return fmt.Errorf("bénéficiaire introuvable (ID: %d)", c.ID)
	}

	if !c.Yes {
		confirmed, err := ctx.Confirm(fmt.Sprintf("Supprimer %s ? Les interventions, notes et transmissions sont conservées.", b.FullName()))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Suppression annulée.")
			return nil
		}
	}

	if err := ctx.State.Beneficiaries.Delete(c.ID); err != nil {
		return fmt.Errorf("failed to delete beneficiary: %w", err)
	}
	fmt.Printf("✓ Bénéficiaire supprimé : %s (ID: %d)\n", b.FullName(), c.ID)
	return nil
}
