package beneficiaries

import (
	"fmt"
	"strings"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/validation"
)

type EditCmd struct {
	ID     int64   `arg:"" help:"ID du bénéficiaire."`
	Prenom *string `help:"Prénom."`
	Nom    *string `help:"Nom."`
	Fields `embed:""`
}

func (c *EditCmd) patch(b *models.Beneficiary, p parsed) bool {
	updated := c.apply(b, p)
	if c.Prenom != nil {
		b.Prenom = strings.TrimSpace(*c.Prenom)
		updated = true
	}
	if c.Nom != nil {
		b.Nom = strings.TrimSpace(*c.Nom)
		updated = true
	}
	return updated
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}

	current, ok := ctx.State.Beneficiaries.GetByID(c.ID)
	if !ok {
		return fmt.Errorf("bénéficiaire introuvable (ID: %d)", c.ID)
	}
	p, err := c.parse()
	if err != nil {
		return err
	}
	if !c.patch(&current, p) {
		fmt.Println("Aucune modification indiquée.")
		return nil
	}
	if err := validation.Struct(current); err != nil {
		return err
	}

	updated, err := ctx.State.Beneficiaries.Update(c.ID, func(b *models.Beneficiary) { c.patch(b, p) })
	if err != nil {
		return fmt.Errorf("failed to update beneficiary: %w", err)
	}
	fmt.Printf("✓ Bénéficiaire mis à jour : %s (ID: %d)\n", updated.FullName(), updated.ID)
	return nil
}
