package beneficiaries

import (
	"fmt"
	"strings"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/validation"
)

type AddCmd struct {
	Prenom string `arg:"" help:"Prénom."`
	Nom    string `arg:"" help:"Nom."`
	Fields `embed:""`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}

	p, err := c.parse()
	if err != nil {
		return err
	}
	b := models.Beneficiary{
		Prenom: strings.TrimSpace(c.Prenom),
		Nom:    strings.TrimSpace(c.Nom),
	}
	c.apply(&b, p)
	if b.Statut == "" {
		b.Statut = constants.StatusActif
	}
	if err := validation.Struct(b); err != nil {
		return err
	}

	added, err := ctx.State.Beneficiaries.Add(b)
	if err != nil {
		return fmt.Errorf("failed to add beneficiary: %w", err)
	}

	fmt.Printf("✓ Bénéficiaire ajouté : %s (ID: %d)\n", added.FullName(), added.ID)
	if len(added.CreneauxHabituels) > 0 {
		fmt.Printf("  Créneaux : %s\n", cli.FormatSlots(added.CreneauxHabituels))
	}
	return nil
}
