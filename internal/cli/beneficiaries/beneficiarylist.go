package beneficiaries

import (
	"fmt"
	"slices"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/utils"
)

type ListCmd struct {
	Statut string `help:"Filtrer par statut (actif, pause, termine)."`
	Search string `short:"s" help:"Rechercher par nom, prénom ou ville."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}

	list := ctx.State.Beneficiaries.List()
	if c.Search != "" {
		list = ctx.State.Beneficiaries.Search(c.Search)
	}
	if c.Statut != "" {
		status, err := cli.ParseStatus(c.Statut)
		if err != nil {
			return err
		}
		list = slices.DeleteFunc(list, func(b models.Beneficiary) bool { return b.Statut != status })
	}

	if len(list) == 0 {
		fmt.Println("Aucun bénéficiaire.")
		return nil
	}

	settings := ctx.State.Settings.Get()
	fmt.Println("Bénéficiaires :")
	for _, b := range list {
		e := utils.EstimateBeneficiary(b, settings.SemainesParMois)
		fmt.Printf("  [%s] %s (ID: %d) - %s, %.2fh/sem, %s/mois\n",
			b.Statut, b.FullName(), b.ID, b.Adresse.Ville, e.HeuresSemaine,
			utils.FormatEuros(e.TotalMois, settings.Devise))
	}
	return nil
}
