package creneaux

import (
	"fmt"
	"slices"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/utils"
	"github.com/julianstephens/aidant/internal/validation"
)

type AddCmd struct {
	Beneficiaire int64  `arg:"" help:"ID du bénéficiaire."`
	Date         string `arg:"" help:"Date (AAAA-MM-JJ, JJ/MM/AAAA, aujourdhui, demain)."`
	Debut        string `arg:"" help:"Heure de début (HH:MM)."`
	Fin          string `arg:"" help:"Heure de fin (HH:MM)."`
	Type         string `short:"t" help:"Type de créneau."`
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

	cr := models.Creneau{
		BeneficiaireID: b.ID,
		Date:           date,
		HeureDebut:     start,
		HeureFin:       end,
		Type:           c.Type,
		Notes:          c.Notes,
	}
	if err := validation.Struct(cr); err != nil {
		return err
	}
	added, err := ctx.State.Creneaux.Add(cr)
	if err != nil {
		return fmt.Errorf("failed to add slot: %w", err)
	}
	fmt.Printf("✓ Créneau ajouté : %s le %s de %s à %s (ID: %d)\n",
		b.FullName(), utils.FormatDisplayDate(added.Date), added.HeureDebut, added.HeureFin, added.ID)
	return nil
}

type ListCmd struct {
	Date         string `short:"d" help:"Jour précis."`
	Beneficiaire int64  `short:"b" help:"ID du bénéficiaire."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}

	list := ctx.State.Creneaux.List()
	if c.Date != "" {
		date, err := ctx.ResolveDate(c.Date)
		if err != nil {
			return err
		}
		list = ctx.State.Creneaux.ByDate(date)
	}
	if c.Beneficiaire != 0 {
		list = slices.DeleteFunc(list, func(cr models.Creneau) bool { return cr.BeneficiaireID != c.Beneficiaire })
	}

	if len(list) == 0 {
		fmt.Println("Aucun créneau.")
		return nil
	}
	fmt.Println("Créneaux :")
	for _, cr := range list {
		fmt.Printf("  %s %s-%s  %s (ID: %d) %s\n",
			utils.FormatDisplayDate(cr.Date), cr.HeureDebut, cr.HeureFin, ctx.BeneficiaryName(cr.BeneficiaireID), cr.ID, cr.Type)
	}
	return nil
}

type DeleteCmd struct {
	ID int64 `arg:"" help:"ID du créneau."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	if err := ctx.State.Creneaux.Delete(c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Créneau supprimé (ID: %d)\n", c.ID)
	return nil
}
