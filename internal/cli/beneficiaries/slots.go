package beneficiaries

import (
	"fmt"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/models"
)

type SlotAddCmd struct {
	ID    int64  `arg:"" help:"ID du bénéficiaire."`
	Jour  string `arg:"" help:"Jour de la semaine (lundi ... dimanche)."`
	Debut string `arg:"" help:"Heure de début (HH:MM)."`
	Fin   string `arg:"" help:"Heure de fin (HH:MM)."`
}

func (c *SlotAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	slot, err := cli.ParseWeeklySlot(c.Jour, c.Debut, c.Fin)
	if err != nil {
		return err
	}
	b, err := ctx.State.Beneficiaries.Update(c.ID, func(b *models.Beneficiary) {
		b.CreneauxHabituels = append(b.CreneauxHabituels, slot)
	})
	if err != nil {
		return fmt.Errorf("failed to add slot: %w", err)
	}
	fmt.Printf("✓ Créneau ajouté pour %s : %s %s-%s\n", b.FullName(), slot.Jour, slot.HeureDebut, slot.HeureFin)
	return nil
}

type SlotRemoveCmd struct {
	ID    int64 `arg:"" help:"ID du bénéficiaire."`
	Index int   `arg:"" help:"Numéro du créneau (1 = premier)."`
}

func (c *SlotRemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	current, ok := ctx.State.Beneficiaries.GetByID(c.ID)
	if !ok {
		return fmt.Errorf("bénéficiaire introuvable (ID: %d)", c.ID)
	}
	if c.Index < 1 || c.Index > len(current.CreneauxHabituels) {
		return fmt.Errorf("numéro de créneau invalide %d (1 à %d)", c.Index, len(current.CreneauxHabituels))
	}

	b, err := ctx.State.Beneficiaries.Update(c.ID, func(b *models.Beneficiary) {
		b.CreneauxHabituels = append(b.CreneauxHabituels[:c.Index-1:c.Index-1], b.CreneauxHabituels[c.Index:]...)
	})
	if err != nil {
		return fmt.Errorf("failed to remove slot: %w", err)
	}
	fmt.Printf("✓ Créneau supprimé, %s : %s\n", b.FullName(), cli.FormatSlots(b.CreneauxHabituels))
	return nil
}
