package interventions

import (
	"fmt"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/logger"
	"github.com/julianstephens/aidant/internal/utils"
)

// GenerateCmd turns the recurring slots of active beneficiaries into planned interventions.
type GenerateCmd struct {
	Semaine string `arg:"" optional:"" help:"Une date de la semaine à planifier (par défaut : cette semaine)."`
}

func (c *GenerateCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	date, err := ctx.ResolveDate(c.Semaine)
	if err != nil {
		return err
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		return err
	}
	monday := utils.WeekStart(day)

	created, err := ctx.State.Interventions.GenerateWeek(monday, ctx.State.Beneficiaries.List())
	if err != nil {
		return fmt.Errorf("failed to generate week: %w", err)
	}
	logger.Info("Generated weekly interventions", "week", monday.Format(constants.DateFormat), "count", len(created))

	if len(created) == 0 {
		fmt.Printf("Semaine du %s déjà planifiée, aucune intervention créée.\n", monday.Format(constants.DisplayDateFormat))
		return nil
	}
	fmt.Printf("✓ %d intervention(s) créée(s) pour la semaine du %s\n", len(created), monday.Format(constants.DisplayDateFormat))
	for _, i := range created {
		fmt.Printf("  %s %s-%s  %s\n", utils.FormatDisplayDate(i.Date), i.HeureDebut, i.HeureFin, ctx.BeneficiaryName(i.BeneficiaireID))
	}
	return nil
}
