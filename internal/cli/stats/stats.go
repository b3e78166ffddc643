package stats

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// StatsCmd prints the dashboard: this week's projections and this month's progress.
type StatsCmd struct {
	Mois string `help:"Une date du mois à résumer (par défaut : aujourd'hui)."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}

	now := ctx.Today()
	if c.Mois != "" {
		date, err := ctx.ResolveDate(c.Mois)
		if err != nil {
			return err
		}
		if now, err = utils.ParseDate(date); err != nil {
			return err
		}
	}

	settings := ctx.State.Settings.Get()
	money := func(v float64) string { return utils.FormatEuros(v, settings.Devise) }
	s := utils.Summarize(ctx.State.Beneficiaries.List(), ctx.State.Interventions.List(), now, settings.SemainesParMois)

	fmt.Println(titleStyle.Render("Tableau de bord"))
	fmt.Printf("  Bénéficiaires actifs :   %d\n", s.BeneficiairesActifs)
	fmt.Printf("  Heures / semaine :       %.2fh\n", s.HeuresSemaine)
	fmt.Printf("  Revenu / semaine :       %s\n", money(s.RevenuSemaine))
	fmt.Printf("  Revenu mensuel estimé :  %s\n", money(s.RevenuMoisEstime))
	fmt.Printf("  Indemnités km / mois :   %s\n", money(s.IndemnitesMois))

	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("Mois en cours (%s)", now.Format("01/2006"))))
	fmt.Printf("  Interventions :          %d (%d à venir, %d annulées)\n", s.InterventionsMois, s.InterventionsAVenir, s.InterventionsAnnulees)
	fmt.Printf("  Heures réalisées :       %.2fh\n", s.HeuresRealiseesMois)
	fmt.Printf("  Revenu réalisé :         %s\n", money(s.RevenuRealiseMois))
	fmt.Printf("  Objectif atteint :       %.0f %% %s\n", s.ProgressionObjectif,
		dimStyle.Render(fmt.Sprintf("(%.0f %% du mois écoulé)", s.MoisEcoulePourcent)))

	today := now.Format(constants.DateFormat)
	todays := ctx.State.Interventions.ByDate(today)
	fmt.Println()
	fmt.Println(titleStyle.Render("Aujourd'hui"))
	if len(todays) == 0 {
		fmt.Println(dimStyle.Render("  Aucune intervention."))
	}
	for _, i := range todays {
		fmt.Printf("  %s-%s  %s [%s]\n", i.HeureDebut, i.HeureFin, ctx.BeneficiaryName(i.BeneficiaireID), i.Statut)
	}

	unlocked, total := ctx.State.Badges.Unlocked()
	fmt.Printf("\nBadges : %d/%d\n", unlocked, total)
	return nil
}

// EstimateCmd prints the projected workload for one beneficiary.
type EstimateCmd struct {
	Beneficiaire int64 `arg:"" help:"ID du bénéficiaire."`
}

func (c *EstimateCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	b, err := ctx.Beneficiary(c.Beneficiaire)
	if err != nil {
		return err
	}
	settings := ctx.State.Settings.Get()
	money := func(v float64) string { return utils.FormatEuros(v, settings.Devise) }
	e := utils.EstimateBeneficiary(b, settings.SemainesParMois)

	fmt.Println(titleStyle.Render("Estimation pour " + b.FullName()))
	fmt.Printf("  Créneaux :           %s\n", cli.FormatSlots(b.CreneauxHabituels))
	fmt.Printf("  Visites / semaine :  %d\n", e.VisitesSemaine)
	fmt.Printf("  Heures :             %.2fh/semaine, %.2fh/mois\n", e.HeuresSemaine, e.HeuresMois)
	fmt.Printf("  Salaire net :        %s/semaine, %s/mois\n", money(e.RevenuSemaine), money(e.RevenuMois))
	fmt.Printf("  Kilomètres :         %.1f km/semaine\n", e.KmSemaine)
	fmt.Printf("  Indemnités :         %s/semaine, %s/mois\n", money(e.IndemnitesSemaine), money(e.IndemnitesMois))
	fmt.Printf("  Total mensuel :      %s\n", money(e.TotalMois))
	fmt.Println(dimStyle.Render(fmt.Sprintf("  Base : %.2f semaines par mois, hors congés payés (%.0f %%).",
		settings.SemainesParMois, constants.PaidLeaveRate*100)))
	return nil
}
