package interventions

import (
	"fmt"
	"slices"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/utils"
)

type ListCmd struct {
	Date         string `short:"d" help:"Jour précis."`
	Semaine      string `short:"w" help:"Semaine contenant cette date." name:"semaine"`
	From         string `help:"Date de début (incluse)."`
	To           string `help:"Date de fin (incluse)."`
	Beneficiaire int64  `short:"b" help:"ID du bénéficiaire."`
	Statut       string `help:"Filtrer par statut (planifie, effectue, annule)."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}

	var list []models.Intervention
	switch {
	case c.Date != "":
		date, err := ctx.ResolveDate(c.Date)
		if err != nil {
			return err
		}
		list = ctx.State.Interventions.ByDate(date)
	case c.Semaine != "":
		date, err := ctx.ResolveDate(c.Semaine)
		if err != nil {
			return err
		}
		day, _ := utils.ParseDate(date)
		monday := utils.WeekStart(day)
		list = ctx.State.Interventions.Between(monday.Format(constants.DateFormat), monday.AddDate(0, 0, 6).Format(constants.DateFormat))
	case c.From != "" || c.To != "":
		from, to := "0000-01-01", "9999-12-31"
		var err error
		if c.From != "" {
			if from, err = ctx.ResolveDate(c.From); err != nil {
				return err
			}
		}
		if c.To != "" {
			if to, err = ctx.ResolveDate(c.To); err != nil {
				return err
			}
		}
		list = ctx.State.Interventions.Between(from, to)
	default:
		list = ctx.State.Interventions.List()
	}

	if c.Beneficiaire != 0 {
		list = slices.DeleteFunc(list, func(i models.Intervention) bool { return i.BeneficiaireID != c.Beneficiaire })
	}
	if c.Statut != "" {
		status, err := ParseStatus(c.Statut)
		if err != nil {
			return err
		}
		list = slices.DeleteFunc(list, func(i models.Intervention) bool { return i.Statut != status })
	}

	if len(list) == 0 {
		fmt.Println("Aucune intervention.")
		return nil
	}

	fmt.Println("Interventions :")
	currentDate := ""
	total := 0
	for _, i := range list {
		if i.Date != currentDate {
			currentDate = i.Date
			day, _ := utils.ParseDate(i.Date)
			fmt.Printf("\n  %s %s\n", utils.WeekdayName(day.Weekday()), utils.FormatDisplayDate(i.Date))
		}
		fmt.Printf("    %s-%s  [%s] %s (ID: %d) %s\n",
			i.HeureDebut, i.HeureFin, i.Statut, ctx.BeneficiaryName(i.BeneficiaireID), i.ID, i.Type)
		if i.Statut != constants.InterventionAnnule {
			total += utils.SlotMinutes(i)
		}
	}
	fmt.Printf("\nTotal : %s\n", utils.FormatMinutes(total))
	return nil
}

// ParseStatus checks an intervention status value.
func ParseStatus(s string) (constants.InterventionStatus, error) {
	switch st := constants.InterventionStatus(s); st {
	case constants.InterventionPlanifie, constants.InterventionEffectue, constants.InterventionAnnule:
		return st, nil
	}
	return "", fmt.Errorf("statut invalide %q (planifie, effectue, annule)", s)
}
