package system

import (
	"fmt"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/validation"
)

// ValidateCmd reports overlapping recurring slots and clashing interventions.
type ValidateCmd struct {
	From string `help:"Ne vérifier que les interventions à partir de cette date."`
	To   string `help:"Ne vérifier que les interventions jusqu'à cette date."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}

	interventions := ctx.State.Interventions.List()
	if c.From != "" || c.To != "" {
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
		interventions = ctx.State.Interventions.Between(from, to)
	}

	v := validation.New()
	beneficiaries := ctx.State.Beneficiaries.List()
	schedule := v.ValidateSchedule(beneficiaries)
	planning := v.ValidateInterventions(interventions, beneficiaries)

	fmt.Println("Créneaux habituels :")
	fmt.Println(schedule.FormatReport())
	fmt.Println()
	fmt.Println("Interventions :")
	fmt.Println(planning.FormatReport())

	if schedule.HasConflicts() || planning.HasConflicts() {
		return fmt.Errorf("%d conflit(s) détecté(s)", len(schedule.Conflicts)+len(planning.Conflicts))
	}
	return nil
}
