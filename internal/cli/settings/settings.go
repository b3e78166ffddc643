package settings

import (
	"fmt"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"Afficher les réglages actuels."`

	Timezone        *string  `help:"Fuseau horaire IANA (ex. Europe/Paris) ou Local."`
	SemainesParMois *float64 `help:"Nombre de semaines par mois pour les estimations." name:"semaines-par-mois"`
	Devise          *string  `help:"Symbole monétaire affiché."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings := ctx.State.Settings.Get()

	if c.List {
		fmt.Println("Réglages :")
		fmt.Printf("  Fuseau horaire :     %s\n", settings.Timezone)
		fmt.Printf("  Semaines par mois :  %.2f\n", settings.SemainesParMois)
		fmt.Printf("  Devise :             %s\n", settings.Devise)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("fuseau horaire invalide: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.SemainesParMois != nil {
		if *c.SemainesParMois <= 0 || *c.SemainesParMois > 5 {
			return fmt.Errorf("semaines par mois doit être compris entre 0 et 5")
		}
		settings.SemainesParMois = *c.SemainesParMois
		updated = true
	}
	if c.Devise != nil {
		if *c.Devise == "" {
			return fmt.Errorf("la devise ne peut pas être vide")
		}
		settings.Devise = *c.Devise
		updated = true
	}

	if updated {
		if err := ctx.State.Settings.Save(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Réglages mis à jour.")
	} else {
		fmt.Println("Aucune modification. Utilisez --list pour voir les réglages ou les options pour les modifier.")
	}

	return nil
}
