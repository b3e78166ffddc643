package transmissions

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/utils"
	"github.com/julianstephens/aidant/internal/validation"
)

type AddCmd struct {
	Beneficiaire int64    `arg:"" help:"ID du bénéficiaire."`
	Date         string   `short:"d" help:"Date de la visite (par défaut : aujourd'hui)."`
	Heure        string   `help:"Heure de la visite (HH:MM)."`
	Humeur       string   `help:"Humeur (bien, moyen, mauvais)."`
	Appetit      string   `help:"Appétit (bien, moyen, mauvais)."`
	Sommeil      string   `help:"Sommeil (bien, moyen, mauvais)."`
	Mobilite     string   `help:"Mobilité (bien, moyen, mauvais)."`
	Hygiene      string   `help:"Hygiène (bien, moyen, mauvais)."`
	Taches       []string `short:"t" help:"Tâches réalisées (toilette, repas, courses...)." sep:","`
	Observations string   `short:"o" help:"Observations."`
	Incidents    string   `help:"Incidents."`
	Message      string   `short:"m" help:"Message pour la famille."`
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
	heure := c.Heure
	if heure != "" {
		if heure, err = utils.NormalizeTime(heure); err != nil {
			return fmt.Errorf("heure invalide %q, format attendu HH:MM", c.Heure)
		}
	}

	t := models.Transmission{
		BeneficiaireID: b.ID,
		Date:           date,
		Heure:          heure,
		Observations:   c.Observations,
		Incidents:      c.Incidents,
		MessageFamille: c.Message,
	}
	values := map[models.RatingField]string{
		models.RatingHumeur:   c.Humeur,
		models.RatingAppetit:  c.Appetit,
		models.RatingSommeil:  c.Sommeil,
		models.RatingMobilite: c.Mobilite,
		models.RatingHygiene:  c.Hygiene,
	}
	for _, field := range models.RatingFields {
		r, err := ParseRating(values[field])
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		*t.Rating(field) = r
	}
	for _, task := range c.Taches {
		task = strings.ToLower(strings.TrimSpace(task))
		if !slices.Contains(constants.TransmissionTasks, task) {
			return fmt.Errorf("tâche inconnue %q (attendu : %s)", task, strings.Join(constants.TransmissionTasks, ", "))
		}
		t.TachesRealisees = append(t.TachesRealisees, task)
	}
	if err := validation.Struct(t); err != nil {
		return err
	}

	added, err := ctx.State.Transmissions.Add(t)
	if err != nil {
		return fmt.Errorf("failed to add transmission: %w", err)
	}
	fmt.Printf("✓ Transmission enregistrée pour %s le %s (ID: %d)\n", b.FullName(), utils.FormatDisplayDate(added.Date), added.ID)
	return nil
}

type ListCmd struct {
	Beneficiaire int64  `short:"b" help:"ID du bénéficiaire."`
	Date         string `short:"d" help:"Jour précis."`
	Verbose      bool   `short:"v" help:"Afficher le détail de chaque transmission."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}

	list := ctx.State.Transmissions.List()
	if c.Beneficiaire != 0 {
		list = ctx.State.Transmissions.ByBeneficiary(c.Beneficiaire)
	}
	if c.Date != "" {
		date, err := ctx.ResolveDate(c.Date)
		if err != nil {
			return err
		}
		list = slices.DeleteFunc(list, func(t models.Transmission) bool { return t.Date != date })
	}

	if len(list) == 0 {
		fmt.Println("Aucune transmission.")
		return nil
	}
	for _, t := range list {
		if c.Verbose {
			printTransmission(ctx, t)
			continue
		}
		fmt.Printf("  %s %s  %s (ID: %d)  %s\n", utils.FormatDisplayDate(t.Date), t.Heure,
			ctx.BeneficiaryName(t.BeneficiaireID), t.ID, ratingsLine(t))
	}
	return nil
}

type LastCmd struct {
	Beneficiaire int64 `arg:"" help:"ID du bénéficiaire."`
}

func (c *LastCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	if _, err := ctx.Beneficiary(c.Beneficiaire); err != nil {
		return err
	}
	t, ok := ctx.State.Transmissions.LastByBeneficiary(c.Beneficiaire)
	if !ok {
		fmt.Println("Aucune transmission pour ce bénéficiaire.")
		return nil
	}
	printTransmission(ctx, t)
	return nil
}

// RateCmd sets one assessment, or cycles it when no value is given.
type RateCmd struct {
	ID      int64  `arg:"" help:"ID de la transmission."`
	Critere string `arg:"" help:"Critère (humeur, appetit, sommeil, mobilite, hygiene)."`
	Valeur  string `arg:"" optional:"" help:"bien, moyen, mauvais ou - pour effacer. Sans valeur : passe à la suivante."`
}

func (c *RateCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	field, err := models.ParseRatingField(c.Critere)
	if err != nil {
		return err
	}

	var t models.Transmission
	if c.Valeur == "" {
		t, err = ctx.State.Transmissions.CycleRating(c.ID, field)
	} else {
		var r *constants.Rating
		if c.Valeur != "-" {
			if r, err = ParseRating(c.Valeur); err != nil {
				return err
			}
		}
		t, err = ctx.State.Transmissions.SetRating(c.ID, field, r)
	}
	if err != nil {
		return err
	}
	fmt.Printf("✓ %s : %s\n", field, models.FormatRating(*t.Rating(field)))
	return nil
}

type DeleteCmd struct {
	ID int64 `arg:"" help:"ID de la transmission."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	if err := ctx.State.Transmissions.Delete(c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Transmission supprimée (ID: %d)\n", c.ID)
	return nil
}

// ParseRating reads a rating flag; an empty value means unset.
func ParseRating(s string) (*constants.Rating, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, nil
	}
	r := constants.Rating(s)
	switch r {
	case constants.RatingBien, constants.RatingMoyen, constants.RatingMauvais:
		return &r, nil
	}
	return nil, fmt.Errorf("évaluation invalide %q (bien, moyen, mauvais)", s)
}

func ratingsLine(t models.Transmission) string {
	parts := make([]string, len(models.RatingFields))
	for i, f := range models.RatingFields {
		parts[i] = fmt.Sprintf("%s:%s", f, models.FormatRating(*t.Rating(f)))
	}
	return strings.Join(parts, " ")
}

func printTransmission(ctx *cli.Context, t models.Transmission) {
	fmt.Printf("%s, %s %s (ID: %d)\n", ctx.BeneficiaryName(t.BeneficiaireID), utils.FormatDisplayDate(t.Date), t.Heure, t.ID)
	for _, f := range models.RatingFields {
		fmt.Printf("  %-10s %s\n", f, models.FormatRating(*t.Rating(f)))
	}
	if len(t.TachesRealisees) > 0 {
		fmt.Printf("  Tâches :   %s\n", strings.Join(t.TachesRealisees, ", "))
	}
	if t.Observations != "" {
		fmt.Printf("  Observations : %s\n", t.Observations)
	}
	if t.Incidents != "" {
		fmt.Printf("  Incidents : %s\n", t.Incidents)
	}
	if t.MessageFamille != "" {
		fmt.Printf("  Message famille : %s\n", t.MessageFamille)
	}
}
