package profile

import (
	"fmt"
	"strings"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/utils"
	"github.com/julianstephens/aidant/internal/validation"
)

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}
	p := ctx.State.Profile.Get()
	currency := ctx.State.Settings.Get().Devise

	fmt.Printf("%s\n", p.FullName())
	fmt.Printf("  E-mail:         %s\n", p.Email)
	fmt.Printf("  Téléphone:      %s\n", p.Telephone)
	fmt.Printf("  Adresse:        %s, %s %s\n", p.Adresse.Rue, p.Adresse.CodePostal, p.Adresse.Ville)
	if p.NumeroSiret != "" {
		fmt.Printf("  SIRET:          %s\n", p.NumeroSiret)
	}
	if p.NumeroCesu != "" {
		fmt.Printf("  N° CESU:        %s\n", p.NumeroCesu)
	}
	fmt.Printf("  Expérience:     %d an(s)\n", p.ExperienceAnnees)
	fmt.Printf("  Compétences:    %s\n", strings.Join(p.Competences, ", "))
	fmt.Printf("  Zone:           %s\n", p.ZoneIntervention)
	fmt.Printf("  Tarif horaire:  %s net\n", utils.FormatEuros(p.TarifHoraireNet, currency))
	fmt.Printf("  Indemnité km:   %s\n", utils.FormatEuros(p.IndemniteKm, currency))
	fmt.Printf("  Disponibilités: %s\n", cli.FormatSlots(p.Disponibilites))
	fmt.Printf("  Photo:          %v\n", p.Photo != "")

	if len(p.Diplomes) > 0 {
		fmt.Println("  Diplômes:")
		for i, d := range p.Diplomes {
			line := fmt.Sprintf("    %d. %s", i+1, d.Intitule)
			if d.Annee > 0 {
				line += fmt.Sprintf(" (%d)", d.Annee)
			}
			if d.Organisme != "" {
				line += " - " + d.Organisme
			}
			fmt.Println(line)
		}
	}

	status := "incomplet"
	if p.OnboardingComplete {
		status = "complet"
	}
	fmt.Printf("  Profil:         %s\n", status)
	return nil
}

type SetCmd struct {
	Prenom        *string  `help:"Prénom."`
	Nom           *string  `help:"Nom."`
	Email         *string  `help:"Adresse e-mail de contact."`
	Telephone     *string  `help:"Téléphone."`
	Rue           *string  `help:"Adresse : rue."`
	CodePostal    *string  `help:"Adresse : code postal." name:"code-postal"`
	Ville         *string  `help:"Adresse : ville."`
	DateNaissance *string  `help:"Date de naissance (AAAA-MM-JJ)." name:"date-naissance"`
	Siret         *string  `help:"Numéro SIRET (14 chiffres)."`
	Cesu          *string  `help:"Numéro CESU."`
	Experience    *int     `help:"Années d'expérience."`
	Competences   []string `help:"Compétences (liste séparée par des virgules)." sep:","`
	Zone          *string  `help:"Zone d'intervention."`
	Tarif         *float64 `help:"Tarif horaire net en euros."`
	IndemniteKm   *float64 `help:"Indemnité kilométrique en euros." name:"indemnite-km"`
}

func (c *SetCmd) apply(p *models.Profile) bool {
	updated := false
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
			updated = true
		}
	}
	setString(&p.Prenom, c.Prenom)
	setString(&p.Nom, c.Nom)
	setString(&p.Email, c.Email)
	setString(&p.Telephone, c.Telephone)
	setString(&p.Adresse.Rue, c.Rue)
	setString(&p.Adresse.CodePostal, c.CodePostal)
	setString(&p.Adresse.Ville, c.Ville)
	setString(&p.DateNaissance, c.DateNaissance)
	setString(&p.NumeroSiret, c.Siret)
	setString(&p.NumeroCesu, c.Cesu)
	setString(&p.ZoneIntervention, c.Zone)
	if c.Experience != nil {
		p.ExperienceAnnees = *c.Experience
		updated = true
	}
	if c.Competences != nil {
		p.Competences = c.Competences
		updated = true
	}
	if c.Tarif != nil {
		p.TarifHoraireNet = *c.Tarif
		updated = true
	}
	if c.IndemniteKm != nil {
		p.IndemniteKm = *c.IndemniteKm
		updated = true
	}
	return updated
}

func (c *SetCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}

	next := ctx.State.Profile.Get()
	if !c.apply(&next) {
		fmt.Println("Aucune modification. Utilisez 'aidant profile show' pour voir le profil.")
		return nil
	}
	if err := validation.Struct(next); err != nil {
		return err
	}

	if _, err := ctx.State.Profile.Update(func(p *models.Profile) { c.apply(p) }); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	fmt.Println("✓ Profil mis à jour")
	return nil
}

type PhotoCmd struct {
	Path string `arg:"" help:"Fichier image (2 Mo maximum)." type:"existingfile"`
}

func (c *PhotoCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}
	if _, err := ctx.State.Profile.SetPhoto(c.Path); err != nil {
		return err
	}
	fmt.Println("✓ Photo enregistrée")
	return nil
}

type DiplomaAddCmd struct {
	Intitule  string `arg:"" help:"Intitulé du diplôme."`
	Annee     int    `help:"Année d'obtention."`
	Organisme string `help:"Organisme de formation."`
}

func (c *DiplomaAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}
	d := models.Diploma{Intitule: strings.TrimSpace(c.Intitule), Annee: c.Annee, Organisme: c.Organisme}
	if err := validation.Struct(d); err != nil {
		return err
	}
	if _, err := ctx.State.Profile.Update(func(p *models.Profile) {
		p.Diplomes = append(p.Diplomes, d)
	}); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	fmt.Printf("✓ Diplôme ajouté : %s\n", d.Intitule)
	return nil
}

type DiplomaRemoveCmd struct {
	Index int `arg:"" help:"Numéro du diplôme (voir 'aidant profile show')."`
}

func (c *DiplomaRemoveCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}
	diplomas := ctx.State.Profile.Get().Diplomes
	if c.Index < 1 || c.Index > len(diplomas) {
		return fmt.Errorf("numéro de diplôme invalide %d (1 à %d)", c.Index, len(diplomas))
	}
	removed := diplomas[c.Index-1]
	if _, err := ctx.State.Profile.Update(func(p *models.Profile) {
		p.Diplomes = append(p.Diplomes[:c.Index-1:c.Index-1], p.Diplomes[c.Index:]...)
	}); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	fmt.Printf("✓ Diplôme supprimé : %s\n", removed.Intitule)
	return nil
}

type AvailabilityAddCmd struct {
	Jour  string `arg:"" help:"Jour de la semaine (lundi ... dimanche)."`
	Debut string `arg:"" help:"Heure de début (HH:MM)."`
	Fin   string `arg:"" help:"Heure de fin (HH:MM)."`
}

func (c *AvailabilityAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}
	slot, err := cli.ParseWeeklySlot(c.Jour, c.Debut, c.Fin)
	if err != nil {
		return err
	}
	if _, err := ctx.State.Profile.Update(func(p *models.Profile) {
		p.Disponibilites = append(p.Disponibilites, slot)
	}); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	fmt.Printf("✓ Disponibilité ajoutée : %s %s-%s\n", slot.Jour, slot.HeureDebut, slot.HeureFin)
	return nil
}

type AvailabilityRemoveCmd struct {
	Index int `arg:"" help:"Numéro de la disponibilité (1 = première)."`
}

func (c *AvailabilityRemoveCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}
	slots := ctx.State.Profile.Get().Disponibilites
	if c.Index < 1 || c.Index > len(slots) {
		return fmt.Errorf("numéro de disponibilité invalide %d (1 à %d)", c.Index, len(slots))
	}
	if _, err := ctx.State.Profile.Update(func(p *models.Profile) {
		p.Disponibilites = append(p.Disponibilites[:c.Index-1:c.Index-1], p.Disponibilites[c.Index:]...)
	}); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	fmt.Println("✓ Disponibilité supprimée")
	return nil
}

// CompleteCmd ends onboarding once the required identity fields are filled.
type CompleteCmd struct{}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireSession(); err != nil {
		return err
	}
	p := ctx.State.Profile.Get()
	if p.OnboardingComplete {
		fmt.Println("Le profil est déjà complet.")
		return nil
	}
	if err := validation.Struct(p); err != nil {
		return fmt.Errorf("profil incomplet: %w", err)
	}
	if _, err := ctx.State.Profile.CompleteOnboarding(); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	fmt.Println("✓ Profil complet, bienvenue !")
	return nil
}
