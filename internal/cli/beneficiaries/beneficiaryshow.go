package beneficiaries

import (
	"fmt"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/utils"
)

type ShowCmd struct {
	ID int64 `arg:"" help:"ID du bénéficiaire."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}

	b, ok := ctx.State.Beneficiaries.GetByID(c.ID)
	if !ok {
		return fmt.Errorf("bénéficiaire introuvable (ID: %d)", c.ID)
	}
	settings := ctx.State.Settings.Get()
	money := func(v float64) string { return utils.FormatEuros(v, settings.Devise) }

	fmt.Printf("%s %s (ID: %d) [%s]\n", b.Civilite, b.FullName(), b.ID, b.Statut)
	if b.DateNaissance != "" {
		fmt.Printf("  Né(e) le :      %s\n", utils.FormatDisplayDate(b.DateNaissance))
	}
	fmt.Printf("  Adresse :       %s, %s %s\n", b.Adresse.Rue, b.Adresse.CodePostal, b.Adresse.Ville)
	fmt.Printf("  Téléphone :     %s\n", b.Telephone)
	if b.NotesAcces != "" {
		fmt.Printf("  Accès :         %s\n", b.NotesAcces)
	}
	if b.ContactUrgence.Nom != "" {
		fmt.Printf("  Urgence :       %s (%s) %s\n", b.ContactUrgence.Nom, b.ContactUrgence.Lien, b.ContactUrgence.Telephone)
	}

	fmt.Println("\nContrat :")
	fmt.Printf("  Taux horaire :  %s net\n", money(b.Contrat.TauxHoraireNet))
	fmt.Printf("  Indemnité km :  %s (%.1f km/visite)\n", money(b.Contrat.IndemniteKm), b.Contrat.KmParVisite)
	if b.Contrat.DateDebut != "" {
		fmt.Printf("  Début :         %s\n", utils.FormatDisplayDate(b.Contrat.DateDebut))
	}
	fmt.Printf("  Créneaux :      %s\n", cli.FormatSlots(b.CreneauxHabituels))

	printHealth(b.Sante)

	e := utils.EstimateBeneficiary(b, settings.SemainesParMois)
	fmt.Println("\nEstimation :")
	fmt.Printf("  Heures :        %.2fh/semaine, %.2fh/mois\n", e.HeuresSemaine, e.HeuresMois)
	fmt.Printf("  Salaire :       %s/semaine, %s/mois\n", money(e.RevenuSemaine), money(e.RevenuMois))
	fmt.Printf("  Indemnités :    %s/mois (%.1f km/semaine)\n", money(e.IndemnitesMois), e.KmSemaine)
	fmt.Printf("  Total :         %s/mois\n", money(e.TotalMois))

	today := ctx.Today().Format(constants.DateFormat)
	upcoming := 0
	for _, i := range ctx.State.Interventions.ByBeneficiary(b.ID) {
		if i.Statut == constants.InterventionPlanifie && i.Date >= today {
			upcoming++
		}
	}
	fmt.Printf("\nInterventions à venir : %d\n", upcoming)
	fmt.Printf("Notes : %d\n", len(ctx.State.Notes.ByBeneficiary(b.ID)))
	if t, ok := ctx.State.Transmissions.LastByBeneficiary(b.ID); ok {
		fmt.Printf("Dernière transmission : %s %s (humeur %s)\n",
			utils.FormatDisplayDate(t.Date), t.Heure, models.FormatRating(t.Humeur))
	}
	return nil
}

func printHealth(h models.HealthNotes) {
	if h == (models.HealthNotes{}) {
		return
	}
	fmt.Println("\nSanté :")
	for _, line := range []struct{ label, value string }{
		{"Pathologies", h.Pathologies},
		{"Traitements", h.Traitements},
		{"Allergies", h.Allergies},
		{"Mobilité", h.Mobilite},
		{"Remarques", h.Remarques},
	} {
		if line.value != "" {
			fmt.Printf("  %-14s %s\n", line.label+" :", line.value)
		}
	}
}
