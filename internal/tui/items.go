package tui

import (
	"fmt"
	"strings"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/utils"
)

type beneficiaryItem struct {
	b        models.Beneficiary
	currency string
	weeks    float64
}

func (i beneficiaryItem) Title() string {
	title := i.b.FullName()
	if i.b.Civilite != "" {
		title = i.b.Civilite + " " + title
	}
	if !i.b.IsActive() {
		title += fmt.Sprintf(" (%s)", i.b.Statut)
	}
	return title
}

func (i beneficiaryItem) Description() string {
	e := utils.EstimateBeneficiary(i.b, i.weeks)
	return fmt.Sprintf("%s · %.1f h/sem · %s/mois", cli.FormatSlots(i.b.CreneauxHabituels), e.HeuresSemaine, utils.FormatEuros(e.TotalMois, i.currency))
}

func (i beneficiaryItem) FilterValue() string {
	return i.b.FullName() + " " + i.b.Adresse.Ville
}

type transmissionItem struct {
	t    models.Transmission
	name string
}

func (i transmissionItem) Title() string {
	title := fmt.Sprintf("%s  %s", utils.FormatDisplayDate(i.t.Date), i.name)
	if i.t.Heure != "" {
		title += " à " + i.t.Heure
	}
	if i.t.Incidents != "" {
		title = "⚠ " + title
	}
	return title
}

func (i transmissionItem) Description() string {
	var parts []string
	for n, field := range models.RatingFields {
		parts = append(parts, fmt.Sprintf("%d.%s %s", n+1, field, models.FormatRating(*i.t.Rating(field))))
	}
	return strings.Join(parts, "  ")
}

func (i transmissionItem) FilterValue() string {
	return i.name + " " + i.t.Observations
}

type noteItem struct {
	n    models.Note
	name string
}

func (i noteItem) Title() string {
	prefix := ""
	switch i.n.Importance {
	case constants.ImportanceUrgente:
		prefix = "‼ "
	case constants.ImportanceImportante:
		prefix = "! "
	}
	return fmt.Sprintf("%s%s · %s", prefix, i.name, i.n.Categorie)
}

func (i noteItem) Description() string {
	return utils.FormatDisplayDate(i.n.Date) + "  " + i.n.Contenu
}

func (i noteItem) FilterValue() string {
	return i.name + " " + i.n.Contenu
}

type badgeItem struct {
	b models.Badge
}

func (i badgeItem) Title() string {
	if i.b.Unlocked {
		return i.b.Icone + " " + i.b.Nom
	}
	return "🔒 " + i.b.Nom
}

func (i badgeItem) Description() string {
	if i.b.Unlocked && i.b.UnlockedAt != nil {
		return fmt.Sprintf("%s (obtenu le %s)", i.b.Description, i.b.UnlockedAt.Format(constants.DisplayDateFormat))
	}
	return i.b.Description
}

func (i badgeItem) FilterValue() string { return i.b.Nom }
