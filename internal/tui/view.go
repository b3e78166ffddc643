package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/aidant/internal/cli"
	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case constants.StateLogin, constants.StateOnboarding:
		return docStyle.Render(m.viewForm())
	}

	var content string
	switch m.state {
	case constants.StateDashboard:
		content = m.viewDashboard()
	case constants.StateBeneficiaries:
		content = docStyle.Render(m.beneficiaries.View())
	case constants.StatePlanning:
		content = docStyle.Render(m.planning.View())
	case constants.StateTransmissions:
		content = docStyle.Render(m.transmissions.View())
	case constants.StateNotes:
		content = docStyle.Render(m.notes.View())
	case constants.StateBadges:
		content = docStyle.Render(m.viewBadges())
	case constants.StateProfile:
		content = docStyle.Render(m.viewProfile())
	case constants.StateEditing:
		content = docStyle.Render(m.viewForm())
	case constants.StateConfirmDelete:
		content = m.viewConfirm()
	}

	var banner string
	if m.validationWarning != "" && (m.state == constants.StatePlanning || m.state == constants.StateDashboard) {
		banner = m.viewConflictBanner()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.statusMessage,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	current := m.state
	if current == constants.StateEditing || current == constants.StateConfirmDelete {
		current = m.previousState
	}
	var rendered []string
	for _, t := range tabs {
		if t.state == current {
			rendered = append(rendered, activeTabStyle.Render(t.title))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(t.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewForm() string {
	var b strings.Builder
	switch m.state {
	case constants.StateLogin:
		b.WriteString(titleStyle.Render("aidant · carnet de l'aide à domicile") + "\n\n")
	case constants.StateOnboarding:
		b.WriteString(titleStyle.Render("Bienvenue ! Complétons votre profil professionnel.") + "\n\n")
	}
	if m.formError != "" {
		b.WriteString(dangerStyle.Render(m.formError) + "\n\n")
	}
	if m.form != nil {
		b.WriteString(m.form.View())
	}
	return b.String()
}

func (m Model) viewDashboard() string {
	settings := m.store.Settings.Get()
	today := m.today()
	summary := utils.Summarize(m.store.Beneficiaries.List(), m.store.Interventions.List(), today, settings.SemainesParMois)
	unlocked, total := m.store.Badges.Unlocked()

	card := func(label, value string) string {
		return cardStyle.Render(labelStyle.Render(label) + "\n" + titleStyle.Render(value))
	}
	cards := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top,
			card("Bénéficiaires actifs", fmt.Sprintf("%d", summary.BeneficiairesActifs)),
			card("Heures / semaine", fmt.Sprintf("%.1f h", summary.HeuresSemaine)),
			card("Revenu / semaine", utils.FormatEuros(summary.RevenuSemaine, settings.Devise)),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			card("Revenu mensuel estimé", utils.FormatEuros(summary.RevenuMoisEstime, settings.Devise)),
			card("Réalisé ce mois", fmt.Sprintf("%s (%.0f %%)", utils.FormatEuros(summary.RevenuRealiseMois, settings.Devise), summary.ProgressionObjectif)),
			card("Badges", fmt.Sprintf("%d/%d", unlocked, total)),
		),
	)

	var b strings.Builder
	name := "!"
	if p := m.store.Profile.Get(); p.Prenom != "" {
		name = " " + p.Prenom + " !"
	}
	b.WriteString(titleStyle.Render("Bonjour"+name) + "\n")
	b.WriteString(labelStyle.Render(strings.ToUpper(string(utils.WeekdayName(today.Weekday())))+" "+today.Format(constants.DisplayDateFormat)) + "\n\n")
	b.WriteString(cards + "\n\n")

	b.WriteString(titleStyle.Render("Aujourd'hui") + "\n")
	visits := m.store.Interventions.ByDate(today.Format(constants.DateFormat))
	if len(visits) == 0 {
		b.WriteString(labelStyle.Render("  Aucune intervention prévue") + "\n")
	}
	for _, i := range visits {
		fmt.Fprintf(&b, "  %s-%s  %s  [%s]\n", i.HeureDebut, i.HeureFin, m.beneficiaryName(i.BeneficiaireID), i.Statut)
	}

	var urgent []models.Note
	for _, n := range m.store.Notes.List() {
		if n.Importance == constants.ImportanceUrgente {
			urgent = append(urgent, n)
		}
	}
	if len(urgent) > 0 {
		b.WriteString("\n" + dangerStyle.Render(fmt.Sprintf("‼ %d note(s) urgente(s)", len(urgent))) + "\n")
		for _, n := range urgent {
			fmt.Fprintf(&b, "  %s : %s\n", m.beneficiaryName(n.BeneficiaireID), n.Contenu)
		}
	}
	return docStyle.Render(b.String())
}

func (m Model) beneficiaryName(id int64) string {
	if b, ok := m.store.Beneficiaries.GetByID(id); ok {
		return b.FullName()
	}
	return fmt.Sprintf("#%d", id)
}

func (m Model) viewBadges() string {
	unlocked, total := m.store.Badges.Unlocked()
	return titleStyle.Render(fmt.Sprintf("%d badge(s) débloqué(s) sur %d", unlocked, total)) + "\n\n" + m.badges.View()
}

func (m Model) viewProfile() string {
	p := m.store.Profile.Get()
	settings := m.store.Settings.Get()

	row := func(label, value string) string {
		if value == "" {
			value = "-"
		}
		return labelStyle.Render(fmt.Sprintf("%-22s", label)) + value + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(p.FullName()) + "\n\n")
	if sess, ok := m.store.Auth.Session(); ok {
		b.WriteString(row("Compte", sess.Email))
	}
	b.WriteString(row("Téléphone", p.Telephone))
	addr := strings.TrimSpace(strings.Join([]string{p.Adresse.Rue, p.Adresse.CodePostal, p.Adresse.Ville}, " "))
	b.WriteString(row("Adresse", addr))
	b.WriteString(row("Zone d'intervention", p.ZoneIntervention))
	b.WriteString(row("SIRET", p.NumeroSiret))
	b.WriteString(row("CESU", p.NumeroCesu))
	b.WriteString(row("Expérience", fmt.Sprintf("%d an(s)", p.ExperienceAnnees)))
	b.WriteString(row("Tarif horaire net", utils.FormatEuros(p.TarifHoraireNet, settings.Devise)))
	b.WriteString(row("Indemnité km", utils.FormatEuros(p.IndemniteKm, settings.Devise)))
	b.WriteString(row("Compétences", strings.Join(p.Competences, ", ")))
	b.WriteString(row("Disponibilités", cli.FormatSlots(p.Disponibilites)))

	if len(p.Diplomes) > 0 {
		b.WriteString("\n" + titleStyle.Render("Diplômes") + "\n")
		for _, d := range p.Diplomes {
			line := "  " + d.Intitule
			if d.Annee > 0 {
				line += fmt.Sprintf(" (%d)", d.Annee)
			}
			if d.Organisme != "" {
				line += ", " + d.Organisme
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

func (m Model) viewConfirm() string {
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(m.confirmMessage),
			"",
			"[o] Oui",
			"[n] Non",
		),
	)
}

func (m Model) viewConflictBanner() string {
	bannerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214")).
		Bold(true).
		Padding(0, 1)
	return bannerStyle.Render(m.validationWarning)
}
