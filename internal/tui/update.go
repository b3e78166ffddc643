package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/tui/components/planning"
	"github.com/julianstephens/aidant/internal/validation"
)

// refreshMsg reloads the lists after a store mutation and shows status.
type refreshMsg struct {
	status string
	err    error
	action string
}

func refreshCmd(action, status string, err error) tea.Cmd {
	return func() tea.Msg { return refreshMsg{action: action, status: status, err: err} }
}

func confirm(message string, action func() tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		return constants.ConfirmationMsg{Message: message, Action: action}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	case constants.ConfirmationMsg:
		m.confirmMessage = msg.Message
		m.pendingAction = msg.Action
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil
	case refreshMsg:
		m.refresh()
		if msg.err != nil {
			m.report(msg.action, msg.err)
		} else if msg.status != "" {
			m.statusMessage = successStyle.Render(msg.status)
		}
		return m, nil
	}

	switch m.state {
	case constants.StateLogin, constants.StateOnboarding, constants.StateEditing:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirm(msg)
	}
	return m.updateMain(msg)
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc && m.state == constants.StateEditing {
		m.formError = ""
		m.form = nil
		m.state = m.previousState
		return m, nil
	}
	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.completeForm()
	case huh.StateAborted:
		if m.state != constants.StateEditing {
			m.quitting = true
			return m, tea.Quit
		}
		m.form = nil
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

// completeForm applies the finished form. On error the form is rebuilt with
// the values already typed so the user can correct them.
func (m Model) completeForm() (tea.Model, tea.Cmd) {
	status, err := m.applyForm()
	if err != nil {
		m.formError = err.Error()
		m.reopenForm()
		return m, m.form.Init()
	}
	m.formError = ""

	switch m.formKind {
	case formAuth, formOnboarding:
		m.route()
		if m.form != nil {
			return m, m.form.Init()
		}
		return m, nil
	}

	m.form = nil
	m.state = m.previousState
	m.refresh()
	m.statusMessage = successStyle.Render(status)
	return m, nil
}

func (m *Model) applyForm() (string, error) {
	switch m.formKind {
	case formAuth:
		return "", m.submitAuth()
	case formOnboarding:
		return "", m.submitOnboarding()
	case formProfile:
		return "✓ Profil enregistré", m.saveProfile()
	case formBeneficiaryAdd:
		var b models.Beneficiary
		if err := m.beneficiaryForm.apply(&b); err != nil {
			return "", err
		}
		if err := validation.Struct(b); err != nil {
			return "", err
		}
		added, err := m.store.Beneficiaries.Add(b)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("✓ %s ajouté(e)", added.FullName()), nil
	case formBeneficiaryEdit:
		b, ok := m.store.Beneficiaries.GetByID(m.editingID)
		if !ok {
			return "", fmt.Errorf("bénéficiaire introuvable (ID: %d)", m.editingID)
		}
		if err := m.beneficiaryForm.apply(&b); err != nil {
			return "", err
		}
		if err := validation.Struct(b); err != nil {
			return "", err
		}
		updated, err := m.store.Beneficiaries.Update(m.editingID, func(dst *models.Beneficiary) { *dst = b })
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("✓ %s modifié(e)", updated.FullName()), nil
	case formNote:
		n := m.noteForm.build(m.today().Format(constants.DateFormat))
		if err := validation.Struct(n); err != nil {
			return "", err
		}
		if _, err := m.store.Notes.Add(n); err != nil {
			return "", err
		}
		return "✓ Note ajoutée", nil
	case formTransmission:
		now := m.now()
		t := m.transmissionForm.build(m.today().Format(constants.DateFormat), now.In(m.today().Location()).Format("15:04"))
		if err := validation.Struct(t); err != nil {
			return "", err
		}
		if _, err := m.store.Transmissions.Add(t); err != nil {
			return "", err
		}
		return "✓ Transmission enregistrée", nil
	}
	return "", nil
}

func (m *Model) reopenForm() {
	switch m.formKind {
	case formAuth:
		m.form = newAuthForm(m.authForm)
	case formOnboarding:
		m.form = newProfileForm(m.profileForm, true)
	case formProfile:
		m.form = newProfileForm(m.profileForm, false)
	case formBeneficiaryAdd:
		m.form = newBeneficiaryForm(m.beneficiaryForm, "Nouveau bénéficiaire")
	case formBeneficiaryEdit:
		m.form = newBeneficiaryForm(m.beneficiaryForm, "Modifier le bénéficiaire")
	case formNote:
		m.form = newNoteForm(m.noteForm, m.store.Beneficiaries.List())
	case formTransmission:
		m.form = newTransmissionForm(m.transmissionForm, m.store.Beneficiaries.List())
	}
}

// openForm shows form in the editing state and remembers where to go back.
func (m *Model) openForm(kind formKind) tea.Cmd {
	m.formKind = kind
	m.formError = ""
	m.statusMessage = ""
	m.reopenForm()
	m.previousState = m.state
	m.state = constants.StateEditing
	return m.form.Init()
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "o", "O", "y", "Y":
		var cmd tea.Cmd
		if m.pendingAction != nil {
			cmd = m.pendingAction()
		}
		m.pendingAction = nil
		m.state = m.previousState
		return m, cmd
	case "n", "N", "esc":
		m.pendingAction = nil
		m.state = m.previousState
	}
	return m, nil
}

func nextTab(current constants.SessionState, step int) constants.SessionState {
	for i, t := range tabs {
		if t.state == current {
			return tabs[(i+step+len(tabs))%len(tabs)].state
		}
	}
	return tabs[0].state
}

// filtering reports whether the active list is capturing keys for its filter.
func (m Model) filtering() bool {
	if l := m.activeList(); l != nil {
		return l.FilterState() == list.Filtering
	}
	return false
}

func (m *Model) activeList() *list.Model {
	switch m.state {
	case constants.StateBeneficiaries:
		return &m.beneficiaries
	case constants.StateTransmissions:
		return &m.transmissions
	case constants.StateNotes:
		return &m.notes
	case constants.StateBadges:
		return &m.badges
	}
	return nil
}

func (m Model) updateMain(msg tea.Msg) (tea.Model, tea.Cmd) {
	st := m.store

	switch msg := msg.(type) {
	case planning.WeekChangedMsg:
		m.refresh()
		return m, nil
	case planning.GenerateWeekMsg:
		created, err := st.Interventions.GenerateWeek(msg.Monday, st.Beneficiaries.Actifs())
		return m, refreshCmd("générer la semaine", fmt.Sprintf("✓ %d intervention(s) générée(s)", len(created)), err)
	case planning.SetStatusMsg:
		_, err := st.Interventions.SetStatus(msg.ID, msg.Status)
		return m, refreshCmd("changer le statut", fmt.Sprintf("✓ Intervention %s", msg.Status), err)
	case planning.DeleteInterventionMsg:
		id := msg.ID
		return m, confirm("Supprimer cette intervention ?", func() tea.Cmd {
			return refreshCmd("supprimer l'intervention", "✓ Intervention supprimée", st.Interventions.Delete(id))
		})
	case tea.KeyMsg:
		if m.filtering() {
			break
		}
		switch {
		case msg.String() == "q":
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = nextTab(m.state, 1)
			m.statusMessage = ""
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = nextTab(m.state, -1)
			m.statusMessage = ""
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if handled, cmd := m.handleScreenKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StatePlanning:
		m.planning, cmd = m.planning.Update(msg)
	default:
		if l := m.activeList(); l != nil {
			*l, cmd = l.Update(msg)
		}
	}
	return m, cmd
}

// handleScreenKey runs the action bound to msg on the current tab.
func (m *Model) handleScreenKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	st := m.store

	switch m.state {
	case constants.StateBeneficiaries:
		switch {
		case key.Matches(msg, m.keys.Add):
			m.beneficiaryForm = newBeneficiaryFormModel(models.Beneficiary{})
			return true, m.openForm(formBeneficiaryAdd)
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.beneficiaries.SelectedItem().(beneficiaryItem); ok {
				m.editingID = i.b.ID
				m.beneficiaryForm = newBeneficiaryFormModel(i.b)
				return true, m.openForm(formBeneficiaryEdit)
			}
			return true, nil
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.beneficiaries.SelectedItem().(beneficiaryItem); ok {
				id, name := i.b.ID, i.b.FullName()
				return true, confirm(fmt.Sprintf("Supprimer %s ? Ses interventions et notes sont conservées.", name), func() tea.Cmd {
					return refreshCmd("supprimer le bénéficiaire", fmt.Sprintf("✓ %s supprimé(e)", name), st.Beneficiaries.Delete(id))
				})
			}
			return true, nil
		}

	case constants.StateTransmissions:
		switch {
		case key.Matches(msg, m.keys.Add):
			return true, m.openRecordForm(formTransmission)
		case key.Matches(msg, m.keys.Rate):
			if i, ok := m.transmissions.SelectedItem().(transmissionItem); ok {
				field := models.RatingFields[int(msg.Runes[0]-'1')]
				_, err := st.Transmissions.CycleRating(i.t.ID, field)
				return true, refreshCmd("changer l'évaluation", "", err)
			}
			return true, nil
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.transmissions.SelectedItem().(transmissionItem); ok {
				id := i.t.ID
				return true, confirm("Supprimer cette transmission ?", func() tea.Cmd {
					return refreshCmd("supprimer la transmission", "✓ Transmission supprimée", st.Transmissions.Delete(id))
				})
			}
			return true, nil
		}

	case constants.StateNotes:
		switch {
		case key.Matches(msg, m.keys.Add):
			return true, m.openRecordForm(formNote)
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.notes.SelectedItem().(noteItem); ok {
				id := i.n.ID
				return true, confirm("Supprimer cette note ?", func() tea.Cmd {
					return refreshCmd("supprimer la note", "✓ Note supprimée", st.Notes.Delete(id))
				})
			}
			return true, nil
		}

	case constants.StateBadges:
		if key.Matches(msg, m.keys.Enter) {
			if i, ok := m.badges.SelectedItem().(badgeItem); ok {
				b, err := st.Badges.Toggle(i.b.ID)
				status := "🔒 " + b.Nom + " verrouillé"
				if b.Unlocked {
					status = "✓ " + b.Nom + " débloqué"
				}
				return true, refreshCmd("basculer le badge", status, err)
			}
			return true, nil
		}

	case constants.StateProfile:
		switch {
		case key.Matches(msg, m.keys.Edit):
			m.profileForm = newProfileFormModel(st.Profile.Get())
			return true, m.openForm(formProfile)
		case key.Matches(msg, m.keys.Logout):
			if err := st.Auth.Logout(); err != nil {
				m.report("se déconnecter", err)
				return true, nil
			}
			m.statusMessage = ""
			m.route()
			return true, m.Init()
		}
	}
	return false, nil
}

// openRecordForm opens a note or transmission form, which needs at least one beneficiary.
func (m *Model) openRecordForm(kind formKind) tea.Cmd {
	benefs := m.store.Beneficiaries.List()
	if len(benefs) == 0 {
		m.statusMessage = warningStyle.Render("Ajoutez d'abord un bénéficiaire.")
		return nil
	}
	switch kind {
	case formNote:
		m.noteForm = &NoteFormModel{
			BeneficiaireID: benefs[0].ID,
			Categorie:      string(constants.CategorieSante),
			Importance:     string(constants.ImportanceNormale),
		}
	case formTransmission:
		m.transmissionForm = &TransmissionFormModel{BeneficiaireID: benefs[0].ID}
	}
	return m.openForm(kind)
}
