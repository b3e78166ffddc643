package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/logger"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/store"
	"github.com/julianstephens/aidant/internal/tui/components/planning"
	"github.com/julianstephens/aidant/internal/utils"
	"github.com/julianstephens/aidant/internal/validation"
)

// formKind identifies which form is open so its result can be applied.
type formKind int

const (
	formAuth formKind = iota
	formOnboarding
	formProfile
	formBeneficiaryAdd
	formBeneficiaryEdit
	formNote
	formTransmission
)

// tabs lists the main screens in tab order.
var tabs = []struct {
	state constants.SessionState
	title string
}{
	{constants.StateDashboard, "Accueil"},
	{constants.StateBeneficiaries, "Bénéficiaires"},
	{constants.StatePlanning, "Planning"},
	{constants.StateTransmissions, "Transmissions"},
	{constants.StateNotes, "Notes"},
	{constants.StateBadges, "Badges"},
	{constants.StateProfile, "Profil"},
}

type Model struct {
	store         *store.State
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	beneficiaries list.Model
	transmissions list.Model
	notes         list.Model
	badges        list.Model
	planning      planning.Model

	form              *huh.Form
	authForm          *AuthFormModel
	profileForm       *ProfileFormModel
	beneficiaryForm   *BeneficiaryFormModel
	noteForm          *NoteFormModel
	transmissionForm  *TransmissionFormModel
	formKind          formKind
	editingID         int64
	pendingAction     func() tea.Cmd
	confirmMessage    string
	formError         string
	statusMessage     string
	validationWarning string

	quitting bool
	width    int
	height   int
	now      func() time.Time
}

func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	return l
}

func NewModel(s *store.State) Model {
	return newModel(s, time.Now)
}

func newModel(s *store.State, now func() time.Time) Model {
	m := Model{
		store:         s,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		beneficiaries: newList("Bénéficiaires"),
		transmissions: newList("Transmissions"),
		notes:         newList("Notes"),
		badges:        newList("Badges"),
		now:           now,
	}
	m.planning = planning.New(m.today(), 0, 0)
	m.route()
	return m
}

// today is the current date in the configured timezone.
func (m Model) today() time.Time {
	t := m.now()
	if loc, err := utils.LoadLocation(m.store.Settings.Get().Timezone); err == nil {
		t = t.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// route sends the user to login, onboarding or the dashboard depending on
// the session and profile.
func (m *Model) route() {
	m.formError = ""
	switch m.store.Route() {
	case store.RouteLogin:
		m.authForm = &AuthFormModel{Mode: authLogin}
		m.form = newAuthForm(m.authForm)
		m.formKind = formAuth
		m.state = constants.StateLogin
	case store.RouteOnboarding:
		m.profileForm = newProfileFormModel(m.store.Profile.Get())
		m.form = newProfileForm(m.profileForm, true)
		m.formKind = formOnboarding
		m.state = constants.StateOnboarding
	default:
		m.form = nil
		m.state = constants.StateDashboard
		m.refresh()
	}
}

func (m *Model) submitAuth() error {
	f := m.authForm
	if f.Mode == authRegister {
		if _, err := m.store.Auth.Register(f.Email, f.Password, f.Prenom, f.Nom); err != nil {
			return err
		}
		if m.store.Profile.Get().Prenom == "" {
			if _, err := m.store.Profile.Update(func(p *models.Profile) {
				p.Prenom, p.Nom, p.Email = f.Prenom, f.Nom, f.Email
			}); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := m.store.Auth.Login(f.Email, f.Password)
	return err
}

func (m *Model) saveProfile() error {
	profile := m.store.Profile.Get()
	if err := m.profileForm.apply(&profile); err != nil {
		return err
	}
	if err := validation.Struct(profile); err != nil {
		return err
	}
	_, err := m.store.Profile.Update(func(p *models.Profile) { *p = profile })
	return err
}

func (m *Model) submitOnboarding() error {
	if err := m.saveProfile(); err != nil {
		return err
	}
	_, err := m.store.Profile.CompleteOnboarding()
	return err
}

// refresh reloads every list from the store.
func (m *Model) refresh() {
	settings := m.store.Settings.Get()
	benefs := m.store.Beneficiaries.List()
	names := make(map[int64]string, len(benefs))

	items := make([]list.Item, len(benefs))
	for i, b := range benefs {
		names[b.ID] = b.FullName()
		items[i] = beneficiaryItem{b: b, currency: settings.Devise, weeks: settings.SemainesParMois}
	}
	m.beneficiaries.SetItems(items)

	name := func(id int64) string {
		if n, ok := names[id]; ok {
			return n
		}
		return fmt.Sprintf("#%d", id)
	}

	trans := m.store.Transmissions.List()
	items = make([]list.Item, len(trans))
	for i, t := range trans {
		items[i] = transmissionItem{t: t, name: name(t.BeneficiaireID)}
	}
	m.transmissions.SetItems(items)

	notes := m.store.Notes.List()
	items = make([]list.Item, len(notes))
	for i, n := range notes {
		items[i] = noteItem{n: n, name: name(n.BeneficiaireID)}
	}
	m.notes.SetItems(items)

	badges := m.store.Badges.List()
	items = make([]list.Item, len(badges))
	for i, b := range badges {
		items[i] = badgeItem{b: b}
	}
	m.badges.SetItems(items)

	from, to := m.planning.Range()
	m.planning.SetInterventions(m.store.Interventions.Between(from, to), benefs)

	m.updateValidationStatus(benefs)
}

// updateValidationStatus counts schedule conflicts for the banner.
func (m *Model) updateValidationStatus(benefs []models.Beneficiary) {
	v := validation.New()
	schedule := v.ValidateSchedule(benefs)
	from, to := m.planning.Range()
	planned := v.ValidateInterventions(m.store.Interventions.Between(from, to), benefs)

	n := len(schedule.Conflicts) + len(planned.Conflicts)
	if n > 0 {
		m.validationWarning = fmt.Sprintf("⚠ %d conflit(s) de planning", n)
	} else {
		m.validationWarning = ""
	}
}

// report logs a failed store call and shows it in the status line.
func (m *Model) report(action string, err error) {
	if err == nil {
		return
	}
	logger.Error("TUI action failed", "action", action, "error", err)
	m.statusMessage = dangerStyle.Render(fmt.Sprintf("Erreur (%s) : %v", action, err))
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	h, v := docStyle.GetFrameSize()
	// Tabs, banner, status line and help take about six lines.
	listHeight := max(height-v-6, 3)
	for _, l := range []*list.Model{&m.beneficiaries, &m.transmissions, &m.notes, &m.badges} {
		l.SetSize(width-h, listHeight)
	}
	m.planning.SetSize(width-h, listHeight)
	m.help.Width = width
}

func (m Model) ShortHelp() []key.Binding {
	bindings := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateBeneficiaries:
		bindings = append(bindings, m.keys.Add, m.keys.Edit, m.keys.Delete)
	case constants.StatePlanning:
		pk := m.planning.Keys()
		bindings = append(bindings, pk.Generate, pk.Status, pk.PrevWeek, pk.NextWeek)
	case constants.StateTransmissions:
		bindings = append(bindings, m.keys.Add, m.keys.Rate, m.keys.Delete)
	case constants.StateNotes:
		bindings = append(bindings, m.keys.Add, m.keys.Delete)
	case constants.StateBadges:
		bindings = append(bindings, m.keys.Enter)
	case constants.StateProfile:
		bindings = append(bindings, m.keys.Edit, m.keys.Logout)
	}
	return bindings
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case constants.StateBeneficiaries:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete}
	case constants.StatePlanning:
		pk := m.planning.Keys()
		actions = []key.Binding{pk.Generate, pk.Status, pk.Delete, pk.PrevWeek, pk.NextWeek, pk.Today}
	case constants.StateTransmissions:
		actions = []key.Binding{m.keys.Add, m.keys.Rate, m.keys.Delete}
	case constants.StateNotes:
		actions = []key.Binding{m.keys.Add, m.keys.Delete}
	case constants.StateProfile:
		actions = []key.Binding{m.keys.Edit, m.keys.Logout}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}
