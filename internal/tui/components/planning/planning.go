package planning

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/aidant/internal/constants"
	"github.com/julianstephens/aidant/internal/models"
	"github.com/julianstephens/aidant/internal/utils"
)

type GenerateWeekMsg struct {
	Monday time.Time
}

type SetStatusMsg struct {
	ID     int64
	Status constants.InterventionStatus
}

type DeleteInterventionMsg struct {
	ID int64
}

// WeekChangedMsg asks the parent to reload interventions for the displayed week.
type WeekChangedMsg struct {
	Monday time.Time
}

type KeyMap struct {
	PrevWeek key.Binding
	NextWeek key.Binding
	Up       key.Binding
	Down     key.Binding
	Status   key.Binding
	Generate key.Binding
	Delete   key.Binding
	Today    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevWeek: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "semaine préc."),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "semaine suiv."),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "haut"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "bas"),
		),
		Status: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("s", "changer statut"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "générer la semaine"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "supprimer"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cette semaine"),
		),
	}
}

var (
	dayStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	todayStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cancelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// Model displays one week of interventions, Monday first.
type Model struct {
	keys          KeyMap
	today         time.Time
	monday        time.Time
	interventions []models.Intervention
	names         map[int64]string
	cursor        int
	width         int
	height        int
}

func New(today time.Time, width, height int) Model {
	return Model{
		keys:   DefaultKeyMap(),
		today:  today,
		monday: utils.WeekStart(today),
		names:  map[int64]string{},
		width:  width,
		height: height,
	}
}

func (m Model) Keys() KeyMap {
	return m.keys
}

// Monday returns the first day of the displayed week.
func (m Model) Monday() time.Time {
	return m.monday
}

// Range returns the displayed week as inclusive YYYY-MM-DD bounds.
func (m Model) Range() (string, string) {
	return m.monday.Format(constants.DateFormat), m.monday.AddDate(0, 0, 6).Format(constants.DateFormat)
}

// SetInterventions replaces the displayed week's interventions. They must be
// sorted by date then start time.
func (m *Model) SetInterventions(interventions []models.Intervention, beneficiaries []models.Beneficiary) {
	m.interventions = interventions
	m.names = make(map[int64]string, len(beneficiaries))
	for _, b := range beneficiaries {
		m.names[b.ID] = b.FullName()
	}
	if m.cursor >= len(m.interventions) {
		m.cursor = max(len(m.interventions)-1, 0)
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the intervention under the cursor.
func (m Model) Selected() (models.Intervention, bool) {
	if m.cursor < 0 || m.cursor >= len(m.interventions) {
		return models.Intervention{}, false
	}
	return m.interventions[m.cursor], true
}

// NextStatus cycles planifie -> effectue -> annule -> planifie.
func NextStatus(s constants.InterventionStatus) constants.InterventionStatus {
	switch s {
	case constants.InterventionPlanifie:
		return constants.InterventionEffectue
	case constants.InterventionEffectue:
		return constants.InterventionAnnule
	default:
		return constants.InterventionPlanifie
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.interventions)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.PrevWeek):
		return m.moveWeek(-7)
	case key.Matches(keyMsg, m.keys.NextWeek):
		return m.moveWeek(7)
	case key.Matches(keyMsg, m.keys.Today):
		m.monday = utils.WeekStart(m.today)
		m.cursor = 0
		monday := m.monday
		return m, func() tea.Msg { return WeekChangedMsg{Monday: monday} }
	case key.Matches(keyMsg, m.keys.Generate):
		monday := m.monday
		return m, func() tea.Msg { return GenerateWeekMsg{Monday: monday} }
	case key.Matches(keyMsg, m.keys.Status):
		if i, ok := m.Selected(); ok {
			next := NextStatus(i.Statut)
			return m, func() tea.Msg { return SetStatusMsg{ID: i.ID, Status: next} }
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if i, ok := m.Selected(); ok {
			return m, func() tea.Msg { return DeleteInterventionMsg{ID: i.ID} }
		}
	}
	return m, nil
}

func (m Model) moveWeek(days int) (Model, tea.Cmd) {
	m.monday = m.monday.AddDate(0, 0, days)
	m.cursor = 0
	monday := m.monday
	return m, func() tea.Msg { return WeekChangedMsg{Monday: monday} }
}

func (m Model) View() string {
	var b strings.Builder
	sunday := m.monday.AddDate(0, 0, 6)
	fmt.Fprintf(&b, "Semaine du %s au %s\n\n", m.monday.Format(constants.DisplayDateFormat), sunday.Format(constants.DisplayDateFormat))

	todayStr := m.today.Format(constants.DateFormat)
	idx := 0
	var totalMin int
	for d := 0; d < 7; d++ {
		day := m.monday.AddDate(0, 0, d)
		date := day.Format(constants.DateFormat)
		header := fmt.Sprintf("%s %s", utils.WeekdayName(day.Weekday()), day.Format("02/01"))
		if date == todayStr {
			b.WriteString(todayStyle.Render(header+" (aujourd'hui)") + "\n")
		} else {
			b.WriteString(dayStyle.Render(header) + "\n")
		}

		for idx < len(m.interventions) && m.interventions[idx].Date < date {
			idx++
		}
		count := 0
		for idx < len(m.interventions) && m.interventions[idx].Date == date {
			i := m.interventions[idx]
			line := fmt.Sprintf("%s-%s  %s  [%s]", i.HeureDebut, i.HeureFin, m.name(i.BeneficiaireID), i.Statut)
			switch i.Statut {
			case constants.InterventionEffectue:
				line = doneStyle.Render(line)
			case constants.InterventionAnnule:
				line = cancelStyle.Render(line)
			}
			if i.Statut != constants.InterventionAnnule {
				totalMin += utils.SlotMinutes(i)
			}
			cursor := "  "
			if idx == m.cursor {
				cursor = selectedStyle.Render("> ")
			}
			b.WriteString(cursor + line + "\n")
			idx++
			count++
		}
		if count == 0 {
			b.WriteString("  " + emptyStyle.Render("-") + "\n")
		}
	}

	fmt.Fprintf(&b, "\nTotal prévu : %s\n", utils.FormatMinutes(totalMin))
	return b.String()
}

func (m Model) name(id int64) string {
	if n, ok := m.names[id]; ok {
		return n
	}
	return fmt.Sprintf("#%d", id)
}
