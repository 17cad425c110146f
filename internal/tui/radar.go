package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sadopc/kokpit/internal/domain"
	"github.com/sadopc/kokpit/internal/store"
)

// radarTypes is what the radar watches: competition-style deadlines.
// Other event types only show up on the day itself, on the dashboard.
var radarTypes = []domain.ApplicationType{domain.TypeHackathon, domain.TypeInternship}

type radarModel struct {
	st *store.Store

	events []store.Event
	err    error

	cursor     int
	confirming bool

	form         *huh.Form
	formName     *string
	formType     *domain.ApplicationType
	formDate     *string
	formLocation *string
}

func newRadarModel(st *store.Store) radarModel {
	return radarModel{st: st}
}

func (m radarModel) refresh() tea.Cmd {
	st := m.st
	return func() tea.Msg {
		events, err := st.ListEvents(store.EventFilter{Types: radarTypes})
		return radarDataMsg{events: events, err: err}
	}
}

func (m radarModel) formActive() bool {
	return m.form != nil || m.confirming
}

func (m radarModel) update(msg tea.Msg) (radarModel, tea.Cmd) {
	if msg, ok := msg.(radarDataMsg); ok {
		m.err = msg.err
		if msg.err == nil {
			m.events = msg.events
			if m.cursor >= len(m.events) && len(m.events) > 0 {
				m.cursor = len(m.events) - 1
			}
		}
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.confirming {
			switch msg.String() {
			case "y", "enter":
				m.confirming = false
				if m.cursor < len(m.events) {
					return m, m.deleteEvent(m.events[m.cursor].ID)
				}
			default:
				m.confirming = false
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.events)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(m.events) {
				m.confirming = true
			}
		case key.Matches(msg, keys.New):
			return m.openForm()
		case key.Matches(msg, keys.Retry):
			if m.err != nil {
				return m, m.refresh()
			}
		}
	}
	return m, nil
}

func (m radarModel) openForm() (radarModel, tea.Cmd) {
	m.formName = new(string)
	m.formType = new(domain.ApplicationType)
	m.formDate = new(string)
	m.formLocation = new(string)
	*m.formType = domain.TypeHackathon

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("TEKNOFEST 2026").
				Value(m.formName),
			huh.NewSelect[domain.ApplicationType]().
				Title("Type").
				Options(
					huh.NewOption("Hackathon", domain.TypeHackathon),
					huh.NewOption("Internship", domain.TypeInternship),
					huh.NewOption("Course", domain.TypeCourse),
					huh.NewOption("Other", domain.TypeOther),
				).
				Value(m.formType),
			huh.NewInput().
				Title("Deadline").
				Placeholder("YYYY-MM-DD").
				Value(m.formDate),
			huh.NewInput().
				Title("Location").
				Placeholder("Online").
				Value(m.formLocation),
		),
	)
	return m, m.form.Init()
}

func (m radarModel) updateForm(msg tea.Msg) (radarModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Back) {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		name := strings.TrimSpace(*m.formName)
		typ := *m.formType
		dateStr := strings.TrimSpace(*m.formDate)
		location := strings.TrimSpace(*m.formLocation)
		m.form = nil

		if name == "" {
			return m, func() tea.Msg {
				return statusMsg{text: "Event name cannot be empty", isError: true}
			}
		}
		deadline, err := parseDateInput(dateStr)
		if err != nil || deadline == nil {
			return m, func() tea.Msg {
				return statusMsg{text: "A deadline in YYYY-MM-DD form is required", isError: true}
			}
		}

		st := m.st
		refresh := m.refresh()
		return m, func() tea.Msg {
			if _, err := st.CreateEvent(name, typ, *deadline, location); err != nil {
				return errCmd(err)
			}
			return refresh()
		}
	}
	return m, cmd
}

func (m radarModel) deleteEvent(id int64) tea.Cmd {
	st := m.st
	refresh := m.refresh()
	return func() tea.Msg {
		if err := st.DeleteEvent(id); err != nil {
			return errCmd(err)
		}
		return refresh()
	}
}

func (m radarModel) view(width int) string {
	if m.form != nil {
		return activePanelStyle.Render(m.form.View())
	}
	if m.err != nil {
		return panelStyle.Render(errorStyle.Render(fmt.Sprintf("Could not load radar: %v", m.err)) +
			"\n" + mutedStyle.Render("press r to retry"))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("📡 Opportunity Radar"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("hackathon and internship deadlines, nearest first"))
	b.WriteString("\n\n")

	if len(m.events) == 0 {
		b.WriteString(mutedStyle.Render("Radar is clear. Press n to track a deadline."))
	}

	now := time.Now()
	for i, e := range m.events {
		daysLeft := domain.DaysUntil(now, e.Deadline)
		countdown := urgencyStyle(daysLeft).Render(countdownLabel(daysLeft))

		prefix := "  "
		name := e.Name
		if i == m.cursor {
			prefix = selectedItemStyle.Render("> ")
			name = selectedItemStyle.Render(name)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, e.Type.Icon(), name))
		loc := e.Location
		if loc == "" {
			loc = "-"
		}
		b.WriteString(fmt.Sprintf("     %s · %s · %s\n",
			countdown,
			mutedStyle.Render(formatDate(e.Deadline)),
			mutedStyle.Render(loc)))
	}

	b.WriteString("\n")
	if m.confirming && m.cursor < len(m.events) {
		b.WriteString(warningStyle.Render(fmt.Sprintf("Delete %q? (y/n)", m.events[m.cursor].Name)))
	} else {
		b.WriteString(mutedStyle.Render("n new · d delete"))
	}

	return activePanelStyle.Render(b.String())
}
