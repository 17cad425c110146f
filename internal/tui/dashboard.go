package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/kokpit/internal/config"
	"github.com/sadopc/kokpit/internal/domain"
	"github.com/sadopc/kokpit/internal/store"
	"github.com/sadopc/kokpit/internal/weather"
)

// How many of each size the mission list shows. The Big One is singular
// on purpose; extra big tasks wait their turn.
const (
	maxMediumShown = 3
	maxSmallShown  = 5
)

// mottos rotate by day of year so the briefing changes daily without
// any state.
var mottos = []string{
	"Bugün dünden daha iyi ol.",
	"Küçük adımlar, büyük yollar.",
	"Disiplin, motivasyonun bittiği yerde başlar.",
	"Odaklan. Gerisi gürültü.",
	"Yapılmış, mükemmelden iyidir.",
	"Zor olan, değerli olandır.",
	"Her gün bir tuğla koy.",
	"Başlamak, bitirmenin yarısıdır.",
}

func mottoFor(now time.Time) string {
	return mottos[now.YearDay()%len(mottos)]
}

type dashboardModel struct {
	st  *store.Store
	wc  *weather.Client
	cfg config.Config

	todos       []store.Todo
	todayEvents []store.Event
	current     *weather.Current
	weatherErr  error
	err         error

	cursor        int
	showCompleted bool

	form      *huh.Form
	formTitle *string
	formSize  *domain.TodoSize
}

func newDashboardModel(st *store.Store, wc *weather.Client, cfg config.Config) dashboardModel {
	return dashboardModel{st: st, wc: wc, cfg: cfg}
}

func (m dashboardModel) refresh() tea.Cmd {
	st := m.st
	return func() tea.Msg {
		todos, err := st.ListTodos()
		if err != nil {
			return dashboardDataMsg{err: err}
		}
		from, to := domain.DayWindow(time.Now())
		events, err := st.ListEvents(store.EventFilter{From: &from, To: &to})
		if err != nil {
			return dashboardDataMsg{err: err}
		}
		return dashboardDataMsg{todos: todos, todayEvents: events}
	}
}

func (m dashboardModel) fetchBriefing() tea.Cmd {
	wc, cfg := m.wc, m.cfg
	return func() tea.Msg {
		if wc == nil {
			return briefingMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		cur, err := wc.Fetch(ctx, cfg.Latitude, cfg.Longitude, cfg.Timezone)
		return briefingMsg{current: cur, err: err}
	}
}

func (m dashboardModel) formActive() bool {
	return m.form != nil
}

// visibleTodos is the mission list in display order: the Big One, then
// capped medium and small groups, then (optionally) completed tasks.
func (m dashboardModel) visibleTodos() []store.Todo {
	var big, medium, small, done []store.Todo
	for _, t := range m.todos {
		if t.Completed {
			done = append(done, t)
			continue
		}
		switch t.Type {
		case domain.SizeBig:
			big = append(big, t)
		case domain.SizeMedium:
			medium = append(medium, t)
		case domain.SizeSmall:
			small = append(small, t)
		}
	}
	if len(big) > 1 {
		big = big[:1]
	}
	if len(medium) > maxMediumShown {
		medium = medium[:maxMediumShown]
	}
	if len(small) > maxSmallShown {
		small = small[:maxSmallShown]
	}

	out := append(append(big, medium...), small...)
	if m.showCompleted {
		out = append(out, done...)
	}
	return out
}

func (m dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.err = msg.err
		if msg.err == nil {
			m.todos = msg.todos
			m.todayEvents = msg.todayEvents
			if max := len(m.visibleTodos()); m.cursor >= max && max > 0 {
				m.cursor = max - 1
			}
		}
		return m, nil

	case briefingMsg:
		m.current = msg.current
		m.weatherErr = msg.err
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		visible := m.visibleTodos()
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(visible)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			if m.cursor < len(visible) {
				t := visible[m.cursor]
				return m, m.toggleTodo(t.ID, !t.Completed)
			}
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(visible) {
				return m, m.deleteTodo(visible[m.cursor].ID)
			}
		case key.Matches(msg, keys.Completed):
			m.showCompleted = !m.showCompleted
			m.cursor = 0
		case key.Matches(msg, keys.Clear):
			return m, m.clearCompleted()
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

func (m dashboardModel) openForm() (dashboardModel, tea.Cmd) {
	m.formTitle = new(string)
	m.formSize = new(domain.TodoSize)
	*m.formSize = domain.SizeSmall

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task").
				Placeholder("What needs doing?").
				Value(m.formTitle),
			huh.NewSelect[domain.TodoSize]().
				Title("Size").
				Options(
					huh.NewOption("Big One (the day's main thing)", domain.SizeBig),
					huh.NewOption("Medium", domain.SizeMedium),
					huh.NewOption("Small", domain.SizeSmall),
				).
				Value(m.formSize),
		),
	)
	return m, m.form.Init()
}

func (m dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Back) {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		title := strings.TrimSpace(*m.formTitle)
		size := *m.formSize
		m.form = nil
		if title == "" {
			return m, func() tea.Msg {
				return statusMsg{text: "Task title cannot be empty", isError: true}
			}
		}
		st := m.st
		return m, func() tea.Msg {
			if _, err := st.CreateTodo(title, size); err != nil {
				return errCmd(err)
			}
			return m.refresh()()
		}
	}
	return m, cmd
}

func (m dashboardModel) toggleTodo(id int64, completed bool) tea.Cmd {
	st := m.st
	refresh := m.refresh()
	return func() tea.Msg {
		if err := st.SetTodoCompleted(id, completed); err != nil {
			return errCmd(err)
		}
		return refresh()
	}
}

func (m dashboardModel) deleteTodo(id int64) tea.Cmd {
	st := m.st
	refresh := m.refresh()
	return func() tea.Msg {
		if err := st.DeleteTodo(id); err != nil {
			return errCmd(err)
		}
		return refresh()
	}
}

func (m dashboardModel) clearCompleted() tea.Cmd {
	st := m.st
	clear := func() tea.Msg {
		n, err := st.DeleteCompletedTodos()
		if err != nil {
			return errCmd(err)
		}
		return statusMsg{text: fmt.Sprintf("Cleared %d completed task(s)", n)}
	}
	return tea.Sequence(clear, m.refresh())
}

func (m dashboardModel) view(width int) string {
	if m.form != nil {
		return activePanelStyle.Render(m.form.View())
	}
	if m.err != nil {
		return panelStyle.Render(errorStyle.Render(fmt.Sprintf("Could not load dashboard: %v", m.err)) +
			"\n" + mutedStyle.Render("press r to retry"))
	}

	briefing := m.briefingView()
	mission := m.missionView()
	schedule := m.scheduleView()

	if width >= 100 {
		right := lipgloss.JoinVertical(lipgloss.Left, briefing, schedule)
		return lipgloss.JoinHorizontal(lipgloss.Top, mission, " ", right)
	}
	return lipgloss.JoinVertical(lipgloss.Left, briefing, mission, schedule)
}

func (m dashboardModel) briefingView() string {
	now := time.Now()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Günaydın! ☀"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(now.Format("Monday, 2 Jan 2006")))
	b.WriteString("\n\n")

	switch {
	case m.current != nil:
		b.WriteString(fmt.Sprintf("%d°C  %s", m.current.TemperatureC, m.current.Description))
	case m.weatherErr != nil:
		b.WriteString(mutedStyle.Render("weather unavailable"))
	default:
		b.WriteString(mutedStyle.Render("fetching weather…"))
	}
	b.WriteString("\n\n")

	open := 0
	for _, t := range m.todos {
		if !t.Completed {
			open++
		}
	}
	b.WriteString(fmt.Sprintf("%s events today · %s tasks open",
		highlightStyle.Render(fmt.Sprintf("%d", len(m.todayEvents))),
		highlightStyle.Render(fmt.Sprintf("%d", open))))
	b.WriteString("\n\n")
	b.WriteString(accentStyle.Italic(true).Render("“" + mottoFor(now) + "”"))

	return panelStyle.Render(b.String())
}

func (m dashboardModel) missionView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Today's Mission"))
	b.WriteString("\n\n")

	completed := 0
	for _, t := range m.todos {
		if t.Completed {
			completed++
		}
	}
	pct := domain.Progress(completed, len(m.todos))
	b.WriteString(progressBar(pct, 24))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/%d (%.0f%%)", completed, len(m.todos), pct)))
	b.WriteString("\n\n")

	visible := m.visibleTodos()
	if len(visible) == 0 {
		b.WriteString(mutedStyle.Render("Nothing on the list. Press n to add a task."))
	}

	lastSize := domain.TodoSize("")
	for i, t := range visible {
		if !t.Completed && t.Type != lastSize {
			if lastSize != "" {
				b.WriteString("\n")
			}
			b.WriteString(mutedStyle.Render(sizeHeading(t.Type)))
			b.WriteString("\n")
			lastSize = t.Type
		}

		check := "[ ]"
		line := t.Title
		if t.Completed {
			check = successStyle.Render("[x]")
			line = strikeStyle.Render(line)
		}
		prefix := "  "
		if i == m.cursor {
			prefix = selectedItemStyle.Render("> ")
			if !t.Completed {
				line = selectedItemStyle.Render(line)
			}
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, check, line))
	}

	b.WriteString("\n")
	hint := "n new · space toggle · d delete · c clear done"
	if m.showCompleted {
		hint += " · v hide done"
	} else {
		hint += " · v show done"
	}
	b.WriteString(mutedStyle.Render(hint))

	return activePanelStyle.Render(b.String())
}

func sizeHeading(s domain.TodoSize) string {
	switch s {
	case domain.SizeBig:
		return "🎯 Big One"
	case domain.SizeMedium:
		return "Medium"
	}
	return "Small"
}

func (m dashboardModel) scheduleView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Today's Schedule"))
	b.WriteString("\n\n")

	if len(m.todayEvents) == 0 {
		b.WriteString(mutedStyle.Render("No events today."))
	}
	for _, e := range m.todayEvents {
		b.WriteString(fmt.Sprintf("%s %s\n", e.Type.Icon(), e.Name))
		loc := e.Location
		if loc == "" {
			loc = "-"
		}
		b.WriteString(mutedStyle.Render(fmt.Sprintf("   %s · %s", e.Deadline.Local().Format("15:04"), loc)))
		b.WriteString("\n")
	}

	return panelStyle.Render(b.String())
}

// progressBar renders a fixed-width unicode bar for a 0..100 percentage.
func progressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return successStyle.Render(bar)
}
