package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/kokpit/internal/config"
	"github.com/sadopc/kokpit/internal/domain"
	"github.com/sadopc/kokpit/internal/store"
)

// focusModel is the countdown. A session only counts when the clock
// reaches zero on its own; reset discards without recording anything.
type focusModel struct {
	st  *store.Store
	cfg config.Config

	duration  time.Duration
	remaining time.Duration
	running   bool
	paused    bool
	startedAt time.Time
	fired     bool

	completedToday int
}

func newFocusModel(st *store.Store, cfg config.Config) focusModel {
	d := time.Duration(cfg.FocusMinutes) * time.Minute
	return focusModel{st: st, cfg: cfg, duration: d, remaining: d}
}

func (m focusModel) refresh() tea.Cmd {
	st := m.st
	return func() tea.Msg {
		start, _ := domain.DayWindow(time.Now())
		n, err := st.CountFocusSessionsSince(start)
		if err != nil {
			return errCmd(err)
		}
		return focusCountMsg{completedToday: n}
	}
}

func (m focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if !m.running || m.paused {
			return m, nil
		}
		m.remaining -= time.Second
		if m.remaining <= 0 && !m.fired {
			m.fired = true
			m.running = false
			m.remaining = 0
			return m, m.saveSession()
		}
		return m, nil

	case focusCountMsg:
		m.completedToday = msg.completedToday
		return m, nil

	case focusSavedMsg:
		if msg.err != nil {
			return m, func() tea.Msg { return errCmd(msg.err) }
		}
		m.completedToday++
		return m, func() tea.Msg {
			return statusMsg{text: "Focus session complete! 🧠"}
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if !m.running {
				if m.remaining <= 0 || m.fired {
					m.remaining = m.duration
					m.fired = false
				}
				m.startedAt = time.Now()
				m.running = true
				m.paused = false
			} else if m.paused {
				m.paused = false
			}
		case key.Matches(msg, keys.Pause):
			if m.running {
				m.paused = !m.paused
			}
		case key.Matches(msg, keys.Reset):
			m.running = false
			m.paused = false
			m.fired = false
			m.remaining = m.duration
		}
		return m, nil
	}
	return m, nil
}

// saveSession records the finished session. The fired guard upstream
// guarantees this runs once per countdown.
func (m focusModel) saveSession() tea.Cmd {
	st := m.st
	startedAt := m.startedAt
	minutes := int(m.duration.Minutes())
	return func() tea.Msg {
		s, err := st.CreateFocusSession(startedAt, minutes)
		return focusSavedMsg{session: s, err: err}
	}
}

func (m focusModel) view(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("🧠 Deep Focus"))
	b.WriteString("\n\n")

	clock := formatClock(m.remaining)
	style := timerStyle
	state := "ready"
	switch {
	case m.running && m.paused:
		style = timerPausedStyle
		state = "paused"
	case m.running:
		style = timerRunningStyle
		state = "focusing"
	case m.fired:
		state = "done"
	}
	b.WriteString(style.Render(bigClock(clock)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(state))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Completed today: %s\n",
		highlightStyle.Render(strings.Repeat("● ", m.completedToday)+fmt.Sprintf("(%d)", m.completedToday))))

	b.WriteString("\n")
	if m.running {
		b.WriteString(mutedStyle.Render("space pause/resume · r reset (discards)"))
	} else {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("s start a %d-minute session", m.cfg.FocusMinutes)))
	}

	return activePanelStyle.Render(b.String())
}

// bigClock blows the MM:SS readout up with spacing so it reads from
// across the room.
func bigClock(clock string) string {
	var b strings.Builder
	for i, r := range clock {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteRune(r)
	}
	return "\n  " + b.String() + "\n"
}
