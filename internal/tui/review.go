package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/kokpit/internal/domain"
	"github.com/sadopc/kokpit/internal/store"
)

var dayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type reviewModel struct {
	st *store.Store

	stats     *store.WeeklyStats
	histogram [7]int
	err       error

	chart barchart.Model
}

func newReviewModel(st *store.Store) reviewModel {
	return reviewModel{
		st:    st,
		chart: barchart.New(42, 10),
	}
}

func (m reviewModel) refresh() tea.Cmd {
	st := m.st
	return func() tea.Msg {
		weekStart := domain.WeekStart(time.Now())

		stats, err := st.GetWeeklyStats(weekStart.UTC())
		if err != nil {
			return reviewDataMsg{err: err}
		}

		todos, err := st.ListTodos()
		if err != nil {
			return reviewDataMsg{err: err}
		}
		var completions []time.Time
		for _, t := range todos {
			if t.CompletedAt != nil {
				completions = append(completions, t.CompletedAt.Local())
			}
		}

		return reviewDataMsg{
			stats:     stats,
			histogram: domain.CompletionHistogram(completions, weekStart),
		}
	}
}

func (m reviewModel) update(msg tea.Msg) (reviewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reviewDataMsg:
		m.err = msg.err
		if msg.err == nil {
			m.stats = msg.stats
			m.histogram = msg.histogram
			m.rebuildChart()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Retry) && m.err != nil {
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *reviewModel) rebuildChart() {
	m.chart = barchart.New(42, 10)

	var bars []barchart.BarData
	for i, label := range dayLabels {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if m.histogram[i] == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{
				{Name: label, Value: float64(m.histogram[i]), Style: style},
			},
		})
	}
	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m reviewModel) view(width int) string {
	if m.err != nil {
		return panelStyle.Render(errorStyle.Render(fmt.Sprintf("Could not load weekly review: %v", m.err)) +
			"\n" + mutedStyle.Render("press r to retry"))
	}
	if m.stats == nil {
		return panelStyle.Render(mutedStyle.Render("Loading weekly review…"))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("📈 Weekly Review"))
	b.WriteString("\n")
	weekStart := domain.WeekStart(time.Now())
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s — %s",
		weekStart.Format("Jan 02"), weekStart.AddDate(0, 0, 6).Format("Jan 02, 2006"))))
	b.WriteString("\n\n")

	b.WriteString(m.chart.View())
	b.WriteString("\n\n")

	stats := m.stats
	b.WriteString(fmt.Sprintf("Tasks completed   %s\n", highlightStyle.Render(fmt.Sprintf("%d", stats.CompletedTasksCount))))
	b.WriteString(fmt.Sprintf("Completion rate   %s\n", highlightStyle.Render(fmt.Sprintf("%.0f%%", stats.CompletionRate))))
	b.WriteString(fmt.Sprintf("Focus hours       %s\n", highlightStyle.Render(fmt.Sprintf("%.1f", stats.FocusHours))))
	b.WriteString(fmt.Sprintf("Streak            %s\n", highlightStyle.Render(fmt.Sprintf("%d day(s)", stats.StreakDays))))

	if badges := achievements(stats); badges != "" {
		b.WriteString("\n")
		b.WriteString(accentStyle.Render(badges))
		b.WriteString("\n")
	}

	return activePanelStyle.Render(b.String())
}

// achievements lights up when the week was genuinely good.
func achievements(s *store.WeeklyStats) string {
	var out []string
	if s.StreakDays > 3 {
		out = append(out, fmt.Sprintf("🔥 %d-day streak", s.StreakDays))
	}
	if s.CompletionRate > 80 {
		out = append(out, "⚡ High performer")
	}
	return strings.Join(out, "   ")
}
