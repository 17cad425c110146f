// Package tui implements the terminal dashboard: five numbered views
// over the store, driven by a one-second tick.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/kokpit/internal/config"
	"github.com/sadopc/kokpit/internal/lifecycle"
	"github.com/sadopc/kokpit/internal/store"
	"github.com/sadopc/kokpit/internal/weather"
)

// App is the root model. It owns the active view and routes messages to
// the per-view models.
type App struct {
	store   *store.Store
	svc     *lifecycle.Service
	weather *weather.Client
	cfg     config.Config

	view   viewState
	width  int
	height int

	help     help.Model
	showHelp bool

	status   statusMsg
	statusAt time.Time

	dashboard    dashboardModel
	radar        radarModel
	applications applicationsModel
	focus        focusModel
	review       reviewModel
}

func NewApp(st *store.Store, svc *lifecycle.Service, wc *weather.Client, cfg config.Config) *App {
	return &App{
		store:        st,
		svc:          svc,
		weather:      wc,
		cfg:          cfg,
		view:         viewDashboard,
		help:         help.New(),
		dashboard:    newDashboardModel(st, wc, cfg),
		radar:        newRadarModel(st),
		applications: newApplicationsModel(st, svc),
		focus:        newFocusModel(st, cfg),
		review:       newReviewModel(st),
	}
}

// Run starts the program in the alternate screen and blocks until quit.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		a.dashboard.refresh(),
		a.dashboard.fetchBriefing(),
		a.radar.refresh(),
		a.applications.refresh(),
		a.focus.refresh(),
		a.review.refresh(),
	)
}

// formActive reports whether the current view has a form or confirmation
// open, in which case global key handling steps aside.
func (a *App) formActive() bool {
	switch a.view {
	case viewDashboard:
		return a.dashboard.formActive()
	case viewRadar:
		return a.radar.formActive()
	case viewApplications:
		return a.applications.formActive()
	}
	return false
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case tickMsg:
		// The focus timer runs regardless of which view is showing.
		var cmd tea.Cmd
		a.focus, cmd = a.focus.update(msg)
		return a, tea.Batch(tickCmd(), cmd)

	case statusMsg:
		a.status = msg
		a.statusAt = time.Now()
		return a, nil

	case dashboardDataMsg, briefingMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd

	case radarDataMsg:
		var cmd tea.Cmd
		a.radar, cmd = a.radar.update(msg)
		return a, cmd

	case applicationsDataMsg:
		var cmd tea.Cmd
		a.applications, cmd = a.applications.update(msg)
		return a, cmd

	case reviewDataMsg:
		var cmd tea.Cmd
		a.review, cmd = a.review.update(msg)
		return a, cmd

	case focusCountMsg, focusSavedMsg:
		var cmd tea.Cmd
		a.focus, cmd = a.focus.update(msg)
		// A finished session changes the weekly numbers too.
		if _, ok := msg.(focusSavedMsg); ok {
			cmds = append(cmds, a.review.refresh())
		}
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		if a.formActive() {
			return a.routeToActive(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewRadar)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewApplications)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewFocus)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewReview)
		case key.Matches(msg, keys.Tab):
			next := (a.view + 1) % viewState(len(viewNames))
			return a.switchView(next)
		}
		return a.routeToActive(msg)
	}

	return a, tea.Batch(cmds...)
}

// switchView changes tabs and refreshes the target so it never shows
// stale data.
func (a *App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.view = v
	switch v {
	case viewDashboard:
		return a, tea.Batch(a.dashboard.refresh(), a.dashboard.fetchBriefing())
	case viewRadar:
		return a, a.radar.refresh()
	case viewApplications:
		return a, a.applications.refresh()
	case viewFocus:
		return a, a.focus.refresh()
	case viewReview:
		return a, a.review.refresh()
	}
	return a, nil
}

func (a *App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewRadar:
		a.radar, cmd = a.radar.update(msg)
	case viewApplications:
		a.applications, cmd = a.applications.update(msg)
	case viewFocus:
		a.focus, cmd = a.focus.update(msg)
	case viewReview:
		a.review, cmd = a.review.update(msg)
	}
	return a, cmd
}

func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.headerView())
	b.WriteString("\n\n")

	switch a.view {
	case viewDashboard:
		b.WriteString(a.dashboard.view(a.width))
	case viewRadar:
		b.WriteString(a.radar.view(a.width))
	case viewApplications:
		b.WriteString(a.applications.view(a.width))
	case viewFocus:
		b.WriteString(a.focus.view(a.width))
	case viewReview:
		b.WriteString(a.review.view(a.width))
	}

	b.WriteString("\n")
	if line := a.statusView(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if a.showHelp {
		b.WriteString(footerStyle.Render(a.help.FullHelpView(keys.FullHelp())))
	} else {
		b.WriteString(footerStyle.Render(a.help.ShortHelpView(keys.ShortHelp())))
	}
	return b.String()
}

func (a *App) headerView() string {
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.view {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = inactiveTabStyle.Render(label)
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	// A running timer stays visible from every tab.
	if a.view != viewFocus && a.focus.running {
		row = lipgloss.JoinHorizontal(lipgloss.Bottom, row,
			accentStyle.Render("  ⏱ "+formatClock(a.focus.remaining)))
	}
	return headerStyle.Render(row)
}

func (a *App) statusView() string {
	if a.status.text == "" || time.Since(a.statusAt) > 5*time.Second {
		return ""
	}
	if a.status.isError {
		return errorStyle.Render(" " + a.status.text)
	}
	return successStyle.Render(" " + a.status.text)
}
