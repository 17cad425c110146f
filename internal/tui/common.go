package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/kokpit/internal/store"
	"github.com/sadopc/kokpit/internal/weather"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewRadar
	viewApplications
	viewFocus
	viewReview
)

var viewNames = []string{"Dashboard", "Radar", "Applications", "Focus", "Review"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

type dashboardDataMsg struct {
	todos       []store.Todo
	todayEvents []store.Event
	err         error
}

type briefingMsg struct {
	current *weather.Current
	err     error
}

type radarDataMsg struct {
	events []store.Event
	err    error
}

type applicationsDataMsg struct {
	apps []store.Application
	err  error
}

type reviewDataMsg struct {
	stats     *store.WeeklyStats
	histogram [7]int
	err       error
}

type focusCountMsg struct {
	completedToday int
}

type focusSavedMsg struct {
	session *store.FocusSession
	err     error
}

// --- Helpers ---

func errCmd(err error) statusMsg {
	return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
}

// formatClock renders a countdown as MM:SS.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatDate(t time.Time) string {
	return t.Local().Format("2 Jan 2006")
}

// countdownLabel turns a day count into the radar's countdown text.
func countdownLabel(daysLeft int) string {
	switch {
	case daysLeft > 0:
		return fmt.Sprintf("%d days left", daysLeft)
	case daysLeft == 0:
		return "Today!"
	}
	return "Expired"
}

// parseDateInput parses an optional YYYY-MM-DD form value. Empty input is
// not an error; it simply means no date was given.
func parseDateInput(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return &t, nil
}
