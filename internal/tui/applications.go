package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sadopc/kokpit/internal/domain"
	"github.com/sadopc/kokpit/internal/lifecycle"
	"github.com/sadopc/kokpit/internal/store"
)

type appFormKind int

const (
	appFormNone appFormKind = iota
	appFormCreate
	appFormApply
	appFormApprove
)

type applicationsModel struct {
	st  *store.Store
	svc *lifecycle.Service

	apps []store.Application
	err  error

	cursor     int
	expandedID int64
	confirming bool

	formKind appFormKind
	formID   int64
	form     *huh.Form

	formTitle   *string
	formType    *domain.ApplicationType
	formPlanned *bool
	formDate    *string
	formNotes   *string
}

func newApplicationsModel(st *store.Store, svc *lifecycle.Service) applicationsModel {
	return applicationsModel{st: st, svc: svc}
}

func (m applicationsModel) refresh() tea.Cmd {
	st := m.st
	return func() tea.Msg {
		apps, err := st.ListApplications()
		return applicationsDataMsg{apps: apps, err: err}
	}
}

func (m applicationsModel) formActive() bool {
	return m.form != nil || m.confirming
}

func (m applicationsModel) update(msg tea.Msg) (applicationsModel, tea.Cmd) {
	if msg, ok := msg.(applicationsDataMsg); ok {
		m.err = msg.err
		if msg.err == nil {
			m.apps = msg.apps
			if m.cursor >= len(m.apps) && len(m.apps) > 0 {
				m.cursor = len(m.apps) - 1
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
				if m.cursor < len(m.apps) {
					return m, m.rejectCmd(m.apps[m.cursor].ID)
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
			if m.cursor < len(m.apps)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if m.cursor < len(m.apps) {
				if m.expandedID == m.apps[m.cursor].ID {
					m.expandedID = 0
				} else {
					m.expandedID = m.apps[m.cursor].ID
				}
			}
		case key.Matches(msg, keys.New):
			return m.openCreateForm()
		case key.Matches(msg, keys.Apply):
			if app, ok := m.selected(); ok && app.Status == domain.StatusPlanned {
				return m.openDateForm(appFormApply, app.ID, "Announcement date (optional)")
			}
		case key.Matches(msg, keys.Approve):
			if app, ok := m.selected(); ok && app.Status == domain.StatusPending {
				return m.openDateForm(appFormApprove, app.ID, "Event date (optional, spawns a calendar event)")
			}
		case key.Matches(msg, keys.Reject):
			if app, ok := m.selected(); ok && app.Status == domain.StatusPending {
				m.confirming = true
			}
		case key.Matches(msg, keys.Delete):
			if app, ok := m.selected(); ok {
				return m, m.deleteCmd(app.ID)
			}
		case key.Matches(msg, keys.Retry):
			if m.err != nil {
				return m, m.refresh()
			}
		}
	}
	return m, nil
}

func (m applicationsModel) selected() (store.Application, bool) {
	if m.cursor < len(m.apps) {
		return m.apps[m.cursor], true
	}
	return store.Application{}, false
}

func (m applicationsModel) openCreateForm() (applicationsModel, tea.Cmd) {
	m.formKind = appFormCreate
	m.formTitle = new(string)
	m.formType = new(domain.ApplicationType)
	m.formPlanned = new(bool)
	m.formDate = new(string)
	m.formNotes = new(string)
	*m.formType = domain.TypeInternship

	typeOpts := make([]huh.Option[domain.ApplicationType], 0, len(domain.AllApplicationTypes))
	for _, t := range domain.AllApplicationTypes {
		typeOpts = append(typeOpts, huh.NewOption(t.Label(), t))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Google STEP Internship").
				Value(m.formTitle),
			huh.NewSelect[domain.ApplicationType]().
				Title("Type").
				Options(typeOpts...).
				Value(m.formType),
			huh.NewSelect[bool]().
				Title("Stage").
				Options(
					huh.NewOption("Already applied", false),
					huh.NewOption("Planning to apply", true),
				).
				Value(m.formPlanned),
			huh.NewInput().
				Title("Date (deadline if planned, announcement if applied)").
				Placeholder("YYYY-MM-DD").
				Value(m.formDate),
			huh.NewInput().
				Title("Notes").
				Value(m.formNotes),
		),
	)
	return m, m.form.Init()
}

func (m applicationsModel) openDateForm(kind appFormKind, id int64, title string) (applicationsModel, tea.Cmd) {
	m.formKind = kind
	m.formID = id
	m.formDate = new(string)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder("YYYY-MM-DD").
				Value(m.formDate),
		),
	)
	return m, m.form.Init()
}

func (m applicationsModel) updateForm(msg tea.Msg) (applicationsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.Back) {
		m.form = nil
		m.formKind = appFormNone
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	kind := m.formKind
	id := m.formID
	m.form = nil
	m.formKind = appFormNone

	date, err := parseDateInput(strings.TrimSpace(*m.formDate))
	if err != nil {
		return m, func() tea.Msg { return errCmd(err) }
	}

	svc := m.svc
	refresh := m.refresh()

	switch kind {
	case appFormCreate:
		title := strings.TrimSpace(*m.formTitle)
		typ := *m.formType
		planned := *m.formPlanned
		notes := strings.TrimSpace(*m.formNotes)
		return m, func() tea.Msg {
			var err error
			if planned {
				if date == nil {
					return statusMsg{text: "A planned application needs a deadline", isError: true}
				}
				_, err = svc.CreatePlanned(title, typ, *date, notes)
			} else {
				_, err = svc.CreateApplied(title, typ, date, notes)
			}
			if err != nil {
				return lifecycleErr(err)
			}
			return refresh()
		}

	case appFormApply:
		return m, func() tea.Msg {
			if _, err := svc.Apply(id, date); err != nil {
				return lifecycleErr(err)
			}
			return refresh()
		}

	case appFormApprove:
		return m, tea.Sequence(
			func() tea.Msg {
				if _, err := svc.Approve(id, date); err != nil {
					return lifecycleErr(err)
				}
				if date != nil {
					return statusMsg{text: "Approved, calendar event added 🎉"}
				}
				return statusMsg{text: "Approved 🎉"}
			},
			refresh,
		)
	}
	return m, nil
}

func (m applicationsModel) rejectCmd(id int64) tea.Cmd {
	svc := m.svc
	refresh := m.refresh()
	return func() tea.Msg {
		if _, err := svc.Reject(id); err != nil {
			return lifecycleErr(err)
		}
		return refresh()
	}
}

func (m applicationsModel) deleteCmd(id int64) tea.Cmd {
	st := m.st
	refresh := m.refresh()
	return func() tea.Msg {
		if err := st.DeleteApplication(id); err != nil {
			return errCmd(err)
		}
		return refresh()
	}
}

// lifecycleErr turns validation and transition failures into friendly
// status lines instead of raw error dumps.
func lifecycleErr(err error) statusMsg {
	switch {
	case errors.Is(err, lifecycle.ErrTitleRequired):
		return statusMsg{text: "Title is required", isError: true}
	case errors.Is(err, lifecycle.ErrDeadlineRequired):
		return statusMsg{text: "A planned application needs a deadline", isError: true}
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return statusMsg{text: "That status change is not allowed", isError: true}
	}
	return errCmd(err)
}

func statusBadge(s domain.ApplicationStatus) string {
	switch s {
	case domain.StatusPlanned:
		return highlightStyle.Render("● planned")
	case domain.StatusPending:
		return warningStyle.Render("● pending")
	case domain.StatusApproved:
		return successStyle.Render("● approved")
	case domain.StatusRejected:
		return errorStyle.Render("● rejected")
	}
	return mutedStyle.Render("● unknown")
}

func (m applicationsModel) view(width int) string {
	if m.form != nil {
		return activePanelStyle.Render(m.form.View())
	}
	if m.err != nil {
		return panelStyle.Render(errorStyle.Render(fmt.Sprintf("Could not load applications: %v", m.err)) +
			"\n" + mutedStyle.Render("press r to retry"))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Application Tracker"))
	b.WriteString("\n\n")

	if len(m.apps) == 0 {
		b.WriteString(mutedStyle.Render("No applications tracked. Press n to add one."))
	}

	now := time.Now()
	for i, a := range m.apps {
		prefix := "  "
		title := a.Title
		if i == m.cursor {
			prefix = selectedItemStyle.Render("> ")
			title = selectedItemStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s\n", prefix, a.Type.Icon(), title, statusBadge(a.Status)))

		detail := mutedStyle.Render("     " + a.Type.Label())
		b.WriteString(detail)
		switch {
		case a.Status == domain.StatusPlanned && a.Deadline != nil:
			daysLeft := domain.DaysUntil(now, *a.Deadline)
			b.WriteString(" · " + urgencyStyle(daysLeft).Render(
				fmt.Sprintf("deadline %s (%s)", formatDate(*a.Deadline), countdownLabel(daysLeft))))
		case a.Status == domain.StatusPending && a.AnnouncementDate != nil:
			b.WriteString(mutedStyle.Render(" · results " + formatDate(*a.AnnouncementDate)))
		case a.Status == domain.StatusApproved && a.EventDate != nil:
			b.WriteString(successStyle.Render(" · event " + formatDate(*a.EventDate)))
		}
		b.WriteString("\n")

		if m.expandedID == a.ID && a.Notes != "" {
			b.WriteString(mutedStyle.Render("     " + a.Notes))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.confirming && m.cursor < len(m.apps) {
		b.WriteString(warningStyle.Render(fmt.Sprintf("Reject %q? (y/n)", m.apps[m.cursor].Title)))
	} else {
		b.WriteString(mutedStyle.Render("n new · a mark applied · o approve · x reject · d delete · enter notes"))
	}

	return activePanelStyle.Render(b.String())
}
