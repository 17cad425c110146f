// Package lifecycle encodes the application state machine: how a tracked
// opportunity moves planned→pending→approved|rejected, and the derived
// event spawned on approval.
package lifecycle

import (
	"fmt"
	"io"
	"time"

	"github.com/sadopc/kokpit/internal/domain"
	"github.com/sadopc/kokpit/internal/store"
)

// defaultEventLocation is used for events spawned from approvals; the
// user can only pick a location for events they create directly.
const defaultEventLocation = "Online/Yerinde"

// Store is the persistence surface the lifecycle needs.
type Store interface {
	CreateApplication(title string, typ domain.ApplicationType, status domain.ApplicationStatus, deadline, announcement *time.Time, notes string) (*store.Application, error)
	GetApplication(id int64) (*store.Application, error)
	MarkPending(id int64, announcement *time.Time) error
	MarkApproved(id int64, eventDate *time.Time) error
	MarkRejected(id int64) error
	CreateEvent(name string, typ domain.ApplicationType, deadline time.Time, location string) (*store.Event, error)
}

// Service runs lifecycle operations against a store. Side-effect failures
// that must not surface are written to logw.
type Service struct {
	store Store
	logw  io.Writer
}

func NewService(s Store, logw io.Writer) *Service {
	if logw == nil {
		logw = io.Discard
	}
	return &Service{store: s, logw: logw}
}

// CreatePlanned records an application the user intends to submit. The
// deadline is mandatory; validation failures block the write.
func (svc *Service) CreatePlanned(title string, typ domain.ApplicationType, deadline time.Time, notes string) (*store.Application, error) {
	if err := validateCreate(title, typ); err != nil {
		return nil, err
	}
	if deadline.IsZero() {
		return nil, ErrDeadlineRequired
	}
	return svc.store.CreateApplication(title, typ, domain.StatusPlanned, &deadline, nil, notes)
}

// CreateApplied records an application the user has already submitted.
// The announcement date is optional; the deadline stays unset.
func (svc *Service) CreateApplied(title string, typ domain.ApplicationType, announcement *time.Time, notes string) (*store.Application, error) {
	if err := validateCreate(title, typ); err != nil {
		return nil, err
	}
	return svc.store.CreateApplication(title, typ, domain.StatusPending, nil, announcement, notes)
}

// Apply advances planned→pending after the user confirms they submitted,
// optionally recording when results are announced.
func (svc *Service) Apply(id int64, announcement *time.Time) (*store.Application, error) {
	app, err := svc.require(id, domain.StatusPending)
	if err != nil {
		return nil, err
	}
	if err := svc.store.MarkPending(app.ID, announcement); err != nil {
		return nil, err
	}
	return svc.store.GetApplication(id)
}

// Approve advances pending→approved. When an event date is supplied, a
// calendar event named "<title> (<type label>)" is spawned for that date.
// The status update is the authoritative outcome: it must succeed before
// the event insert is attempted, and an event insert failure is logged
// but never surfaced or rolled back.
func (svc *Service) Approve(id int64, eventDate *time.Time) (*store.Application, error) {
	app, err := svc.require(id, domain.StatusApproved)
	if err != nil {
		return nil, err
	}
	if err := svc.store.MarkApproved(app.ID, eventDate); err != nil {
		return nil, err
	}

	if eventDate != nil {
		name := fmt.Sprintf("%s (%s)", app.Title, app.Type.Label())
		if _, err := svc.store.CreateEvent(name, app.Type, *eventDate, defaultEventLocation); err != nil {
			svc.logf("event_create_failed application=%d err=%v", app.ID, err)
		}
	}
	return svc.store.GetApplication(id)
}

// Reject advances pending→rejected. The caller is expected to have asked
// the user for explicit confirmation first.
func (svc *Service) Reject(id int64) (*store.Application, error) {
	app, err := svc.require(id, domain.StatusRejected)
	if err != nil {
		return nil, err
	}
	if err := svc.store.MarkRejected(app.ID); err != nil {
		return nil, err
	}
	return svc.store.GetApplication(id)
}

// require loads the application and checks that moving to next is legal.
func (svc *Service) require(id int64, next domain.ApplicationStatus) (*store.Application, error) {
	app, err := svc.store.GetApplication(id)
	if err != nil {
		return nil, err
	}
	if !app.Status.CanTransition(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, next)
	}
	return app, nil
}

func validateCreate(title string, typ domain.ApplicationType) error {
	if title == "" {
		return ErrTitleRequired
	}
	if typ == "" {
		return ErrTypeRequired
	}
	return nil
}

func (svc *Service) logf(format string, args ...any) {
	ts := time.Now().UTC().Format(time.RFC3339)
	fmt.Fprintf(svc.logw, "[%s] %s\n", ts, fmt.Sprintf(format, args...))
}
