package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/kokpit/internal/domain"
)

type Application struct {
	ID               int64
	OwnerID          uuid.UUID
	Title            string
	Type             domain.ApplicationType
	Status           domain.ApplicationStatus
	AnnouncementDate *time.Time
	Deadline         *time.Time
	EventDate        *time.Time
	Notes            string
	CreatedAt        time.Time
}

type Event struct {
	ID        int64
	OwnerID   uuid.UUID
	Name      string
	Type      domain.ApplicationType
	Deadline  time.Time
	Location  string
	CreatedAt time.Time
}

type Todo struct {
	ID          int64
	OwnerID     uuid.UUID
	Title       string
	Type        domain.TodoSize
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

type FocusSession struct {
	ID              int64
	OwnerID         uuid.UUID
	DurationMinutes int
	StartedAt       time.Time
	CreatedAt       time.Time
}

// WeeklyStats is the read-only aggregate behind the weekly review. It is
// computed per request and never written back.
type WeeklyStats struct {
	CompletedTasksCount int
	FocusHours          float64
	StreakDays          int
	CompletionRate      float64
}

// EventFilter narrows event queries. Zero values mean no constraint.
type EventFilter struct {
	Types []domain.ApplicationType
	From  *time.Time
	To    *time.Time
	Limit int
}
