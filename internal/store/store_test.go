package store

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/sadopc/kokpit/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// insertTodoAt inserts a todo with controlled timestamps so the weekly
// aggregates can be tested deterministically.
func insertTodoAt(t *testing.T, s *Store, title string, createdAt time.Time, completedAt *time.Time) int64 {
	t.Helper()
	completed := 0
	var done any
	if completedAt != nil {
		completed = 1
		done = completedAt.UTC().Format(time.RFC3339)
	}
	res, err := s.db.Exec(
		`INSERT INTO todos (owner_id, title, type, completed, completed_at, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		s.owner.String(), title, string(domain.SizeSmall), completed, done, createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("insert todo: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func insertSessionAt(t *testing.T, s *Store, startedAt time.Time, minutes int) {
	t.Helper()
	_, err := s.db.Exec(
		`INSERT INTO focus_sessions (owner_id, duration_minutes, started_at) VALUES (?, ?, ?)`,
		s.owner.String(), minutes, startedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
}

func datePtr(t time.Time) *time.Time { return &t }

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != currentVersion {
		t.Fatalf("expected user_version %d, got %d", currentVersion, version)
	}
	if s.Owner() != PlaceholderOwner {
		t.Fatalf("expected placeholder owner, got %s", s.Owner())
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/kokpit.db"
	s, err := New(path, PlaceholderOwner)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path, PlaceholderOwner)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

// ============================================================
// Todos
// ============================================================

func TestCreateTodo(t *testing.T) {
	s := newTestStore(t)

	todo, err := s.CreateTodo("Write report", domain.SizeBig)
	if err != nil {
		t.Fatal(err)
	}
	if todo.ID == 0 {
		t.Fatal("expected non-zero id")
	}
	if todo.Type != domain.SizeBig {
		t.Fatalf("expected big, got %s", todo.Type)
	}
	if todo.Completed {
		t.Fatal("new todo should not be completed")
	}
	if todo.CompletedAt != nil {
		t.Fatal("new todo should have no completion time")
	}
	if todo.OwnerID != s.Owner() {
		t.Fatalf("owner mismatch: %s", todo.OwnerID)
	}
}

func TestListTodosOldestFirst(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()
	insertTodoAt(t, s, "first", now.Add(-2*time.Hour), nil)
	insertTodoAt(t, s, "second", now.Add(-1*time.Hour), nil)
	insertTodoAt(t, s, "third", now, nil)

	todos, err := s.ListTodos()
	if err != nil {
		t.Fatal(err)
	}
	if len(todos) != 3 {
		t.Fatalf("expected 3 todos, got %d", len(todos))
	}
	if todos[0].Title != "first" || todos[2].Title != "third" {
		t.Fatalf("wrong order: %s .. %s", todos[0].Title, todos[2].Title)
	}
}

func TestSetTodoCompletedTimestamps(t *testing.T) {
	s := newTestStore(t)
	todo, _ := s.CreateTodo("toggle me", domain.SizeSmall)

	if err := s.SetTodoCompleted(todo.ID, true); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetTodo(todo.ID)
	if !got.Completed {
		t.Fatal("expected completed")
	}
	if got.CompletedAt == nil {
		t.Fatal("completing must record the completion time")
	}

	// Un-completing clears the timestamp again
	if err := s.SetTodoCompleted(todo.ID, false); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetTodo(todo.ID)
	if got.Completed {
		t.Fatal("expected not completed")
	}
	if got.CompletedAt != nil {
		t.Fatal("un-completing must clear the completion time")
	}
}

func TestDeleteCompletedTodos(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.CreateTodo("done", domain.SizeSmall)
	b, _ := s.CreateTodo("also done", domain.SizeMedium)
	s.CreateTodo("keep me", domain.SizeSmall)
	s.SetTodoCompleted(a.ID, true)
	s.SetTodoCompleted(b.ID, true)

	n, err := s.DeleteCompletedTodos()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deleted, got %d", n)
	}

	todos, _ := s.ListTodos()
	if len(todos) != 1 || todos[0].Title != "keep me" {
		t.Fatalf("open todo should survive, got %v", todos)
	}
}

func TestGetTodoNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetTodo(999)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

// ============================================================
// Events
// ============================================================

func TestCreateEvent(t *testing.T) {
	s := newTestStore(t)
	deadline := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	e, err := s.CreateEvent("TEKNOFEST", domain.TypeHackathon, deadline, "Istanbul")
	if err != nil {
		t.Fatal(err)
	}
	if e.Name != "TEKNOFEST" || e.Type != domain.TypeHackathon {
		t.Fatalf("unexpected event %+v", e)
	}
	if !e.Deadline.Equal(deadline) {
		t.Fatalf("deadline round-trip: want %v, got %v", deadline, e.Deadline)
	}
}

func TestListEventsTypeFilter(t *testing.T) {
	s := newTestStore(t)
	d := time.Now().UTC().Add(48 * time.Hour)
	s.CreateEvent("hack", domain.TypeHackathon, d, "")
	s.CreateEvent("intern", domain.TypeInternship, d.Add(time.Hour), "")
	s.CreateEvent("course", domain.TypeCourse, d.Add(2*time.Hour), "")

	events, err := s.ListEvents(EventFilter{
		Types: []domain.ApplicationType{domain.TypeHackathon, domain.TypeInternship},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	for _, e := range events {
		if e.Type == domain.TypeCourse {
			t.Fatal("course event should be filtered out")
		}
	}
}

func TestListEventsWindowAndOrder(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.CreateEvent("late", domain.TypeOther, base.Add(72*time.Hour), "")
	s.CreateEvent("early", domain.TypeOther, base, "")
	s.CreateEvent("mid", domain.TypeOther, base.Add(24*time.Hour), "")

	from := base.Add(-time.Hour)
	to := base.Add(48 * time.Hour)
	events, err := s.ListEvents(EventFilter{From: &from, To: &to})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events in window, got %d", len(events))
	}
	if events[0].Name != "early" || events[1].Name != "mid" {
		t.Fatalf("expected nearest deadline first, got %s, %s", events[0].Name, events[1].Name)
	}
}

func TestListEventsLimit(t *testing.T) {
	s := newTestStore(t)
	d := time.Now().UTC()
	for i := 0; i < 5; i++ {
		s.CreateEvent("e", domain.TypeOther, d.Add(time.Duration(i)*time.Hour), "")
	}

	events, err := s.ListEvents(EventFilter{Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
}

func TestDeleteEvent(t *testing.T) {
	s := newTestStore(t)
	e, _ := s.CreateEvent("gone", domain.TypeOther, time.Now().UTC(), "")
	if err := s.DeleteEvent(e.ID); err != nil {
		t.Fatal(err)
	}
	events, _ := s.ListEvents(EventFilter{})
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

// ============================================================
// Applications
// ============================================================

func TestCreateApplicationPlanned(t *testing.T) {
	s := newTestStore(t)
	deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	a, err := s.CreateApplication("Google STEP", domain.TypeInternship, domain.StatusPlanned, &deadline, nil, "dream job")
	if err != nil {
		t.Fatal(err)
	}
	if a.Status != domain.StatusPlanned {
		t.Fatalf("expected planned, got %s", a.Status)
	}
	if a.Deadline == nil || !a.Deadline.Equal(deadline) {
		t.Fatalf("deadline round-trip failed: %v", a.Deadline)
	}
	if a.AnnouncementDate != nil || a.EventDate != nil {
		t.Fatal("unset dates must stay nil")
	}
	if a.Notes != "dream job" {
		t.Fatalf("notes round-trip failed: %q", a.Notes)
	}
}

func TestApplicationStatusUpdates(t *testing.T) {
	s := newTestStore(t)
	deadline := time.Now().UTC().Add(240 * time.Hour)
	a, _ := s.CreateApplication("app", domain.TypeHackathon, domain.StatusPlanned, &deadline, nil, "")

	announce := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	if err := s.MarkPending(a.ID, &announce); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetApplication(a.ID)
	if got.Status != domain.StatusPending {
		t.Fatalf("expected pending, got %s", got.Status)
	}
	if got.AnnouncementDate == nil || !got.AnnouncementDate.Equal(announce) {
		t.Fatalf("announcement date not recorded: %v", got.AnnouncementDate)
	}

	eventDate := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	if err := s.MarkApproved(a.ID, &eventDate); err != nil {
		t.Fatal(err)
	}
	got, _ = s.GetApplication(a.ID)
	if got.Status != domain.StatusApproved {
		t.Fatalf("expected approved, got %s", got.Status)
	}
	if got.EventDate == nil || !got.EventDate.Equal(eventDate) {
		t.Fatalf("event date not recorded: %v", got.EventDate)
	}
}

func TestMarkPendingWithoutAnnouncement(t *testing.T) {
	s := newTestStore(t)
	deadline := time.Now().UTC().Add(time.Hour)
	a, _ := s.CreateApplication("app", domain.TypeOther, domain.StatusPlanned, &deadline, nil, "")

	if err := s.MarkPending(a.ID, nil); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetApplication(a.ID)
	if got.Status != domain.StatusPending {
		t.Fatalf("expected pending, got %s", got.Status)
	}
	if got.AnnouncementDate != nil {
		t.Fatal("announcement date should stay unset")
	}
}

func TestMarkRejected(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.CreateApplication("app", domain.TypeOther, domain.StatusPending, nil, nil, "")
	if err := s.MarkRejected(a.ID); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetApplication(a.ID)
	if got.Status != domain.StatusRejected {
		t.Fatalf("expected rejected, got %s", got.Status)
	}
}

func TestStatusUpdateMissingRow(t *testing.T) {
	s := newTestStore(t)
	if err := s.MarkPending(42, nil); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	if err := s.MarkApproved(42, nil); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	if err := s.MarkRejected(42); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestListApplicationsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	s.CreateApplication("old", domain.TypeOther, domain.StatusPending, nil, nil, "")
	s.CreateApplication("new", domain.TypeOther, domain.StatusPending, nil, nil, "")

	apps, err := s.ListApplications()
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 apps, got %d", len(apps))
	}
	if apps[0].Title != "new" {
		t.Fatalf("expected newest first, got %s", apps[0].Title)
	}
}

func TestDeleteApplication(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.CreateApplication("bye", domain.TypeOther, domain.StatusPending, nil, nil, "")
	if err := s.DeleteApplication(a.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetApplication(a.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected ErrNoRows after delete, got %v", err)
	}
}

// ============================================================
// Focus sessions
// ============================================================

func TestCreateFocusSession(t *testing.T) {
	s := newTestStore(t)
	started := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	fs, err := s.CreateFocusSession(started, 30)
	if err != nil {
		t.Fatal(err)
	}
	if fs.DurationMinutes != 30 {
		t.Fatalf("expected 30 minutes, got %d", fs.DurationMinutes)
	}
	if !fs.StartedAt.Equal(started) {
		t.Fatalf("start time round-trip failed: %v", fs.StartedAt)
	}
}

func TestCountFocusSessionsSince(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()
	insertSessionAt(t, s, now.Add(-30*time.Minute), 30)
	insertSessionAt(t, s, now.Add(-2*time.Hour), 30)
	insertSessionAt(t, s, now.Add(-48*time.Hour), 30)

	n, err := s.CountFocusSessionsSince(now.Add(-3 * time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 sessions, got %d", n)
	}
}

func TestListFocusSessionsRange(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	insertSessionAt(t, s, base.Add(9*time.Hour), 30)
	insertSessionAt(t, s, base.Add(14*time.Hour), 30)
	insertSessionAt(t, s, base.AddDate(0, 0, 3), 30)

	sessions, err := s.ListFocusSessions(base, base.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions in range, got %d", len(sessions))
	}
}

// ============================================================
// Weekly stats
// ============================================================

func TestGetWeeklyStats(t *testing.T) {
	s := newTestStore(t)
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC) // a Monday

	// Two completed inside the week, one open inside, one completed outside.
	insertTodoAt(t, s, "done-mon", weekStart, datePtr(weekStart.Add(10*time.Hour)))
	insertTodoAt(t, s, "done-wed", weekStart.Add(48*time.Hour), datePtr(weekStart.Add(50*time.Hour)))
	insertTodoAt(t, s, "open", weekStart.Add(24*time.Hour), nil)
	insertTodoAt(t, s, "last-week", weekStart.AddDate(0, 0, -3), datePtr(weekStart.AddDate(0, 0, -3)))

	// 90 focus minutes inside the week, 30 outside.
	insertSessionAt(t, s, weekStart.Add(9*time.Hour), 30)
	insertSessionAt(t, s, weekStart.Add(33*time.Hour), 60)
	insertSessionAt(t, s, weekStart.AddDate(0, 0, -1), 30)

	stats, err := s.GetWeeklyStats(weekStart)
	if err != nil {
		t.Fatal(err)
	}
	if stats.CompletedTasksCount != 2 {
		t.Fatalf("expected 2 completed, got %d", stats.CompletedTasksCount)
	}
	// 2 completed out of 3 touched this week
	if stats.CompletionRate < 66 || stats.CompletionRate > 67 {
		t.Fatalf("expected ~66.7%% rate, got %f", stats.CompletionRate)
	}
	if stats.FocusHours != 1.5 {
		t.Fatalf("expected 1.5 focus hours, got %f", stats.FocusHours)
	}
}

func TestGetWeeklyStatsEmpty(t *testing.T) {
	s := newTestStore(t)
	stats, err := s.GetWeeklyStats(time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if stats.CompletedTasksCount != 0 || stats.CompletionRate != 0 || stats.FocusHours != 0 || stats.StreakDays != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestCompletionStreak(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	// Completions today, yesterday and three days ago (gap breaks streak).
	insertTodoAt(t, s, "today", now.Add(-time.Hour), datePtr(now))
	insertTodoAt(t, s, "yesterday", now.AddDate(0, 0, -1), datePtr(now.AddDate(0, 0, -1)))
	insertTodoAt(t, s, "older", now.AddDate(0, 0, -3), datePtr(now.AddDate(0, 0, -3)))

	stats, err := s.GetWeeklyStats(now.AddDate(0, 0, -7))
	if err != nil {
		t.Fatal(err)
	}
	if stats.StreakDays != 2 {
		t.Fatalf("expected streak of 2, got %d", stats.StreakDays)
	}
}
