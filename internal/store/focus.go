package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateFocusSession records one completed focus interval. Sessions are
// immutable: there is no update or delete path.
func (s *Store) CreateFocusSession(startedAt time.Time, durationMinutes int) (*FocusSession, error) {
	now := fmtTime(time.Now())
	res, err := s.db.Exec(
		`INSERT INTO focus_sessions (owner_id, duration_minutes, started_at, created_at) VALUES (?, ?, ?, ?)`,
		s.owner.String(), durationMinutes, fmtTime(startedAt), now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert focus session: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetFocusSession(id)
}

func (s *Store) GetFocusSession(id int64) (*FocusSession, error) {
	f := &FocusSession{}
	var owner, startedAt, createdAt string
	err := s.db.QueryRow(
		`SELECT id, owner_id, duration_minutes, started_at, created_at FROM focus_sessions WHERE id = ? AND owner_id = ?`,
		id, s.owner.String(),
	).Scan(&f.ID, &owner, &f.DurationMinutes, &startedAt, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get focus session %d: %w", id, err)
	}
	f.OwnerID, _ = uuid.Parse(owner)
	f.StartedAt = parseTime(startedAt)
	f.CreatedAt = parseTime(createdAt)
	return f, nil
}

// CountFocusSessionsSince counts sessions started at or after t.
func (s *Store) CountFocusSessionsSince(t time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM focus_sessions WHERE owner_id = ? AND started_at >= ?`,
		s.owner.String(), fmtTime(t),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count focus sessions: %w", err)
	}
	return n, nil
}

func (s *Store) ListFocusSessions(from, to time.Time) ([]FocusSession, error) {
	rows, err := s.db.Query(
		`SELECT id, owner_id, duration_minutes, started_at, created_at
		 FROM focus_sessions
		 WHERE owner_id = ? AND started_at >= ? AND started_at < ?
		 ORDER BY started_at`,
		s.owner.String(), fmtTime(from), fmtTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("list focus sessions: %w", err)
	}
	defer rows.Close()

	var sessions []FocusSession
	for rows.Next() {
		f := FocusSession{}
		var owner, startedAt, createdAt string
		if err := rows.Scan(&f.ID, &owner, &f.DurationMinutes, &startedAt, &createdAt); err != nil {
			return nil, err
		}
		f.OwnerID, _ = uuid.Parse(owner)
		f.StartedAt = parseTime(startedAt)
		f.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, f)
	}
	return sessions, rows.Err()
}
