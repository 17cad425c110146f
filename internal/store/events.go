package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/kokpit/internal/domain"
)

func (s *Store) CreateEvent(name string, typ domain.ApplicationType, deadline time.Time, location string) (*Event, error) {
	now := fmtTime(time.Now())
	res, err := s.db.Exec(
		`INSERT INTO events (owner_id, name, type, deadline, location, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		s.owner.String(), name, string(typ), fmtTime(deadline), location, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetEvent(id)
}

func (s *Store) GetEvent(id int64) (*Event, error) {
	row := s.db.QueryRow(
		`SELECT id, owner_id, name, type, deadline, location, created_at FROM events WHERE id = ? AND owner_id = ?`,
		id, s.owner.String(),
	)
	e, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	return e, nil
}

// ListEvents returns events for the owner ordered by deadline, soonest
// first, narrowed by the filter.
func (s *Store) ListEvents(f EventFilter) ([]Event, error) {
	query := `SELECT id, owner_id, name, type, deadline, location, created_at FROM events WHERE owner_id = ?`
	args := []any{s.owner.String()}

	if len(f.Types) > 0 {
		placeholders := make([]string, len(f.Types))
		for i, t := range f.Types {
			placeholders[i] = "?"
			args = append(args, string(t))
		}
		query += ` AND type IN (` + strings.Join(placeholders, ", ") + `)`
	}
	if f.From != nil {
		query += ` AND deadline >= ?`
		args = append(args, fmtTime(*f.From))
	}
	if f.To != nil {
		query += ` AND deadline < ?`
		args = append(args, fmtTime(*f.To))
	}
	query += ` ORDER BY deadline`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *Store) DeleteEvent(id int64) error {
	_, err := s.db.Exec(
		`DELETE FROM events WHERE id = ? AND owner_id = ?`, id, s.owner.String(),
	)
	return err
}

func scanEvent(row rowScanner) (*Event, error) {
	e := &Event{}
	var owner, typ, deadline, createdAt string
	err := row.Scan(&e.ID, &owner, &e.Name, &typ, &deadline, &e.Location, &createdAt)
	if err != nil {
		return nil, err
	}
	e.OwnerID, _ = uuid.Parse(owner)
	e.Type = domain.ApplicationType(typ)
	e.Deadline = parseTime(deadline)
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}
