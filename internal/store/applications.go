package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/kokpit/internal/domain"
)

const applicationCols = `id, owner_id, title, type, status, announcement_date, deadline, event_date, notes, created_at`

// CreateApplication inserts a new application row. Transition rules and
// input validation live in the lifecycle package; this is a plain write.
func (s *Store) CreateApplication(title string, typ domain.ApplicationType, status domain.ApplicationStatus, deadline, announcement *time.Time, notes string) (*Application, error) {
	now := fmtTime(time.Now())
	res, err := s.db.Exec(
		`INSERT INTO applications (owner_id, title, type, status, deadline, announcement_date, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.owner.String(), title, string(typ), string(status),
		fmtTimePtr(deadline), fmtTimePtr(announcement), notes, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetApplication(id)
}

func (s *Store) GetApplication(id int64) (*Application, error) {
	row := s.db.QueryRow(
		`SELECT `+applicationCols+` FROM applications WHERE id = ? AND owner_id = ?`,
		id, s.owner.String(),
	)
	a, err := scanApplication(row)
	if err != nil {
		return nil, fmt.Errorf("get application %d: %w", id, err)
	}
	return a, nil
}

// ListApplications returns all applications for the owner, newest first.
func (s *Store) ListApplications() ([]Application, error) {
	rows, err := s.db.Query(
		`SELECT `+applicationCols+` FROM applications WHERE owner_id = ? ORDER BY created_at DESC, id DESC`,
		s.owner.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}

// MarkPending flips the row to pending, recording the announcement date
// when one was given.
func (s *Store) MarkPending(id int64, announcement *time.Time) error {
	query := `UPDATE applications SET status = ? WHERE id = ? AND owner_id = ?`
	args := []any{string(domain.StatusPending), id, s.owner.String()}
	if announcement != nil {
		query = `UPDATE applications SET status = ?, announcement_date = ? WHERE id = ? AND owner_id = ?`
		args = []any{string(domain.StatusPending), fmtTime(*announcement), id, s.owner.String()}
	}
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("mark pending %d: %w", id, err)
	}
	return requireRow(res, id)
}

// MarkApproved flips the row to approved. The event date stays null when
// none was supplied.
func (s *Store) MarkApproved(id int64, eventDate *time.Time) error {
	res, err := s.db.Exec(
		`UPDATE applications SET status = ?, event_date = ? WHERE id = ? AND owner_id = ?`,
		string(domain.StatusApproved), fmtTimePtr(eventDate), id, s.owner.String(),
	)
	if err != nil {
		return fmt.Errorf("mark approved %d: %w", id, err)
	}
	return requireRow(res, id)
}

func (s *Store) MarkRejected(id int64) error {
	res, err := s.db.Exec(
		`UPDATE applications SET status = ? WHERE id = ? AND owner_id = ?`,
		string(domain.StatusRejected), id, s.owner.String(),
	)
	if err != nil {
		return fmt.Errorf("mark rejected %d: %w", id, err)
	}
	return requireRow(res, id)
}

func (s *Store) DeleteApplication(id int64) error {
	_, err := s.db.Exec(
		`DELETE FROM applications WHERE id = ? AND owner_id = ?`, id, s.owner.String(),
	)
	return err
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("application %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*Application, error) {
	a := &Application{}
	var owner, typ, status, createdAt string
	var announcement, deadline, eventDate sql.NullString
	err := row.Scan(&a.ID, &owner, &a.Title, &typ, &status, &announcement, &deadline, &eventDate, &a.Notes, &createdAt)
	if err != nil {
		return nil, err
	}
	a.OwnerID, _ = uuid.Parse(owner)
	a.Type = domain.ApplicationType(typ)
	a.Status = domain.ApplicationStatus(status)
	a.AnnouncementDate = parseTimePtr(announcement)
	a.Deadline = parseTimePtr(deadline)
	a.EventDate = parseTimePtr(eventDate)
	a.CreatedAt = parseTime(createdAt)
	return a, nil
}
