package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/kokpit/internal/domain"
)

func (s *Store) CreateTodo(title string, size domain.TodoSize) (*Todo, error) {
	now := fmtTime(time.Now())
	res, err := s.db.Exec(
		`INSERT INTO todos (owner_id, title, type, created_at) VALUES (?, ?, ?, ?)`,
		s.owner.String(), title, string(size), now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTodo(id)
}

func (s *Store) GetTodo(id int64) (*Todo, error) {
	row := s.db.QueryRow(
		`SELECT id, owner_id, title, type, completed, completed_at, created_at FROM todos WHERE id = ? AND owner_id = ?`,
		id, s.owner.String(),
	)
	t, err := scanTodo(row)
	if err != nil {
		return nil, fmt.Errorf("get todo %d: %w", id, err)
	}
	return t, nil
}

// ListTodos returns all todos for the owner, oldest first, so the first
// unfinished big todo found is the day's primary focus.
func (s *Store) ListTodos() ([]Todo, error) {
	rows, err := s.db.Query(
		`SELECT id, owner_id, title, type, completed, completed_at, created_at FROM todos WHERE owner_id = ? ORDER BY created_at, id`,
		s.owner.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *t)
	}
	return todos, rows.Err()
}

// SetTodoCompleted rewrites completed and completed_at together: the
// timestamp is set on completion and cleared on un-completion.
func (s *Store) SetTodoCompleted(id int64, completed bool) error {
	var completedAt any
	flag := 0
	if completed {
		flag = 1
		completedAt = fmtTime(time.Now())
	}
	_, err := s.db.Exec(
		`UPDATE todos SET completed = ?, completed_at = ? WHERE id = ? AND owner_id = ?`,
		flag, completedAt, id, s.owner.String(),
	)
	if err != nil {
		return fmt.Errorf("set todo %d completed: %w", id, err)
	}
	return nil
}

// DeleteCompletedTodos bulk-removes every completed todo and reports how
// many rows went away.
func (s *Store) DeleteCompletedTodos() (int64, error) {
	res, err := s.db.Exec(
		`DELETE FROM todos WHERE completed = 1 AND owner_id = ?`, s.owner.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("delete completed todos: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (s *Store) DeleteTodo(id int64) error {
	_, err := s.db.Exec(
		`DELETE FROM todos WHERE id = ? AND owner_id = ?`, id, s.owner.String(),
	)
	return err
}

func scanTodo(row rowScanner) (*Todo, error) {
	t := &Todo{}
	var owner, typ, createdAt string
	var completed int
	var completedAt sql.NullString
	err := row.Scan(&t.ID, &owner, &t.Title, &typ, &completed, &completedAt, &createdAt)
	if err != nil {
		return nil, err
	}
	t.OwnerID, _ = uuid.Parse(owner)
	t.Type = domain.TodoSize(typ)
	t.Completed = completed == 1
	t.CompletedAt = parseTimePtr(completedAt)
	t.CreatedAt = parseTime(createdAt)
	return t, nil
}
