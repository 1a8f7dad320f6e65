package storage

import (
	"context"
	"database/sql"

	"greentime/internal/core"
)

const todoColumns = `id, title, description, start_date, deadline_time, is_completed, completed_at, created_at, updated_at`

// Todos returns todos filtered by an inclusive start-date range; either
// bound may be empty. Ordered by start date descending, then deadline
// time ascending.
func (s *Store) Todos(ctx context.Context, startDate, endDate string) ([]core.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE 1=1`
	var args []any
	if startDate != "" {
		query += ` AND start_date >= ?`
		args = append(args, startDate)
	}
	if endDate != "" {
		query += ` AND start_date <= ?`
		args = append(args, endDate)
	}
	query += ` ORDER BY start_date DESC, deadline_time ASC`
	return s.queryTodos(ctx, query, args...)
}

// TodosByDate returns the todos for one exact day, ordered by deadline
// time ascending.
func (s *Store) TodosByDate(ctx context.Context, date string) ([]core.Todo, error) {
	return s.queryTodos(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE start_date = ? ORDER BY deadline_time ASC`, date)
}

func (s *Store) queryTodos(ctx context.Context, query string, args ...any) ([]core.Todo, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list todos", err)
	}
	defer rows.Close()

	var todos []core.Todo
	for rows.Next() {
		td, err := scanTodo(rows)
		if err != nil {
			return nil, wrapErr("scan todo", err)
		}
		todos = append(todos, td)
	}
	return todos, wrapErr("list todos", rows.Err())
}

func (s *Store) getTodo(ctx context.Context, id int64) (*core.Todo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)
	td, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, notFound("todo", id)
	}
	if err != nil {
		return nil, wrapErr("get todo", err)
	}
	return &td, nil
}

func (s *Store) CreateTodo(ctx context.Context, td core.Todo) (*core.Todo, error) {
	if err := td.Validate(); err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (title, description, start_date, deadline_time) VALUES (?, ?, ?, ?)`,
		td.Title, td.Description, td.StartDate, td.DeadlineTime,
	)
	if err != nil {
		return nil, wrapErr("create todo", err)
	}
	id, _ := res.LastInsertId()
	return s.getTodo(ctx, id)
}

func (s *Store) UpdateTodo(ctx context.Context, td core.Todo) error {
	if err := td.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE todos SET title = ?, description = ?, start_date = ?, deadline_time = ?, updated_at = ?
		 WHERE id = ?`,
		td.Title, td.Description, td.StartDate, td.DeadlineTime, nowStamp(), td.ID,
	)
	if err != nil {
		return wrapErr("update todo", err)
	}
	return requireRow(res, "todo", td.ID)
}

func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return wrapErr("delete todo", err)
	}
	return requireRow(res, "todo", id)
}

func (s *Store) MarkTodoCompleted(ctx context.Context, id int64) error {
	now := nowStamp()
	res, err := s.db.ExecContext(ctx,
		`UPDATE todos SET is_completed = 1, completed_at = ?, updated_at = ? WHERE id = ?`, now, now, id)
	if err != nil {
		return wrapErr("mark todo completed", err)
	}
	return requireRow(res, "todo", id)
}

func (s *Store) MarkTodoIncomplete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE todos SET is_completed = 0, completed_at = NULL, updated_at = ? WHERE id = ?`, nowStamp(), id)
	if err != nil {
		return wrapErr("mark todo incomplete", err)
	}
	return requireRow(res, "todo", id)
}

func scanTodo(r rowScanner) (core.Todo, error) {
	var td core.Todo
	var isCompleted int
	var completedAt sql.NullString
	var createdAt, updatedAt string
	if err := r.Scan(&td.ID, &td.Title, &td.Description, &td.StartDate, &td.DeadlineTime,
		&isCompleted, &completedAt, &createdAt, &updatedAt); err != nil {
		return core.Todo{}, err
	}
	td.IsCompleted = isCompleted == 1
	td.CompletedAt = nullStamp(completedAt)
	td.CreatedAt = parseStamp(createdAt)
	td.UpdatedAt = parseStamp(updatedAt)
	return td, nil
}
