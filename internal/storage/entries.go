package storage

import (
	"context"
	"database/sql"

	"greentime/internal/core"
)

const entryColumns = `te.id, te.date, te.category_id, c.name, c.color, te.duration_hours, te.description, te.created_at, te.updated_at`

// TimeEntries returns entries with category name/color joined, filtered
// by an inclusive date range. Either bound may be empty to leave that
// side open; with both empty the listing is unrestricted. Ordered by date
// descending, then creation time descending.
func (s *Store) TimeEntries(ctx context.Context, startDate, endDate string) ([]core.TimeEntry, error) {
	query := `SELECT ` + entryColumns + `
	          FROM time_entries te
	          JOIN categories c ON te.category_id = c.id`
	var args []any
	switch {
	case startDate != "" && endDate != "":
		query += ` WHERE te.date BETWEEN ? AND ?`
		args = append(args, startDate, endDate)
	case startDate != "":
		query += ` WHERE te.date >= ?`
		args = append(args, startDate)
	case endDate != "":
		query += ` WHERE te.date <= ?`
		args = append(args, endDate)
	}
	query += ` ORDER BY te.date DESC, te.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list time entries", err)
	}
	defer rows.Close()

	var entries []core.TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, wrapErr("scan time entry", err)
		}
		entries = append(entries, e)
	}
	return entries, wrapErr("list time entries", rows.Err())
}

func (s *Store) getTimeEntry(ctx context.Context, id int64) (*core.TimeEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+`
		 FROM time_entries te
		 JOIN categories c ON te.category_id = c.id
		 WHERE te.id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, notFound("time entry", id)
	}
	if err != nil {
		return nil, wrapErr("get time entry", err)
	}
	return &e, nil
}

func (s *Store) CreateTimeEntry(ctx context.Context, e core.TimeEntry) (*core.TimeEntry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO time_entries (date, category_id, duration_hours, description) VALUES (?, ?, ?, ?)`,
		e.Date, e.CategoryID, e.DurationHours, e.Description,
	)
	if err != nil {
		return nil, wrapErr("create time entry", err)
	}
	id, _ := res.LastInsertId()
	return s.getTimeEntry(ctx, id)
}

func (s *Store) UpdateTimeEntry(ctx context.Context, e core.TimeEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE time_entries SET date = ?, category_id = ?, duration_hours = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		e.Date, e.CategoryID, e.DurationHours, e.Description, nowStamp(), e.ID,
	)
	if err != nil {
		return wrapErr("update time entry", err)
	}
	return requireRow(res, "time entry", e.ID)
}

func (s *Store) DeleteTimeEntry(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return wrapErr("delete time entry", err)
	}
	return requireRow(res, "time entry", id)
}

func scanEntry(r rowScanner) (core.TimeEntry, error) {
	var e core.TimeEntry
	var createdAt, updatedAt string
	if err := r.Scan(&e.ID, &e.Date, &e.CategoryID, &e.CategoryName, &e.CategoryColor,
		&e.DurationHours, &e.Description, &createdAt, &updatedAt); err != nil {
		return core.TimeEntry{}, err
	}
	e.CreatedAt = parseStamp(createdAt)
	e.UpdatedAt = parseStamp(updatedAt)
	return e, nil
}
