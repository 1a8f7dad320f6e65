package storage

import (
	"context"
	"database/sql"

	"greentime/internal/core"
)

const categoryColumns = `id, name, description, color, is_system_category, created_at`

// Categories returns every category ordered by name.
func (s *Store) Categories(ctx context.Context) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, wrapErr("list categories", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, wrapErr("scan category", err)
		}
		cats = append(cats, c)
	}
	return cats, wrapErr("list categories", rows.Err())
}

func (s *Store) getCategory(ctx context.Context, id int64) (*core.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, notFound("category", id)
	}
	if err != nil {
		return nil, wrapErr("get category", err)
	}
	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, c core.Category) (*core.Category, error) {
	if c.Color == "" {
		c.Color = core.DefaultColor
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, description, color, is_system_category) VALUES (?, ?, ?, ?)`,
		c.Name, c.Description, c.Color, boolToInt(c.IsSystem),
	)
	if err != nil {
		return nil, wrapErr("create category", err)
	}
	id, _ := res.LastInsertId()
	s.log.InfoContext(ctx, "category created", "id", id, "name", c.Name)
	return s.getCategory(ctx, id)
}

// UpdateCategory rewrites name, description and color. System categories
// are immutable through the public contract.
func (s *Store) UpdateCategory(ctx context.Context, c core.Category) error {
	current, err := s.getCategory(ctx, c.ID)
	if err != nil {
		return err
	}
	if current.IsSystem {
		return &core.ProtectedResourceError{Name: current.Name}
	}
	if c.Color == "" {
		c.Color = current.Color
	}
	if err := c.Validate(); err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, description = ?, color = ? WHERE id = ?`,
		c.Name, c.Description, c.Color, c.ID,
	)
	return wrapErr("update category", err)
}

// DeleteCategory removes a non-system category; dependent time entries
// and goal targets go with it via the cascade rules.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	current, err := s.getCategory(ctx, id)
	if err != nil {
		return err
	}
	if current.IsSystem {
		return &core.ProtectedResourceError{Name: current.Name}
	}

	_, err = s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return wrapErr("delete category", err)
	}
	s.log.InfoContext(ctx, "category deleted", "id", id, "name", current.Name)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(r rowScanner) (core.Category, error) {
	var c core.Category
	var isSystem int
	var createdAt string
	if err := r.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &isSystem, &createdAt); err != nil {
		return core.Category{}, err
	}
	c.IsSystem = isSystem == 1
	c.CreatedAt = parseStamp(createdAt)
	return c, nil
}
