package storage

import (
	"context"
	"database/sql"

	"greentime/internal/core"
)

// Goals returns active goals with their targets joined, incomplete goals
// first, newest first within each group. Completed goals are included
// only when includeCompleted is set.
func (s *Store) Goals(ctx context.Context, includeCompleted bool) ([]core.Goal, error) {
	query := `SELECT id, title, description, start_date, end_date, is_active, is_completed, completed_at, created_at
	          FROM goals WHERE is_active = 1`
	if !includeCompleted {
		query += ` AND is_completed = 0`
	}
	query += ` ORDER BY is_completed ASC, created_at DESC`
	return s.queryGoals(ctx, query)
}

// CompletedGoals returns active goals already marked completed, most
// recently completed first.
func (s *Store) CompletedGoals(ctx context.Context) ([]core.Goal, error) {
	return s.queryGoals(ctx,
		`SELECT id, title, description, start_date, end_date, is_active, is_completed, completed_at, created_at
		 FROM goals WHERE is_active = 1 AND is_completed = 1
		 ORDER BY completed_at DESC`)
}

func (s *Store) queryGoals(ctx context.Context, query string, args ...any) ([]core.Goal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list goals", err)
	}
	defer rows.Close()

	var goals []core.Goal
	for rows.Next() {
		var g core.Goal
		var start, end, completedAt sql.NullString
		var isActive, isCompleted int
		var createdAt string
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &start, &end,
			&isActive, &isCompleted, &completedAt, &createdAt); err != nil {
			return nil, wrapErr("scan goal", err)
		}
		g.StartDate = nullString(start)
		g.EndDate = nullString(end)
		g.IsActive = isActive == 1
		g.IsCompleted = isCompleted == 1
		g.CompletedAt = nullStamp(completedAt)
		g.CreatedAt = parseStamp(createdAt)
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list goals", err)
	}

	for i := range goals {
		targets, err := s.goalTargets(ctx, goals[i].ID)
		if err != nil {
			return nil, err
		}
		goals[i].Targets = targets
	}
	return goals, nil
}

func (s *Store) goalTargets(ctx context.Context, goalID int64) ([]core.GoalTarget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT gt.id, gt.goal_id, gt.category_id, c.name, c.color, gt.target_hours
		 FROM goal_targets gt
		 JOIN categories c ON gt.category_id = c.id
		 WHERE gt.goal_id = ?
		 ORDER BY c.name`, goalID)
	if err != nil {
		return nil, wrapErr("list goal targets", err)
	}
	defer rows.Close()

	var targets []core.GoalTarget
	for rows.Next() {
		var t core.GoalTarget
		if err := rows.Scan(&t.ID, &t.GoalID, &t.CategoryID, &t.CategoryName, &t.CategoryColor, &t.TargetHours); err != nil {
			return nil, wrapErr("scan goal target", err)
		}
		targets = append(targets, t)
	}
	return targets, wrapErr("list goal targets", rows.Err())
}

// CreateGoal inserts the goal row and all of its target rows in a single
// transaction; any target failure rolls the whole goal back. Returns the
// new goal id.
func (s *Store) CreateGoal(ctx context.Context, g core.Goal) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, wrapErr("begin goal transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO goals (title, description, start_date, end_date) VALUES (?, ?, ?, ?)`,
		g.Title, g.Description, orNil(g.StartDate), orNil(g.EndDate),
	)
	if err != nil {
		return 0, wrapErr("create goal", err)
	}
	goalID, _ := res.LastInsertId()

	for _, t := range g.Targets {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO goal_targets (goal_id, category_id, target_hours) VALUES (?, ?, ?)`,
			goalID, t.CategoryID, t.TargetHours,
		)
		if err != nil {
			return 0, wrapErr("create goal target", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, wrapErr("commit goal", err)
	}
	s.log.InfoContext(ctx, "goal created", "id", goalID, "title", g.Title, "targets", len(g.Targets))
	return goalID, nil
}

// UpdateGoal rewrites title, description and the date bounds. Targets are
// not touched here; they belong to goal creation.
func (s *Store) UpdateGoal(ctx context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE goals SET title = ?, description = ?, start_date = ?, end_date = ? WHERE id = ? AND is_active = 1`,
		g.Title, g.Description, orNil(g.StartDate), orNil(g.EndDate), g.ID,
	)
	if err != nil {
		return wrapErr("update goal", err)
	}
	return requireRow(res, "goal", g.ID)
}

// DeleteGoal is a soft delete: the goal and its targets stay in storage
// for historical queries but drop out of every active-goal read.
func (s *Store) DeleteGoal(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE goals SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
	if err != nil {
		return wrapErr("delete goal", err)
	}
	return requireRow(res, "goal", id)
}

func (s *Store) MarkGoalCompleted(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE goals SET is_completed = 1, completed_at = ? WHERE id = ?`, nowStamp(), id)
	if err != nil {
		return wrapErr("mark goal completed", err)
	}
	return requireRow(res, "goal", id)
}

func (s *Store) MarkGoalIncomplete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE goals SET is_completed = 0, completed_at = NULL WHERE id = ?`, id)
	if err != nil {
		return wrapErr("mark goal incomplete", err)
	}
	return requireRow(res, "goal", id)
}

func requireRow(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr("rows affected", err)
	}
	if n == 0 {
		return notFound(what, id)
	}
	return nil
}
