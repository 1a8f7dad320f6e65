package storage

import (
	"context"
	"time"

	"greentime/internal/core"
)

// CategoryStats aggregates hours and distinct active days per category
// over the inclusive [startDate, endDate] window. Every category appears,
// zero-filled when it has no entries in range; system categories sort
// last, then descending total hours.
func (s *Store) CategoryStats(ctx context.Context, startDate, endDate string) ([]core.CategoryStat, error) {
	return s.queryStats(ctx,
		`SELECT c.id, c.name, c.color, c.is_system_category,
		        COALESCE(SUM(te.duration_hours), 0) AS total_hours,
		        COUNT(DISTINCT te.date) AS active_days
		 FROM categories c
		 LEFT JOIN time_entries te ON c.id = te.category_id
		      AND te.date BETWEEN ? AND ?
		 GROUP BY c.id, c.name, c.color, c.is_system_category
		 ORDER BY c.is_system_category ASC, total_hours DESC`,
		startDate, endDate)
}

// ProductiveCategoryStats is CategoryStats restricted to non-system
// categories.
func (s *Store) ProductiveCategoryStats(ctx context.Context, startDate, endDate string) ([]core.CategoryStat, error) {
	return s.queryStats(ctx,
		`SELECT c.id, c.name, c.color, c.is_system_category,
		        COALESCE(SUM(te.duration_hours), 0) AS total_hours,
		        COUNT(DISTINCT te.date) AS active_days
		 FROM categories c
		 LEFT JOIN time_entries te ON c.id = te.category_id
		      AND te.date BETWEEN ? AND ?
		 WHERE c.is_system_category = 0
		 GROUP BY c.id, c.name, c.color
		 ORDER BY total_hours DESC`,
		startDate, endDate)
}

// WasteTimeStats is CategoryStats restricted to system categories.
func (s *Store) WasteTimeStats(ctx context.Context, startDate, endDate string) ([]core.CategoryStat, error) {
	return s.queryStats(ctx,
		`SELECT c.id, c.name, c.color, c.is_system_category,
		        COALESCE(SUM(te.duration_hours), 0) AS total_hours,
		        COUNT(DISTINCT te.date) AS active_days
		 FROM categories c
		 LEFT JOIN time_entries te ON c.id = te.category_id
		      AND te.date BETWEEN ? AND ?
		 WHERE c.is_system_category = 1
		 GROUP BY c.id, c.name, c.color
		 ORDER BY total_hours DESC`,
		startDate, endDate)
}

func (s *Store) queryStats(ctx context.Context, query string, args ...any) ([]core.CategoryStat, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("category stats", err)
	}
	defer rows.Close()

	var stats []core.CategoryStat
	for rows.Next() {
		var st core.CategoryStat
		var isSystem int
		if err := rows.Scan(&st.CategoryID, &st.Name, &st.Color, &isSystem, &st.TotalHours, &st.ActiveDays); err != nil {
			return nil, wrapErr("scan category stat", err)
		}
		st.IsSystem = isSystem == 1
		stats = append(stats, st)
	}
	return stats, wrapErr("category stats", rows.Err())
}

// GoalProgress computes completed hours and percentage for every target
// of every active goal on a non-system category. Entries count when their
// date falls within the goal's bounds; a NULL bound is unbounded on that
// side. A zero target yields zero percent rather than dividing by zero.
func (s *Store) GoalProgress(ctx context.Context) ([]core.GoalProgress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id, g.title, gt.category_id, c.name, c.color, gt.target_hours,
		        COALESCE(SUM(te.duration_hours), 0) AS completed_hours,
		        CASE
		            WHEN gt.target_hours > 0 THEN (COALESCE(SUM(te.duration_hours), 0) / gt.target_hours) * 100
		            ELSE 0
		        END AS progress_percentage
		 FROM goals g
		 JOIN goal_targets gt ON g.id = gt.goal_id
		 JOIN categories c ON gt.category_id = c.id
		 LEFT JOIN time_entries te ON c.id = te.category_id
		      AND (g.start_date IS NULL OR te.date >= g.start_date)
		      AND (g.end_date IS NULL OR te.date <= g.end_date)
		 WHERE g.is_active = 1 AND c.is_system_category = 0
		 GROUP BY g.id, gt.category_id, gt.target_hours
		 ORDER BY g.id, c.name`)
	if err != nil {
		return nil, wrapErr("goal progress", err)
	}
	defer rows.Close()

	var progress []core.GoalProgress
	for rows.Next() {
		var p core.GoalProgress
		if err := rows.Scan(&p.GoalID, &p.GoalTitle, &p.CategoryID, &p.CategoryName, &p.CategoryColor,
			&p.TargetHours, &p.CompletedHours, &p.ProgressPercentage); err != nil {
			return nil, wrapErr("scan goal progress", err)
		}
		progress = append(progress, p)
	}
	return progress, wrapErr("goal progress", rows.Err())
}

// activeDates returns the distinct dates carrying at least one entry for
// a non-system category, newest first. This is the streak calculator's
// input.
func (s *Store) activeDates(ctx context.Context) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT te.date
		 FROM time_entries te
		 JOIN categories c ON te.category_id = c.id
		 WHERE c.is_system_category = 0
		 ORDER BY te.date DESC`)
	if err != nil {
		return nil, wrapErr("active dates", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var ds string
		if err := rows.Scan(&ds); err != nil {
			return nil, wrapErr("scan active date", err)
		}
		d, err := time.Parse(core.DateFormat, ds)
		if err != nil {
			// Skip rows that predate date normalization.
			s.log.WarnContext(ctx, "skipping malformed entry date", "date", ds)
			continue
		}
		dates = append(dates, d)
	}
	return dates, wrapErr("active dates", rows.Err())
}

// StreakData runs the streak calculation over the current productive
// activity dates, relative to the local calendar's today.
func (s *Store) StreakData(ctx context.Context) (core.StreakData, error) {
	dates, err := s.activeDates(ctx)
	if err != nil {
		return core.StreakData{}, err
	}
	return core.Streak(dates, time.Now()), nil
}
