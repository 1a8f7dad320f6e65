package storage

import (
	"context"

	"greentime/internal/core"
)

// Degraded is the fallback backend used when the database cannot be
// initialized. Reads return empty data so the presentation shell keeps
// rendering; writes fail with a storage error carrying the original
// initialization failure reason.
type Degraded struct {
	Reason string
}

func (d *Degraded) fail(op string) error {
	return &core.StorageError{Op: op, Err: errDegraded(d.Reason)}
}

type errDegraded string

func (e errDegraded) Error() string { return "store unavailable: " + string(e) }

func (d *Degraded) Categories(context.Context) ([]core.Category, error) { return nil, nil }

func (d *Degraded) CreateCategory(context.Context, core.Category) (*core.Category, error) {
	return nil, d.fail("create category")
}

func (d *Degraded) UpdateCategory(context.Context, core.Category) error {
	return d.fail("update category")
}

func (d *Degraded) DeleteCategory(context.Context, int64) error {
	return d.fail("delete category")
}

func (d *Degraded) Goals(context.Context, bool) ([]core.Goal, error) { return nil, nil }

func (d *Degraded) CompletedGoals(context.Context) ([]core.Goal, error) { return nil, nil }

func (d *Degraded) CreateGoal(context.Context, core.Goal) (int64, error) {
	return 0, d.fail("create goal")
}

func (d *Degraded) UpdateGoal(context.Context, core.Goal) error { return d.fail("update goal") }

func (d *Degraded) DeleteGoal(context.Context, int64) error { return d.fail("delete goal") }

func (d *Degraded) MarkGoalCompleted(context.Context, int64) error {
	return d.fail("mark goal completed")
}

func (d *Degraded) MarkGoalIncomplete(context.Context, int64) error {
	return d.fail("mark goal incomplete")
}

func (d *Degraded) TimeEntries(context.Context, string, string) ([]core.TimeEntry, error) {
	return nil, nil
}

func (d *Degraded) CreateTimeEntry(context.Context, core.TimeEntry) (*core.TimeEntry, error) {
	return nil, d.fail("create time entry")
}

func (d *Degraded) UpdateTimeEntry(context.Context, core.TimeEntry) error {
	return d.fail("update time entry")
}

func (d *Degraded) DeleteTimeEntry(context.Context, int64) error {
	return d.fail("delete time entry")
}

func (d *Degraded) Todos(context.Context, string, string) ([]core.Todo, error) { return nil, nil }

func (d *Degraded) TodosByDate(context.Context, string) ([]core.Todo, error) { return nil, nil }

func (d *Degraded) CreateTodo(context.Context, core.Todo) (*core.Todo, error) {
	return nil, d.fail("create todo")
}

func (d *Degraded) UpdateTodo(context.Context, core.Todo) error { return d.fail("update todo") }

func (d *Degraded) DeleteTodo(context.Context, int64) error { return d.fail("delete todo") }

func (d *Degraded) MarkTodoCompleted(context.Context, int64) error {
	return d.fail("mark todo completed")
}

func (d *Degraded) MarkTodoIncomplete(context.Context, int64) error {
	return d.fail("mark todo incomplete")
}

func (d *Degraded) CategoryStats(context.Context, string, string) ([]core.CategoryStat, error) {
	return nil, nil
}

func (d *Degraded) ProductiveCategoryStats(context.Context, string, string) ([]core.CategoryStat, error) {
	return nil, nil
}

func (d *Degraded) WasteTimeStats(context.Context, string, string) ([]core.CategoryStat, error) {
	return nil, nil
}

func (d *Degraded) GoalProgress(context.Context) ([]core.GoalProgress, error) { return nil, nil }

func (d *Degraded) StreakData(context.Context) (core.StreakData, error) {
	return core.StreakData{}, nil
}

func (d *Degraded) Close() error { return nil }
