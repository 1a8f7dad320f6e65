package storage

import (
	"context"

	"greentime/internal/core"
)

// Backend is the full persistence and analytics surface consumed by the
// boundary adapter: one method per logical action. *Store implements it
// against SQLite; Degraded implements it as an empty-data stub.
type Backend interface {
	Categories(ctx context.Context) ([]core.Category, error)
	CreateCategory(ctx context.Context, c core.Category) (*core.Category, error)
	UpdateCategory(ctx context.Context, c core.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	Goals(ctx context.Context, includeCompleted bool) ([]core.Goal, error)
	CompletedGoals(ctx context.Context) ([]core.Goal, error)
	CreateGoal(ctx context.Context, g core.Goal) (int64, error)
	UpdateGoal(ctx context.Context, g core.Goal) error
	DeleteGoal(ctx context.Context, id int64) error
	MarkGoalCompleted(ctx context.Context, id int64) error
	MarkGoalIncomplete(ctx context.Context, id int64) error

	TimeEntries(ctx context.Context, startDate, endDate string) ([]core.TimeEntry, error)
	CreateTimeEntry(ctx context.Context, e core.TimeEntry) (*core.TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, e core.TimeEntry) error
	DeleteTimeEntry(ctx context.Context, id int64) error

	Todos(ctx context.Context, startDate, endDate string) ([]core.Todo, error)
	TodosByDate(ctx context.Context, date string) ([]core.Todo, error)
	CreateTodo(ctx context.Context, td core.Todo) (*core.Todo, error)
	UpdateTodo(ctx context.Context, td core.Todo) error
	DeleteTodo(ctx context.Context, id int64) error
	MarkTodoCompleted(ctx context.Context, id int64) error
	MarkTodoIncomplete(ctx context.Context, id int64) error

	CategoryStats(ctx context.Context, startDate, endDate string) ([]core.CategoryStat, error)
	ProductiveCategoryStats(ctx context.Context, startDate, endDate string) ([]core.CategoryStat, error)
	WasteTimeStats(ctx context.Context, startDate, endDate string) ([]core.CategoryStat, error)
	GoalProgress(ctx context.Context) ([]core.GoalProgress, error)
	StreakData(ctx context.Context) (core.StreakData, error)

	Close() error
}
