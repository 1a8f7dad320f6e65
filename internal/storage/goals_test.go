package storage

import (
	"context"
	"errors"
	"testing"

	"greentime/internal/core"
)

func mustCreateGoal(t *testing.T, s *Store, g core.Goal) int64 {
	t.Helper()
	id, err := s.CreateGoal(context.Background(), g)
	if err != nil {
		t.Fatalf("create goal %q: %v", g.Title, err)
	}
	return id
}

func TestCreateGoalWithTargets(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	coding := findCategory(t, s, "Coding")
	study := findCategory(t, s, "Study")

	id := mustCreateGoal(t, s, core.Goal{
		Title:     "August push",
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
		Targets: []core.GoalTarget{
			{CategoryID: coding.ID, TargetHours: 40},
			{CategoryID: study.ID, TargetHours: 10},
		},
	})

	goals, err := s.Goals(ctx, false)
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("got %d goals, want 1", len(goals))
	}
	g := goals[0]
	if g.ID != id || g.Title != "August push" || !g.IsActive || g.IsCompleted {
		t.Errorf("unexpected goal: %+v", g)
	}
	if len(g.Targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(g.Targets))
	}
	// Targets come back ordered by category name.
	if g.Targets[0].CategoryName != "Coding" || g.Targets[1].CategoryName != "Study" {
		t.Errorf("target order: %q, %q", g.Targets[0].CategoryName, g.Targets[1].CategoryName)
	}
	if g.Targets[0].TargetHours != 40 {
		t.Errorf("target hours = %v, want 40", g.Targets[0].TargetHours)
	}
}

func TestCreateGoalIsAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	coding := findCategory(t, s, "Coding")
	_, err := s.CreateGoal(ctx, core.Goal{
		Title: "Broken",
		Targets: []core.GoalTarget{
			{CategoryID: coding.ID, TargetHours: 5},
			{CategoryID: coding.ID, TargetHours: 5}, // duplicate category violates uniqueness
		},
	})
	var cve *core.ConstraintViolationError
	if !errors.As(err, &cve) {
		t.Fatalf("got %v, want ConstraintViolationError", err)
	}

	goals, err := s.Goals(ctx, true)
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("failed goal creation left %d goal rows behind", len(goals))
	}
}

func TestCreateGoalValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateGoal(ctx, core.Goal{Title: " "}); !errors.Is(err, core.ErrEmptyTitle) {
		t.Errorf("blank title: got %v", err)
	}
	if _, err := s.CreateGoal(ctx, core.Goal{Title: "X", StartDate: "2026-08-31", EndDate: "2026-08-01"}); err == nil {
		t.Error("inverted date range accepted")
	}
	if _, err := s.CreateGoal(ctx, core.Goal{Title: "X", Targets: []core.GoalTarget{{CategoryID: 1, TargetHours: 0}}}); !errors.Is(err, core.ErrInvalidTarget) {
		t.Errorf("zero target: got %v", err)
	}
}

func TestGoalsOrderingAndCompletedFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := mustCreateGoal(t, s, core.Goal{Title: "First"})
	second := mustCreateGoal(t, s, core.Goal{Title: "Second"})

	if err := s.MarkGoalCompleted(ctx, first); err != nil {
		t.Fatalf("complete: %v", err)
	}

	open, err := s.Goals(ctx, false)
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 1 || open[0].ID != second {
		t.Errorf("open goals = %+v, want only the second", open)
	}

	all, err := s.Goals(ctx, true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d goals, want 2", len(all))
	}
	// Incomplete goals sort before completed ones.
	if all[0].ID != second || all[1].ID != first {
		t.Errorf("ordering: got %d then %d", all[0].ID, all[1].ID)
	}
	if all[1].CompletedAt == nil {
		t.Error("completed goal has no completion timestamp")
	}

	done, err := s.CompletedGoals(ctx)
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(done) != 1 || done[0].ID != first {
		t.Errorf("completed goals = %+v", done)
	}
}

func TestMarkGoalIncompleteClearsTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := mustCreateGoal(t, s, core.Goal{Title: "Toggle"})
	if err := s.MarkGoalCompleted(ctx, id); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := s.MarkGoalIncomplete(ctx, id); err != nil {
		t.Fatalf("uncomplete: %v", err)
	}

	goals, err := s.Goals(ctx, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(goals) != 1 || goals[0].IsCompleted || goals[0].CompletedAt != nil {
		t.Errorf("goal not reopened cleanly: %+v", goals)
	}
}

func TestDeleteGoalIsSoft(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := mustCreateGoal(t, s, core.Goal{Title: "Gone"})
	if err := s.DeleteGoal(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	goals, err := s.Goals(ctx, true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("soft-deleted goal still listed: %+v", goals)
	}

	// Row survives in storage.
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM goals WHERE id = ?`, id).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Error("soft delete removed the row")
	}

	// A second delete finds nothing active.
	if err := s.DeleteGoal(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestUpdateGoal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := mustCreateGoal(t, s, core.Goal{Title: "Draft", StartDate: "2026-08-01"})
	err := s.UpdateGoal(ctx, core.Goal{ID: id, Title: "Final", Description: "locked in", EndDate: "2026-09-30"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	goals, err := s.Goals(ctx, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	g := goals[0]
	if g.Title != "Final" || g.Description != "locked in" {
		t.Errorf("update not persisted: %+v", g)
	}
	if g.StartDate != "" {
		t.Errorf("start date should have been cleared, got %q", g.StartDate)
	}
	if g.EndDate != "2026-09-30" {
		t.Errorf("end date = %q", g.EndDate)
	}
}
