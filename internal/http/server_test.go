package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"greentime/internal/core"
	"greentime/internal/log"
	"greentime/internal/storage"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := storage.OpenMemory(testLogger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewServer(":0", store, testLogger(), Timeouts{})
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func systemCategoryID(t *testing.T, s *Server) int64 {
	t.Helper()
	rec := do(t, s, http.MethodGet, "/api/categories", nil)
	for _, c := range decodeBody[[]core.Category](t, rec) {
		if c.IsSystem {
			return c.ID
		}
	}
	t.Fatal("no system category")
	return 0
}

func firstCategoryID(t *testing.T, s *Server, name string) int64 {
	t.Helper()
	rec := do(t, s, http.MethodGet, "/api/categories", nil)
	for _, c := range decodeBody[[]core.Category](t, rec) {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("category %q not found", name)
	return 0
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestReadyzLive(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
}

func TestReadyzDegraded(t *testing.T) {
	s := NewServer(":0", &storage.Degraded{Reason: "no disk"}, testLogger(), Timeouts{})
	rec := do(t, s, http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["status"] != "degraded" || body["reason"] != "no disk" {
		t.Errorf("body = %v", body)
	}
}

func TestCategoryLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/categories", core.Category{Name: "Reading"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	created := decodeBody[core.Category](t, rec)
	if created.Color != core.DefaultColor {
		t.Errorf("default color not applied: %q", created.Color)
	}

	rec = do(t, s, http.MethodPut, "/api/categories/"+itoa(created.ID), core.Category{Name: "Books"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body)
	}

	rec = do(t, s, http.MethodDelete, "/api/categories/"+itoa(created.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	s := newTestServer(t)
	sysID := systemCategoryID(t, s)
	codingID := firstCategoryID(t, s, "Coding")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"protected category", http.MethodDelete, "/api/categories/" + itoa(sysID), nil, http.StatusForbidden},
		{"duplicate category", http.MethodPost, "/api/categories", core.Category{Name: "Coding"}, http.StatusConflict},
		{"validation failure", http.MethodPost, "/api/categories", core.Category{Name: " "}, http.StatusUnprocessableEntity},
		{"missing row", http.MethodDelete, "/api/entries/424242", nil, http.StatusNotFound},
		{"bad path id", http.MethodDelete, "/api/entries/zero", nil, http.StatusBadRequest},
		{"dangling reference", http.MethodPost, "/api/entries",
			core.TimeEntry{Date: "2026-08-15", CategoryID: 999999, DurationHours: 1}, http.StatusConflict},
		{"bad entry payload", http.MethodPost, "/api/entries",
			core.TimeEntry{Date: "2026-08-15", CategoryID: codingID, DurationHours: -1}, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, tc.method, tc.path, tc.body)
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tc.want, rec.Body)
			}
			body := decodeBody[map[string]string](t, rec)
			if body["error"] == "" {
				t.Error("error body missing message")
			}
		})
	}
}

func TestEntryAndStatsFlow(t *testing.T) {
	s := newTestServer(t)
	codingID := firstCategoryID(t, s, "Coding")

	rec := do(t, s, http.MethodPost, "/api/entries",
		core.TimeEntry{Date: "2026-08-15", CategoryID: codingID, DurationHours: 2.5})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create entry: %d, body %s", rec.Code, rec.Body)
	}

	rec = do(t, s, http.MethodGet, "/api/entries?startDate=2026-08-01&endDate=2026-08-31", nil)
	entries := decodeBody[[]core.TimeEntry](t, rec)
	if len(entries) != 1 || entries[0].CategoryName != "Coding" {
		t.Fatalf("entries = %+v", entries)
	}

	rec = do(t, s, http.MethodGet, "/api/stats/categories?startDate=2026-08-01&endDate=2026-08-31", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: %d", rec.Code)
	}
	stats := decodeBody[[]core.CategoryStat](t, rec)
	var got float64
	for _, st := range stats {
		if st.Name == "Coding" {
			got = st.TotalHours
		}
	}
	if got != 2.5 {
		t.Errorf("coding hours = %v, want 2.5", got)
	}

	rec = do(t, s, http.MethodGet, "/api/stats/categories", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("stats without range: %d, want 400", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/api/stats/streak", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("streak: %d", rec.Code)
	}
	sd := decodeBody[core.StreakData](t, rec)
	if sd.TotalActiveDays != 1 {
		t.Errorf("streak = %+v", sd)
	}
}

func TestGoalFlow(t *testing.T) {
	s := newTestServer(t)
	codingID := firstCategoryID(t, s, "Coding")

	rec := do(t, s, http.MethodPost, "/api/goals", core.Goal{
		Title:     "Monthly coding",
		StartDate: "2026-08-01",
		EndDate:   "2026-08-31",
		Targets:   []core.GoalTarget{{CategoryID: codingID, TargetHours: 10}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create goal: %d, body %s", rec.Code, rec.Body)
	}
	id := decodeBody[map[string]int64](t, rec)["id"]

	do(t, s, http.MethodPost, "/api/entries",
		core.TimeEntry{Date: "2026-08-10", CategoryID: codingID, DurationHours: 4})

	rec = do(t, s, http.MethodGet, "/api/stats/goal-progress", nil)
	progress := decodeBody[[]core.GoalProgress](t, rec)
	if len(progress) != 1 || progress[0].CompletedHours != 4 {
		t.Fatalf("progress = %+v", progress)
	}

	rec = do(t, s, http.MethodPost, "/api/goals/"+itoa(id)+"/complete", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: %d", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/api/goals", nil)
	if goals := decodeBody[[]core.Goal](t, rec); len(goals) != 0 {
		t.Errorf("completed goal still in default listing: %+v", goals)
	}

	rec = do(t, s, http.MethodGet, "/api/goals/completed", nil)
	if goals := decodeBody[[]core.Goal](t, rec); len(goals) != 1 || goals[0].ID != id {
		t.Errorf("completed listing = %+v", goals)
	}
}

func TestTodoFlow(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/todos",
		core.Todo{Title: "Ship it", StartDate: "2026-08-15", DeadlineTime: "17:00"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create todo: %d, body %s", rec.Code, rec.Body)
	}
	td := decodeBody[core.Todo](t, rec)

	rec = do(t, s, http.MethodPost, "/api/todos/"+itoa(td.ID)+"/complete", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: %d", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/api/todos?date=2026-08-15", nil)
	todos := decodeBody[[]core.Todo](t, rec)
	if len(todos) != 1 || !todos[0].IsCompleted {
		t.Errorf("todos = %+v", todos)
	}
}

func TestEmptyListsEncodeAsArrays(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/entries", nil)
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("empty entry list = %q, want []", body)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
