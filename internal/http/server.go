package http

import (
	"net/http"
	"time"

	"greentime/internal/log"
	"greentime/internal/storage"
)

// Timeouts configures the HTTP server deadlines.
type Timeouts struct {
	Read  time.Duration
	Write time.Duration
	Idle  time.Duration
}

// Server exposes the record store and analytics over a local JSON API.
// One route per logical action; handlers stay thin and defer everything
// to the backend.
type Server struct {
	http.Server
	backend storage.Backend
	logger  *log.Logger
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server listening on addr.
func NewServer(addr string, backend storage.Backend, logger *log.Logger, t Timeouts) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  t.Read,
			WriteTimeout: t.Write,
			IdleTimeout:  t.Idle,
		},
		backend: backend,
		logger:  logger.WithComponent("http"),
	}
	s.Server.Handler = s.requestLog(mux)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("PUT /api/categories/{id}", s.handleUpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/goals", s.handleListGoals)
	mux.HandleFunc("GET /api/goals/completed", s.handleCompletedGoals)
	mux.HandleFunc("POST /api/goals", s.handleCreateGoal)
	mux.HandleFunc("PUT /api/goals/{id}", s.handleUpdateGoal)
	mux.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)
	mux.HandleFunc("POST /api/goals/{id}/complete", s.handleCompleteGoal)
	mux.HandleFunc("POST /api/goals/{id}/uncomplete", s.handleUncompleteGoal)

	mux.HandleFunc("GET /api/entries", s.handleListEntries)
	mux.HandleFunc("POST /api/entries", s.handleCreateEntry)
	mux.HandleFunc("PUT /api/entries/{id}", s.handleUpdateEntry)
	mux.HandleFunc("DELETE /api/entries/{id}", s.handleDeleteEntry)

	mux.HandleFunc("GET /api/todos", s.handleListTodos)
	mux.HandleFunc("POST /api/todos", s.handleCreateTodo)
	mux.HandleFunc("PUT /api/todos/{id}", s.handleUpdateTodo)
	mux.HandleFunc("DELETE /api/todos/{id}", s.handleDeleteTodo)
	mux.HandleFunc("POST /api/todos/{id}/complete", s.handleCompleteTodo)
	mux.HandleFunc("POST /api/todos/{id}/uncomplete", s.handleUncompleteTodo)

	mux.HandleFunc("GET /api/stats/categories", s.handleCategoryStats)
	mux.HandleFunc("GET /api/stats/productive", s.handleProductiveStats)
	mux.HandleFunc("GET /api/stats/waste", s.handleWasteStats)
	mux.HandleFunc("GET /api/stats/goal-progress", s.handleGoalProgress)
	mux.HandleFunc("GET /api/stats/streak", s.handleStreak)

	return s
}

// requestLog logs every request with method, path, status and duration.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		s.logger.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration", time.Since(start).String(),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
