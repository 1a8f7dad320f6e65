package http

import (
	"net/http"

	"greentime/internal/core"
)

// handleListTodos lists todos. With ?date=YYYY-MM-DD it returns that
// day's todos by deadline; otherwise startDate/endDate bound the listing.
func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	var (
		todos []core.Todo
		err   error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		todos, err = s.backend.TodosByDate(r.Context(), date)
	} else {
		start, end := dateRange(r)
		todos, err = s.backend.Todos(r.Context(), start, end)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(todos))
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var td core.Todo
	if err := decode(r, &td); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	created, err := s.backend.CreateTodo(r.Context(), td)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var td core.Todo
	if err := decode(r, &td); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	td.ID = id
	if err := s.backend.UpdateTodo(r.Context(), td); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, s.backend.DeleteTodo, "deleted")
}

func (s *Server) handleCompleteTodo(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, s.backend.MarkTodoCompleted, "completed")
}

func (s *Server) handleUncompleteTodo(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, s.backend.MarkTodoIncomplete, "uncompleted")
}
