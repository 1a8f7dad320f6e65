package http

import (
	"net/http"

	"greentime/internal/core"
)

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	includeCompleted := r.URL.Query().Get("includeCompleted") == "true"
	goals, err := s.backend.Goals(r.Context(), includeCompleted)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(goals))
}

func (s *Server) handleCompletedGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.backend.CompletedGoals(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(goals))
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var g core.Goal
	if err := decode(r, &g); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	id, err := s.backend.CreateGoal(r.Context(), g)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var g core.Goal
	if err := decode(r, &g); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	g.ID = id
	if err := s.backend.UpdateGoal(r.Context(), g); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, s.backend.DeleteGoal, "deleted")
}

func (s *Server) handleCompleteGoal(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, s.backend.MarkGoalCompleted, "completed")
}

func (s *Server) handleUncompleteGoal(w http.ResponseWriter, r *http.Request) {
	s.act(w, r, s.backend.MarkGoalIncomplete, "uncompleted")
}

func (s *Server) act(w http.ResponseWriter, r *http.Request, fn idAction, verb string) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := fn(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{verb: true})
}
