package http

import (
	"net/http"
	"time"

	"greentime/internal/storage"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleReady reports whether the store behind the API is live. A
// degraded backend answers 503 with the initialization failure reason so
// the shell can surface it.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if d, ok := s.backend.(*storage.Degraded); ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"reason": d.Reason,
		})
		return
	}
	if _, err := s.backend.Categories(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
