package http

import (
	"context"
	"net/http"

	"greentime/internal/core"
)

type statsQuery func(ctx context.Context, start, end string) ([]core.CategoryStat, error)

func (s *Server) handleCategoryStats(w http.ResponseWriter, r *http.Request) {
	s.stats(w, r, s.backend.CategoryStats)
}

func (s *Server) handleProductiveStats(w http.ResponseWriter, r *http.Request) {
	s.stats(w, r, s.backend.ProductiveCategoryStats)
}

func (s *Server) handleWasteStats(w http.ResponseWriter, r *http.Request) {
	s.stats(w, r, s.backend.WasteTimeStats)
}

// stats runs one of the ranged aggregation queries. Both bounds are
// required; aggregations have no open-ended form.
func (s *Server) stats(w http.ResponseWriter, r *http.Request, fn statsQuery) {
	start, end := dateRange(r)
	if !core.ValidDate(start) || !core.ValidDate(end) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "startDate and endDate are required in YYYY-MM-DD format",
		})
		return
	}
	out, err := fn(r.Context(), start, end)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(out))
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.backend.GoalProgress(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyIfNil(progress))
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	sd, err := s.backend.StreakData(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sd)
}
