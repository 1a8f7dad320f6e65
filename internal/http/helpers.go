package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"greentime/internal/core"
	"greentime/internal/storage"
)

// idAction is any backend mutation keyed by row id.
type idAction func(ctx context.Context, id int64) error

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the store's failure taxonomy onto HTTP status codes and
// emits the human-readable message as a JSON body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	var protected *core.ProtectedResourceError
	var constraint *core.ConstraintViolationError
	var storageErr *core.StorageError
	switch {
	case errors.As(err, &protected):
		return http.StatusForbidden
	case errors.As(err, &constraint):
		return http.StatusConflict
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &storageErr):
		return http.StatusInternalServerError
	default:
		// Anything else coming out of the store is input validation.
		return http.StatusUnprocessableEntity
	}
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id in path")
	}
	return id, nil
}

// decode reads a JSON request body into v.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("malformed JSON body")
	}
	return nil
}

// dateRange extracts the optional startDate/endDate query parameters.
func dateRange(r *http.Request) (start, end string) {
	q := r.URL.Query()
	return q.Get("startDate"), q.Get("endDate")
}

// emptyIfNil keeps list responses as [] instead of null.
func emptyIfNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
