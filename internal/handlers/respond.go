package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bensuskins/nutrition-hub/internal/services"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// readBody returns the request body, replying 400 itself when it is too
// large or unreadable.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}
	return body, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	body, ok := readBody(w, r)
	if !ok {
		return false
	}
	if err := json.Unmarshal(body, target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// writeServiceError maps service failures onto HTTP responses. Validation
// failures use the same shape as the validate endpoints.
func writeServiceError(w http.ResponseWriter, err error, resource string) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"valid": false, "errors": validationErr.Errors})
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, resource+" not found")
	default:
		slog.Error("handling "+resource, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to process "+resource)
	}
}

// parseDateRange reads optional from/to query dates. to is inclusive, so the
// returned upper bound is the start of the following day.
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	var from, to time.Time
	if value := r.URL.Query().Get("from"); value != "" {
		parsed, err := time.Parse(services.DateLayout, value)
		if err != nil {
			return from, to, fmt.Errorf("from must be a date like 2006-01-02")
		}
		from = parsed
	}
	if value := r.URL.Query().Get("to"); value != "" {
		parsed, err := time.Parse(services.DateLayout, value)
		if err != nil {
			return from, to, fmt.Errorf("to must be a date like 2006-01-02")
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, nil
}
