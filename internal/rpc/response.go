package rpc

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tally/internal/core"
)

// payload is an operation result. Every response carries the "status"
// discriminator so callers branch on it instead of assuming success.
type payload map[string]any

func writeOK(w http.ResponseWriter, fields payload) {
	body := payload{"status": "ok"}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

// writeBadRequest reports request decode failures, which sit outside
// the core error taxonomy but are still the caller's fault.
func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, payload{
		"status": "error",
		"error":  err.Error(),
	})
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), payload{
		"status": "error",
		"error":  err.Error(),
	})
}

// statusFor maps the error taxonomy onto HTTP statuses: validation
// failures are the caller's fault, missing ids are a normal failure
// result, anything else is a storage-layer fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyDate),
		errors.Is(err, core.ErrEmptyCategory):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body payload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
