package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/udisondev/athena/internal/model"
	"github.com/udisondev/athena/internal/optimizer"
)

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrDuplicateItem):
		return http.StatusConflict
	case errors.Is(err, optimizer.ErrEmptySearchSpace):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writing response", "err", err)
	}
}
