// Package respond writes JSON bodies and maps domain errors to HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chris/apexfx-session/pkg/admin"
	"github.com/chris/apexfx-session/pkg/session"
	"github.com/chris/apexfx-session/pkg/storage"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// StatusFor maps a domain error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrInvariantViolation), errors.Is(err, session.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrUserNotFound), errors.Is(err, session.ErrTransactionNotFound),
		errors.Is(err, storage.ErrRedirectNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, admin.ErrNotAdmin), errors.Is(err, admin.ErrTargetNotStandard):
		return http.StatusForbidden
	case errors.Is(err, session.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, session.ErrInvalidProfile):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Error writes err with the status StatusFor picks. action completes the
// message "Failed to <action>".
func Error(w http.ResponseWriter, err error, action string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "action", action, "error", err)
	}
	http.Error(w, fmt.Sprintf("Failed to %s: %v", action, err), status)
}

// BadRequest reports an undecodable or invalid body.
func BadRequest(w http.ResponseWriter, err error) {
	http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
}
