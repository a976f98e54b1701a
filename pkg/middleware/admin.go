package middleware

import (
	"net/http"

	"github.com/chris/apexfx-session/pkg/models"
)

// RequireAdmin rejects requests unless the session is in admin mode. A nil
// source fails closed.
func RequireAdmin(modes ModeSource) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if modes == nil || modes.Mode() != models.ADMIN {
				http.Error(w, "Administrator session required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
