package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/chris/apexfx-session/pkg/models"
	"github.com/go-chi/chi/v5/middleware"
)

// ModeSource reports the current session mode.
type ModeSource interface {
	Mode() models.Mode
}

// NewStructuredLogger is a custom middleware that provides structured logging for requests.
// The session mode after the request is logged when modes is not nil.
func NewStructuredLogger(logger *slog.Logger, modes ModeSource) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			tww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t_start := time.Now()
			defer func() {
				status := tww.Status()
				latency := time.Since(t_start)

				requestAttrs := slog.Group("request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)

				responseAttrs := slog.Group("response",
					slog.Int("status", status),
					slog.Int("bytes", tww.BytesWritten()),
					slog.String("latency", latency.String()),
				)

				attrs := []any{requestAttrs, responseAttrs}
				if modes != nil {
					attrs = append(attrs, slog.String("session_mode", string(modes.Mode())))
				}

				if status >= 500 {
					logger.Error("server error", attrs...)
				} else {
					logger.Info("request completed", attrs...)
				}
			}()

			next.ServeHTTP(tww, r)
		}
		return http.HandlerFunc(fn)
	}
}
