package handlers

import (
	"log/slog"
	"net/http"

	"github.com/chris/apexfx-session/pkg/access"
	"github.com/chris/apexfx-session/pkg/admin"
	"github.com/chris/apexfx-session/pkg/api"
	"github.com/chris/apexfx-session/pkg/handlers/sessions"
	"github.com/chris/apexfx-session/pkg/handlers/transactions"
	"github.com/chris/apexfx-session/pkg/handlers/users"
	"github.com/chris/apexfx-session/pkg/handlers/views"
	"github.com/chris/apexfx-session/pkg/middleware"
	"github.com/chris/apexfx-session/pkg/notify"
	"github.com/chris/apexfx-session/pkg/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// ApiHandler implements the server interface by composing the per-area handlers.
type ApiHandler struct {
	*sessions.SessionHandler
	*transactions.TransactionsHandler
	*users.UsersHandler
	*views.ViewsHandler
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

// NewApiHandler wires every area handler to the one session store.
func NewApiHandler(store *session.Store, publisher notify.Publisher) *ApiHandler {
	return &ApiHandler{
		SessionHandler:      sessions.NewSessionHandler(store),
		TransactionsHandler: transactions.NewTransactionsHandler(store),
		UsersHandler:        users.NewUsersHandler(admin.NewGateway(store, publisher)),
		ViewsHandler:        views.NewViewsHandler(access.NewGate(), store),
	}
}

// NewRouter mounts the API on a chi router with request logging, and guards
// the admin routes with an admin-mode check.
func NewRouter(h *ApiHandler, store *session.Store, logger *slog.Logger) http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.NewStructuredLogger(logger, store))

	return api.HandlerWithOptions(h, api.ChiServerOptions{
		BaseRouter:       router,
		AdminMiddlewares: []func(http.Handler) http.Handler{middleware.RequireAdmin(store)},
	})
}
