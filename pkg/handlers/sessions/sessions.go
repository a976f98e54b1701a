package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/chris/apexfx-session/pkg/api"
	"github.com/chris/apexfx-session/pkg/handlers/respond"
	"github.com/chris/apexfx-session/pkg/mapping"
	"github.com/chris/apexfx-session/pkg/models"
	"github.com/chris/apexfx-session/pkg/session"
)

// Store is the part of session.Store the session handlers depend on.
type Store interface {
	Login(ctx context.Context, email, password string) bool
	AdminLogin(ctx context.Context, email, password string) bool
	CreateUser(ctx context.Context, profile models.Profile) (*models.User, error)
	Logout()
	Session() session.Session
	CurrentUser() (*models.User, bool)
	UpdateUser(patch models.UserPatch) (*models.User, error)
	RememberRedirect(ctx context.Context, target string) error
	TakeRedirect(ctx context.Context) (string, bool)
}

// Make sure we conform to the interface
var _ Store = (*session.Store)(nil)

// SessionHandler holds the dependencies for session-related handlers.
type SessionHandler struct {
	Store Store
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(store Store) *SessionHandler {
	return &SessionHandler{Store: store}
}

func (h *SessionHandler) current() *api.Session {
	user, _ := h.Store.CurrentUser()
	return mapping.ToApiSession(h.Store.Session(), user)
}

// Login signs in an ordinary user and hands back any pending redirect target.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}
	if err := validateLogin(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	if !h.Store.Login(r.Context(), string(req.Email), req.Password) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	resp := h.current()
	if target, ok := h.Store.TakeRedirect(r.Context()); ok {
		resp.Redirect = &target
	}
	respond.JSON(w, http.StatusOK, resp)
}

// AdminLogin signs in an administrator.
func (h *SessionHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}
	if err := validateLogin(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	if !h.Store.AdminLogin(r.Context(), string(req.Email), req.Password) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	respond.JSON(w, http.StatusOK, h.current())
}

// Register creates a standard user without signing in.
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}
	if err := validateRegistration(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}

	user, err := h.Store.CreateUser(r.Context(), models.Profile{
		Email:     string(req.Email),
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respond.Error(w, err, "register user")
		return
	}
	respond.JSON(w, http.StatusCreated, mapping.ToApiUser(user))
}

// Logout ends the session.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Store.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// GetSession reports the current mode and user.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.current())
}

// UpdateCurrentUser merges a profile patch into the signed-in user.
func (h *SessionHandler) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	var patch api.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.BadRequest(w, err)
		return
	}

	updated, err := h.Store.UpdateUser(mapping.ToDomainUserPatch(&patch))
	if err != nil {
		respond.Error(w, err, "update user")
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiUser(updated))
}

// SetRedirect remembers where the next login should land.
func (h *SessionHandler) SetRedirect(w http.ResponseWriter, r *http.Request) {
	var req api.RedirectTarget
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, err)
		return
	}
	if !strings.HasPrefix(req.Target, "/") {
		respond.BadRequest(w, errors.New("target must be an absolute path"))
		return
	}

	if err := h.Store.RememberRedirect(r.Context(), req.Target); err != nil {
		http.Error(w, fmt.Sprintf("Failed to store redirect: %v", err), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TakeRedirect returns the pending redirect target once.
func (h *SessionHandler) TakeRedirect(w http.ResponseWriter, r *http.Request) {
	target, ok := h.Store.TakeRedirect(r.Context())
	if !ok {
		http.Error(w, "No redirect pending", http.StatusNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, api.RedirectTarget{Target: target})
}
