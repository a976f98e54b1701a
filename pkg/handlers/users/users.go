package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chris/apexfx-session/pkg/admin"
	"github.com/chris/apexfx-session/pkg/api"
	"github.com/chris/apexfx-session/pkg/handlers/respond"
	"github.com/chris/apexfx-session/pkg/mapping"
	"github.com/chris/apexfx-session/pkg/models"
)

// Gateway is the admin mutation surface the user management handlers call.
type Gateway interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GrantTransaction(ctx context.Context, targetUserID string, newTx models.NewTransaction) (models.Transaction, error)
	ReviseUserProfile(ctx context.Context, targetUserID string, patch models.UserPatch) (*models.User, error)
	SetTransactionStatus(ctx context.Context, targetUserID, txID string, status models.TransactionStatus) (*models.User, error)
}

// Make sure we conform to the interface
var _ Gateway = (*admin.Gateway)(nil)

// UsersHandler holds the dependencies for admin user management handlers.
type UsersHandler struct {
	Gateway Gateway
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(gateway Gateway) *UsersHandler {
	return &UsersHandler{Gateway: gateway}
}

// ListUsers returns every standard user with their transactions.
func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	domainUsers, err := h.Gateway.ListUsers(r.Context())
	if err != nil {
		respond.Error(w, err, "list users")
		return
	}

	apiUsers := make([]*api.UserDetail, len(domainUsers))
	for i := range domainUsers {
		apiUsers[i] = mapping.ToApiUserDetail(&domainUsers[i])
	}
	respond.JSON(w, http.StatusOK, apiUsers)
}

// GrantTransaction appends a transaction to the target user's log.
func (h *UsersHandler) GrantTransaction(w http.ResponseWriter, r *http.Request, userId string) {
	var newTx api.NewTransaction
	if err := json.NewDecoder(r.Body).Decode(&newTx); err != nil {
		respond.BadRequest(w, err)
		return
	}

	created, err := h.Gateway.GrantTransaction(r.Context(), userId, mapping.ToDomainNewTransaction(&newTx))
	if err != nil {
		respond.Error(w, err, "grant transaction")
		return
	}
	respond.JSON(w, http.StatusCreated, mapping.ToApiTransaction(&created))
}

// ReviseUser merges a profile patch into the target user.
func (h *UsersHandler) ReviseUser(w http.ResponseWriter, r *http.Request, userId string) {
	var patch api.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.BadRequest(w, err)
		return
	}

	updated, err := h.Gateway.ReviseUserProfile(r.Context(), userId, mapping.ToDomainUserPatch(&patch))
	if err != nil {
		respond.Error(w, err, "revise user")
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiUserDetail(updated))
}

// SetTransactionStatus resolves a pending transaction of the target user.
func (h *UsersHandler) SetTransactionStatus(w http.ResponseWriter, r *http.Request, userId string, transactionId string) {
	var update api.StatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respond.BadRequest(w, err)
		return
	}
	status := models.TransactionStatus(update.Status)
	if !status.Valid() {
		respond.BadRequest(w, fmt.Errorf("unknown status %q", update.Status))
		return
	}

	updated, err := h.Gateway.SetTransactionStatus(r.Context(), userId, transactionId, status)
	if err != nil {
		respond.Error(w, err, "set transaction status")
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiUserDetail(updated))
}
