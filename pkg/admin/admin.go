// Package admin exposes the ledger mutations an administrator may apply to
// another user's record.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chris/apexfx-session/pkg/ledger"
	"github.com/chris/apexfx-session/pkg/models"
	"github.com/chris/apexfx-session/pkg/notify"
	"github.com/chris/apexfx-session/pkg/session"
)

var (
	// ErrNotAdmin is returned when the session is not in admin mode.
	ErrNotAdmin = errors.New("administrator session required")
	// ErrTargetNotStandard is returned when a mutation targets an
	// administrator, the acting one included.
	ErrTargetNotStandard = errors.New("target must be a standard user")
)

// SessionStore is the part of session.Store the gateway depends on.
type SessionStore interface {
	Session() session.Session
	Directory() *session.Directory
}

// Gateway applies admin-originated mutations to target users. It never
// deletes or reorders transactions and never changes an initial balance; the
// Directory rejects any update that would.
type Gateway struct {
	Store     SessionStore
	Publisher notify.Publisher
}

// NewGateway creates a new Gateway.
func NewGateway(store SessionStore, publisher notify.Publisher) *Gateway {
	if publisher == nil {
		publisher = &notify.NoOpPublisher{}
	}
	return &Gateway{Store: store, Publisher: publisher}
}

// actor returns the admin's user id, or ErrNotAdmin.
func (g *Gateway) actor() (string, error) {
	sess := g.Store.Session()
	if sess.Mode != models.ADMIN {
		return "", ErrNotAdmin
	}
	return sess.UserID, nil
}

// checkTarget rejects unknown and non-standard targets. Roles never change
// after creation, so the answer holds for the mutation that follows.
func (g *Gateway) checkTarget(targetUserID string) error {
	target, err := g.Store.Directory().Get(targetUserID)
	if err != nil {
		return err
	}
	if target.Role != models.STANDARD {
		return ErrTargetNotStandard
	}
	return nil
}

// ListUsers returns every standard user known to the session, oldest first.
func (g *Gateway) ListUsers(ctx context.Context) ([]models.User, error) {
	if _, err := g.actor(); err != nil {
		return nil, err
	}
	all := g.Store.Directory().List()
	users := make([]models.User, 0, len(all))
	for _, u := range all {
		if u.Role == models.STANDARD {
			users = append(users, u)
		}
	}
	return users, nil
}

// GetUser returns the target user.
func (g *Gateway) GetUser(ctx context.Context, targetUserID string) (*models.User, error) {
	if _, err := g.actor(); err != nil {
		return nil, err
	}
	return g.Store.Directory().Get(targetUserID)
}

// GrantTransaction appends newTx to the target's log. A negative amount is
// rejected: direction is expressed by the type, never by the sign.
func (g *Gateway) GrantTransaction(ctx context.Context, targetUserID string, newTx models.NewTransaction) (models.Transaction, error) {
	actorID, err := g.actor()
	if err != nil {
		return models.Transaction{}, err
	}
	if err := g.checkTarget(targetUserID); err != nil {
		return models.Transaction{}, fmt.Errorf("failed to grant transaction to user %s: %w", targetUserID, err)
	}

	tx, updated, err := g.Store.Directory().AppendTransaction(targetUserID, newTx)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to grant transaction to user %s: %w", targetUserID, err)
	}

	slog.Info("admin granted transaction",
		"actor_id", actorID,
		"user_id", targetUserID,
		"transaction_id", tx.Id,
		"type", tx.Type,
		"status", tx.Status,
	)

	if tx.Status == models.SUCCESS {
		g.publish(ctx, notify.Message{
			Type: notify.MessageTypeBalanceUpdate,
			Payload: notify.BalanceUpdatePayload{
				UserID:        targetUserID,
				TransactionID: tx.Id,
				Change:        ledger.SignedEffect(tx),
				NewBalance:    updated.Balance,
				ActorID:       actorID,
			},
		})
	}
	return tx, nil
}

// SetTransactionStatus resolves a pending transaction of the target user. The
// balance moves at this moment when the new status is success.
func (g *Gateway) SetTransactionStatus(ctx context.Context, targetUserID, txID string, status models.TransactionStatus) (*models.User, error) {
	actorID, err := g.actor()
	if err != nil {
		return nil, err
	}
	if err := g.checkTarget(targetUserID); err != nil {
		return nil, fmt.Errorf("failed to set status of transaction %s: %w", txID, err)
	}

	previous, updated, err := g.Store.Directory().SetTransactionStatus(targetUserID, txID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to set status of transaction %s: %w", txID, err)
	}

	slog.Info("admin resolved transaction",
		"actor_id", actorID,
		"user_id", targetUserID,
		"transaction_id", txID,
		"from", previous,
		"to", status,
	)

	g.publish(ctx, notify.Message{
		Type: notify.MessageTypeTransactionStatus,
		Payload: notify.TransactionStatusPayload{
			UserID:        targetUserID,
			TransactionID: txID,
			From:          string(previous),
			To:            string(status),
			ActorID:       actorID,
		},
	})
	if status == models.SUCCESS {
		tx := updated.Transactions[updated.FindTransaction(txID)]
		g.publish(ctx, notify.Message{
			Type: notify.MessageTypeBalanceUpdate,
			Payload: notify.BalanceUpdatePayload{
				UserID:        targetUserID,
				TransactionID: txID,
				Change:        ledger.SignedEffect(tx),
				NewBalance:    updated.Balance,
				ActorID:       actorID,
			},
		})
	}
	return updated, nil
}

// ReviseUserProfile merges patch into the target's profile.
func (g *Gateway) ReviseUserProfile(ctx context.Context, targetUserID string, patch models.UserPatch) (*models.User, error) {
	actorID, err := g.actor()
	if err != nil {
		return nil, err
	}
	if err := g.checkTarget(targetUserID); err != nil {
		return nil, fmt.Errorf("failed to revise user %s: %w", targetUserID, err)
	}

	updated, err := g.Store.Directory().Revise(targetUserID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to revise user %s: %w", targetUserID, err)
	}

	slog.Info("admin revised profile", "actor_id", actorID, "user_id", targetUserID)
	g.publish(ctx, notify.Message{
		Type:    notify.MessageTypeProfileUpdate,
		Payload: notify.ProfileUpdatePayload{UserID: targetUserID, ActorID: actorID},
	})
	return updated, nil
}

// publish never fails the mutation that triggered it.
func (g *Gateway) publish(ctx context.Context, msg notify.Message) {
	if err := g.Publisher.Publish(ctx, msg); err != nil {
		slog.Error("failed to publish notification", "type", msg.Type, "error", err)
	}
}
