package admin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/chris/apexfx-session/pkg/admin"
	"github.com/chris/apexfx-session/pkg/models"
	"github.com/chris/apexfx-session/pkg/notify"
	"github.com/chris/apexfx-session/pkg/notify/mocks"
	"github.com/chris/apexfx-session/pkg/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// setup registers a target user and signs in an administrator.
func setup(t *testing.T, publisher notify.Publisher) (*admin.Gateway, *session.Store, *models.User) {
	t.Helper()
	ctx := context.Background()
	store := session.New(session.WithStartingBalance(d(1000)))
	target, err := store.CreateUser(ctx, models.Profile{Email: "trader@example.com", Password: "Secret#123", FirstName: "Tra", LastName: "Der"})
	require.NoError(t, err)
	require.True(t, store.AdminLogin(ctx, "admin@apexfx.com", "password123"))
	return admin.NewGateway(store, publisher), store, target
}

func TestGrantTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending Debit Moves Balance At Flip", func(t *testing.T) {
		publisher := new(mocks.Publisher)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
		gateway, store, target := setup(t, publisher)

		tx, err := gateway.GrantTransaction(ctx, target.Id, models.NewTransaction{Amount: d(100), Type: models.DEBIT, Status: models.PENDING, Description: "Withdrawal"})
		require.NoError(t, err)

		afterGrant, _ := store.Directory().Get(target.Id)
		assert.True(t, afterGrant.Balance.Equal(d(1000)), "balance must not move at creation")
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)

		updated, err := gateway.SetTransactionStatus(ctx, target.Id, tx.Id, models.SUCCESS)
		require.NoError(t, err)

		assert.True(t, updated.Balance.Equal(d(900)))
		publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(m notify.Message) bool {
			p, ok := m.Payload.(notify.BalanceUpdatePayload)
			return ok && m.Type == notify.MessageTypeBalanceUpdate && p.NewBalance.Equal(d(900)) && p.Change.Equal(d(-100))
		}))
		publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(m notify.Message) bool {
			p, ok := m.Payload.(notify.TransactionStatusPayload)
			return ok && p.From == "pending" && p.To == "success"
		}))
	})

	t.Run("Successful Credit", func(t *testing.T) {
		publisher := new(mocks.Publisher)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
		gateway, store, target := setup(t, publisher)

		_, err := gateway.GrantTransaction(ctx, target.Id, models.NewTransaction{Amount: d(250), Type: models.CREDIT, Status: models.SUCCESS, Description: "Trading profit"})
		require.NoError(t, err)

		u, _ := store.Directory().Get(target.Id)
		assert.True(t, u.Balance.Equal(d(1250)))
		assert.True(t, u.InitialBalance.Equal(d(1000)))
		publisher.AssertExpectations(t)
	})

	t.Run("Negative Amount Rejected", func(t *testing.T) {
		gateway, store, target := setup(t, nil)

		_, err := gateway.GrantTransaction(ctx, target.Id, models.NewTransaction{Amount: d(-100), Type: models.CREDIT, Status: models.SUCCESS})

		assert.ErrorIs(t, err, session.ErrInvariantViolation)
		u, _ := store.Directory().Get(target.Id)
		assert.Empty(t, u.Transactions)
		assert.True(t, u.Balance.Equal(d(1000)))
	})

	t.Run("Unknown Target", func(t *testing.T) {
		gateway, _, _ := setup(t, nil)

		_, err := gateway.GrantTransaction(ctx, "nobody", models.NewTransaction{Amount: d(1), Type: models.CREDIT})

		assert.ErrorIs(t, err, session.ErrUserNotFound)
	})

	t.Run("Not Admin", func(t *testing.T) {
		gateway, store, target := setup(t, nil)
		require.True(t, store.Login(ctx, "trader@example.com", "Secret#123"))

		_, err := gateway.GrantTransaction(ctx, target.Id, models.NewTransaction{Amount: d(1), Type: models.CREDIT})

		assert.ErrorIs(t, err, admin.ErrNotAdmin)
	})

	t.Run("Publish Failure Keeps Mutation", func(t *testing.T) {
		publisher := new(mocks.Publisher)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("queue unavailable"))
		gateway, store, target := setup(t, publisher)

		_, err := gateway.GrantTransaction(ctx, target.Id, models.NewTransaction{Amount: d(5), Type: models.CREDIT, Status: models.SUCCESS})

		assert.NoError(t, err)
		u, _ := store.Directory().Get(target.Id)
		assert.Len(t, u.Transactions, 1)
	})
}

func TestSetTransactionStatus(t *testing.T) {
	ctx := context.Background()
	gateway, store, target := setup(t, nil)
	tx, err := gateway.GrantTransaction(ctx, target.Id, models.NewTransaction{Amount: d(50), Type: models.CREDIT})
	require.NoError(t, err)

	_, err = gateway.SetTransactionStatus(ctx, target.Id, tx.Id, models.DENIED)
	require.NoError(t, err)

	_, err = gateway.SetTransactionStatus(ctx, target.Id, tx.Id, models.SUCCESS)
	assert.ErrorIs(t, err, session.ErrInvalidTransition)

	u, _ := store.Directory().Get(target.Id)
	assert.Equal(t, models.DENIED, u.Transactions[0].Status)
	assert.True(t, u.Balance.Equal(d(1000)))
}

func TestReviseUserProfile(t *testing.T) {
	ctx := context.Background()
	gateway, store, target := setup(t, nil)
	_, err := gateway.GrantTransaction(ctx, target.Id, models.NewTransaction{Amount: d(10), Type: models.CREDIT, Status: models.SUCCESS})
	require.NoError(t, err)
	last := "Trader"

	updated, err := gateway.ReviseUserProfile(ctx, target.Id, models.UserPatch{LastName: &last})

	require.NoError(t, err)
	assert.Equal(t, "Tra", updated.FirstName)
	assert.Equal(t, "Trader", updated.LastName)
	assert.Len(t, updated.Transactions, 1)
	assert.True(t, updated.InitialBalance.Equal(d(1000)))
	assert.True(t, updated.Balance.Equal(d(1010)))

	adminUser, _ := store.CurrentUser()
	assert.NotEqual(t, "Trader", adminUser.LastName, "the admin's own record is untouched")
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	gateway, _, target := setup(t, nil)

	users, err := gateway.ListUsers(ctx)

	require.NoError(t, err)
	require.Len(t, users, 1, "administrators are not listed")
	assert.Equal(t, target.Id, users[0].Id)

	u, err := gateway.GetUser(ctx, target.Id)
	require.NoError(t, err)
	assert.Equal(t, "trader@example.com", u.Email)
}

func TestAdministratorTargetsRejected(t *testing.T) {
	ctx := context.Background()
	gateway, store, _ := setup(t, nil)
	self := store.Session().UserID

	_, err := gateway.GrantTransaction(ctx, self, models.NewTransaction{Amount: d(500), Type: models.CREDIT, Status: models.SUCCESS})
	assert.ErrorIs(t, err, admin.ErrTargetNotStandard)

	renamed := "Renamed"
	_, err = gateway.ReviseUserProfile(ctx, self, models.UserPatch{LastName: &renamed})
	assert.ErrorIs(t, err, admin.ErrTargetNotStandard)

	_, err = gateway.SetTransactionStatus(ctx, self, "tx-1", models.SUCCESS)
	assert.ErrorIs(t, err, admin.ErrTargetNotStandard)

	u, err := store.Directory().Get(self)
	require.NoError(t, err)
	assert.Empty(t, u.Transactions)
	assert.NotEqual(t, "Renamed", u.LastName)
}
