package session_test

import (
	"context"
	"errors"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/chris/apexfx-session/pkg/models"
	"github.com/chris/apexfx-session/pkg/session"
	"github.com/chris/apexfx-session/pkg/session/mocks"
	"github.com/chris/apexfx-session/pkg/storage/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Well Formed Pair", func(t *testing.T) {
		store := session.New()

		ok := store.Login(ctx, "x@y.com", "short")

		assert.True(t, ok)
		assert.True(t, store.IsAuthenticated())
		assert.False(t, store.IsAdminAuthenticated())
		user, found := store.CurrentUser()
		require.True(t, found)
		assert.Equal(t, "x@y.com", user.Email)
		assert.Equal(t, models.STANDARD, user.Role)
	})

	t.Run("Malformed Input", func(t *testing.T) {
		store := session.New()

		assert.False(t, store.Login(ctx, "not-an-email", "password123"))
		assert.False(t, store.Login(ctx, "x@y.com", ""))
		assert.False(t, store.Login(ctx, "Jane <x@y.com>", "password123"))
		assert.Equal(t, models.ANONYMOUS, store.Mode())
	})

	t.Run("Same Email Resolves Same User", func(t *testing.T) {
		store := session.New()
		require.True(t, store.Login(ctx, "jane.doe@example.com", "password123"))
		first, _ := store.CurrentUser()
		assert.Equal(t, "Jane", first.FirstName)
		assert.Equal(t, "Doe", first.LastName)
		_, err := store.AppendTransaction(models.NewTransaction{Amount: d(10), Type: models.CREDIT, Status: models.SUCCESS})
		require.NoError(t, err)

		store.Logout()
		require.True(t, store.Login(ctx, "jane.doe@example.com", "password123"))
		second, _ := store.CurrentUser()

		assert.Equal(t, first.Id, second.Id)
		assert.Len(t, second.Transactions, 1)
	})

	t.Run("Non-ASCII Local Part", func(t *testing.T) {
		store := session.New()
		require.True(t, store.Login(ctx, "émile.zola@example.com", "password123"))
		user, _ := store.CurrentUser()

		assert.Equal(t, "Émile", user.FirstName)
		assert.Equal(t, "Zola", user.LastName)
		assert.True(t, utf8.ValidString(user.FirstName))
	})

	t.Run("Resolver Error", func(t *testing.T) {
		resolver := new(mocks.IdentityResolver)
		resolver.On("Resolve", mock.Anything, mock.Anything).Return(nil, errors.New("identity provider down"))
		store := session.New(session.WithResolver(resolver))

		assert.False(t, store.Login(ctx, "x@y.com", "password123"))
		assert.Equal(t, models.ANONYMOUS, store.Mode())
		resolver.AssertExpectations(t)
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		store := session.New()
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		assert.False(t, store.Login(cctx, "x@y.com", "password123"))
		assert.Equal(t, models.ANONYMOUS, store.Mode())
	})
}

func TestSessionExclusivity(t *testing.T) {
	ctx := context.Background()
	store := session.New()

	require.True(t, store.AdminLogin(ctx, "admin@apexfx.com", "password123"))
	assert.True(t, store.IsAdminAuthenticated())
	assert.False(t, store.IsAuthenticated())
	admin, _ := store.CurrentUser()
	assert.Equal(t, models.ADMINISTRATOR, admin.Role)

	require.True(t, store.Login(ctx, "admin@apexfx.com", "password123"))
	assert.True(t, store.IsAuthenticated())
	assert.False(t, store.IsAdminAuthenticated())
	user, _ := store.CurrentUser()
	assert.Equal(t, models.STANDARD, user.Role)
	assert.NotEqual(t, admin.Id, user.Id)

	store.Logout()
	assert.False(t, store.IsAuthenticated())
	assert.False(t, store.IsAdminAuthenticated())
	_, found := store.CurrentUser()
	assert.False(t, found)
}

func TestStaleLoginCompletion(t *testing.T) {
	ctx := context.Background()

	blockingResolver := func(email string, started, release chan struct{}) *mocks.IdentityResolver {
		resolver := new(mocks.IdentityResolver)
		resolver.On("Resolve", mock.Anything, mock.MatchedBy(func(c session.Credentials) bool { return c.Email == email })).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(&models.User{Id: "slow", Email: email, Role: models.STANDARD, Balance: decimal.Zero, InitialBalance: decimal.Zero}, nil)
		return resolver
	}

	t.Run("Logout Wins", func(t *testing.T) {
		started, release := make(chan struct{}), make(chan struct{})
		resolver := blockingResolver("slow@example.com", started, release)
		store := session.New(session.WithResolver(resolver))

		result := make(chan bool)
		go func() { result <- store.Login(ctx, "slow@example.com", "password123") }()
		<-started
		store.Logout()
		close(release)

		select {
		case ok := <-result:
			assert.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("login did not complete")
		}
		assert.Equal(t, models.ANONYMOUS, store.Mode())
	})

	t.Run("Newer Login Wins", func(t *testing.T) {
		started, release := make(chan struct{}), make(chan struct{})
		resolver := blockingResolver("slow@example.com", started, release)
		resolver.On("Resolve", mock.Anything, mock.MatchedBy(func(c session.Credentials) bool { return c.Email == "fast@example.com" })).
			Return(&models.User{Id: "fast", Email: "fast@example.com", Role: models.ADMINISTRATOR, Balance: decimal.Zero, InitialBalance: decimal.Zero}, nil)
		store := session.New(session.WithResolver(resolver))

		result := make(chan bool)
		go func() { result <- store.Login(ctx, "slow@example.com", "password123") }()
		<-started
		require.True(t, store.AdminLogin(ctx, "fast@example.com", "password123"))
		close(release)

		select {
		case ok := <-result:
			assert.False(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("login did not complete")
		}
		assert.Equal(t, session.Session{UserID: "fast", Mode: models.ADMIN}, store.Session())
	})

	t.Run("Register Does Not Supersede Login", func(t *testing.T) {
		started, release := make(chan struct{}), make(chan struct{})
		resolver := blockingResolver("slow@example.com", started, release)
		store := session.New(session.WithResolver(resolver))

		result := make(chan bool)
		go func() { result <- store.Login(ctx, "slow@example.com", "password123") }()
		<-started
		require.True(t, store.Register(ctx, models.Profile{Email: "other@example.com", Password: "Secret#123", FirstName: "Other", LastName: "User"}))
		close(release)

		select {
		case ok := <-result:
			assert.True(t, ok)
		case <-time.After(2 * time.Second):
			t.Fatal("login did not complete")
		}
		assert.Equal(t, session.Session{UserID: "slow", Mode: models.USER}, store.Session())
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	profile := models.Profile{Email: "new@example.com", Password: "Secret#123", FirstName: "New", LastName: "User"}

	t.Run("Success", func(t *testing.T) {
		store := session.New(session.WithStartingBalance(d(1000)))

		user, err := store.CreateUser(ctx, profile)

		require.NoError(t, err)
		assert.True(t, user.Balance.Equal(d(1000)))
		assert.True(t, user.InitialBalance.Equal(d(1000)))
		assert.Empty(t, user.Transactions)
		assert.Equal(t, models.ANONYMOUS, store.Mode(), "register does not sign in")

		require.True(t, store.Login(ctx, "new@example.com", "Secret#123"))
		current, _ := store.CurrentUser()
		assert.Equal(t, user.Id, current.Id)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		store := session.New()
		require.True(t, store.Register(ctx, profile))

		assert.False(t, store.Register(ctx, profile))
		_, err := store.CreateUser(ctx, profile)
		assert.ErrorIs(t, err, session.ErrEmailTaken)
	})

	t.Run("Invalid Profile", func(t *testing.T) {
		store := session.New()
		bad := profile
		bad.FirstName = " "

		_, err := store.CreateUser(ctx, bad)

		assert.ErrorIs(t, err, session.ErrInvalidProfile)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	first := "Janet"

	t.Run("No Session Is No-op", func(t *testing.T) {
		store := session.New()

		_, err := store.UpdateUser(models.UserPatch{FirstName: &first})

		assert.ErrorIs(t, err, session.ErrNoSession)
		assert.Empty(t, store.Directory().List())
	})

	t.Run("Shallow Merge", func(t *testing.T) {
		store := session.New()
		require.True(t, store.Login(ctx, "jane.doe@example.com", "password123"))
		avatar := "data:image/png;base64,AAA"

		_, err := store.UpdateUser(models.UserPatch{Avatar: &avatar})
		require.NoError(t, err)
		updated, err := store.UpdateUser(models.UserPatch{FirstName: &first})
		require.NoError(t, err)

		assert.Equal(t, "Janet", updated.FirstName)
		assert.Equal(t, "Doe", updated.LastName)
		require.NotNil(t, updated.Avatar)
		assert.Equal(t, avatar, *updated.Avatar)
	})
}

func TestAppendTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Append Only", func(t *testing.T) {
		store := session.New()
		require.True(t, store.Login(ctx, "x@y.com", "password123"))

		first, err := store.AppendTransaction(models.NewTransaction{Amount: d(50), Type: models.CREDIT, Description: "Deposit"})
		require.NoError(t, err)
		before := store.Transactions()

		second, err := store.AppendTransaction(models.NewTransaction{Amount: d(20), Type: models.DEBIT, Description: "Withdrawal"})
		require.NoError(t, err)
		after := store.Transactions()

		require.Len(t, after, 2)
		assert.Equal(t, before[0], after[0])
		assert.Equal(t, second.Id, after[1].Id)
		assert.NotEqual(t, first.Id, second.Id)
		assert.Equal(t, models.PENDING, second.Status)
	})

	t.Run("Scenario Credit Moves Balance", func(t *testing.T) {
		store := session.New(session.WithStartingBalance(d(1000)))
		require.True(t, store.Login(ctx, "x@y.com", "password123"))

		_, err := store.AppendTransaction(models.NewTransaction{Amount: d(250), Type: models.CREDIT, Status: models.SUCCESS})
		require.NoError(t, err)

		assert.True(t, store.Balance().Equal(d(1250)))
		pnl := store.PnL()
		assert.True(t, pnl.Amount.Equal(d(250)))
		assert.True(t, pnl.Percentage.Equal(d(25)))
		assert.True(t, store.Totals().TotalCredits.Equal(d(250)))
	})

	t.Run("Negative Amount Rejected", func(t *testing.T) {
		store := session.New()
		require.True(t, store.Login(ctx, "x@y.com", "password123"))

		_, err := store.AppendTransaction(models.NewTransaction{Amount: d(-5), Type: models.CREDIT})

		assert.ErrorIs(t, err, session.ErrInvariantViolation)
		assert.Empty(t, store.Transactions())
	})

	t.Run("Unknown Type Rejected", func(t *testing.T) {
		store := session.New()
		require.True(t, store.Login(ctx, "x@y.com", "password123"))

		_, err := store.AppendTransaction(models.NewTransaction{Amount: d(5), Type: "refund"})

		assert.ErrorIs(t, err, session.ErrInvariantViolation)
	})

	t.Run("No Session", func(t *testing.T) {
		store := session.New()

		_, err := store.AppendTransaction(models.NewTransaction{Amount: d(5), Type: models.CREDIT})

		assert.ErrorIs(t, err, session.ErrNoSession)
	})
}

func TestSetTransactionStatus(t *testing.T) {
	ctx := context.Background()
	store := session.New(session.WithStartingBalance(d(500)))
	require.True(t, store.Login(ctx, "x@y.com", "password123"))

	deposit, err := store.AppendTransaction(models.NewTransaction{Amount: d(100), Type: models.CREDIT})
	require.NoError(t, err)
	withdrawal, err := store.AppendTransaction(models.NewTransaction{Amount: d(40), Type: models.DEBIT})
	require.NoError(t, err)
	assert.True(t, store.Balance().Equal(d(500)), "pending entries do not move the balance")

	require.NoError(t, store.SetTransactionStatus(deposit.Id, models.SUCCESS))
	assert.True(t, store.Balance().Equal(d(600)))

	require.NoError(t, store.SetTransactionStatus(withdrawal.Id, models.DENIED))
	assert.True(t, store.Balance().Equal(d(600)))

	assert.ErrorIs(t, store.SetTransactionStatus(deposit.Id, models.PENDING), session.ErrInvalidTransition)
	assert.ErrorIs(t, store.SetTransactionStatus(withdrawal.Id, models.SUCCESS), session.ErrInvalidTransition)
	assert.ErrorIs(t, store.SetTransactionStatus("missing", models.SUCCESS), session.ErrTransactionNotFound)
	assert.True(t, store.Balance().Equal(d(600)))
}

func TestRedirectAfterLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Read Once Per Login", func(t *testing.T) {
		store := session.New(session.WithRedirectStore(memory.NewRedirectStore(0)))
		require.NoError(t, store.RememberRedirect(ctx, "/transactions"))

		_, ok := store.TakeRedirect(ctx)
		assert.False(t, ok, "no login yet")

		require.True(t, store.Login(ctx, "x@y.com", "password123"))
		target, ok := store.TakeRedirect(ctx)
		assert.True(t, ok)
		assert.Equal(t, "/transactions", target)

		_, ok = store.TakeRedirect(ctx)
		assert.False(t, ok)
	})

	t.Run("Not For Admin Login", func(t *testing.T) {
		store := session.New(session.WithRedirectStore(memory.NewRedirectStore(0)))
		require.NoError(t, store.RememberRedirect(ctx, "/deposit"))

		require.True(t, store.AdminLogin(ctx, "admin@apexfx.com", "password123"))
		_, ok := store.TakeRedirect(ctx)

		assert.False(t, ok)
	})

	t.Run("No Store Configured", func(t *testing.T) {
		store := session.New()

		assert.Error(t, store.RememberRedirect(ctx, "/deposit"))
	})
}
