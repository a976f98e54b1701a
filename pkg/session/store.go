// Package session holds the process-wide session: who is signed in, in which
// mode, and the ledger operations available to them.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/chris/apexfx-session/pkg/ledger"
	"github.com/chris/apexfx-session/pkg/models"
	"github.com/chris/apexfx-session/pkg/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session is the current identity and mode. UserID is empty when Mode is anonymous.
type Session struct {
	UserID string
	Mode   models.Mode
}

var anonymous = Session{Mode: models.ANONYMOUS}

// Store owns the Session and the Directory of users it can act on.
//
// Login and AdminLogin take a ticket from a counter when they start; Logout
// also advances it. A completion is applied only if its ticket is still the
// latest, so an abandoned call can never overwrite a newer session. Register
// never touches the session, so it draws from its own counter and only a newer
// Register supersedes it.
type Store struct {
	mu              sync.Mutex
	id              string
	session         Session
	attempt         uint64
	registerAttempt uint64
	redirectPending bool

	dir             *Directory
	resolver        IdentityResolver
	redirects       storage.RedirectStore
	startingBalance decimal.Decimal
}

// Option configures a Store.
type Option func(*Store)

// WithResolver replaces the default DirectoryResolver.
func WithResolver(r IdentityResolver) Option {
	return func(s *Store) { s.resolver = r }
}

// WithRedirectStore sets where redirect-after-login targets are kept.
func WithRedirectStore(r storage.RedirectStore) Option {
	return func(s *Store) { s.redirects = r }
}

// WithStartingBalance sets the balance given to newly created users.
func WithStartingBalance(b decimal.Decimal) Option {
	return func(s *Store) { s.startingBalance = b }
}

// WithDirectory shares an existing Directory.
func WithDirectory(d *Directory) Option {
	return func(s *Store) { s.dir = d }
}

// New creates a Store in the anonymous state.
func New(opts ...Option) *Store {
	s := &Store{
		id:              uuid.New().String(),
		session:         anonymous,
		startingBalance: decimal.Zero,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dir == nil {
		s.dir = NewDirectory()
	}
	if s.resolver == nil {
		s.resolver = &DirectoryResolver{Directory: s.dir, StartingBalance: s.startingBalance}
	}
	return s
}

// ID identifies this session instance, e.g. as the key for redirect targets.
func (s *Store) ID() string { return s.id }

// Directory exposes the user registry for admin-scoped operations.
func (s *Store) Directory() *Directory { return s.dir }

func (s *Store) nextTicket() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt++
	return s.attempt
}

func (s *Store) nextRegisterTicket() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registerAttempt++
	return s.registerAttempt
}

// Login signs in an ordinary user. It returns false for a malformed pair, a
// resolver failure, a cancelled context, or when a newer session operation
// started in the meantime.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	return s.authenticate(ctx, email, password, models.USER)
}

// AdminLogin signs in an administrator. Activating admin mode clears user mode.
func (s *Store) AdminLogin(ctx context.Context, email, password string) bool {
	return s.authenticate(ctx, email, password, models.ADMIN)
}

func (s *Store) authenticate(ctx context.Context, email, password string, mode models.Mode) bool {
	ticket := s.nextTicket()
	email = strings.TrimSpace(email)

	if !wellFormedCredentials(email, password) {
		slog.Debug("rejecting malformed credentials", "mode", mode)
		return false
	}

	role := models.STANDARD
	if mode == models.ADMIN {
		role = models.ADMINISTRATOR
	}

	user, err := s.resolver.Resolve(ctx, Credentials{Email: email, Password: password, Role: role})
	if err != nil {
		slog.Error("failed to resolve identity", "mode", mode, "error", err)
		return false
	}
	if user.Role != role {
		slog.Error("resolved identity has wrong role", "mode", mode, "role", user.Role)
		return false
	}
	if ctx.Err() != nil {
		slog.Info("login abandoned before completion", "mode", mode)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.attempt {
		slog.Info("discarding stale login completion", "mode", mode, "ticket", ticket, "latest", s.attempt)
		return false
	}

	stored, err := s.dir.Ensure(user)
	if err != nil {
		slog.Error("failed to store resolved identity", "mode", mode, "error", err)
		return false
	}

	s.session = Session{UserID: stored.Id, Mode: mode}
	s.redirectPending = mode == models.USER
	slog.Info("session started", "mode", mode, "user_id", stored.Id)
	return true
}

// Register creates a standard user. It does not change the session mode.
func (s *Store) Register(ctx context.Context, profile models.Profile) bool {
	if _, err := s.CreateUser(ctx, profile); err != nil {
		slog.Info("registration failed", "error", err)
		return false
	}
	return true
}

// CreateUser is Register returning the created user or the reason it failed.
func (s *Store) CreateUser(ctx context.Context, profile models.Profile) (*models.User, error) {
	ticket := s.nextRegisterTicket()

	profile.Email = strings.TrimSpace(profile.Email)
	if !wellFormedEmail(profile.Email) {
		return nil, fmt.Errorf("%w: malformed email", ErrInvalidProfile)
	}
	if profile.Password == "" || strings.TrimSpace(profile.FirstName) == "" || strings.TrimSpace(profile.LastName) == "" {
		return nil, fmt.Errorf("%w: password, first name and last name are required", ErrInvalidProfile)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.registerAttempt {
		return nil, errors.New("registration superseded by a newer registration")
	}

	user := s.dir.newUser(profile.Email, strings.TrimSpace(profile.FirstName), strings.TrimSpace(profile.LastName), models.STANDARD, s.startingBalance)
	if err := s.dir.Add(user); err != nil {
		return nil, err
	}
	slog.Info("user registered", "user_id", user.Id)
	return user.Clone(), nil
}

// Logout resets the session to anonymous and invalidates in-flight logins.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempt++
	if s.session.Mode != models.ANONYMOUS {
		slog.Info("session ended", "mode", s.session.Mode, "user_id", s.session.UserID)
	}
	s.session = anonymous
	s.redirectPending = false
}

// Session returns the current session value.
func (s *Store) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Mode returns the current session mode.
func (s *Store) Mode() models.Mode {
	return s.Session().Mode
}

// IsAuthenticated reports whether an ordinary user is signed in.
func (s *Store) IsAuthenticated() bool {
	return s.Mode() == models.USER
}

// IsAdminAuthenticated reports whether an administrator is signed in.
func (s *Store) IsAdminAuthenticated() bool {
	return s.Mode() == models.ADMIN
}

// CurrentUser returns a copy of the signed-in user.
func (s *Store) CurrentUser() (*models.User, bool) {
	sess := s.Session()
	if sess.UserID == "" {
		return nil, false
	}
	u, err := s.dir.Get(sess.UserID)
	if err != nil {
		return nil, false
	}
	return u, true
}

// Transactions returns the current user's log in insertion order.
func (s *Store) Transactions() []models.Transaction {
	u, ok := s.CurrentUser()
	if !ok {
		return nil
	}
	return u.Transactions
}

// Balance returns the current user's balance, zero when signed out.
func (s *Store) Balance() decimal.Decimal {
	u, ok := s.CurrentUser()
	if !ok {
		return decimal.Zero
	}
	return u.Balance
}

// Totals summarises the current user's log.
func (s *Store) Totals() ledger.Totals {
	return ledger.ComputeTotals(s.Transactions())
}

// PnL returns the current user's profit and loss.
func (s *Store) PnL() ledger.PnL {
	u, ok := s.CurrentUser()
	if !ok {
		return ledger.ComputePnL(decimal.Zero, decimal.Zero)
	}
	return ledger.ComputePnL(u.Balance, u.InitialBalance)
}

// withCurrentUser runs fn with the current user id while holding the session
// lock, so a concurrent Logout cannot retarget the mutation halfway.
func (s *Store) withCurrentUser(fn func(userID string) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.UserID == "" {
		return ErrNoSession
	}
	return fn(s.session.UserID)
}

// UpdateUser merges patch into the current user. Without a current user it
// changes nothing and returns ErrNoSession.
func (s *Store) UpdateUser(patch models.UserPatch) (*models.User, error) {
	var updated *models.User
	err := s.withCurrentUser(func(userID string) error {
		var err error
		updated, err = s.dir.Revise(userID, patch)
		return err
	})
	return updated, err
}

// AppendTransaction appends newTx to the current user's log.
func (s *Store) AppendTransaction(newTx models.NewTransaction) (models.Transaction, error) {
	var tx models.Transaction
	err := s.withCurrentUser(func(userID string) error {
		var err error
		tx, _, err = s.dir.AppendTransaction(userID, newTx)
		return err
	})
	return tx, err
}

// SetTransactionStatus resolves a pending transaction of the current user.
func (s *Store) SetTransactionStatus(txID string, status models.TransactionStatus) error {
	return s.withCurrentUser(func(userID string) error {
		_, _, err := s.dir.SetTransactionStatus(userID, txID, status)
		return err
	})
}

// RememberRedirect stores where the next successful login should land.
func (s *Store) RememberRedirect(ctx context.Context, target string) error {
	if s.redirects == nil {
		return errors.New("no redirect store configured")
	}
	return s.redirects.SetRedirect(ctx, s.id, target)
}

// TakeRedirect returns the stored redirect target after a successful Login and
// clears it. It yields a target at most once per login.
func (s *Store) TakeRedirect(ctx context.Context) (string, bool) {
	s.mu.Lock()
	pending := s.redirectPending && s.session.Mode == models.USER
	s.redirectPending = false
	s.mu.Unlock()

	if !pending || s.redirects == nil {
		return "", false
	}

	target, err := s.redirects.TakeRedirect(ctx, s.id)
	if err != nil {
		if !errors.Is(err, storage.ErrRedirectNotFound) {
			slog.Error("failed to read redirect target", "error", err)
		}
		return "", false
	}
	return target, true
}
