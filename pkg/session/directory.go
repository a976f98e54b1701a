package session

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chris/apexfx-session/pkg/ledger"
	"github.com/chris/apexfx-session/pkg/models"
	"github.com/google/uuid"
)

// Directory is the in-memory registry of users known to this process. Every
// mutation runs on a private copy of the user and is committed only if it
// succeeds, so a failed operation never leaves a half-applied change.
type Directory struct {
	mu    sync.RWMutex
	users map[string]*models.User
	now   func() time.Time
	newID func() string
}

// NewDirectory creates an empty Directory.
func NewDirectory() *Directory {
	return &Directory{
		users: make(map[string]*models.User),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Get returns a copy of the user with the given id.
func (d *Directory) Get(userID string) (*models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return u.Clone(), nil
}

// FindByEmail returns a copy of the user with the given email and role.
func (d *Directory) FindByEmail(email string, role models.Role) (*models.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if u := d.findByEmail(email, role); u != nil {
		return u.Clone(), true
	}
	return nil, false
}

func (d *Directory) findByEmail(email string, role models.Role) *models.User {
	for _, u := range d.users {
		if u.Role == role && strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

// List returns copies of all users, oldest first.
func (d *Directory) List() []models.User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	users := make([]models.User, 0, len(d.users))
	for _, u := range d.users {
		users = append(users, *u.Clone())
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].Id < users[j].Id
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users
}

// Add stores a new user. The email must be unused among users of the same role.
func (d *Directory) Add(u *models.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.users[u.Id]; exists {
		return fmt.Errorf("user with ID %s already exists", u.Id)
	}
	if err := ledger.VerifyBalance(u); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	if d.findByEmail(u.Email, u.Role) != nil {
		return fmt.Errorf("%w: %s", ErrEmailTaken, u.Email)
	}
	d.users[u.Id] = u.Clone()
	return nil
}

// Ensure adds u unless a user with the same id is already present, and returns
// the stored copy. An existing record always wins so its ledger is preserved.
func (d *Directory) Ensure(u *models.User) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.users[u.Id]; ok {
		return existing.Clone(), nil
	}
	if err := ledger.VerifyBalance(u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	if d.findByEmail(u.Email, u.Role) != nil {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, u.Email)
	}
	d.users[u.Id] = u.Clone()
	return u.Clone(), nil
}

// update runs fn against a copy of the user and commits the copy only if fn
// succeeds and the result keeps the ledger append-only with an unchanged
// initial balance.
func (d *Directory) update(userID string, fn func(u *models.User) error) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	current, ok := d.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	if err := checkLedgerContract(current, working); err != nil {
		return nil, err
	}

	d.users[userID] = working
	return working.Clone(), nil
}

// checkLedgerContract verifies that after is a legal successor of before.
func checkLedgerContract(before, after *models.User) error {
	if !before.InitialBalance.Equal(after.InitialBalance) {
		return fmt.Errorf("%w: initial balance of user %s is immutable", ErrInvariantViolation, before.Id)
	}
	if before.Role != after.Role || before.Id != after.Id {
		return fmt.Errorf("%w: identity of user %s is immutable", ErrInvariantViolation, before.Id)
	}
	if len(after.Transactions) < len(before.Transactions) {
		return fmt.Errorf("%w: transactions of user %s cannot be removed", ErrInvariantViolation, before.Id)
	}
	for i, prev := range before.Transactions {
		next := after.Transactions[i]
		if next.Status != prev.Status && !prev.Status.CanTransitionTo(next.Status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, prev.Status, next.Status)
		}
		next.Status = prev.Status
		if next.Id != prev.Id || !next.Amount.Equal(prev.Amount) || next.Type != prev.Type ||
			next.Description != prev.Description || !next.Timestamp.Equal(prev.Timestamp) {
			return fmt.Errorf("%w: transaction %s of user %s was rewritten", ErrInvariantViolation, prev.Id, before.Id)
		}
	}
	if err := ledger.VerifyBalance(after); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariantViolation, err)
	}
	return nil
}

// validateNewTransaction rejects input that cannot be appended.
func validateNewTransaction(newTx models.NewTransaction) (models.TransactionStatus, error) {
	if newTx.Amount.IsNegative() {
		return "", fmt.Errorf("%w: amount %s is negative, use the transaction type for direction", ErrInvariantViolation, newTx.Amount)
	}
	if !newTx.Type.Valid() {
		return "", fmt.Errorf("%w: unknown transaction type %q", ErrInvariantViolation, newTx.Type)
	}
	status := newTx.Status
	if status == "" {
		status = models.PENDING
	}
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown transaction status %q", ErrInvariantViolation, newTx.Status)
	}
	return status, nil
}

// AppendTransaction appends a new transaction at the end of the user's log.
// A successful transaction moves the balance in the same step.
func (d *Directory) AppendTransaction(userID string, newTx models.NewTransaction) (models.Transaction, *models.User, error) {
	status, err := validateNewTransaction(newTx)
	if err != nil {
		return models.Transaction{}, nil, err
	}

	tx := models.Transaction{
		Id:          d.newID(),
		Amount:      newTx.Amount,
		Type:        newTx.Type,
		Status:      status,
		Description: newTx.Description,
		Timestamp:   d.now(),
	}

	updated, err := d.update(userID, func(u *models.User) error {
		u.Transactions = append(u.Transactions, tx)
		u.Balance = u.Balance.Add(ledger.SignedEffect(tx))
		return nil
	})
	if err != nil {
		return models.Transaction{}, nil, err
	}
	return tx, updated, nil
}

// SetTransactionStatus resolves a pending transaction. The balance moves when
// the transaction becomes successful, never earlier. It returns the previous status.
func (d *Directory) SetTransactionStatus(userID, txID string, status models.TransactionStatus) (models.TransactionStatus, *models.User, error) {
	var previous models.TransactionStatus
	updated, err := d.update(userID, func(u *models.User) error {
		i := u.FindTransaction(txID)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrTransactionNotFound, txID)
		}
		previous = u.Transactions[i].Status
		if !previous.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, previous, status)
		}
		u.Transactions[i].Status = status
		u.Balance = u.Balance.Add(ledger.SignedEffect(u.Transactions[i]))
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return previous, updated, nil
}

// Revise merges patch into the user's profile.
func (d *Directory) Revise(userID string, patch models.UserPatch) (*models.User, error) {
	if patch.Email != nil && !wellFormedEmail(*patch.Email) {
		return nil, fmt.Errorf("%w: malformed email", ErrInvalidProfile)
	}
	return d.update(userID, func(u *models.User) error {
		merged := patch.Apply(u)
		if patch.Email != nil {
			if other := d.findByEmail(*patch.Email, u.Role); other != nil && other.Id != u.Id {
				return fmt.Errorf("%w: %s", ErrEmailTaken, *patch.Email)
			}
		}
		*u = *merged
		return nil
	})
}
