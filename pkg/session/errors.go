package session

import "errors"

// ErrNoSession is returned when an operation needs a current user and there is none.
var ErrNoSession = errors.New("no authenticated user in session")

// ErrInvariantViolation is returned when a mutation would break a ledger rule.
// The ledger is left unchanged.
var ErrInvariantViolation = errors.New("ledger invariant violation")

// ErrInvalidTransition is returned when a transaction status change is not allowed.
var ErrInvalidTransition = errors.New("transaction status transition not allowed")

// ErrUserNotFound is returned when the target user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrTransactionNotFound is returned when the target transaction does not exist.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrEmailTaken is returned when an email is already used by another user of the same role.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidProfile is returned when registration or profile input is malformed.
var ErrInvalidProfile = errors.New("invalid profile")
