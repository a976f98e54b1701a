package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType defines the balance effect of a transaction.
type TransactionType string

const (
	CREDIT TransactionType = "credit"
	DEBIT  TransactionType = "debit"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == CREDIT || t == DEBIT
}

// TransactionStatus defines the possible states of a transaction.
type TransactionStatus string

const (
	PENDING TransactionStatus = "pending"
	SUCCESS TransactionStatus = "success"
	DENIED  TransactionStatus = "denied"
)

// Valid reports whether s is a known transaction status.
func (s TransactionStatus) Valid() bool {
	return s == PENDING || s == SUCCESS || s == DENIED
}

// CanTransitionTo reports whether a transaction in status s may move to next.
// Only pending transactions can be resolved, and only to success or denied.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	return s == PENDING && (next == SUCCESS || next == DENIED)
}

// Role is fixed when a user is created.
type Role string

const (
	STANDARD      Role = "standard"
	ADMINISTRATOR Role = "administrator"
)

// Mode is the tagged session mode. Exactly one value is active at a time.
type Mode string

const (
	ANONYMOUS Mode = "anonymous"
	USER      Mode = "user"
	ADMIN     Mode = "admin"
)

// Transaction is a single entry of a user's ledger. Status is the only field
// that changes after creation.
type Transaction struct {
	Id          string            `json:"id"`
	Amount      decimal.Decimal   `json:"amount"`
	Type        TransactionType   `json:"type"`
	Status      TransactionStatus `json:"status"`
	Description string            `json:"description"`
	Timestamp   time.Time         `json:"timestamp"`
}

// NewTransaction carries the caller-supplied fields of a transaction that is
// about to be appended. Id and Timestamp are assigned by the store.
type NewTransaction struct {
	Amount      decimal.Decimal
	Type        TransactionType
	Status      TransactionStatus
	Description string
}

// User is the authenticated identity together with its ledger.
type User struct {
	Id             string          `json:"id"`
	Email          string          `json:"email"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	Avatar         *string         `json:"avatar,omitempty"`
	Balance        decimal.Decimal `json:"balance"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Transactions   []Transaction   `json:"transactions"`
	Role           Role            `json:"role"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Clone returns a copy of u that shares no mutable state with it.
func (u *User) Clone() *User {
	c := *u
	if u.Avatar != nil {
		avatar := *u.Avatar
		c.Avatar = &avatar
	}
	c.Transactions = make([]Transaction, len(u.Transactions))
	copy(c.Transactions, u.Transactions)
	return &c
}

// FindTransaction returns the index of the transaction with the given id, or -1.
func (u *User) FindTransaction(txID string) int {
	for i := range u.Transactions {
		if u.Transactions[i].Id == txID {
			return i
		}
	}
	return -1
}

// Profile is the registration input.
type Profile struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserPatch lists the profile fields a caller may change. A nil field is left
// untouched. ClearAvatar removes the avatar and wins over Avatar.
type UserPatch struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Avatar      *string
	ClearAvatar bool
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Avatar == nil && !p.ClearAvatar
}

// Apply returns a copy of u with the patch merged in, field by field.
func (p UserPatch) Apply(u *User) *User {
	merged := u.Clone()
	if p.FirstName != nil {
		merged.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		merged.LastName = *p.LastName
	}
	if p.Email != nil {
		merged.Email = *p.Email
	}
	if p.ClearAvatar {
		merged.Avatar = nil
	} else if p.Avatar != nil {
		avatar := *p.Avatar
		merged.Avatar = &avatar
	}
	return merged
}

// RedirectTarget is the stored "redirect after login" value for a session.
type RedirectTarget struct {
	SessionID string    `dynamodbav:"session_id"`
	Target    string    `dynamodbav:"target"`
	CreatedAt time.Time `dynamodbav:"created_at"`
	TTL       int64     `dynamodbav:"ttl,omitempty"`
}
