// Package api holds the HTTP request and response types and the chi server
// interface the handlers implement.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Defines values for SessionMode.
const (
	SessionModeAnonymous SessionMode = "anonymous"
	SessionModeUser      SessionMode = "user"
	SessionModeAdmin     SessionMode = "admin"
)

// Defines values for TransactionType.
const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

// Defines values for TransactionStatus.
const (
	Pending TransactionStatus = "pending"
	Success TransactionStatus = "success"
	Denied  TransactionStatus = "denied"
)

// SessionMode defines model for SessionMode.
type SessionMode string

// TransactionType defines model for TransactionType.
type TransactionType string

// TransactionStatus defines model for TransactionStatus.
type TransactionStatus string

// LoginRequest defines model for LoginRequest.
type LoginRequest struct {
	Email    openapi_types.Email `json:"email"`
	Password string              `json:"password"`
}

// RegisterRequest defines model for RegisterRequest.
type RegisterRequest struct {
	Email           openapi_types.Email `json:"email"`
	Password        string              `json:"password"`
	ConfirmPassword string              `json:"confirm_password"`
	FirstName       string              `json:"first_name"`
	LastName        string              `json:"last_name"`
}

// User defines model for User.
type User struct {
	Id             string              `json:"id"`
	Email          openapi_types.Email `json:"email"`
	FirstName      string              `json:"first_name"`
	LastName       string              `json:"last_name"`
	Avatar         *string             `json:"avatar,omitempty"`
	Balance        decimal.Decimal     `json:"balance"`
	InitialBalance decimal.Decimal     `json:"initial_balance"`
	Role           string              `json:"role"`
	CreatedAt      time.Time           `json:"created_at"`
}

// UserPatch defines model for UserPatch. Balance and transactions are not
// patchable.
type UserPatch struct {
	FirstName   *string              `json:"first_name,omitempty"`
	LastName    *string              `json:"last_name,omitempty"`
	Email       *openapi_types.Email `json:"email,omitempty"`
	Avatar      *string              `json:"avatar,omitempty"`
	ClearAvatar *bool                `json:"clear_avatar,omitempty"`
}

// Session defines model for Session.
type Session struct {
	Mode     SessionMode `json:"mode"`
	User     *User       `json:"user,omitempty"`
	Redirect *string     `json:"redirect,omitempty"`
}

// Transaction defines model for Transaction.
type Transaction struct {
	Id          string            `json:"id"`
	Amount      decimal.Decimal   `json:"amount"`
	Type        TransactionType   `json:"type"`
	Status      TransactionStatus `json:"status"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Timestamp   time.Time         `json:"timestamp"`
}

// NewTransaction defines model for NewTransaction. Status defaults to pending.
type NewTransaction struct {
	Amount      decimal.Decimal    `json:"amount"`
	Type        TransactionType    `json:"type"`
	Status      *TransactionStatus `json:"status,omitempty"`
	Description string             `json:"description"`
}

// StatusUpdate defines model for StatusUpdate.
type StatusUpdate struct {
	Status TransactionStatus `json:"status"`
}

// TransactionPage defines model for TransactionPage.
type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
	Page         int           `json:"page"`
	TotalPages   int           `json:"total_pages"`
}

// Summary defines model for Summary.
type Summary struct {
	Balance        decimal.Decimal `json:"balance"`
	BalanceDisplay string          `json:"balance_display"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	TotalCredits   decimal.Decimal `json:"total_credits"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
	PendingCount   int             `json:"pending_count"`
	PnL            decimal.Decimal `json:"pnl"`
	PnLPercentage  decimal.Decimal `json:"pnl_percentage"`
}

// Receipt defines model for Receipt.
type Receipt struct {
	TransactionId string `json:"transaction_id"`
	Label         string `json:"label"`
	Amount        string `json:"amount"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Balance       string `json:"balance"`
}

// RedirectTarget defines model for RedirectTarget.
type RedirectTarget struct {
	Target string `json:"target"`
}

// AccessDecision defines model for AccessDecision.
type AccessDecision struct {
	Action string            `json:"action"`
	View   string            `json:"view,omitempty"`
	Target string            `json:"target,omitempty"`
	Params map[string]string `json:"params,omitempty"`
}

// ListTransactionsParams defines parameters for ListTransactions.
type ListTransactionsParams struct {
	Status  *TransactionStatus `form:"status,omitempty" json:"status,omitempty"`
	Type    *TransactionType   `form:"type,omitempty" json:"type,omitempty"`
	Search  *string            `form:"search,omitempty" json:"search,omitempty"`
	Page    *int               `form:"page,omitempty" json:"page,omitempty"`
	PerPage *int               `form:"per_page,omitempty" json:"per_page,omitempty"`
}

// ResolveAccessParams defines parameters for ResolveAccess.
type ResolveAccessParams struct {
	Path string `form:"path" json:"path"`
}

// UserDetail defines model for UserDetail.
type UserDetail struct {
	User
	Transactions []Transaction `json:"transactions"`
}
