package notify

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// MessageType defines the type of a change notification.
type MessageType string

const (
	// MessageTypeBalanceUpdate is sent when a ledger mutation moves a balance.
	MessageTypeBalanceUpdate MessageType = "balanceUpdate"
	// MessageTypeTransactionStatus is sent when a pending transaction is resolved.
	MessageTypeTransactionStatus MessageType = "transactionStatus"
	// MessageTypeProfileUpdate is sent when an administrator revises a profile.
	MessageTypeProfileUpdate MessageType = "profileUpdate"
)

// Message represents a generic notification.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// Envelope is a Message whose payload has not been decoded yet.
type Envelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// BalanceUpdatePayload is the payload for a balanceUpdate message.
type BalanceUpdatePayload struct {
	UserID        string          `json:"user_id"`
	TransactionID string          `json:"transaction_id"`
	Change        decimal.Decimal `json:"change"`
	NewBalance    decimal.Decimal `json:"new_balance"`
	ActorID       string          `json:"actor_id,omitempty"`
}

// TransactionStatusPayload is the payload for a transactionStatus message.
type TransactionStatusPayload struct {
	UserID        string `json:"user_id"`
	TransactionID string `json:"transaction_id"`
	From          string `json:"from"`
	To            string `json:"to"`
	ActorID       string `json:"actor_id,omitempty"`
}

// ProfileUpdatePayload is the payload for a profileUpdate message.
type ProfileUpdatePayload struct {
	UserID  string `json:"user_id"`
	ActorID string `json:"actor_id,omitempty"`
}
