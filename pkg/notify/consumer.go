package notify

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

// DecodeRecord decodes the body of one SQS record into an Envelope.
func DecodeRecord(record events.SQSMessage) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal([]byte(record.Body), &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message %s: %w", record.MessageId, err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("message %s has no type", record.MessageId)
	}
	return &env, nil
}

// DecodeBalanceUpdate decodes the payload of a balanceUpdate envelope.
func DecodeBalanceUpdate(env *Envelope) (*BalanceUpdatePayload, error) {
	if env.Type != MessageTypeBalanceUpdate {
		return nil, fmt.Errorf("unexpected message type %q", env.Type)
	}
	var payload BalanceUpdatePayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal balance update: %w", err)
	}
	return &payload, nil
}

// DecodeTransactionStatus decodes the payload of a transactionStatus envelope.
func DecodeTransactionStatus(env *Envelope) (*TransactionStatusPayload, error) {
	if env.Type != MessageTypeTransactionStatus {
		return nil, fmt.Errorf("unexpected message type %q", env.Type)
	}
	var payload TransactionStatusPayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction status: %w", err)
	}
	return &payload, nil
}
