package notify

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
)

// Auditor writes an audit log line for every change notification it receives.
type Auditor struct {
	Logger *slog.Logger
}

// NewAuditor creates a new Auditor.
func NewAuditor(logger *slog.Logger) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{Logger: logger}
}

// HandleSQSEvent audits a batch. Records that cannot be decoded are reported
// as batch item failures so only they are retried.
func (a *Auditor) HandleSQSEvent(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, record := range event.Records {
		if err := a.audit(ctx, record); err != nil {
			a.Logger.Error("failed to audit message", "message_id", record.MessageId, "error", err)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
	}
	return resp, nil
}

func (a *Auditor) audit(ctx context.Context, record events.SQSMessage) error {
	env, err := DecodeRecord(record)
	if err != nil {
		return err
	}

	switch env.Type {
	case MessageTypeBalanceUpdate:
		p, err := DecodeBalanceUpdate(env)
		if err != nil {
			return err
		}
		a.Logger.InfoContext(ctx, "balance updated",
			"user_id", p.UserID,
			"transaction_id", p.TransactionID,
			"change", p.Change.String(),
			"new_balance", p.NewBalance.String(),
			"actor_id", p.ActorID,
		)
	case MessageTypeTransactionStatus:
		p, err := DecodeTransactionStatus(env)
		if err != nil {
			return err
		}
		a.Logger.InfoContext(ctx, "transaction status changed",
			"user_id", p.UserID,
			"transaction_id", p.TransactionID,
			"from", p.From,
			"to", p.To,
			"actor_id", p.ActorID,
		)
	default:
		a.Logger.InfoContext(ctx, "change notification", "type", env.Type, "payload", string(env.Payload))
	}
	return nil
}
