package dynamodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/apexfx-session/pkg/models"
	"github.com/chris/apexfx-session/pkg/storage"
)

// SetRedirect writes the redirect target for a session, replacing any previous one.
func (s *Store) SetRedirect(ctx context.Context, sessionID, target string) error {
	now := s.now()
	rec := models.RedirectTarget{
		SessionID: sessionID,
		Target:    target,
		CreatedAt: now,
	}
	if s.TTL > 0 {
		rec.TTL = now.Add(s.TTL).Unix()
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal redirect target: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.RedirectsTableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put redirect target in DynamoDB: %w", err)
	}

	return nil
}

// TakeRedirect deletes the session's redirect item and returns what it held.
// ReturnValues ALL_OLD makes the read and the delete a single operation, so
// concurrent callers can never both observe the same target.
func (s *Store) TakeRedirect(ctx context.Context, sessionID string) (string, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"session_id": sessionID})
	if err != nil {
		return "", fmt.Errorf("failed to marshal redirect session ID: %w", err)
	}

	result, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(s.RedirectsTableName),
		Key:          key,
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return "", fmt.Errorf("failed to delete redirect target from DynamoDB: %w", err)
	}

	if len(result.Attributes) == 0 {
		return "", storage.ErrRedirectNotFound
	}

	var rec models.RedirectTarget
	if err := attributevalue.UnmarshalMap(result.Attributes, &rec); err != nil {
		return "", fmt.Errorf("failed to unmarshal redirect target: %w", err)
	}

	// TTL deletion is lazy, so an expired item may still be returned.
	if rec.TTL > 0 && s.now().Unix() > rec.TTL {
		slog.Debug("discarding expired redirect target", "session_id", sessionID)
		return "", storage.ErrRedirectNotFound
	}

	return rec.Target, nil
}
