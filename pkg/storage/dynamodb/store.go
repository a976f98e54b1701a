package dynamodb

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/apexfx-session/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the Store.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Store implements storage.RedirectStore using AWS DynamoDB.
type Store struct {
	Client             DynamoDBAPI
	RedirectsTableName string
	TTL                time.Duration
	now                func() time.Time
}

// New creates a new Store.
func New(client DynamoDBAPI, redirectsTable string, ttl time.Duration) *Store {
	return &Store{
		Client:             client,
		RedirectsTableName: redirectsTable,
		TTL:                ttl,
		now:                time.Now,
	}
}

// Make sure we conform to the interface
var _ storage.RedirectStore = (*Store)(nil)
