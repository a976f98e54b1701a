package notify

import "context"

// Publisher defines the interface for publishing change notifications.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
