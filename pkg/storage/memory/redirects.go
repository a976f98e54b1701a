// Package memory provides process-local implementations of the storage interfaces.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/chris/apexfx-session/pkg/models"
	"github.com/chris/apexfx-session/pkg/storage"
)

// RedirectStore keeps redirect targets in a map. Entries older than ttl are
// treated as absent.
type RedirectStore struct {
	mu      sync.Mutex
	targets map[string]models.RedirectTarget
	ttl     time.Duration
	now     func() time.Time
}

// NewRedirectStore creates an empty RedirectStore. A zero ttl disables expiry.
func NewRedirectStore(ttl time.Duration) *RedirectStore {
	return &RedirectStore{
		targets: make(map[string]models.RedirectTarget),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Make sure we conform to the interface
var _ storage.RedirectStore = (*RedirectStore)(nil)

// SetRedirect stores target for the session.
func (s *RedirectStore) SetRedirect(ctx context.Context, sessionID, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.targets[sessionID] = models.RedirectTarget{SessionID: sessionID, Target: target, CreatedAt: s.now()}
	return nil
}

// TakeRedirect returns and deletes the target for the session.
func (s *RedirectStore) TakeRedirect(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.targets[sessionID]
	if !ok {
		return "", storage.ErrRedirectNotFound
	}
	delete(s.targets, sessionID)

	if s.ttl > 0 && s.now().Sub(rec.CreatedAt) > s.ttl {
		return "", storage.ErrRedirectNotFound
	}
	return rec.Target, nil
}
