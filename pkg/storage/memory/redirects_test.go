package memory

import (
	"context"
	"testing"
	"time"

	"github.com/chris/apexfx-session/pkg/storage"
	"github.com/stretchr/testify/assert"
)

func TestRedirectStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Read Then Delete", func(t *testing.T) {
		store := NewRedirectStore(0)
		assert.NoError(t, store.SetRedirect(ctx, "s1", "/transactions"))

		target, err := store.TakeRedirect(ctx, "s1")
		assert.NoError(t, err)
		assert.Equal(t, "/transactions", target)

		_, err = store.TakeRedirect(ctx, "s1")
		assert.ErrorIs(t, err, storage.ErrRedirectNotFound)
	})

	t.Run("Last Write Wins", func(t *testing.T) {
		store := NewRedirectStore(0)
		assert.NoError(t, store.SetRedirect(ctx, "s1", "/deposit"))
		assert.NoError(t, store.SetRedirect(ctx, "s1", "/withdraw"))

		target, err := store.TakeRedirect(ctx, "s1")
		assert.NoError(t, err)
		assert.Equal(t, "/withdraw", target)
	})

	t.Run("Expired", func(t *testing.T) {
		store := NewRedirectStore(time.Minute)
		now := time.Now()
		store.now = func() time.Time { return now }
		assert.NoError(t, store.SetRedirect(ctx, "s1", "/settings"))

		store.now = func() time.Time { return now.Add(2 * time.Minute) }
		_, err := store.TakeRedirect(ctx, "s1")
		assert.ErrorIs(t, err, storage.ErrRedirectNotFound)
	})
}
