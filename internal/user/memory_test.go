package user_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fengguoheng/shopauth/internal/user"
)

func newUser(providerID string) *user.User {
	return &user.User{
		ID:             uuid.New(),
		ProviderUserID: providerID,
		Username:       "al",
		PasswordHash:   "$2a$10$hash",
		Email:          "al@example.com",
		CreatedAt:      time.Now(),
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		store := user.NewMemoryStore()
		u := newUser("42")
		require.NoError(t, store.Create(ctx, u))

		byProvider, err := store.FindByProviderID(ctx, "42")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byProvider.ID)

		byID, err := store.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "al", byID.Username)
	})

	t.Run("not found", func(t *testing.T) {
		store := user.NewMemoryStore()

		_, err := store.FindByProviderID(ctx, "absent")
		assert.ErrorIs(t, err, user.ErrNotFound)

		_, err = store.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("duplicate provider id conflicts", func(t *testing.T) {
		store := user.NewMemoryStore()
		require.NoError(t, store.Create(ctx, newUser("42")))

		err := store.Create(ctx, newUser("42"))
		assert.ErrorIs(t, err, user.ErrProviderIDConflict)
		assert.Equal(t, 1, store.Count())
	})

	t.Run("concurrent creates for one identity produce one record", func(t *testing.T) {
		store := user.NewMemoryStore()

		const n = 16
		var wg sync.WaitGroup
		conflicts := make(chan error, n)

		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := store.Create(ctx, newUser("42")); err != nil {
					conflicts <- err
				}
			}()
		}
		wg.Wait()
		close(conflicts)

		assert.Equal(t, 1, store.Count())
		assert.Len(t, conflicts, n-1)
		for err := range conflicts {
			assert.ErrorIs(t, err, user.ErrProviderIDConflict)
		}
	})
}
