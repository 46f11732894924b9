package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3E-Network/algorithm_service/internal/app/domain/user"
	"github.com/R3E-Network/algorithm_service/internal/app/storage"
)

func TestStoreUserLifecycle(t *testing.T) {
	ctx := context.Background()
	store := New()

	alice, err := store.CreateUser(ctx, user.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	bob, err := store.CreateUser(ctx, user.User{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), bob.ID)

	got, err := store.GetUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, bob, got)

	all, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alice", all[0].Name)

	found, err := store.SearchUsersByName(ctx, "li")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, alice.ID, found[0].ID)

	alice.Email = "alice@corp.example"
	alice.UpdatedAt = time.Time{}
	updated, err := store.UpdateUser(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, alice.CreatedAt, updated.CreatedAt)

	_, err = store.GetUserByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	n, err := store.CountUsersByEmail(ctx, "alice@corp.example")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.DeleteUser(ctx, alice.ID))
	_, err = store.GetUser(ctx, alice.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, store.DeleteUser(ctx, alice.ID), storage.ErrNotFound)
}

func TestStoreRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.CreateUser(ctx, user.User{Name: "A", Email: "dup@example.com"})
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, user.User{Name: "B", Email: "dup@example.com"})
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	other, err := store.CreateUser(ctx, user.User{Name: "C", Email: "c@example.com"})
	require.NoError(t, err)
	other.Email = "dup@example.com"
	_, err = store.UpdateUser(ctx, other)
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	_, err = store.UpdateUser(ctx, user.User{ID: 99, Email: "x@example.com"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	store := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.CreateUser(ctx, user.User{Name: "u", Email: fmt.Sprintf("u%d@example.com", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	all, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}
