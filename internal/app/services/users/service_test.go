package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3E-Network/algorithm_service/internal/app/domain/user"
	"github.com/R3E-Network/algorithm_service/internal/app/storage"
	"github.com/R3E-Network/algorithm_service/internal/app/storage/memory"
)

func newService(t *testing.T) *Service {
	t.Helper()
	svc := New(memory.New(), nil)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc
}

func TestServiceCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.Create(ctx, user.User{ID: 99, Name: "Ada Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID, "client supplied id is ignored")
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	byID, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byEmail, err := svc.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = svc.Create(ctx, user.User{Name: "Grace Hopper", Email: "grace@example.com"})
	require.NoError(t, err)

	found, err := svc.SearchByName(ctx, "Love")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Ada Lovelace", found[0].Name)

	none, err := svc.SearchByName(ctx, "love")
	require.NoError(t, err)
	assert.Empty(t, none)

	everyone, err := svc.SearchByName(ctx, "")
	require.NoError(t, err)
	assert.Len(t, everyone, 2)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Less(t, all[0].ID, all[1].ID)
}

func TestServiceCreateRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Create(ctx, user.User{Name: "A", Email: "same@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, user.User{Name: "B", Email: "same@example.com"})
	assert.ErrorIs(t, err, ErrEmailConflict)
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	ada, err := svc.Create(ctx, user.User{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	grace, err := svc.Create(ctx, user.User{Name: "Grace", Email: "grace@example.com"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, ada.ID, user.User{Name: "Ada L.", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Name)
	assert.Equal(t, ada.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(ada.UpdatedAt))

	_, err = svc.Update(ctx, grace.ID, user.User{Name: "Grace", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrEmailConflict)

	_, err = svc.Update(ctx, 404, user.User{Name: "Nobody", Email: "nobody@example.com"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	created, err := svc.Create(ctx, user.User{Name: "Temp", Email: "temp@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetByEmail(ctx, "temp@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

type failingStore struct {
	storage.UserStore
	err error
}

func (f failingStore) ListUsers(context.Context) ([]user.User, error) { return nil, f.err }

func (f failingStore) CountUsersByEmail(context.Context, string) (int, error) { return 0, f.err }

func TestServicePropagatesStoreFailures(t *testing.T) {
	boom := errors.New("connection reset")
	svc := New(failingStore{err: boom}, nil)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(context.Background(), user.User{Name: "X", Email: "x@example.com"})
	assert.ErrorIs(t, err, boom)
}

func TestServiceMapsConcurrentDuplicate(t *testing.T) {
	err := translate(storage.ErrDuplicate, "email x@example.com")
	assert.ErrorIs(t, err, ErrEmailConflict)
}
