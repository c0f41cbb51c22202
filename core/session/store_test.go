package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goteo/foundation/core/session"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()

	_, err := store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, session.ErrNotFound)

	sess := startSession(t, store)
	require.NoError(t, sess.Store(ctx, session.KeyCurrency, "USD"))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.NotSame(t, sess, got)

	require.NoError(t, store.Delete(ctx, sess.ID))
	assert.ErrorIs(t, store.Delete(ctx, sess.ID), session.ErrNotFound)
}

func TestMemoryStoreDeleteExpired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()
	m := session.NewManager(store, newCookies(t))

	short := startSessionWithTTL(t, m, 5*time.Millisecond)
	long := startSessionWithTTL(t, m, time.Hour)

	time.Sleep(10 * time.Millisecond)

	n, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = store.Get(ctx, short.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
	_, err = store.Get(ctx, long.ID)
	assert.NoError(t, err)
}

func TestRedisStore(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	store := session.NewRedisStore(client, "test:session:")

	_, err := store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, session.ErrNotFound)

	sess := startSession(t, store)
	require.NoError(t, sess.Login(ctx, "alice"))

	key := "test:session:" + sess.ID.String()
	assert.True(t, mr.Exists(key))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL(key).Seconds(), 5)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserID)

	mr.FastForward(2 * time.Hour)
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, sess.ID), session.ErrNotFound)
}

func TestNewStoreFromConfig(t *testing.T) {
	t.Parallel()

	store, err := session.NewStoreFromConfig(session.DefaultConfig(), nil)
	require.NoError(t, err)
	assert.IsType(t, &session.MemoryStore{}, store)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store, err = session.NewStoreFromConfig(session.Config{Driver: "redis"}, client)
	require.NoError(t, err)
	assert.IsType(t, &session.RedisStore{}, store)

	_, err = session.NewStoreFromConfig(session.Config{Driver: "redis"}, nil)
	assert.ErrorIs(t, err, session.ErrUnknownStore)

	_, err = session.NewStoreFromConfig(session.Config{Driver: "memcached"}, nil)
	assert.ErrorIs(t, err, session.ErrUnknownStore)
}
