package project

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, 24*time.Hour), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	now := time.Now()
	sess := &Session{
		ID:           "abc-123",
		Name:         "Shop",
		Description:  "an online store",
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    now.Add(24 * time.Hour),
		PendingPages: []string{"home", "detail"},
		DesignSystem: DesignSystem{BackgroundColor: "#FFF7ED"},
	}
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.Get(ctx, "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "Shop", got.Name)
	assert.Equal(t, []string{"home", "detail"}, got.PendingPages)
	assert.Equal(t, "#FFF7ED", got.DesignSystem.BackgroundColor)
}

func TestRedisStore_GetUnknown(t *testing.T) {
	store, _ := setupTestRedis(t)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_DeleteIdempotent(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, store.Delete(ctx, "missing"))
	require.NoError(t, store.Delete(ctx, "missing"))
}

func TestRedisStore_TTLEnforcesRetention(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	now := time.Now()
	sess := &Session{
		ID:        "ttl-test",
		Name:      "App",
		Status:    StatusActive,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, store.Put(ctx, sess))

	_, err := store.Get(ctx, "ttl-test")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Get(ctx, "ttl-test")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_PutPastWindowDeletes(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	now := time.Now()
	sess := &Session{
		ID:        "window-test",
		Name:      "App",
		Status:    StatusActive,
		CreatedAt: now.Add(-25 * time.Hour),
		ExpiresAt: now.Add(-time.Minute),
	}
	// Writing a session whose window already passed must not resurrect it.
	require.NoError(t, store.Put(ctx, sess))

	_, err := store.Get(ctx, "window-test")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_OverRedisStore(t *testing.T) {
	store, _ := setupTestRedis(t)
	m := NewManager(store, 24*time.Hour)
	defer m.Close()
	ctx := context.Background()

	sess, err := m.Initialize(ctx, "App", "a site with login", nil)
	require.NoError(t, err)
	assert.Equal(t, PageLogin, sess.PendingPages[0])

	next, err := m.NextPageType(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, PageLogin, next)

	_, err = m.RecordPage(ctx, sess.ID, next, pageDoc("#0F0F14", "#8B5CF6", "Sign In"))
	require.NoError(t, err)

	snap, err := m.Status(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.PagesBuilt)
	assert.Equal(t, "#0F0F14", snap.DesignSystem.BackgroundColor)
}
