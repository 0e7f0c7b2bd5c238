package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return New(rdb, time.Hour, zap.NewNop())
}

func TestStore_AccessTokenRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, found, err := store.AccessToken(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.SetAccessToken(ctx, 1, "token-a"))

	token, found, err := store.AccessToken(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "token-a", token)

	require.NoError(t, store.ClearAccessToken(ctx, 1))

	_, found, err = store.AccessToken(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_LastWriterWins(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetLastViewedProject(ctx, 1, 10))
	require.NoError(t, store.SetLastViewedProject(ctx, 1, 25))

	projectID, found, err := store.LastViewedProject(ctx, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(25), projectID)
}

func TestStore_KeysScopedPerMember(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetLastViewedProject(ctx, 1, 10))

	_, found, err := store.LastViewedProject(ctx, 2)
	require.NoError(t, err)
	assert.False(t, found)
}
