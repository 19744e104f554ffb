package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*FixedWindowLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewFixedWindowLimiter(client, limit, window), mr
}

func TestFixedWindowLimiter_AllowsUpToLimit(t *testing.T) {
	l, mr := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, retry, err := l.Allow(ctx, "ip:10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i+1)
		assert.Zero(t, retry)
	}

	ok, retry, err := l.Allow(ctx, "ip:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Greater(t, retry, time.Duration(0))
	assert.LessOrEqual(t, retry, time.Minute)

	assert.Equal(t, "4", mustGet(t, mr, "ratelimit:ip:10.0.0.1"))
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:ip:10.0.0.1"))
}

func TestFixedWindowLimiter_ExpiryIsSetOnce(t *testing.T) {
	l, mr := newTestLimiter(t, 10, time.Minute)
	ctx := context.Background()

	_, _, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	mr.FastForward(40 * time.Second)

	_, _, err = l.Allow(ctx, "k")
	require.NoError(t, err)

	// A later hit must not extend the window.
	assert.Equal(t, 20*time.Second, mr.TTL("ratelimit:k"))
}

func TestFixedWindowLimiter_WindowResets(t *testing.T) {
	l, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	ok, _, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	ok, _, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	mr.FastForward(time.Minute + time.Second)

	ok, _, err = l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFixedWindowLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	ok, _, err := l.Allow(ctx, "ip:a")
	require.NoError(t, err)
	require.True(t, ok)

	ok, _, err = l.Allow(ctx, "ip:b")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFixedWindowLimiter_ServerDown(t *testing.T) {
	l, mr := newTestLimiter(t, 1, time.Minute)
	mr.Close()

	_, _, err := l.Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestNewFixedWindowLimiter_DefaultWindow(t *testing.T) {
	l := NewFixedWindowLimiter(nil, 5, 0)
	assert.Equal(t, time.Minute, l.window)
	assert.Equal(t, int64(5), l.limit)
}

func TestRetryAfter(t *testing.T) {
	assert.Equal(t, 15*time.Second, retryAfter(15*time.Second, time.Minute))
	assert.Equal(t, time.Minute, retryAfter(-1, time.Minute))
	assert.Equal(t, time.Minute, retryAfter(-2, time.Minute))
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}
