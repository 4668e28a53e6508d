package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID    int64   `json:"id"`
	Saved []int64 `json:"saved"`
}

// exercise runs the shared contract against c; advance moves the backend's
// clock forward.
func exercise(t *testing.T, c Cache, advance func(time.Duration)) {
	t.Helper()
	ctx := context.Background()

	var got payload
	ok, err := c.Get(ctx, "recipe:1", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "recipe:1", payload{ID: 1, Saved: []int64{2, 3}}, time.Minute))
	ok, err = c.Get(ctx, "recipe:1", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload{ID: 1, Saved: []int64{2, 3}}, got)

	require.NoError(t, c.Set(ctx, "skip", payload{ID: 9}, 0))
	ok, err = c.Get(ctx, "skip", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, c.Delete(ctx, "a", "b", "missing"))
	var n int
	ok, err = c.Get(ctx, "a", &n)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, c.Delete(ctx))

	advance(2 * time.Minute)
	ok, err = c.Get(ctx, "recipe:1", &got)
	require.NoError(t, err)
	assert.False(t, ok, "entry must expire after its ttl")
}

func TestMemory(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	m := NewMemory("test:", func() time.Time { return now })

	exercise(t, m, func(d time.Duration) { now = now.Add(d) })
	assert.Equal(t, 0, m.Len())
	require.NoError(t, m.Close())
}

func TestMemory_DecodeError(t *testing.T) {
	m := NewMemory("", nil)
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "k", "text", time.Minute))

	var dst int
	_, err := m.Get(ctx, "k", &dst)
	require.Error(t, err)
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	r, err := NewRedis(context.Background(), mr.Addr(), "gophrecipes:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	exercise(t, r, mr.FastForward)
}

func TestRedis_PrefixApplied(t *testing.T) {
	mr := miniredis.RunT(t)

	r, err := NewRedis(context.Background(), mr.Addr(), "ns:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	require.NoError(t, r.Set(context.Background(), "userPreferences:u1", map[string]int{"x": 1}, time.Minute))
	assert.True(t, mr.Exists("ns:userPreferences:u1"))
	assert.Equal(t, time.Minute, mr.TTL("ns:userPreferences:u1"))
}

func TestNewRedis_Errors(t *testing.T) {
	_, err := NewRedis(context.Background(), "", "")
	require.Error(t, err)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedis(context.Background(), addr, "")
	assert.ErrorContains(t, err, "redis ping failed")
}

func TestNew_SelectsBackend(t *testing.T) {
	c, err := New(context.Background(), Config{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)

	mr := miniredis.RunT(t)
	c, err = New(context.Background(), Config{Backend: BackendRedis, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, c)
	_ = c.Close()

	_, err = New(context.Background(), Config{Backend: "memcached"})
	require.Error(t, err)
}
