package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_Exhaustion(t *testing.T) {
	ctx := context.Background()
	l := NewInMemory(2, 50*time.Millisecond)

	assert.True(t, l.TryAcquire(ctx, "+14152222222"))
	assert.True(t, l.TryAcquire(ctx, "+14152222222"))
	assert.False(t, l.TryAcquire(ctx, "+14152222222"))

	// independent principals do not share windows
	assert.True(t, l.TryAcquire(ctx, "+14153333333"))

	time.Sleep(70 * time.Millisecond)
	assert.True(t, l.TryAcquire(ctx, "+14152222222"))
}

func TestInMemory_SweepsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	l := NewInMemory(1, 10*time.Millisecond)

	l.TryAcquire(ctx, "a")
	l.TryAcquire(ctx, "b")
	time.Sleep(20 * time.Millisecond)
	l.TryAcquire(ctx, "c")

	assert.Equal(t, 1, l.size())
}

func TestInMemory_LimitFloor(t *testing.T) {
	l := NewInMemory(0, 0)
	assert.Equal(t, 1, l.limit)
	assert.Equal(t, time.Minute, l.window)
}

func TestRedis_Exhaustion(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewRedis(client, "rl:prekeys:", 2, 25*time.Millisecond)

	assert.True(t, l.TryAcquire(ctx, "+14152222222"))
	assert.True(t, l.TryAcquire(ctx, "+14152222222"))
	assert.False(t, l.TryAcquire(ctx, "+14152222222"))
	assert.True(t, l.TryAcquire(ctx, "+14153333333"))

	mr.FastForward(30 * time.Millisecond)
	assert.True(t, l.TryAcquire(ctx, "+14152222222"))
}

func TestRedis_ClassPrefixesIsolate(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	preKeys := NewRedis(client, "rl:prekeys:", 1, time.Second)
	other := NewRedis(client, "rl:messages:", 1, time.Second)

	assert.True(t, preKeys.TryAcquire(ctx, "+14152222222"))
	assert.False(t, preKeys.TryAcquire(ctx, "+14152222222"))
	assert.True(t, other.TryAcquire(ctx, "+14152222222"))
}

func TestRedis_FallbackOnOutage(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{
		Addr:         "127.0.0.1:1",
		DialTimeout:  5 * time.Millisecond,
		ReadTimeout:  5 * time.Millisecond,
		WriteTimeout: 5 * time.Millisecond,
		MaxRetries:   0,
	})
	defer client.Close()

	l := NewRedis(client, "rl:prekeys:", 1, time.Second)

	assert.True(t, l.TryAcquire(ctx, "+14152222222"))
	assert.False(t, l.TryAcquire(ctx, "+14152222222"))
}

func TestNewSet(t *testing.T) {
	ctx := context.Background()

	set := NewSet(nil, Config{PreKeysLimit: 1, PreKeysWindow: time.Second})
	require.NotNil(t, set.PreKeys())
	assert.True(t, set.PreKeys().TryAcquire(ctx, "p"))
	assert.False(t, set.PreKeys().TryAcquire(ctx, "p"))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	set = NewSet(client, Config{PreKeysLimit: 1, PreKeysWindow: time.Second})
	assert.IsType(t, &Redis{}, set.PreKeys())
}
