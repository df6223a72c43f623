package limiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"prekeyd/internal/model"
)

var acquireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

var _ model.Limiter = (*Redis)(nil)

// Redis is a fixed-window limiter with shared state in redis, so the
// decision holds across service instances. Window keys expire on their
// own, reclaiming stale principals. On redis failure it degrades to a
// local in-memory limiter rather than letting traffic through unmetered.
type Redis struct {
	client   *redis.Client
	window   time.Duration
	limit    int
	prefix   string
	fallback *InMemory
}

func NewRedis(client *redis.Client, prefix string, limit int, window time.Duration) *Redis {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Redis{
		client:   client,
		window:   window,
		limit:    limit,
		prefix:   prefix,
		fallback: NewInMemory(limit, window),
	}
}

// TryAcquire consumes one permit from the principal's window and reports
// whether the request is admitted.
func (l *Redis) TryAcquire(ctx context.Context, principal string) bool {
	if l.client == nil {
		return l.fallback.TryAcquire(ctx, principal)
	}

	key := l.prefix + principal
	res, err := acquireScript.Run(ctx, l.client, []string{key}, l.window.Milliseconds()).Result()
	if err != nil {
		return l.fallback.TryAcquire(ctx, principal)
	}

	count, ok := res.(int64)
	if !ok {
		return l.fallback.TryAcquire(ctx, principal)
	}

	return int(count) <= l.limit
}
