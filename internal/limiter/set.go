package limiter

import (
	"time"

	"github.com/redis/go-redis/v9"

	"prekeyd/internal/model"
)

// Set owns one limiter per request class. Classes are isolated by key
// prefix so they never share windows.
type Set struct {
	preKeys model.Limiter
}

// Config carries the per-class limits.
type Config struct {
	PreKeysLimit  int
	PreKeysWindow time.Duration
}

// NewSet builds the class limiters. A nil client selects in-memory
// accounting local to this instance.
func NewSet(client *redis.Client, cfg Config) *Set {
	var preKeys model.Limiter
	if client != nil {
		preKeys = NewRedis(client, "rl:prekeys:", cfg.PreKeysLimit, cfg.PreKeysWindow)
	} else {
		preKeys = NewInMemory(cfg.PreKeysLimit, cfg.PreKeysWindow)
	}
	return &Set{preKeys: preKeys}
}

// PreKeys returns the limiter for the key-fetch request class.
func (s *Set) PreKeys() model.Limiter {
	return s.preKeys
}
