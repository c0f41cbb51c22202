package session

import (
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config selects and configures the session store.
type Config struct {
	Driver      string `env:"SESSION_STORE" envDefault:"memory"`
	RedisPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"goteo:session:"`
}

// DefaultConfig returns the in-memory configuration.
func DefaultConfig() Config {
	return Config{
		Driver:      DriverMemory,
		RedisPrefix: "goteo:session:",
	}
}

// NewStoreFromConfig builds the configured store. client is only used by the
// redis driver and must be non-nil for it.
func NewStoreFromConfig(cfg Config, client redis.UniversalClient) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverRedis:
		if client == nil {
			return nil, fmt.Errorf("%w: redis driver needs a client", ErrUnknownStore)
		}
		return NewRedisStore(client, cfg.RedisPrefix), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Driver)
	}
}
