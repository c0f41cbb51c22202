package cache

// Config sizes the in-process model cache and names the shared Redis prefix.
type Config struct {
	Size        int    `env:"CACHE_SIZE" envDefault:"1000"`
	RedisPrefix string `env:"CACHE_REDIS_PREFIX" envDefault:"goteo:cache:"`
}

// DefaultConfig returns the stock cache configuration.
func DefaultConfig() Config {
	return Config{
		Size:        DefaultCapacity,
		RedisPrefix: "goteo:cache:",
	}
}
