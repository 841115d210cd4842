package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=7777"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// StateDir holds the durable settings file (token, theme, sidebar).
	StateDir string `env:"STATE_DIR, default=.console-state"`

	Backend BackendConfig
	Cache   CacheConfig
	Redis   RedisConfig
	Stub    StubConfig
}

type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:8080"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=10s"`
}

type CacheConfig struct {
	SessionTTL  time.Duration `env:"CACHE_SESSION_TTL,  default=1m"`
	DecisionTTL time.Duration `env:"CACHE_DECISION_TTL, default=5m"`
	// Backend selects the cache implementation: memory or redis.
	Backend string `env:"CACHE_BACKEND, default=memory"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// StubConfig configures the dev stub backend (cmd/console-stubapi).
type StubConfig struct {
	MongoURI  string `env:"STUB_MONGO_URI,  default=mongodb://localhost:27017"`
	MongoDB   string `env:"STUB_MONGO_DB,   default=console_stub"`
	JWTSecret string `env:"STUB_JWT_SECRET, default=dev-only-secret"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
