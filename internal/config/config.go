package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"MiniCatalog/internal/slot"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	SessionSecret string        `env:"SESSION_SECRET, default=dev-secret"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=0s"`

	MetricsToken string `env:"METRICS_TOKEN"`
	ShareBase    string `env:"SHARE_BASE_URL, default=https://wa.me/"`

	Slot SlotConfig
}

type SlotConfig struct {
	Backend string `env:"SLOT_BACKEND, default=file"`
	Key     string `env:"SLOT_KEY,     default=mini-catalog"`

	Dir         string `env:"SLOT_DIR,          default=./data"`
	BoltPath    string `env:"SLOT_BOLT_PATH,    default=./data/catalog.db"`
	RedisAddr   string `env:"SLOT_REDIS_ADDR,   default=localhost:6379"`
	RedisDB     int    `env:"SLOT_REDIS_DB,     default=0"`
	RedisPrefix string `env:"SLOT_REDIS_PREFIX, default=slot:"`
	PostgresDSN string `env:"SLOT_POSTGRES_DSN"`
}

// Options maps the environment settings onto the slot package.
func (c SlotConfig) Options() slot.Options {
	return slot.Options{
		Backend:     c.Backend,
		Dir:         c.Dir,
		BoltPath:    c.BoltPath,
		RedisAddr:   c.RedisAddr,
		RedisDB:     c.RedisDB,
		RedisPrefix: c.RedisPrefix,
		PostgresDSN: c.PostgresDSN,
	}
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Slot.Backend == slot.BackendPostgres && cfg.Slot.PostgresDSN == "" {
		return nil, fmt.Errorf("config: SLOT_POSTGRES_DSN is required for the postgres backend")
	}
	return &cfg, nil
}
