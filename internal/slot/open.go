package slot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendBolt     = "bolt"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Options selects and parameterises a backend. Only the fields relevant to
// Backend are read.
type Options struct {
	Backend string

	Dir         string
	BoltPath    string
	RedisAddr   string
	RedisDB     int
	RedisPrefix string
	PostgresDSN string
}

func Open(ctx context.Context, opts Options) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case BackendMemory, "":
		return NewMemSlot(), nil
	case BackendFile:
		return NewFileSlot(opts.Dir)
	case BackendBolt:
		if err := os.MkdirAll(filepath.Dir(opts.BoltPath), 0o755); err != nil {
			return nil, fmt.Errorf("bolt slot: %w", err)
		}
		return NewBoltSlot(opts.BoltPath)
	case BackendRedis:
		client, err := ConnectRedis(ctx, opts.RedisAddr, opts.RedisDB)
		if err != nil {
			return nil, err
		}
		return NewRedisSlot(client, opts.RedisPrefix), nil
	case BackendPostgres:
		return OpenPostgres(ctx, opts.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown slot backend %q", opts.Backend)
	}
}
