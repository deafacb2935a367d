package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/waymark/pkg/adapters/file"
	"github.com/aretw0/waymark/pkg/adapters/memory"
	"github.com/aretw0/waymark/pkg/adapters/redis"
	"github.com/aretw0/waymark/pkg/config"
	"github.com/aretw0/waymark/pkg/ports"
)

// StoreOptions selects and configures a ResourceStore backend.
type StoreOptions struct {
	Backend   string // memory, file, redis
	Dir       string
	RedisAddr string
	RedisDB   int
	Password  string
}

// OpenStore creates the configured store. The returned close function is
// never nil.
func OpenStore(ctx context.Context, opts StoreOptions) (ports.ResourceStore, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case "", "memory":
		return memory.NewStore(), noop, nil
	case "file":
		return file.New(opts.Dir), noop, nil
	case "redis":
		s := redis.New(opts.RedisAddr, opts.Password, opts.RedisDB)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, noop, fmt.Errorf("redis unreachable at %s: %w", opts.RedisAddr, err)
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store backend %q (want memory, file or redis)", opts.Backend)
	}
}

// Seed saves every record of the file at path into store.
func Seed(ctx context.Context, store ports.ResourceStore, path string, logger *slog.Logger) (int, error) {
	records, err := config.LoadRecords(path)
	if err != nil {
		return 0, err
	}
	for _, rec := range records {
		if err := store.Save(ctx, rec); err != nil {
			return 0, fmt.Errorf("failed to seed %s/%s: %w", rec.Kind, rec.ID, err)
		}
		logger.Debug("seeded", "kind", rec.Kind, "id", rec.ID)
	}
	return len(records), nil
}
