package storage

import (
	"fmt"

	"github.com/alexanderramin/taskboard/internal/config"
	"github.com/redis/go-redis/v9"
)

// OpenBackend builds the backend selected by cfg. A redis backend is created
// lazily; connection problems surface as absorbed read/write failures.
func OpenBackend(cfg *config.Config) (Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		b, err := OpenSQLiteBackend(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite backend: %w", err)
		}
		return b, nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisBackend(client, cfg.Redis.Prefix), nil
	case config.BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
