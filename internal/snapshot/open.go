package snapshot

import (
	"context"
	"fmt"

	"github.com/angelmondragon/shopcart-backend/pkg/config"
	"github.com/angelmondragon/shopcart-backend/pkg/db"
	"github.com/angelmondragon/shopcart-backend/pkg/logger"
	"github.com/angelmondragon/shopcart-backend/pkg/migrate"
	"github.com/angelmondragon/shopcart-backend/pkg/redis"
)

// Backend is an opened Store plus the resources that must be released with it.
type Backend struct {
	Store Store
	Name  string
	close func() error
}

// Close releases the backend's connections.
func (b *Backend) Close() error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close()
}

// Open builds the Store selected by cfg.Snapshot.Backend.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*Backend, error) {
	name := cfg.Snapshot.NormalizedBackend()
	switch name {
	case config.SnapshotBackendMemory:
		return &Backend{Store: NewMemoryStore(), Name: name}, nil

	case config.SnapshotBackendRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("redis snapshot backend: %w", err)
		}
		return &Backend{
			Store: NewRedisStore(client, cfg.Redis.SnapshotTTL),
			Name:  name,
			close: client.Close,
		}, nil

	case config.SnapshotBackendSQLite, config.SnapshotBackendPostgres:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("%s snapshot backend: %w", name, err)
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			_ = client.Close()
			return nil, err
		}
		return &Backend{
			Store: NewDBStore(client),
			Name:  name,
			close: client.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", name)
	}
}
