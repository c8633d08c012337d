package snapshot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/shopcart-backend/pkg/config"
	"github.com/angelmondragon/shopcart-backend/pkg/db"
	"github.com/angelmondragon/shopcart-backend/pkg/logger"
	"github.com/angelmondragon/shopcart-backend/pkg/migrate"
	"github.com/angelmondragon/shopcart-backend/pkg/redis"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "shopcart:cart")
	require.NoError(t, err)
	assert.False(t, ok, "missing key should report ok=false")

	require.NoError(t, store.Set(ctx, "shopcart:cart", `[{"id":"p-001"}]`))
	value, ok, err := store.Get(ctx, "shopcart:cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"p-001"}]`, value)

	require.NoError(t, store.Set(ctx, "shopcart:cart", `[]`))
	value, _, err = store.Get(ctx, "shopcart:cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, value, "second write overwrites")

	require.NoError(t, store.Ping(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.Wrap(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = client.Close() })

	exerciseStore(t, NewRedisStore(client, 0))

	store := NewRedisStore(client, time.Hour)
	require.NoError(t, store.Set(context.Background(), "shopcart:coupon", "null"))
	assert.Equal(t, time.Hour, mr.TTL("shopcart:coupon"))
}

func TestDBStore(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "snapshots.db")), &gorm.Config{})
	require.NoError(t, err)
	client := db.Wrap(conn, config.SnapshotBackendSQLite)
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, migrate.Run(context.Background(), sqlDB, config.SnapshotBackendSQLite, "up"))

	exerciseStore(t, NewDBStore(client))
}

func TestKeysFor(t *testing.T) {
	keys := KeysFor("shopcart", "abc")
	assert.Equal(t, "shopcart:abc:cart", keys.Cart)
	assert.Equal(t, "shopcart:abc:coupon", keys.Coupon)

	keys = KeysFor(" shopcart ", "")
	assert.Equal(t, "shopcart:cart", keys.Cart)
	assert.Equal(t, "shopcart:coupon", keys.Coupon)
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "snapshot-test"})

	mem, err := Open(ctx, &config.Config{}, logg)
	require.NoError(t, err)
	assert.Equal(t, config.SnapshotBackendMemory, mem.Name)
	require.NoError(t, mem.Close())

	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Snapshot: config.SnapshotConfig{Backend: config.SnapshotBackendRedis},
		Redis:    config.RedisConfig{Address: mr.Addr()},
	}
	rb, err := Open(ctx, cfg, logg)
	require.NoError(t, err)
	exerciseStore(t, rb.Store)
	require.NoError(t, rb.Close())

	cfg = &config.Config{
		Snapshot: config.SnapshotConfig{Backend: config.SnapshotBackendSQLite},
		DB: config.DBConfig{
			DSN:    filepath.Join(t.TempDir(), "open.db"),
			Driver: config.SnapshotBackendSQLite,
		},
	}
	sb, err := Open(ctx, cfg, logg)
	require.NoError(t, err)
	exerciseStore(t, sb.Store)
	require.NoError(t, sb.Close())

	_, err = Open(ctx, &config.Config{Snapshot: config.SnapshotConfig{Backend: "etcd"}}, logg)
	assert.Error(t, err)
}
