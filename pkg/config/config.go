package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Snapshot     SnapshotConfig
	DB           DBConfig
	Redis        RedisConfig
	Catalog      CatalogConfig
	Promo        PromoConfig
	FeatureFlags FeatureFlagsConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Snapshot.validate(); err != nil {
		return nil, err
	}
	if cfg.Snapshot.UsesRedis() {
		if err := cfg.Redis.validate(); err != nil {
			return nil, err
		}
	}
	if cfg.Snapshot.UsesDB() {
		if err := cfg.DB.ensureDSN(cfg.Snapshot.NormalizedBackend()); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPCART_APP_ENV" default:"dev"`
	Port         string `envconfig:"SHOPCART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// LogFormat pins JSON output in prod. Elsewhere it returns "" so the logger
// falls back to LOG_FORMAT.
func (a AppConfig) LogFormat() string {
	if a.IsProd() {
		return LogFormatJSON
	}
	return ""
}

// SnapshotConfig selects where cart and coupon snapshots are persisted.
type SnapshotConfig struct {
	Backend   string        `envconfig:"SHOPCART_SNAPSHOT_BACKEND" default:"memory"`
	KeyPrefix string        `envconfig:"SHOPCART_SNAPSHOT_KEY_PREFIX" default:"shopcart"`
	Timeout   time.Duration `envconfig:"SHOPCART_SNAPSHOT_TIMEOUT" default:"2s"`
}

// NormalizedBackend returns the lower-cased backend name, defaulting to memory.
func (s SnapshotConfig) NormalizedBackend() string {
	backend := strings.ToLower(strings.TrimSpace(s.Backend))
	if backend == "" {
		return SnapshotBackendMemory
	}
	return backend
}

// UsesDB reports whether the snapshot backend is SQL backed.
func (s SnapshotConfig) UsesDB() bool {
	switch s.NormalizedBackend() {
	case SnapshotBackendSQLite, SnapshotBackendPostgres:
		return true
	}
	return false
}

// UsesRedis reports whether snapshots live in redis.
func (s SnapshotConfig) UsesRedis() bool {
	return s.NormalizedBackend() == SnapshotBackendRedis
}

func (s SnapshotConfig) validate() error {
	for _, candidate := range snapshotBackends {
		if s.NormalizedBackend() == candidate {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s", EnvSnapshotBackend, strings.Join(snapshotBackends, ", "))
}

type DBConfig struct {
	DSN string `envconfig:"SHOPCART_DB_DSN"`

	Host     string `envconfig:"SHOPCART_DB_HOST"`
	Port     int    `envconfig:"SHOPCART_DB_PORT" default:"5432"`
	User     string `envconfig:"SHOPCART_DB_USER"`
	Password string `envconfig:"SHOPCART_DB_PASSWORD"`
	Name     string `envconfig:"SHOPCART_DB_NAME"`
	SSLMode  string `envconfig:"SHOPCART_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"SHOPCART_DB_SQLITE_PATH" default:"shopcart.db"`

	MaxOpenConns    int           `envconfig:"SHOPCART_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SHOPCART_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// Driver is derived from the snapshot backend during Load.
	Driver string `ignored:"true"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPCART_REDIS_URL"`
	Address      string        `envconfig:"SHOPCART_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPCART_REDIS_WRITE_TIMEOUT" default:"5s"`
	// SnapshotTTL of zero keeps snapshots until they are overwritten.
	SnapshotTTL time.Duration `envconfig:"SHOPCART_REDIS_SNAPSHOT_TTL" default:"0s"`
}

func (r RedisConfig) validate() error {
	if strings.TrimSpace(r.URL) == "" && strings.TrimSpace(r.Address) == "" {
		return fmt.Errorf("either %s or %s is required for the redis snapshot backend", EnvRedisURL, EnvRedisAddr)
	}
	return nil
}

// CatalogConfig points at an optional JSON catalog overriding the embedded one.
type CatalogConfig struct {
	Path string `envconfig:"SHOPCART_CATALOG_PATH"`
}

// PromoConfig points at an optional JSON coupon table overriding the default codes.
type PromoConfig struct {
	Path string `envconfig:"SHOPCART_PROMO_PATH"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHOPCART_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SHOPCART_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

func (db *DBConfig) ensureDSN(backend string) error {
	db.Driver = backend
	if db.Driver == SnapshotBackendSQLite {
		if db.DSN == "" {
			db.DSN = db.SQLitePath
		}
		return nil
	}
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range dbEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
