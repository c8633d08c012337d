package config

const EnvPrefix = "SHOPCART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const LogFormatJSON = "json"

const (
	SnapshotBackendMemory   = "memory"
	SnapshotBackendRedis    = "redis"
	SnapshotBackendSQLite   = "sqlite"
	SnapshotBackendPostgres = "postgres"
)

var snapshotBackends = []string{
	SnapshotBackendMemory,
	SnapshotBackendRedis,
	SnapshotBackendSQLite,
	SnapshotBackendPostgres,
}

const (
	EnvAppEnv          = "SHOPCART_APP_ENV"
	EnvPort            = "SHOPCART_APP_PORT"
	EnvLogLevel        = "SHOPCART_LOG_LEVEL"
	EnvSnapshotBackend = "SHOPCART_SNAPSHOT_BACKEND"
	EnvSnapshotPrefix  = "SHOPCART_SNAPSHOT_KEY_PREFIX"
	EnvDBDSN           = "SHOPCART_DB_DSN"
	EnvDBHost          = "SHOPCART_DB_HOST"
	EnvDBUser          = "SHOPCART_DB_USER"
	EnvDBName          = "SHOPCART_DB_NAME"
	EnvDBSQLitePath    = "SHOPCART_DB_SQLITE_PATH"
	EnvRedisURL        = "SHOPCART_REDIS_URL"
	EnvRedisAddr       = "SHOPCART_REDIS_ADDR"
	EnvCatalogPath     = "SHOPCART_CATALOG_PATH"
	EnvPromoPath       = "SHOPCART_PROMO_PATH"
	EnvCORSOrigins     = "SHOPCART_CORS_ALLOWED_ORIGINS"
)

var dbEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
