package config

// EnvPrefix is empty because every field carries its full variable name.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "STOCKLEDGER_APP_ENV"
	EnvPort                   = "STOCKLEDGER_APP_PORT"
	EnvLogLevel               = "STOCKLEDGER_LOG_LEVEL"
	EnvDBDSN                  = "STOCKLEDGER_DB_DSN"
	EnvDBHost                 = "STOCKLEDGER_DB_HOST"
	EnvDBPort                 = "STOCKLEDGER_DB_PORT"
	EnvDBUser                 = "STOCKLEDGER_DB_USER"
	EnvDBPassword             = "STOCKLEDGER_DB_PASSWORD"
	EnvDBName                 = "STOCKLEDGER_DB_NAME"
	EnvDBSSLMode              = "STOCKLEDGER_DB_SSLMODE"
	EnvRedisURL               = "STOCKLEDGER_REDIS_URL"
	EnvJWTSecret              = "STOCKLEDGER_JWT_SECRET"
	EnvJWTIssuer              = "STOCKLEDGER_JWT_ISSUER"
	EnvJWTExpMins             = "STOCKLEDGER_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "STOCKLEDGER_REFRESH_TOKEN_TTL_MINUTES"
	EnvReportsPreviewLimit    = "STOCKLEDGER_REPORTS_PREVIEW_LIMIT"
	EnvCORSAllowedOrigins     = "STOCKLEDGER_CORS_ALLOWED_ORIGINS"
	EnvAutoMigrate            = "STOCKLEDGER_AUTO_MIGRATE"
	EnvTracingExporter        = "STOCKLEDGER_TRACING_EXPORTER"
	EnvTracingSampleRatio     = "STOCKLEDGER_TRACING_SAMPLE_RATIO"
)

// legacyDBEnvVars must all be set when no DSN is supplied.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
