package config

const (
	EnvPrefix = "FOODDELIVERY"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv     = "FOODDELIVERY_APP_ENV"
	EnvPort       = "FOODDELIVERY_APP_PORT"
	EnvDBDSN      = "FOODDELIVERY_DB_DSN"
	EnvDBHost     = "FOODDELIVERY_DB_HOST"
	EnvDBUser     = "FOODDELIVERY_DB_USER"
	EnvDBName     = "FOODDELIVERY_DB_NAME"
	EnvRedisURL   = "FOODDELIVERY_REDIS_URL"
	EnvJWTSecret  = "FOODDELIVERY_JWT_SECRET"
	EnvJWTIssuer  = "FOODDELIVERY_JWT_ISSUER"
	EnvJWTExpMins = "FOODDELIVERY_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
