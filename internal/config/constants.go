package config

import "time"

// Environment variable names
const (
	EnvPort                    = "PORT"
	EnvLogLevel                = "LOG_LEVEL"
	EnvLogFormat               = "LOG_FORMAT"
	EnvLogDir                  = "LOG_DIR"
	EnvLogFileMaxMB            = "LOG_FILE_MAX_MB"
	EnvEnvironment             = "ENVIRONMENT"
	EnvDBUser                  = "DB_USER"
	EnvDBPassword              = "DB_PASSWORD"
	EnvDBHost                  = "DB_HOST"
	EnvDBPort                  = "DB_PORT"
	EnvDBName                  = "DB_NAME"
	EnvDBMaxConns              = "DB_MAX_CONNS"
	EnvDefaultTimezone         = "DEFAULT_TIMEZONE"
	EnvDailySpinLimitDefault   = "DAILY_SPIN_LIMIT_DEFAULT"
	EnvQualityThresholdDefault = "QUALITY_THRESHOLD_DEFAULT"
	EnvSettingsCacheTTL        = "SETTINGS_CACHE_TTL"
	EnvSpinCommitRetries       = "SPIN_COMMIT_RETRIES"
	EnvUseCachedScorePrefilter = "USE_CACHED_SCORE_PREFILTER"
	EnvRarityTablePath         = "RARITY_TABLE_PATH"
	EnvEventDeadLetterPath     = "EVENT_DEADLETTER_PATH"
	EnvAPIKey                  = "API_KEY"
	EnvTrustedProxies          = "TRUSTED_PROXIES"
)

// Defaults
const (
	DefaultPort                    = 8080
	DefaultLogLevel                = "info"
	DefaultLogFormat               = "text"
	DefaultLogFileMaxMB            = 50
	DefaultEnvironment             = "dev"
	DefaultDBUser                  = "postgres"
	DefaultDBPassword              = "postgres"
	DefaultDBHost                  = "localhost"
	DefaultDBPort                  = "5432"
	DefaultDBName                  = "cineloot"
	DefaultDBMaxConns              = 10
	DefaultTimezone                = "UTC"
	DefaultDailySpinLimit          = 3
	DefaultQualityThreshold        = 83
	DefaultSettingsCacheTTL        = 30 * time.Second
	DefaultSpinCommitRetries       = 3
	DefaultEventDeadLetterFileName = "events_deadletter.jsonl"
)

// Values that ship in .env.example and must not reach production
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
)
