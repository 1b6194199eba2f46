package database

import "time"

// Connection pool defaults
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
	DefaultMaxConnIdle    = 30 * time.Minute
	DefaultMaxConnLife    = time.Hour
)

// Migration settings
const (
	MigrationsDir    = "migrations"
	MigrationDialect = "postgres"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToSetDialect      = "failed to set goose dialect"
	ErrMsgFailedToMigrate         = "failed to run migrations"
	ErrMsgFailedToGetVersion      = "failed to get schema version"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsStarting              = "Applying database migrations"
	LogMsgMigrationsComplete              = "Database migrations complete"
)
