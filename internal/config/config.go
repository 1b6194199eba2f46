package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port         int
	LogLevel     string
	LogFormat    string
	LogDir       string
	LogFileMaxMB int
	Environment  string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBMaxConns int

	// DefaultTimezone decides "today" for users without a timezone
	DefaultTimezone string

	// Fallbacks when the settings store has no value
	DailySpinLimitDefault   int
	QualityThresholdDefault int
	SettingsCacheTTL        time.Duration

	SpinCommitRetries       int
	UseCachedScorePrefilter bool

	// RarityTablePath optionally overrides the static rarity table
	RarityTablePath string

	EventDeadLetterPath string

	// APIKey guards admin routes when non-empty
	APIKey string

	// TrustedProxies may set X-Forwarded-For
	TrustedProxies []string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	var errs []error
	cfg := &Config{
		LogLevel:                getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:               getEnv(EnvLogFormat, DefaultLogFormat),
		LogDir:                  getEnv(EnvLogDir, ""),
		Environment:             getEnv(EnvEnvironment, DefaultEnvironment),
		DBUser:                  getEnv(EnvDBUser, DefaultDBUser),
		DBPassword:              getEnv(EnvDBPassword, DefaultDBPassword),
		DBHost:                  getEnv(EnvDBHost, DefaultDBHost),
		DBPort:                  getEnv(EnvDBPort, DefaultDBPort),
		DBName:                  getEnv(EnvDBName, DefaultDBName),
		DefaultTimezone:         getEnv(EnvDefaultTimezone, DefaultTimezone),
		RarityTablePath:         getEnv(EnvRarityTablePath, ""),
		EventDeadLetterPath:     getEnv(EnvEventDeadLetterPath, ""),
		APIKey:                  getEnv(EnvAPIKey, ""),
		TrustedProxies:          parseList(getEnv(EnvTrustedProxies, "")),
		Port:                    parseInt(EnvPort, DefaultPort, &errs),
		LogFileMaxMB:            parseInt(EnvLogFileMaxMB, DefaultLogFileMaxMB, &errs),
		DBMaxConns:              parseInt(EnvDBMaxConns, DefaultDBMaxConns, &errs),
		DailySpinLimitDefault:   parseInt(EnvDailySpinLimitDefault, DefaultDailySpinLimit, &errs),
		QualityThresholdDefault: parseInt(EnvQualityThresholdDefault, DefaultQualityThreshold, &errs),
		SpinCommitRetries:       parseInt(EnvSpinCommitRetries, DefaultSpinCommitRetries, &errs),
		SettingsCacheTTL:        parseDuration(EnvSettingsCacheTTL, DefaultSettingsCacheTTL, &errs),
		UseCachedScorePrefilter: parseBool(EnvUseCachedScorePrefilter, false, &errs),
	}

	if cfg.EventDeadLetterPath == "" && cfg.LogDir != "" {
		cfg.EventDeadLetterPath = filepath.Join(cfg.LogDir, DefaultEventDeadLetterFileName)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and returns every problem found
func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("%s must be between 1 and 65535, got %d", EnvPort, c.Port))
	}
	if c.DBMaxConns <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvDBMaxConns, c.DBMaxConns))
	}
	if c.LogFileMaxMB <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvLogFileMaxMB, c.LogFileMaxMB))
	}
	if c.DailySpinLimitDefault < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", EnvDailySpinLimitDefault, c.DailySpinLimitDefault))
	}
	if c.SpinCommitRetries < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1, got %d", EnvSpinCommitRetries, c.SpinCommitRetries))
	}
	if c.SettingsCacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %s", EnvSettingsCacheTTL, c.SettingsCacheTTL))
	}
	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil || c.DefaultTimezone == "" {
		errs = append(errs, fmt.Errorf("%s %q is not a valid IANA timezone", EnvDefaultTimezone, c.DefaultTimezone))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("%s must be json or text, got %q", EnvLogFormat, c.LogFormat))
	}

	return errors.Join(errs...)
}

// Location returns the parsed DefaultTimezone; call after Validate
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Warnings reports settings that work but should not be used in production
func (c *Config) Warnings() []string {
	var warnings []string
	if c.DBPassword == ExampleDBPassword || c.DBPassword == DefaultDBPassword {
		warnings = append(warnings, "DB_PASSWORD is using an example or default value - please use a secure password")
	}
	if c.APIKey == ExampleAPIKey {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	if c.APIKey == "" {
		warnings = append(warnings, "API_KEY is not set - admin routes are unprotected")
	}
	return warnings
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseInt(key string, defaultValue int, errs *[]error) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s value %q: %w", key, raw, err))
		return defaultValue
	}
	return v
}

func parseDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s value %q: %w", key, raw, err))
		return defaultValue
	}
	return v
}

func parseBool(key string, defaultValue bool, errs *[]error) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s value %q: %w", key, raw, err))
		return defaultValue
	}
	return v
}

// parseList splits a comma separated value, dropping blanks
func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
