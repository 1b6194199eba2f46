package bootstrap

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/osse101/CineLoot_Go/internal/config"
	"github.com/osse101/CineLoot_Go/internal/logger"
)

// SetupLogger installs the default slog logger from cfg. The returned closer
// releases the rotated log file, if any.
func SetupLogger(cfg *config.Config, version string) (io.Closer, error) {
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	logCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, ServiceName, version, cfg.Environment, addSource)
	if cfg.LogDir != "" {
		logCfg = logCfg.WithFile(cfg.LogDir, cfg.LogFileMaxMB)
	}

	closer, err := logger.InitLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedInitLogger, err)
	}

	slog.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", version)

	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"default_timezone", cfg.DefaultTimezone)

	for _, w := range cfg.Warnings() {
		slog.Warn(LogMsgConfigWarning, "warning", w)
	}

	return closer, nil
}
