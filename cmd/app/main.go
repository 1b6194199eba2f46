package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"github.com/osse101/CineLoot_Go/internal/bootstrap"
	"github.com/osse101/CineLoot_Go/internal/config"
	"github.com/osse101/CineLoot_Go/internal/database"
	"github.com/osse101/CineLoot_Go/internal/entitlement"
	"github.com/osse101/CineLoot_Go/internal/selection"
	"github.com/osse101/CineLoot_Go/internal/server"
	"github.com/osse101/CineLoot_Go/internal/settings"
	"github.com/osse101/CineLoot_Go/internal/spin"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("cineloot: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logCloser, err := bootstrap.SetupLogger(cfg, Version)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{MaxConns: cfg.DBMaxConns})
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	bootstrap.RegisterEventHandlers(events.Bus)

	classifier, err := bootstrap.LoadClassifier(ctx, cfg.RarityTablePath)
	if err != nil {
		return err
	}

	settingsSvc := settings.NewService(repos.Settings, settings.Defaults{
		DailySpinLimit:   cfg.DailySpinLimitDefault,
		QualityThreshold: cfg.QualityThresholdDefault,
	}, cfg.SettingsCacheTTL)

	spinSvc := spin.NewService(
		repos.Spin,
		repos.Content,
		settingsSvc,
		entitlement.NewLedger(cfg.Location()),
		classifier,
		selection.NewSelector(),
		events.Publisher,
		spin.Config{
			CommitRetries:           cfg.SpinCommitRetries,
			UseCachedScorePrefilter: cfg.UseCachedScorePrefilter,
		},
	)
	slog.Info(bootstrap.LogMsgSpinServiceReady,
		"commit_retries", cfg.SpinCommitRetries,
		"cached_score_prefilter", cfg.UseCachedScorePrefilter)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, dbPool, spinSvc)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{Server: srv, Events: events})

	return runErr
}
