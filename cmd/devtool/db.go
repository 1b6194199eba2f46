package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CineLoot_Go/internal/config"
	"github.com/osse101/CineLoot_Go/internal/database"
)

const commandTimeout = 2 * time.Minute

// connect opens a small pool using the same environment as the server
func connect(ctx context.Context) (*pgxpool.Pool, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolConfig{MaxConns: 4})
	if err != nil {
		return nil, nil, err
	}
	return pool, cfg, nil
}

// withPool runs fn with a connected pool and a bounded context
func withPool(fn func(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	pool, cfg, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, pool, cfg)
}
