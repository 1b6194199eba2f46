package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CineLoot_Go/internal/config"
	"github.com/osse101/CineLoot_Go/internal/database"
)

type CheckDBCommand struct{}

func (c *CheckDBCommand) Name() string {
	return "check-db"
}

func (c *CheckDBCommand) Description() string {
	return "Check that the database accepts connections and report the schema version"
}

func (c *CheckDBCommand) Run(args []string) error {
	PrintHeader("Checking database...")

	return withPool(func(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config) error {
		PrintSuccess("Connected to %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)

		version, err := database.SchemaVersion(ctx, pool)
		if err != nil {
			return err
		}
		if version == 0 {
			PrintWarning("No migrations applied, run: devtool migrate up")
			return nil
		}
		PrintSuccess("Schema version %d", version)
		return nil
	})
}
