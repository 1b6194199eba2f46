package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CineLoot_Go/internal/config"
	"github.com/osse101/CineLoot_Go/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status")
	}
	subcmd := args[0]

	return withPool(func(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config) error {
		switch subcmd {
		case "up":
			if err := database.Migrate(ctx, pool); err != nil {
				return err
			}
		case "down":
			if cfg.Environment != "dev" && !confirm(os.Stdin, fmt.Sprintf("Roll back one migration on %s?", cfg.DBName)) {
				PrintWarning("Aborted")
				return nil
			}
			if err := database.MigrateDown(ctx, pool); err != nil {
				return err
			}
		case "status":
		default:
			return fmt.Errorf("unknown migrate subcommand %q", subcmd)
		}

		version, err := database.SchemaVersion(ctx, pool)
		if err != nil {
			return err
		}
		PrintSuccess("Schema version %d", version)
		return nil
	})
}
