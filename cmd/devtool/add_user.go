package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CineLoot_Go/internal/config"
	"github.com/osse101/CineLoot_Go/internal/database/postgres"
	"github.com/osse101/CineLoot_Go/internal/entitlement"
)

type AddUserCommand struct{}

func (c *AddUserCommand) Name() string {
	return "add-user"
}

func (c *AddUserCommand) Description() string {
	return "Create a user with a fresh spin entitlement: add-user <user_id> [timezone]"
}

func (c *AddUserCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("user id required")
	}
	userID := args[0]

	var tz string
	if len(args) > 1 {
		tz = args[1]
		if err := entitlement.ValidateTimezone(tz); err != nil {
			return err
		}
	}

	return withPool(func(ctx context.Context, pool *pgxpool.Pool, _ *config.Config) error {
		if err := postgres.NewSpinRepository(pool).EnsureUser(ctx, userID, tz); err != nil {
			return err
		}
		PrintSuccess("User %s is ready", userID)
		return nil
	})
}
