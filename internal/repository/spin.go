package repository

import (
	"context"

	"github.com/osse101/CineLoot_Go/internal/domain"
)

// Spin defines the data access required by the spin service
type Spin interface {
	// GetEntitlement returns domain.ErrUserNotFound for unknown users
	GetEntitlement(ctx context.Context, userID string) (*domain.SpinEntitlement, error)
	UpdateEntitlement(ctx context.Context, ent domain.SpinEntitlement) error

	BeginSpinTx(ctx context.Context) (SpinTx, error)
}

// SpinTx holds the per-user row lock for the lifetime of one spin attempt.
// Spin and unlock records commit together with the entitlement update.
type SpinTx interface {
	Tx // Commit, Rollback

	GetEntitlementForUpdate(ctx context.Context, userID string) (*domain.SpinEntitlement, error)
	UpdateEntitlement(ctx context.Context, ent domain.SpinEntitlement) error
	UpdateTimezone(ctx context.Context, userID, timezone string) error

	HasUnlock(ctx context.Context, userID string, contentID int64) (bool, error)
	// CreateUnlock reports created=false if the pair was already unlocked
	CreateUnlock(ctx context.Context, unlock domain.UnlockRecord) (created bool, err error)
	// CreateSpinRecord is a no-op returning created=false when the id already exists
	CreateSpinRecord(ctx context.Context, record domain.SpinRecord) (created bool, err error)
}
