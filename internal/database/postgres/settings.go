package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CineLoot_Go/internal/repository"
)

// SettingsRepository reads the admin key/value settings
type SettingsRepository struct {
	db *pgxpool.Pool
}

var _ repository.Settings = (*SettingsRepository)(nil)

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting returns found=false when the key is absent
func (r *SettingsRepository) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	if err := r.db.QueryRow(ctx, queryGetSetting, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, persistenceError(ErrMsgFailedToGetSetting, err)
	}
	return value, true, nil
}

// SetSetting inserts or replaces a setting
func (r *SettingsRepository) SetSetting(ctx context.Context, key, value string) error {
	if _, err := r.db.Exec(ctx, queryUpsertSetting, key, value); err != nil {
		return persistenceError(ErrMsgFailedToSetSetting, err)
	}
	return nil
}
