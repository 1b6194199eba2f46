package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CineLoot_Go/internal/domain"
	"github.com/osse101/CineLoot_Go/internal/repository"
)

// SpinRepository stores entitlements, spin records and unlocks
type SpinRepository struct {
	db *pgxpool.Pool
}

var _ repository.Spin = (*SpinRepository)(nil)

// NewSpinRepository creates a new SpinRepository
func NewSpinRepository(db *pgxpool.Pool) *SpinRepository {
	return &SpinRepository{db: db}
}

// EnsureUser creates an entitlement row for userID if none exists
func (r *SpinRepository) EnsureUser(ctx context.Context, userID, timezone string) error {
	if _, err := r.db.Exec(ctx, queryInsertUser, userID, timezone); err != nil {
		return persistenceError(ErrMsgFailedToInsertUser, err)
	}
	return nil
}

func (r *SpinRepository) GetEntitlement(ctx context.Context, userID string) (*domain.SpinEntitlement, error) {
	return getEntitlement(ctx, r.db, queryGetEntitlement, userID)
}

func (r *SpinRepository) UpdateEntitlement(ctx context.Context, ent domain.SpinEntitlement) error {
	return updateEntitlement(ctx, r.db, ent)
}

// BeginSpinTx starts the transaction a spin attempt runs in
func (r *SpinRepository) BeginSpinTx(ctx context.Context) (repository.SpinTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, persistenceError(ErrMsgFailedToBeginTransaction, err)
	}
	return &spinTx{tx: tx}, nil
}

// querier is the subset of pgx shared by the pool and a transaction
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type spinTx struct {
	tx pgx.Tx
}

func (t *spinTx) GetEntitlementForUpdate(ctx context.Context, userID string) (*domain.SpinEntitlement, error) {
	return getEntitlement(ctx, t.tx, queryGetEntitlementForUpdate, userID)
}

func (t *spinTx) UpdateEntitlement(ctx context.Context, ent domain.SpinEntitlement) error {
	return updateEntitlement(ctx, t.tx, ent)
}

func (t *spinTx) UpdateTimezone(ctx context.Context, userID, timezone string) error {
	tag, err := t.tx.Exec(ctx, queryUpdateTimezone, userID, timezone)
	if err != nil {
		return persistenceError(ErrMsgFailedToUpdateTimezone, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return nil
}

func (t *spinTx) HasUnlock(ctx context.Context, userID string, contentID int64) (bool, error) {
	var exists bool
	if err := t.tx.QueryRow(ctx, queryHasUnlock, userID, contentID).Scan(&exists); err != nil {
		return false, persistenceError(ErrMsgFailedToCheckUnlock, err)
	}
	return exists, nil
}

// CreateUnlock reports created=false when the pair already exists. The insert
// runs under a savepoint so a unique violation leaves the spin tx usable.
func (t *spinTx) CreateUnlock(ctx context.Context, unlock domain.UnlockRecord) (bool, error) {
	sp, err := t.tx.Begin(ctx)
	if err != nil {
		return false, persistenceError(ErrMsgFailedToInsertUnlock, err)
	}

	_, err = sp.Exec(ctx, queryInsertUnlock,
		unlock.UserID,
		unlock.ContentID,
		string(unlock.ContentType),
		unlock.Rarity.String(),
		unlock.UnlockedAt,
	)
	if err != nil {
		_ = sp.Rollback(ctx)
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, persistenceError(ErrMsgFailedToInsertUnlock, err)
	}
	if err := sp.Commit(ctx); err != nil {
		return false, persistenceError(ErrMsgFailedToInsertUnlock, err)
	}
	return true, nil
}

// CreateSpinRecord is a no-op returning created=false when the id is already stored
func (t *spinTx) CreateSpinRecord(ctx context.Context, record domain.SpinRecord) (bool, error) {
	tag, err := t.tx.Exec(ctx, queryInsertSpin,
		record.ID,
		record.UserID,
		record.ContentID,
		string(record.ContentType),
		record.Rarity.String(),
		record.QualityScore,
		record.WasNewUnlock,
		record.CreatedAt,
	)
	if err != nil {
		return false, persistenceError(ErrMsgFailedToInsertSpin, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (t *spinTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return persistenceError(ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// Rollback returns an error carrying domain.ErrMsgTxClosed when the tx already ended
func (t *spinTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return errors.New(domain.ErrMsgTxClosed)
	}
	return err
}

func getEntitlement(ctx context.Context, q querier, query, userID string) (*domain.SpinEntitlement, error) {
	var (
		ent      domain.SpinEntitlement
		used     int32
		override int32
	)
	err := q.QueryRow(ctx, query, userID).Scan(
		&ent.UserID,
		&used,
		&ent.DailyResetDate,
		&override,
		&ent.Timezone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
		}
		return nil, persistenceError(ErrMsgFailedToGetEntitlement, err)
	}
	ent.DailySpinsUsed = int(used)
	ent.AdminOverrideSpins = int(override)
	return &ent, nil
}

func updateEntitlement(ctx context.Context, q querier, ent domain.SpinEntitlement) error {
	tag, err := q.Exec(ctx, queryUpdateEntitlement,
		ent.UserID,
		ent.DailySpinsUsed,
		ent.DailyResetDate,
		ent.AdminOverrideSpins,
	)
	if err != nil {
		return persistenceError(ErrMsgFailedToUpdateEntitlement, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, ent.UserID)
	}
	return nil
}
