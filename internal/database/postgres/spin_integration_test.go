package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CineLoot_Go/internal/domain"
	"github.com/osse101/CineLoot_Go/internal/entitlement"
	"github.com/osse101/CineLoot_Go/internal/event"
	"github.com/osse101/CineLoot_Go/internal/rarity"
	"github.com/osse101/CineLoot_Go/internal/repository"
	"github.com/osse101/CineLoot_Go/internal/selection"
	"github.com/osse101/CineLoot_Go/internal/settings"
	"github.com/osse101/CineLoot_Go/internal/spin"
)

func TestSpinRepository_EntitlementRoundTrip(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewSpinRepository(pool)

	_, err := repo.GetEntitlement(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	require.NoError(t, repo.EnsureUser(ctx, "u1", ""))
	require.NoError(t, repo.EnsureUser(ctx, "u1", "Asia/Tokyo"), "existing users are left alone")

	ent, err := repo.GetEntitlement(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.SpinEntitlement{UserID: "u1"}, *ent)

	ent.DailySpinsUsed = 2
	ent.DailyResetDate = "2026-05-10"
	ent.AdminOverrideSpins = 4
	require.NoError(t, repo.UpdateEntitlement(ctx, *ent))

	tx, err := repo.BeginSpinTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpdateTimezone(ctx, "u1", "Europe/Berlin"))
	assert.ErrorIs(t, tx.UpdateTimezone(ctx, "ghost", "UTC"), domain.ErrUserNotFound)
	require.NoError(t, tx.Commit(ctx))

	got, err := repo.GetEntitlement(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.DailySpinsUsed)
	assert.Equal(t, "2026-05-10", got.DailyResetDate)
	assert.Equal(t, 4, got.AdminOverrideSpins)
	assert.Equal(t, "Europe/Berlin", got.Timezone)

	assert.ErrorIs(t, repo.UpdateEntitlement(ctx, domain.SpinEntitlement{UserID: "ghost"}), domain.ErrUserNotFound)
}

func TestSpinTx_RecordsAreIdempotent(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewSpinRepository(pool)
	require.NoError(t, repo.EnsureUser(ctx, "u1", ""))
	contentID := insertContent(t, pool, contentRow{contentType: "movie", title: "A", critics: 90, audience: 90, imdb: 7.0, active: true})

	unlock := domain.UnlockRecord{UserID: "u1", ContentID: contentID, ContentType: domain.ContentTypeMovie, Rarity: domain.RarityLegendary, UnlockedAt: time.Now()}
	record := domain.SpinRecord{ID: uuid.New(), UserID: "u1", ContentID: contentID, ContentType: domain.ContentTypeMovie, Rarity: domain.RarityLegendary, QualityScore: 90, WasNewUnlock: true, CreatedAt: time.Now()}

	tx, err := repo.BeginSpinTx(ctx)
	require.NoError(t, err)
	created, err := tx.CreateUnlock(ctx, unlock)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = tx.CreateSpinRecord(ctx, record)
	require.NoError(t, err)
	assert.True(t, created)
	require.NoError(t, tx.Commit(ctx))
	repository.SafeRollback(ctx, tx)

	tx, err = repo.BeginSpinTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	has, err := tx.HasUnlock(ctx, "u1", contentID)
	require.NoError(t, err)
	assert.True(t, has)

	created, err = tx.CreateUnlock(ctx, unlock)
	require.NoError(t, err)
	assert.False(t, created)

	// the tx stays usable after the swallowed unique violation
	created, err = tx.CreateSpinRecord(ctx, record)
	require.NoError(t, err)
	assert.False(t, created)
	require.NoError(t, tx.Commit(ctx))

	var spins int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM spins`).Scan(&spins))
	assert.Equal(t, 1, spins)
}

func TestSpinTx_RollbackDiscardsWrites(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewSpinRepository(pool)
	require.NoError(t, repo.EnsureUser(ctx, "u1", ""))

	tx, err := repo.BeginSpinTx(ctx)
	require.NoError(t, err)
	ent, err := tx.GetEntitlementForUpdate(ctx, "u1")
	require.NoError(t, err)
	ent.DailySpinsUsed = 3
	require.NoError(t, tx.UpdateEntitlement(ctx, *ent))
	require.NoError(t, tx.Rollback(ctx))

	err = tx.Rollback(ctx)
	require.Error(t, err)
	assert.Equal(t, domain.ErrMsgTxClosed, err.Error())

	got, err := repo.GetEntitlement(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.DailySpinsUsed)
}

func newPostgresSpinService(pool *pgxpool.Pool) spin.Service {
	settingsSvc := settings.NewService(NewSettingsRepository(pool), settings.Defaults{
		DailySpinLimit:   domain.DefaultDailySpinLimit,
		QualityThreshold: domain.DefaultQualityScoreThreshold,
	}, time.Minute)
	return spin.NewService(
		NewSpinRepository(pool),
		NewContentRepository(pool),
		settingsSvc,
		entitlement.NewLedger(time.UTC),
		rarity.NewDefaultClassifier(),
		selection.NewSelector(),
		event.NewMemoryBus(),
		spin.Config{CommitRetries: 3, RetryDelay: time.Millisecond},
	)
}

func TestSpinService_ConcurrentSpinsAcrossInstances(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	require.NoError(t, NewSpinRepository(pool).EnsureUser(ctx, "u1", ""))
	insertContent(t, pool, contentRow{contentType: "movie", title: "A", critics: 90, audience: 90, imdb: 7.0, active: true})
	insertContent(t, pool, contentRow{contentType: "movie", title: "B", critics: 95, audience: 95, imdb: 8.6, active: true})

	// separate instances only share the row lock in postgres
	services := []spin.Service{newPostgresSpinService(pool), newPostgresSpinService(pool)}

	var (
		mu        sync.Mutex
		successes int
		limited   int
		other     []error
		wg        conc.WaitGroup
	)
	for i := 0; i < 10; i++ {
		svc := services[i%2]
		wg.Go(func() {
			_, err := svc.OpenLootbox(ctx, "u1", "movie")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrDailyLimitReached):
				limited++
			default:
				other = append(other, err)
			}
		})
	}
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 3, successes)
	assert.Equal(t, 7, limited)

	var spins, unlocks, used int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM spins WHERE user_id = 'u1'`).Scan(&spins))
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM unlocks WHERE user_id = 'u1'`).Scan(&unlocks))
	require.NoError(t, pool.QueryRow(ctx, `SELECT daily_spins_used FROM users WHERE user_id = 'u1'`).Scan(&used))
	assert.Equal(t, 3, spins)
	assert.Equal(t, 3, used)
	assert.LessOrEqual(t, unlocks, 2)
}

func TestSpinService_StatusAndGrant(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	require.NoError(t, NewSpinRepository(pool).EnsureUser(ctx, "u1", ""))
	svc := newPostgresSpinService(pool)

	status, err := svc.GrantOverrideSpins(ctx, "u1", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, status.AdminOverride)
	assert.Equal(t, 5, status.Remaining)

	status, err = svc.GetStatus(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, status.Remaining)

	_, err = svc.GetStatus(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
