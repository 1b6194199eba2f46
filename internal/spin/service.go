package spin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/osse101/CineLoot_Go/internal/concurrency"
	"github.com/osse101/CineLoot_Go/internal/domain"
	"github.com/osse101/CineLoot_Go/internal/entitlement"
	"github.com/osse101/CineLoot_Go/internal/event"
	"github.com/osse101/CineLoot_Go/internal/logger"
	"github.com/osse101/CineLoot_Go/internal/metrics"
	"github.com/osse101/CineLoot_Go/internal/rarity"
	"github.com/osse101/CineLoot_Go/internal/repository"
	"github.com/osse101/CineLoot_Go/internal/scoring"
	"github.com/osse101/CineLoot_Go/internal/selection"
	"github.com/osse101/CineLoot_Go/internal/settings"
)

// Service opens loot boxes and manages the daily spin budget
type Service interface {
	// OpenLootbox spends one spin on a weighted pick of qualifying content
	OpenLootbox(ctx context.Context, userID, contentType string) (*domain.SpinOutcome, error)
	// OpenGuestLootbox picks uniformly from active content and persists nothing
	OpenGuestLootbox(ctx context.Context, contentType string) (*domain.SpinOutcome, error)
	GetStatus(ctx context.Context, userID string) (*domain.SpinStatus, error)
	GrantOverrideSpins(ctx context.Context, userID string, amount int) (*domain.SpinStatus, error)
	SetTimezone(ctx context.Context, userID, timezone string) (*domain.SpinStatus, error)
}

// Config tunes the spin transaction
type Config struct {
	// CommitRetries is the total number of attempts for a spin transaction
	CommitRetries int
	RetryDelay    time.Duration
	// UseCachedScorePrefilter lets the catalog drop items by their cached score
	// before rescoring. The threshold is always re-applied to fresh scores.
	UseCachedScorePrefilter bool
}

type service struct {
	spinRepo    repository.Spin
	contentRepo repository.Content
	settingsSvc settings.Service
	ledger      *entitlement.Ledger
	classifier  *rarity.Classifier
	selector    *selection.Selector
	eventBus    event.Bus
	lockManager *concurrency.LockManager
	config      Config
	now         func() time.Time
	newID       func() uuid.UUID
}

// NewService creates a new spin service
func NewService(spinRepo repository.Spin, contentRepo repository.Content, settingsSvc settings.Service, ledger *entitlement.Ledger, classifier *rarity.Classifier, selector *selection.Selector, eventBus event.Bus, config Config) Service {
	if config.CommitRetries <= 0 {
		config.CommitRetries = DefaultCommitRetries
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	return &service{
		spinRepo:    spinRepo,
		contentRepo: contentRepo,
		settingsSvc: settingsSvc,
		ledger:      ledger,
		classifier:  classifier,
		selector:    selector,
		eventBus:    eventBus,
		lockManager: concurrency.NewLockManager(),
		config:      config,
		now:         time.Now,
		newID:       uuid.New,
	}
}

// OpenLootbox runs one spin for userID.
//
// The day rollover is committed on its own first so that it sticks even when
// the spin fails. Selection then runs without holding the row lock, and the
// budget is checked again under the lock before anything is recorded.
func (s *service) OpenLootbox(ctx context.Context, userID, contentType string) (*domain.SpinOutcome, error) {
	log := logger.FromContext(ctx)

	ct, err := domain.ParseContentType(contentType)
	if err != nil {
		return nil, s.rejected(ctx, userID, err)
	}

	unlock := s.lockManager.Lock(userID)
	defer unlock()

	limit, threshold, err := s.spinSettings(ctx)
	if err != nil {
		return nil, s.rejected(ctx, userID, err)
	}

	ent, err := s.rollOver(ctx, userID)
	if err != nil {
		return nil, s.rejected(ctx, userID, err)
	}
	if err := s.ledger.CheckAndReserve(ent, limit); err != nil {
		return nil, s.rejected(ctx, userID, err)
	}

	candidates, err := s.candidates(ctx, ct, &threshold)
	if err != nil {
		return nil, s.rejected(ctx, userID, err)
	}
	picked, err := s.selector.SelectOne(candidates)
	if err != nil {
		return nil, s.rejected(ctx, userID, err)
	}

	spinID := s.newID()
	outcome, err := s.record(ctx, userID, limit, spinID, picked)
	if err != nil {
		return nil, s.rejected(ctx, userID, err)
	}

	log.Info(LogMsgSpinCompleted,
		LogFieldUserID, userID,
		LogFieldSpinID, spinID.String(),
		LogFieldContentID, picked.Item.ID,
		LogFieldRarity, picked.Tier.Rarity.String(),
		LogFieldScore, picked.Score,
		LogFieldNewUnlock, outcome.WasNewUnlock)

	s.publish(ctx, event.NewSpinCompletedEvent(*outcome, userID))
	return outcome, nil
}

// record runs the locked part of a spin as one transaction, retried on
// transient failures. Every attempt reuses spinID so an attempt whose commit
// actually landed is recognised instead of recorded twice.
func (s *service) record(ctx context.Context, userID string, limit int, spinID uuid.UUID, picked selection.Candidate) (*domain.SpinOutcome, error) {
	log := logger.FromContext(ctx)

	var (
		wasNew    bool
		remaining int
	)
	attempt := func() error {
		tx, err := s.spinRepo.BeginSpinTx(ctx)
		if err != nil {
			return err
		}
		defer repository.SafeRollback(ctx, tx)

		ent, err := tx.GetEntitlementForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		// Records are written before the budget check so that an attempt
		// already committed is found first. A rejected attempt rolls them back.
		now := s.now()
		newUnlock, err := s.unlockIfNew(ctx, tx, domain.UnlockRecord{
			UserID:      userID,
			ContentID:   picked.Item.ID,
			ContentType: picked.Item.Type,
			Rarity:      picked.Tier.Rarity,
			UnlockedAt:  now,
		})
		if err != nil {
			return err
		}

		created, err := tx.CreateSpinRecord(ctx, domain.SpinRecord{
			ID:           spinID,
			UserID:       userID,
			ContentID:    picked.Item.ID,
			ContentType:  picked.Item.Type,
			Rarity:       picked.Tier.Rarity,
			QualityScore: picked.Score,
			WasNewUnlock: newUnlock,
			CreatedAt:    now,
		})
		if err != nil {
			return err
		}
		if !created {
			// a previous attempt committed; keep what it reported
			log.Warn(LogMsgSpinAlreadyRecorded, LogFieldSpinID, spinID.String())
			return nil
		}

		if err := s.ledger.CheckAndReserve(ent, limit); err != nil {
			return err
		}
		s.ledger.Commit(ent)
		if err := tx.UpdateEntitlement(ctx, *ent); err != nil {
			return err
		}

		wasNew = newUnlock
		remaining = s.ledger.Remaining(*ent, limit)
		return tx.Commit(ctx)
	}

	err := retry.Do(attempt,
		retry.Context(ctx),
		retry.Attempts(uint(s.config.CommitRetries)),
		retry.Delay(s.config.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			metrics.SpinCommitRetries.Inc()
			log.Warn(LogMsgSpinRetry, LogFieldSpinID, spinID.String(), LogFieldAttempt, n+1, LogFieldError, err)
		}),
	)
	if err != nil {
		return nil, classifyRecordError(err)
	}

	return &domain.SpinOutcome{
		SpinID:         &spinID,
		Content:        picked.Item,
		Rarity:         picked.Tier.Info(),
		QualityScore:   picked.Score,
		WasNewUnlock:   wasNew,
		SpinsRemaining: &remaining,
	}, nil
}

func (s *service) unlockIfNew(ctx context.Context, tx repository.SpinTx, unlock domain.UnlockRecord) (bool, error) {
	has, err := tx.HasUnlock(ctx, unlock.UserID, unlock.ContentID)
	if err != nil || has {
		return false, err
	}
	return tx.CreateUnlock(ctx, unlock)
}

// rollOver persists a day change in its own short transaction
func (s *service) rollOver(ctx context.Context, userID string) (*domain.SpinEntitlement, error) {
	tx, err := s.spinRepo.BeginSpinTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToRollOver, err)
	}
	defer repository.SafeRollback(ctx, tx)

	ent, err := tx.GetEntitlementForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.warnUnknownZone(ctx, ent)
	if !s.ledger.Refresh(ent) {
		return ent, nil
	}
	if err := tx.UpdateEntitlement(ctx, *ent); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToRollOver, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToRollOver, err)
	}
	return ent, nil
}

// OpenGuestLootbox scores and classifies for display only
func (s *service) OpenGuestLootbox(ctx context.Context, contentType string) (*domain.SpinOutcome, error) {
	ct, err := domain.ParseContentType(contentType)
	if err != nil {
		return nil, s.rejected(ctx, "", err)
	}

	candidates, err := s.candidates(ctx, ct, nil)
	if err != nil {
		return nil, s.rejected(ctx, "", err)
	}
	picked, err := s.selector.SelectUniform(candidates)
	if err != nil {
		return nil, s.rejected(ctx, "", err)
	}

	outcome := &domain.SpinOutcome{
		Content:      picked.Item,
		Rarity:       picked.Tier.Info(),
		QualityScore: picked.Score,
		WasNewUnlock: true,
	}

	logger.FromContext(ctx).Info(LogMsgGuestSpinCompleted,
		LogFieldContentID, picked.Item.ID,
		LogFieldRarity, picked.Tier.Rarity.String())
	s.publish(ctx, event.NewSpinCompletedEvent(*outcome, ""))
	return outcome, nil
}

// candidates loads active content of type ct, rescored from raw signals.
// A nil threshold keeps every scorable item.
func (s *service) candidates(ctx context.Context, ct domain.ContentType, threshold *int) ([]selection.Candidate, error) {
	var prefilter *int
	if s.config.UseCachedScorePrefilter {
		prefilter = threshold
	}

	items, err := s.contentRepo.QueryActiveContent(ctx, ct, prefilter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToQueryContent, err)
	}

	scored, rejected := scoring.ScoreAll(items)
	if len(rejected) > 0 {
		metrics.ContentRejectedScoring.Add(float64(len(rejected)))
		log := logger.FromContext(ctx)
		for _, r := range rejected {
			log.Debug(LogMsgContentNotScorable, LogFieldContentID, r.Item.ID, LogFieldError, r.Err)
		}
	}

	out := make([]selection.Candidate, 0, len(scored))
	for _, sc := range scored {
		if !sc.Item.IsActive {
			continue
		}
		if threshold != nil && sc.Score < *threshold {
			continue
		}
		out = append(out, selection.Candidate{
			Item:  sc.Item,
			Score: sc.Score,
			Tier:  s.classifier.Classify(sc.Score),
		})
	}

	metrics.SpinCandidates.WithLabelValues(string(ct)).Observe(float64(len(out)))
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoContentAvailable, ct)
	}
	return out, nil
}

// GetStatus projects today's budget without persisting the rollover
func (s *service) GetStatus(ctx context.Context, userID string) (*domain.SpinStatus, error) {
	limit, err := s.settingsSvc.DailySpinLimit(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadSettings, err)
	}

	ent, err := s.spinRepo.GetEntitlement(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetEntitlement, err)
	}
	s.warnUnknownZone(ctx, ent)

	status := s.ledger.Status(*ent, limit)
	return &status, nil
}

// GrantOverrideSpins banks extra spins for a user
func (s *service) GrantOverrideSpins(ctx context.Context, userID string, amount int) (*domain.SpinStatus, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, amount)
	}
	limit, err := s.settingsSvc.DailySpinLimit(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadSettings, err)
	}

	unlock := s.lockManager.Lock(userID)
	defer unlock()

	tx, err := s.spinRepo.BeginSpinTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGrant, err)
	}
	defer repository.SafeRollback(ctx, tx)

	ent, err := tx.GetEntitlementForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGrant, err)
	}
	if err := s.ledger.Grant(ent, amount); err != nil {
		return nil, err
	}
	if err := tx.UpdateEntitlement(ctx, *ent); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGrant, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGrant, err)
	}

	logger.FromContext(ctx).Info(LogMsgOverrideSpinsGranted,
		LogFieldUserID, userID,
		LogFieldAmount, amount)
	s.publish(ctx, event.NewOverrideSpinGrantedEvent(userID, amount, ent.AdminOverrideSpins))

	status := s.ledger.Status(*ent, limit)
	return &status, nil
}

// SetTimezone stores the zone used to decide the user's "today". An empty
// name clears it so the system default applies. Today's usage moves with the
// user, so a zone change alone never resets the daily budget.
func (s *service) SetTimezone(ctx context.Context, userID, timezone string) (*domain.SpinStatus, error) {
	if err := entitlement.ValidateTimezone(timezone); err != nil {
		return nil, err
	}
	limit, err := s.settingsSvc.DailySpinLimit(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLoadSettings, err)
	}

	unlock := s.lockManager.Lock(userID)
	defer unlock()

	tx, err := s.spinRepo.BeginSpinTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSetTimezone, err)
	}
	defer repository.SafeRollback(ctx, tx)

	ent, err := tx.GetEntitlementForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSetTimezone, err)
	}
	s.ledger.ChangeTimezone(ent, timezone)
	if err := tx.UpdateEntitlement(ctx, *ent); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSetTimezone, err)
	}
	if err := tx.UpdateTimezone(ctx, userID, timezone); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSetTimezone, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSetTimezone, err)
	}

	logger.FromContext(ctx).Info(LogMsgTimezoneUpdated, LogFieldUserID, userID, LogFieldTimezone, timezone)
	status := s.ledger.Status(*ent, limit)
	return &status, nil
}

// warnUnknownZone flags a stored zone this process cannot load
func (s *service) warnUnknownZone(ctx context.Context, ent *domain.SpinEntitlement) {
	if s.ledger.KnownTimezone(*ent) {
		return
	}
	logger.FromContext(ctx).Warn(LogMsgUnknownTimezone,
		LogFieldUserID, ent.UserID,
		LogFieldTimezone, ent.Timezone,
		LogFieldFallback, s.ledger.DefaultLocation().String())
}

func (s *service) spinSettings(ctx context.Context) (limit, threshold int, err error) {
	limit, err = s.settingsSvc.DailySpinLimit(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", ErrContextFailedToLoadSettings, err)
	}
	threshold, err = s.settingsSvc.QualityThreshold(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", ErrContextFailedToLoadSettings, err)
	}
	return limit, threshold, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, LogFieldError, err)
	}
}

// rejected counts the failure by reason and passes it through
func (s *service) rejected(ctx context.Context, userID string, err error) error {
	reason := metrics.ReasonPersistence
	switch {
	case errors.Is(err, domain.ErrDailyLimitReached):
		reason = metrics.ReasonDailyLimit
	case errors.Is(err, domain.ErrNoContentAvailable):
		reason = metrics.ReasonNoContent
	case errors.Is(err, domain.ErrInvalidType):
		reason = metrics.ReasonInvalidType
	case errors.Is(err, domain.ErrUserNotFound):
		reason = metrics.ReasonUserNotFound
	}
	metrics.SpinRejections.WithLabelValues(reason).Inc()

	logger.FromContext(ctx).Debug(LogMsgSpinRejected, LogFieldUserID, userID, "reason", reason, LogFieldError, err)
	return err
}

// isTransient reports whether a failed spin attempt may be retried.
// Business outcomes never are.
func isTransient(err error) bool {
	switch {
	case errors.Is(err, domain.ErrDailyLimitReached),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrInvalidType),
		errors.Is(err, domain.ErrNoContentAvailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}

// classifyRecordError keeps business errors as they are and marks anything
// else as a persistence failure
func classifyRecordError(err error) error {
	if !isTransient(err) || errors.Is(err, domain.ErrPersistenceFailure) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrPersistenceFailure, ErrContextFailedToRecordSpin, err)
}
