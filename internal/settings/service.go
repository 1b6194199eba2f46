package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/CineLoot_Go/internal/domain"
	"github.com/osse101/CineLoot_Go/internal/logger"
	"github.com/osse101/CineLoot_Go/internal/repository"
)

// Service exposes the admin-tunable spin settings as typed values
type Service interface {
	DailySpinLimit(ctx context.Context) (int, error)
	QualityThreshold(ctx context.Context) (int, error)
	// Invalidate drops cached values so the next read hits the store
	Invalidate()
}

// Defaults apply when a key is missing or holds an unusable value
type Defaults struct {
	DailySpinLimit   int
	QualityThreshold int
}

type service struct {
	repo     repository.Settings
	defaults Defaults
	cache    *expirable.LRU[string, int]
}

// NewService caches parsed settings for ttl
func NewService(repo repository.Settings, defaults Defaults, ttl time.Duration) Service {
	return &service{
		repo:     repo,
		defaults: defaults,
		cache:    expirable.NewLRU[string, int](CacheSize, nil, ttl),
	}
}

func (s *service) DailySpinLimit(ctx context.Context) (int, error) {
	return s.getInt(ctx, domain.SettingDailySpinLimit, s.defaults.DailySpinLimit, func(v int) bool { return v >= 0 })
}

func (s *service) QualityThreshold(ctx context.Context) (int, error) {
	return s.getInt(ctx, domain.SettingQualityScoreThreshold, s.defaults.QualityThreshold, func(int) bool { return true })
}

func (s *service) Invalidate() {
	s.cache.Purge()
}

func (s *service) getInt(ctx context.Context, key string, fallback int, valid func(int) bool) (int, error) {
	if v, ok := s.cache.Get(key); ok {
		return v, nil
	}

	raw, found, err := s.repo.GetSetting(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", ErrContextFailedToReadSetting, key, err)
	}

	value := fallback
	if found {
		parsed, perr := strconv.Atoi(strings.TrimSpace(raw))
		switch {
		case perr != nil:
			logger.FromContext(ctx).Warn(LogMsgUnparseableSetting, LogFieldKey, key, LogFieldValue, raw, LogFieldDefault, fallback)
		case !valid(parsed):
			logger.FromContext(ctx).Warn(LogMsgOutOfRangeSetting, LogFieldKey, key, LogFieldValue, raw, LogFieldDefault, fallback)
		default:
			value = parsed
		}
	}

	s.cache.Add(key, value)
	return value, nil
}
