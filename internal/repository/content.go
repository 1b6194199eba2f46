package repository

import (
	"context"

	"github.com/osse101/CineLoot_Go/internal/domain"
)

// Content is the read-only content catalog
type Content interface {
	// QueryActiveContent returns active items of type t in a stable order.
	// minQualityScore, when set, filters on the cached score column only.
	QueryActiveContent(ctx context.Context, t domain.ContentType, minQualityScore *int) ([]domain.ContentItem, error)
	GetContentByID(ctx context.Context, id int64) (*domain.ContentItem, error)
}

// ContentScores is implemented by catalogs that can store recomputed scores
type ContentScores interface {
	UpdateCachedScores(ctx context.Context, scores map[int64]int) error
}
