package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CineLoot_Go/internal/domain"
	"github.com/osse101/CineLoot_Go/internal/repository"
)

// ContentRepository reads the content catalog
type ContentRepository struct {
	db *pgxpool.Pool
}

var (
	_ repository.Content       = (*ContentRepository)(nil)
	_ repository.ContentScores = (*ContentRepository)(nil)
)

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: db}
}

// QueryActiveContent returns active items of type t ordered by id
func (r *ContentRepository) QueryActiveContent(ctx context.Context, t domain.ContentType, minQualityScore *int) ([]domain.ContentItem, error) {
	rows, err := r.db.Query(ctx, queryActiveContent, string(t), ptrToInt4(minQualityScore))
	if err != nil {
		return nil, persistenceError(ErrMsgFailedToQueryContent, err)
	}
	defer rows.Close()

	var items []domain.ContentItem
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, persistenceError(ErrMsgFailedToScanContent, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError(ErrMsgFailedToQueryContent, err)
	}
	return items, nil
}

// GetContentByID returns nil when the item does not exist
func (r *ContentRepository) GetContentByID(ctx context.Context, id int64) (*domain.ContentItem, error) {
	item, err := scanContent(r.db.QueryRow(ctx, queryContentByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, persistenceError(ErrMsgFailedToQueryContent, err)
	}
	return &item, nil
}

// UpdateCachedScores writes recomputed scores in one batch
func (r *ContentRepository) UpdateCachedScores(ctx context.Context, scores map[int64]int) error {
	if len(scores) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for id, score := range scores {
		batch.Queue(queryUpdateCachedScore, id, score)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return persistenceError(ErrMsgFailedToUpdateScores, err)
	}
	return nil
}

func scanContent(row rowScanner) (domain.ContentItem, error) {
	var (
		item          domain.ContentItem
		contentType   string
		critics       pgtype.Int4
		audience      pgtype.Int4
		imdb          pgtype.Float8
		cachedQuality pgtype.Int4
		year          int32
	)
	err := row.Scan(
		&item.ID,
		&contentType,
		&item.Title,
		&critics,
		&audience,
		&imdb,
		&item.IsCertifiedFresh,
		&item.IsVerifiedHot,
		&item.IsActive,
		&item.PosterURL,
		&year,
		&cachedQuality,
	)
	if err != nil {
		return domain.ContentItem{}, err
	}

	item.Type = domain.ContentType(contentType)
	item.Year = int(year)
	item.CriticsScore = ptrInt(critics)
	item.AudienceScore = ptrInt(audience)
	item.QualityScore = ptrInt(cachedQuality)
	if imdb.Valid {
		v := imdb.Float64
		item.IMDBRating = &v
	}
	return item, nil
}

// ptrInt converts a pgtype.Int4 to *int, nil when NULL
func ptrInt(i pgtype.Int4) *int {
	if !i.Valid {
		return nil
	}
	v := int(i.Int32)
	return &v
}
