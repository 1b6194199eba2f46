package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CineLoot_Go/internal/domain"
)

func TestContentRepository_QueryActiveContent(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewContentRepository(pool)

	good := insertContent(t, pool, contentRow{contentType: "movie", title: "Good", critics: 90, audience: 88, imdb: 8.1, active: true, cached: 91})
	partial := insertContent(t, pool, contentRow{contentType: "movie", title: "Partial", critics: 70, active: true})
	insertContent(t, pool, contentRow{contentType: "movie", title: "Retired", critics: 99, audience: 99, imdb: 9.0, active: false})
	insertContent(t, pool, contentRow{contentType: "series", title: "Show", critics: 80, audience: 80, imdb: 7.0, active: true})

	items, err := repo.QueryActiveContent(ctx, domain.ContentTypeMovie, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, good, items[0].ID)
	assert.Equal(t, domain.ContentTypeMovie, items[0].Type)
	require.NotNil(t, items[0].IMDBRating)
	assert.InDelta(t, 8.1, *items[0].IMDBRating, 1e-9)
	require.NotNil(t, items[0].QualityScore)
	assert.Equal(t, 91, *items[0].QualityScore)

	assert.Equal(t, partial, items[1].ID)
	assert.Nil(t, items[1].AudienceScore)
	assert.Nil(t, items[1].IMDBRating)
	assert.Nil(t, items[1].QualityScore)

	threshold := 85
	filtered, err := repo.QueryActiveContent(ctx, domain.ContentTypeMovie, &threshold)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, good, filtered[0].ID)
}

func TestContentRepository_GetContentByID(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewContentRepository(pool)

	id := insertContent(t, pool, contentRow{contentType: "series", title: "Show", critics: 80, audience: 80, imdb: 7.0, active: true})

	item, err := repo.GetContentByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Show", item.Title)

	missing, err := repo.GetContentByID(ctx, id+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestContentRepository_UpdateCachedScores(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewContentRepository(pool)

	a := insertContent(t, pool, contentRow{contentType: "movie", title: "A", critics: 90, audience: 90, imdb: 7.0, active: true})
	b := insertContent(t, pool, contentRow{contentType: "movie", title: "B", critics: 60, audience: 60, imdb: 7.0, active: true, cached: 99})

	require.NoError(t, repo.UpdateCachedScores(ctx, map[int64]int{a: 90, b: 50}))
	require.NoError(t, repo.UpdateCachedScores(ctx, nil))

	itemA, err := repo.GetContentByID(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 90, *itemA.QualityScore)

	itemB, err := repo.GetContentByID(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 50, *itemB.QualityScore)
}

func TestSettingsRepository(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewSettingsRepository(pool)

	value, found, err := repo.GetSetting(ctx, domain.SettingQualityScoreThreshold)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "83", value)

	_, found, err = repo.GetSetting(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.SetSetting(ctx, domain.SettingQualityScoreThreshold, "75"))
	t.Cleanup(func() { _ = repo.SetSetting(ctx, domain.SettingQualityScoreThreshold, "83") })

	value, _, err = repo.GetSetting(ctx, domain.SettingQualityScoreThreshold)
	require.NoError(t, err)
	assert.Equal(t, "75", value)
}
