package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CineLoot_Go/internal/domain"
	"github.com/osse101/CineLoot_Go/internal/rarity"
	"github.com/osse101/CineLoot_Go/internal/spin"
)

func title(id int64, ct domain.ContentType, critics, audience int) domain.ContentItem {
	imdb := 7.0
	return domain.ContentItem{
		ID: id, Type: ct, Title: "t", IsActive: true,
		CriticsScore: &critics, AudienceScore: &audience, IMDBRating: &imdb,
	}
}

func TestRecalibrate(t *testing.T) {
	var items []domain.ContentItem
	for i := 0; i < 100; i++ {
		items = append(items, title(int64(i+1), domain.ContentTypeMovie, i, i))
	}
	broken := domain.ContentItem{ID: 999, Type: domain.ContentTypeSeries, Title: "no scores", IsActive: true}
	items = append(items, broken)

	result, err := recalibrate(items, rarity.DefaultShares)
	require.NoError(t, err)

	require.Len(t, result.Rejected, 1)
	assert.Equal(t, int64(999), result.Rejected[0].Item.ID)
	assert.Len(t, result.Scores, 100)
	require.NoError(t, result.Table.Validate())

	mythic, ok := result.Table.Tier(domain.RarityMythic)
	require.True(t, ok)
	assert.Greater(t, mythic.MinScore, 80)
}

func TestRecalibrate_NothingScorable(t *testing.T) {
	_, err := recalibrate([]domain.ContentItem{{ID: 1, Type: domain.ContentTypeMovie}}, rarity.DefaultShares)
	assert.Error(t, err)
}

func TestLoadCatalogue_MergesTypes(t *testing.T) {
	repo := spin.NewFakeRepository()
	repo.AddContent(title(1, domain.ContentTypeMovie, 90, 90))
	repo.AddContent(title(2, domain.ContentTypeSeries, 70, 70))

	items, err := loadCatalogue(context.Background(), repo)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
