package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/CineLoot_Go/configs"
	"github.com/osse101/CineLoot_Go/internal/rarity"
	"github.com/osse101/CineLoot_Go/internal/validation"
)

// LoadClassifier uses the built-in table unless path names an override
func LoadClassifier(ctx context.Context, path string) (*rarity.Classifier, error) {
	if path == "" {
		slog.Info(LogMsgRarityTableDefault)
		return rarity.NewDefaultClassifier(), nil
	}

	table, err := rarity.LoadTable(ctx, path, validation.NewSchemaValidator(configs.Schemas))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadRarityTable, err)
	}

	classifier, err := rarity.NewClassifier(table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadRarityTable, err)
	}

	slog.Info(LogMsgRarityTableLoaded, "path", path, "tiers", len(table))
	return classifier, nil
}
