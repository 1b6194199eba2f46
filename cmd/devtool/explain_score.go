package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CineLoot_Go/internal/bootstrap"
	"github.com/osse101/CineLoot_Go/internal/config"
	"github.com/osse101/CineLoot_Go/internal/database/postgres"
	"github.com/osse101/CineLoot_Go/internal/scoring"
)

type ExplainScoreCommand struct{}

func (c *ExplainScoreCommand) Name() string {
	return "explain-score"
}

func (c *ExplainScoreCommand) Description() string {
	return "Show every term of a title's quality score: explain-score <content_id>"
}

func (c *ExplainScoreCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("content id required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid content id %q: %w", args[0], err)
	}

	return withPool(func(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config) error {
		item, err := postgres.NewContentRepository(pool).GetContentByID(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("content %d not found", id)
		}

		b, err := scoring.Explain(*item)
		if err != nil {
			return err
		}

		classifier, err := bootstrap.LoadClassifier(ctx, cfg.RarityTablePath)
		if err != nil {
			return err
		}
		tier := classifier.Classify(b.Score)

		PrintHeader(fmt.Sprintf("%s (%s, id %d)", item.Title, item.Type, item.ID))
		fmt.Fprintf(out, "  base (80/20 blend)   %6.1f\n", b.Base)
		fmt.Fprintf(out, "  critics penalty      %+6d\n", b.CriticsPenalty)
		fmt.Fprintf(out, "  low critics penalty  %+6d\n", b.LowCriticsPenalty)
		fmt.Fprintf(out, "  mainstream penalty   %+6d\n", b.MainstreamPenalty)
		fmt.Fprintf(out, "  certified fresh      %+6d\n", b.CertifiedBonus)
		fmt.Fprintf(out, "  verified hot         %+6d\n", b.HotBonus)
		fmt.Fprintf(out, "  imdb bonus           %+6d\n", b.IMDBBonus)
		fmt.Fprintf(out, "  score                %6d\n", b.Score)
		PrintSuccess("%s %s", tier.Icon, tier.Label)

		if item.QualityScore != nil && *item.QualityScore != b.Score {
			PrintWarning("Cached score %d is stale, run: devtool recalibrate -write-cache", *item.QualityScore)
		}
		return nil
	})
}
