package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sourcegraph/conc/pool"

	"github.com/osse101/CineLoot_Go/internal/config"
	"github.com/osse101/CineLoot_Go/internal/database/postgres"
	"github.com/osse101/CineLoot_Go/internal/domain"
	"github.com/osse101/CineLoot_Go/internal/rarity"
	"github.com/osse101/CineLoot_Go/internal/repository"
	"github.com/osse101/CineLoot_Go/internal/scoring"
)

const defaultTablePath = "configs/rarity_tiers.json"

type RecalibrateCommand struct{}

func (c *RecalibrateCommand) Name() string {
	return "recalibrate"
}

func (c *RecalibrateCommand) Description() string {
	return "Rebuild the rarity table from the active catalogue (-out, -write-cache, -dry-run)"
}

func (c *RecalibrateCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	out := fs.String("out", defaultTablePath, "where to write the tier table")
	writeCache := fs.Bool("write-cache", false, "also refresh the cached quality_score column")
	dryRun := fs.Bool("dry-run", false, "print the table without writing anything")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withPool(func(ctx context.Context, db *pgxpool.Pool, _ *config.Config) error {
		content := postgres.NewContentRepository(db)

		items, err := loadCatalogue(ctx, content)
		if err != nil {
			return err
		}
		PrintInfo("Loaded %d active titles", len(items))

		result, err := recalibrate(items, rarity.DefaultShares)
		if err != nil {
			return err
		}
		for _, r := range result.Rejected {
			PrintWarning("Skipped %d %q: %v", r.Item.ID, r.Item.Title, r.Err)
		}
		printTable(result.Table)

		if *dryRun {
			PrintWarning("Dry run, nothing written")
			return nil
		}

		if err := rarity.WriteTable(*out, result.Table, len(result.Scores), time.Now()); err != nil {
			return err
		}
		PrintSuccess("Wrote %s, set RARITY_TABLE_PATH to use it", *out)

		if *writeCache {
			if err := content.UpdateCachedScores(ctx, result.Scores); err != nil {
				return err
			}
			PrintSuccess("Refreshed %d cached scores", len(result.Scores))
		}
		return nil
	})
}

// loadCatalogue fetches every content type concurrently
func loadCatalogue(ctx context.Context, content repository.Content) ([]domain.ContentItem, error) {
	p := pool.NewWithResults[[]domain.ContentItem]().WithContext(ctx)
	for _, ct := range domain.ContentTypes {
		p.Go(func(ctx context.Context) ([]domain.ContentItem, error) {
			return content.QueryActiveContent(ctx, ct, nil)
		})
	}

	batches, err := p.Wait()
	if err != nil {
		return nil, err
	}

	var items []domain.ContentItem
	for _, batch := range batches {
		items = append(items, batch...)
	}
	return items, nil
}

type recalibration struct {
	Table    rarity.Table
	Scores   map[int64]int
	Rejected []scoring.Rejected
}

func recalibrate(items []domain.ContentItem, shares map[domain.Rarity]float64) (*recalibration, error) {
	scored, rejected := scoring.ScoreAll(items)
	if len(scored) == 0 {
		return nil, fmt.Errorf("no scorable content among %d titles", len(items))
	}

	population := make([]int, len(scored))
	scores := make(map[int64]int, len(scored))
	for i, s := range scored {
		population[i] = s.Score
		scores[s.Item.ID] = s.Score
	}

	table, err := rarity.Rebalance(population, shares)
	if err != nil {
		return nil, err
	}
	return &recalibration{Table: table, Scores: scores, Rejected: rejected}, nil
}

func printTable(table rarity.Table) {
	PrintHeader("Rarity table")
	for i := len(table) - 1; i >= 0; i-- {
		t := table[i]
		if t.Rarity == domain.RarityCommon {
			fmt.Fprintf(out, "  %s %-10s  below %d  weight %.2f\n", t.Icon, t.Label, table[i+1].MinScore, t.Weight)
			continue
		}
		fmt.Fprintf(out, "  %s %-10s  >= %3d    weight %.2f\n", t.Icon, t.Label, t.MinScore, t.Weight)
	}
}
