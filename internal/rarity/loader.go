package rarity

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/osse101/CineLoot_Go/internal/logger"
	"github.com/osse101/CineLoot_Go/internal/validation"
)

// TableFile is the on-disk form written by the recalibration job
type TableFile struct {
	Version     string     `json:"version"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
	Population  int        `json:"population,omitempty"`
	Tiers       Table      `json:"tiers"`
}

// LoadTable reads a tier table override, checking it against the table schema
// and the partition rules before returning it.
func LoadTable(ctx context.Context, path string, schemas validation.SchemaValidator) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToReadTable, err)
	}

	if err := schemas.ValidateBytes(data, TableSchemaPath); err != nil {
		return nil, fmt.Errorf("%s for %s: %w", ErrContextSchemaValidation, path, err)
	}

	var file TableFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToParseTable, err)
	}

	if err := file.Tiers.Validate(); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	for _, tier := range file.Tiers {
		log.Debug(LogMsgLoadedTable, LogFieldPath, path, LogFieldTier, tier.Rarity.String(), LogFieldMinScore, tier.MinScore)
	}
	log.Info(LogMsgLoadedTable, LogFieldPath, path)

	return file.Tiers, nil
}

// WriteTable stores table at path in the format LoadTable expects
func WriteTable(path string, table Table, population int, now time.Time) error {
	if err := table.Validate(); err != nil {
		return err
	}

	generated := now.UTC()
	data, err := json.MarshalIndent(TableFile{
		Version:     TableFileVersion,
		GeneratedAt: &generated,
		Population:  population,
		Tiers:       table,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode rarity table: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write rarity table %s: %w", path, err)
	}
	return nil
}
