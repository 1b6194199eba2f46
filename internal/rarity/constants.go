package rarity

import "github.com/osse101/CineLoot_Go/internal/domain"

// ============================================================================
// Default Tier Table
// ============================================================================

// Inclusive lower bounds. Common has no lower bound and catches everything else.
const (
	MythicMinScore    = 95
	LegendaryMinScore = 90
	EpicMinScore      = 85
	RareMinScore      = 80
	UncommonMinScore  = 75
)

// Per-tier selection weights. A tier's weight is shared by all of its members.
const (
	MythicWeight    = 0.05
	LegendaryWeight = 0.10
	EpicWeight      = 0.20
	RareWeight      = 0.35
	UncommonWeight  = 0.20
	CommonWeight    = 0.10
)

// DefaultShares is the share of the scored population the recalibration job
// places at or above each tier, cumulative from the top. Common takes the rest.
var DefaultShares = map[domain.Rarity]float64{
	domain.RarityMythic:    0.05,
	domain.RarityLegendary: 0.10,
	domain.RarityEpic:      0.15,
	domain.RarityRare:      0.20,
	domain.RarityUncommon:  0.25,
}

// ============================================================================
// Configuration
// ============================================================================

// TableSchemaPath locates the tier table schema inside configs.Schemas
const TableSchemaPath = "schemas/rarity_tiers.schema.json"

// TableFileVersion is the only table file version understood by LoadTable
const TableFileVersion = "1"

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrContextFailedToReadTable  = "failed to read rarity table file"
	ErrContextFailedToParseTable = "failed to parse rarity table"
	ErrContextSchemaValidation   = "schema validation failed"
	ErrContextEmptyPopulation    = "cannot rebalance an empty score population"
	ErrContextInvalidShares      = "invalid tier shares"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgLoadedTable = "Loaded rarity table override"
	LogFieldPath      = "path"
	LogFieldTier      = "tier"
	LogFieldMinScore  = "min_score"
)
