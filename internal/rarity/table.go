package rarity

import (
	"errors"
	"fmt"
	"math"

	"github.com/osse101/CineLoot_Go/internal/domain"
)

// ErrInvalidTable is returned when a tier table does not partition the integers
var ErrInvalidTable = errors.New("invalid rarity table")

// Tier is one bucket of the classifier. MinScore is an inclusive lower bound
// and is ignored for common.
type Tier struct {
	Rarity   domain.Rarity `json:"rarity"`
	MinScore int           `json:"min_score,omitempty"`
	Label    string        `json:"label"`
	Icon     string        `json:"icon"`
	Weight   float64       `json:"weight"`
}

// Info is the display projection of the tier
func (t Tier) Info() domain.RarityInfo {
	return domain.RarityInfo{Tier: t.Rarity, Label: t.Label, Icon: t.Icon}
}

// Table holds one tier per rarity in ascending order, common first
type Table []Tier

// DefaultTable returns the canonical static tier table
func DefaultTable() Table {
	return Table{
		{Rarity: domain.RarityCommon, Label: "Common", Icon: "⚪", Weight: CommonWeight},
		{Rarity: domain.RarityUncommon, MinScore: UncommonMinScore, Label: "Uncommon", Icon: "🟢", Weight: UncommonWeight},
		{Rarity: domain.RarityRare, MinScore: RareMinScore, Label: "Rare", Icon: "🔵", Weight: RareWeight},
		{Rarity: domain.RarityEpic, MinScore: EpicMinScore, Label: "Epic", Icon: "🟣", Weight: EpicWeight},
		{Rarity: domain.RarityLegendary, MinScore: LegendaryMinScore, Label: "Legendary", Icon: "🟠", Weight: LegendaryWeight},
		{Rarity: domain.RarityMythic, MinScore: MythicMinScore, Label: "Mythic", Icon: "🔴", Weight: MythicWeight},
	}
}

// Validate checks that the table covers every rarity exactly once, in order,
// with strictly increasing thresholds and positive weights.
func (t Table) Validate() error {
	if len(t) != len(domain.Rarities) {
		return fmt.Errorf("%w: want %d tiers, got %d", ErrInvalidTable, len(domain.Rarities), len(t))
	}

	for i, tier := range t {
		if tier.Rarity != domain.Rarities[i] {
			return fmt.Errorf("%w: position %d holds %s, want %s", ErrInvalidTable, i, tier.Rarity, domain.Rarities[i])
		}
		if math.IsNaN(tier.Weight) || math.IsInf(tier.Weight, 0) || tier.Weight <= 0 {
			return fmt.Errorf("%w: %s weight must be positive, got %v", ErrInvalidTable, tier.Rarity, tier.Weight)
		}
		if tier.Label == "" {
			return fmt.Errorf("%w: %s has no label", ErrInvalidTable, tier.Rarity)
		}
		// uncommon has nothing to compare against since common is unbounded
		if i >= 2 && tier.MinScore <= t[i-1].MinScore {
			return fmt.Errorf("%w: %s threshold %d must exceed %s threshold %d",
				ErrInvalidTable, tier.Rarity, tier.MinScore, t[i-1].Rarity, t[i-1].MinScore)
		}
	}
	return nil
}

// Tier returns the entry for r
func (t Table) Tier(r domain.Rarity) (Tier, bool) {
	for _, tier := range t {
		if tier.Rarity == r {
			return tier, true
		}
	}
	return Tier{}, false
}

// TotalWeight sums the selection weight of every tier
func (t Table) TotalWeight() float64 {
	var total float64
	for _, tier := range t {
		total += tier.Weight
	}
	return total
}
