package rarity

import (
	"fmt"
	"math"
	"slices"

	"github.com/osse101/CineLoot_Go/internal/domain"
)

// shareEpsilon absorbs float drift in the running share sum
const shareEpsilon = 1e-9

// Rebalance derives thresholds from a score population so that roughly
// shares[r] of it lands in each tier above common. Labels, icons and weights
// are kept from DefaultTable. Ties at a cut point all go to the higher tier.
func Rebalance(scores []int, shares map[domain.Rarity]float64) (Table, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTable, ErrContextEmptyPopulation)
	}

	var total float64
	for _, r := range domain.Rarities[1:] {
		share, ok := shares[r]
		if !ok || math.IsNaN(share) || share <= 0 || share >= 1 {
			return nil, fmt.Errorf("%w: %s: %s share %v", ErrInvalidTable, ErrContextInvalidShares, r, share)
		}
		total += share
	}
	if total >= 1 {
		return nil, fmt.Errorf("%w: %s: shares above common sum to %v", ErrInvalidTable, ErrContextInvalidShares, total)
	}

	sorted := slices.Clone(scores)
	slices.SortFunc(sorted, func(a, b int) int { return b - a })

	table := DefaultTable()
	n := float64(len(sorted))
	cumulative := 0.0
	prev := math.MaxInt
	for i := len(table) - 1; i > 0; i-- {
		cumulative += shares[table[i].Rarity]
		idx := int(math.Ceil(cumulative*n-shareEpsilon)) - 1
		idx = max(0, min(idx, len(sorted)-1))

		threshold := sorted[idx]
		if threshold >= prev {
			threshold = prev - 1
		}
		table[i].MinScore = threshold
		prev = threshold
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
