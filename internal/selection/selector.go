package selection

import (
	"fmt"
	"math/rand/v2"

	"github.com/osse101/CineLoot_Go/internal/domain"
	"github.com/osse101/CineLoot_Go/internal/rarity"
)

// Candidate is a scored content item together with its rarity tier
type Candidate struct {
	Item  domain.ContentItem
	Score int
	Tier  rarity.Tier
}

// Selector draws one candidate per call. Its random source returns values in [0, 1).
type Selector struct {
	rnd func() float64
}

// NewSelector uses math/rand/v2 as the random source
func NewSelector() *Selector {
	return &Selector{rnd: rand.Float64}
}

// NewSelectorWithRand is used by tests to make draws reproducible
func NewSelectorWithRand(rnd func() float64) *Selector {
	return &Selector{rnd: rnd}
}

// SelectOne performs a weighted draw using each candidate's tier weight.
// Candidates are walked in the given order; if float drift leaves the
// remainder above zero the last candidate is returned.
func (s *Selector) SelectOne(candidates []Candidate) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, fmt.Errorf("%w: empty candidate set", domain.ErrNoContentAvailable)
	}

	var total float64
	for _, c := range candidates {
		total += c.Tier.Weight
	}

	remainder := s.rnd() * total
	for _, c := range candidates {
		remainder -= c.Tier.Weight
		if remainder <= 0 {
			return c, nil
		}
	}
	return candidates[len(candidates)-1], nil
}

// SelectUniform picks any candidate with equal probability
func (s *Selector) SelectUniform(candidates []Candidate) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, fmt.Errorf("%w: empty candidate set", domain.ErrNoContentAvailable)
	}

	idx := int(s.rnd() * float64(len(candidates)))
	if idx >= len(candidates) {
		idx = len(candidates) - 1
	}
	return candidates[idx], nil
}
