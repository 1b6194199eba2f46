package scoring

import (
	"fmt"
	"math"

	"github.com/osse101/CineLoot_Go/internal/domain"
)

// Breakdown itemises how a quality score was reached. All terms are in whole points
// except Base, which keeps the fractional 80/20 blend.
type Breakdown struct {
	Base              float64 `json:"base"`
	CriticsPenalty    int     `json:"critics_penalty"`
	LowCriticsPenalty int     `json:"low_critics_penalty"`
	MainstreamPenalty int     `json:"mainstream_penalty"`
	CertifiedBonus    int     `json:"certified_bonus"`
	HotBonus          int     `json:"hot_bonus"`
	IMDBBonus         int     `json:"imdb_bonus"`
	Score             int     `json:"score"`
}

// ComputeQualityScore maps a content item's raw signals to its integer quality score.
// The result is not clamped: it may exceed 100 or drop below zero.
func ComputeQualityScore(item domain.ContentItem) (int, error) {
	b, err := Explain(item)
	if err != nil {
		return 0, err
	}
	return b.Score, nil
}

// Explain computes the score together with every term that contributed to it
func Explain(item domain.ContentItem) (Breakdown, error) {
	critics, audience, imdb, err := signals(item)
	if err != nil {
		return Breakdown{}, err
	}

	b := Breakdown{
		Base:              float64(critics*CriticsWeightTenths+audience*AudienceWeightTenths) / 10,
		CriticsPenalty:    criticsPenalty(critics),
		LowCriticsPenalty: lowCriticsPenalty(critics),
		MainstreamPenalty: mainstreamPenalty(audience - critics),
		IMDBBonus:         imdbBonus(imdb),
	}
	if item.IsCertifiedFresh {
		b.CertifiedBonus = CertifiedFreshBonus
	}
	if item.IsVerifiedHot {
		b.HotBonus = VerifiedHotBonus
	}

	adjust := b.CriticsPenalty + b.LowCriticsPenalty + b.MainstreamPenalty +
		b.CertifiedBonus + b.HotBonus + b.IMDBBonus

	// Work in tenths so the half-up rounding is exact.
	tenths := critics*CriticsWeightTenths + audience*AudienceWeightTenths + adjust*10
	b.Score = floorDiv(tenths+5, 10)

	return b, nil
}

func signals(item domain.ContentItem) (int, int, float64, error) {
	if item.CriticsScore == nil {
		return 0, 0, 0, fmt.Errorf("%w: content %d: %s", domain.ErrInvalidContentData, item.ID, ErrContextMissingCritics)
	}
	if item.AudienceScore == nil {
		return 0, 0, 0, fmt.Errorf("%w: content %d: %s", domain.ErrInvalidContentData, item.ID, ErrContextMissingAudience)
	}
	if item.IMDBRating == nil {
		return 0, 0, 0, fmt.Errorf("%w: content %d: %s", domain.ErrInvalidContentData, item.ID, ErrContextMissingIMDB)
	}

	critics, audience, imdb := *item.CriticsScore, *item.AudienceScore, *item.IMDBRating
	if critics < MinPercentScore || critics > MaxPercentScore {
		return 0, 0, 0, fmt.Errorf("%w: content %d: critics score %d %s", domain.ErrInvalidContentData, item.ID, critics, ErrContextOutOfRange)
	}
	if audience < MinPercentScore || audience > MaxPercentScore {
		return 0, 0, 0, fmt.Errorf("%w: content %d: audience score %d %s", domain.ErrInvalidContentData, item.ID, audience, ErrContextOutOfRange)
	}
	if math.IsNaN(imdb) || imdb < MinIMDBRating || imdb > MaxIMDBRating {
		return 0, 0, 0, fmt.Errorf("%w: content %d: imdb rating %v %s", domain.ErrInvalidContentData, item.ID, imdb, ErrContextOutOfRange)
	}
	return critics, audience, imdb, nil
}

func criticsPenalty(critics int) int {
	if critics < CriticsPenaltyThreshold {
		return CriticsPenalty
	}
	return 0
}

func lowCriticsPenalty(critics int) int {
	if critics < LowCriticsPenaltyThreshold {
		return LowCriticsPenalty
	}
	return 0
}

func mainstreamPenalty(gap int) int {
	switch {
	case gap > MainstreamGapSevere:
		return MainstreamPenaltySevere
	case gap > MainstreamGapModerate:
		return MainstreamPenaltyModerate
	default:
		return 0
	}
}

func imdbBonus(rating float64) int {
	switch {
	case rating >= IMDBTopThreshold:
		return IMDBTopBonus
	case rating >= IMDBHighThreshold:
		return IMDBHighBonus
	case rating >= IMDBGoodThreshold:
		return IMDBGoodBonus
	default:
		return 0
	}
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
