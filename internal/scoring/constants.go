package scoring

// ============================================================================
// Base Weighting
// ============================================================================

// Base score weights, in tenths. Critics are weighted over audience to counter
// mainstream bias: base = critics*0.8 + audience*0.2.
const (
	CriticsWeightTenths  = 8
	AudienceWeightTenths = 2
)

// ============================================================================
// Penalties
// ============================================================================

const (
	// CriticsPenaltyThreshold applies CriticsPenalty below this critics score
	CriticsPenaltyThreshold = 80
	CriticsPenalty          = -5

	// LowCriticsPenaltyThreshold applies LowCriticsPenalty below this critics score.
	// Stacks with CriticsPenalty.
	LowCriticsPenaltyThreshold = 70
	LowCriticsPenalty          = -5

	// Audience minus critics gaps that trigger the mainstream penalty
	MainstreamGapSevere   = 20
	MainstreamGapModerate = 10

	MainstreamPenaltySevere   = -10
	MainstreamPenaltyModerate = -5
)

// ============================================================================
// Bonuses
// ============================================================================

const (
	CertifiedFreshBonus = 5
	VerifiedHotBonus    = 3
)

// IMDB rating bonus brackets, checked highest first
const (
	IMDBTopThreshold  = 8.5
	IMDBHighThreshold = 8.0
	IMDBGoodThreshold = 7.5

	IMDBTopBonus  = 8
	IMDBHighBonus = 6
	IMDBGoodBonus = 3
)

// ============================================================================
// Signal Ranges
// ============================================================================

const (
	MinPercentScore = 0
	MaxPercentScore = 100
	MinIMDBRating   = 0.0
	MaxIMDBRating   = 10.0
)

// Error context messages
const (
	ErrContextMissingCritics  = "missing critics score"
	ErrContextMissingAudience = "missing audience score"
	ErrContextMissingIMDB     = "missing imdb rating"
	ErrContextOutOfRange      = "out of range"
)
