package domain

import (
	"time"

	"github.com/google/uuid"
)

// SpinRecord is an append-only log entry written once per successful spin
type SpinRecord struct {
	ID           uuid.UUID   `json:"id"`
	UserID       string      `json:"user_id"`
	ContentID    int64       `json:"content_id"`
	ContentType  ContentType `json:"content_type"`
	Rarity       Rarity      `json:"rarity"`
	QualityScore int         `json:"quality_score"`
	WasNewUnlock bool        `json:"was_new_unlock"`
	CreatedAt    time.Time   `json:"created_at"`
}

// UnlockRecord marks the first time a user discovered a piece of content
type UnlockRecord struct {
	UserID      string      `json:"user_id"`
	ContentID   int64       `json:"content_id"`
	ContentType ContentType `json:"content_type"`
	Rarity      Rarity      `json:"rarity"`
	UnlockedAt  time.Time   `json:"unlocked_at"`
}

// RarityInfo is the display metadata of a tier
type RarityInfo struct {
	Tier  Rarity `json:"tier"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// SpinOutcome is returned to the caller of a spin
type SpinOutcome struct {
	SpinID         *uuid.UUID  `json:"spin_id,omitempty"`
	Content        ContentItem `json:"content"`
	Rarity         RarityInfo  `json:"rarity"`
	QualityScore   int         `json:"quality_score"`
	WasNewUnlock   bool        `json:"was_new_unlock"`
	SpinsRemaining *int        `json:"spins_remaining,omitempty"`
}

// SpinStatus is the read-only projection of a user's entitlement
type SpinStatus struct {
	Used          int       `json:"used"`
	Remaining     int       `json:"remaining"`
	DailyLimit    int       `json:"daily_limit"`
	AdminOverride int       `json:"admin_override"`
	ResetDate     string    `json:"reset_date"`
	NextResetAt   time.Time `json:"next_reset_at"`
	Timezone      string    `json:"timezone"`
}
