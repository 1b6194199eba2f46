package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Content queries
const (
	queryActiveContent = `
		SELECT content_id, content_type, title, critics_score, audience_score, imdb_rating,
		       is_certified_fresh, is_verified_hot, is_active, poster_url, release_year, quality_score
		FROM content
		WHERE is_active AND content_type = $1
		  AND ($2::int IS NULL OR quality_score >= $2)
		ORDER BY content_id`

	queryContentByID = `
		SELECT content_id, content_type, title, critics_score, audience_score, imdb_rating,
		       is_certified_fresh, is_verified_hot, is_active, poster_url, release_year, quality_score
		FROM content
		WHERE content_id = $1`

	queryUpdateCachedScore = `
		UPDATE content SET quality_score = $2, updated_at = NOW()
		WHERE content_id = $1`
)

// Settings queries
const (
	queryGetSetting = `SELECT value FROM settings WHERE key = $1`

	queryUpsertSetting = `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
)

// Entitlement and spin queries
const (
	entitlementColumns = `user_id, daily_spins_used, COALESCE(daily_reset_date::text, ''), admin_override_spins, timezone`

	queryGetEntitlement = `SELECT ` + entitlementColumns + ` FROM users WHERE user_id = $1`

	queryGetEntitlementForUpdate = queryGetEntitlement + ` FOR UPDATE`

	queryUpdateEntitlement = `
		UPDATE users
		SET daily_spins_used = $2,
		    daily_reset_date = NULLIF($3, '')::date,
		    admin_override_spins = $4,
		    updated_at = NOW()
		WHERE user_id = $1`

	queryUpdateTimezone = `UPDATE users SET timezone = $2, updated_at = NOW() WHERE user_id = $1`

	queryHasUnlock = `SELECT EXISTS (SELECT 1 FROM unlocks WHERE user_id = $1 AND content_id = $2)`

	queryInsertUnlock = `
		INSERT INTO unlocks (user_id, content_id, content_type, rarity, unlocked_at)
		VALUES ($1, $2, $3, $4, $5)`

	queryInsertSpin = `
		INSERT INTO spins (spin_id, user_id, content_id, content_type, rarity, quality_score, was_new_unlock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (spin_id) DO NOTHING`

	queryInsertUser = `INSERT INTO users (user_id, timezone) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`
)

// Error Messages
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToQueryContent      = "failed to query content"
	ErrMsgFailedToScanContent       = "failed to scan content"
	ErrMsgFailedToUpdateScores      = "failed to update cached scores"
	ErrMsgFailedToGetSetting        = "failed to get setting"
	ErrMsgFailedToSetSetting        = "failed to set setting"
	ErrMsgFailedToGetEntitlement    = "failed to get entitlement"
	ErrMsgFailedToUpdateEntitlement = "failed to update entitlement"
	ErrMsgFailedToUpdateTimezone    = "failed to update timezone"
	ErrMsgFailedToCheckUnlock       = "failed to check unlock"
	ErrMsgFailedToInsertUnlock      = "failed to insert unlock"
	ErrMsgFailedToInsertSpin        = "failed to insert spin"
	ErrMsgFailedToInsertUser        = "failed to insert user"
	ErrMsgUnknownRarity             = "unknown rarity in row"
)
