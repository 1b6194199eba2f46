package domain

// Admin setting keys
const (
	SettingDailySpinLimit        = "daily_spin_limit"
	SettingQualityScoreThreshold = "quality_score_threshold"
)

// Defaults applied when a setting is absent
const (
	DefaultDailySpinLimit        = 3
	DefaultQualityScoreThreshold = 83
)

// CivilDateLayout is the layout of DailyResetDate
const CivilDateLayout = "2006-01-02"

// Event types
const (
	EventTypeSpinCompleted       = "spin.completed"
	EventTypeOverrideSpinGranted = "spin.override_granted"
)
