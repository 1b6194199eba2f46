package settings

// CacheSize bounds the number of cached settings
const CacheSize = 64

// Error context messages
const (
	ErrContextFailedToReadSetting = "failed to read setting"
)

// Log messages
const (
	LogMsgUnparseableSetting = "Setting is not an integer, using default"
	LogMsgOutOfRangeSetting  = "Setting out of range, using default"
)

// Log field keys
const (
	LogFieldKey     = "key"
	LogFieldValue   = "value"
	LogFieldDefault = "default"
)
