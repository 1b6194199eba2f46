package repository

import "context"

// Settings reads admin-managed key/value settings
type Settings interface {
	// GetSetting reports found=false when the key has never been set
	GetSetting(ctx context.Context, key string) (value string, found bool, err error)
}
