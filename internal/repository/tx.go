package repository

import (
	"context"
)

// Tx is the transaction lifecycle shared by every transactional repository
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
