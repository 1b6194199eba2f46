package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CineLoot_Go/internal/database/postgres"
	"github.com/osse101/CineLoot_Go/internal/repository"
)

// Repositories holds the postgres implementations used by the application
type Repositories struct {
	Spin     repository.Spin
	Content  repository.Content
	Scores   repository.ContentScores
	Settings repository.Settings
}

// InitializeRepositories creates all repository implementations over one pool
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	content := postgres.NewContentRepository(dbPool)
	return &Repositories{
		Spin:     postgres.NewSpinRepository(dbPool),
		Content:  content,
		Scores:   content,
		Settings: postgres.NewSettingsRepository(dbPool),
	}
}
