// Package store persists search runs and their ranked apartments.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/westside-labs/rentscout/internal/config"
	"github.com/westside-labs/rentscout/internal/model"
)

// Store is the persistence contract shared by the SQLite and Postgres
// backends.
type Store interface {
	Migrate(ctx context.Context) error
	Close() error

	CreateRun(ctx context.Context, criteria model.SearchCriteria, zipCodes []string) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	UpdateRunResult(ctx context.Context, runID string, result *model.RunResult) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	SaveApartments(ctx context.Context, runID string, apartments []model.RankedApartment) error
	ListApartments(ctx context.Context, runID string) ([]model.RankedApartment, error)
}

// Open creates the store named by the config driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
