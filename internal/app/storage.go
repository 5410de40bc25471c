package app

import (
	"context"
	"database/sql"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sirupsen/logrus"

	"logitrack/internal/config"
	"logitrack/internal/repository"
	"logitrack/internal/repository/localstore"
	"logitrack/internal/repository/postgres"
)

// Backend bundles the selected persistence implementation. The choice is
// made once at session start and never re-evaluated: if PostgreSQL is
// unreachable the whole session runs on the local JSON store.
type Backend struct {
	Sites repository.SiteRepository
	Jobs  repository.JobRepository

	// DB is non-nil only on the remote backend.
	DB *sql.DB

	// Fallback reports that the remote store was unreachable at startup
	// and the session degraded to local storage.
	Fallback bool
}

// Close releases the backend's resources.
func (b *Backend) Close() {
	if b.DB != nil {
		_ = b.DB.Close()
	}
}

// OpenBackend connects to PostgreSQL, or falls back to the local JSON
// store when the remote store is unreachable.
func OpenBackend(ctx context.Context, cfg *config.Config, nrApp *newrelic.Application) (*Backend, error) {
	db, err := NewDatabase(ctx, cfg.Database, nrApp)
	if err == nil {
		return &Backend{
			Sites: postgres.NewSiteRepository(db),
			Jobs:  postgres.NewJobRepository(db),
			DB:    db,
		}, nil
	}

	logrus.WithError(err).Warn("remote store unreachable, falling back to local storage for this session")

	siteStore, jobStore, lerr := localstore.New(cfg.Tracker.DataDir)
	if lerr != nil {
		return nil, lerr
	}

	return &Backend{
		Sites:    siteStore,
		Jobs:     jobStore,
		Fallback: true,
	}, nil
}
