package postgres

import (
	"context"
	"database/sql"
	"errors"

	"logitrack/internal/domain"
	"logitrack/internal/repository"
)

// SiteRepository is a PostgreSQL implementation of repository.SiteRepository.
type SiteRepository struct {
	q Querier
}

// NewSiteRepository creates a new PostgreSQL site repository.
func NewSiteRepository(db *sql.DB) *SiteRepository {
	return &SiteRepository{q: db}
}

// NewSiteRepositoryWithTx creates a site repository using a transaction.
func NewSiteRepositoryWithTx(tx *sql.Tx) *SiteRepository {
	return &SiteRepository{q: tx}
}

// Create persists a new site.
func (r *SiteRepository) Create(ctx context.Context, site *domain.Site) error {
	query := `
		INSERT INTO sites (id, name, lat, lng, first_visited)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q.ExecContext(ctx, query,
		site.ID,
		site.Name,
		site.Lat,
		site.Lng,
		site.FirstVisited,
	)

	return err
}

// GetAll retrieves all sites ordered by first-visited descending.
func (r *SiteRepository) GetAll(ctx context.Context) ([]*domain.Site, error) {
	query := `
		SELECT id, name, lat, lng, first_visited
		FROM sites ORDER BY first_visited DESC
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []*domain.Site
	for rows.Next() {
		var site domain.Site
		if err := rows.Scan(
			&site.ID,
			&site.Name,
			&site.Lat,
			&site.Lng,
			&site.FirstVisited,
		); err != nil {
			return nil, err
		}
		sites = append(sites, &site)
	}

	return sites, rows.Err()
}

// GetByID retrieves a site by ID.
func (r *SiteRepository) GetByID(ctx context.Context, id string) (*domain.Site, error) {
	query := `
		SELECT id, name, lat, lng, first_visited
		FROM sites WHERE id = $1
	`

	var site domain.Site
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&site.ID,
		&site.Name,
		&site.Lat,
		&site.Lng,
		&site.FirstVisited,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &site, nil
}

// Ensure SiteRepository implements repository.SiteRepository.
var _ repository.SiteRepository = (*SiteRepository)(nil)
