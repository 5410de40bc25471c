package repository

import (
	"context"

	"logitrack/internal/domain"
)

// SiteRepository defines the persistence operations for sites.
// Sites are immutable after creation: there is no update or delete.
type SiteRepository interface {
	// Create persists a new site.
	Create(ctx context.Context, site *domain.Site) error

	// GetAll retrieves all sites ordered by first-visited descending.
	GetAll(ctx context.Context) ([]*domain.Site, error)

	// GetByID retrieves a site by ID.
	GetByID(ctx context.Context, id string) (*domain.Site, error)
}
