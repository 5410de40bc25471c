package repository

import (
	"context"
	"time"

	"logitrack/internal/domain"
)

// JobRepository defines the persistence operations for jobs.
type JobRepository interface {
	// Create persists a new job.
	Create(ctx context.Context, job *domain.Job) error

	// GetByID retrieves a job by ID.
	GetByID(ctx context.Context, id string) (*domain.Job, error)

	// GetAll retrieves all jobs ordered by creation time descending,
	// with the site name resolved.
	GetAll(ctx context.Context) ([]*domain.Job, error)

	// GetActive retrieves the job whose end time is unset.
	// Returns nil if no active job exists.
	GetActive(ctx context.Context) (*domain.Job, error)

	// GetRange retrieves jobs created within [from, to] inclusive, with
	// the site name resolved, ordered by creation time ascending.
	GetRange(ctx context.Context, from, to time.Time) ([]*domain.Job, error)

	// Update replaces an existing job record as a whole, so the fields
	// written at end-of-job commit as one unit.
	Update(ctx context.Context, job *domain.Job) error

	// Delete removes a job in any state.
	Delete(ctx context.Context, id string) error
}
