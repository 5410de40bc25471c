package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"logitrack/internal/domain"
	"logitrack/internal/repository"
)

// JobRepository is a PostgreSQL implementation of repository.JobRepository.
type JobRepository struct {
	q Querier
}

// NewJobRepository creates a new PostgreSQL job repository.
func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{q: db}
}

// NewJobRepositoryWithTx creates a job repository using a transaction.
func NewJobRepositoryWithTx(tx *sql.Tx) *JobRepository {
	return &JobRepository{q: tx}
}

const jobColumns = `
	j.id, j.site_id, COALESCE(s.name, ''), j.start_time, j.end_time,
	j.travel_km, j.travel_hours, j.fuel_cost, j.work_summary, j.created_at
`

// Create persists a new job.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (id, site_id, start_time, end_time, travel_km, travel_hours, fuel_cost, work_summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		job.ID,
		nullString(job.SiteID),
		job.StartTime,
		nullTime(job.EndTime),
		nullFloatForEnded(job, job.TravelKm),
		nullFloatForEnded(job, job.TravelHours),
		nullFloatForEnded(job, job.FuelCost),
		nullString(job.WorkSummary),
		job.CreatedAt,
	)

	return err
}

// GetByID retrieves a job by ID.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs j LEFT JOIN sites s ON s.id = j.site_id
		WHERE j.id = $1
	`

	job, err := scanJob(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return job, nil
}

// GetAll retrieves all jobs ordered by creation time descending.
func (r *JobRepository) GetAll(ctx context.Context) ([]*domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs j LEFT JOIN sites s ON s.id = j.site_id
		ORDER BY j.created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobs(rows)
}

// GetActive retrieves the job whose end time is unset.
// Returns nil if no active job exists.
func (r *JobRepository) GetActive(ctx context.Context) (*domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs j LEFT JOIN sites s ON s.id = j.site_id
		WHERE j.end_time IS NULL
		ORDER BY j.created_at DESC
		LIMIT 1
	`

	job, err := scanJob(r.q.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return job, nil
}

// GetRange retrieves jobs created within [from, to] inclusive, ordered by
// creation time ascending.
func (r *JobRepository) GetRange(ctx context.Context, from, to time.Time) ([]*domain.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs j LEFT JOIN sites s ON s.id = j.site_id
		WHERE j.created_at >= $1 AND j.created_at <= $2
		ORDER BY j.created_at ASC
	`

	rows, err := r.q.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobs(rows)
}

// Update replaces an existing job record. A single UPDATE writes the end
// time and all derived fields together, so a reader never observes a
// partially ended job.
func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	query := `
		UPDATE jobs
		SET site_id = $1, start_time = $2, end_time = $3, travel_km = $4,
		    travel_hours = $5, fuel_cost = $6, work_summary = $7
		WHERE id = $8
	`

	result, err := r.q.ExecContext(ctx, query,
		nullString(job.SiteID),
		job.StartTime,
		nullTime(job.EndTime),
		nullFloatForEnded(job, job.TravelKm),
		nullFloatForEnded(job, job.TravelHours),
		nullFloatForEnded(job, job.FuelCost),
		nullString(job.WorkSummary),
		job.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a job in any state.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner) (*domain.Job, error) {
	var job domain.Job
	var siteID, workSummary sql.NullString
	var endTime sql.NullTime
	var travelKm, travelHours, fuelCost sql.NullFloat64

	if err := s.Scan(
		&job.ID,
		&siteID,
		&job.SiteName,
		&job.StartTime,
		&endTime,
		&travelKm,
		&travelHours,
		&fuelCost,
		&workSummary,
		&job.CreatedAt,
	); err != nil {
		return nil, err
	}

	job.SiteID = siteID.String
	job.WorkSummary = workSummary.String
	if endTime.Valid {
		job.EndTime = endTime.Time
	}
	job.TravelKm = travelKm.Float64
	job.TravelHours = travelHours.Float64
	job.FuelCost = fuelCost.Float64

	return &job, nil
}

func scanJobs(rows *sql.Rows) ([]*domain.Job, error) {
	var jobs []*domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// nullFloatForEnded keeps derived columns NULL while the job is active;
// they only carry values once the end transition has run.
func nullFloatForEnded(job *domain.Job, v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !job.EndTime.IsZero()}
}

// Ensure JobRepository implements repository.JobRepository.
var _ repository.JobRepository = (*JobRepository)(nil)
