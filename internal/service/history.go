package service

import (
	"context"
	"time"

	"logitrack/internal/domain"
	"logitrack/internal/repository"
)

// HistoryService reads back the job history: range filtering and aggregate
// summary statistics.
type HistoryService struct {
	jobRepo repository.JobRepository
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(jobRepo repository.JobRepository) *HistoryService {
	return &HistoryService{jobRepo: jobRepo}
}

// List retrieves jobs in the given window, newest first. Windows are
// anchored at call time: today = since local midnight, week = since
// now-7x24h, month = since the same day-of-month one calendar month back.
func (s *HistoryService) List(ctx context.Context, filter domain.RangeFilter) ([]*domain.Job, error) {
	if !filter.Valid() {
		return nil, ErrInvalidRangeFilter
	}

	jobs, err := s.jobRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if filter == domain.RangeAll {
		return jobs, nil
	}

	cutoff := rangeCutoff(filter, time.Now())
	var filtered []*domain.Job
	for _, job := range jobs {
		if !job.CreatedAt.Before(cutoff) {
			filtered = append(filtered, job)
		}
	}
	return filtered, nil
}

// Aggregate sums travel time, distance, and fuel cost over the given jobs.
// Active jobs carry zero-valued derived fields, so they contribute nothing.
// Plain summation: associative and order-independent.
func (s *HistoryService) Aggregate(jobs []*domain.Job) domain.Summary {
	var sum domain.Summary
	for _, job := range jobs {
		sum.TotalHours += job.TravelHours
		sum.TotalKm += job.TravelKm
		sum.TotalFuelCost += job.FuelCost
	}
	return sum
}

func rangeCutoff(filter domain.RangeFilter, now time.Time) time.Time {
	switch filter {
	case domain.RangeToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case domain.RangeWeek:
		return now.Add(-7 * 24 * time.Hour)
	case domain.RangeMonth:
		return now.AddDate(0, -1, 0)
	}
	return time.Time{}
}
