package localstore

import (
	"context"
	"sort"
	"time"

	"logitrack/internal/domain"
	"logitrack/internal/repository"
)

// JobStore is a JSON-file implementation of repository.JobRepository.
// Site names are resolved against the sibling sites file, standing in for
// the SQL join the PostgreSQL backend performs.
type JobStore struct {
	f *files
}

// New creates the local fallback stores sharing one data directory.
func New(baseDir string) (*SiteStore, *JobStore, error) {
	f, err := newFiles(baseDir)
	if err != nil {
		return nil, nil, err
	}
	return &SiteStore{f: f}, &JobStore{f: f}, nil
}

// Create persists a new job.
func (s *JobStore) Create(ctx context.Context, job *domain.Job) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()

	jobs, err := s.f.loadJobs()
	if err != nil {
		return err
	}

	jobs = append(jobs, toPersisted(job))
	return s.f.saveJobs(jobs)
}

// GetByID retrieves a job by ID.
func (s *JobStore) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()

	jobs, err := s.f.loadJobs()
	if err != nil {
		return nil, err
	}

	names, err := s.siteNames()
	if err != nil {
		return nil, err
	}

	for _, pj := range jobs {
		if pj.ID == id {
			return toJob(pj, names), nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetAll retrieves all jobs ordered by creation time descending.
func (s *JobStore) GetAll(ctx context.Context) ([]*domain.Job, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()

	stored, err := s.f.loadJobs()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(stored, func(i, j int) bool {
		return stored[i].CreatedAt.After(stored[j].CreatedAt)
	})

	return s.toJobs(stored)
}

// GetActive retrieves the job whose end time is unset.
// Returns nil if no active job exists.
func (s *JobStore) GetActive(ctx context.Context) (*domain.Job, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()

	stored, err := s.f.loadJobs()
	if err != nil {
		return nil, err
	}

	names, err := s.siteNames()
	if err != nil {
		return nil, err
	}

	for i := len(stored) - 1; i >= 0; i-- {
		if stored[i].EndTime == nil {
			return toJob(stored[i], names), nil
		}
	}
	return nil, nil
}

// GetRange retrieves jobs created within [from, to] inclusive, ordered by
// creation time ascending.
func (s *JobStore) GetRange(ctx context.Context, from, to time.Time) ([]*domain.Job, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()

	stored, err := s.f.loadJobs()
	if err != nil {
		return nil, err
	}

	var selected []persistedJob
	for _, pj := range stored {
		if pj.CreatedAt.Before(from) || pj.CreatedAt.After(to) {
			continue
		}
		selected = append(selected, pj)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].CreatedAt.Before(selected[j].CreatedAt)
	})

	return s.toJobs(selected)
}

// Update replaces an existing job record as a whole.
func (s *JobStore) Update(ctx context.Context, job *domain.Job) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()

	jobs, err := s.f.loadJobs()
	if err != nil {
		return err
	}

	for i, pj := range jobs {
		if pj.ID == job.ID {
			jobs[i] = toPersisted(job)
			return s.f.saveJobs(jobs)
		}
	}
	return repository.ErrNotFound
}

// Delete removes a job in any state.
func (s *JobStore) Delete(ctx context.Context, id string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()

	jobs, err := s.f.loadJobs()
	if err != nil {
		return err
	}

	kept := jobs[:0]
	found := false
	for _, pj := range jobs {
		if pj.ID == id {
			found = true
			continue
		}
		kept = append(kept, pj)
	}

	if !found {
		return repository.ErrNotFound
	}
	return s.f.saveJobs(kept)
}

// siteNames loads the id->name mapping for join resolution. Caller must
// hold the file mutex.
func (s *JobStore) siteNames() (map[string]string, error) {
	sites, err := s.f.loadSites()
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(sites))
	for _, ps := range sites {
		names[ps.ID] = ps.Name
	}
	return names, nil
}

func (s *JobStore) toJobs(stored []persistedJob) ([]*domain.Job, error) {
	names, err := s.siteNames()
	if err != nil {
		return nil, err
	}

	jobs := make([]*domain.Job, 0, len(stored))
	for _, pj := range stored {
		jobs = append(jobs, toJob(pj, names))
	}
	return jobs, nil
}

func toPersisted(job *domain.Job) persistedJob {
	pj := persistedJob{
		ID:        job.ID,
		StartTime: job.StartTime,
		CreatedAt: job.CreatedAt,
	}

	if job.SiteID != "" {
		siteID := job.SiteID
		pj.SiteID = &siteID
	}

	if !job.EndTime.IsZero() {
		endTime := job.EndTime
		travelKm := job.TravelKm
		travelHours := job.TravelHours
		fuelCost := job.FuelCost
		summary := job.WorkSummary

		pj.EndTime = &endTime
		pj.TravelKm = &travelKm
		pj.TravelTime = &travelHours
		pj.FuelCost = &fuelCost
		pj.WorkSummary = &summary
	}

	return pj
}

func toJob(pj persistedJob, siteNames map[string]string) *domain.Job {
	job := &domain.Job{
		ID:        pj.ID,
		StartTime: pj.StartTime,
		CreatedAt: pj.CreatedAt,
	}

	if pj.SiteID != nil {
		job.SiteID = *pj.SiteID
		job.SiteName = siteNames[*pj.SiteID]
	}
	if pj.EndTime != nil {
		job.EndTime = *pj.EndTime
	}
	if pj.TravelKm != nil {
		job.TravelKm = *pj.TravelKm
	}
	if pj.TravelTime != nil {
		job.TravelHours = *pj.TravelTime
	}
	if pj.FuelCost != nil {
		job.FuelCost = *pj.FuelCost
	}
	if pj.WorkSummary != nil {
		job.WorkSummary = *pj.WorkSummary
	}

	return job
}

// Ensure JobStore implements repository.JobRepository.
var _ repository.JobRepository = (*JobStore)(nil)
