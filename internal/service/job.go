package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"logitrack/internal/domain"
	"logitrack/internal/geo"
	"logitrack/internal/repository"
	"logitrack/internal/timeutil"
)

// JobService owns the job lifecycle: the single active-job reference,
// the start and end transitions, and the derived-field computation at end.
// The active job is session state held by this service, guarded by a mutex
// because HTTP requests arrive concurrently.
type JobService struct {
	jobRepo  repository.JobRepository
	siteRepo repository.SiteRepository
	sites    *SiteService

	mu      sync.Mutex
	current *domain.Job
}

// NewJobService creates a new JobService.
func NewJobService(jobRepo repository.JobRepository, siteRepo repository.SiteRepository, sites *SiteService) *JobService {
	return &JobService{
		jobRepo:  jobRepo,
		siteRepo: siteRepo,
		sites:    sites,
	}
}

// Restore re-adopts an active job left in the store by a previous session,
// so a restart does not strand it.
func (s *JobService) Restore(ctx context.Context) error {
	job, err := s.jobRepo.GetActive(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = job

	if job != nil {
		logrus.WithField("job_id", job.ID).Info("restored active job")
	}
	return nil
}

// StartJobRequest contains the parameters for starting a job.
type StartJobRequest struct {
	// Location is the geolocation fix at start time; nil when the sensor
	// failed or was denied.
	Location *domain.Location

	// SiteID optionally pins the job to a specific site. When empty, the
	// nearest registered site within the proximity radius is used, in
	// registry order; with no match the job starts without a site.
	SiteID string
}

// Start begins a new active job at the current location. Exactly one job
// may be active at a time.
func (s *JobService) Start(ctx context.Context, req StartJobRequest) (*domain.Job, error) {
	if req.Location == nil {
		return nil, ErrLocationUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return nil, ErrJobAlreadyActive
	}

	siteID := req.SiteID
	siteName := ""
	if siteID == "" {
		nearby, err := s.sites.FindNearby(ctx, req.Location.Lat, req.Location.Lng)
		if err != nil {
			return nil, err
		}
		if len(nearby) > 0 {
			siteID = nearby[0].ID
			siteName = nearby[0].Name
		}
	} else {
		site, err := s.siteRepo.GetByID(ctx, siteID)
		if err != nil {
			return nil, err
		}
		siteName = site.Name
	}

	now := time.Now()
	job := &domain.Job{
		ID:        uuid.New().String(),
		SiteID:    siteID,
		SiteName:  siteName,
		StartTime: now,
		CreatedAt: now,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	s.current = job
	return job, nil
}

// EndJobRequest contains the parameters for ending the active job.
type EndJobRequest struct {
	// Location is the geolocation fix at end time, used for the one-way
	// site distance. With no fix or no associated site the travel
	// distance is zero.
	Location *domain.Location

	// SiteID optionally associates a site with the job at end time. A job
	// started away from every registered site picks its site up here,
	// typically one created mid-job. Overrides the site resolved at start.
	SiteID string

	Fuel        domain.FuelParams
	WorkSummary string
}

// End completes the active job. Elapsed hours, round-trip travel distance,
// and fuel cost are computed once, from one snapshot of the inputs, and
// written together with the end timestamp in a single record update.
func (s *JobService) End(ctx context.Context, req EndJobRequest) (*domain.Job, error) {
	if req.Fuel.EfficiencyKmPerL <= 0 {
		return nil, ErrInvalidFuelEfficiency
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNoActiveJob
	}

	endTime := time.Now()

	siteID := s.current.SiteID
	if req.SiteID != "" {
		siteID = req.SiteID
	}

	ended := *s.current
	ended.EndTime = endTime

	travelKm := 0.0
	if siteID != "" {
		site, err := s.siteRepo.GetByID(ctx, siteID)
		if err != nil {
			return nil, err
		}
		ended.SiteID = site.ID
		ended.SiteName = site.Name
		if req.Location != nil {
			// Round trip: one-way distance doubled.
			travelKm = geo.Distance(req.Location.Lat, req.Location.Lng, site.Lat, site.Lng) * 2
		}
	}

	ended.TravelKm = travelKm
	ended.TravelHours = timeutil.ElapsedHours(ended.StartTime, endTime)
	ended.FuelCost = geo.FuelCost(travelKm, req.Fuel.EfficiencyKmPerL, req.Fuel.PricePerL)
	ended.WorkSummary = req.WorkSummary

	if err := s.jobRepo.Update(ctx, &ended); err != nil {
		// The job stays active; the user retries explicitly.
		return nil, err
	}

	s.current = nil
	return &ended, nil
}

// Delete removes a job in any state. Deleting the active job returns the
// lifecycle to idle.
func (s *JobService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidJobID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	return nil
}

// Current returns a snapshot of the active job, or nil when idle.
func (s *JobService) Current() *domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	snapshot := *s.current
	return &snapshot
}
