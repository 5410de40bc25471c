package tests

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"logitrack/internal/domain"
	"logitrack/internal/geo"
	"logitrack/internal/repository"
	"logitrack/internal/service"
)

// ──────────────────────────────────────────────
// JOB LIFECYCLE
// ──────────────────────────────────────────────

func newLifecycleFixture() (*MockSiteRepository, *MockJobRepository, *service.JobService) {
	siteRepo := NewMockSiteRepository()
	jobRepo := NewMockJobRepository().WithSites(siteRepo)
	siteService := service.NewSiteService(siteRepo, nil)
	jobService := service.NewJobService(jobRepo, siteRepo, siteService)
	return siteRepo, jobRepo, jobService
}

func here() *domain.Location {
	return &domain.Location{Lat: 52.52, Lng: 13.405}
}

func TestStart_FailsWithoutLocation(t *testing.T) {
	t.Parallel()

	_, _, jobService := newLifecycleFixture()

	_, err := jobService.Start(context.Background(), service.StartJobRequest{})
	if !errors.Is(err, service.ErrLocationUnavailable) {
		t.Fatalf("expected ErrLocationUnavailable, got %v", err)
	}
}

func TestStart_CreatesActiveJobWithoutSite(t *testing.T) {
	t.Parallel()

	_, jobRepo, jobService := newLifecycleFixture()

	job, err := jobService.Start(context.Background(), service.StartJobRequest{Location: here()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !job.Active() {
		t.Error("expected job to be active")
	}
	if job.SiteID != "" {
		t.Errorf("expected no site, got %q", job.SiteID)
	}
	if jobRepo.CountJobs() != 1 {
		t.Errorf("expected 1 persisted job, got %d", jobRepo.CountJobs())
	}
	if got := atomic.LoadInt32(&jobRepo.CreateCallCount); got != 1 {
		t.Errorf("expected 1 create call, got %d", got)
	}
}

func TestStart_ResolvesNearestSiteInRegistryOrder(t *testing.T) {
	t.Parallel()

	siteRepo, _, jobService := newLifecycleFixture()

	// Both sites are within the 0.5 km radius; the more recently created
	// one must win even though it is slightly farther away.
	siteRepo.AddSite(&domain.Site{
		ID: "site-old", Name: "Old Depot",
		Lat: 52.52, Lng: 13.405,
		FirstVisited: time.Now().Add(-time.Hour),
	})
	siteRepo.AddSite(&domain.Site{
		ID: "site-new", Name: "New Depot",
		Lat: 52.521, Lng: 13.405,
		FirstVisited: time.Now(),
	})

	job, err := jobService.Start(context.Background(), service.StartJobRequest{Location: here()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.SiteID != "site-new" {
		t.Errorf("expected site-new (registry order), got %q", job.SiteID)
	}
}

func TestStart_ExplicitSiteWins(t *testing.T) {
	t.Parallel()

	siteRepo, _, jobService := newLifecycleFixture()
	siteRepo.AddSite(&domain.Site{ID: "site-1", Name: "Depot", Lat: 0, Lng: 0, FirstVisited: time.Now()})

	job, err := jobService.Start(context.Background(), service.StartJobRequest{
		Location: here(),
		SiteID:   "site-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.SiteID != "site-1" || job.SiteName != "Depot" {
		t.Errorf("expected pinned site-1/Depot, got %q/%q", job.SiteID, job.SiteName)
	}
}

func TestStart_RejectedWhileJobActive(t *testing.T) {
	t.Parallel()

	_, _, jobService := newLifecycleFixture()

	if _, err := jobService.Start(context.Background(), service.StartJobRequest{Location: here()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := jobService.Start(context.Background(), service.StartJobRequest{Location: here()})
	if !errors.Is(err, service.ErrJobAlreadyActive) {
		t.Fatalf("expected ErrJobAlreadyActive, got %v", err)
	}
}

func TestEnd_FailsWithoutActiveJob(t *testing.T) {
	t.Parallel()

	_, _, jobService := newLifecycleFixture()

	_, err := jobService.End(context.Background(), service.EndJobRequest{
		Fuel: domain.FuelParams{EfficiencyKmPerL: 12, PricePerL: 1.5},
	})
	if !errors.Is(err, service.ErrNoActiveJob) {
		t.Fatalf("expected ErrNoActiveJob, got %v", err)
	}
}

func TestEnd_RejectsNonPositiveEfficiency(t *testing.T) {
	t.Parallel()

	_, _, jobService := newLifecycleFixture()

	if _, err := jobService.Start(context.Background(), service.StartJobRequest{Location: here()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := jobService.End(context.Background(), service.EndJobRequest{
		Fuel: domain.FuelParams{EfficiencyKmPerL: 0, PricePerL: 1.5},
	})
	if !errors.Is(err, service.ErrInvalidFuelEfficiency) {
		t.Fatalf("expected ErrInvalidFuelEfficiency, got %v", err)
	}
}

func TestEnd_ImmediatelyAfterStart_SitelessJobHasZeroTravel(t *testing.T) {
	t.Parallel()

	_, _, jobService := newLifecycleFixture()

	if _, err := jobService.Start(context.Background(), service.StartJobRequest{Location: here()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	job, err := jobService.End(context.Background(), service.EndJobRequest{
		Location: here(),
		Fuel:     domain.FuelParams{EfficiencyKmPerL: 12, PricePerL: 1.5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.Active() {
		t.Error("expected job to be completed")
	}
	if job.TravelKm != 0 {
		t.Errorf("expected zero travel distance, got %f", job.TravelKm)
	}
	if job.FuelCost != 0 {
		t.Errorf("expected zero fuel cost, got %f", job.FuelCost)
	}
	if job.TravelHours > 0.001 {
		t.Errorf("expected near-zero travel time, got %f", job.TravelHours)
	}
}

func TestEnd_ComputesRoundTripDistanceAndFuelCost(t *testing.T) {
	t.Parallel()

	siteRepo, jobRepo, jobService := newLifecycleFixture()
	siteRepo.AddSite(&domain.Site{ID: "site-1", Name: "Depot", Lat: 0, Lng: 0, FirstVisited: time.Now()})

	// Start at the site so it resolves by proximity.
	if _, err := jobService.Start(context.Background(), service.StartJobRequest{
		Location: &domain.Location{Lat: 0, Lng: 0},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// End roughly 5 km north of the site.
	endLoc := &domain.Location{Lat: 0.045, Lng: 0}
	oneWay := geo.Distance(endLoc.Lat, endLoc.Lng, 0, 0)

	job, err := jobService.End(context.Background(), service.EndJobRequest{
		Location:    endLoc,
		Fuel:        domain.FuelParams{EfficiencyKmPerL: 10, PricePerL: 1.5},
		WorkSummary: "inspection",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if job.TravelKm != oneWay*2 {
		t.Errorf("expected round trip %f, got %f", oneWay*2, job.TravelKm)
	}
	if want := geo.FuelCost(oneWay*2, 10, 1.5); job.FuelCost != want {
		t.Errorf("expected fuel cost %f, got %f", want, job.FuelCost)
	}
	if job.WorkSummary != "inspection" {
		t.Errorf("expected work summary to be stored, got %q", job.WorkSummary)
	}

	// The persisted record carries end time and all derived fields together.
	stored := jobRepo.GetJob(job.ID)
	if stored == nil {
		t.Fatal("job not persisted")
	}
	if stored.EndTime.IsZero() || stored.TravelKm != job.TravelKm || stored.FuelCost != job.FuelCost {
		t.Error("persisted job missing end-of-job fields")
	}
	if got := atomic.LoadInt32(&jobRepo.UpdateCallCount); got != 1 {
		t.Errorf("expected a single update, got %d", got)
	}
}

func TestEnd_AssociatesSiteCreatedMidJob(t *testing.T) {
	t.Parallel()

	siteRepo, jobRepo, jobService := newLifecycleFixture()
	siteService := service.NewSiteService(siteRepo, nil)

	// The registry is empty, so the job starts without a site.
	job, err := jobService.Start(context.Background(), service.StartJobRequest{
		Location: &domain.Location{Lat: 0, Lng: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.SiteID != "" {
		t.Fatalf("expected siteless job, got %q", job.SiteID)
	}

	// The site is registered while the job is running.
	site, err := siteService.Create(context.Background(), "New Depot", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	endLoc := &domain.Location{Lat: 0.045, Lng: 0}
	oneWay := geo.Distance(endLoc.Lat, endLoc.Lng, site.Lat, site.Lng)

	ended, err := jobService.End(context.Background(), service.EndJobRequest{
		Location: endLoc,
		SiteID:   site.ID,
		Fuel:     domain.FuelParams{EfficiencyKmPerL: 10, PricePerL: 1.5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ended.SiteID != site.ID || ended.SiteName != "New Depot" {
		t.Errorf("expected the job to gain the site, got %q/%q", ended.SiteID, ended.SiteName)
	}
	if ended.TravelKm != oneWay*2 {
		t.Errorf("expected round trip %f, got %f", oneWay*2, ended.TravelKm)
	}

	stored := jobRepo.GetJob(ended.ID)
	if stored == nil || stored.SiteID != site.ID {
		t.Error("site association must be persisted with the end-of-job fields")
	}
}

func TestEnd_UnknownSiteIDFailsAndKeepsJobActive(t *testing.T) {
	t.Parallel()

	_, _, jobService := newLifecycleFixture()

	if _, err := jobService.Start(context.Background(), service.StartJobRequest{Location: here()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := jobService.End(context.Background(), service.EndJobRequest{
		SiteID: "no-such-site",
		Fuel:   domain.FuelParams{EfficiencyKmPerL: 12, PricePerL: 1.5},
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if jobService.Current() == nil {
		t.Fatal("expected job to remain active after failed end")
	}
}

func TestEnd_PersistenceFailureKeepsJobActive(t *testing.T) {
	t.Parallel()

	_, jobRepo, jobService := newLifecycleFixture()
	jobRepo.UpdateError = errors.New("write failed")

	if _, err := jobService.Start(context.Background(), service.StartJobRequest{Location: here()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := jobService.End(context.Background(), service.EndJobRequest{
		Fuel: domain.FuelParams{EfficiencyKmPerL: 12, PricePerL: 1.5},
	})
	if err == nil {
		t.Fatal("expected write failure")
	}

	// The user retries explicitly; the job must still be active.
	if jobService.Current() == nil {
		t.Fatal("expected job to remain active after failed end")
	}

	jobRepo.UpdateError = nil
	if _, err := jobService.End(context.Background(), service.EndJobRequest{
		Fuel: domain.FuelParams{EfficiencyKmPerL: 12, PricePerL: 1.5},
	}); err != nil {
		t.Fatalf("retry should succeed, got %v", err)
	}
}

func TestDelete_ActiveJobReturnsLifecycleToIdle(t *testing.T) {
	t.Parallel()

	_, _, jobService := newLifecycleFixture()

	job, err := jobService.Start(context.Background(), service.StartJobRequest{Location: here()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := jobService.Delete(context.Background(), job.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if jobService.Current() != nil {
		t.Error("expected no active job after deleting it")
	}

	// A fresh start must succeed.
	if _, err := jobService.Start(context.Background(), service.StartJobRequest{Location: here()}); err != nil {
		t.Fatalf("start after delete should succeed, got %v", err)
	}
}

func TestDelete_CompletedJobKeepsActiveJobUntouched(t *testing.T) {
	t.Parallel()

	_, jobRepo, jobService := newLifecycleFixture()

	old := &domain.Job{
		ID:        "job-old",
		StartTime: time.Now().Add(-3 * time.Hour),
		EndTime:   time.Now().Add(-2 * time.Hour),
		CreatedAt: time.Now().Add(-3 * time.Hour),
	}
	jobRepo.AddJob(old)

	active, err := jobService.Start(context.Background(), service.StartJobRequest{Location: here()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := jobService.Delete(context.Background(), "job-old"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current := jobService.Current()
	if current == nil || current.ID != active.ID {
		t.Error("deleting a completed job must not clear the active job")
	}
}

func TestRestore_AdoptsLeftoverActiveJob(t *testing.T) {
	t.Parallel()

	_, jobRepo, jobService := newLifecycleFixture()

	jobRepo.AddJob(&domain.Job{
		ID:        "job-1",
		StartTime: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-time.Hour),
	})

	if err := jobService.Restore(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current := jobService.Current()
	if current == nil || current.ID != "job-1" {
		t.Fatal("expected leftover active job to be restored")
	}

	_, err := jobService.Start(context.Background(), service.StartJobRequest{Location: here()})
	if !errors.Is(err, service.ErrJobAlreadyActive) {
		t.Fatalf("expected ErrJobAlreadyActive after restore, got %v", err)
	}
}

func TestRestore_PicksNewestWhenStoreHoldsSeveralActiveJobs(t *testing.T) {
	t.Parallel()

	_, jobRepo, jobService := newLifecycleFixture()

	jobRepo.AddJob(&domain.Job{
		ID:        "job-old",
		StartTime: time.Now().Add(-3 * time.Hour),
		CreatedAt: time.Now().Add(-3 * time.Hour),
	})
	jobRepo.AddJob(&domain.Job{
		ID:        "job-new",
		StartTime: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-time.Hour),
	})

	if err := jobService.Restore(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current := jobService.Current()
	if current == nil || current.ID != "job-new" {
		t.Fatal("expected the newest active job to be restored")
	}
}
