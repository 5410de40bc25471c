package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"logitrack/internal/domain"
	"logitrack/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK SITE REPOSITORY
// ──────────────────────────────────────────────

// MockSiteRepository is a mock implementation of SiteRepository.
type MockSiteRepository struct {
	mu    sync.RWMutex
	sites map[string]*domain.Site

	// Counters for verification
	CreateCallCount int32
	GetAllCallCount int32

	// Error injection
	CreateError error
	GetAllError error
}

// NewMockSiteRepository creates a new mock site repository.
func NewMockSiteRepository() *MockSiteRepository {
	return &MockSiteRepository{
		sites: make(map[string]*domain.Site),
	}
}

// AddSite adds a site to the mock repository.
func (m *MockSiteRepository) AddSite(site *domain.Site) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sites[site.ID] = site
}

func (m *MockSiteRepository) Create(ctx context.Context, site *domain.Site) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sites[site.ID] = site
	return nil
}

func (m *MockSiteRepository) GetAll(ctx context.Context) ([]*domain.Site, error) {
	atomic.AddInt32(&m.GetAllCallCount, 1)
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Site, 0, len(m.sites))
	for _, s := range m.sites {
		copy := *s
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].FirstVisited.After(result[j].FirstVisited)
	})
	return result, nil
}

func (m *MockSiteRepository) GetByID(ctx context.Context, id string) (*domain.Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	site, ok := m.sites[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *site
	return &copy, nil
}

// CountSites returns the number of stored sites for test assertions.
func (m *MockSiteRepository) CountSites() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sites)
}

// ──────────────────────────────────────────────
// MOCK JOB REPOSITORY
// ──────────────────────────────────────────────

// MockJobRepository is a mock implementation of JobRepository.
type MockJobRepository struct {
	mu    sync.RWMutex
	jobs  map[string]*domain.Job
	sites *MockSiteRepository // optional, for join resolution

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32
	DeleteCallCount int32

	// Error injection
	CreateError error
	UpdateError error
	DeleteError error
}

// NewMockJobRepository creates a new mock job repository.
func NewMockJobRepository() *MockJobRepository {
	return &MockJobRepository{
		jobs: make(map[string]*domain.Job),
	}
}

// WithSites attaches a site repository for join resolution.
func (m *MockJobRepository) WithSites(sites *MockSiteRepository) *MockJobRepository {
	m.sites = sites
	return m
}

// AddJob adds a job to the mock repository.
func (m *MockJobRepository) AddJob(job *domain.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = job
}

func (m *MockJobRepository) Create(ctx context.Context, job *domain.Job) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *job
	m.jobs[job.ID] = &copy
	return nil
}

func (m *MockJobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *job
	m.resolveSiteName(&copy)
	return &copy, nil
}

func (m *MockJobRepository) GetAll(ctx context.Context) ([]*domain.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := m.snapshot(func(*domain.Job) bool { return true })
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockJobRepository) GetActive(ctx context.Context) (*domain.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	active := m.snapshot(func(j *domain.Job) bool { return j.EndTime.IsZero() })
	if len(active) == 0 {
		return nil, nil
	}
	// Newest first, matching the store's ORDER BY created_at DESC LIMIT 1.
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	return active[0], nil
}

func (m *MockJobRepository) GetRange(ctx context.Context, from, to time.Time) ([]*domain.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := m.snapshot(func(j *domain.Job) bool {
		return !j.CreatedAt.Before(from) && !j.CreatedAt.After(to)
	})
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockJobRepository) Update(ctx context.Context, job *domain.Job) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[job.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *job
	m.jobs[job.ID] = &copy
	return nil
}

func (m *MockJobRepository) Delete(ctx context.Context, id string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.jobs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.jobs, id)
	return nil
}

// GetJob returns a stored job for test assertions.
func (m *MockJobRepository) GetJob(id string) *domain.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jobs[id]
}

// CountJobs returns the number of stored jobs for test assertions.
func (m *MockJobRepository) CountJobs() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.jobs)
}

// snapshot copies matching jobs. Caller must hold the read lock.
func (m *MockJobRepository) snapshot(match func(*domain.Job) bool) []*domain.Job {
	result := make([]*domain.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		if !match(j) {
			continue
		}
		copy := *j
		m.resolveSiteName(&copy)
		result = append(result, &copy)
	}
	return result
}

func (m *MockJobRepository) resolveSiteName(job *domain.Job) {
	if job.SiteID == "" || job.SiteName != "" || m.sites == nil {
		return
	}
	m.sites.mu.RLock()
	defer m.sites.mu.RUnlock()
	if site, ok := m.sites.sites[job.SiteID]; ok {
		job.SiteName = site.Name
	}
}

// Ensure the mocks implement the repository interfaces.
var (
	_ repository.SiteRepository = (*MockSiteRepository)(nil)
	_ repository.JobRepository  = (*MockJobRepository)(nil)
)
