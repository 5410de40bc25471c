package localstore

import (
	"context"
	"sort"

	"logitrack/internal/domain"
	"logitrack/internal/repository"
)

// SiteStore is a JSON-file implementation of repository.SiteRepository.
type SiteStore struct {
	f *files
}

// Create persists a new site.
func (s *SiteStore) Create(ctx context.Context, site *domain.Site) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()

	sites, err := s.f.loadSites()
	if err != nil {
		return err
	}

	sites = append(sites, persistedSite{
		ID:           site.ID,
		Name:         site.Name,
		Lat:          site.Lat,
		Lng:          site.Lng,
		FirstVisited: site.FirstVisited,
	})

	return s.f.saveSites(sites)
}

// GetAll retrieves all sites ordered by first-visited descending.
func (s *SiteStore) GetAll(ctx context.Context) ([]*domain.Site, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()

	stored, err := s.f.loadSites()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(stored, func(i, j int) bool {
		return stored[i].FirstVisited.After(stored[j].FirstVisited)
	})

	sites := make([]*domain.Site, 0, len(stored))
	for _, ps := range stored {
		sites = append(sites, toSite(ps))
	}
	return sites, nil
}

// GetByID retrieves a site by ID.
func (s *SiteStore) GetByID(ctx context.Context, id string) (*domain.Site, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()

	stored, err := s.f.loadSites()
	if err != nil {
		return nil, err
	}

	for _, ps := range stored {
		if ps.ID == id {
			return toSite(ps), nil
		}
	}
	return nil, repository.ErrNotFound
}

func toSite(ps persistedSite) *domain.Site {
	return &domain.Site{
		ID:           ps.ID,
		Name:         ps.Name,
		Lat:          ps.Lat,
		Lng:          ps.Lng,
		FirstVisited: ps.FirstVisited,
	}
}

// Ensure SiteStore implements repository.SiteRepository.
var _ repository.SiteRepository = (*SiteStore)(nil)
