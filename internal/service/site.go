package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"logitrack/internal/domain"
	"logitrack/internal/geo"
	"logitrack/internal/redis"
	"logitrack/internal/repository"
)

// ProximityRadiusKm is the radius within which an existing site is treated
// as the user's current site.
const ProximityRadiusKm = 0.5

// SiteService handles the site registry: listing, proximity lookup, and
// creation of new sites.
type SiteService struct {
	siteRepo repository.SiteRepository
	cache    redis.SiteCacheInterface
}

// NewSiteService creates a new SiteService. cache may be nil when running
// on the local fallback backend.
func NewSiteService(siteRepo repository.SiteRepository, cache redis.SiteCacheInterface) *SiteService {
	return &SiteService{
		siteRepo: siteRepo,
		cache:    cache,
	}
}

// List retrieves all known sites, most recently visited first.
func (s *SiteService) List(ctx context.Context) ([]*domain.Site, error) {
	if s.cache != nil {
		cached, err := s.cache.GetSites(ctx)
		if err != nil {
			logrus.WithError(err).Warn("site cache read failed")
		} else if cached != nil {
			return cachedToSites(cached), nil
		}
	}

	sites, err := s.siteRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetSites(ctx, sitesToCached(sites))
	}

	return sites, nil
}

// FindNearby returns every site within ProximityRadiusKm of the given
// point, preserving registry order (most recently visited first). A linear
// scan is fine at the expected registry size.
func (s *SiteService) FindNearby(ctx context.Context, lat, lng float64) ([]*domain.Site, error) {
	sites, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var nearby []*domain.Site
	for _, site := range sites {
		if geo.Distance(lat, lng, site.Lat, site.Lng) <= ProximityRadiusKm {
			nearby = append(nearby, site)
		}
	}
	return nearby, nil
}

// Create registers a new site at the given coordinates, stamped as first
// visited now. Coordinates are immutable from here on.
func (s *SiteService) Create(ctx context.Context, name string, lat, lng float64) (*domain.Site, error) {
	if name == "" {
		return nil, ErrInvalidSiteName
	}

	site := &domain.Site{
		ID:           uuid.New().String(),
		Name:         name,
		Lat:          lat,
		Lng:          lng,
		FirstVisited: time.Now(),
	}

	if err := s.siteRepo.Create(ctx, site); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}

	return site, nil
}

func sitesToCached(sites []*domain.Site) []redis.CachedSite {
	cached := make([]redis.CachedSite, 0, len(sites))
	for _, site := range sites {
		cached = append(cached, redis.CachedSite{
			ID:           site.ID,
			Name:         site.Name,
			Lat:          site.Lat,
			Lng:          site.Lng,
			FirstVisited: site.FirstVisited,
		})
	}
	return cached
}

func cachedToSites(cached []redis.CachedSite) []*domain.Site {
	sites := make([]*domain.Site, 0, len(cached))
	for _, c := range cached {
		sites = append(sites, &domain.Site{
			ID:           c.ID,
			Name:         c.Name,
			Lat:          c.Lat,
			Lng:          c.Lng,
			FirstVisited: c.FirstVisited,
		})
	}
	return sites
}
