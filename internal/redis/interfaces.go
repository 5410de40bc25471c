package redis

import "context"

// SiteCacheInterface abstracts the site registry cache so services can be
// tested without a Redis instance.
type SiteCacheInterface interface {
	GetSites(ctx context.Context) ([]CachedSite, error)
	SetSites(ctx context.Context, sites []CachedSite) error
	Invalidate(ctx context.Context) error
}

// Ensure implementations satisfy the interface.
var _ SiteCacheInterface = (*SiteCache)(nil)
