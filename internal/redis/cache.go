package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// SiteCache caches the full site registry in Redis. The registry is read on
// every job start for proximity lookup but only grows when a new site is
// created, so a short TTL plus create-time invalidation keeps it honest.
type SiteCache struct {
	client *redis.Client
}

// NewSiteCache creates a new SiteCache.
func NewSiteCache(client *redis.Client) *SiteCache {
	return &SiteCache{client: client}
}

const (
	// SiteListTTL bounds staleness if an invalidation is lost.
	SiteListTTL = 5 * time.Minute

	siteListKey = "cache:sites"
)

// CachedSite is the cached site record.
type CachedSite struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	FirstVisited time.Time `json:"first_visited"`
}

// GetSites retrieves the cached site list. Returns nil on cache miss.
func (s *SiteCache) GetSites(ctx context.Context) ([]CachedSite, error) {
	data, err := s.client.Get(ctx, siteListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var sites []CachedSite
	if err := json.Unmarshal(data, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

// SetSites stores the site list in cache.
func (s *SiteCache) SetSites(ctx context.Context, sites []CachedSite) error {
	data, err := json.Marshal(sites)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, siteListKey, data, SiteListTTL).Err()
}

// Invalidate removes the cached site list.
func (s *SiteCache) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, siteListKey).Err()
}
