// Package localstore is the session-local fallback persistence backend,
// used when PostgreSQL is unreachable at startup. It keeps the two record
// collections in two JSON files under a data directory, mirroring the
// key-value surface the original deployment fell back to.
package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	sitesFile = "sites.json"
	jobsFile  = "jobs.json"
)

// persistedSite is the on-disk site record.
type persistedSite struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	FirstVisited time.Time `json:"first_visited"`
}

// persistedJob is the on-disk job record. Nullable fields are pointers so
// an active job round-trips with its derived fields genuinely unset.
type persistedJob struct {
	ID          string     `json:"id"`
	SiteID      *string    `json:"site_id"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	TravelKm    *float64   `json:"travel_km"`
	TravelTime  *float64   `json:"travel_time"`
	FuelCost    *float64   `json:"fuel_cost"`
	WorkSummary *string    `json:"work_summary"`
	CreatedAt   time.Time  `json:"created_at"`
}

// files serializes access to the two JSON files shared by the site and job
// stores. Read-modify-write under one mutex keeps each save a single
// whole-file replace, which is what makes the end-of-job write atomic here.
type files struct {
	baseDir string
	mu      sync.Mutex
}

func newFiles(baseDir string) (*files, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &files{baseDir: baseDir}, nil
}

func (f *files) path(name string) string {
	return filepath.Join(f.baseDir, name)
}

func (f *files) loadSites() ([]persistedSite, error) {
	data, err := os.ReadFile(f.path(sitesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var sites []persistedSite
	if err := json.Unmarshal(data, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

func (f *files) saveSites(sites []persistedSite) error {
	data, err := json.MarshalIndent(sites, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path(sitesFile), data, 0o644)
}

func (f *files) loadJobs() ([]persistedJob, error) {
	data, err := os.ReadFile(f.path(jobsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var jobs []persistedJob
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (f *files) saveJobs(jobs []persistedJob) error {
	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path(jobsFile), data, 0o644)
}
