package localstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logitrack/internal/domain"
	"logitrack/internal/repository"
)

func newTestStores(t *testing.T) (*SiteStore, *JobStore) {
	t.Helper()
	siteStore, jobStore, err := New(t.TempDir())
	require.NoError(t, err)
	return siteStore, jobStore
}

func TestSiteStore_CreateAndOrder(t *testing.T) {
	siteStore, _ := newTestStores(t)
	ctx := context.Background()

	older := &domain.Site{ID: "site-1", Name: "Depot", Lat: 1, Lng: 2, FirstVisited: time.Now().Add(-time.Hour)}
	newer := &domain.Site{ID: "site-2", Name: "Yard", Lat: 3, Lng: 4, FirstVisited: time.Now()}

	require.NoError(t, siteStore.Create(ctx, older))
	require.NoError(t, siteStore.Create(ctx, newer))

	sites, err := siteStore.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.Equal(t, "site-2", sites[0].ID, "most recently visited site first")
	assert.Equal(t, "site-1", sites[1].ID)
}

func TestJobStore_ActiveJobRoundTrip(t *testing.T) {
	_, jobStore := newTestStores(t)
	ctx := context.Background()

	job := &domain.Job{
		ID:        "job-1",
		StartTime: time.Now(),
		CreatedAt: time.Now(),
	}
	require.NoError(t, jobStore.Create(ctx, job))

	active, err := jobStore.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "job-1", active.ID)
	assert.True(t, active.Active())
	assert.Zero(t, active.TravelKm)
}

func TestJobStore_UpdateWritesEndFieldsTogether(t *testing.T) {
	siteStore, jobStore := newTestStores(t)
	ctx := context.Background()

	require.NoError(t, siteStore.Create(ctx, &domain.Site{ID: "site-1", Name: "Depot", FirstVisited: time.Now()}))

	start := time.Now().Add(-2 * time.Hour)
	job := &domain.Job{ID: "job-1", SiteID: "site-1", StartTime: start, CreatedAt: start}
	require.NoError(t, jobStore.Create(ctx, job))

	job.EndTime = time.Now()
	job.TravelKm = 10
	job.TravelHours = 2
	job.FuelCost = 1.25
	job.WorkSummary = "replaced pump"
	require.NoError(t, jobStore.Update(ctx, job))

	got, err := jobStore.GetByID(ctx, "job-1")
	require.NoError(t, err)
	assert.False(t, got.Active())
	assert.Equal(t, 10.0, got.TravelKm)
	assert.Equal(t, 2.0, got.TravelHours)
	assert.Equal(t, 1.25, got.FuelCost)
	assert.Equal(t, "replaced pump", got.WorkSummary)
	assert.Equal(t, "Depot", got.SiteName, "site name resolved from sites file")

	active, err := jobStore.GetActive(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestJobStore_GetRange(t *testing.T) {
	_, jobStore := newTestStores(t)
	ctx := context.Background()

	base := time.Date(2025, 7, 10, 12, 0, 0, 0, time.Local)
	for i, created := range []time.Time{base.AddDate(0, 0, -3), base, base.AddDate(0, 0, 3)} {
		job := &domain.Job{ID: string(rune('a' + i)), StartTime: created, CreatedAt: created}
		require.NoError(t, jobStore.Create(ctx, job))
	}

	jobs, err := jobStore.GetRange(ctx, base.AddDate(0, 0, -1), base.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "b", jobs[0].ID)
}

func TestJobStore_Delete(t *testing.T) {
	_, jobStore := newTestStores(t)
	ctx := context.Background()

	job := &domain.Job{ID: "job-1", StartTime: time.Now(), CreatedAt: time.Now()}
	require.NoError(t, jobStore.Create(ctx, job))
	require.NoError(t, jobStore.Delete(ctx, "job-1"))

	_, err := jobStore.GetByID(ctx, "job-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, jobStore.Delete(ctx, "job-1"), repository.ErrNotFound)
}
