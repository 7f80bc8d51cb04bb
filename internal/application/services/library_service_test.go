package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/panelops/backend/internal/domain/models"
	"github.com/panelops/backend/pkg/constants"
	"github.com/panelops/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives the snapshot TTL without sleeping
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func orgEntry(id, orgID, code string, widthMm, depthMm float64) *models.LibraryEntry {
	e := grooveEntry(id, code, "Groove "+code, widthMm, depthMm, 0)
	e.OrganizationID = &orgID
	return e
}

func TestLibraryService_SnapshotCacheTTL(t *testing.T) {
	repo := newFakeLibraryRepo(grooveEntry("sys-1", "GL-4-10", "Back panel groove", 4, 10, 0))
	svc := NewLibraryService(repo)
	clock := &fakeClock{now: matcherEpoch}
	svc.now = clock.Now
	ctx := context.Background()

	first, err := svc.List(ctx, "org-1", constants.CategoryGroove)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A write bypassing the service is invisible while the snapshot is
	// fresh...
	require.NoError(t, repo.Create(ctx, grooveEntry("sys-2", "GL-6-10", "Light profile groove", 6, 10, time.Hour)))

	clock.Advance(4 * time.Minute)
	cached, err := svc.List(ctx, "org-1", constants.CategoryGroove)
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	// ...and visible once the TTL has elapsed.
	clock.Advance(2 * time.Minute)
	refreshed, err := svc.List(ctx, "org-1", constants.CategoryGroove)
	require.NoError(t, err)
	assert.Len(t, refreshed, 2)
}

func TestLibraryService_WriteInvalidatesSnapshot(t *testing.T) {
	repo := newFakeLibraryRepo(grooveEntry("sys-1", "GL-4-10", "Back panel groove", 4, 10, 0))
	svc := NewLibraryService(repo)
	ctx := context.Background()

	before, err := svc.List(ctx, "org-1", constants.CategoryGroove)
	require.NoError(t, err)
	require.Len(t, before, 1)

	_, err = svc.Create(ctx, "org-1", &models.LibraryEntry{
		Category: constants.CategoryGroove,
		Code:     "GD-12-6",
		Name:     "Drawer bottom groove",
		Kind:     constants.KindDrawerBottom,
		IsActive: true,
		Groove:   &models.GrooveSpec{WidthMm: 12, DepthMm: 6, OffsetMm: 10},
	})
	require.NoError(t, err)

	after, err := svc.List(ctx, "org-1", constants.CategoryGroove)
	require.NoError(t, err)
	assert.Len(t, after, 2)
}

func TestLibraryService_SystemEntriesAreImmutable(t *testing.T) {
	sys := grooveEntry("sys-1", "GL-4-10", "Back panel groove", 4, 10, 0)
	repo := newFakeLibraryRepo(sys)
	svc := NewLibraryService(repo)
	ctx := context.Background()

	_, err := svc.Update(ctx, "org-1", "sys-1", &models.LibraryEntry{
		Code: "GL-4-10", Name: "Renamed", Kind: constants.KindBackPanel,
		Groove: &models.GrooveSpec{WidthMm: 4, DepthMm: 10},
	})
	assert.True(t, errors.IsImmutableDefault(err))

	err = svc.Delete(ctx, "org-1", "sys-1")
	assert.True(t, errors.IsImmutableDefault(err))
}

func TestLibraryService_CrossOrgAccessReadsAsNotFound(t *testing.T) {
	entry := orgEntry("org2-entry", "org-2", "GX-5-5", 5, 5)
	repo := newFakeLibraryRepo(entry)
	svc := NewLibraryService(repo)
	ctx := context.Background()

	err := svc.Delete(ctx, "org-1", "org2-entry")
	assert.True(t, errors.IsNotFound(err))
}

func TestLibraryService_CreateValidatesPayload(t *testing.T) {
	svc := NewLibraryService(newFakeLibraryRepo())
	ctx := context.Background()

	tests := []struct {
		name  string
		entry *models.LibraryEntry
	}{
		{"missing code", &models.LibraryEntry{Category: constants.CategoryGroove, Name: "x", Groove: &models.GrooveSpec{WidthMm: 4, DepthMm: 10}}},
		{"missing groove spec", &models.LibraryEntry{Category: constants.CategoryGroove, Code: "G1", Name: "x"}},
		{"non-positive dims", &models.LibraryEntry{Category: constants.CategoryGroove, Code: "G1", Name: "x", Groove: &models.GrooveSpec{WidthMm: 0, DepthMm: 10}}},
		{"drilling without holes", &models.LibraryEntry{Category: constants.CategoryDrilling, Code: "D1", Name: "x", Drill: &models.DrillSpec{}}},
		{"cnc without op type", &models.LibraryEntry{Category: constants.CategoryCNC, Code: "C1", Name: "x", CNC: &models.CNCSpec{}}},
		{"bad category", &models.LibraryEntry{Category: "sanding", Code: "S1", Name: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "org-1", tt.entry)
			assert.True(t, errors.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestLibraryService_ConcurrentIncrementsAreExact(t *testing.T) {
	repo := newFakeLibraryRepo(grooveEntry("sys-1", "GL-4-10", "Back panel groove", 4, 10, 0))
	svc := NewLibraryService(repo)
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.IncrementUsage(ctx, "sys-1"))
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, repo.usageCount("sys-1"))
}

func TestLibraryService_FindByCodePrefersOrgEntry(t *testing.T) {
	sys := grooveEntry("sys-1", "GL-4-10", "Back panel groove", 4, 10, 0)
	org := orgEntry("org-1-entry", "org-1", "GL-4-10", 4.5, 10)
	repo := newFakeLibraryRepo(sys, org)
	svc := NewLibraryService(repo)

	got, err := svc.FindByCode(context.Background(), "org-1", constants.CategoryGroove, "gl-4-10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "org-1-entry", got.ID)
}
