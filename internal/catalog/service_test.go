package catalog

import (
	"context"
	"sync"
	"testing"

	"project-tracker/internal/common/errors"
	"project-tracker/internal/common/logger"
	"project-tracker/internal/generator"
	"project-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu      sync.Mutex
	saved   []models.Project
	loaded  []models.Project
	updated []models.Project
	saveErr error
}

func (f *fakeRepo) SaveCatalog(_ context.Context, p []models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = p
	return f.saveErr
}

func (f *fakeRepo) LoadCatalog(context.Context) ([]models.Project, error) { return f.loaded, nil }

func (f *fakeRepo) UpdateProject(_ context.Context, p models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, p)
	return nil
}

type fakeSnapshot struct {
	mu          sync.Mutex
	projects    []models.Project
	invalidated int
}

func (f *fakeSnapshot) Save(_ context.Context, p []models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects = p
	return nil
}

func (f *fakeSnapshot) Load(context.Context) ([]models.Project, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.projects, len(f.projects) > 0, nil
}

func (f *fakeSnapshot) Invalidate(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects = nil
	f.invalidated++
	return nil
}

type fakeIndex struct {
	mu      sync.Mutex
	indexed int
	single  []string
}

func (f *fakeIndex) IndexCatalog(_ context.Context, p []models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed = len(p)
	return nil
}

func (f *fakeIndex) IndexProject(_ context.Context, p models.Project) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.single = append(f.single, p.ID)
	return nil
}

func createTestService(t *testing.T, b Backends) *Service {
	return NewService(NewStore(nil), b, generator.DefaultCatalogOptions(), nil, logger.NewTestLogger(t))
}

// ==========================
// Rebuild
// ==========================

func TestService_RebuildPublishesEverywhere(t *testing.T) {
	repo, snap, idx := &fakeRepo{}, &fakeSnapshot{}, &fakeIndex{}
	svc := createTestService(t, Backends{Repository: repo, Snapshot: snap, Search: idx})

	res, err := svc.Rebuild(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), res.Seed)
	assert.Equal(t, 0, res.Violations)
	assert.Equal(t, res.Projects, svc.Store().Len())
	assert.Len(t, repo.saved, res.Projects)
	assert.Len(t, snap.projects, res.Projects)
	assert.Equal(t, res.Projects, idx.indexed)
	assert.Len(t, svc.Store().Feedbacks(), 9)

	all := svc.Store().All()
	assert.Equal(t, "p1", all[0].ID)
	assert.Equal(t, "p1_2", all[1].ID)
}

func TestService_RebuildIsReproducible(t *testing.T) {
	a := createTestService(t, Backends{})
	b := createTestService(t, Backends{})

	_, err := a.Rebuild(context.Background(), 99)
	require.NoError(t, err)
	_, err = b.Rebuild(context.Background(), 99)
	require.NoError(t, err)

	assert.Equal(t, a.Store().All(), b.Store().All())
}

func TestService_RebuildPersistFailure(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.NewCatalogPersistFailedError(assert.AnError)}
	seed := generator.SeedProjects()
	store := NewStore(seed)
	store.SetFeedbacks(generator.SeedFeedbacks(seed))
	svc := NewService(store, Backends{Repository: repo}, generator.DefaultCatalogOptions(), nil, logger.NewTestLogger(t))

	_, err := svc.Rebuild(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeCatalogPersistFailed))

	kept := store.All()
	require.Len(t, kept, len(seed), "failed rebuild leaves the previous catalog in place")
	for i := range seed {
		assert.Equal(t, seed[i].ID, kept[i].ID)
	}
	assert.Len(t, store.Feedbacks(), 9)
}

// ==========================
// Bootstrap
// ==========================

func TestService_BootstrapPrefersSnapshot(t *testing.T) {
	snap := &fakeSnapshot{projects: generator.SeedProjects()}
	repo := &fakeRepo{loaded: generator.New(generator.NewSource(5)).Catalog()}
	svc := createTestService(t, Backends{Repository: repo, Snapshot: snap})

	res, err := svc.Bootstrap(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "snapshot", res.Source)
	assert.Equal(t, 2, svc.Store().Len())
}

func TestService_BootstrapFallsBackToRepository(t *testing.T) {
	loaded := generator.New(generator.NewSource(5)).Catalog()
	svc := createTestService(t, Backends{Repository: &fakeRepo{loaded: loaded}, Snapshot: &fakeSnapshot{}})

	res, err := svc.Bootstrap(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "repository", res.Source)
	assert.Equal(t, len(loaded), svc.Store().Len())
}

func TestService_BootstrapGeneratesWhenEmpty(t *testing.T) {
	svc := createTestService(t, Backends{Repository: &fakeRepo{}, Snapshot: &fakeSnapshot{}})

	res, err := svc.Bootstrap(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "generator", res.Source)
	assert.Greater(t, svc.Store().Len(), 2)
}

// ==========================
// ApplyChange
// ==========================

func TestService_ApplyChangePropagates(t *testing.T) {
	repo, snap, idx := &fakeRepo{}, &fakeSnapshot{projects: generator.SeedProjects()}, &fakeIndex{}
	svc := NewService(NewStore(generator.SeedProjects()), Backends{Repository: repo, Snapshot: snap, Search: idx},
		generator.DefaultCatalogOptions(), nil, logger.NewTestLogger(t))

	updated, err := svc.ApplyChange(context.Background(), "p1", models.NewProgressChange(25, 35))
	require.NoError(t, err)
	assert.Equal(t, 35, updated.Progress)

	require.Len(t, repo.updated, 1)
	assert.Equal(t, 35, repo.updated[0].Progress)
	assert.Equal(t, []string{"p1"}, idx.single)
	assert.Equal(t, 1, snap.invalidated)
}

func TestService_ApplyChangeRejectsInvalid(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(NewStore(generator.SeedProjects()), Backends{Repository: repo},
		generator.DefaultCatalogOptions(), nil, logger.NewTestLogger(t))

	_, err := svc.ApplyChange(context.Background(), "p1", models.NewPaymentChange(0, 999999999))
	require.Error(t, err)
	assert.Empty(t, repo.updated)
}
