package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/collab-core/models"
)

// setupStore creates a store backed by a miniredis instance.
func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	store, err := NewStore(&redis.Options{Addr: mr.Addr()}, "test")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, mr
}

func TestNewStoreRejectsEmptyNamespace(t *testing.T) {
	_, err := NewStore(&redis.Options{Addr: "localhost:6379"}, "")
	assert.Error(t, err)
}

func TestGetAbsentKeyIsNotAnError(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "projects")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetThenGetRoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "projects", []byte(`[]`)))
	data, ok, err := store.Get(ctx, "projects")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(data))
}

func TestLoadAbsentLeavesEmptyDefault(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	var projects []models.Project
	require.NoError(t, store.Load(ctx, "projects", &projects))
	assert.Empty(t, projects)
}

func TestLoadCorruptBlobIsDecodeError(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	mr.Set("test:projects", `{"not": "a list"`)

	var projects []models.Project
	err := store.Load(ctx, "projects", &projects)
	assert.ErrorIs(t, err, models.ErrDecode)
}

func TestStorageErrorWhenRedisIsDown(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	mr.Close()

	_, _, err := store.Get(ctx, "projects")
	assert.ErrorIs(t, err, models.ErrStorage)
}

func TestWithProjectNotFound(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	repo := NewProjectRepository(store)

	err := repo.WithProject(ctx, "missing", func(p *models.Project) error { return nil })
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestWithProjectPersistsMutation(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	repo := NewProjectRepository(store)

	require.NoError(t, repo.Append(ctx, models.Project{ID: "p1", Name: "Portal", CreatedBy: "ana@corp.io"}))

	err := repo.WithProject(ctx, "p1", func(p *models.Project) error {
		p.Name = "Portal v2"
		return nil
	})
	require.NoError(t, err)

	project, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Portal v2", project.Name)
}

func TestWithProjectAbortsOnMutatorError(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	repo := NewProjectRepository(store)

	require.NoError(t, repo.Append(ctx, models.Project{ID: "p1", Name: "Portal", CreatedBy: "ana@corp.io"}))

	boom := errors.New("boom")
	err := repo.WithProject(ctx, "p1", func(p *models.Project) error {
		p.Name = "never persisted"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	project, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Portal", project.Name)
}
