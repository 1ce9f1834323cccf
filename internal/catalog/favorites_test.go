package catalog

import (
	"context"
	"testing"
	"time"

	"project-tracker/internal/common/errors"
	"project-tracker/internal/generator"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// ==========================
// FavoritesStore
// ==========================

func TestFavoritesStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fav := NewFavoritesStore(newMiniRedis(t))

	ids, err := fav.Load(ctx, "张总")
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, fav.Save(ctx, "张总", []string{"p1_2", "p1"}))
	ids, err = fav.Load(ctx, "张总")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p1_2"}, ids)

	require.NoError(t, fav.Add(ctx, "张总", "gen_电网_0"))
	require.NoError(t, fav.Add(ctx, "张总", "p1"))
	require.NoError(t, fav.Remove(ctx, "张总", "p1_2"))

	ids, err = fav.Load(ctx, "张总")
	require.NoError(t, err)
	assert.Equal(t, []string{"gen_电网_0", "p1"}, ids)

	ok, err := fav.Contains(ctx, "张总", "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	other, err := fav.Load(ctx, "李工")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestFavoritesStore_SaveEmptyClears(t *testing.T) {
	ctx := context.Background()
	fav := NewFavoritesStore(newMiniRedis(t))

	require.NoError(t, fav.Save(ctx, "王主任", []string{"p1"}))
	require.NoError(t, fav.Save(ctx, "王主任", nil))

	ids, err := fav.Load(ctx, "王主任")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFavoritesStore_RedisDown(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectSMembers("favorites:张总").SetErr(assert.AnError)

	_, err := NewFavoritesStore(client).Load(context.Background(), "张总")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeCatalogCacheFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// SnapshotCache
// ==========================

func TestSnapshotCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewSnapshotCache(newMiniRedis(t), time.Hour)

	_, ok, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	projects := generator.New(generator.NewSource(11)).Catalog()
	require.NoError(t, cache.Save(ctx, projects))

	loaded, ok, err := cache.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, loaded, len(projects))
	for i := range projects {
		assert.Equal(t, projects[i].ID, loaded[i].ID)
		assert.Equal(t, projects[i].Investor, loaded[i].Investor)
		assert.Equal(t, projects[i].PaymentReceived, loaded[i].PaymentReceived)
	}

	require.NoError(t, cache.Invalidate(ctx))
	_, ok, err = cache.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotCache_Failures(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet(snapshotKey).SetErr(assert.AnError)
	mock.ExpectGet(snapshotKey).SetVal("not json")

	cache := NewSnapshotCache(client, time.Minute)

	_, _, err := cache.Load(context.Background())
	assert.True(t, errors.HasCode(err, errors.ErrCodeCatalogCacheFailed))

	_, ok, err := cache.Load(context.Background())
	assert.False(t, ok)
	assert.True(t, errors.HasCode(err, errors.ErrCodeCatalogCacheFailed))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryFavorites_MatchesRedisBehaviour(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryFavorites()

	require.NoError(t, m.Save(ctx, "u", []string{"b", "a"}))
	require.NoError(t, m.Add(ctx, "u", "c"))
	require.NoError(t, m.Remove(ctx, "u", "b"))
	require.NoError(t, m.Remove(ctx, "nobody", "x"))

	ids, err := m.Load(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids)

	ok, _ := m.Contains(ctx, "u", "a")
	assert.True(t, ok)
}
