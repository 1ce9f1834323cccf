// internal/catalog/favorites.go
package catalog

import (
	"context"
	"sort"
	"sync"

	"project-tracker/internal/common/errors"

	"github.com/redis/go-redis/v9"
)

const favoritesKeyPrefix = "favorites:"

// FavoritesStore keeps each user's favourite project ids in a Redis set.
type FavoritesStore struct {
	client redis.Cmdable
}

func NewFavoritesStore(client redis.Cmdable) *FavoritesStore {
	return &FavoritesStore{client: client}
}

func favoritesKey(user string) string { return favoritesKeyPrefix + user }

// Load returns the user's favourites sorted by id.
func (f *FavoritesStore) Load(ctx context.Context, user string) ([]string, error) {
	ids, err := f.client.SMembers(ctx, favoritesKey(user)).Result()
	if err != nil {
		return nil, errors.NewCatalogCacheFailedError("favorites.load", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// Save replaces the whole favourites set.
func (f *FavoritesStore) Save(ctx context.Context, user string, ids []string) error {
	key := favoritesKey(user)
	_, err := f.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(ids) > 0 {
			members := make([]interface{}, len(ids))
			for i, id := range ids {
				members[i] = id
			}
			pipe.SAdd(ctx, key, members...)
		}
		return nil
	})
	if err != nil {
		return errors.NewCatalogCacheFailedError("favorites.save", err)
	}
	return nil
}

func (f *FavoritesStore) Add(ctx context.Context, user, projectID string) error {
	if err := f.client.SAdd(ctx, favoritesKey(user), projectID).Err(); err != nil {
		return errors.NewCatalogCacheFailedError("favorites.add", err)
	}
	return nil
}

func (f *FavoritesStore) Remove(ctx context.Context, user, projectID string) error {
	if err := f.client.SRem(ctx, favoritesKey(user), projectID).Err(); err != nil {
		return errors.NewCatalogCacheFailedError("favorites.remove", err)
	}
	return nil
}

func (f *FavoritesStore) Contains(ctx context.Context, user, projectID string) (bool, error) {
	ok, err := f.client.SIsMember(ctx, favoritesKey(user), projectID).Result()
	if err != nil {
		return false, errors.NewCatalogCacheFailedError("favorites.contains", err)
	}
	return ok, nil
}

// MemoryFavorites serves favourites when no Redis is configured. Contents
// are lost on restart.
type MemoryFavorites struct {
	mu   sync.Mutex
	sets map[string]map[string]struct{}
}

func NewMemoryFavorites() *MemoryFavorites {
	return &MemoryFavorites{sets: make(map[string]map[string]struct{})}
}

func (m *MemoryFavorites) Load(_ context.Context, user string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sets[user]))
	for id := range m.sets[user] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MemoryFavorites) Save(_ context.Context, user string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	m.sets[user] = set
	return nil
}

func (m *MemoryFavorites) Add(_ context.Context, user, projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sets[user] == nil {
		m.sets[user] = make(map[string]struct{})
	}
	m.sets[user][projectID] = struct{}{}
	return nil
}

func (m *MemoryFavorites) Remove(_ context.Context, user, projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sets[user], projectID)
	return nil
}

func (m *MemoryFavorites) Contains(_ context.Context, user, projectID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sets[user][projectID]
	return ok, nil
}
