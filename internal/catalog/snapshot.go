// internal/catalog/snapshot.go
package catalog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"project-tracker/internal/common/errors"
	"project-tracker/internal/models"

	"github.com/redis/go-redis/v9"
)

const snapshotKey = "catalog:snapshot"

// SnapshotCache stores the last published catalog so a restart can skip
// regeneration.
type SnapshotCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewSnapshotCache(client redis.Cmdable, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

func (c *SnapshotCache) Save(ctx context.Context, projects []models.Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return errors.NewCatalogCacheFailedError("snapshot.encode", err)
	}
	if err := c.client.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
		return errors.NewCatalogCacheFailedError("snapshot.save", err)
	}
	return nil
}

// Load returns ok=false on a cache miss.
func (c *SnapshotCache) Load(ctx context.Context) ([]models.Project, bool, error) {
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.NewCatalogCacheFailedError("snapshot.load", err)
	}

	var projects []models.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, false, errors.NewCatalogCacheFailedError("snapshot.decode", err)
	}
	return projects, true, nil
}

func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		return errors.NewCatalogCacheFailedError("snapshot.invalidate", err)
	}
	return nil
}
