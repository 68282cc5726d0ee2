package cache

import (
	"context"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"

	"github.com/srgjo27/seatlock/internal/core/domain"
	"github.com/srgjo27/seatlock/internal/core/ports"
)

// GeometryCache keeps recently used event geometries in memory in front of
// an event repository. Geometry never changes once registered, so entries
// are only evicted by size. Unknown events are not cached.
type GeometryCache struct {
	next  ports.EventRepository
	cache *lru.Cache
}

func NewGeometryCache(next ports.EventRepository, size int) (*GeometryCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &GeometryCache{next: next, cache: c}, nil
}

func (c *GeometryCache) Get(ctx context.Context, eventID uuid.UUID) (*domain.Geometry, error) {
	if v, ok := c.cache.Get(eventID); ok {
		geo := v.(domain.Geometry)
		return &geo, nil
	}

	geo, err := c.next.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	c.cache.Add(eventID, *geo)
	return geo, nil
}

func (c *GeometryCache) Create(ctx context.Context, geo domain.Geometry) (*domain.Geometry, error) {
	created, err := c.next.Create(ctx, geo)
	if err != nil {
		return nil, err
	}

	c.cache.Add(created.EventID, *created)
	return created, nil
}

func (c *GeometryCache) Len() int {
	return c.cache.Len()
}
