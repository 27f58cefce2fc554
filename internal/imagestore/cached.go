package imagestore

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/arcanaland/bingomancer/internal/card"
)

// CachedResolver puts a Cache in front of another Resolver and collapses
// concurrent lookups of the same image into one.
type CachedResolver struct {
	next  Resolver
	cache Cache
	group singleflight.Group
	log   *slog.Logger
}

func NewCachedResolver(next Resolver, cache Cache, logger *slog.Logger) *CachedResolver {
	return &CachedResolver{
		next:  next,
		cache: cache,
		log:   logger.With("component", "imagestore"),
	}
}

func (r *CachedResolver) Resolve(ctx context.Context, c card.Card) ([]byte, error) {
	if !c.HasImage() {
		return nil, nil
	}

	key := c.Image
	data, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.log.WarnContext(ctx, "image cache lookup failed", "card_id", c.ID, "error", err)
	} else if ok {
		return data, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		data, err := r.next.Resolve(ctx, c)
		if err != nil || data == nil {
			// Absent images are not cached: the file may appear later.
			return data, err
		}
		if err := r.cache.Set(ctx, key, data); err != nil {
			r.log.WarnContext(ctx, "image cache store failed", "card_id", c.ID, "error", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	data, _ = v.([]byte)
	return data, nil
}
