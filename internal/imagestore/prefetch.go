package imagestore

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/bingomancer/internal/card"
)

// Prefetched holds the outcome of Prefetch, keyed by card id. Cards without
// an image appear in neither map.
type Prefetched struct {
	Images map[string][]byte
	Failed map[string]error
}

// Prefetch resolves the images of cards concurrently, at most limit at a
// time. A failing card is recorded and does not stop the others; only
// cancellation of ctx is returned as an error.
func Prefetch(ctx context.Context, r Resolver, cards []card.Card, limit int) (Prefetched, error) {
	out := Prefetched{
		Images: make(map[string][]byte),
		Failed: make(map[string]error),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, limit))

	seen := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		if _, dup := seen[c.ID]; dup || !c.HasImage() {
			continue
		}
		seen[c.ID] = struct{}{}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := r.Resolve(gctx, c)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				out.Failed[c.ID] = err
			case data != nil:
				out.Images[c.ID] = data
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, ctx.Err()
}
