// Package imagestore fetches card image bytes for rendering. A missing image
// is a normal state and is reported as nil data with a nil error.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/arcanaland/bingomancer/internal/card"
)

// Resolver returns the raw bytes of a card's image.
type Resolver interface {
	Resolve(ctx context.Context, c card.Card) ([]byte, error)
}

// FileResolver reads images from the local file system. Card image
// references are paths, already resolved against the deck directory.
type FileResolver struct{}

func NewFileResolver() *FileResolver {
	return &FileResolver{}
}

func (FileResolver) Resolve(ctx context.Context, c card.Card) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !c.HasImage() {
		return nil, nil
	}

	data, err := os.ReadFile(c.Image)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read image for card %s: %w", c.ID, err)
	}
	return data, nil
}
