package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"

	"github.com/nfnt/resize"

	"github.com/arcanaland/bingomancer/internal/layout"
)

// ImageEmbedError reports a card image that could not be placed on the
// page. The cell gets a placeholder instead.
type ImageEmbedError struct {
	CardID string
	Err    error
}

func (e *ImageEmbedError) Error() string {
	return fmt.Sprintf("embed image for card %s: %v", e.CardID, e.Err)
}

func (e *ImageEmbedError) Unwrap() error {
	return e.Err
}

// preparedImage is a card image re-encoded as PNG at print resolution.
type preparedImage struct {
	png           []byte
	width, height float64
}

// prepareImage decodes data and shrinks it to at most dpi pixels per inch
// for an image drawn inside area. Images are never enlarged.
func prepareImage(data []byte, area layout.Rect, dpi int) (preparedImage, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return preparedImage{}, fmt.Errorf("decode: %w", err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return preparedImage{}, fmt.Errorf("decode: empty image")
	}

	if dpi > 0 && !area.Empty() {
		maxW := uint(math.Ceil(area.W / 72 * float64(dpi)))
		maxH := uint(math.Ceil(area.H / 72 * float64(dpi)))
		img = resize.Thumbnail(maxW, maxH, img, resize.Lanczos3)
		b = img.Bounds()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return preparedImage{}, fmt.Errorf("encode: %w", err)
	}

	return preparedImage{
		png:    buf.Bytes(),
		width:  float64(b.Dx()),
		height: float64(b.Dy()),
	}, nil
}
