package layout

import (
	"strings"

	"github.com/arcanaland/bingomancer/internal/card"
)

// Ellipsis is appended to truncated labels.
const Ellipsis = "…"

// Measurer reports the rendered width of text at a font size.
type Measurer interface {
	StringWidth(text string, size float64) float64
}

// MonospaceMeasurer gives every rune the same advance, scaled by size.
type MonospaceMeasurer struct {
	Advance float64
}

func (m MonospaceMeasurer) StringWidth(text string, size float64) float64 {
	return float64(len([]rune(text))) * m.Advance * size
}

// LabelOptions controls how card titles are fitted into their strip.
type LabelOptions struct {
	PreferredSize float64
	MinSize       float64
	Step          float64
	LineFactor    float64 // line height as a multiple of the font size
	PaddingX      float64
	PaddingY      float64
	Ellipsis      string
}

// StripHeight is the height reserved for a label: one line at the preferred
// size plus vertical padding.
func (o LabelOptions) StripHeight() float64 {
	return o.PreferredSize*o.LineFactor + 2*o.PaddingY
}

// Label is a title ready to draw.
type Label struct {
	Text      string
	Size      float64
	Width     float64
	Truncated bool
}

// NormalizeLabel collapses whitespace, trims and uppercases text.
func NormalizeLabel(text string) string {
	return card.NormalizeTitle(text)
}

// FitLabel fits text into maxWidth. The font shrinks in steps down to the
// minimum size; if the text is still too wide the longest prefix that fits
// together with an ellipsis is kept. The returned width never exceeds maxWidth.
func FitLabel(text string, maxWidth float64, m Measurer, opts LabelOptions) Label {
	text = NormalizeLabel(text)
	size := opts.PreferredSize
	if text == "" {
		return Label{Size: size}
	}

	width := m.StringWidth(text, size)
	for width > maxWidth && size > opts.MinSize {
		if opts.Step > 0 {
			size = max(opts.MinSize, size-opts.Step)
		} else {
			size = opts.MinSize
		}
		width = m.StringWidth(text, size)
	}
	if width <= maxWidth {
		return Label{Text: text, Size: size, Width: width}
	}

	return truncateLabel(text, maxWidth, size, m, opts.ellipsis())
}

func truncateLabel(text string, maxWidth, size float64, m Measurer, ellipsis string) Label {
	runes := []rune(text)
	ellipsisWidth := m.StringWidth(ellipsis, size)
	if ellipsisWidth > maxWidth {
		return Label{Size: size, Truncated: true}
	}

	// Largest n in [0, len(runes)) whose prefix fits next to the ellipsis.
	lo, hi := 0, len(runes)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.StringWidth(string(runes[:mid]), size)+ellipsisWidth <= maxWidth {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	for n := lo; n >= 0; n-- {
		out := strings.TrimRight(string(runes[:n]), " ") + ellipsis
		if w := m.StringWidth(out, size); w <= maxWidth {
			return Label{Text: out, Size: size, Width: w, Truncated: true}
		}
	}
	return Label{Size: size, Truncated: true}
}

func (o LabelOptions) ellipsis() string {
	if o.Ellipsis == "" {
		return Ellipsis
	}
	return o.Ellipsis
}
