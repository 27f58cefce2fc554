// Package render draws boards and deck listings to PDF.
package render

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/arcanaland/bingomancer/internal/board"
	"github.com/arcanaland/bingomancer/internal/card"
	"github.com/arcanaland/bingomancer/internal/layout"
)

const (
	borderWidth = 1.0
	blockWidth  = 0.5
)

// Theme holds the colours of a document.
type Theme struct {
	Border          colorful.Color
	LabelBackground colorful.Color
	LabelText       colorful.Color
	Placeholder     colorful.Color
}

// ParseTheme builds a Theme from hex colours such as "#333333".
func ParseTheme(border, labelBackground, labelText string) (Theme, error) {
	var t Theme
	for _, c := range []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"border", border, &t.Border},
		{"label background", labelBackground, &t.LabelBackground},
		{"label text", labelText, &t.LabelText},
	} {
		col, err := colorful.Hex(c.hex)
		if err != nil {
			return Theme{}, fmt.Errorf("invalid %s colour %q: %w", c.name, c.hex, err)
		}
		*c.dst = col
	}
	t.Placeholder = colorful.Color{R: 0.8, G: 0.8, B: 0.8}
	return t, nil
}

func DefaultTheme() Theme {
	t, _ := ParseTheme("#333333", "#ffffff", "#111111")
	return t
}

type Options struct {
	Page     layout.PageSize
	Board    layout.Options
	Deck     layout.DeckOptions
	Title    layout.LabelOptions
	Subtitle layout.LabelOptions
	Theme    Theme
	ImageDPI int
}

func DefaultOptions() Options {
	return Options{
		Page:  layout.A4,
		Board: layout.DefaultOptions(),
		Deck:  layout.DefaultDeckOptions(),
		Title: layout.LabelOptions{
			PreferredSize: 20, MinSize: 12, Step: 1, LineFactor: 1.2, Ellipsis: layout.Ellipsis,
		},
		Subtitle: layout.LabelOptions{
			PreferredSize: 10, MinSize: 8, Step: 0.5, LineFactor: 1.2, Ellipsis: layout.Ellipsis,
		},
		Theme:    DefaultTheme(),
		ImageDPI: 200,
	}
}

type Renderer struct {
	opts      Options
	log       *slog.Logger
	newCanvas func(layout.PageSize) canvas
}

func New(opts Options, logger *slog.Logger) *Renderer {
	return &Renderer{
		opts: opts,
		log:  logger.With("component", "render"),
		newCanvas: func(page layout.PageSize) canvas {
			return newPDFCanvas(page)
		},
	}
}

// RenderBoards writes one board per page. images maps card ids to raw
// image bytes; cards missing from it are drawn without a picture.
func (r *Renderer) RenderBoards(w io.Writer, deckName string, boards []board.Board, images map[string][]byte) error {
	if len(boards) == 0 {
		return fmt.Errorf("no boards to render")
	}

	cv := r.newCanvas(r.opts.Page)
	doc := r.newDocument(cv, images)

	for i, b := range boards {
		page, err := layout.BoardPage(b.GridSize, r.opts.Page, r.opts.Board)
		if err != nil {
			return fmt.Errorf("board %d: %w", i+1, err)
		}

		cv.AddPage(page.Page)
		r.drawHeader(cv, page.Title, deckName, fmt.Sprintf("BOARD %d OF %d", i+1, len(boards)))
		cv.StrokeRect(page.Block, r.opts.Theme.Border, blockWidth)

		for j, c := range b.Cards {
			if j >= len(page.Cells) {
				break
			}
			doc.drawCard(c, page.Cells[j], r.opts.Board.Label)
		}
	}

	r.logFailures(doc)
	return cv.Output(w)
}

// RenderDeck writes the whole deck as a landscape listing.
func (r *Renderer) RenderDeck(w io.Writer, deckName string, cards []card.Card, images map[string][]byte) error {
	pages, err := layout.DeckPages(len(cards), r.opts.Page, r.opts.Deck)
	if err != nil {
		return err
	}

	cv := r.newCanvas(r.opts.Page)
	doc := r.newDocument(cv, images)

	for _, page := range pages {
		cv.AddPage(page.Page)
		r.drawHeader(cv, page.Header, deckName, page.Continuation)

		for i, cell := range page.Cells {
			doc.drawCard(cards[page.First+i], cell, r.opts.Deck.Label)
		}
	}

	r.logFailures(doc)
	return cv.Output(w)
}

func (r *Renderer) drawHeader(cv canvas, area layout.Rect, title, subtitle string) {
	titleH := r.opts.Title.StripHeight()
	subH := r.opts.Subtitle.StripHeight()
	top := area.Y + (area.H-titleH-subH)/2

	t := layout.FitLabel(title, area.W, cv, r.opts.Title)
	cv.Text(layout.Rect{X: area.X, Y: top, W: area.W, H: titleH}, t.Text, t.Size, r.opts.Theme.LabelText)

	s := layout.FitLabel(subtitle, area.W, cv, r.opts.Subtitle)
	cv.Text(layout.Rect{X: area.X, Y: top + titleH, W: area.W, H: subH}, s.Text, s.Size, r.opts.Theme.LabelText)
}

func (r *Renderer) logFailures(doc *document) {
	for _, err := range doc.failures {
		r.log.Warn("image replaced by placeholder", "card_id", err.CardID, "error", err.Err)
	}
}

type embedded struct {
	name          string
	width, height float64
	err           *ImageEmbedError
}

// document tracks the images registered with one canvas.
type document struct {
	cv       canvas
	theme    Theme
	dpi      int
	images   map[string][]byte
	embedded map[string]embedded
	failures []*ImageEmbedError
}

func (r *Renderer) newDocument(cv canvas, images map[string][]byte) *document {
	return &document{
		cv:       cv,
		theme:    r.opts.Theme,
		dpi:      r.opts.ImageDPI,
		images:   images,
		embedded: make(map[string]embedded),
	}
}

// drawCard draws image, label backdrop, label text and finally the border,
// so the backdrop never covers the border.
func (d *document) drawCard(c card.Card, cell layout.Rect, opts layout.LabelOptions) {
	cl := layout.CardCell(cell, opts)

	if data := d.images[c.ID]; data != nil {
		img := d.embed(c.ID, data, cl.ImageArea)
		if img.err != nil {
			d.cv.FillRect(cl.ImageArea, d.theme.Placeholder)
			d.cv.Text(cl.ImageArea, "Error", opts.PreferredSize, d.theme.LabelText)
		} else {
			d.cv.DrawImage(img.name, layout.FitImage(cl.ImageArea, img.width, img.height))
		}
	}

	label := layout.FitLabel(c.Title, cl.LabelWidth, d.cv, opts)
	d.cv.FillRect(cl.LabelStrip, d.theme.LabelBackground)
	if label.Text != "" {
		d.cv.Text(cl.LabelStrip, label.Text, label.Size, d.theme.LabelText)
	}

	d.cv.StrokeRect(cell, d.theme.Border, borderWidth)
}

func (d *document) embed(cardID string, data []byte, area layout.Rect) embedded {
	key := fmt.Sprintf("card-%s-%.0fx%.0f", cardID, area.W, area.H)
	if e, ok := d.embedded[key]; ok {
		return e
	}

	e := embedded{name: key}
	img, err := prepareImage(data, area, d.dpi)
	if err == nil {
		err = d.cv.RegisterImage(key, img.png)
	}
	if err != nil {
		e.err = &ImageEmbedError{CardID: cardID, Err: err}
		d.failures = append(d.failures, e.err)
	} else {
		e.width, e.height = img.width, img.height
	}

	d.embedded[key] = e
	return e
}
