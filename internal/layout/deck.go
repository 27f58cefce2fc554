package layout

import "fmt"

// DeckOptions controls the full-deck listing.
type DeckOptions struct {
	TopMargin float64 // reserved for the header and continuation label
	Margin    float64 // left, right and bottom
	Gap       float64
	Cols      int
	Rows      int
	AspectW   float64
	AspectH   float64
	Label     LabelOptions
}

// DefaultDeckOptions lays out ten 7:11 cards per landscape page.
func DefaultDeckOptions() DeckOptions {
	return DeckOptions{
		TopMargin: Cm(2.5),
		Margin:    Cm(1),
		Gap:       Cm(0.2),
		Cols:      5,
		Rows:      2,
		AspectW:   7,
		AspectH:   11,
		Label:     DefaultLabelOptions(),
	}
}

// PerPage is the number of cards that fit on one listing page.
func (o DeckOptions) PerPage() int {
	return o.Cols * o.Rows
}

// DeckPageLayout is one page of the deck listing.
type DeckPageLayout struct {
	Page         PageSize
	Number       int // 1-based
	Total        int
	Header       Rect
	Continuation string
	First        int // index of the first card on this page
	CellWidth    float64
	CellHeight   float64
	Cells        []Rect
}

// DeckPages paginates cardCount cards onto landscape pages. The cell aspect
// ratio is always exactly AspectW:AspectH; when the column width would make
// rows too tall the cells are sized from the row height instead.
func DeckPages(cardCount int, page PageSize, opts DeckOptions) ([]DeckPageLayout, error) {
	if opts.Cols <= 0 || opts.Rows <= 0 || opts.AspectW <= 0 || opts.AspectH <= 0 {
		return nil, fmt.Errorf("%w: invalid deck grid %dx%d", ErrNoSpace, opts.Cols, opts.Rows)
	}
	page = page.Landscape()

	availW := page.Width - 2*opts.Margin
	availH := page.Height - opts.TopMargin - opts.Margin

	cellW := splitTrack(availW, opts.Gap, opts.Cols)
	cellH := cellW * opts.AspectH / opts.AspectW
	if budget := splitTrack(availH, opts.Gap, opts.Rows); cellH > budget {
		cellH = budget
		cellW = cellH * opts.AspectW / opts.AspectH
	}
	if cellW <= 0 || cellH <= 0 {
		return nil, ErrNoSpace
	}

	gridW := float64(opts.Cols)*cellW + float64(opts.Cols-1)*opts.Gap
	x0 := (page.Width - gridW) / 2
	y0 := opts.TopMargin

	perPage := opts.PerPage()
	total := max(1, (cardCount+perPage-1)/perPage)
	pages := make([]DeckPageLayout, 0, total)

	for p := 0; p < total; p++ {
		first := p * perPage
		onPage := max(0, min(perPage, cardCount-first))

		cells := make([]Rect, 0, onPage)
		for i := 0; i < onPage; i++ {
			row, col := i/opts.Cols, i%opts.Cols
			cells = append(cells, Rect{
				X: x0 + float64(col)*(cellW+opts.Gap),
				Y: y0 + float64(row)*(cellH+opts.Gap),
				W: cellW,
				H: cellH,
			})
		}

		pages = append(pages, DeckPageLayout{
			Page:         page,
			Number:       p + 1,
			Total:        total,
			Header:       Rect{X: opts.Margin, Y: 0, W: page.Width - 2*opts.Margin, H: opts.TopMargin},
			Continuation: fmt.Sprintf("PAGE %d OF %d", p+1, total),
			First:        first,
			CellWidth:    cellW,
			CellHeight:   cellH,
			Cells:        cells,
		})
	}

	return pages, nil
}
