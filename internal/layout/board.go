package layout

import (
	"errors"
	"fmt"

	"github.com/arcanaland/bingomancer/internal/combin"
)

var (
	ErrUnsupportedGrid = errors.New("unsupported grid size")
	ErrNoSpace         = errors.New("margins leave no room for cells")
)

// Options holds the fixed physical constants of a board page.
type Options struct {
	TopMargin    float64 // reserved for the page title
	BottomMargin float64
	SideMargin   float64
	BlockPadding float64 // padding between the block outline and the grid
	Gap          float64 // space between neighbouring cells
	Label        LabelOptions
}

// DefaultLabelOptions are shared by board and deck pages.
func DefaultLabelOptions() LabelOptions {
	return LabelOptions{
		PreferredSize: 11,
		MinSize:       6,
		Step:          0.5,
		LineFactor:    1.2,
		PaddingX:      4,
		PaddingY:      3,
		Ellipsis:      Ellipsis,
	}
}

func DefaultOptions() Options {
	return Options{
		TopMargin:    Cm(2.5),
		BottomMargin: Cm(1.2),
		SideMargin:   Cm(1),
		BlockPadding: Cm(0.3),
		Gap:          Cm(0.2),
		Label:        DefaultLabelOptions(),
	}
}

// BoardPageLayout places one board on a page.
type BoardPageLayout struct {
	Page       PageSize
	Title      Rect // title band inside the top margin
	Block      Rect // grid plus padding
	Grid       Rect // area filled exactly by cells and gaps
	Cols, Rows int
	CellWidth  float64
	CellHeight float64
	Gap        float64
	Cells      []Rect // row-major, matches board card order
}

// BoardPage lays out a grid of gridSize cells on page.
func BoardPage(gridSize int, page PageSize, opts Options) (BoardPageLayout, error) {
	if !combin.IsSupportedGrid(gridSize) {
		return BoardPageLayout{}, fmt.Errorf("%w: %d", ErrUnsupportedGrid, gridSize)
	}

	cols := combin.GridDimension(gridSize)
	rows := cols

	availW := page.Width - 2*opts.SideMargin - 2*opts.BlockPadding
	availH := page.Height - opts.TopMargin - opts.BottomMargin - 2*opts.BlockPadding
	cellW := splitTrack(availW, opts.Gap, cols)
	cellH := splitTrack(availH, opts.Gap, rows)
	if cellW <= 0 || cellH <= 0 {
		return BoardPageLayout{}, ErrNoSpace
	}

	blockW := availW + 2*opts.BlockPadding
	block := Rect{
		X: (page.Width - blockW) / 2,
		Y: opts.TopMargin,
		W: blockW,
		H: availH + 2*opts.BlockPadding,
	}
	grid := block.Inset(opts.BlockPadding, opts.BlockPadding)

	cells := make([]Rect, 0, gridSize)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cells = append(cells, Rect{
				X: grid.X + float64(col)*(cellW+opts.Gap),
				Y: grid.Y + float64(row)*(cellH+opts.Gap),
				W: cellW,
				H: cellH,
			})
		}
	}

	return BoardPageLayout{
		Page:       page,
		Title:      Rect{X: opts.SideMargin, Y: 0, W: page.Width - 2*opts.SideMargin, H: opts.TopMargin},
		Block:      block,
		Grid:       grid,
		Cols:       cols,
		Rows:       rows,
		CellWidth:  cellW,
		CellHeight: cellH,
		Gap:        opts.Gap,
		Cells:      cells,
	}, nil
}

// CellLayout splits a card cell into its picture and caption parts.
// Renderers draw, in order: image, label backdrop, label text, border.
type CellLayout struct {
	Cell       Rect
	ImageArea  Rect
	LabelStrip Rect
	LabelWidth float64 // room for text inside the strip
}

// CardCell reserves a label strip at the bottom of cell.
func CardCell(cell Rect, opts LabelOptions) CellLayout {
	strip := min(opts.StripHeight(), cell.H)
	return CellLayout{
		Cell:       cell,
		ImageArea:  Rect{X: cell.X, Y: cell.Y, W: cell.W, H: cell.H - strip},
		LabelStrip: Rect{X: cell.X, Y: cell.Bottom() - strip, W: cell.W, H: strip},
		LabelWidth: max(0, cell.W-2*opts.PaddingX),
	}
}
