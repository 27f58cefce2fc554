package layout

import (
	"math"
	"testing"
)

func TestDeckPages_Paginates(t *testing.T) {
	pages, err := DeckPages(23, A4, DefaultDeckOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}

	wantCells := []int{10, 10, 3}
	for i, p := range pages {
		if len(p.Cells) != wantCells[i] {
			t.Errorf("page %d: %d cells, want %d", i+1, len(p.Cells), wantCells[i])
		}
		if p.First != i*10 {
			t.Errorf("page %d: first index %d", i+1, p.First)
		}
		if p.Number != i+1 || p.Total != 3 {
			t.Errorf("page %d: numbered %d of %d", i+1, p.Number, p.Total)
		}
		if !p.Page.IsLandscape() {
			t.Errorf("page %d is not landscape", i+1)
		}
	}
	if pages[1].Continuation != "PAGE 2 OF 3" {
		t.Errorf("continuation = %q", pages[1].Continuation)
	}
}

func TestDeckPages_KeepsCardAspect(t *testing.T) {
	pages, err := DeckPages(10, A4, DefaultDeckOptions())
	if err != nil {
		t.Fatal(err)
	}
	p := pages[0]
	if math.Abs(p.CellWidth/p.CellHeight-7.0/11.0) > 1e-12 {
		t.Errorf("aspect = %.6f, want %.6f", p.CellWidth/p.CellHeight, 7.0/11.0)
	}

	bounds := Rect{W: p.Page.Width, H: p.Page.Height}
	for i, c := range p.Cells {
		if !bounds.Contains(c) {
			t.Errorf("cell %d %+v leaves the page", i, c)
		}
		for j := i + 1; j < len(p.Cells); j++ {
			if c.Overlaps(p.Cells[j]) {
				t.Errorf("cells %d and %d overlap", i, j)
			}
		}
	}
}

func TestDeckPages_HeightConstrained(t *testing.T) {
	opts := DefaultDeckOptions()
	page := PageSize{Width: 2000, Height: 400}

	pages, err := DeckPages(4, page, opts)
	if err != nil {
		t.Fatal(err)
	}
	p := pages[0]

	budget := (page.Height - opts.TopMargin - opts.Margin - opts.Gap) / 2
	if math.Abs(p.CellHeight-budget) > 1e-9 {
		t.Errorf("cell height = %.4f, want the row budget %.4f", p.CellHeight, budget)
	}
	if math.Abs(p.CellWidth/p.CellHeight-7.0/11.0) > 1e-12 {
		t.Error("aspect ratio not preserved in the height-constrained case")
	}

	gridW := 5*p.CellWidth + 4*opts.Gap
	left := p.Cells[0].X
	if math.Abs(left-(page.Width-gridW)/2) > 1e-9 {
		t.Errorf("grid not centred: left edge %.4f", left)
	}
}

func TestDeckPages_EmptyDeck(t *testing.T) {
	pages, err := DeckPages(0, A4, DefaultDeckOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 1 || len(pages[0].Cells) != 0 || pages[0].Continuation != "PAGE 1 OF 1" {
		t.Errorf("unexpected pages for an empty deck: %+v", pages)
	}
}

func TestDeckPages_InvalidOptions(t *testing.T) {
	opts := DefaultDeckOptions()
	opts.Cols = 0
	if _, err := DeckPages(3, A4, opts); err == nil {
		t.Error("expected an error for a zero-column grid")
	}
}
