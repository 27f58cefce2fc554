package layout

import (
	"strings"
	"testing"
)

func testLabelOptions() LabelOptions {
	return LabelOptions{
		PreferredSize: 11,
		MinSize:       6,
		Step:          0.5,
		LineFactor:    1.2,
		PaddingX:      4,
		PaddingY:      3,
	}
}

func TestFitLabel_FitsAtPreferredSize(t *testing.T) {
	m := MonospaceMeasurer{Advance: 0.6}
	l := FitLabel("  grandma  ", 100, m, testLabelOptions())

	if l.Text != "GRANDMA" || l.Size != 11 || l.Truncated {
		t.Errorf("unexpected label: %+v", l)
	}
}

func TestFitLabel_ShrinksBeforeTruncating(t *testing.T) {
	m := MonospaceMeasurer{Advance: 0.6}
	l := FitLabel("hello", 20, m, testLabelOptions())

	if l.Truncated {
		t.Fatalf("expected shrinking to suffice, got %+v", l)
	}
	if l.Size != 6.5 {
		t.Errorf("size = %v, want 6.5", l.Size)
	}
	if l.Width > 20 {
		t.Errorf("width %v exceeds 20", l.Width)
	}
}

func TestFitLabel_TruncatesWithEllipsis(t *testing.T) {
	m := MonospaceMeasurer{Advance: 0.6}
	l := FitLabel("abcdefghijklmnopqrstuvwxyz", 30, m, testLabelOptions())

	if !l.Truncated || l.Size != 6 {
		t.Fatalf("expected truncation at the minimum size, got %+v", l)
	}
	if l.Text != "ABCDEFG"+Ellipsis {
		t.Errorf("text = %q", l.Text)
	}
	if got := m.StringWidth(l.Text, l.Size); got > 30 || l.Width > 30 {
		t.Errorf("rendered width %v exceeds 30", got)
	}
}

func TestFitLabel_TrimsSpaceBeforeEllipsis(t *testing.T) {
	m := MonospaceMeasurer{Advance: 1}
	opts := LabelOptions{PreferredSize: 1, MinSize: 1, Step: 0.5}

	l := FitLabel("ab cdefghij", 4, m, opts)
	if l.Text != "AB"+Ellipsis {
		t.Errorf("text = %q, want %q", l.Text, "AB"+Ellipsis)
	}
}

func TestFitLabel_EllipsisTooWide(t *testing.T) {
	m := MonospaceMeasurer{Advance: 1}
	l := FitLabel("abc", 0.5, m, LabelOptions{PreferredSize: 1, MinSize: 1})

	if l.Text != "" || !l.Truncated {
		t.Errorf("expected an empty truncated label, got %+v", l)
	}
}

func TestFitLabel_Empty(t *testing.T) {
	l := FitLabel(" \t\n ", 10, MonospaceMeasurer{Advance: 1}, testLabelOptions())
	if l.Text != "" || l.Truncated || l.Width != 0 {
		t.Errorf("unexpected label for blank title: %+v", l)
	}
}

func TestFitLabel_ZeroStepJumpsToMinimum(t *testing.T) {
	opts := testLabelOptions()
	opts.Step = 0
	l := FitLabel("hello", 20, MonospaceMeasurer{Advance: 0.6}, opts)
	if l.Size != 6 {
		t.Errorf("size = %v, want 6", l.Size)
	}
}

func TestFitLabel_NeverOverflows(t *testing.T) {
	m := MonospaceMeasurer{Advance: 0.55}
	opts := testLabelOptions()
	titles := []string{
		"a",
		"Aunt Marjorie's famous lemon cake",
		strings.Repeat("w", 200),
		"Ünïcödé títle wïth áccents",
		"word " + strings.Repeat("x ", 40),
	}
	for _, title := range titles {
		for width := 1.0; width <= 200; width += 3.7 {
			l := FitLabel(title, width, m, opts)
			if got := m.StringWidth(l.Text, l.Size); got > width {
				t.Fatalf("%q at %.1f: width %.3f overflows", title, width, got)
			}
			if l.Size < opts.MinSize || l.Size > opts.PreferredSize {
				t.Fatalf("%q at %.1f: size %.2f out of range", title, width, l.Size)
			}
		}
	}
}
