package cmd

import (
	"fmt"
	"strings"
	"testing"

	"github.com/arcanaland/bingomancer/internal/board"
	"github.com/arcanaland/bingomancer/internal/card"
)

func gridBoard(gridSize int, title func(i int) string) board.Board {
	cards := make([]card.Card, gridSize)
	for i := range cards {
		cards[i] = card.Card{ID: fmt.Sprintf("c%d", i), Title: title(i)}
	}
	return board.Board{ID: "b", Cards: cards, GridSize: gridSize}
}

func TestFormatBoardGrid(t *testing.T) {
	b := gridBoard(9, func(i int) string { return fmt.Sprintf("card %d", i) })
	out := formatBoardGrid(b, 40)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	for _, line := range lines {
		if n := len([]rune(line)); n > 40 || n != len([]rune(lines[0])) {
			t.Errorf("line width %d: %q", n, line)
		}
	}
	if !strings.Contains(lines[1], "CARD 0") || !strings.Contains(lines[5], "CARD 8") {
		t.Errorf("titles missing or out of order:\n%s", out)
	}
}

func TestFormatBoardGrid_TruncatesLongTitles(t *testing.T) {
	b := gridBoard(16, func(int) string { return "a very long title that cannot fit" })
	out := formatBoardGrid(b, 50)

	if !strings.Contains(out, "…") {
		t.Errorf("expected truncated titles:\n%s", out)
	}
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if n := len([]rune(line)); n > 50 {
			t.Errorf("line too wide (%d): %q", n, line)
		}
	}
}
