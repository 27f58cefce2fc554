package board

import (
	"slices"
	"strings"

	"github.com/arcanaland/bingomancer/internal/card"
	"github.com/arcanaland/bingomancer/internal/combin"
)

// Board is one dealt game card. Cards are stored row-major.
type Board struct {
	ID       string
	Cards    []card.Card
	GridSize int
}

// Dimension returns the number of rows and columns of the board.
func (b Board) Dimension() int {
	return combin.GridDimension(b.GridSize)
}

// CardIDs returns the card ids in grid order.
func (b Board) CardIDs() []string {
	return card.IDs(b.Cards)
}

// Cell returns the card at row, col.
func (b Board) Cell(row, col int) (card.Card, bool) {
	dim := b.Dimension()
	if row < 0 || col < 0 || row >= dim || col >= dim {
		return card.Card{}, false
	}
	idx := row*dim + col
	if idx >= len(b.Cards) {
		return card.Card{}, false
	}
	return b.Cards[idx], true
}

// SameCards reports whether two boards hold the same set of cards,
// ignoring position.
func SameCards(a, b Board) bool {
	if len(a.Cards) != len(b.Cards) {
		return false
	}
	return slices.Equal(sortedIDs(a.Cards), sortedIDs(b.Cards))
}

// CountDuplicates returns how many boards repeat the card set of an earlier board.
func CountDuplicates(boards []Board) int {
	seen := make(map[string]struct{}, len(boards))
	dups := 0
	for _, b := range boards {
		key := setKey(b.Cards)
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}

func sortedIDs(cards []card.Card) []string {
	ids := card.IDs(cards)
	slices.Sort(ids)
	return ids
}

// setKey is an order-independent key for a set of cards.
func setKey(cards []card.Card) string {
	return strings.Join(sortedIDs(cards), "\x1f")
}
