// Package combin holds the counting rules that decide how many boards a deck
// can produce and how many to suggest.
package combin

import "math"

// Supported grid sizes.
const (
	GridKids    = 9  // 3x3
	GridClassic = 16 // 4x4
)

// Minimum deck sizes. A kids deck needs more than one board's worth of cards.
const (
	MinCardsKids    = 12
	MinCardsClassic = 16
)

// DefaultSuggestedBoards is returned when a deck cannot form a single board.
const DefaultSuggestedBoards = 8

// Fraction of the combinatorial maximum exposed as the safe board count.
const safetyMargin = 0.5

// Average number of boards each classic card should appear on.
const classicAppearances = 8

// IsSupportedGrid reports whether gridSize is one of the known layouts.
func IsSupportedGrid(gridSize int) bool {
	return gridSize == GridKids || gridSize == GridClassic
}

// GridDimension returns the number of rows (and columns) of a square grid.
func GridDimension(gridSize int) int {
	if gridSize == GridKids {
		return 3
	}
	return 4
}

// BinomialCoefficient returns C(n, k) using the multiplicative formula.
// Intermediate values are floating point, so the result is rounded.
func BinomialCoefficient(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}

	steps := min(k, n-k)
	result := 1.0
	for i := 0; i < steps; i++ {
		result *= float64(n-i) / float64(i+1)
	}

	result = math.Round(result)
	if result >= math.MaxInt64 {
		return math.MaxInt
	}
	return int(result)
}

// MaxUniqueBoards returns the number of distinct boards that can be requested
// from availableCards while keeping rejection sampling cheap.
func MaxUniqueBoards(availableCards, gridSize int) int {
	if availableCards < gridSize {
		return 0
	}
	return int(math.Floor(float64(BinomialCoefficient(availableCards, gridSize)) * safetyMargin))
}

// SuggestedBoards returns the default board count offered for a deck.
func SuggestedBoards(availableCards, gridSize int) int {
	if availableCards < gridSize {
		return DefaultSuggestedBoards
	}

	var ideal int
	if gridSize == GridKids {
		ideal = availableCards / 3
	} else {
		ideal = int(math.Round(float64(availableCards) * classicAppearances / float64(GridClassic)))
	}

	return max(1, min(ideal, MaxUniqueBoards(availableCards, gridSize)))
}

// MinCards returns the smallest deck allowed to generate boards of gridSize.
func MinCards(gridSize int) int {
	switch gridSize {
	case GridKids:
		return MinCardsKids
	case GridClassic:
		return MinCardsClassic
	default:
		return gridSize
	}
}

// CanGenerate reports whether a deck of availableCards meets the minimum for gridSize.
func CanGenerate(availableCards, gridSize int) bool {
	return availableCards >= MinCards(gridSize)
}
