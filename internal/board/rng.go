package board

import (
	"math/rand/v2"
	"sync"

	"github.com/arcanaland/bingomancer/internal/card"
)

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// stdRNG delegates to math/rand/v2 (auto-seeded, safe for concurrent use).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

// DefaultRNG returns the process-wide random source.
func DefaultRNG() RNG {
	return stdRNG{}
}

// ShuffleCards performs an in-place Fisher-Yates shuffle.
func ShuffleCards(cards []card.Card, rng RNG) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// lockedRNG serializes access to a caller-supplied RNG so one Generator can
// serve concurrent batches.
type lockedRNG struct {
	mu  sync.Mutex
	rng RNG
}

func (l *lockedRNG) shuffle(cards []card.Card) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ShuffleCards(cards, l.rng)
}
