package board

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/arcanaland/bingomancer/internal/card"
	"github.com/arcanaland/bingomancer/internal/combin"
)

// MaxAttempts is the default number of shuffles tried per board before a
// repeated board is accepted.
const MaxAttempts = 1000

// Generator deals batches of boards from a card pool.
type Generator struct {
	rng *lockedRNG
	log *slog.Logger

	// MaxAttempts bounds the rejection sampling for each board.
	MaxAttempts int
	// NewID returns the identifier of a freshly dealt board.
	NewID func() string
}

// NewGenerator creates a generator. A nil rng uses DefaultRNG and a nil
// logger discards output.
func NewGenerator(rng RNG, logger *slog.Logger) *Generator {
	if rng == nil {
		rng = DefaultRNG()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{
		rng:         &lockedRNG{rng: rng},
		log:         logger.With("component", "generator"),
		MaxAttempts: MaxAttempts,
		NewID:       uuid.NewString,
	}
}

// Generate deals count boards of gridSize cards each. Boards within the batch
// have distinct card sets unless the attempt budget runs out, in which case
// the last candidate is kept anyway. The pool is not modified.
func (g *Generator) Generate(pool []card.Card, count, gridSize int) ([]Board, error) {
	if !combin.IsSupportedGrid(gridSize) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedGridSize, gridSize)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if len(pool) < gridSize {
		return nil, &InsufficientCardsError{Required: gridSize, Available: len(pool)}
	}
	if id, ok := firstDuplicateID(pool); ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCardID, id)
	}

	attempts := max(1, g.MaxAttempts)
	work := slices.Clone(pool)
	accepted := make(map[string]struct{}, count)
	boards := make([]Board, 0, count)

	for n := 0; n < count; n++ {
		var candidate []card.Card
		var key string
		unique := false

		for attempt := 0; attempt < attempts; attempt++ {
			g.rng.shuffle(work)
			candidate = work[:gridSize]
			key = setKey(candidate)
			if _, dup := accepted[key]; !dup {
				unique = true
				break
			}
		}

		if !unique {
			g.log.Warn("attempt budget exhausted, keeping repeated board",
				"board", n+1,
				"attempts", attempts,
				"pool_size", len(pool),
				"grid_size", gridSize,
			)
		}

		accepted[key] = struct{}{}
		boards = append(boards, Board{
			ID:       g.NewID(),
			Cards:    slices.Clone(candidate),
			GridSize: gridSize,
		})
	}

	g.log.Debug("boards generated",
		"count", len(boards),
		"grid_size", gridSize,
		"pool_size", len(pool),
	)

	return boards, nil
}

func firstDuplicateID(pool []card.Card) (string, bool) {
	seen := make(map[string]struct{}, len(pool))
	for _, c := range pool {
		if _, ok := seen[c.ID]; ok {
			return c.ID, true
		}
		seen[c.ID] = struct{}{}
	}
	return "", false
}
