// Package service ties the deck library, the board generator, storage and
// rendering together. Commands talk to it rather than to the parts.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/arcanaland/bingomancer/internal/board"
	"github.com/arcanaland/bingomancer/internal/card"
	"github.com/arcanaland/bingomancer/internal/combin"
	"github.com/arcanaland/bingomancer/internal/deck"
	"github.com/arcanaland/bingomancer/internal/imagestore"
	"github.com/arcanaland/bingomancer/internal/store"
)

// CardSource hands out deck snapshots by name.
type CardSource interface {
	Open(ctx context.Context, name string) (*deck.Deck, error)
}

// BoardStore persists boards per deck id.
type BoardStore interface {
	ReplaceBoards(ctx context.Context, deckID string, boards []board.Board) error
	DeleteBoards(ctx context.Context, deckID string) (int, error)
	ListBoards(ctx context.Context, deckID string) ([]store.StoredBoard, error)
	CountBoards(ctx context.Context, deckID string) (int, error)
}

// Renderer writes documents.
type Renderer interface {
	RenderBoards(w io.Writer, deckName string, boards []board.Board, images map[string][]byte) error
	RenderDeck(w io.Writer, deckName string, cards []card.Card, images map[string][]byte) error
}

// Suggestion describes what can be dealt from a deck.
type Suggestion struct {
	DeckID      string
	DeckName    string
	GridSize    int
	Available   int
	MinCards    int
	Suggested   int
	MaxUnique   int
	CanGenerate bool
	Stored      int
}

type Service struct {
	cards    CardSource
	boards   BoardStore
	images   imagestore.Resolver
	renderer Renderer
	gen      *board.Generator
	log      *slog.Logger

	// Concurrency bounds parallel image fetches while printing.
	Concurrency int
	// DefaultGrid is used when neither the caller nor the deck picks a grid.
	DefaultGrid int
}

func New(logger *slog.Logger, cards CardSource, boards BoardStore, images imagestore.Resolver, renderer Renderer, gen *board.Generator) *Service {
	return &Service{
		cards:       cards,
		boards:      boards,
		images:      images,
		renderer:    renderer,
		gen:         gen,
		log:         logger.With("component", "service"),
		Concurrency: 4,
		DefaultGrid: combin.GridClassic,
	}
}

// gridFor picks the grid size: explicit, then the deck's preference, then
// the service default.
func (s *Service) gridFor(d *deck.Deck, gridSize int) int {
	if gridSize != 0 {
		return gridSize
	}
	if combin.IsSupportedGrid(d.GridSize) {
		return d.GridSize
	}
	if s.DefaultGrid != 0 {
		return s.DefaultGrid
	}
	return combin.GridClassic
}

func (s *Service) Suggest(ctx context.Context, deckName string, gridSize int) (Suggestion, error) {
	d, err := s.cards.Open(ctx, deckName)
	if err != nil {
		return Suggestion{}, err
	}

	gridSize = s.gridFor(d, gridSize)
	if !combin.IsSupportedGrid(gridSize) {
		return Suggestion{}, fmt.Errorf("%w: %d", board.ErrUnsupportedGridSize, gridSize)
	}

	stored, err := s.boards.CountBoards(ctx, d.ID)
	if err != nil {
		return Suggestion{}, err
	}

	available := d.Len()
	return Suggestion{
		DeckID:      d.ID,
		DeckName:    d.Name,
		GridSize:    gridSize,
		Available:   available,
		MinCards:    combin.MinCards(gridSize),
		Suggested:   combin.SuggestedBoards(available, gridSize),
		MaxUnique:   combin.MaxUniqueBoards(available, gridSize),
		CanGenerate: combin.CanGenerate(available, gridSize),
		Stored:      stored,
	}, nil
}

// Generate deals count boards and replaces whatever was stored for the deck.
// A count of zero deals the suggested number.
func (s *Service) Generate(ctx context.Context, deckName string, gridSize, count int) ([]board.Board, error) {
	d, err := s.cards.Open(ctx, deckName)
	if err != nil {
		return nil, err
	}

	gridSize = s.gridFor(d, gridSize)
	if !combin.IsSupportedGrid(gridSize) {
		return nil, fmt.Errorf("%w: %d", board.ErrUnsupportedGridSize, gridSize)
	}

	pool := d.Cards()
	if !combin.CanGenerate(len(pool), gridSize) {
		return nil, fmt.Errorf("%w: %d cards, need %d", ErrBelowMinimum, len(pool), combin.MinCards(gridSize))
	}

	if count == 0 {
		count = combin.SuggestedBoards(len(pool), gridSize)
	}
	if limit := combin.MaxUniqueBoards(len(pool), gridSize); count > limit {
		s.log.WarnContext(ctx, "requested more boards than the deck can keep unique",
			"deck_id", d.ID,
			"count", count,
			"max_unique", limit,
		)
	}

	boards, err := s.gen.Generate(pool, count, gridSize)
	if err != nil {
		return nil, err
	}

	if err := s.boards.ReplaceBoards(ctx, d.ID, boards); err != nil {
		return nil, fmt.Errorf("failed to store boards: %w", err)
	}

	s.log.InfoContext(ctx, "boards generated", "deck_id", d.ID, "count", len(boards), "grid_size", gridSize)
	return boards, nil
}

// Clear deletes every stored board of the deck.
func (s *Service) Clear(ctx context.Context, deckName string) (int, error) {
	d, err := s.cards.Open(ctx, deckName)
	if err != nil {
		return 0, err
	}
	return s.boards.DeleteBoards(ctx, d.ID)
}

// Boards loads the stored boards of a deck with their cards resolved against
// the current deck contents.
func (s *Service) Boards(ctx context.Context, deckName string) (*deck.Deck, []board.Board, error) {
	d, err := s.cards.Open(ctx, deckName)
	if err != nil {
		return nil, nil, err
	}

	stored, err := s.boards.ListBoards(ctx, d.ID)
	if err != nil {
		return d, nil, err
	}

	boards := make([]board.Board, 0, len(stored))
	for _, sb := range stored {
		b := board.Board{ID: sb.ID, GridSize: sb.GridSize, Cards: make([]card.Card, 0, len(sb.CardIDs))}

		var missing []string
		for _, id := range sb.CardIDs {
			c, err := d.GetCard(id)
			if errors.Is(err, deck.ErrCardNotFound) {
				missing = append(missing, id)
				continue
			}
			if err != nil {
				return d, nil, err
			}
			b.Cards = append(b.Cards, c)
		}
		if len(missing) > 0 {
			return d, nil, &StaleBoardError{Position: sb.Position, BoardID: sb.ID, Missing: missing}
		}

		boards = append(boards, b)
	}

	return d, boards, nil
}

// PrintBoards renders the stored boards of a deck to w.
func (s *Service) PrintBoards(ctx context.Context, deckName string, w io.Writer) error {
	d, boards, err := s.Boards(ctx, deckName)
	if err != nil {
		return err
	}

	var cards []card.Card
	for _, b := range boards {
		cards = append(cards, b.Cards...)
	}

	images, err := s.fetchImages(ctx, cards)
	if err != nil {
		return err
	}
	return s.renderer.RenderBoards(w, d.Name, boards, images)
}

// PrintDeck renders every card of the deck to w.
func (s *Service) PrintDeck(ctx context.Context, deckName string, w io.Writer) error {
	d, err := s.cards.Open(ctx, deckName)
	if err != nil {
		return err
	}

	cards := d.Cards()
	images, err := s.fetchImages(ctx, cards)
	if err != nil {
		return err
	}
	return s.renderer.RenderDeck(w, d.Name, cards, images)
}

func (s *Service) fetchImages(ctx context.Context, cards []card.Card) (map[string][]byte, error) {
	got, err := imagestore.Prefetch(ctx, s.images, cards, s.Concurrency)
	if err != nil {
		return nil, err
	}
	for id, ferr := range got.Failed {
		s.log.WarnContext(ctx, "could not load card image", "card_id", id, "error", ferr)
	}
	return got.Images, nil
}
