// Package store persists dealt boards in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/georgysavva/scany/sqlscan"
	_ "modernc.org/sqlite"

	"github.com/arcanaland/bingomancer/internal/board"
)

// StoredBoard is a board as persisted: card ids only, in grid order.
type StoredBoard struct {
	ID        string
	DeckID    string
	GridSize  int
	Position  int
	CardIDs   []string
	CreatedAt time.Time
}

type boardRow struct {
	BoardID   string `db:"board_id"`
	DeckID    string `db:"deck_id"`
	GridSize  int    `db:"grid_size"`
	Position  int    `db:"position"`
	CreatedAt int64  `db:"created_at"`
}

type cardRow struct {
	BoardID string `db:"board_id"`
	Slot    int    `db:"slot"`
	CardID  string `db:"card_id"`
}

type Store struct {
	db  *sql.DB
	log *slog.Logger
	now func() time.Time
}

func rollback(tx *sql.Tx) {
	if tx != nil {
		_ = tx.Rollback()
	}
}

// New wraps an already migrated database.
func New(logger *slog.Logger, db *sql.DB) *Store {
	return &Store{
		db:  db,
		log: logger.With("component", "store"),
		now: time.Now,
	}
}

// Open opens (creating if needed) the SQLite database at path and migrates it.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("database ready", "path", path)
	return New(logger, db), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBoards appends boards after any already stored for the deck.
func (s *Store) SaveBoards(ctx context.Context, deckID string, boards []board.Board) error {
	s.log.DebugContext(ctx, "saving boards", "deck_id", deckID, "count", len(boards))

	if deckID == "" {
		return ErrEmptyDeckID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	defer rollback(tx)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to begin transaction", "error", err)
		return err
	}

	if err := s.insertBoards(ctx, tx, deckID, boards); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.log.ErrorContext(ctx, "failed to commit transaction", "error", err)
		return err
	}
	return nil
}

// ReplaceBoards drops every stored board of the deck and stores boards in
// their place, atomically.
func (s *Store) ReplaceBoards(ctx context.Context, deckID string, boards []board.Board) error {
	s.log.DebugContext(ctx, "replacing boards", "deck_id", deckID, "count", len(boards))

	if deckID == "" {
		return ErrEmptyDeckID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	defer rollback(tx)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to begin transaction", "error", err)
		return err
	}

	if _, err := deleteBoards(ctx, tx, deckID); err != nil {
		s.log.ErrorContext(ctx, "failed to delete boards", "error", err)
		return err
	}
	if err := s.insertBoards(ctx, tx, deckID, boards); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.log.ErrorContext(ctx, "failed to commit transaction", "error", err)
		return err
	}

	s.log.DebugContext(ctx, "boards replaced", "deck_id", deckID, "count", len(boards))
	return nil
}

// DeleteBoards removes every board of the deck and reports how many went.
func (s *Store) DeleteBoards(ctx context.Context, deckID string) (int, error) {
	s.log.DebugContext(ctx, "deleting boards", "deck_id", deckID)

	tx, err := s.db.BeginTx(ctx, nil)
	defer rollback(tx)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to begin transaction", "error", err)
		return 0, err
	}

	n, err := deleteBoards(ctx, tx, deckID)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to delete boards", "error", err)
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		s.log.ErrorContext(ctx, "failed to commit transaction", "error", err)
		return 0, err
	}
	return n, nil
}

func (s *Store) CountBoards(ctx context.Context, deckID string) (int, error) {
	const query = `
		SELECT COUNT(*) FROM boards WHERE deck_id = ?
	`
	var count int
	if err := sqlscan.Get(ctx, s.db, &count, query, deckID); err != nil {
		s.log.ErrorContext(ctx, "failed to count boards", "error", err)
		return 0, err
	}
	return count, nil
}

// ListBoards returns the stored boards of the deck in position order.
func (s *Store) ListBoards(ctx context.Context, deckID string) ([]StoredBoard, error) {
	s.log.DebugContext(ctx, "listing boards", "deck_id", deckID)

	const boardsQuery = `
		SELECT board_id, deck_id, grid_size, position, created_at
		FROM boards
		WHERE deck_id = ?
		ORDER BY position
	`
	var rows []boardRow
	if err := sqlscan.Select(ctx, s.db, &rows, boardsQuery, deckID); err != nil {
		s.log.ErrorContext(ctx, "failed to list boards", "error", err)
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoBoards
	}

	const cardsQuery = `
		SELECT bc.board_id, bc.slot, bc.card_id
		FROM board_cards bc
		JOIN boards b ON b.board_id = bc.board_id
		WHERE b.deck_id = ?
		ORDER BY b.position, bc.slot
	`
	var cards []cardRow
	if err := sqlscan.Select(ctx, s.db, &cards, cardsQuery, deckID); err != nil {
		s.log.ErrorContext(ctx, "failed to list board cards", "error", err)
		return nil, err
	}

	byBoard := make(map[string][]string, len(rows))
	for _, c := range cards {
		byBoard[c.BoardID] = append(byBoard[c.BoardID], c.CardID)
	}

	out := make([]StoredBoard, len(rows))
	for i, r := range rows {
		out[i] = StoredBoard{
			ID:        r.BoardID,
			DeckID:    r.DeckID,
			GridSize:  r.GridSize,
			Position:  r.Position,
			CardIDs:   byBoard[r.BoardID],
			CreatedAt: time.UnixMilli(r.CreatedAt),
		}
	}

	s.log.DebugContext(ctx, "boards listed", "deck_id", deckID, "count", len(out))
	return out, nil
}

func (s *Store) insertBoards(ctx context.Context, tx *sql.Tx, deckID string, boards []board.Board) error {
	const nextQuery = `
		SELECT COALESCE(MAX(position) + 1, 0) FROM boards WHERE deck_id = ?
	`
	var next int
	if err := sqlscan.Get(ctx, tx, &next, nextQuery, deckID); err != nil {
		s.log.ErrorContext(ctx, "failed to read next board position", "error", err)
		return err
	}

	const boardQuery = `
		INSERT INTO boards (board_id, deck_id, grid_size, position, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	const cardQuery = `
		INSERT INTO board_cards (board_id, slot, card_id) VALUES (?, ?, ?)
	`

	created := s.now().UnixMilli()
	for i, b := range boards {
		if b.ID == "" {
			return ErrBoardMissing
		}
		if _, err := tx.ExecContext(ctx, boardQuery, b.ID, deckID, b.GridSize, next+i, created); err != nil {
			s.log.ErrorContext(ctx, "failed to insert board", "board_id", b.ID, "error", err)
			return err
		}
		for slot, id := range b.CardIDs() {
			if _, err := tx.ExecContext(ctx, cardQuery, b.ID, slot, id); err != nil {
				s.log.ErrorContext(ctx, "failed to insert board card", "board_id", b.ID, "error", err)
				return err
			}
		}
	}
	return nil
}

func deleteBoards(ctx context.Context, tx *sql.Tx, deckID string) (int, error) {
	const cardsQuery = `
		DELETE FROM board_cards
		WHERE board_id IN (SELECT board_id FROM boards WHERE deck_id = ?)
	`
	if _, err := tx.ExecContext(ctx, cardsQuery, deckID); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM boards WHERE deck_id = ?`, deckID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
