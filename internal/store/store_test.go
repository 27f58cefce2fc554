package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/arcanaland/bingomancer/internal/board"
	"github.com/arcanaland/bingomancer/internal/card"
	"github.com/arcanaland/bingomancer/internal/logger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "boards.db"), logger.Discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func makeBoards(prefix string, n, gridSize int) []board.Board {
	boards := make([]board.Board, n)
	for i := range boards {
		cards := make([]card.Card, gridSize)
		for j := range cards {
			cards[j] = card.Card{ID: fmt.Sprintf("c%02d", (i+j)%20), Title: "T"}
		}
		boards[i] = board.Board{ID: fmt.Sprintf("%s-%d", prefix, i), Cards: cards, GridSize: gridSize}
	}
	return boards
}

func TestSaveAndListBoards(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	boards := makeBoards("a", 3, 9)
	if err := s.SaveBoards(ctx, "family", boards); err != nil {
		t.Fatalf("SaveBoards: %v", err)
	}

	got, err := s.ListBoards(ctx, "family")
	if err != nil {
		t.Fatalf("ListBoards: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d boards, want 3", len(got))
	}
	for i, sb := range got {
		if sb.ID != boards[i].ID || sb.Position != i || sb.GridSize != 9 || sb.DeckID != "family" {
			t.Errorf("board %d = %+v", i, sb)
		}
		if !slices.Equal(sb.CardIDs, boards[i].CardIDs()) {
			t.Errorf("board %d card order = %v, want %v", i, sb.CardIDs, boards[i].CardIDs())
		}
		if !sb.CreatedAt.Equal(fixed) {
			t.Errorf("board %d created at %v", i, sb.CreatedAt)
		}
	}

	more := makeBoards("b", 2, 9)
	if err := s.SaveBoards(ctx, "family", more); err != nil {
		t.Fatal(err)
	}
	got, _ = s.ListBoards(ctx, "family")
	if len(got) != 5 || got[3].ID != "b-0" || got[4].Position != 4 {
		t.Errorf("appended boards not placed after existing ones: %+v", got)
	}
}

func TestListBoards_None(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.ListBoards(context.Background(), "empty"); !errors.Is(err, ErrNoBoards) {
		t.Errorf("expected ErrNoBoards, got %v", err)
	}
}

func TestDecksAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.SaveBoards(ctx, "family", makeBoards("f", 2, 16)); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveBoards(ctx, "animals", makeBoards("a", 4, 9)); err != nil {
		t.Fatal(err)
	}

	n, err := s.DeleteBoards(ctx, "family")
	if err != nil || n != 2 {
		t.Fatalf("DeleteBoards = %d, %v", n, err)
	}
	if c, _ := s.CountBoards(ctx, "family"); c != 0 {
		t.Errorf("family still has %d boards", c)
	}
	if c, _ := s.CountBoards(ctx, "animals"); c != 4 {
		t.Errorf("animals has %d boards, want 4", c)
	}

	var orphans int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM board_cards WHERE board_id LIKE 'f-%'`).Scan(&orphans); err != nil {
		t.Fatal(err)
	}
	if orphans != 0 {
		t.Errorf("%d card rows left behind", orphans)
	}
}

func TestReplaceBoards(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.SaveBoards(ctx, "family", makeBoards("old", 5, 9)); err != nil {
		t.Fatal(err)
	}
	if err := s.ReplaceBoards(ctx, "family", makeBoards("new", 2, 16)); err != nil {
		t.Fatalf("ReplaceBoards: %v", err)
	}

	got, err := s.ListBoards(ctx, "family")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "new-0" || got[0].Position != 0 || got[1].GridSize != 16 {
		t.Errorf("unexpected boards after replace: %+v", got)
	}
}

func TestReplaceBoards_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.SaveBoards(ctx, "family", makeBoards("keep", 3, 9)); err != nil {
		t.Fatal(err)
	}

	bad := makeBoards("new", 2, 9)
	bad[1].ID = ""
	if err := s.ReplaceBoards(ctx, "family", bad); !errors.Is(err, ErrBoardMissing) {
		t.Fatalf("expected ErrBoardMissing, got %v", err)
	}

	got, err := s.ListBoards(ctx, "family")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].ID != "keep-0" {
		t.Errorf("previous boards not preserved: %+v", got)
	}
}

func TestEmptyDeckID(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveBoards(context.Background(), "", makeBoards("x", 1, 9)); !errors.Is(err, ErrEmptyDeckID) {
		t.Errorf("expected ErrEmptyDeckID, got %v", err)
	}
}

func TestOpen_MigratesOnce(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "boards.db")

	s, err := Open(ctx, path, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveBoards(ctx, "family", makeBoards("a", 1, 9)); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(ctx, path, logger.Discard())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if c, _ := s.CountBoards(ctx, "family"); c != 1 {
		t.Errorf("boards lost on reopen, count %d", c)
	}
}
