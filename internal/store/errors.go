package store

import "errors"

var (
	ErrNoBoards     = errors.New("no boards stored for deck")
	ErrEmptyDeckID  = errors.New("deck id is empty")
	ErrBoardMissing = errors.New("board has no id")
)
