package board

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientCards   = errors.New("insufficient cards")
	ErrUnsupportedGridSize = errors.New("unsupported grid size")
	ErrInvalidCount        = errors.New("board count must not be negative")
	ErrDuplicateCardID     = errors.New("duplicate card id in pool")
)

// InsufficientCardsError is returned when the pool cannot fill a single board.
type InsufficientCardsError struct {
	Required  int
	Available int
}

func (e *InsufficientCardsError) Error() string {
	return fmt.Sprintf("not enough cards for a %d-card board: need %d, have %d",
		e.Required, e.Required, e.Available)
}

func (e *InsufficientCardsError) Is(target error) bool {
	return target == ErrInsufficientCards
}
