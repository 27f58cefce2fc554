package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBelowMinimum = errors.New("deck has fewer cards than the minimum for this grid")
	ErrStaleBoard   = errors.New("board references cards that are no longer in the deck")
)

// StaleBoardError names a stored board whose cards were removed from the deck
// after it was dealt.
type StaleBoardError struct {
	Position int
	BoardID  string
	Missing  []string
}

func (e *StaleBoardError) Error() string {
	return fmt.Sprintf("board %d (%s) references missing cards: %s",
		e.Position+1, e.BoardID, strings.Join(e.Missing, ", "))
}

func (e *StaleBoardError) Is(target error) bool {
	return target == ErrStaleBoard
}
