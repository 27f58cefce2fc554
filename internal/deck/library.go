package deck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Library is a directory holding one sub-directory per deck
type Library struct {
	Path string
}

// Entry is a deck found in the library
type Entry struct {
	Dir  string // directory name inside the library
	Deck *Deck
}

func NewLibrary(path string) *Library {
	return &Library{Path: path}
}

// Resolve returns the path to a deck, either in the library or a relative path
func (l *Library) Resolve(name string) (string, error) {
	// First, try to find the deck in the library
	deckPath := filepath.Join(l.Path, name)
	if _, err := os.Stat(deckPath); err == nil {
		return deckPath, nil
	}

	// If not found in the library, treat as a relative path
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	return "", fmt.Errorf("deck not found: %s", name)
}

// Open resolves and loads a deck. It satisfies the card source contract: the
// returned deck is a snapshot that later edits on disk do not affect.
func (l *Library) Open(_ context.Context, name string) (*Deck, error) {
	deckPath, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}
	return LoadDeck(deckPath)
}

// List returns the valid decks in the library. Directories that do not hold
// a loadable deck are skipped.
func (l *Library) List() ([]Entry, error) {
	libraryPath, err := filepath.EvalSymlinks(l.Path)
	if err != nil {
		return nil, fmt.Errorf("error resolving deck library: %w", err)
	}

	entries, err := os.ReadDir(libraryPath)
	if err != nil {
		return nil, fmt.Errorf("error reading deck library: %w", err)
	}

	var decks []Entry
	for _, entry := range entries {
		// Resolve the symbolic link or regular entry
		entryPath := filepath.Join(libraryPath, entry.Name())
		fileInfo, err := os.Stat(entryPath)
		if err != nil || !fileInfo.IsDir() {
			continue
		}

		d, err := LoadDeck(entryPath)
		if err != nil {
			// Not a valid deck, skip
			continue
		}
		decks = append(decks, Entry{Dir: entry.Name(), Deck: d})
	}

	return decks, nil
}
