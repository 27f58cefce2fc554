package deck

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/arcanaland/bingomancer/internal/card"
)

// ErrCardNotFound is returned by GetCard for unknown ids
var ErrCardNotFound = errors.New("card not found")

// imageExtensions are tried, in order, when a card has no image reference
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// Deck represents a custom bingo deck
type Deck struct {
	ID          string
	Name        string
	Author      string
	Description string
	GridSize    int // Preferred grid size, 0 when unset
	Path        string

	cards []card.Card
	index map[string]int

	// Raw config data
	config *DeckConfig
}

// LoadDeck loads a bingo deck from a directory
func LoadDeck(deckPath string) (*Deck, error) {
	// Check if deck.toml exists
	deckTomlPath := filepath.Join(deckPath, "deck.toml")
	if _, err := os.Stat(deckTomlPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("deck.toml not found in %s", deckPath)
	}

	// Decode deck.toml
	var config DeckConfig
	if _, err := toml.DecodeFile(deckTomlPath, &config); err != nil {
		return nil, fmt.Errorf("error parsing deck.toml: %w", err)
	}

	deck := &Deck{
		ID:          config.Deck.ID,
		Name:        config.Deck.Name,
		Author:      config.Deck.Author,
		Description: config.Deck.Description,
		GridSize:    config.Deck.GridSize,
		Path:        deckPath,
		index:       make(map[string]int, len(config.Cards)),
		config:      &config,
	}

	// Fall back to the directory name for decks without an id
	if deck.ID == "" {
		deck.ID = filepath.Base(filepath.Clean(deckPath))
	}
	if deck.Name == "" {
		deck.Name = deck.ID
	}

	if err := deck.loadCards(); err != nil {
		return nil, fmt.Errorf("error loading cards: %w", err)
	}

	return deck, nil
}

// loadCards builds the card list in file order
func (d *Deck) loadCards() error {
	d.cards = make([]card.Card, 0, len(d.config.Cards))

	for i, entry := range d.config.Cards {
		id := strings.TrimSpace(entry.ID)
		if id == "" {
			id = Slug(entry.Title)
		}
		if id == "" {
			return fmt.Errorf("card %d has neither id nor title", i+1)
		}
		if _, dup := d.index[id]; dup {
			return fmt.Errorf("duplicate card id: %s", id)
		}

		c := card.Card{
			ID:    id,
			Title: entry.Title,
			Image: d.resolveImage(id, entry.Image),
		}

		d.index[id] = len(d.cards)
		d.cards = append(d.cards, c)
	}

	return nil
}

// resolveImage turns an image reference into a path on disk. Cards without a
// reference pick up images/<id>.<ext> when such a file exists.
func (d *Deck) resolveImage(id, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref != "" {
		if filepath.IsAbs(ref) {
			return ref
		}
		return filepath.Join(d.Path, ref)
	}

	for _, ext := range imageExtensions {
		path := filepath.Join(d.Path, "images", id+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Cards returns a snapshot of the deck's cards in file order
func (d *Deck) Cards() []card.Card {
	return slices.Clone(d.cards)
}

// Len returns the number of cards in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// GetCard gets a card by its id
func (d *Deck) GetCard(cardID string) (card.Card, error) {
	i, ok := d.index[cardID]
	if !ok {
		return card.Card{}, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
	}
	return d.cards[i], nil
}

// Slug derives a card id from a title
func Slug(title string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// Deck configuration structures
type DeckConfig struct {
	Deck  DeckSection `toml:"deck"`
	Cards []CardEntry `toml:"cards"`
}

type DeckSection struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Author      string `toml:"author"`
	Description string `toml:"description"`
	GridSize    int    `toml:"grid_size"`
	CreatedDate string `toml:"created_date"`
}

type CardEntry struct {
	ID    string `toml:"id"`
	Title string `toml:"title"`
	Image string `toml:"image"`
}
