package validator

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/bingomancer/internal/combin"
	"github.com/arcanaland/bingomancer/internal/deck"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	DeckPath string
	Results  ValidationResults

	config deck.DeckConfig
}

func NewValidator(deckPath string) *Validator {
	return &Validator{
		DeckPath: deckPath,
		Results:  ValidationResults{},
	}
}

// Validate checks a deck directory. The returned error is only set when
// deck.toml cannot be read at all; everything else is reported in the results.
func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.validateDeckToml(); err != nil {
		return v.Results, err
	}

	v.validateCards()
	v.validateImages()
	v.validateSize()

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) validateDeckToml() error {
	deckTomlPath := filepath.Join(v.DeckPath, "deck.toml")
	if _, err := os.Stat(deckTomlPath); os.IsNotExist(err) {
		return fmt.Errorf("deck.toml not found in %s", v.DeckPath)
	}

	if _, err := toml.DecodeFile(deckTomlPath, &v.config); err != nil {
		return fmt.Errorf("error parsing deck.toml: %v", err)
	}

	if v.config.Deck.ID == "" {
		v.errorf("deck.id is required in deck.toml")
	}

	if v.config.Deck.Name == "" {
		v.errorf("deck.name is required in deck.toml")
	}

	if gs := v.config.Deck.GridSize; gs != 0 && !combin.IsSupportedGrid(gs) {
		v.warnf("unsupported grid_size %d (supported: %d, %d), the default will be used",
			gs, combin.GridKids, combin.GridClassic)
	}

	return nil
}

// validateCards checks ids and titles
func (v *Validator) validateCards() {
	seen := make(map[string]int, len(v.config.Cards))

	for i, entry := range v.config.Cards {
		pos := i + 1
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			v.errorf("card %d has an empty title", pos)
		}

		id := strings.TrimSpace(entry.ID)
		if id == "" {
			id = deck.Slug(title)
		}
		if id == "" {
			continue
		}

		if first, dup := seen[id]; dup {
			v.errorf("duplicate card id %q (cards %d and %d)", id, first, pos)
			continue
		}
		seen[id] = pos
	}
}

// validateImages checks that referenced images exist and decode
func (v *Validator) validateImages() {
	d, err := deck.LoadDeck(v.DeckPath)
	if err != nil {
		// Already reported by validateCards
		return
	}

	cards := d.Cards()
	withoutImage := 0
	for i, entry := range v.config.Cards {
		c := cards[i]
		if !c.HasImage() {
			withoutImage++
			continue
		}

		f, err := os.Open(c.Image)
		if os.IsNotExist(err) {
			if strings.TrimSpace(entry.Image) != "" {
				v.errorf("image not found for card %s: %s", c.ID, entry.Image)
			}
			continue
		}
		if err != nil {
			v.errorf("error opening image for card %s: %v", c.ID, err)
			continue
		}

		_, _, err = image.DecodeConfig(f)
		f.Close()
		if err != nil {
			v.errorf("image for card %s cannot be decoded: %v", c.ID, err)
		}
	}

	if withoutImage > 0 {
		v.warnf("%d card(s) have no image and will print with a title only", withoutImage)
	}
}

// validateSize checks the deck against the minimum for each grid
func (v *Validator) validateSize() {
	n := len(v.config.Cards)

	if need := combin.MinCards(combin.GridKids); n < need {
		v.errorf("deck has %d cards, at least %d are needed for %d-card boards",
			n, need, combin.GridKids)
		return
	}

	if need := combin.MinCards(combin.GridClassic); n < need {
		v.warnf("deck has %d cards, at least %d are needed for %d-card boards",
			n, need, combin.GridClassic)
	}
}
