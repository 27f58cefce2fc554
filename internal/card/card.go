package card

import "strings"

// Card represents a single card of a bingo deck
type Card struct {
	ID    string // Stable identifier, unique within its deck
	Title string // Caption printed under the picture
	Image string // Path to the picture, empty when the card has none
}

// HasImage reports whether the card carries an image reference
func (c Card) HasImage() bool {
	return strings.TrimSpace(c.Image) != ""
}

// Label returns the title the way it is printed on boards
func (c Card) Label() string {
	return NormalizeTitle(c.Title)
}

// NormalizeTitle collapses runs of whitespace, trims and uppercases a title
func NormalizeTitle(title string) string {
	return strings.ToUpper(strings.Join(strings.Fields(title), " "))
}

// IDs returns the ids of cards in order
func IDs(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}
