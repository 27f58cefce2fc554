package deck

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeDeck(t *testing.T, dir, toml string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "deck.toml"), []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
}

const familyDeck = `
[deck]
id = "family"
name = "Family Bingo"
grid_size = 9

[[cards]]
id = "grandma"
title = "Grandma"
image = "photos/grandma.jpg"

[[cards]]
title = "Uncle Bob"

[[cards]]
id = "cat"
title = "The Cat"
`

func TestLoadDeck(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "family")
	writeDeck(t, dir, familyDeck)

	if err := os.MkdirAll(filepath.Join(dir, "images"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "images", "cat.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := LoadDeck(dir)
	if err != nil {
		t.Fatalf("LoadDeck: %v", err)
	}

	if d.ID != "family" || d.Name != "Family Bingo" || d.GridSize != 9 {
		t.Errorf("unexpected deck header: %+v", d)
	}
	if d.Len() != 3 {
		t.Fatalf("expected 3 cards, got %d", d.Len())
	}

	cards := d.Cards()
	if cards[0].ID != "grandma" || cards[1].ID != "uncle_bob" || cards[2].ID != "cat" {
		t.Errorf("unexpected card order or ids: %v", cards)
	}
	if cards[0].Image != filepath.Join(dir, "photos", "grandma.jpg") {
		t.Errorf("image reference not resolved: %q", cards[0].Image)
	}
	if cards[1].HasImage() {
		t.Errorf("uncle_bob should have no image, got %q", cards[1].Image)
	}
	if cards[2].Image != filepath.Join(dir, "images", "cat.png") {
		t.Errorf("conventional image not found: %q", cards[2].Image)
	}

	// Cards returns a copy.
	cards[0].Title = "changed"
	if c, _ := d.GetCard("grandma"); c.Title != "Grandma" {
		t.Error("mutating the snapshot changed the deck")
	}
}

func TestLoadDeck_Errors(t *testing.T) {
	if _, err := LoadDeck(t.TempDir()); err == nil {
		t.Error("expected an error for a directory without deck.toml")
	}

	dir := t.TempDir()
	writeDeck(t, dir, "[deck\nname=")
	if _, err := LoadDeck(dir); err == nil {
		t.Error("expected a parse error")
	}

	dir = t.TempDir()
	writeDeck(t, dir, `
[[cards]]
id = "a"
title = "A"
[[cards]]
id = "a"
title = "Again"
`)
	if _, err := LoadDeck(dir); err == nil {
		t.Error("expected a duplicate id error")
	}
}

func TestLoadDeck_DefaultsFromDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "office")
	writeDeck(t, dir, `
[[cards]]
title = "Coffee"
`)
	d, err := LoadDeck(dir)
	if err != nil {
		t.Fatal(err)
	}
	if d.ID != "office" || d.Name != "office" {
		t.Errorf("expected directory name as id and name, got %q / %q", d.ID, d.Name)
	}
}

func TestGetCard(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, familyDeck)
	d, err := LoadDeck(dir)
	if err != nil {
		t.Fatal(err)
	}

	if c, err := d.GetCard("cat"); err != nil || c.Title != "The Cat" {
		t.Errorf("GetCard(cat) = %+v, %v", c, err)
	}
	if _, err := d.GetCard("dog"); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Uncle Bob":        "uncle_bob",
		"  Mr. T!  ":       "mr_t",
		"Café Olé":         "café_olé",
		"---":              "",
		"Room 101 (again)": "room_101_again",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLibrary(t *testing.T) {
	root := t.TempDir()
	writeDeck(t, filepath.Join(root, "family"), familyDeck)
	if err := os.MkdirAll(filepath.Join(root, "not-a-deck"), 0o755); err != nil {
		t.Fatal(err)
	}

	lib := NewLibrary(root)

	entries, err := lib.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Dir != "family" || entries[0].Deck.ID != "family" {
		t.Errorf("unexpected library listing: %+v", entries)
	}

	d, err := lib.Open(context.Background(), "family")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if d.Len() != 3 {
		t.Errorf("expected 3 cards, got %d", d.Len())
	}

	if _, err := lib.Open(context.Background(), "missing"); err == nil {
		t.Error("expected an error for an unknown deck")
	}
}
