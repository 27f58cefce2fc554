package validator

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// deckToml builds a deck with n cards; every card points at images/cNN.png.
func deckToml(header string, n int) string {
	var b strings.Builder
	b.WriteString(header)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "\n[[cards]]\nid = \"c%02d\"\ntitle = \"Card %d\"\nimage = \"images/c%02d.png\"\n", i, i, i)
	}
	return b.String()
}

func containsMessage(messages []string, fragment string) bool {
	for _, m := range messages {
		if strings.Contains(m, fragment) {
			return true
		}
	}
	return false
}

func TestValidate_GoodDeck(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "deck.toml"), []byte(deckToml("[deck]\nid = \"family\"\nname = \"Family\"\n", 16)))
	for i := 0; i < 16; i++ {
		writeFile(t, filepath.Join(dir, "images", fmt.Sprintf("c%02d.png", i)), tinyPNG(t))
	}

	results, err := NewValidator(dir).Validate()
	if err != nil {
		t.Fatal(err)
	}
	if !results.Valid() || len(results.Warnings) != 0 {
		t.Errorf("expected a clean deck, got %+v", results)
	}
}

func TestValidate_MissingDeckToml(t *testing.T) {
	if _, err := NewValidator(t.TempDir()).Validate(); err == nil {
		t.Error("expected an error when deck.toml is missing")
	}
}

func TestValidate_Problems(t *testing.T) {
	dir := t.TempDir()
	toml := `
[deck]
grid_size = 12

[[cards]]
id = "a"
title = "A"
image = "images/missing.png"

[[cards]]
id = "a"
title = "Again"

[[cards]]
id = "b"
title = "  "

[[cards]]
id = "broken"
title = "Broken"
image = "images/broken.png"
`
	writeFile(t, filepath.Join(dir, "deck.toml"), []byte(toml))
	writeFile(t, filepath.Join(dir, "images", "broken.png"), []byte("not a png"))

	results, err := NewValidator(dir).Validate()
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"deck.id is required",
		"deck.name is required",
		`duplicate card id "a"`,
		"card 3 has an empty title",
		"at least 12 are needed",
	} {
		if !containsMessage(results.Errors, want) {
			t.Errorf("missing error %q in %v", want, results.Errors)
		}
	}
	if !containsMessage(results.Warnings, "unsupported grid_size 12") {
		t.Errorf("missing grid warning in %v", results.Warnings)
	}
}

func TestValidate_Images(t *testing.T) {
	dir := t.TempDir()
	toml := deckToml("[deck]\nid = \"kids\"\nname = \"Kids\"\n", 12) + `
[[cards]]
id = "plain"
title = "Plain"
`
	writeFile(t, filepath.Join(dir, "deck.toml"), []byte(toml))
	for i := 0; i < 12; i++ {
		data := tinyPNG(t)
		if i == 3 {
			data = []byte("garbage")
		}
		if i == 5 {
			continue
		}
		writeFile(t, filepath.Join(dir, "images", fmt.Sprintf("c%02d.png", i)), data)
	}

	results, err := NewValidator(dir).Validate()
	if err != nil {
		t.Fatal(err)
	}

	if !containsMessage(results.Errors, "image for card c03 cannot be decoded") {
		t.Errorf("corrupt image not reported: %v", results.Errors)
	}
	if !containsMessage(results.Errors, "image not found for card c05") {
		t.Errorf("missing image not reported: %v", results.Errors)
	}
	if !containsMessage(results.Warnings, "1 card(s) have no image") {
		t.Errorf("imageless card not reported: %v", results.Warnings)
	}
	if !containsMessage(results.Warnings, "at least 16 are needed") {
		t.Errorf("classic minimum warning missing: %v", results.Warnings)
	}
}
