package cmd

import (
	"crypto/md5"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"golang.org/x/term"

	"github.com/arcanaland/bingomancer/internal/card"
	"github.com/arcanaland/bingomancer/internal/config"

	colorize "github.com/fatih/color" // Renamed to avoid clashing with image/color
	"github.com/spf13/cobra"
)

const (
	ansiWidth  = 40
	ansiHeight = 32
)

var showCmd = &cobra.Command{
	Use:   "show [card_id]",
	Short: "Display a card with its picture as ANSI art",
	Long: `Show displays a card of a deck, drawing its picture with ANSI colours.

You can specify a deck using the --deck flag, which will look for the deck
in your deck library (XDG_DATA_HOME/bingo/decks) or as a relative path.
If no deck is specified, the default deck from your config will be used.

Examples:
  bingomancer show grandma
  bingomancer show --deck ./family-deck uncle_bob`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := deckName(cmd)
		if err != nil {
			return err
		}

		d, err := library().Open(cmd.Context(), name)
		if err != nil {
			return fmt.Errorf("error loading deck: %w", err)
		}

		c, err := d.GetCard(args[0])
		if err != nil {
			return err
		}

		var ansiArt string
		if c.HasImage() {
			ansiArt, err = cachedAnsiArt(c.Image)
			if err != nil {
				// The card is still worth showing without its picture
				log.Warn("could not draw card image", "card_id", c.ID, "error", err)
			}
		}

		displayCard(c, ansiArt, d.Name)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("deck", "d", "", "Specify a deck from your deck library or a path to a deck")
}

// cachedAnsiArt converts an image to ANSI art, reusing an earlier conversion
// of the same file when it has not changed since.
func cachedAnsiArt(imagePath string) (string, error) {
	info, err := os.Stat(imagePath)
	if err != nil {
		return "", err
	}

	cacheDir := filepath.Join(config.GetCacheDir(), "ansi_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create ANSI cache directory: %w", err)
	}

	key := fmt.Sprintf("%s:%d:%d", imagePath, info.Size(), info.ModTime().UnixNano())
	cachePath := filepath.Join(cacheDir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(key))))

	if data, err := os.ReadFile(cachePath); err == nil {
		return string(data), nil
	}

	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	art := imageToAnsi(img, ansiWidth, ansiHeight)
	if err := os.WriteFile(cachePath, []byte(art), 0644); err != nil {
		log.Debug("could not cache ANSI art", "path", cachePath, "error", err)
	}
	return art, nil
}

// imageToAnsi draws img with upper half blocks, two pixel rows per line
func imageToAnsi(img image.Image, width, height int) string {
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			col1, _ := colorful.MakeColor(getColorAt(resized, x, y))
			col2, _ := colorful.MakeColor(getColorAt(resized, x+1, y))
			col3, _ := colorful.MakeColor(getColorAt(resized, x, y+1))
			col4, _ := colorful.MakeColor(getColorAt(resized, x+1, y+1))

			// Top pixels as foreground, bottom pixels as background
			fg := averageColor(col1, col2)
			bg := averageColor(col3, col4)

			buffer.WriteString(ansiColorString('▀', fg, bg))
		}
		buffer.WriteString("\n")
	}

	return buffer.String()
}

// getColorAt returns the color at a specific coordinate
func getColorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255}
}

// averageColor calculates the average of multiple colors
func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// ansiColorString formats a character with 24-bit ANSI color codes
func ansiColorString(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.Clamped().RGB255()
	r2, g2, b2 := bg.Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		r1, g1, b1, r2, g2, b2, char)
}

// displayCard prints the ANSI art on the left and the card details on the right
func displayCard(c card.Card, ansiArt, deckName string) {
	var ansiLines []string
	if ansiArt != "" {
		ansiLines = strings.Split(strings.TrimRight(ansiArt, "\n"), "\n")
	}

	maxAnsiWidth := 0
	for _, line := range ansiLines {
		maxAnsiWidth = max(maxAnsiWidth, len([]rune(stripAnsi(line))))
	}

	infoLines := []string{
		colorize.CyanString("Card:  ") + colorize.HiWhiteString("%s", c.Label()),
		colorize.CyanString("Deck:  ") + colorize.HiWhiteString("%s", deckName),
		colorize.CyanString("ID:    ") + colorize.HiWhiteString("%s", c.ID),
	}
	if c.HasImage() {
		infoLines = append(infoLines, colorize.CyanString("Image: ")+colorize.HiWhiteString("%s", c.Image))
	} else {
		infoLines = append(infoLines, colorize.CyanString("Image: ")+colorize.HiBlackString("none"))
	}

	spacing := 4
	infoStartCol := maxAnsiWidth + spacing
	if maxAnsiWidth == 0 {
		infoStartCol = 0
	}

	fmt.Println()

	maxLines := max(len(ansiLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Print("  ")
		if i < len(ansiLines) {
			fmt.Print(ansiLines[i])
			visibleWidth := len([]rune(stripAnsi(ansiLines[i])))
			fmt.Print(strings.Repeat(" ", infoStartCol-visibleWidth))
		} else {
			fmt.Print(strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Print(infoLines[i])
		}

		fmt.Println()
	}

	fmt.Println()
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
