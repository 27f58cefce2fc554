package cmd

import (
	"fmt"
	"strconv"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/bingomancer/internal/board"
	"github.com/arcanaland/bingomancer/internal/layout"
)

// boardsCmd represents the boards command group
var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "Deal, list and clear the boards of a deck",
}

var boardsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Deal a new batch of boards, replacing the stored ones",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := deckName(cmd)
		if err != nil {
			return err
		}
		grid, _ := cmd.Flags().GetInt("grid")
		count, _ := cmd.Flags().GetInt("count")
		if count < 0 {
			return fmt.Errorf("count must not be negative")
		}

		svc, closeFn, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		boards, err := svc.Generate(cmd.Context(), name, grid, count)
		if err != nil {
			return err
		}

		colorize.Green("Dealt %d boards.", len(boards))
		if dups := board.CountDuplicates(boards); dups > 0 {
			colorize.Yellow("%d board(s) repeat an earlier one; add cards for more variety.", dups)
		}
		return nil
	},
}

var boardsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored board of a deck",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := deckName(cmd)
		if err != nil {
			return err
		}

		svc, closeFn, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		n, err := svc.Clear(cmd.Context(), name)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d boards.\n", n)
		return nil
	},
}

var boardsListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the stored boards of a deck",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := deckName(cmd)
		if err != nil {
			return err
		}

		svc, closeFn, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		d, boards, err := svc.Boards(cmd.Context(), name)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d boards\n", d.Name, len(boards))
		for i, b := range boards {
			titles := make([]string, len(b.Cards))
			for j, c := range b.Cards {
				titles[j] = c.Title
			}
			fmt.Printf("%3d  %s  %s\n", i+1, colorize.HiBlackString(b.ID[:min(8, len(b.ID))]), strings.Join(titles, ", "))
		}
		return nil
	},
}

var boardsShowCmd = &cobra.Command{
	Use:   "show [n]",
	Short: "Draw one stored board in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid board number: %s", args[0])
		}

		name, err := deckName(cmd)
		if err != nil {
			return err
		}

		svc, closeFn, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		d, boards, err := svc.Boards(cmd.Context(), name)
		if err != nil {
			return err
		}
		if n > len(boards) {
			return fmt.Errorf("deck %s has %d boards", d.Name, len(boards))
		}

		fmt.Println(colorize.CyanString("%s · BOARD %d OF %d", strings.ToUpper(d.Name), n, len(boards)))
		fmt.Print(formatBoardGrid(boards[n-1], terminalWidth()))
		return nil
	},
}

// formatBoardGrid draws a board as a box grid no wider than width columns.
// Titles are fitted with the same rules as the printed labels, one column
// per rune.
func formatBoardGrid(b board.Board, width int) string {
	dim := b.Dimension()
	cellWidth := max(3, (width-(dim+1))/dim)
	opts := layout.LabelOptions{
		PreferredSize: 1,
		MinSize:       1,
		Step:          1,
		LineFactor:    1,
		Ellipsis:      layout.Ellipsis,
	}
	measurer := layout.MonospaceMeasurer{Advance: 1}

	rule := "+" + strings.Repeat(strings.Repeat("-", cellWidth)+"+", dim) + "\n"

	var sb strings.Builder
	sb.WriteString(rule)
	for row := 0; row < dim; row++ {
		sb.WriteString("|")
		for col := 0; col < dim; col++ {
			var text string
			if c, ok := b.Cell(row, col); ok {
				text = layout.FitLabel(c.Title, float64(cellWidth), measurer, opts).Text
			}
			pad := cellWidth - len([]rune(text))
			sb.WriteString(strings.Repeat(" ", pad/2) + text + strings.Repeat(" ", pad-pad/2) + "|")
		}
		sb.WriteString("\n")
		sb.WriteString(rule)
	}
	return sb.String()
}

func init() {
	RootCmd.AddCommand(boardsCmd)
	boardsCmd.AddCommand(boardsGenerateCmd, boardsClearCmd, boardsListCmd, boardsShowCmd)

	for _, c := range []*cobra.Command{boardsGenerateCmd, boardsClearCmd, boardsListCmd, boardsShowCmd} {
		c.Flags().StringP("deck", "d", "", "Specify a deck from your deck library or a path to a deck")
	}
	boardsGenerateCmd.Flags().IntP("grid", "g", 0, "Grid size, 9 or 16 (default: the deck's preference)")
	boardsGenerateCmd.Flags().IntP("count", "n", 0, "Number of boards (default: the suggested count)")
}
