package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show how many boards a deck can deal",
	Long: `Suggest reports the number of boards worth dealing from a deck, the
largest batch that can stay unique, and whether the deck meets the minimum
size for the chosen grid.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := deckName(cmd)
		if err != nil {
			return err
		}
		grid, _ := cmd.Flags().GetInt("grid")

		svc, closeFn, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		s, err := svc.Suggest(cmd.Context(), name, grid)
		if err != nil {
			return err
		}

		fmt.Println(colorize.CyanString("Deck:       ") + fmt.Sprintf("%s (%s)", s.DeckName, s.DeckID))
		fmt.Println(colorize.CyanString("Grid:       ") + fmt.Sprintf("%d cards", s.GridSize))
		fmt.Println(colorize.CyanString("Cards:      ") + fmt.Sprintf("%d (minimum %d)", s.Available, s.MinCards))
		fmt.Println(colorize.CyanString("Suggested:  ") + fmt.Sprintf("%d boards", s.Suggested))
		fmt.Println(colorize.CyanString("Unique max: ") + fmt.Sprintf("%d boards", s.MaxUnique))
		fmt.Println(colorize.CyanString("Stored:     ") + fmt.Sprintf("%d boards", s.Stored))

		if !s.CanGenerate {
			colorize.Yellow("Add %d more card(s) before dealing %d-card boards.", s.MinCards-s.Available, s.GridSize)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().StringP("deck", "d", "", "Specify a deck from your deck library or a path to a deck")
	suggestCmd.Flags().IntP("grid", "g", 0, "Grid size, 9 or 16 (default: the deck's preference)")
}
