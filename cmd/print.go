package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/bingomancer/internal/service"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print boards or the whole deck to PDF",
}

var printBoardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "Print the stored boards of a deck, one per page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printPDF(cmd, "boards", func(ctx context.Context, svc *service.Service, name string, w io.Writer) error {
			return svc.PrintBoards(ctx, name, w)
		})
	},
}

var printDeckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Print every card of a deck, ten per landscape page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printPDF(cmd, "deck", func(ctx context.Context, svc *service.Service, name string, w io.Writer) error {
			return svc.PrintDeck(ctx, name, w)
		})
	},
}

type printFunc func(ctx context.Context, svc *service.Service, deckName string, w io.Writer) error

// printPDF writes the document to the -o path, removing the file again
// when rendering fails.
func printPDF(cmd *cobra.Command, kind string, write printFunc) error {
	name, err := deckName(cmd)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		d, err := library().Open(cmd.Context(), name)
		if err != nil {
			return err
		}
		output = fmt.Sprintf("%s-%s.pdf", d.ID, kind)
	}

	svc, closeFn, err := openService(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", output, err)
	}

	if err := write(cmd.Context(), svc, name, f); err != nil {
		f.Close()
		os.Remove(output)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error writing %s: %w", output, err)
	}

	colorize.Green("Wrote %s", output)
	return nil
}

func init() {
	RootCmd.AddCommand(printCmd)
	printCmd.AddCommand(printBoardsCmd, printDeckCmd)

	for _, c := range []*cobra.Command{printBoardsCmd, printDeckCmd} {
		c.Flags().StringP("deck", "d", "", "Specify a deck from your deck library or a path to a deck")
		c.Flags().StringP("output", "o", "", "Output file (default: <deck>-<kind>.pdf)")
	}
}
