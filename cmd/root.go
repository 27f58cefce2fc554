package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/bingomancer/internal/config"
	"github.com/arcanaland/bingomancer/internal/logger"
)

var (
	cfg *config.Config
	log = logger.Discard()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "bingomancer",
	Short: "Deal and print unique bingo boards from photo decks",
	Long: `Bingomancer deals unique bingo boards from a deck of photo cards and prints
them to PDF along with a listing of the whole deck.

Decks live in your deck library (XDG_DATA_HOME/bingo/decks) as directories
holding a deck.toml and the card images.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}

		level, _ := cmd.Flags().GetString("log-level")
		if level == "" {
			level = cfg.LogLevel
		}
		log = logger.New(os.Stderr, logger.Config{Level: level, JSON: cfg.LogJSON})
		slog.SetDefault(log)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return RootCmd.ExecuteContext(ctx)
}
