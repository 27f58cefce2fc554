package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/bingomancer/internal/board"
	"github.com/arcanaland/bingomancer/internal/config"
	"github.com/arcanaland/bingomancer/internal/deck"
	"github.com/arcanaland/bingomancer/internal/imagestore"
	"github.com/arcanaland/bingomancer/internal/render"
	"github.com/arcanaland/bingomancer/internal/service"
	"github.com/arcanaland/bingomancer/internal/store"
)

// deckName returns the --deck flag or the configured default deck
func deckName(cmd *cobra.Command) (string, error) {
	name, _ := cmd.Flags().GetString("deck")
	if name != "" {
		return name, nil
	}
	if cfg.DefaultDeck == "" {
		return "", fmt.Errorf("no deck given and no default deck configured")
	}
	return cfg.DefaultDeck, nil
}

func library() *deck.Library {
	return deck.NewLibrary(config.GetDeckLibraryPath())
}

// openService wires the service from the loaded config. The returned func
// releases the database.
func openService(ctx context.Context) (*service.Service, func(), error) {
	st, err := store.Open(ctx, cfg.GetDatabasePath(), log)
	if err != nil {
		return nil, nil, err
	}

	ttl, err := cfg.Cache.TTLDuration()
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	cache, err := imagestore.NewCache(ctx, cfg.Cache.RedisURL, ttl, log)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	images := imagestore.NewCachedResolver(imagestore.NewFileResolver(), cache, log)

	theme, err := render.ParseTheme(cfg.Render.BorderColor, cfg.Render.LabelBackground, cfg.Render.LabelColor)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	opts := render.DefaultOptions()
	opts.Theme = theme
	opts.ImageDPI = cfg.Render.ImageDPI

	gen := board.NewGenerator(nil, log)
	if cfg.Generate.MaxAttempts > 0 {
		gen.MaxAttempts = cfg.Generate.MaxAttempts
	}

	svc := service.New(log, library(), st, images, render.New(opts, log), gen)
	if cfg.Render.Concurrency > 0 {
		svc.Concurrency = cfg.Render.Concurrency
	}
	if cfg.Generate.GridSize != 0 {
		svc.DefaultGrid = cfg.Generate.GridSize
	}

	return svc, func() { st.Close() }, nil
}
