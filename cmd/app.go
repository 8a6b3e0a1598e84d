package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/huh/spinner"
	"github.com/rs/zerolog"

	"github.com/rlowe/croon/internal/config"
	"github.com/rlowe/croon/internal/history"
	"github.com/rlowe/croon/internal/playback"
	"github.com/rlowe/croon/internal/player"
	"github.com/rlowe/croon/internal/resolve"
	"github.com/rlowe/croon/internal/search"
	"github.com/rlowe/croon/internal/store"
)

// app bundles the wiring shared by the playback-facing commands.
type app struct {
	cfg       *config.Config
	logger    zerolog.Logger
	playlists *store.Store
	history   *history.Store
	sequencer *playback.Sequencer
}

// newApp loads configuration and wires up the stores and the sequencer.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger()

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	playlists := store.New(filepath.Join(cfg.DataDir, "playlists.json"))

	// History is a convenience; a broken database should not block playback
	hist, err := history.Open(filepath.Join(cfg.DataDir, "history.db"))
	if err != nil {
		logger.Warn().Err(err).Msg("Play history unavailable")
		hist = nil
	}

	discover := player.Discover
	if cfg.Player != "" {
		forced := cfg.Player
		discover = func(context.Context) string { return forced }
	}

	seqCfg := playback.Config{
		Resolver: resolve.New(logger),
		Runner:   player.NewExecRunner(logger),
		Discover: discover,
		Logger:   logger,
	}
	if hist != nil {
		seqCfg.History = hist
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		playlists: playlists,
		history:   hist,
		sequencer: playback.NewSequencer(seqCfg),
	}, nil
}

// Close releases the app's resources.
func (a *app) Close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to close history database")
		}
	}
}

// searchClient builds the YouTube search client from the configured key.
func (a *app) searchClient(ctx context.Context) (*search.Client, error) {
	client, err := search.New(ctx, a.cfg.YouTube.APIKey, a.logger)
	if err != nil {
		if err == search.ErrNoAPIKey {
			return nil, fmt.Errorf("no YouTube API key configured: run 'croon config' or set CROON_YOUTUBE_API_KEY")
		}
		return nil, err
	}
	return client, nil
}

// searchTracks runs a search under a spinner.
func (a *app) searchTracks(ctx context.Context, query string) ([]search.Result, error) {
	client, err := a.searchClient(ctx)
	if err != nil {
		return nil, err
	}

	var results []search.Result
	action := func(ctx context.Context) error {
		var err error
		results, err = client.Search(ctx, query, int64(a.cfg.SearchLimit))
		return err
	}

	if err := spinner.New().Title("Searching...").Context(ctx).ActionWithErr(action).Run(); err != nil {
		return nil, err
	}

	return results, nil
}

// watchInterrupts maps SIGINT/SIGTERM onto the session's stop request so
// the in-flight player process is killed and the sequence halts. A second
// signal forces exit. The returned func detaches the handler.
func watchInterrupts(sess *playback.Session, logger zerolog.Logger) func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if _, ok := <-sigChan; !ok {
			return
		}
		logger.Info().Msg("Interrupt received, stopping playback")
		sess.Stop()

		// Second signal forces exit
		if _, ok := <-sigChan; !ok {
			return
		}
		logger.Warn().Msg("Second interrupt received, forcing exit")
		os.Exit(1)
	}()

	return func() {
		signal.Stop(sigChan)
		close(sigChan)
	}
}
