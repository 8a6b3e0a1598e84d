/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var rootLogLevel string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "croon",
	Short: "Search and stream music from your terminal",
	Long: `croon is a terminal music player.

It searches YouTube for tracks, resolves a playable audio stream for the
result you pick, and pipes it to whatever media player is installed on
your system (mpv, cvlc, afplay, ...).

It also keeps lightweight local playlists: create one, add tracks to it,
and play it through. Playing a single track that belongs to a playlist
continues with the rest of that playlist automatically.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "error", "Log level (debug, info, warn, error)")
}

// newLogger creates the CLI logger. User-facing output goes to stdout via
// the commands themselves; the logger is diagnostics only, so it defaults
// to error level.
func newLogger() zerolog.Logger {
	level := zerolog.ErrorLevel
	switch rootLogLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	logger := zerolog.New(os.Stderr).
		Level(level).
		With().
		Timestamp().
		Logger()

	return logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
