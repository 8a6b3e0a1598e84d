package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rlowe/croon/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Set up croon's YouTube API key",
	Long: `Interactively configure croon.

Search needs a YouTube Data API v3 key. This command prompts for one and
writes it to config.yaml; the key can also be supplied through the
CROON_YOUTUBE_API_KEY environment variable.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	title := "YouTube API key"
	if cfg.YouTube.APIKey != "" {
		title = "YouTube API key (leave blank to keep the current one)"
	}

	var key string
	err = huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&key).
		Run()
	if err != nil {
		return err
	}

	key = strings.TrimSpace(key)
	if key == "" && cfg.YouTube.APIKey == "" {
		return fmt.Errorf("no API key entered")
	}
	if key != "" {
		cfg.YouTube.APIKey = key
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("✓ Saved to %s/config.yaml\n", config.GetConfigDir())
	return nil
}
