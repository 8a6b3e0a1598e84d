/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rlowe/croon/internal/playback"
	"github.com/rlowe/croon/internal/store"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play [query]",
	Short: "Search for a track and play it",
	Long: `Search YouTube for the given query and stream the top result through
your local media player.

If the played track belongs to one of your saved playlists, the rest of
that playlist keeps playing once the track finishes.

Press Ctrl+C to stop playback; a second Ctrl+C forces exit.`,
	Args: cobra.ArbitraryArgs,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		if err := huh.NewInput().Title("What do you want to play?").Value(&query).Run(); err != nil {
			return err
		}
		query = strings.TrimSpace(query)
	}
	if query == "" {
		return fmt.Errorf("nothing to play")
	}

	fmt.Println(banner())

	ctx := context.Background()
	results, err := a.searchTracks(ctx, query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no results for %q", query)
	}

	top := results[0]
	return playTrackWithContinuation(ctx, a, store.Track{ID: top.ID, Title: top.Title})
}

// playTrackWithContinuation plays one ad-hoc track and then, best effort,
// continues the first saved playlist containing it.
func playTrackWithContinuation(ctx context.Context, a *app, track store.Track) error {
	sess := playback.NewSession()
	detach := watchInterrupts(sess, a.logger)
	defer detach()

	if err := a.sequencer.PlayAll(ctx, sess, []store.Track{track}, 0); err != nil {
		return err
	}

	a.sequencer.ContinueFrom(ctx, sess, a.playlists, track.ID)
	return nil
}
