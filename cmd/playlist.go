package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rlowe/croon/internal/playback"
	"github.com/rlowe/croon/internal/store"
)

// playlistCmd groups the playlist subcommands
var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Manage and play saved playlists",
	Long: `Manage locally saved playlists.

Playlists are stored per user as a single JSON file. Track order is
playback order. Lookups by name return the first match when names are
not unique.`,
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all playlists",
	RunE:  runPlaylistList,
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new empty playlist",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlaylistCreate,
}

var playlistAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Search for a track and add it to a playlist",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlaylistAdd,
}

var playlistPlayCmd = &cobra.Command{
	Use:   "play [name]",
	Short: "Play a playlist from the top",
	Long: `Play every track of a playlist in order.

Tracks that fail to resolve are reported and skipped; the playlist keeps
going. Press Ctrl+C to stop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlaylistPlay,
}

var playlistShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a playlist's tracks",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlaylistShow,
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a track from a playlist",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlaylistRemove,
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a playlist",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlaylistDelete,
}

func init() {
	rootCmd.AddCommand(playlistCmd)
	playlistCmd.AddCommand(playlistListCmd)
	playlistCmd.AddCommand(playlistCreateCmd)
	playlistCmd.AddCommand(playlistAddCmd)
	playlistCmd.AddCommand(playlistPlayCmd)
	playlistCmd.AddCommand(playlistShowCmd)
	playlistCmd.AddCommand(playlistRemoveCmd)
	playlistCmd.AddCommand(playlistDeleteCmd)
}

// playlistName resolves the playlist name argument, prompting when missing.
func playlistName(args []string, prompt string) (string, error) {
	var name string
	if len(args) > 0 {
		name = strings.TrimSpace(args[0])
	}
	if name == "" {
		if err := huh.NewInput().Title(prompt).Value(&name).Run(); err != nil {
			return "", err
		}
		name = strings.TrimSpace(name)
	}
	if name == "" {
		return "", fmt.Errorf("playlist name required")
	}
	return name, nil
}

func runPlaylistList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	playlists, err := a.playlists.List()
	if err != nil {
		return err
	}
	if len(playlists) == 0 {
		fmt.Println("No playlists yet. Create one with 'croon playlist create <name>'.")
		return nil
	}

	fmt.Println(renderPlaylists(playlists))
	return nil
}

func runPlaylistCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	name, err := playlistName(args, "Name for the new playlist")
	if err != nil {
		return err
	}

	p, err := a.playlists.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	fmt.Printf("Created playlist %q\n", p.Name)
	return nil
}

func runPlaylistAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	name, err := playlistName(args, "Add to which playlist?")
	if err != nil {
		return err
	}

	// Fail early when the playlist doesn't exist, before bothering the API
	if _, err := a.playlists.Get(name); err != nil {
		return err
	}

	var query string
	if err := huh.NewInput().Title("Search for a track to add").Value(&query).Run(); err != nil {
		return err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("nothing to search for")
	}

	ctx := context.Background()
	results, err := a.searchTracks(ctx, query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no results for %q", query)
	}

	picked, err := pickResult(results)
	if err != nil {
		return err
	}
	if picked == nil {
		return nil
	}

	track := store.Track{ID: picked.ID, Title: picked.Title}
	if err := a.playlists.AddTrack(name, track); err != nil {
		return fmt.Errorf("failed to add track: %w", err)
	}

	fmt.Printf("Added %q to %q\n", picked.Title, name)
	return nil
}

func runPlaylistPlay(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	name, err := playlistName(args, "Play which playlist?")
	if err != nil {
		return err
	}

	p, err := a.playlists.Get(name)
	if err != nil {
		return err
	}
	if len(p.Tracks) == 0 {
		fmt.Printf("Playlist %q is empty\n", p.Name)
		return nil
	}

	fmt.Println(banner())
	fmt.Printf("Playing playlist %q (%d tracks)\n", p.Name, len(p.Tracks))

	sess := playback.NewSession()
	detach := watchInterrupts(sess, a.logger)
	defer detach()

	return a.sequencer.PlayAll(context.Background(), sess, p.Tracks, 0)
}

func runPlaylistShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	name, err := playlistName(args, "Show which playlist?")
	if err != nil {
		return err
	}

	p, err := a.playlists.Get(name)
	if err != nil {
		return err
	}
	if len(p.Tracks) == 0 {
		fmt.Printf("Playlist %q is empty\n", p.Name)
		return nil
	}

	fmt.Println(renderTracks(p))
	return nil
}

func runPlaylistRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	name, err := playlistName(args, "Remove from which playlist?")
	if err != nil {
		return err
	}

	p, err := a.playlists.Get(name)
	if err != nil {
		return err
	}
	if len(p.Tracks) == 0 {
		fmt.Printf("Playlist %q is empty\n", p.Name)
		return nil
	}

	options := make([]huh.Option[int], len(p.Tracks))
	for i, t := range p.Tracks {
		options[i] = huh.NewOption(fmt.Sprintf("%d: %s", i, t.Title), i)
	}

	var index int
	err = huh.NewSelect[int]().
		Title("Remove which track?").
		Options(options...).
		Value(&index).
		Run()
	if err != nil {
		return err
	}

	removed, err := a.playlists.RemoveTrack(name, index)
	if err != nil {
		if errors.Is(err, store.ErrIndexOutOfRange) {
			return fmt.Errorf("no track at index %d in %q", index, name)
		}
		return err
	}

	fmt.Printf("Removed %q from %q\n", removed.Title, name)
	return nil
}

func runPlaylistDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	name, err := playlistName(args, "Delete which playlist?")
	if err != nil {
		return err
	}

	// Deleting a playlist that doesn't exist is a no-op
	if err := a.playlists.Delete(name); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	fmt.Printf("Deleted playlist %q\n", name)
	return nil
}
