package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rlowe/croon/internal/search"
	"github.com/rlowe/croon/internal/store"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for tracks and pick one to play",
	Long: `Search YouTube for the given query, show the ranked results, and play
the one you pick.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		if err := huh.NewInput().Title("Search for").Value(&query).Run(); err != nil {
			return err
		}
		query = strings.TrimSpace(query)
	}
	if query == "" {
		return fmt.Errorf("nothing to search for")
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

	fmt.Println(renderResults(results))

	picked, err := pickResult(results)
	if err != nil {
		return err
	}
	if picked == nil {
		return nil
	}

	return playTrackWithContinuation(ctx, a, store.Track{ID: picked.ID, Title: picked.Title})
}

// pickResult prompts the user to choose one of the search results. A nil
// result with a nil error means the user picked the cancel option.
func pickResult(results []search.Result) (*search.Result, error) {
	var choice int
	err := huh.NewSelect[int]().
		Title("Play which one?").
		Options(resultOptions(results)...).
		Value(&choice).
		Run()
	if err != nil {
		return nil, err
	}
	if choice < 0 {
		return nil, nil
	}

	return &results[choice], nil
}

// resultOptions builds the select options for results, with a trailing
// cancel entry carrying -1.
func resultOptions(results []search.Result) []huh.Option[int] {
	options := make([]huh.Option[int], 0, len(results)+1)
	for i, r := range results {
		label := fmt.Sprintf("%s — %s (%s)", truncate(r.Title, titleColWidth), r.ChannelTitle, formatDuration(r.Duration))
		options = append(options, huh.NewOption(label, i))
	}
	return append(options, huh.NewOption("Cancel", -1))
}
