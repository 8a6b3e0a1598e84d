package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently played tracks",
	RunE:  runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the play history",
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.history == nil {
		return fmt.Errorf("play history unavailable")
	}

	ctx := context.Background()
	entries, err := a.history.Recent(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No plays recorded yet.")
		return nil
	}

	fmt.Println(renderHistory(entries))

	total, err := a.history.Count(ctx)
	if err != nil {
		return err
	}
	if total > len(entries) {
		fmt.Printf("Showing %d of %d plays; use -n to see more\n", len(entries), total)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.history == nil {
		return fmt.Errorf("play history unavailable")
	}

	deleted, err := a.history.Clear(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Cleared %d entries\n", deleted)
	return nil
}
