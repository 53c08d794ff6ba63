package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"proofsite/internal/store"
)

var (
	historyLimit   int
	historyTheorem string
)

// historyCmd lists recorded site builds
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded site builds",
	Long: `Lists recent builds from the history database, newest first.

With --theorem the status of one theorem is traced across builds
instead, which shows when a proof moved from pending to verified.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum number of entries")
	historyCmd.Flags().StringVarP(&historyTheorem, "theorem", "t", "", "Trace one theorem across builds")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	hs, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer hs.Close()

	if historyTheorem != "" {
		return printStatusHistory(hs, historyTheorem)
	}

	builds, err := hs.RecentBuilds(historyLimit)
	if err != nil {
		return err
	}
	if len(builds) == 0 {
		fmt.Println("No builds recorded yet. Run 'proofsite build' first.")
		return nil
	}

	fmt.Printf("%-36s  %-19s  %8s  %8s  %5s  %8s\n",
		"BUILD", "BUILT AT", "THEOREMS", "VERIFIED", "PAGES", "DURATION")
	for _, b := range builds {
		fmt.Printf("%-36s  %-19s  %8d  %8d  %5d  %6dms\n",
			b.BuildID,
			b.BuiltAt.Format("2006-01-02 15:04:05"),
			b.Theorems, b.Verified, b.Pages, b.DurationMS)
	}
	return nil
}

func printStatusHistory(hs *store.HistoryStore, theoremID string) error {
	snaps, err := hs.StatusHistory(theoremID, historyLimit)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("no history for theorem %q", theoremID)
	}

	fmt.Printf("Status history for %s (%s):\n", theoremID, snaps[0].Name)
	for _, s := range snaps {
		fmt.Printf("  %-36s  %-11s  %d steps\n", s.BuildID, s.Status, s.Steps)
	}
	return nil
}
