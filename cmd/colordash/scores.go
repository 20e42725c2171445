package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/color-dash/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresReset bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level-id]",
	Short: "Show best distances",
	Long: `Display the top distances for a level, or a summary of every level
when no id is given.

Examples:
  colordash scores
  colordash scores level-1
  colordash scores endless --limit 20
  colordash scores level-2 --reset`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Delete the recorded runs (all levels when no id is given)")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening scores database: %v", err)
	}
	defer store.Close()

	levelID := ""
	if len(args) > 0 {
		levelID = args[0]
	}

	if flagScoresReset {
		if err := store.ClearScores(levelID); err != nil {
			fatal("%v", err)
		}
		if levelID == "" {
			fmt.Println("Cleared all scores.")
		} else {
			fmt.Printf("Cleared scores for %s.\n", levelID)
		}
		return
	}

	if levelID == "" {
		printSummary(store)
		return
	}

	scores, err := store.TopScores(levelID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("Best distances - %s\n", levelID)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'colordash play %s' to set the first distance!\n", levelID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Distance", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "--------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Distance, dateStr)
	}
}

// printSummary prints one line of stats per played level.
func printSummary(store *storage.Store) {
	stats, err := store.GetAllLevelStats()
	if err != nil {
		fatal("%v", err)
	}
	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-16s  %5s  %8s  %8s  %s\n", "Level", "Runs", "Best", "Average", "Last played")
	fmt.Printf("  %-16s  %5s  %8s  %8s  %s\n", "-----", "----", "----", "-------", "-----------")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-16s  %5d  %8d  %8.0f  %s\n", id, s.Runs, s.Best, s.Average, s.LastPlayed.Format("2006-01-02 15:04"))
	}

	if best, err := store.BestOverall(); err == nil {
		fmt.Println()
		fmt.Printf("Best overall: %d\n", best)
	}
}
