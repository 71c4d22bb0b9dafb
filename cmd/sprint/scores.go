package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/krackeddevs/sprint-runner/internal/games/runner"
	"github.com/krackeddevs/sprint-runner/internal/platform/tui"
	"github.com/krackeddevs/sprint-runner/internal/registry"
	"github.com/krackeddevs/sprint-runner/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show the best runs",
	Long: `Display the best runs with sprint day, features shipped and burnout cause.

Examples:
  sprint scores
  sprint scores --limit 25
  sprint scores --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the run history interactively")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := runner.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'sprint list' to see available games", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open run history: %w", err)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, gameID, width, height)
	}

	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve runs: %w", err)
	}

	fmt.Printf("Best runs - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'sprint play' to set the first score!")
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-4s  %-7s  %-16s  %-12s  %s\n", "Rank", "Score", "Day", "Shipped", "Cause", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-4s  %-7s  %-16s  %-12s  %s\n", "----", "-----", "---", "-------", "-----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-7d  %-4d  %-7d  %-16s  %-12s  %s\n",
			i+1, r.Score, r.SprintDay, r.FeaturesShipped, r.Cause, r.Player,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Avg: %.1f  Longest sprint: day %d\n",
			stats.RunsCount, stats.HighScore, stats.AvgScore, stats.BestDay)
		if stats.TopCause != "" {
			fmt.Printf("Most common burnout: %s\n", stats.TopCause)
		}
	}
	return nil
}
