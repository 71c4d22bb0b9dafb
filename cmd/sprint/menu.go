package main

import (
	"github.com/spf13/cobra"

	"github.com/krackeddevs/sprint-runner/internal/games/runner"
	"github.com/krackeddevs/sprint-runner/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the difficulty picker and run history",
	Long: `Start Sprint Runner in interactive menu mode.

Pick a difficulty to start a sprint, or open the run history.
Press B or Esc after a burnout to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Run history
  Q            - Quit

Examples:
  sprint menu
  sprint menu --fps 30
  sprint menu --db ./runs.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	menuCmd.Flags().StringVar(&flagPlayer, "player", "", "Name stored with finished runs (default: $USER)")
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	// The menu picks the difficulty per run
	flagDifficulty = ""
	releaseAfter, err := applyRunnerFlags()
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return tui.RunSession(runner.GameID, store, runtimeConfig(), tui.GameOptions{
		Player:       playerName(),
		ReleaseAfter: releaseAfter,
		Logger:       logger,
	})
}
