package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/krackeddevs/sprint-runner/internal/config"
	"github.com/krackeddevs/sprint-runner/internal/core"
	"github.com/krackeddevs/sprint-runner/internal/games/runner"
	"github.com/krackeddevs/sprint-runner/internal/platform/tui"
	"github.com/krackeddevs/sprint-runner/internal/registry"
	"github.com/krackeddevs/sprint-runner/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the sprint",
	Long: `Start a sprint directly, without the menu.

Controls:
  Space/Up/W   - Jump (hold for a higher jump)
  P            - Pause
  R            - Restart
  S            - Run history (while paused or after burnout)
  Ctrl+S       - Save a screenshot to ~/.sprint/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Capped top speed, rarer obstacle chains from day 5
  normal - The config as loaded
  hard   - Faster ramp, obstacle chains from day 2
  fixed  - No speed ramp, every day runs at the base speed

Examples:
  sprint play
  sprint play --difficulty easy
  sprint play --config ./my-runner.yaml
  sprint play --seed 42 --player ana`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name stored with finished runs (default: $USER)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	releaseAfter, err := applyRunnerFlags()
	if err != nil {
		return err
	}

	game, err := registry.Create(runner.GameID)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	return tui.Run(game, store, runtimeConfig(), tui.GameOptions{
		Player:       playerName(),
		ReleaseAfter: releaseAfter,
		Logger:       logger,
	})
}

// applyRunnerFlags hands --config and --difficulty to the runner and
// returns the configured jump release delay.
func applyRunnerFlags() (time.Duration, error) {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return 0, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	// Load once up front so a broken --config fails before the TUI starts
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return 0, err
	}

	runner.SetConfigPath(flagConfig)
	runner.SetDifficultyPreset(flagDifficulty)
	return time.Duration(cfg.Input.ReleaseAfterMs) * time.Millisecond, nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the run history. Play continues without it on failure.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("run history disabled", "db", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		return nil
	}
	return store
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "anonymous"
}
