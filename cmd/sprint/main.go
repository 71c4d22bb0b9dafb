// sprint is the Kracked Devs sprint runner: an endless runner about
// surviving a software sprint, played in the terminal.
//
// Usage:
//
//	sprint play              - Run the sprint directly
//	sprint menu              - Start menu with difficulty picker and run history
//	sprint serve             - Start the SSH server and HTTP leaderboard
//	sprint scores            - Show the best runs
//	sprint list              - List registered games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.sprint/runs.db)
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file while the TUI owns the terminal
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/krackeddevs/sprint-runner/internal/games/runner"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Sprint Runner - survive the sprint in your terminal",
	Long: `Sprint Runner is an endless runner about surviving a software sprint.
Jump over bugs, meetings and tech debt, collect offer letters and shipped
features, and see how many sprint days you last before burning out.

Available commands:
  play     - Run the sprint directly
  menu     - Difficulty picker and run history
  serve    - SSH server for remote play plus HTTP leaderboard
  scores   - View the best runs
  list     - Show registered games

Examples:
  sprint play
  sprint play --difficulty hard
  sprint menu
  sprint serve --ssh :2222 --http :8080
  sprint scores`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sprint/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. Interactive commands pass
// interactive=true so that, without --log-file, nothing is written over
// the alternate screen. The returned func closes the log file, if any.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	case interactive:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "sprint",
	})
	runner.SetLogger(logger)
	return logger, closeFn, nil
}
