package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/krackeddevs/sprint-runner/internal/games/runner"
	"github.com/krackeddevs/sprint-runner/internal/platform/tui"
	"github.com/krackeddevs/sprint-runner/internal/platform/web"
	"github.com/krackeddevs/sprint-runner/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server and HTTP leaderboard",
	Long: `Start an SSH server for remote play and an HTTP JSON leaderboard.

Each SSH connection gets its own session with the difficulty menu; the
SSH user name is stored with finished runs. All sessions share one run
history, which the HTTP API serves:

  GET /api/health
  GET /api/games
  GET /api/games/{game}/runs?limit=N
  GET /api/games/{game}/stats
  GET /api/runs/{runID}

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.sprint/host_key

Examples:
  sprint serve                            # SSH on :23234, HTTP on :8080
  sprint serve --ssh :2222 --http ""      # SSH only
  sprint serve --host-key ./my_host_key
  sprint serve --db ./runs.db

Users can connect with:
  ssh -t localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (empty disables)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP leaderboard address (empty disables)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return fmt.Errorf("nothing to serve: both --ssh and --http are empty")
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	// Sessions pick difficulty from the menu
	flagDifficulty = ""
	releaseAfter, err := applyRunnerFlags()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open run history: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		sshServer  *tui.SSHServer
		httpServer *web.Server
		sshErr     <-chan error
		httpErr    <-chan error
	)

	if flagSSHAddr != "" {
		cfg := tui.DefaultSSHServerConfig()
		cfg.Address = flagSSHAddr
		cfg.HostKeyPath = flagHostKey
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		cfg.GameID = runner.GameID
		cfg.TickRate = flagFPS
		cfg.ReleaseAfter = releaseAfter

		sshServer, err = tui.NewSSHServer(cfg, store, logger.WithPrefix("sprint-ssh"))
		if err != nil {
			return err
		}
		sshErr = sshServer.Start()
		fmt.Printf("SSH: connect with ssh -t localhost -p %s\n", portOf(flagSSHAddr))
	}

	if flagHTTPAddr != "" {
		cfg := web.DefaultConfig()
		cfg.Address = flagHTTPAddr
		httpServer = web.NewServer(cfg, store, logger.WithPrefix("sprint-http"))
		httpErr = httpServer.Start()
		fmt.Printf("HTTP: leaderboard at http://localhost:%s/api/games\n", portOf(flagHTTPAddr))
	}
	fmt.Println("Press Ctrl+C to stop")

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err, ok := <-sshErr:
		if ok {
			runErr = err
		}
	case err, ok := <-httpErr:
		if ok {
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if sshServer != nil {
		if err := sshServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("SSH shutdown", "error", err)
		}
	}
	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP shutdown", "error", err)
		}
	}
	return runErr
}

// portOf returns the port part of a host:port listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
