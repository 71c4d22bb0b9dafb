package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/krackeddevs/sprint-runner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default runner config",
	Long: `Prints the built-in runner config as YAML. Redirect it to a file and
pass it to 'sprint play --config' to tune the rules.`,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	_, err := os.Stdout.Write(config.DefaultYAML())
	return err
}
