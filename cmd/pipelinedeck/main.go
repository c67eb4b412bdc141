package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pipelinedeck",
		Short: "CI/CD pipeline demo dashboard",
		Long: `pipelinedeck animates a mock CI/CD pipeline in the terminal.

It keeps running totals of builds, scans and deployments, bumps them at
random in the background and lets you trigger a simulated pipeline run.
Nothing is actually built, scanned or deployed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDashboard,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/pipelinedeck/config.toml)")
	rootCmd.PersistentFlags().String("store", "", "Counter store: sqlite://<path>, memory:// or a plain file path")

	rootCmd.AddCommand(
		newVersionCmd(),
		newStatsCmd(),
		newSimulateCmd(),
		newResetCmd(),
		newConfigCmd(),
	)
	return rootCmd
}
