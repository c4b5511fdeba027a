// Package app contains the Cobra command tree for painwatch.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "painwatch",
	Short: "Correlate pain records with sleep, stress and triggers",
	Long: `painwatch reads a local log of pain entries and synced sleep and stress
snapshots, correlates them, surfaces recurring triggers and patterns, and
produces short-horizon pain risk predictions.

Run 'painwatch' with no arguments to list the available commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "painwatch", appVersion)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Use a subcommand:")
		fmt.Fprintln(w, "  log          Record a pain entry or list recent entries")
		fmt.Fprintln(w, "  correlate    Correlate pain with sleep or stress")
		fmt.Fprintln(w, "  triggers     Show recurring triggers, activities and times")
		fmt.Fprintln(w, "  analyze      Run every correlation and trigger analysis")
		fmt.Fprintln(w, "  patterns     Detect intensity, trigger and relief patterns")
		fmt.Fprintln(w, "  predict      Estimate pain risk for the next few hours")
		fmt.Fprintln(w, "  predictions  Show recorded predictions")
		fmt.Fprintln(w, "  mcp          Serve the analyses as MCP tools over stdio")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/painwatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}
