package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/painwatch/internal/store"
)

var (
	analyzeDays   int
	triggersDays  int
	triggersMin   int
	correlateDays int
	patternsDays  int
	patternsHist  int
)

var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Correlate pain with sleep or stress",
	Long: `Correlate pain intensity with sleep duration (per day) or stress level
(per hour) over a lookback window. At least 3 paired points are needed.`,
}

var correlateSleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "Correlate daily pain with daily sleep",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		r := env.engine.AnalyzeSleepPainCorrelation(cmd.Context(), correlateDays)
		return emit(cmd.OutOrStdout(), r, r.Error, func(w io.Writer) {
			renderCorrelation(w, "Sleep vs Pain", r)
		})
	},
}

var correlateStressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Correlate hourly pain with hourly stress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		r := env.engine.AnalyzeStressPainCorrelation(cmd.Context(), correlateDays)
		return emit(cmd.OutOrStdout(), r, r.Error, func(w io.Writer) {
			renderCorrelation(w, "Stress vs Pain", r)
		})
	},
}

var triggersCmd = &cobra.Command{
	Use:   "triggers",
	Short: "Show recurring triggers, activities and times",
	Long: `Tally physical and mental triggers, activities, hours of day and days of
week across pain entries, keeping those seen at least --min times.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		r := env.engine.DetectRecurrentTriggers(cmd.Context(), triggersDays, triggersMin)
		return emit(cmd.OutOrStdout(), r, r.Error, func(w io.Writer) {
			renderTriggers(w, r)
		})
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run every correlation and trigger analysis",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		r := env.engine.ComprehensiveAnalysis(cmd.Context(), analyzeDays)
		return emit(cmd.OutOrStdout(), r, r.Error, func(w io.Writer) {
			renderComprehensive(w, r)
		})
	},
}

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Detect intensity, trigger and relief patterns",
	Long: `Look for a rising intensity trend, a dominant trigger and the most
effective relief action in recent entries. Each run is appended to the
pattern log; --history shows the most recent log entries instead.

Examples:
  painwatch patterns --days 30
  painwatch patterns --history 20`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		if patternsHist > 0 {
			return runPatternHistory(cmd, env, patternsHist)
		}

		r := env.engine.AnalyzePainPatterns(cmd.Context(), patternsDays)
		return emit(cmd.OutOrStdout(), r, r.Error, func(w io.Writer) {
			renderPatterns(w, r)
		})
	},
}

func init() {
	correlateCmd.PersistentFlags().IntVar(&correlateDays, "days", 0, "Lookback window in days (default: analysis.default_days)")
	correlateCmd.AddCommand(correlateSleepCmd, correlateStressCmd)

	triggersCmd.Flags().IntVar(&triggersDays, "days", 0, "Lookback window in days (default: analysis.default_days)")
	triggersCmd.Flags().IntVar(&triggersMin, "min", 0, "Minimum occurrences (default: analysis.min_occurrences)")

	analyzeCmd.Flags().IntVar(&analyzeDays, "days", 0, "Lookback window in days (default: analysis.default_days)")

	patternsCmd.Flags().IntVar(&patternsDays, "days", 0, "Lookback window in days (default: prediction.pattern_days)")
	patternsCmd.Flags().IntVar(&patternsHist, "history", 0, "Show the N most recent pattern log entries")

	rootCmd.AddCommand(correlateCmd, triggersCmd, analyzeCmd, patternsCmd)
}

// patternHistory is the --json shape of patterns --history.
type patternHistory struct {
	Patterns []store.PatternRow `json:"patterns"`
	Total    int                `json:"total"`
}

func runPatternHistory(cmd *cobra.Command, env *appEnv, n int) error {
	ctx := cmd.Context()
	rows, err := env.db.RecentPatterns(ctx, n)
	if err != nil {
		return fmt.Errorf("reading pattern log: %w", err)
	}
	total, err := env.db.CountPatterns(ctx)
	if err != nil {
		return fmt.Errorf("counting pattern log: %w", err)
	}
	if rows == nil {
		rows = []store.PatternRow{}
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return writeJSON(w, patternHistory{Patterns: rows, Total: total})
	}
	renderPatternHistory(w, rows, total)
	return nil
}
