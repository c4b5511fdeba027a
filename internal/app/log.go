package app

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/painwatch/internal/health"
)

var (
	logPhysical      string
	logMental        string
	logActivity      string
	logAction        string
	logEffectiveness int
	logLocation      string
	logAt            string
	logList          bool
	logDays          int
	logDelete        int64
)

var logCmd = &cobra.Command{
	Use:   "log [intensity]",
	Short: "Record a pain entry or list recent entries",
	Long: `Record a pain entry with an intensity from 0 to 10 and optional context,
or list the entries of the last few days.

Examples:
  painwatch log 6 --physical posture --activity "desk work"
  painwatch log 4 --mental stress --action stretching --effectiveness 8
  painwatch log 7 --at 2024-03-01T09:30:00
  painwatch log --list --days 7
  painwatch log --delete 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLog,
}

func init() {
	logCmd.Flags().StringVar(&logPhysical, "physical", "", "Physical trigger")
	logCmd.Flags().StringVar(&logMental, "mental", "", "Mental trigger")
	logCmd.Flags().StringVar(&logActivity, "activity", "", "Activity at onset")
	logCmd.Flags().StringVar(&logAction, "action", "", "Action taken")
	logCmd.Flags().IntVar(&logEffectiveness, "effectiveness", -1, "How well the action worked, 0-10")
	logCmd.Flags().StringVar(&logLocation, "location", "", "Where it hurts")
	logCmd.Flags().StringVar(&logAt, "at", "", "Entry time as YYYY-MM-DDTHH:MM:SS (default: now)")
	logCmd.Flags().BoolVar(&logList, "list", false, "List recent entries")
	logCmd.Flags().IntVar(&logDays, "days", 7, "Window for --list in days")
	logCmd.Flags().Int64Var(&logDelete, "delete", 0, "Delete the entry with this id")
	rootCmd.AddCommand(logCmd)
}

// parseIntensity validates a 0-10 intensity argument.
func parseIntensity(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("intensity must be a whole number: %w", err)
	}
	if v < 0 || v > 10 {
		return 0, fmt.Errorf("intensity must be between 0 and 10, got %d", v)
	}
	return v, nil
}

// buildPainRecord assembles a record from the command line.
func buildPainRecord(args []string, now time.Time) (health.PainRecord, error) {
	if len(args) == 0 {
		return health.PainRecord{}, errors.New("usage: painwatch log <intensity> [flags]\nUse --list to view recent entries")
	}
	intensity, err := parseIntensity(args[0])
	if err != nil {
		return health.PainRecord{}, err
	}

	ts := health.Naive(now)
	if logAt != "" {
		ts, err = health.ParseTimestamp(logAt)
		if err != nil {
			return health.PainRecord{}, fmt.Errorf("--at: %w", err)
		}
	}

	rec := health.PainRecord{
		Timestamp:       ts,
		Intensity:       intensity,
		PhysicalTrigger: logPhysical,
		MentalTrigger:   logMental,
		Activity:        logActivity,
		ActionTaken:     logAction,
		Location:        logLocation,
	}
	if logEffectiveness >= 0 {
		if logEffectiveness > 10 {
			return health.PainRecord{}, fmt.Errorf("effectiveness must be between 0 and 10, got %d", logEffectiveness)
		}
		eff := logEffectiveness
		rec.Effectiveness = &eff
	}
	return rec, nil
}

func runLog(cmd *cobra.Command, args []string) error {
	env, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	switch {
	case logDelete > 0:
		if err := env.db.DeletePainEntry(ctx, logDelete); err != nil {
			return fmt.Errorf("deleting entry: %w", err)
		}
		fmt.Fprintf(w, "Deleted entry %d\n", logDelete)
		return nil

	case logList:
		recs, err := env.db.PainEntriesSince(ctx, health.Cutoff(time.Now(), logDays))
		if err != nil {
			return fmt.Errorf("listing entries: %w", err)
		}
		if flagJSON {
			if recs == nil {
				recs = []health.PainRecord{}
			}
			return writeJSON(w, recs)
		}
		renderPainEntries(w, recs, logDays)
		return nil
	}

	rec, err := buildPainRecord(args, time.Now())
	if err != nil {
		return err
	}
	id, err := env.db.InsertPainEntry(ctx, rec)
	if err != nil {
		return fmt.Errorf("recording entry: %w", err)
	}
	rec.ID = id
	env.log.Debug("pain entry recorded", "id", id, "intensity", rec.Intensity)

	if flagJSON {
		return writeJSON(w, rec)
	}
	fmt.Fprintf(w, "Logged entry %d: intensity %d at %s\n", id, rec.Intensity, health.FormatTimestamp(rec.Timestamp))
	return nil
}
