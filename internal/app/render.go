package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/blackwell-systems/painwatch/internal/analyzer"
	"github.com/blackwell-systems/painwatch/internal/health"
	"github.com/blackwell-systems/painwatch/internal/output"
	"github.com/blackwell-systems/painwatch/internal/store"
)

func renderCorrelation(w io.Writer, title string, r analyzer.CorrelationResult) {
	fmt.Fprintln(w, output.Section(title))
	fmt.Fprintln(w)

	if r.Message != "" {
		fmt.Fprintf(w, " %s\n\n", output.StyleWarning.Render(r.Message))
		return
	}

	fmt.Fprintf(w, " %s %s  %s\n", output.StyleLabel.Render("Correlation"),
		output.CorrelationBar(r.Correlation, 10), output.StyleMuted.Render(output.Strength(r.Correlation)))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Confidence"), output.StyleValue.Render(output.Percent(r.Confidence)))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Paired points"), output.StyleValue.Render(strconv.Itoa(r.DataPoints)))

	if len(r.Patterns) > 0 {
		fmt.Fprintln(w)
		for _, p := range r.Patterns {
			fmt.Fprintf(w, "  %s %s\n", output.StyleError.Render("●"), p.Description)
		}
	}
	renderRecommendations(w, r.Recommendations)
	fmt.Fprintln(w)
}

func renderRecommendations(w io.Writer, recs []string) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, " %s\n", output.StyleBold.Render("Recommendations"))
	for _, rec := range recs {
		fmt.Fprintf(w, "  → %s\n", rec)
	}
}

func renderTriggers(w io.Writer, r analyzer.TriggerReport) {
	fmt.Fprintln(w, output.Section("Recurring Triggers"))
	fmt.Fprintf(w, " %s\n\n", output.StyleMuted.Render(fmt.Sprintf("%d entries, items seen at least %d times", r.TotalEntries, r.MinOccurrences)))

	if r.Message != "" {
		fmt.Fprintf(w, " %s\n\n", output.StyleWarning.Render(r.Message))
	}

	if len(r.Physical)+len(r.Mental) > 0 {
		tbl := output.NewTable("Trigger", "Kind", "Count")
		for _, t := range r.Physical {
			tbl.AddRow(t.Trigger, "physical", strconv.Itoa(t.Count))
		}
		for _, t := range r.Mental {
			tbl.AddRow(t.Trigger, "mental", strconv.Itoa(t.Count))
		}
		_ = tbl.Fprint(w)
		fmt.Fprintln(w)
	}

	if len(r.Activities) > 0 {
		tbl := output.NewTable("Activity", "Count")
		for _, a := range r.Activities {
			tbl.AddRow(a.Activity, strconv.Itoa(a.Count))
		}
		_ = tbl.Fprint(w)
		fmt.Fprintln(w)
	}

	if len(r.TemporalPatterns.Hours) > 0 {
		tbl := output.NewTable("Hour", "Count")
		for _, h := range r.TemporalPatterns.Hours {
			tbl.AddRow(fmt.Sprintf("%02d:00", h.Hour), strconv.Itoa(h.Count))
		}
		_ = tbl.Fprint(w)
		fmt.Fprintln(w)
	}

	if len(r.TemporalPatterns.Days) > 0 {
		tbl := output.NewTable("Day", "Count")
		for _, d := range r.TemporalPatterns.Days {
			tbl.AddRow(d.Day, strconv.Itoa(d.Count))
		}
		_ = tbl.Fprint(w)
		fmt.Fprintln(w)
	}
}

func renderComprehensive(w io.Writer, a analyzer.ComprehensiveAnalysis) {
	fmt.Fprintln(w, output.Section(fmt.Sprintf("Pain Analysis (last %d days)", a.DaysBack)))
	fmt.Fprintln(w)
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Pain entries"), output.StyleValue.Render(strconv.Itoa(a.Summary.TotalEntries)))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Recurring triggers"), output.StyleValue.Render(strconv.Itoa(a.Summary.TotalTriggersFound)))
	fmt.Fprintf(w, " %s %.2f %s\n", output.StyleLabel.Render("Sleep strength"),
		a.Summary.SleepCorrelationStrength, output.StyleMuted.Render(output.Strength(a.Summary.SleepCorrelationStrength)))
	fmt.Fprintf(w, " %s %.2f %s\n", output.StyleLabel.Render("Stress strength"),
		a.Summary.StressCorrelationStrength, output.StyleMuted.Render(output.Strength(a.Summary.StressCorrelationStrength)))

	renderCorrelation(w, "Sleep vs Pain", a.Sleep)
	renderCorrelation(w, "Stress vs Pain", a.Stress)
	renderTriggers(w, a.Triggers)
}

func renderPatterns(w io.Writer, pa analyzer.PatternAnalysis) {
	fmt.Fprintln(w, output.Section(fmt.Sprintf("Pain Patterns (last %d days)", pa.Days)))
	fmt.Fprintf(w, " %s\n\n", output.StyleMuted.Render(fmt.Sprintf("%d entries examined", pa.TotalEvents)))

	if pa.Message != "" {
		fmt.Fprintf(w, " %s\n\n", output.StyleWarning.Render(pa.Message))
	}
	for _, p := range pa.Patterns {
		fmt.Fprintf(w, "  %s %s %s\n", output.StyleError.Render("●"), p.Description,
			output.StyleMuted.Render("("+output.Percent(p.Confidence)+")"))
	}
	if len(pa.Patterns) > 0 {
		fmt.Fprintf(w, "\n %s %s\n", output.StyleLabel.Render("Overall confidence"), output.StyleValue.Render(output.Percent(pa.Confidence)))
	}
	renderRecommendations(w, pa.Recommendations)
	fmt.Fprintln(w)
}

func renderPatternHistory(w io.Writer, rows []store.PatternRow, total int) {
	fmt.Fprintln(w, output.Section("Pattern Log"))
	fmt.Fprintf(w, " %s\n\n", output.StyleMuted.Render(fmt.Sprintf("showing %d of %d logged patterns", len(rows), total)))
	if len(rows) == 0 {
		fmt.Fprintf(w, " %s\n\n", output.StyleMuted.Render("No patterns logged yet. Run 'painwatch patterns'."))
		return
	}

	tbl := output.NewTable("Detected", "Type", "Confidence", "Description")
	for _, r := range rows {
		tbl.AddRow(r.DetectedAt.Format("2006-01-02 15:04"), r.PatternType, output.Percent(r.Confidence), r.Description)
	}
	_ = tbl.Fprint(w)
	fmt.Fprintln(w)
}

func renderPrediction(w io.Writer, p analyzer.Prediction) {
	fmt.Fprintln(w, output.Section("Pain Risk, next "+p.TimeHorizon))
	fmt.Fprintln(w)
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Predicted intensity"), output.IntensityBar(p.PredictedIntensity, 10))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Likely trigger"), output.StyleBold.Render(p.PredictedTrigger))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Confidence"), output.StyleValue.Render(output.Percent(p.Confidence)))

	f := p.ContextFactors
	fmt.Fprintf(w, " %s\n", output.StyleMuted.Render(fmt.Sprintf("stress %.2f, fatigue %.2f, activity %.2f, %s %02d:00",
		f.StressLevel, f.FatigueLevel, f.ActivityIntensity, f.DayOfWeek, f.TimeOfDay)))

	renderRecommendations(w, p.Recommendations)
	fmt.Fprintf(w, "\n %s\n\n", output.StyleMuted.Render("id "+p.ID))
}

func renderPredictionRow(w io.Writer, row store.PredictionRow) {
	fmt.Fprintln(w, output.Section("Prediction "+row.ID))
	fmt.Fprintln(w)
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Created"), row.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Predicted intensity"), output.IntensityBar(row.PredictedIntensity, 10))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Likely trigger"), row.PredictedTrigger)
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Confidence"), output.Percent(row.Confidence))
	fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Horizon"), row.TimeHorizon)
	if row.Context != "" {
		fmt.Fprintf(w, " %s %s\n", output.StyleLabel.Render("Context"), output.StyleMuted.Render(row.Context))
	}
	fmt.Fprintln(w)
}

func renderPredictionRows(w io.Writer, rows []store.PredictionRow) {
	fmt.Fprintln(w, output.Section("Recorded Predictions"))
	fmt.Fprintln(w)
	if len(rows) == 0 {
		fmt.Fprintf(w, " %s\n\n", output.StyleMuted.Render("No predictions recorded yet. Run 'painwatch predict'."))
		return
	}

	tbl := output.NewTable("Created", "Intensity", "Trigger", "Confidence", "ID")
	for _, r := range rows {
		tbl.AddRow(r.CreatedAt.Format("2006-01-02 15:04"), strconv.Itoa(r.PredictedIntensity),
			r.PredictedTrigger, output.Percent(r.Confidence), r.ID)
	}
	_ = tbl.Fprint(w)
	fmt.Fprintln(w)
}

func renderPainEntries(w io.Writer, recs []health.PainRecord, days int) {
	fmt.Fprintln(w, output.Section(fmt.Sprintf("Pain Entries (last %d days)", days)))
	fmt.Fprintln(w)
	if len(recs) == 0 {
		fmt.Fprintf(w, " %s\n\n", output.StyleMuted.Render("No entries."))
		return
	}

	tbl := output.NewTable("ID", "Time", "Intensity", "Trigger", "Activity", "Action")
	for _, r := range recs {
		action := r.ActionTaken
		if action != "" && r.Effectiveness != nil {
			action = fmt.Sprintf("%s (%d/10)", action, *r.Effectiveness)
		}
		tbl.AddRow(strconv.FormatInt(r.ID, 10), r.Timestamp.Format("2006-01-02 15:04"),
			strconv.Itoa(r.Intensity), r.PrimaryTrigger(), r.Activity, action)
	}
	_ = tbl.Fprint(w)
	fmt.Fprintln(w)
}
