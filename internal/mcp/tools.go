package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blackwell-systems/painwatch/internal/analyzer"
	"github.com/blackwell-systems/painwatch/internal/store"
)

// Analyzer is the engine surface exposed as tools.
type Analyzer interface {
	AnalyzeSleepPainCorrelation(ctx context.Context, days int) analyzer.CorrelationResult
	AnalyzeStressPainCorrelation(ctx context.Context, days int) analyzer.CorrelationResult
	DetectRecurrentTriggers(ctx context.Context, days, minOccurrences int) analyzer.TriggerReport
	ComprehensiveAnalysis(ctx context.Context, days int) analyzer.ComprehensiveAnalysis
	PredictPainEpisode(ctx context.Context, pc analyzer.PredictionContext) analyzer.Prediction
	AnalyzePainPatterns(ctx context.Context, days int) analyzer.PatternAnalysis
}

// AuditReader reads back the prediction audit trail and the pattern log.
type AuditReader interface {
	RecentPredictions(ctx context.Context, n int) ([]store.PredictionRow, error)
	RecentPatterns(ctx context.Context, n int) ([]store.PatternRow, error)
	CountPatterns(ctx context.Context) (int, error)
}

// maxDays bounds every lookback window a tool accepts.
const maxDays = 365

// Bounds on how many audit rows a history tool returns.
const (
	defaultHistory = 10
	maxHistory     = 100
)

var (
	daysSchema = json.RawMessage(`{"type":"object","properties":{"days_back":{"type":"integer","minimum":1,"maximum":365,"description":"Lookback window in days (default 30)"}},"additionalProperties":false}`)

	triggersSchema = json.RawMessage(`{"type":"object","properties":{"days_back":{"type":"integer","minimum":1,"maximum":365,"description":"Lookback window in days (default 30)"},"min_occurrences":{"type":"integer","minimum":1,"description":"Minimum count for an item to be reported (default 3)"}},"additionalProperties":false}`)

	patternsSchema = json.RawMessage(`{"type":"object","properties":{"days":{"type":"integer","minimum":1,"maximum":365,"description":"Lookback window in days (default 14)"}},"additionalProperties":false}`)

	predictSchema = json.RawMessage(`{"type":"object","properties":{"stress_level":{"type":"number","minimum":0,"maximum":1},"fatigue_level":{"type":"number","minimum":0,"maximum":1},"activity_intensity":{"type":"number","minimum":0,"maximum":1}},"additionalProperties":false}`)

	recentPredictionsSchema = json.RawMessage(`{"type":"object","properties":{"n":{"type":"integer","minimum":1,"maximum":100,"description":"Number of predictions to return (default 10)"}},"additionalProperties":false}`)

	recentPatternsSchema = json.RawMessage(`{"type":"object","properties":{"n":{"type":"integer","minimum":1,"maximum":100,"description":"Number of logged patterns to return (default 10)"}},"additionalProperties":false}`)
)

// addTools registers the analysis tools on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "analyze_sleep_pain_correlation",
		Description: "Correlation between daily sleep duration and pain intensity over a lookback window.",
		InputSchema: daysSchema,
		Handler:     s.handleSleepCorrelation,
	})
	s.registerTool(toolDef{
		Name:        "analyze_stress_pain_correlation",
		Description: "Correlation between hourly stress level and pain intensity over a lookback window.",
		InputSchema: daysSchema,
		Handler:     s.handleStressCorrelation,
	})
	s.registerTool(toolDef{
		Name:        "detect_recurrent_triggers",
		Description: "Triggers, activities, hours and weekdays that recur in pain entries.",
		InputSchema: triggersSchema,
		Handler:     s.handleTriggers,
	})
	s.registerTool(toolDef{
		Name:        "get_comprehensive_analysis",
		Description: "Sleep and stress correlations plus recurrent triggers with a summary.",
		InputSchema: daysSchema,
		Handler:     s.handleComprehensive,
	})
	s.registerTool(toolDef{
		Name:        "predict_pain_episode",
		Description: "Heuristic pain risk for the next 2-4 hours from current stress, fatigue and activity (each 0-1).",
		InputSchema: predictSchema,
		Handler:     s.handlePredict,
	})
	s.registerTool(toolDef{
		Name:        "analyze_pain_patterns",
		Description: "Rising intensity, dominant trigger and most effective relief action in recent entries.",
		InputSchema: patternsSchema,
		Handler:     s.handlePatterns,
	})
	if s.audit != nil {
		s.registerTool(toolDef{
			Name:        "get_recent_predictions",
			Description: "Most recent recorded predictions, newest first.",
			InputSchema: recentPredictionsSchema,
			Handler:     s.handleRecentPredictions,
		})
		s.registerTool(toolDef{
			Name:        "get_recent_patterns",
			Description: "Most recent entries of the pattern log, newest first, with the total logged.",
			InputSchema: recentPatternsSchema,
			Handler:     s.handleRecentPatterns,
		})
	}
}

type daysArgs struct {
	DaysBack       *int `json:"days_back"`
	Days           *int `json:"days"`
	MinOccurrences *int `json:"min_occurrences"`
}

// parseDays decodes optional window arguments. Absent values become 0 so
// the engine applies its configured defaults.
func parseDays(args json.RawMessage) (days, minOcc int, err error) {
	var a daysArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return 0, 0, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	for _, v := range []*int{a.DaysBack, a.Days} {
		if v == nil {
			continue
		}
		if *v < 1 || *v > maxDays {
			return 0, 0, fmt.Errorf("days must be between 1 and %d, got %d", maxDays, *v)
		}
		days = *v
	}
	if a.MinOccurrences != nil {
		if *a.MinOccurrences < 1 {
			return 0, 0, fmt.Errorf("min_occurrences must be at least 1, got %d", *a.MinOccurrences)
		}
		minOcc = *a.MinOccurrences
	}
	return days, minOcc, nil
}

// resultError turns an engine result's error field into a tool error.
func resultError(msg string) error {
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}

func (s *Server) handleSleepCorrelation(ctx context.Context, args json.RawMessage) (any, error) {
	days, _, err := parseDays(args)
	if err != nil {
		return nil, err
	}
	r := s.engine.AnalyzeSleepPainCorrelation(ctx, days)
	return r, resultError(r.Error)
}

func (s *Server) handleStressCorrelation(ctx context.Context, args json.RawMessage) (any, error) {
	days, _, err := parseDays(args)
	if err != nil {
		return nil, err
	}
	r := s.engine.AnalyzeStressPainCorrelation(ctx, days)
	return r, resultError(r.Error)
}

func (s *Server) handleTriggers(ctx context.Context, args json.RawMessage) (any, error) {
	days, minOcc, err := parseDays(args)
	if err != nil {
		return nil, err
	}
	r := s.engine.DetectRecurrentTriggers(ctx, days, minOcc)
	return r, resultError(r.Error)
}

func (s *Server) handleComprehensive(ctx context.Context, args json.RawMessage) (any, error) {
	days, _, err := parseDays(args)
	if err != nil {
		return nil, err
	}
	r := s.engine.ComprehensiveAnalysis(ctx, days)
	return r, resultError(r.Error)
}

func (s *Server) handlePatterns(ctx context.Context, args json.RawMessage) (any, error) {
	days, _, err := parseDays(args)
	if err != nil {
		return nil, err
	}
	r := s.engine.AnalyzePainPatterns(ctx, days)
	return r, resultError(r.Error)
}

func (s *Server) handlePredict(ctx context.Context, args json.RawMessage) (any, error) {
	var pc analyzer.PredictionContext
	if len(args) > 0 {
		if err := json.Unmarshal(args, &pc); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	r := s.engine.PredictPainEpisode(ctx, pc)
	return r, resultError(r.Error)
}

// parseHistoryN decodes the optional row count of a history tool.
func parseHistoryN(args json.RawMessage) (int, error) {
	var params struct {
		N *int `json:"n"`
	}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return 0, fmt.Errorf("invalid arguments: %w", err)
		}
	}
	if params.N == nil {
		return defaultHistory, nil
	}
	if *params.N < 1 || *params.N > maxHistory {
		return 0, fmt.Errorf("n must be between 1 and %d, got %d", maxHistory, *params.N)
	}
	return *params.N, nil
}

func (s *Server) handleRecentPredictions(ctx context.Context, args json.RawMessage) (any, error) {
	n, err := parseHistoryN(args)
	if err != nil {
		return nil, err
	}

	rows, err := s.audit.RecentPredictions(ctx, n)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []store.PredictionRow{}
	}
	return map[string]any{"predictions": rows}, nil
}

func (s *Server) handleRecentPatterns(ctx context.Context, args json.RawMessage) (any, error) {
	n, err := parseHistoryN(args)
	if err != nil {
		return nil, err
	}

	rows, err := s.audit.RecentPatterns(ctx, n)
	if err != nil {
		return nil, err
	}
	total, err := s.audit.CountPatterns(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []store.PatternRow{}
	}
	return map[string]any{"patterns": rows, "total": total}, nil
}
