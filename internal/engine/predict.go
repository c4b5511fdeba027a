package engine

import (
	"context"
	"encoding/json"

	"github.com/blackwell-systems/painwatch/internal/analyzer"
	"github.com/blackwell-systems/painwatch/internal/store"
)

// AnalyzePainPatterns detects patterns in the last days days of pain
// records (the configured pattern window when days <= 0) and appends them
// to the pattern log. Results are never cached.
func (e *Engine) AnalyzePainPatterns(ctx context.Context, days int) analyzer.PatternAnalysis {
	if days <= 0 {
		days = e.opts.PatternDays
	}
	var result analyzer.PatternAnalysis
	err := e.guard(opPatterns, func() error {
		var err error
		result, err = e.analyzePatterns(ctx, days)
		return err
	})
	if err != nil {
		return analyzer.PatternAnalysis{
			Patterns:        []analyzer.PainPattern{},
			Recommendations: []string{},
			Days:            days,
			Error:           err.Error(),
		}
	}
	return result
}

func (e *Engine) analyzePatterns(ctx context.Context, days int) (analyzer.PatternAnalysis, error) {
	pain, err := e.loadPain(ctx, days)
	if err != nil {
		return analyzer.PatternAnalysis{}, err
	}
	result := analyzer.AnalyzePainPatterns(pain, days)
	e.recordPatterns(ctx, result)
	return result, nil
}

// recordPatterns appends one run to the pattern log and prunes it.
// Failures are logged only.
func (e *Engine) recordPatterns(ctx context.Context, result analyzer.PatternAnalysis) {
	if e.audit == nil || len(result.Patterns) == 0 {
		return
	}

	runID := e.newID()
	now := e.now()
	rows := make([]store.PatternRow, 0, len(result.Patterns))
	for _, p := range result.Patterns {
		rows = append(rows, store.PatternRow{
			RunID:          runID,
			PatternType:    string(p.Type),
			Description:    p.Description,
			Confidence:     p.Confidence,
			Recommendation: p.Recommendation,
			DetectedAt:     now,
		})
	}

	log := e.log.With("run_id", runID)
	if err := e.audit.InsertPatterns(ctx, rows); err != nil {
		log.Error("recording patterns failed", "error", err)
		return
	}
	pruned, err := e.audit.PrunePatternLog(ctx, e.opts.Retention, now)
	if err != nil {
		log.Error("pruning pattern log failed", "error", err)
		return
	}
	log.Debug("patterns recorded", "count", len(rows), "pruned", pruned)
}

// PredictPainEpisode estimates pain risk for the next few hours from the
// caller's context and recent patterns, and records the prediction.
func (e *Engine) PredictPainEpisode(ctx context.Context, pc analyzer.PredictionContext) analyzer.Prediction {
	var pred analyzer.Prediction
	err := e.guard(opPredict, func() error {
		history, err := e.analyzePatterns(ctx, e.opts.PatternDays)
		if err != nil {
			return err
		}
		pred = analyzer.PredictEpisode(pc, history, e.now())
		pred.ID = e.newID()
		e.recordPrediction(ctx, pred)
		return nil
	})
	if err != nil {
		return analyzer.Prediction{
			TimeHorizon:     analyzer.PredictionHorizon,
			ContextFactors:  analyzer.ResolveFactors(pc, e.now()),
			Recommendations: []string{},
			Error:           err.Error(),
		}
	}
	return pred
}

func (e *Engine) recordPrediction(ctx context.Context, p analyzer.Prediction) {
	if e.audit == nil {
		return
	}
	factors, err := json.Marshal(p.ContextFactors)
	if err != nil {
		e.log.Error("encoding prediction context failed", "id", p.ID, "error", err)
	}
	row := store.PredictionRow{
		ID:                 p.ID,
		PredictedIntensity: p.PredictedIntensity,
		PredictedTrigger:   p.PredictedTrigger,
		Confidence:         p.Confidence,
		TimeHorizon:        p.TimeHorizon,
		Context:            string(factors),
		CreatedAt:          p.CreatedAt,
	}
	if err := e.audit.InsertPrediction(ctx, row); err != nil {
		e.log.Error("recording prediction failed", "id", p.ID, "error", err)
	}
}
