package engine

import (
	"context"
	"math"

	"github.com/blackwell-systems/painwatch/internal/analyzer"
	"github.com/blackwell-systems/painwatch/internal/cache"
)

func failedCorrelation(kind analyzer.CorrelationKind, err error) analyzer.CorrelationResult {
	return analyzer.CorrelationResult{
		Kind:            kind,
		Patterns:        []analyzer.Pattern{},
		Recommendations: []string{},
		Pairs:           []analyzer.AlignedPair{},
		Error:           err.Error(),
	}
}

// AnalyzeSleepPainCorrelation correlates daily pain with daily sleep over
// the last days days (the configured default when days <= 0).
func (e *Engine) AnalyzeSleepPainCorrelation(ctx context.Context, days int) analyzer.CorrelationResult {
	days = e.days(days)
	var result analyzer.CorrelationResult
	err := e.guard(opSleep, func() error {
		var err error
		result, err = cached(ctx, e, cache.Key(opSleep, days, 0), func(ctx context.Context) (analyzer.CorrelationResult, error) {
			pain, err := e.loadPain(ctx, days)
			if err != nil {
				return analyzer.CorrelationResult{}, err
			}
			sleep, err := e.loadSleep(ctx, days)
			if err != nil {
				return analyzer.CorrelationResult{}, err
			}
			return analyzer.AnalyzeSleepCorrelation(pain, sleep), nil
		})
		return err
	})
	if err != nil {
		return failedCorrelation(analyzer.KindSleep, err)
	}
	return result
}

// AnalyzeStressPainCorrelation correlates hourly pain with hourly stress.
func (e *Engine) AnalyzeStressPainCorrelation(ctx context.Context, days int) analyzer.CorrelationResult {
	days = e.days(days)
	var result analyzer.CorrelationResult
	err := e.guard(opStress, func() error {
		var err error
		result, err = cached(ctx, e, cache.Key(opStress, days, 0), func(ctx context.Context) (analyzer.CorrelationResult, error) {
			pain, err := e.loadPain(ctx, days)
			if err != nil {
				return analyzer.CorrelationResult{}, err
			}
			stress, err := e.loadStress(ctx, days)
			if err != nil {
				return analyzer.CorrelationResult{}, err
			}
			return analyzer.AnalyzeStressCorrelation(pain, stress, e.opts.StressMean), nil
		})
		return err
	})
	if err != nil {
		return failedCorrelation(analyzer.KindStress, err)
	}
	return result
}

// DetectRecurrentTriggers reports triggers, activities and times seen at
// least minOccurrences times (the configured default when <= 0).
func (e *Engine) DetectRecurrentTriggers(ctx context.Context, days, minOccurrences int) analyzer.TriggerReport {
	days = e.days(days)
	if minOccurrences <= 0 {
		minOccurrences = e.opts.MinOccurrences
	}
	var report analyzer.TriggerReport
	err := e.guard(opTriggers, func() error {
		var err error
		report, err = cached(ctx, e, cache.Key(opTriggers, days, minOccurrences), func(ctx context.Context) (analyzer.TriggerReport, error) {
			pain, err := e.loadPain(ctx, days)
			if err != nil {
				return analyzer.TriggerReport{}, err
			}
			return analyzer.DetectRecurrentTriggers(pain, minOccurrences), nil
		})
		return err
	})
	if err != nil {
		failed := analyzer.DetectRecurrentTriggers(nil, minOccurrences)
		failed.Message = ""
		failed.Error = err.Error()
		return failed
	}
	return report
}

// ComprehensiveAnalysis runs the sleep, stress and trigger analyses over
// one window, loading each kind of data once. The summary carries the
// absolute correlation strengths.
func (e *Engine) ComprehensiveAnalysis(ctx context.Context, days int) analyzer.ComprehensiveAnalysis {
	days = e.days(days)
	minOcc := e.opts.MinOccurrences
	var result analyzer.ComprehensiveAnalysis
	err := e.guard(opComprehensive, func() error {
		var err error
		result, err = cached(ctx, e, cache.Key(opComprehensive, days, minOcc), func(ctx context.Context) (analyzer.ComprehensiveAnalysis, error) {
			pain, err := e.loadPain(ctx, days)
			if err != nil {
				return analyzer.ComprehensiveAnalysis{}, err
			}
			sleep, err := e.loadSleep(ctx, days)
			if err != nil {
				return analyzer.ComprehensiveAnalysis{}, err
			}
			stress, err := e.loadStress(ctx, days)
			if err != nil {
				return analyzer.ComprehensiveAnalysis{}, err
			}

			out := analyzer.ComprehensiveAnalysis{
				DaysBack: days,
				Sleep:    analyzer.AnalyzeSleepCorrelation(pain, sleep),
				Stress:   analyzer.AnalyzeStressCorrelation(pain, stress, e.opts.StressMean),
				Triggers: analyzer.DetectRecurrentTriggers(pain, minOcc),
			}
			out.Summary = analyzer.AnalysisSummary{
				SleepCorrelationStrength:  math.Abs(out.Sleep.Correlation),
				StressCorrelationStrength: math.Abs(out.Stress.Correlation),
				TotalTriggersFound:        out.Triggers.DistinctTriggers(),
				TotalEntries:              len(pain),
			}
			return out, nil
		})
		return err
	})
	if err != nil {
		return analyzer.ComprehensiveAnalysis{
			DaysBack: days,
			Sleep:    failedCorrelation(analyzer.KindSleep, err),
			Stress:   failedCorrelation(analyzer.KindStress, err),
			Error:    err.Error(),
		}
	}
	return result
}
