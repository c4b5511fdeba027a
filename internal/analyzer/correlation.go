package analyzer

import (
	"fmt"
	"math"

	"github.com/blackwell-systems/painwatch/internal/health"
)

// Pattern and recommendation thresholds on Pearson's r.
const (
	sleepPatternThreshold         = -0.3
	sleepRecommendationThreshold  = -0.4
	stressPatternThreshold        = 0.4
	stressRecommendationThreshold = 0.5
)

// AnalyzeSleepCorrelation correlates daily pain with daily sleep duration.
// Less sleep going with more pain shows up as a negative correlation.
func AnalyzeSleepCorrelation(pain []health.PainRecord, sleep []health.SleepSnapshot) CorrelationResult {
	pairs := AlignSleep(pain, sleep)
	result, ok := correlate(KindSleep, pairs)
	if !ok {
		return result
	}

	if result.Correlation < sleepPatternThreshold {
		result.Patterns = append(result.Patterns, Pattern{
			Type:        "sleep_pain",
			Description: "Shorter sleep is followed by higher pain on the same day",
			Strength:    round3(math.Abs(result.Correlation)),
		})
	}
	if result.Correlation < sleepRecommendationThreshold {
		result.Recommendations = append(result.Recommendations,
			"Prioritise a regular sleep schedule: short nights line up with your worst pain days")
	}
	return result
}

// AnalyzeStressCorrelation correlates hourly pain with hourly stress level.
func AnalyzeStressCorrelation(pain []health.PainRecord, stress []health.StressSnapshot, mode StressAggregation) CorrelationResult {
	pairs := AlignStress(pain, stress, mode)
	result, ok := correlate(KindStress, pairs)
	if !ok {
		return result
	}

	if result.Correlation > stressPatternThreshold {
		result.Patterns = append(result.Patterns, Pattern{
			Type:        "stress_pain",
			Description: "Pain rises in the same hours your stress level is high",
			Strength:    round3(math.Abs(result.Correlation)),
		})
	}
	if result.Correlation > stressRecommendationThreshold {
		result.Recommendations = append(result.Recommendations,
			"Add short relaxation breaks (breathing, a walk) when stress builds up during the day")
	}
	return result
}

// correlate fills the common result fields. It reports false when there
// were too few pairs to compute a correlation.
func correlate(kind CorrelationKind, pairs []AlignedPair) (CorrelationResult, bool) {
	result := CorrelationResult{
		Kind:            kind,
		DataPoints:      len(pairs),
		Patterns:        []Pattern{},
		Recommendations: []string{},
		Pairs:           previewPairs(pairs),
	}

	if len(pairs) < MinPairedPoints {
		result.Message = fmt.Sprintf("insufficient data: %d paired points, at least %d needed",
			len(pairs), MinPairedPoints)
		return result, false
	}

	x := make([]float64, len(pairs))
	y := make([]float64, len(pairs))
	for i, p := range pairs {
		x[i] = p.Pain
		y[i] = p.Value
	}

	result.Correlation = round3(Pearson(x, y))
	result.Confidence = round3(DataConfidence(len(pairs)))
	return result, true
}

func previewPairs(pairs []AlignedPair) []AlignedPair {
	n := len(pairs)
	if n > PairPreviewLimit {
		n = PairPreviewLimit
	}
	out := make([]AlignedPair, n)
	copy(out, pairs[:n])
	return out
}
