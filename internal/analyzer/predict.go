package analyzer

import (
	"time"
)

// PredictionHorizon is the fixed window a prediction speaks for.
const PredictionHorizon = "2-4 hours"

// DefaultTrigger is predicted when no contextual factor stands out.
const DefaultTrigger = "marche"

const (
	defaultFactor   = 0.5
	factorHighWater = 0.7

	baseIntensity = 3.0

	// minHistoryEvents is the event count below which confidence stays low.
	minHistoryEvents = 5
)

// Discrete prediction confidence bands.
const (
	ConfidenceLow      = 0.3
	ConfidenceModerate = 0.5
	ConfidenceHigh     = 0.8
)

// ResolveFactors fills absent factors with 0.5 and clamps all of them to
// [0,1]. Time of day and weekday come from now.
func ResolveFactors(pc PredictionContext, now time.Time) ContextFactors {
	return ContextFactors{
		StressLevel:       resolveFactor(pc.StressLevel),
		FatigueLevel:      resolveFactor(pc.FatigueLevel),
		ActivityIntensity: resolveFactor(pc.ActivityIntensity),
		TimeOfDay:         now.Hour(),
		DayOfWeek:         now.Weekday().String(),
	}
}

func resolveFactor(v *float64) float64 {
	if v == nil {
		return defaultFactor
	}
	return clampFloat(*v, 0, 1)
}

// PredictEpisode scores the risk of a pain episode in the next few hours
// from the caller's context and the recent pattern analysis. It is a fixed
// linear heuristic; the returned prediction has no ID yet.
func PredictEpisode(pc PredictionContext, history PatternAnalysis, now time.Time) Prediction {
	f := ResolveFactors(pc, now)

	adjustment := 0.0
	if len(history.Patterns) > 0 {
		adjustment = history.Confidence * 2
	}

	score := baseIntensity + 3*f.StressLevel + 2*f.FatigueLevel + 2*f.ActivityIntensity + adjustment
	intensity := int(clampFloat(score, 0, 10))

	return Prediction{
		PredictedIntensity: intensity,
		PredictedTrigger:   predictTrigger(f),
		Confidence:         predictionConfidence(history),
		TimeHorizon:        PredictionHorizon,
		ContextFactors:     f,
		Recommendations:    bandRecommendations(intensity),
		CreatedAt:          now,
	}
}

// predictTrigger applies the first matching rule: stress, fatigue, effort.
func predictTrigger(f ContextFactors) string {
	switch {
	case f.StressLevel > factorHighWater:
		return "stress"
	case f.FatigueLevel > factorHighWater:
		return "fatigue"
	case f.ActivityIntensity > factorHighWater:
		return "effort"
	default:
		return DefaultTrigger
	}
}

func predictionConfidence(history PatternAnalysis) float64 {
	switch {
	case history.TotalEvents < minHistoryEvents:
		return ConfidenceLow
	case history.Confidence > factorHighWater:
		return ConfidenceHigh
	default:
		return ConfidenceModerate
	}
}

func bandRecommendations(intensity int) []string {
	switch {
	case intensity >= 8:
		return []string{
			"High risk of a severe episode: take your rescue medication as prescribed",
			"Stop strenuous activity and rest somewhere quiet",
			"Contact your doctor if the pain does not ease",
		}
	case intensity >= 6:
		return []string{
			"Moderate risk: take a preventive break now",
			"Stretch gently and stay hydrated",
			"Keep your usual relief options within reach",
		}
	case intensity >= 4:
		return []string{
			"Light risk: pace your activities",
			"A short walk or breathing exercise can help",
		}
	default:
		return []string{
			"Low risk: keep up your current routine",
		}
	}
}
