package analyzer

import (
	"fmt"
	"sort"

	"github.com/blackwell-systems/painwatch/internal/health"
)

// Fixed confidences and thresholds for pattern detection.
const (
	intensityIncreaseConfidence = 0.8
	commonTriggerConfidence     = 0.9
	effectiveActionConfidence   = 0.85

	// minTrendEvents is the shortest history an upward trend is reported on.
	minTrendEvents = 3

	// commonTriggerShare is the share of triggered events one trigger must reach.
	commonTriggerShare = 0.6

	// effectiveScore is the lowest effectiveness rating that counts as effective.
	effectiveScore = 7
)

// AnalyzePainPatterns detects an upward intensity trend, a dominant trigger,
// and the most reliably effective action in records. Records may be in any
// order; they are examined oldest first.
func AnalyzePainPatterns(records []health.PainRecord, days int) PatternAnalysis {
	result := PatternAnalysis{
		Patterns:        []PainPattern{},
		Recommendations: []string{},
		TotalEvents:     len(records),
		Days:            days,
	}
	if len(records) == 0 {
		result.Message = fmt.Sprintf("no pain entries in the last %d days", days)
		return result
	}

	events := make([]health.PainRecord, len(records))
	copy(events, records)
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.Before(events[j].Timestamp)
		}
		return events[i].ID < events[j].ID
	})

	if p, ok := detectIntensityIncrease(events); ok {
		result.Patterns = append(result.Patterns, p)
	}
	if p, ok := detectCommonTrigger(events); ok {
		result.Patterns = append(result.Patterns, p)
	}
	if p, ok := detectEffectiveAction(events); ok {
		result.Patterns = append(result.Patterns, p)
	}

	var sum float64
	for _, p := range result.Patterns {
		sum += p.Confidence
		result.Recommendations = append(result.Recommendations, p.Recommendation)
	}
	if len(result.Patterns) > 0 {
		result.Confidence = round3(sum / float64(len(result.Patterns)))
	} else {
		result.Message = "no recurring pattern detected"
	}

	return result
}

// detectIntensityIncrease reports when intensity never drops from one event
// to the next across the whole history.
func detectIntensityIncrease(events []health.PainRecord) (PainPattern, bool) {
	if len(events) < minTrendEvents {
		return PainPattern{}, false
	}
	for i := 1; i < len(events); i++ {
		if events[i].Intensity < events[i-1].Intensity {
			return PainPattern{}, false
		}
	}
	first, last := events[0].Intensity, events[len(events)-1].Intensity
	return PainPattern{
		Type:        PatternIntensityIncrease,
		Description: fmt.Sprintf("Pain intensity has not eased across the last %d entries (%d to %d)", len(events), first, last),
		Confidence:  intensityIncreaseConfidence,
		Recommendation: "Your pain keeps climbing: plan a consultation and review what changed " +
			"in your routine recently",
	}, true
}

// detectCommonTrigger reports a trigger behind at least 60% of the events
// that have one.
func detectCommonTrigger(events []health.PainRecord) (PainPattern, bool) {
	counts := make(map[string]int)
	triggered := 0
	for _, e := range events {
		t := e.PrimaryTrigger()
		if t == "" {
			continue
		}
		counts[t]++
		triggered++
	}
	if triggered == 0 {
		return PainPattern{}, false
	}

	ranked := rankStrings(counts, 1, 1)
	top := ranked[0]
	share := float64(top.count) / float64(triggered)
	if share < commonTriggerShare {
		return PainPattern{}, false
	}

	return PainPattern{
		Type:           PatternCommonTrigger,
		Description:    fmt.Sprintf("%q is behind %.0f%% of your triggered episodes", top.key, share*100),
		Confidence:     commonTriggerConfidence,
		Recommendation: fmt.Sprintf("Work on reducing exposure to %q, your most frequent trigger", top.key),
		Subject:        top.key,
	}, true
}

// detectEffectiveAction reports the action most often rated effective.
func detectEffectiveAction(events []health.PainRecord) (PainPattern, bool) {
	counts := make(map[string]int)
	for _, e := range events {
		if e.ActionTaken == "" || e.Effectiveness == nil || *e.Effectiveness < effectiveScore {
			continue
		}
		counts[e.ActionTaken]++
	}
	if len(counts) == 0 {
		return PainPattern{}, false
	}

	top := rankStrings(counts, 1, 1)[0]
	return PainPattern{
		Type:           PatternEffectiveAction,
		Description:    fmt.Sprintf("%q relieved your pain well %d time(s)", top.key, top.count),
		Confidence:     effectiveActionConfidence,
		Recommendation: fmt.Sprintf("Reach for %q early when pain starts, it has worked best for you", top.key),
		Subject:        top.key,
	}, true
}
