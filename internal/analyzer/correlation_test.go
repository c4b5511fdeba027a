package analyzer

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/painwatch/internal/health"
)

func TestAnalyzeSleepCorrelation_StrongNegative(t *testing.T) {
	var records []health.PainRecord
	var sleep []health.SleepSnapshot
	for i := 0; i < 5; i++ {
		records = append(records, pain(at(i+1, 12, 0), 2+2*i))
		sleep = append(sleep, health.SleepSnapshot{SleepStart: at(i+1, 0, 0), DurationMinutes: float64(500 - 100*i)})
	}

	result := AnalyzeSleepCorrelation(records, sleep)
	if result.Kind != KindSleep {
		t.Errorf("expected kind sleep, got %q", result.Kind)
	}
	if result.Correlation != -1 {
		t.Errorf("expected correlation -1, got %f", result.Correlation)
	}
	if result.DataPoints != 5 {
		t.Errorf("expected 5 data points, got %d", result.DataPoints)
	}
	if result.Confidence != 0.167 {
		t.Errorf("expected confidence 0.167, got %f", result.Confidence)
	}
	if len(result.Patterns) != 1 || result.Patterns[0].Type != "sleep_pain" {
		t.Fatalf("expected one sleep_pain pattern, got %+v", result.Patterns)
	}
	if result.Patterns[0].Strength != 1 {
		t.Errorf("expected strength 1, got %f", result.Patterns[0].Strength)
	}
	if len(result.Recommendations) != 1 {
		t.Errorf("expected one recommendation, got %d", len(result.Recommendations))
	}
}

func TestAnalyzeSleepCorrelation_PositiveHasNoPattern(t *testing.T) {
	var records []health.PainRecord
	var sleep []health.SleepSnapshot
	for i := 0; i < 4; i++ {
		records = append(records, pain(at(i+1, 12, 0), 2+i))
		sleep = append(sleep, health.SleepSnapshot{SleepStart: at(i+1, 0, 0), DurationMinutes: float64(300 + 60*i)})
	}

	result := AnalyzeSleepCorrelation(records, sleep)
	if result.Correlation != 1 {
		t.Errorf("expected correlation 1, got %f", result.Correlation)
	}
	if len(result.Patterns) != 0 || len(result.Recommendations) != 0 {
		t.Errorf("expected no pattern or recommendation, got %+v", result)
	}
}

func TestAnalyzeStressCorrelation_StrongPositive(t *testing.T) {
	var records []health.PainRecord
	var stress []health.StressSnapshot
	for i := 0; i < 3; i++ {
		records = append(records, pain(at(1, 8+i, 10), 1+i))
		stress = append(stress, health.StressSnapshot{Timestamp: at(1, 8+i, 0), StressLevel: float64(2 + 2*i)})
	}

	result := AnalyzeStressCorrelation(records, stress, StressExactMean)
	if result.Correlation != 1 {
		t.Errorf("expected correlation 1, got %f", result.Correlation)
	}
	if len(result.Patterns) != 1 || result.Patterns[0].Type != "stress_pain" {
		t.Fatalf("expected one stress_pain pattern, got %+v", result.Patterns)
	}
	if len(result.Recommendations) != 1 {
		t.Errorf("expected one recommendation, got %d", len(result.Recommendations))
	}
	if len(result.Pairs) != 3 {
		t.Errorf("expected 3 preview pairs, got %d", len(result.Pairs))
	}
}

func TestCorrelation_InsufficientData(t *testing.T) {
	records := []health.PainRecord{pain(at(1, 9, 0), 9), pain(at(2, 9, 0), 1)}
	sleep := []health.SleepSnapshot{
		{SleepStart: at(1, 0, 0), DurationMinutes: 200},
		{SleepStart: at(2, 0, 0), DurationMinutes: 500},
	}

	result := AnalyzeSleepCorrelation(records, sleep)
	if result.Correlation != 0 || result.Confidence != 0 {
		t.Errorf("expected zero correlation and confidence, got %f / %f", result.Correlation, result.Confidence)
	}
	if !strings.Contains(result.Message, "insufficient data") {
		t.Errorf("expected insufficient data message, got %q", result.Message)
	}
	if result.DataPoints != 2 {
		t.Errorf("expected 2 data points, got %d", result.DataPoints)
	}

	empty := AnalyzeStressCorrelation(nil, nil, StressExactMean)
	if empty.Correlation != 0 || empty.Confidence != 0 || empty.Message == "" {
		t.Errorf("expected empty stress result with message, got %+v", empty)
	}
}

func TestCorrelation_PairPreviewBounded(t *testing.T) {
	var records []health.PainRecord
	var sleep []health.SleepSnapshot
	for i := 0; i < 20; i++ {
		records = append(records, pain(at(i+1, 12, 0), i%10))
		sleep = append(sleep, health.SleepSnapshot{SleepStart: at(i+1, 0, 0), DurationMinutes: float64(400 + i)})
	}

	result := AnalyzeSleepCorrelation(records, sleep)
	if result.DataPoints != 20 {
		t.Errorf("expected 20 data points, got %d", result.DataPoints)
	}
	if len(result.Pairs) != PairPreviewLimit {
		t.Errorf("expected %d preview pairs, got %d", PairPreviewLimit, len(result.Pairs))
	}
	if result.Pairs[0].Bucket != "2024-03-01" {
		t.Errorf("expected preview to start at first bucket, got %q", result.Pairs[0].Bucket)
	}
}
