// Package analyzer provides the temporal alignment, correlation, trigger,
// pattern, and prediction computations behind painwatch. Every function here
// is pure: inputs are already-loaded records and outputs are plain values.
package analyzer

import "time"

// CorrelationKind names which external series was correlated with pain.
type CorrelationKind string

const (
	KindSleep  CorrelationKind = "sleep"
	KindStress CorrelationKind = "stress"
)

// MinPairedPoints is the fewest aligned buckets a correlation is computed on.
const MinPairedPoints = 3

// PairPreviewLimit bounds how many aligned pairs a result carries.
const PairPreviewLimit = 10

// AlignedPair is one bucket present in both series.
type AlignedPair struct {
	// Bucket is the shared key: "2006-01-02" for sleep, "2006-01-02T15" for stress.
	Bucket string `json:"bucket"`

	// Pain is the mean pain intensity of the bucket.
	Pain float64 `json:"pain"`

	// Value is the external measure: sleep minutes or stress level.
	Value float64 `json:"value"`
}

// Pattern is a correlation-derived regularity.
type Pattern struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Strength    float64 `json:"strength"`
}

// CorrelationResult is the outcome of correlating pain with one external series.
type CorrelationResult struct {
	Kind CorrelationKind `json:"kind"`

	// Correlation is Pearson's r in [-1, 1], rounded to 3 decimals.
	Correlation float64 `json:"correlation"`

	// Confidence is min(DataPoints/30, 1).
	Confidence float64 `json:"confidence"`

	// DataPoints is the number of aligned buckets used.
	DataPoints int `json:"data_points"`

	Patterns        []Pattern     `json:"patterns"`
	Recommendations []string      `json:"recommendations"`
	Pairs           []AlignedPair `json:"pairs"`

	// Message explains a degraded result, e.g. insufficient data.
	Message string `json:"message,omitempty"`

	// Error is set when the analysis failed unexpectedly.
	Error string `json:"error,omitempty"`
}

// TriggerCount is a trigger and how often it was logged.
type TriggerCount struct {
	Trigger string `json:"trigger"`
	Count   int    `json:"count"`
}

// ActivityCount is an activity and how often it was logged.
type ActivityCount struct {
	Activity string `json:"activity"`
	Count    int    `json:"count"`
}

// HourCount is an hour of day (0-23) and its entry count.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// DayCount is a weekday name and its entry count.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// TemporalPatterns groups entry counts by time of day and day of week.
type TemporalPatterns struct {
	Hours []HourCount `json:"hours"`
	Days  []DayCount  `json:"days"`
}

// TriggerReport is the outcome of recurrent trigger detection.
type TriggerReport struct {
	Physical         []TriggerCount   `json:"physical"`
	Mental           []TriggerCount   `json:"mental"`
	Activities       []ActivityCount  `json:"activities"`
	TemporalPatterns TemporalPatterns `json:"temporal_patterns"`
	TotalEntries     int              `json:"total_entries"`
	MinOccurrences   int              `json:"min_occurrences"`
	Message          string           `json:"message,omitempty"`
	Error            string           `json:"error,omitempty"`
}

// DistinctTriggers returns the number of distinct physical and mental
// triggers in the report.
func (r TriggerReport) DistinctTriggers() int {
	seen := make(map[string]bool, len(r.Physical)+len(r.Mental))
	for _, t := range r.Physical {
		seen[t.Trigger] = true
	}
	for _, t := range r.Mental {
		seen[t.Trigger] = true
	}
	return len(seen)
}

// AnalysisSummary condenses a comprehensive analysis.
type AnalysisSummary struct {
	SleepCorrelationStrength  float64 `json:"sleep_correlation_strength"`
	StressCorrelationStrength float64 `json:"stress_correlation_strength"`
	TotalTriggersFound        int     `json:"total_triggers_found"`
	TotalEntries              int     `json:"total_entries"`
}

// ComprehensiveAnalysis bundles every correlation and trigger analysis over
// one window.
type ComprehensiveAnalysis struct {
	DaysBack int               `json:"days_back"`
	Sleep    CorrelationResult `json:"sleep"`
	Stress   CorrelationResult `json:"stress"`
	Triggers TriggerReport     `json:"triggers"`
	Summary  AnalysisSummary   `json:"summary"`
	Error    string            `json:"error,omitempty"`
}

// PainPatternType names a detected pain pattern.
type PainPatternType string

const (
	PatternIntensityIncrease PainPatternType = "intensity_increase"
	PatternCommonTrigger     PainPatternType = "common_trigger"
	PatternEffectiveAction   PainPatternType = "effective_action"
)

// PainPattern is a heuristically detected regularity with a fixed confidence.
type PainPattern struct {
	Type           PainPatternType `json:"type"`
	Description    string          `json:"description"`
	Confidence     float64         `json:"confidence"`
	Recommendation string          `json:"recommendation"`

	// Subject is the trigger or action the pattern is about, when any.
	Subject string `json:"subject,omitempty"`
}

// PatternAnalysis is the outcome of pain pattern detection.
type PatternAnalysis struct {
	Patterns        []PainPattern `json:"patterns"`
	Recommendations []string      `json:"recommendations"`

	// Confidence is the mean confidence of Patterns, 0 when there are none.
	Confidence float64 `json:"confidence"`

	// TotalEvents is the number of pain records examined.
	TotalEvents int    `json:"total_events"`
	Days        int    `json:"days"`
	Message     string `json:"message,omitempty"`
	Error       string `json:"error,omitempty"`
}

// PredictionContext carries the caller's current state. Nil factors
// default to 0.5.
type PredictionContext struct {
	StressLevel       *float64 `json:"stress_level,omitempty"`
	FatigueLevel      *float64 `json:"fatigue_level,omitempty"`
	ActivityIntensity *float64 `json:"activity_intensity,omitempty"`
}

// ContextFactors are the resolved inputs a prediction was made from.
type ContextFactors struct {
	StressLevel       float64 `json:"stress_level"`
	FatigueLevel      float64 `json:"fatigue_level"`
	ActivityIntensity float64 `json:"activity_intensity"`
	TimeOfDay         int     `json:"time_of_day"`
	DayOfWeek         string  `json:"day_of_week"`
}

// Prediction is a short-horizon pain risk estimate.
type Prediction struct {
	ID                 string         `json:"id"`
	PredictedIntensity int            `json:"predicted_intensity"`
	PredictedTrigger   string         `json:"predicted_trigger"`
	Confidence         float64        `json:"confidence"`
	TimeHorizon        string         `json:"time_horizon"`
	ContextFactors     ContextFactors `json:"context_factors"`
	Recommendations    []string       `json:"recommendations"`
	CreatedAt          time.Time      `json:"created_at"`
	Error              string         `json:"error,omitempty"`
}
