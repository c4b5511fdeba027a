// Package store provides SQLite access for pain entries, the pattern log,
// and the prediction audit trail.
package store

import "time"

// PatternRow is one detected pattern appended to the pattern log.
type PatternRow struct {
	ID             int64     `json:"id"`
	RunID          string    `json:"run_id"`
	PatternType    string    `json:"pattern_type"`
	Description    string    `json:"description"`
	Confidence     float64   `json:"confidence"`
	Recommendation string    `json:"recommendation,omitempty"`
	DetectedAt     time.Time `json:"detected_at"`
}

// PredictionRow is the audit record for one issued prediction.
// Accuracy is left nil: nothing in painwatch reconciles predictions
// against later observations.
type PredictionRow struct {
	ID                 string    `json:"id"`
	PredictedIntensity int       `json:"predicted_intensity"`
	PredictedTrigger   string    `json:"predicted_trigger"`
	Confidence         float64   `json:"confidence"`
	TimeHorizon        string    `json:"time_horizon"`
	Context            string    `json:"context,omitempty"`
	Accuracy           *float64  `json:"accuracy,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// RetentionPolicy bounds the pattern log. Zero values disable a bound.
type RetentionPolicy struct {
	MaxAge  time.Duration
	MaxRows int
}
