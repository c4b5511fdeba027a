// Package health provides the record types and snapshot readers that feed
// the painwatch analysis engine.
package health

import "time"

// PainRecord is one logged pain event. Records are owned by the store and are
// read-only to the analysis code.
type PainRecord struct {
	ID              int64     `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Intensity       int       `json:"intensity"`
	PhysicalTrigger string    `json:"physical_trigger,omitempty"`
	MentalTrigger   string    `json:"mental_trigger,omitempty"`
	Activity        string    `json:"activity,omitempty"`
	ActionTaken     string    `json:"action_taken,omitempty"`
	Effectiveness   *int      `json:"effectiveness,omitempty"`
	Location        string    `json:"location,omitempty"`
}

// PrimaryTrigger returns the physical trigger when set, otherwise the mental one.
func (r PainRecord) PrimaryTrigger() string {
	if r.PhysicalTrigger != "" {
		return r.PhysicalTrigger
	}
	return r.MentalTrigger
}

// SleepSnapshot is one externally sourced sleep measurement.
type SleepSnapshot struct {
	SleepStart      time.Time `json:"sleep_start"`
	DurationMinutes float64   `json:"duration_minutes"`
	QualityScore    float64   `json:"quality_score"`
	Source          string    `json:"source"`
}

// StressSnapshot is one externally sourced stress measurement.
type StressSnapshot struct {
	Timestamp   time.Time `json:"timestamp"`
	StressLevel float64   `json:"stress_level"`
	Source      string    `json:"source"`
}

// Kind identifies which snapshot family a file belongs to.
type Kind string

const (
	KindSleep  Kind = "sleep"
	KindStress Kind = "stress"
)

// Pattern returns the file glob used for snapshots of this kind.
func (k Kind) Pattern() string {
	return string(k) + "_*.json"
}

// rawSleep mirrors the on-disk sleep document.
type rawSleep struct {
	SleepStart      string   `json:"sleep_start"`
	Timestamp       string   `json:"timestamp"`
	DurationMinutes *float64 `json:"duration_minutes"`
	QualityScore    float64  `json:"quality_score"`
	Source          string   `json:"source"`
}

// rawStress mirrors the on-disk stress document.
type rawStress struct {
	Timestamp   string   `json:"timestamp"`
	StressLevel *float64 `json:"stress_level"`
	Source      string   `json:"source"`
}
