// Package config provides configuration loading and defaults for painwatch.
package config

import "time"

// DefaultConfigDir is the default location for painwatch configuration.
const DefaultConfigDir = "~/.config/painwatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "painwatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultDataHome is where synced health snapshots are written, one
// directory per source.
const DefaultDataHome = "~/.local/share/painwatch/health"

// DefaultSources are the snapshot directories scanned under the data home.
var DefaultSources = []string{"health_connect", "samsung_health"}

// EnvPrefix prefixes environment overrides, e.g. PAINWATCH_CACHE_BACKEND.
const EnvPrefix = "PAINWATCH"

// DefaultLog holds the default logging settings.
var DefaultLog = Log{
	Level:  "info",
	Format: "console",
}

// DefaultAnalysis holds the default analysis window and thresholds.
var DefaultAnalysis = Analysis{
	DefaultDays:    30,
	MinOccurrences: 3,
	StressMean:     "exact",
}

// DefaultPrediction holds the default prediction settings.
var DefaultPrediction = Prediction{
	PatternDays: 14,
}

// DefaultPatterns holds the default pattern log retention.
var DefaultPatterns = Patterns{
	RetentionDays: 90,
	MaxRows:       1000,
}

// DefaultCache holds the default result cache settings.
var DefaultCache = Cache{
	Backend:   "memory",
	TTL:       time.Hour,
	Size:      128,
	RedisAddr: "localhost:6379",
	KeyPrefix: "painwatch:",
}
