package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level painwatch configuration.
type Config struct {
	DataHome   string     `mapstructure:"data_home"`
	Sources    []string   `mapstructure:"sources"`
	DBPath     string     `mapstructure:"db_path"`
	Log        Log        `mapstructure:"log"`
	Analysis   Analysis   `mapstructure:"analysis"`
	Prediction Prediction `mapstructure:"prediction"`
	Patterns   Patterns   `mapstructure:"patterns"`
	Cache      Cache      `mapstructure:"cache"`
}

// Log defines logger settings.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Analysis defines correlation and trigger defaults.
type Analysis struct {
	DefaultDays    int    `mapstructure:"default_days"`
	MinOccurrences int    `mapstructure:"min_occurrences"`
	StressMean     string `mapstructure:"stress_mean"`
}

// Prediction defines the prediction pattern window.
type Prediction struct {
	PatternDays int `mapstructure:"pattern_days"`
}

// Patterns defines pattern log retention. Zero disables a bound.
type Patterns struct {
	RetentionDays int `mapstructure:"retention_days"`
	MaxRows       int `mapstructure:"max_rows"`
}

// Cache defines the result cache backend.
type Cache struct {
	Backend       string        `mapstructure:"backend"`
	TTL           time.Duration `mapstructure:"ttl"`
	Size          int           `mapstructure:"size"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisDB       int           `mapstructure:"redis_db"`
	RedisPassword string        `mapstructure:"redis_password"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. Environment variables
// prefixed with PAINWATCH_ override file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_home", DefaultDataHome)
	v.SetDefault("sources", DefaultSources)
	v.SetDefault("db_path", "")
	v.SetDefault("log.level", DefaultLog.Level)
	v.SetDefault("log.format", DefaultLog.Format)
	v.SetDefault("analysis.default_days", DefaultAnalysis.DefaultDays)
	v.SetDefault("analysis.min_occurrences", DefaultAnalysis.MinOccurrences)
	v.SetDefault("analysis.stress_mean", DefaultAnalysis.StressMean)
	v.SetDefault("prediction.pattern_days", DefaultPrediction.PatternDays)
	v.SetDefault("patterns.retention_days", DefaultPatterns.RetentionDays)
	v.SetDefault("patterns.max_rows", DefaultPatterns.MaxRows)
	v.SetDefault("cache.backend", DefaultCache.Backend)
	v.SetDefault("cache.ttl", DefaultCache.TTL)
	v.SetDefault("cache.size", DefaultCache.Size)
	v.SetDefault("cache.redis_addr", DefaultCache.RedisAddr)
	v.SetDefault("cache.redis_db", DefaultCache.RedisDB)
	v.SetDefault("cache.redis_password", DefaultCache.RedisPassword)
	v.SetDefault("cache.key_prefix", DefaultCache.KeyPrefix)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(ConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.DataHome = expandPath(cfg.DataHome)
	if cfg.DBPath == "" {
		cfg.DBPath = DBPath()
	}
	cfg.DBPath = expandPath(cfg.DBPath)

	return &cfg, nil
}

// RetentionAge converts the configured retention days to a duration.
func (p Patterns) RetentionAge() time.Duration {
	return time.Duration(p.RetentionDays) * 24 * time.Hour
}

// DBPath returns the default path to the SQLite database.
func DBPath() string {
	return filepath.Join(ConfigDir(), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
