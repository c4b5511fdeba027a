package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/blackwell-systems/painwatch/internal/analyzer"
	"github.com/blackwell-systems/painwatch/internal/cache"
	"github.com/blackwell-systems/painwatch/internal/config"
	"github.com/blackwell-systems/painwatch/internal/engine"
	"github.com/blackwell-systems/painwatch/internal/health"
	"github.com/blackwell-systems/painwatch/internal/logging"
	"github.com/blackwell-systems/painwatch/internal/output"
	"github.com/blackwell-systems/painwatch/internal/store"
)

// appEnv holds everything a command needs, built once per invocation.
type appEnv struct {
	cfg    *config.Config
	log    *logging.Logger
	db     *store.DB
	cache  cache.Provider
	engine *engine.Engine
}

// openEnv loads configuration and wires the store, snapshot reader, cache
// and engine together.
func openEnv(ctx context.Context) (*appEnv, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Log.Level
	if flagVerbose {
		level = "debug"
	}
	log, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	output.AutoColor(os.Stdout, flagNoColor)

	mode, err := analyzer.ParseStressAggregation(cfg.Analysis.StressMean)
	if err != nil {
		return nil, fmt.Errorf("analysis.stress_mean: %w", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetLogger(log)

	provider, err := cache.Open(ctx, cache.Config{
		Backend:       cfg.Cache.Backend,
		TTL:           cfg.Cache.TTL,
		Size:          cfg.Cache.Size,
		RedisAddr:     cfg.Cache.RedisAddr,
		RedisDB:       cfg.Cache.RedisDB,
		RedisPassword: cfg.Cache.RedisPassword,
		KeyPrefix:     cfg.Cache.KeyPrefix,
	})
	if err != nil {
		log.Warn("result cache unavailable, continuing without it", "backend", cfg.Cache.Backend, "error", err)
		provider = cache.Noop{}
	}

	eng := engine.New(engine.Deps{
		Pain:      db,
		Snapshots: health.NewSnapshotReader(cfg.DataHome, cfg.Sources, log),
		Audit:     db,
		Cache:     provider,
		Log:       log,
	}, engine.Options{
		DefaultDays:    cfg.Analysis.DefaultDays,
		MinOccurrences: cfg.Analysis.MinOccurrences,
		PatternDays:    cfg.Prediction.PatternDays,
		StressMean:     mode,
		CacheTTL:       cfg.Cache.TTL,
		Retention: store.RetentionPolicy{
			MaxAge:  cfg.Patterns.RetentionAge(),
			MaxRows: cfg.Patterns.MaxRows,
		},
	})

	log.Debug("painwatch ready", "db", cfg.DBPath, "data_home", cfg.DataHome, "cache", cfg.Cache.Backend)

	return &appEnv{cfg: cfg, log: log, db: db, cache: provider, engine: eng}, nil
}

// Close releases the cache and database and flushes the logger.
func (e *appEnv) Close() {
	if err := e.cache.Close(); err != nil {
		e.log.Warn("closing cache", "error", err)
	}
	if err := e.db.Close(); err != nil {
		e.log.Warn("closing database", "error", err)
	}
	e.log.Sync()
}

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emit writes v as JSON or through render, then surfaces an analysis
// error as the command's error.
func emit(w io.Writer, v any, resultErr string, render func(io.Writer)) error {
	if flagJSON {
		if err := writeJSON(w, v); err != nil {
			return err
		}
	} else if resultErr == "" {
		render(w)
	}
	if resultErr != "" {
		return fmt.Errorf("analysis failed: %s", resultErr)
	}
	return nil
}
