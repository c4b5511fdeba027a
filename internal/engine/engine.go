// Package engine runs painwatch analyses against injected record sources,
// memoising correlation and trigger results and recording derived patterns
// and predictions in an audit sink.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/blackwell-systems/painwatch/internal/analyzer"
	"github.com/blackwell-systems/painwatch/internal/cache"
	"github.com/blackwell-systems/painwatch/internal/health"
	"github.com/blackwell-systems/painwatch/internal/logging"
	"github.com/blackwell-systems/painwatch/internal/store"
)

// PainSource queries pain records at or after a minimum timestamp.
type PainSource interface {
	PainEntriesSince(ctx context.Context, since time.Time) ([]health.PainRecord, error)
}

// SnapshotSource reads external sleep and stress snapshots.
type SnapshotSource interface {
	SleepSince(ctx context.Context, since time.Time) ([]health.SleepSnapshot, error)
	StressSince(ctx context.Context, since time.Time) ([]health.StressSnapshot, error)
}

// AuditSink persists derived artifacts.
type AuditSink interface {
	InsertPatterns(ctx context.Context, patterns []store.PatternRow) error
	PrunePatternLog(ctx context.Context, policy store.RetentionPolicy, now time.Time) (int64, error)
	InsertPrediction(ctx context.Context, p store.PredictionRow) error
}

// Deps are the collaborators an Engine reads from and writes to. Only Pain
// is required; a nil Snapshots yields no sleep or stress data, a nil Audit
// skips persistence and a nil Cache disables memoisation.
type Deps struct {
	Pain      PainSource
	Snapshots SnapshotSource
	Audit     AuditSink
	Cache     cache.Provider
	Log       *logging.Logger

	// Now and NewID are overridable for tests.
	Now   func() time.Time
	NewID func() string
}

// Options tune analysis defaults.
type Options struct {
	DefaultDays    int
	MinOccurrences int
	PatternDays    int
	StressMean     analyzer.StressAggregation
	CacheTTL       time.Duration
	Retention      store.RetentionPolicy
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		DefaultDays:    30,
		MinOccurrences: 3,
		PatternDays:    14,
		StressMean:     analyzer.StressExactMean,
		CacheTTL:       time.Hour,
		Retention: store.RetentionPolicy{
			MaxAge:  90 * 24 * time.Hour,
			MaxRows: 1000,
		},
	}
}

// Operation names, used as cache key prefixes and in logs.
const (
	opSleep         = "sleep_correlation"
	opStress        = "stress_correlation"
	opTriggers      = "recurrent_triggers"
	opComprehensive = "comprehensive_analysis"
	opPatterns      = "pain_patterns"
	opPredict       = "predict_episode"
)

// Engine is safe for concurrent use. Per-call state stays local; shared
// state is limited to the cache and the singleflight group.
type Engine struct {
	pain      PainSource
	snapshots SnapshotSource
	audit     AuditSink
	cache     cache.Provider
	log       *logging.Logger
	now       func() time.Time
	newID     func() string
	opts      Options
	group     singleflight.Group
}

// New builds an Engine. Zero option fields take their defaults.
func New(deps Deps, opts Options) *Engine {
	def := DefaultOptions()
	if opts.DefaultDays <= 0 {
		opts.DefaultDays = def.DefaultDays
	}
	if opts.MinOccurrences <= 0 {
		opts.MinOccurrences = def.MinOccurrences
	}
	if opts.PatternDays <= 0 {
		opts.PatternDays = def.PatternDays
	}
	if opts.StressMean == "" {
		opts.StressMean = def.StressMean
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = def.CacheTTL
	}

	e := &Engine{
		pain:      deps.Pain,
		snapshots: deps.Snapshots,
		audit:     deps.Audit,
		cache:     deps.Cache,
		log:       deps.Log,
		now:       deps.Now,
		newID:     deps.NewID,
		opts:      opts,
	}
	if e.cache == nil {
		e.cache = cache.Noop{}
	}
	if e.log == nil {
		e.log = logging.Nop()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	return e
}

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }

func (e *Engine) days(d int) int {
	if d <= 0 {
		return e.opts.DefaultDays
	}
	return d
}

// guard runs fn, converting a returned error or a panic into an error that
// is logged once at the operation boundary.
func (e *Engine) guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: unexpected failure: %v", op, r)
		}
		if err != nil {
			e.log.Error("analysis failed", "op", op, "error", err)
		}
	}()
	return fn()
}

// cached returns the memoised result for key, computing and storing it on a
// miss. Every caller receives a value decoded from the cached encoding, so
// hits and misses are indistinguishable. Concurrent misses on one key share
// a single computation, which runs detached from the first caller's
// cancellation so one abandoned call cannot fail the others.
func cached[T any](ctx context.Context, e *Engine, key string, compute func(context.Context) (T, error)) (T, error) {
	var out T

	if b, err := e.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal(b, &out); err == nil {
			e.log.Debug("cache hit", "key", key)
			return out, nil
		}
		e.log.Warn("discarding undecodable cache entry", "key", key)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		e.log.Warn("cache read failed", "key", key, "error", err)
	}

	v, err, _ := e.group.Do(key, func() (any, error) {
		shared := context.WithoutCancel(ctx)
		result, err := compute(shared)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("encoding %s result: %w", key, err)
		}
		if err := e.cache.Set(shared, key, b, e.opts.CacheTTL); err != nil {
			e.log.Warn("cache write failed", "key", key, "error", err)
		}
		return b, nil
	})
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(v.([]byte), &out); err != nil {
		return out, fmt.Errorf("decoding %s result: %w", key, err)
	}
	return out, nil
}

func (e *Engine) loadPain(ctx context.Context, days int) ([]health.PainRecord, error) {
	if e.pain == nil {
		return nil, errors.New("no pain record source configured")
	}
	recs, err := e.pain.PainEntriesSince(ctx, health.Cutoff(e.now(), days))
	if err != nil {
		return nil, fmt.Errorf("loading pain entries: %w", err)
	}
	return recs, nil
}

func (e *Engine) loadSleep(ctx context.Context, days int) ([]health.SleepSnapshot, error) {
	if e.snapshots == nil {
		return nil, nil
	}
	snaps, err := e.snapshots.SleepSince(ctx, health.Cutoff(e.now(), days))
	if err != nil {
		return nil, fmt.Errorf("loading sleep snapshots: %w", err)
	}
	return snaps, nil
}

func (e *Engine) loadStress(ctx context.Context, days int) ([]health.StressSnapshot, error) {
	if e.snapshots == nil {
		return nil, nil
	}
	snaps, err := e.snapshots.StressSince(ctx, health.Cutoff(e.now(), days))
	if err != nil {
		return nil, fmt.Errorf("loading stress snapshots: %w", err)
	}
	return snaps, nil
}
