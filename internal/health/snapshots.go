package health

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/blackwell-systems/painwatch/internal/logging"
)

// SnapshotReader loads sleep and stress snapshots from per-source
// directories under Home. Each file holds a single JSON object.
type SnapshotReader struct {
	Home    string
	Sources []string
	Log     *logging.Logger
}

// NewSnapshotReader returns a reader for the given data home and sources.
func NewSnapshotReader(home string, sources []string, log *logging.Logger) *SnapshotReader {
	if log == nil {
		log = logging.Nop()
	}
	return &SnapshotReader{Home: home, Sources: sources, Log: log.With("component", "snapshots")}
}

// SleepSince returns sleep snapshots whose sleep start is at or after since,
// sorted oldest first.
func (r *SnapshotReader) SleepSince(ctx context.Context, since time.Time) ([]SleepSnapshot, error) {
	files, err := scanSnapshotFiles[rawSleep](ctx, r, KindSleep, since)
	if err != nil {
		return nil, err
	}

	var out []SleepSnapshot
	for _, f := range files {
		raw := f.doc
		stamp := raw.SleepStart
		if stamp == "" {
			stamp = raw.Timestamp
		}
		start, err := ParseTimestamp(stamp)
		if err != nil {
			r.Log.Warn("skipping sleep snapshot with bad timestamp", "path", f.path, "value", stamp)
			continue
		}
		if raw.DurationMinutes == nil {
			r.Log.Warn("skipping sleep snapshot without duration", "path", f.path)
			continue
		}
		if start.Before(since) {
			continue
		}
		out = append(out, SleepSnapshot{
			SleepStart:      start,
			DurationMinutes: *raw.DurationMinutes,
			QualityScore:    raw.QualityScore,
			Source:          sourceTag(raw.Source, f.source),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SleepStart.Before(out[j].SleepStart)
	})
	return out, nil
}

// StressSince returns stress snapshots taken at or after since, sorted
// oldest first.
func (r *SnapshotReader) StressSince(ctx context.Context, since time.Time) ([]StressSnapshot, error) {
	files, err := scanSnapshotFiles[rawStress](ctx, r, KindStress, since)
	if err != nil {
		return nil, err
	}

	var out []StressSnapshot
	for _, f := range files {
		raw := f.doc
		ts, err := ParseTimestamp(raw.Timestamp)
		if err != nil {
			r.Log.Warn("skipping stress snapshot with bad timestamp", "path", f.path, "value", raw.Timestamp)
			continue
		}
		if raw.StressLevel == nil {
			r.Log.Warn("skipping stress snapshot without level", "path", f.path)
			continue
		}
		if ts.Before(since) {
			continue
		}
		out = append(out, StressSnapshot{
			Timestamp:   ts,
			StressLevel: *raw.StressLevel,
			Source:      sourceTag(raw.Source, f.source),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// scannedFile is one decoded snapshot document and where it came from.
type scannedFile[T any] struct {
	path   string
	source string
	doc    T
}

// scanSnapshotFiles reads every file matching the kind's pattern in each
// source directory, skipping files last modified before since and files
// that fail to read or decode. A missing source directory is not an error.
func scanSnapshotFiles[T any](ctx context.Context, r *SnapshotReader, kind Kind, since time.Time) ([]scannedFile[T], error) {
	var results []scannedFile[T]
	for _, source := range r.Sources {
		dir := filepath.Join(r.Home, source)
		matches, err := filepath.Glob(filepath.Join(dir, kind.Pattern()))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)

		for _, path := range matches {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				continue
			}
			if Naive(info.ModTime()).Before(since) {
				continue
			}

			data, err := os.ReadFile(path)
			if err != nil {
				r.Log.Warn("skipping unreadable snapshot", "path", path, "error", err)
				continue
			}
			var doc T
			if err := json.Unmarshal(data, &doc); err != nil {
				r.Log.Warn("skipping malformed snapshot", "path", path, "error", err)
				continue
			}
			results = append(results, scannedFile[T]{path: path, source: source, doc: doc})
		}
	}
	return results, nil
}

func sourceTag(declared, dir string) string {
	if declared != "" {
		return declared
	}
	return dir
}
