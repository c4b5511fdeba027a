package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/painwatch/internal/health"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func intPtr(v int) *int { return &v }

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Migrate())

	var version int
	require.NoError(t, db.conn.QueryRow("SELECT version FROM schema_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_CreatesParentDir(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir + "/nested/painwatch.db")
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestPainEntriesSince_FiltersAndOrders(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	for i, intensity := range []int{3, 5, 7} {
		_, err := db.InsertPainEntry(ctx, health.PainRecord{
			Timestamp: base.AddDate(0, 0, -i*10),
			Intensity: intensity,
		})
		require.NoError(t, err)
	}

	got, err := db.PainEntriesSince(ctx, base.AddDate(0, 0, -15))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Intensity, "newest first")
	assert.Equal(t, 5, got[1].Intensity)
}

func TestInsertPainEntry_RoundTripAndClamp(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	ts := time.Date(2026, 5, 10, 14, 30, 0, 0, time.UTC)

	id, err := db.InsertPainEntry(ctx, health.PainRecord{
		Timestamp:       ts,
		Intensity:       14,
		PhysicalTrigger: "posture",
		MentalTrigger:   "stress",
		Activity:        "desk work",
		ActionTaken:     "stretching",
		Effectiveness:   intPtr(-2),
		Location:        "lower back",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := db.PainEntriesSince(ctx, ts.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)

	r := got[0]
	assert.Equal(t, 10, r.Intensity)
	require.NotNil(t, r.Effectiveness)
	assert.Equal(t, 0, *r.Effectiveness)
	assert.Equal(t, "posture", r.PhysicalTrigger)
	assert.Equal(t, "stress", r.MentalTrigger)
	assert.Equal(t, "desk work", r.Activity)
	assert.Equal(t, "stretching", r.ActionTaken)
	assert.Equal(t, "lower back", r.Location)
	assert.True(t, r.Timestamp.Equal(ts))
}

func TestPainEntriesSince_NullOptionalFields(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	ts := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	_, err := db.InsertPainEntry(ctx, health.PainRecord{Timestamp: ts, Intensity: 4})
	require.NoError(t, err)

	got, err := db.PainEntriesSince(ctx, ts.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Effectiveness)
	assert.Empty(t, got[0].PhysicalTrigger)
}

func TestPainEntriesSince_SkipsMalformedTimestamps(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.conn.Exec(
		"INSERT INTO pain_entries (timestamp, intensity) VALUES (?, ?), (?, ?)",
		"2026-05-10T08:00:00", 4,
		"2026-05-10T09:00:00+02:00", 6,
	)
	require.NoError(t, err)

	got, err := db.PainEntriesSince(ctx, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Intensity)
}

func TestDeletePainEntry(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	ts := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	id, err := db.InsertPainEntry(ctx, health.PainRecord{Timestamp: ts, Intensity: 4})
	require.NoError(t, err)
	require.NoError(t, db.DeletePainEntry(ctx, id))

	got, err := db.PainEntriesSince(ctx, ts.Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPrediction_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	created := time.Date(2026, 5, 10, 8, 0, 0, 123000000, time.UTC)

	in := PredictionRow{
		ID:                 "pred-1",
		PredictedIntensity: 7,
		PredictedTrigger:   "stress",
		Confidence:         0.3,
		TimeHorizon:        "2-4 hours",
		Context:            `{"stress_level":0.8}`,
		CreatedAt:          created,
	}
	require.NoError(t, db.InsertPrediction(ctx, in))

	got, err := db.GetPrediction(ctx, "pred-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, in.PredictedIntensity, got.PredictedIntensity)
	assert.Equal(t, in.PredictedTrigger, got.PredictedTrigger)
	assert.Equal(t, in.Confidence, got.Confidence)
	assert.Equal(t, in.TimeHorizon, got.TimeHorizon)
	assert.Equal(t, in.Context, got.Context)
	assert.Nil(t, got.Accuracy)
	assert.True(t, got.CreatedAt.Equal(created))
}

func TestGetPrediction_Missing(t *testing.T) {
	db := openTestDB(t)
	got, err := db.GetPrediction(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRecentPredictions_NewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, db.InsertPrediction(ctx, PredictionRow{
			ID: id, PredictedIntensity: i, PredictedTrigger: "marche",
			Confidence: 0.5, TimeHorizon: "2-4 hours", CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	got, err := db.RecentPredictions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestPatternLog_AppendAndPruneByRows(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	for run := 0; run < 4; run++ {
		require.NoError(t, db.InsertPatterns(ctx, []PatternRow{
			{RunID: "r", PatternType: "common_trigger", Description: "d", Confidence: 0.9, DetectedAt: now},
			{RunID: "r", PatternType: "effective_action", Description: "d", Confidence: 0.85, DetectedAt: now},
		}))
	}
	n, err := db.CountPatterns(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	removed, err := db.PrunePatternLog(ctx, RetentionPolicy{MaxRows: 3}, now)
	require.NoError(t, err)
	assert.EqualValues(t, 5, removed)

	recent, err := db.RecentPatterns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}

func TestPatternLog_PruneByAge(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	require.NoError(t, db.InsertPatterns(ctx, []PatternRow{
		{RunID: "old", PatternType: "intensity_increase", Description: "d", Confidence: 0.8, DetectedAt: now.AddDate(0, 0, -100)},
		{RunID: "new", PatternType: "intensity_increase", Description: "d", Confidence: 0.8, DetectedAt: now.AddDate(0, 0, -1)},
	}))

	removed, err := db.PrunePatternLog(ctx, RetentionPolicy{MaxAge: 90 * 24 * time.Hour}, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	recent, err := db.RecentPatterns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "new", recent[0].RunID)
}

func TestPatternLog_NoPolicyKeepsEverything(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, db.InsertPatterns(ctx, []PatternRow{
		{RunID: "r", PatternType: "common_trigger", Description: "d", Confidence: 0.9, DetectedAt: now},
	}))
	removed, err := db.PrunePatternLog(ctx, RetentionPolicy{}, now)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestConcurrentWrites(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	ts := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := db.InsertPainEntry(ctx, health.PainRecord{Timestamp: ts, Intensity: i % 11})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := db.PainEntriesSince(ctx, ts.Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, got, 20)
}
