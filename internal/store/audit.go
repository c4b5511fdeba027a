package store

import (
	"context"
	"database/sql"
	"time"
)

// storedTimeLayout is fixed width so stored times sort lexicographically.
const storedTimeLayout = "2006-01-02T15:04:05.000000Z"

// InsertPatterns appends a batch of detected patterns to the pattern log in
// one transaction.
func (db *DB) InsertPatterns(ctx context.Context, patterns []PatternRow) error {
	if len(patterns) == 0 {
		return nil
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range patterns {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pattern_log
			(run_id, pattern_type, description, confidence, recommendation, detected_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			p.RunID, p.PatternType, p.Description, p.Confidence,
			nullString(p.Recommendation), p.DetectedAt.UTC().Format(storedTimeLayout),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// PrunePatternLog applies the retention policy relative to now and returns
// the number of rows removed.
func (db *DB) PrunePatternLog(ctx context.Context, policy RetentionPolicy, now time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var removed int64
	if policy.MaxAge > 0 {
		cutoff := now.Add(-policy.MaxAge).UTC().Format(storedTimeLayout)
		res, err := db.conn.ExecContext(ctx, "DELETE FROM pattern_log WHERE detected_at < ?", cutoff)
		if err != nil {
			return removed, err
		}
		n, _ := res.RowsAffected()
		removed += n
	}
	if policy.MaxRows > 0 {
		res, err := db.conn.ExecContext(ctx,
			`DELETE FROM pattern_log WHERE id NOT IN
			 (SELECT id FROM pattern_log ORDER BY id DESC LIMIT ?)`,
			policy.MaxRows,
		)
		if err != nil {
			return removed, err
		}
		n, _ := res.RowsAffected()
		removed += n
	}
	return removed, nil
}

// RecentPatterns returns the n most recently logged patterns.
func (db *DB) RecentPatterns(ctx context.Context, n int) ([]PatternRow, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, run_id, pattern_type, description, confidence, recommendation, detected_at
		 FROM pattern_log ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var patterns []PatternRow
	for rows.Next() {
		var p PatternRow
		var rec sql.NullString
		var detected string
		if err := rows.Scan(&p.ID, &p.RunID, &p.PatternType, &p.Description,
			&p.Confidence, &rec, &detected); err != nil {
			return nil, err
		}
		p.Recommendation = rec.String
		p.DetectedAt, _ = time.Parse(storedTimeLayout, detected)
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

// CountPatterns returns the number of rows in the pattern log.
func (db *DB) CountPatterns(ctx context.Context) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM pattern_log").Scan(&n)
	return n, err
}

// InsertPrediction stores a prediction audit row.
func (db *DB) InsertPrediction(ctx context.Context, p PredictionRow) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO predictions
		(id, predicted_intensity, predicted_trigger, confidence, time_horizon, context, accuracy, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.PredictedIntensity, p.PredictedTrigger, p.Confidence, p.TimeHorizon,
		nullString(p.Context), p.Accuracy, p.CreatedAt.UTC().Format(storedTimeLayout),
	)
	return err
}

const predictionColumns = `id, predicted_intensity, predicted_trigger, confidence,
	time_horizon, context, accuracy, created_at`

// GetPrediction returns a prediction by ID, or nil if it does not exist.
func (db *DB) GetPrediction(ctx context.Context, id string) (*PredictionRow, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+predictionColumns+" FROM predictions WHERE id = ?", id)
	p, err := scanPrediction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// RecentPredictions returns the n most recent predictions, newest first.
func (db *DB) RecentPredictions(ctx context.Context, n int) ([]PredictionRow, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+predictionColumns+" FROM predictions ORDER BY created_at DESC LIMIT ?", n)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var preds []PredictionRow
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		preds = append(preds, *p)
	}
	return preds, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrediction(row rowScanner) (*PredictionRow, error) {
	var p PredictionRow
	var ctxJSON sql.NullString
	var accuracy sql.NullFloat64
	var created string
	if err := row.Scan(&p.ID, &p.PredictedIntensity, &p.PredictedTrigger, &p.Confidence,
		&p.TimeHorizon, &ctxJSON, &accuracy, &created); err != nil {
		return nil, err
	}
	p.Context = ctxJSON.String
	if accuracy.Valid {
		v := accuracy.Float64
		p.Accuracy = &v
	}
	p.CreatedAt, _ = time.Parse(storedTimeLayout, created)
	return &p, nil
}
