package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/blackwell-systems/painwatch/internal/health"
)

// InsertPainEntry stores a pain record and returns its ID. Intensity and
// effectiveness are clamped to 0-10.
func (db *DB) InsertPainEntry(ctx context.Context, rec health.PainRecord) (int64, error) {
	var eff sql.NullInt64
	if rec.Effectiveness != nil {
		eff = sql.NullInt64{Int64: int64(health.ClampScore(*rec.Effectiveness)), Valid: true}
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO pain_entries
		(timestamp, intensity, physical_trigger, mental_trigger, activity, action_taken, effectiveness, location)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		health.FormatTimestamp(rec.Timestamp), health.ClampScore(rec.Intensity),
		nullString(rec.PhysicalTrigger), nullString(rec.MentalTrigger),
		nullString(rec.Activity), nullString(rec.ActionTaken), eff, nullString(rec.Location),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// PainEntriesSince returns all pain records with a timestamp at or after
// since, newest first. Rows whose timestamp does not parse are skipped.
func (db *DB) PainEntriesSince(ctx context.Context, since time.Time) ([]health.PainRecord, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, timestamp, intensity, physical_trigger, mental_trigger,
		 activity, action_taken, effectiveness, location
		 FROM pain_entries WHERE timestamp >= ? ORDER BY timestamp DESC, id DESC`,
		health.FormatTimestamp(since),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []health.PainRecord
	for rows.Next() {
		var (
			r                                  health.PainRecord
			stamp                              string
			physical, mental, activity, action sql.NullString
			location                           sql.NullString
			effectiveness                      sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &stamp, &r.Intensity, &physical, &mental,
			&activity, &action, &effectiveness, &location); err != nil {
			return nil, err
		}

		ts, err := health.ParseTimestamp(stamp)
		if err != nil {
			db.log.Warn("skipping pain entry with bad timestamp", "id", r.ID, "value", stamp)
			continue
		}
		r.Timestamp = ts
		r.Intensity = health.ClampScore(r.Intensity)
		r.PhysicalTrigger = physical.String
		r.MentalTrigger = mental.String
		r.Activity = activity.String
		r.ActionTaken = action.String
		r.Location = location.String
		if effectiveness.Valid {
			v := health.ClampScore(int(effectiveness.Int64))
			r.Effectiveness = &v
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeletePainEntry removes a pain record by ID.
func (db *DB) DeletePainEntry(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.ExecContext(ctx, "DELETE FROM pain_entries WHERE id = ?", id)
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
