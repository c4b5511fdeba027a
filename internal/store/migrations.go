package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS pain_entries (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        TEXT NOT NULL,
			intensity        INTEGER NOT NULL,
			physical_trigger TEXT,
			mental_trigger   TEXT,
			activity         TEXT,
			action_taken     TEXT,
			effectiveness    INTEGER,
			location         TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS pattern_log (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id         TEXT NOT NULL,
			pattern_type   TEXT NOT NULL,
			description    TEXT NOT NULL,
			confidence     REAL NOT NULL,
			recommendation TEXT,
			detected_at    TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS predictions (
			id                  TEXT PRIMARY KEY,
			predicted_intensity INTEGER NOT NULL,
			predicted_trigger   TEXT NOT NULL,
			confidence          REAL NOT NULL,
			time_horizon        TEXT NOT NULL,
			context             TEXT,
			accuracy            REAL,
			created_at          TEXT NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_pain_entries_timestamp ON pain_entries(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_pattern_log_detected ON pattern_log(detected_at)`,
		`CREATE INDEX IF NOT EXISTS idx_pattern_log_run ON pattern_log(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_created ON predictions(created_at)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
