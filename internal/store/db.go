package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"github.com/blackwell-systems/painwatch/internal/logging"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection to the painwatch SQLite database.
// Writes are serialised through a single mutex; reads are not.
type DB struct {
	conn *sql.DB
	mu   sync.Mutex
	log  *logging.Logger
}

// Open opens or creates the SQLite database at the given path.
// It creates the parent directory if it does not exist.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn, log: logging.Nop()}

	// Run migrations on open.
	if err := db.Migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

// OpenInMemory opens an in-memory SQLite database, useful for testing.
func OpenInMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every pooled connection would get its own empty :memory: database.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, log: logging.Nop()}
	if err := db.Migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

// SetLogger replaces the logger used to report skipped rows.
func (db *DB) SetLogger(l *logging.Logger) {
	if l == nil {
		l = logging.Nop()
	}
	db.log = l.With("component", "store")
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
