package db

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schema string

// Storage keys for the logical records held in the store table.
const (
	KeyMedications = "medications"
	KeyDoseHistory = "dose_history"
	KeyDayTally    = "doses_taken_cache"

	keyLastKnownDate = "last_known_date"
	keySchemaVersion = "schema_version"
)

// SchemaVersion tags the stored blob format so readers never have to
// shape-sniff future layouts.
const SchemaVersion = "1"

// DB is a string-keyed blob store over a local SQLite database.
// Values under the Key* constants are JSON documents.
type DB struct {
	*sql.DB
	log *zap.Logger
}

// New opens the store in dataDir (XDG data directory when empty) and
// initializes the schema
func New(dataDir string, log *zap.Logger) (*DB, error) {
	dbPath, err := resolvePath(dataDir)
	if err != nil {
		return nil, err
	}
	return Open(dbPath+"?_foreign_keys=on", log)
}

// Open opens the store at the given sqlite DSN. Used directly by tests
// with ":memory:".
func Open(dsn string, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}

	sdb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := sdb.Exec(schema); err != nil {
		sdb.Close()
		return nil, err
	}

	db := &DB{sdb, log}
	if err := db.Set(keySchemaVersion, SchemaVersion); err != nil {
		sdb.Close()
		return nil, err
	}
	return db, nil
}

// resolvePath returns the path to the database file
func resolvePath(dataDir string) (string, error) {
	if dataDir == "" {
		// Use XDG data directory or fallback to home directory
		dataDir = os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			dataDir = filepath.Join(home, ".local", "share")
		}
		dataDir = filepath.Join(dataDir, "medtrack")
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(dataDir, "medtrack.db"), nil
}

// Get retrieves a stored value by key; absent keys yield ""
func (db *DB) Get(key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM store WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// Set stores a value under key, replacing any previous value
func (db *DB) Set(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// Remove deletes the given keys; missing keys are not an error
func (db *DB) Remove(keys ...string) error {
	for _, key := range keys {
		if _, err := db.Exec("DELETE FROM store WHERE key = ?", key); err != nil {
			return err
		}
	}
	return nil
}

// ClearAll removes every logical record (registry, ledger, tally)
func (db *DB) ClearAll() error {
	return db.Remove(KeyMedications, KeyDoseHistory, KeyDayTally)
}

// LastKnownDate returns the persisted "YYYY-MM-DD" day stamp used by
// day-boundary reconciliation, or "" when never set
func (db *DB) LastKnownDate() (string, error) {
	return db.Get(keyLastKnownDate)
}

// SetLastKnownDate persists the current day stamp
func (db *DB) SetLastKnownDate(day string) error {
	return db.Set(keyLastKnownDate, day)
}
