// Package ledger remembers which keys were last handed to the filtering
// engine for each logical object.
//
// Persistent providers and sublayers outlive the process that installed
// them. If a later build ships a different key for the same logical object,
// the old object is orphaned in the engine and a duplicate is installed next
// to it. The ledger makes that visible: CheckDrift compares the compiled
// identity registry against what was recorded, and Record refuses to
// overwrite a recorded key unless the change is accepted explicitly.
//
// Storage is SQLite via the pure Go modernc.org/sqlite driver.
package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/RostamVPN/mullvadvpn-app/internal/clock"
	"github.com/RostamVPN/mullvadvpn-app/internal/wfp/guids"
)

// Common errors
var (
	ErrNotFound = errors.New("identity not recorded")
	ErrClosed   = errors.New("ledger is closed")
	ErrDrift    = errors.New("identity drift")
)

// Record is the key last recorded for a logical name.
type Record struct {
	Name       guids.LogicalName
	Key        guids.Key
	RecordedAt time.Time
	Version    string // build version that recorded it
}

// Change is one entry in the history of a logical name.
type Change struct {
	Name      guids.LogicalName
	OldKey    guids.Key // zero for the first recording
	NewKey    guids.Key
	ChangedAt time.Time
}

// Drift describes a logical name whose compiled key differs from the
// recorded one.
type Drift struct {
	Name     guids.LogicalName
	Recorded guids.Key
	Compiled guids.Key
}

// DriftError lists every drifted identity.
type DriftError struct {
	Drifts []Drift
}

func (e *DriftError) Error() string {
	parts := make([]string, 0, len(e.Drifts))
	for _, d := range e.Drifts {
		parts = append(parts, fmt.Sprintf("%s: recorded %s, compiled %s", d.Name, d.Recorded, d.Compiled))
	}
	return "identity drift: " + strings.Join(parts, "; ")
}

func (e *DriftError) Unwrap() error {
	return ErrDrift
}

// Options configures the ledger.
type Options struct {
	Path    string      // Database file path (":memory:" for in-memory)
	WALMode bool        // Enable WAL journaling
	Version string      // Stored alongside each record
	Clock   clock.Clock // Optional: defaults to clock.Real
}

// DefaultOptions returns sensible defaults.
func DefaultOptions(path string) Options {
	return Options{
		Path:    path,
		WALMode: true,
	}
}

// Store is a SQLite-backed identity ledger.
type Store struct {
	db      *sql.DB
	mu      sync.RWMutex
	closed  bool
	clock   clock.Clock
	version string
}

// Open opens (creating if needed) the ledger at opts.Path.
func Open(opts Options) (*Store, error) {
	dsn := opts.Path
	if opts.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}
	if opts.WALMode && opts.Path != ":memory:" {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	// A second connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to ledger: %w", err)
	}

	s := &Store{
		db:      db,
		clock:   clock.OrReal(opts.Clock),
		version: opts.Version,
	}
	if s.version == "" {
		s.version = "dev"
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS identities (
			name TEXT PRIMARY KEY,
			key TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			version TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS identity_changes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			old_key TEXT,
			new_key TEXT NOT NULL,
			changed_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_identity_changes_name ON identity_changes(name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Get returns the record for name.
func (s *Store) Get(name guids.LogicalName) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Record{}, ErrClosed
	}
	return s.get(s.db, name)
}

type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

func (s *Store) get(q queryer, name guids.LogicalName) (Record, error) {
	var key, recordedAt string
	rec := Record{Name: name}

	err := q.QueryRow(
		"SELECT key, recorded_at, version FROM identities WHERE name = ?", string(name),
	).Scan(&key, &recordedAt, &rec.Version)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}

	if rec.Key, err = guids.ParseKey(key); err != nil {
		return Record{}, fmt.Errorf("corrupt ledger entry %s: %w", name, err)
	}
	if rec.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
		return Record{}, fmt.Errorf("corrupt ledger timestamp for %s: %w", name, err)
	}
	return rec, nil
}

// List returns every record, ordered by name.
func (s *Store) List() ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.Query("SELECT name FROM identities ORDER BY name")
	if err != nil {
		return nil, err
	}
	var names []guids.LogicalName
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, err
		}
		names = append(names, guids.LogicalName(name))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(names))
	for _, name := range names {
		rec, err := s.get(s.db, name)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// History returns the key changes recorded for name, oldest first.
func (s *Store) History(name guids.LogicalName) ([]Change, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.Query(
		"SELECT old_key, new_key, changed_at FROM identity_changes WHERE name = ? ORDER BY id",
		string(name),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []Change
	for rows.Next() {
		var oldKey sql.NullString
		var newKey, changedAt string
		if err := rows.Scan(&oldKey, &newKey, &changedAt); err != nil {
			return nil, err
		}

		c := Change{Name: name}
		if oldKey.Valid {
			if c.OldKey, err = guids.ParseKey(oldKey.String); err != nil {
				return nil, err
			}
		}
		if c.NewKey, err = guids.ParseKey(newKey); err != nil {
			return nil, err
		}
		if c.ChangedAt, err = time.Parse(time.RFC3339Nano, changedAt); err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

// CheckDrift compares entries against the ledger. Names that were never
// recorded are not drift. It returns a *DriftError when any key differs.
func (s *Store) CheckDrift(entries []guids.Entry) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}

	drifts, err := s.drifts(s.db, entries)
	if err != nil {
		return err
	}
	if len(drifts) > 0 {
		return &DriftError{Drifts: drifts}
	}
	return nil
}

func (s *Store) drifts(q queryer, entries []guids.Entry) ([]Drift, error) {
	var drifts []Drift
	for _, e := range entries {
		rec, err := s.get(q, e.Name)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if rec.Key != e.Key {
			drifts = append(drifts, Drift{Name: e.Name, Recorded: rec.Key, Compiled: e.Key})
		}
	}
	sort.Slice(drifts, func(i, j int) bool { return drifts[i].Name < drifts[j].Name })
	return drifts, nil
}

// Record stores entries. If any entry would replace a different recorded
// key, nothing is written and a *DriftError is returned.
func (s *Store) Record(entries []guids.Entry) error {
	return s.write(entries, false)
}

// Accept stores entries, replacing recorded keys that differ. Every
// replacement is kept in the history. Use it only for a deliberate identity
// migration.
func (s *Store) Accept(entries []guids.Entry) error {
	return s.write(entries, true)
}

func (s *Store) write(entries []guids.Entry, acceptDrift bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if !acceptDrift {
		drifts, err := s.drifts(tx, entries)
		if err != nil {
			return err
		}
		if len(drifts) > 0 {
			return &DriftError{Drifts: drifts}
		}
	}

	now := s.clock.Now().UTC().Format(time.RFC3339Nano)
	for _, e := range entries {
		if e.Key.IsZero() {
			return fmt.Errorf("refusing to record nil key for %s", e.Name)
		}

		prev, err := s.get(tx, e.Name)
		switch {
		case errors.Is(err, ErrNotFound):
			if _, err := tx.Exec(
				"INSERT INTO identity_changes (name, old_key, new_key, changed_at) VALUES (?, NULL, ?, ?)",
				string(e.Name), e.Key.String(), now,
			); err != nil {
				return err
			}
		case err != nil:
			return err
		case prev.Key != e.Key:
			if _, err := tx.Exec(
				"INSERT INTO identity_changes (name, old_key, new_key, changed_at) VALUES (?, ?, ?, ?)",
				string(e.Name), prev.Key.String(), e.Key.String(), now,
			); err != nil {
				return err
			}
		}

		if _, err := tx.Exec(`
			INSERT INTO identities (name, key, recorded_at, version) VALUES (?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				key = excluded.key,
				recorded_at = excluded.recorded_at,
				version = excluded.version
		`, string(e.Name), e.Key.String(), now, s.version); err != nil {
			return err
		}
	}

	return tx.Commit()
}
