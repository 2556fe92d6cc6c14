package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/WispAyr/signage-designer/pkg/sign"
)

// SQLiteConfig contains configuration for the SQLite store backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/signs.db",
		MaxOpenConns: 10,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS signs (
	reference  TEXT PRIMARY KEY,
	site       TEXT NOT NULL,
	type_code  TEXT NOT NULL,
	sequence   INTEGER NOT NULL,
	version    INTEGER NOT NULL,
	created_at TEXT NOT NULL,
	document   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_signs_scope ON signs(site, type_code);
`

// SQLiteStore implements Store on a SQLite database. The full sign
// document is stored as JSON alongside the reference columns the
// sequence counter and retention queries need.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if necessary) a SQLite-backed store.
func NewSQLiteStore(config *SQLiteConfig, logger *slog.Logger) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sign database %q: %w", config.Path, err)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger.With("component", "store.sqlite"),
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Info("sqlite store opened",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, sg *sign.Sign) error {
	parsed, err := sign.ParseReference(sg.Reference)
	if err != nil {
		return err
	}
	doc, err := json.Marshal(sg)
	if err != nil {
		return fmt.Errorf("failed to encode sign %q: %w", sg.Reference, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO signs (reference, site, type_code, sequence, version, created_at, document)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(reference) DO UPDATE SET document = excluded.document`,
		sg.Reference, parsed.Site, parsed.TypeCode, parsed.Sequence, parsed.Version,
		sg.CreatedAt.UTC().Format(time.RFC3339Nano), string(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to store sign %q: %w", sg.Reference, err)
	}
	return nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, reference string) (*sign.Sign, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM signs WHERE reference = ?`, reference).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load sign %q: %w", reference, err)
	}

	var sg sign.Sign
	if err := json.Unmarshal([]byte(doc), &sg); err != nil {
		return nil, fmt.Errorf("failed to parse sign %q: %w", reference, err)
	}
	return &sg, nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context) ([]*sign.Sign, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT document FROM signs ORDER BY reference`)
	if err != nil {
		return nil, fmt.Errorf("failed to list signs: %w", err)
	}
	defer rows.Close()

	var out []*sign.Sign
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan sign row: %w", err)
		}
		var sg sign.Sign
		if err := json.Unmarshal([]byte(doc), &sg); err != nil {
			return nil, fmt.Errorf("failed to parse stored sign: %w", err)
		}
		out = append(out, &sg)
	}
	return out, rows.Err()
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, reference string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM signs WHERE reference = ?`, reference)
	if err != nil {
		return fmt.Errorf("failed to delete sign %q: %w", reference, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// NextSequence implements Store.
func (s *SQLiteStore) NextSequence(ctx context.Context, site string, t sign.Type) (int, error) {
	ref := sign.MakeReference(site, t, 0, 1)
	parsed, err := sign.ParseReference(ref)
	if err != nil {
		return 0, err
	}

	var max sql.NullInt64
	err = s.db.QueryRowContext(ctx,
		`SELECT MAX(sequence) FROM signs WHERE site = ? AND type_code = ?`,
		parsed.Site, parsed.TypeCode).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to read sequence counter: %w", err)
	}
	return int(max.Int64) + 1, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
