package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bnema/versiondb-watch/internal/ports"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MemoryPath opens a private in-memory journal.
const MemoryPath = ":memory:"

// timeLayout keeps every fraction digit so started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Journal records check outcomes in a local SQLite database.
type Journal struct {
	db *sql.DB
}

var _ ports.Journal = (*Journal)(nil)

// Open opens (or creates) the journal at path and applies pending migrations.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, errors.New("journal path is required")
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}

	// One connection: an in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if path != MemoryPath {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set journal mode: %w", err)
		}
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run journal migrations: %w", err)
	}

	return j, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	if _, err := j.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations directory: %w", err)
	}
	sort.Slice(entries, func(i, k int) bool {
		return entries[i].Name() < entries[k].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		var version int
		if _, err := fmt.Sscanf(entry.Name(), "%d_", &version); err != nil {
			return fmt.Errorf("parse migration version from %q: %w", entry.Name(), err)
		}

		var applied int
		if err := j.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&applied); err != nil {
			return fmt.Errorf("check migration %d: %w", version, err)
		}
		if applied > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}

		tx, err := j.db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", version, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %d: %w", version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", version, err)
		}
	}

	return nil
}

func (j *Journal) Record(ctx context.Context, entry ports.JournalEntry) error {
	if entry.RunID == "" {
		return errors.New("journal entry run id is required")
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO checks (run_id, target, channel, outcome, version, matched, published, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID, entry.Target, entry.Channel, string(entry.Outcome), entry.Version,
		entry.Matched, entry.Published, entry.Error,
		formatTime(entry.StartedAt), formatTime(entry.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("record check: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]ports.JournalEntry, error) {
	if limit <= 0 {
		return []ports.JournalEntry{}, nil
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, target, channel, outcome, version, matched, published, error, started_at, finished_at
		FROM checks ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query checks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []ports.JournalEntry{}
	for rows.Next() {
		var (
			entry      ports.JournalEntry
			outcome    string
			startedAt  string
			finishedAt string
		)
		if err := rows.Scan(&entry.RunID, &entry.Target, &entry.Channel, &outcome, &entry.Version,
			&entry.Matched, &entry.Published, &entry.Error, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}

		entry.Outcome = ports.CheckOutcome(outcome)
		if entry.StartedAt, err = parseTime(startedAt); err != nil {
			return nil, err
		}
		if entry.FinishedAt, err = parseTime(finishedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func formatTime(value time.Time) string {
	return value.UTC().Format(timeLayout)
}

func parseTime(raw string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse journal time %q: %w", raw, err)
	}
	return parsed, nil
}
