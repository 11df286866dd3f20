// Package journal persists a record of completed spool submissions in
// SQLite, so operators can see what was handed to Asterisk and when.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/callspool/callspool/internal/journal/migrations"
	"github.com/callspool/callspool/internal/platform/storage/sqlitemigrate"
)

// Submission is one journaled handoff to the spool directory.
type Submission struct {
	ID          string
	SpoolPath   string
	Channel     string
	Archive     bool
	ScheduledAt *time.Time
	CreatedAt   time.Time
}

// Journal stores submissions in SQLite.
type Journal struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite journal and applies embedded migrations.
func Open(path string) (*Journal, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Journal{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (j *Journal) Close() error {
	if j == nil || j.sqlDB == nil {
		return nil
	}
	return j.sqlDB.Close()
}

// Record inserts one submission. An empty ID gets a generated UUID and
// a zero CreatedAt gets the current time; the stored submission is
// returned.
func (j *Journal) Record(ctx context.Context, sub Submission) (Submission, error) {
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}
	if j == nil || j.sqlDB == nil {
		return Submission{}, fmt.Errorf("journal is not configured")
	}
	if strings.TrimSpace(sub.SpoolPath) == "" {
		return Submission{}, fmt.Errorf("spool path is required")
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	var scheduledAt any
	if sub.ScheduledAt != nil {
		scheduledAt = toMillis(*sub.ScheduledAt)
	}
	_, err := j.sqlDB.ExecContext(
		ctx,
		`INSERT INTO submissions (id, spool_path, channel, archive, scheduled_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sub.ID,
		sub.SpoolPath,
		sub.Channel,
		boolToInt(sub.Archive),
		scheduledAt,
		toMillis(sub.CreatedAt),
	)
	if err != nil {
		return Submission{}, fmt.Errorf("record submission: %w", err)
	}
	return sub, nil
}

// Recent returns up to limit submissions, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if j == nil || j.sqlDB == nil {
		return nil, fmt.Errorf("journal is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := j.sqlDB.QueryContext(
		ctx,
		`SELECT id, spool_path, channel, archive, scheduled_at, created_at
		 FROM submissions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		var (
			sub         Submission
			archive     int
			scheduledAt sql.NullInt64
			createdAt   int64
		)
		if err := rows.Scan(&sub.ID, &sub.SpoolPath, &sub.Channel, &archive, &scheduledAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		sub.Archive = archive != 0
		if scheduledAt.Valid {
			scheduled := fromMillis(scheduledAt.Int64)
			sub.ScheduledAt = &scheduled
		}
		sub.CreatedAt = fromMillis(createdAt)
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return subs, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
