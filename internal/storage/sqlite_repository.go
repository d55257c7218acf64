package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Fixed-width so stored timestamps sort lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 2000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) GetSnapshot(ctx context.Context, key string) (Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, payload, updated_at FROM timer_snapshots WHERE key = ?`, key)
	item, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, err
	}
	return item, nil
}

// PutSnapshot inserts or overwrites the slot for in.Key.
func (r *SQLiteRepository) PutSnapshot(ctx context.Context, in Snapshot) error {
	if strings.TrimSpace(in.Key) == "" {
		return errors.New("storage: snapshot key is required")
	}
	updated := in.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO timer_snapshots (key, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		in.Key, string(in.Payload), mustTime(updated),
	)
	return err
}

func (r *SQLiteRepository) DeleteSnapshot(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM timer_snapshots WHERE key = ?`, key)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListSnapshots(ctx context.Context, filter SnapshotListFilter) ([]Snapshot, error) {
	args := make([]any, 0, 2)
	query := `SELECT key, payload, updated_at FROM timer_snapshots ORDER BY key ASC` + applyPagination(&args, filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Snapshot, 0)
	for rows.Next() {
		item, scanErr := scanSnapshot(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateCompletion(ctx context.Context, in Completion) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_completions (id, timer_key, mode, duration_sec, completed_at)
		VALUES (?, ?, ?, ?, ?)`,
		in.ID, in.TimerKey, in.Mode, in.DurationSec, mustTime(in.CompletedAt),
	)
	return err
}

func (r *SQLiteRepository) ListCompletions(ctx context.Context, filter CompletionListFilter) ([]Completion, error) {
	where, args := completionWhere(filter)
	query := `SELECT id, timer_key, mode, duration_sec, completed_at FROM session_completions` + where
	query += ` ORDER BY completed_at DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Completion, 0)
	for rows.Next() {
		item, scanErr := scanCompletion(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// CountCompletions groups matching completions by mode. Pagination is ignored.
func (r *SQLiteRepository) CountCompletions(ctx context.Context, filter CompletionListFilter) (map[string]int, error) {
	where, args := completionWhere(filter)
	rows, err := r.db.QueryContext(ctx, `SELECT mode, COUNT(*) FROM session_completions`+where+` GROUP BY mode`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var mode string
		var count int
		if err := rows.Scan(&mode, &count); err != nil {
			return nil, err
		}
		out[mode] = count
	}
	return out, rows.Err()
}

func completionWhere(filter CompletionListFilter) (string, []any) {
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if filter.TimerKey != "" {
		clauses = append(clauses, "timer_key = ?")
		args = append(args, filter.TimerKey)
	}
	if filter.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, filter.Mode)
	}
	if filter.Since != nil {
		clauses = append(clauses, "completed_at >= ?")
		args = append(args, mustTime(*filter.Since))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			sql += " LIMIT -1"
		}
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(s scanner) (Snapshot, error) {
	var out Snapshot
	var payload string
	var updated string
	if err := s.Scan(&out.Key, &payload, &updated); err != nil {
		return Snapshot{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return Snapshot{}, err
	}
	out.Payload = []byte(payload)
	out.UpdatedAt = updatedAt
	return out, nil
}

func scanCompletion(s scanner) (Completion, error) {
	var out Completion
	var completed string
	if err := s.Scan(&out.ID, &out.TimerKey, &out.Mode, &out.DurationSec, &completed); err != nil {
		return Completion{}, err
	}
	completedAt, err := parseRequiredTime(completed)
	if err != nil {
		return Completion{}, err
	}
	out.CompletedAt = completedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
