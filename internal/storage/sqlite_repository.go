package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// sqliteTimeLayout is fixed width so that text order matches time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DefaultSnapshot names the grid saved by the interactive app.
const DefaultSnapshot = "default"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens path and applies the embedded migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
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

func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, in GridSnapshot) error {
	if in.Name == "" {
		return errors.New("storage: snapshot name is empty")
	}
	if in.UpdatedAt.IsZero() {
		in.UpdatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO grid_snapshots (name, day_count, grid_offset, min_enabled, max_enabled, selected_day, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			day_count = excluded.day_count,
			grid_offset = excluded.grid_offset,
			min_enabled = excluded.min_enabled,
			max_enabled = excluded.max_enabled,
			selected_day = excluded.selected_day,
			updated_at = excluded.updated_at`,
		in.Name, in.DayCount, in.GridOffset, in.MinEnabledIndex, in.MaxEnabledIndex, in.SelectedDay, mustTime(in.UpdatedAt),
	)
	return err
}

func (r *SQLiteRepository) GetSnapshot(ctx context.Context, name string) (GridSnapshot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT name, day_count, grid_offset, min_enabled, max_enabled, selected_day, updated_at
		FROM grid_snapshots WHERE name = ?`, name)
	var (
		out     GridSnapshot
		updated string
	)
	if err := row.Scan(&out.Name, &out.DayCount, &out.GridOffset, &out.MinEnabledIndex, &out.MaxEnabledIndex, &out.SelectedDay, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GridSnapshot{}, ErrNotFound
		}
		return GridSnapshot{}, err
	}
	tm, err := parseRequiredTime(updated)
	if err != nil {
		return GridSnapshot{}, err
	}
	out.UpdatedAt = tm
	return out, nil
}

func (r *SQLiteRepository) DeleteSnapshot(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM grid_snapshots WHERE name = ?`, name)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) RecordSelection(ctx context.Context, in Selection) (int64, error) {
	if in.Day < 1 {
		return 0, fmt.Errorf("storage: invalid day %d", in.Day)
	}
	if in.SelectedAt.IsZero() {
		in.SelectedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO day_selections (day, source, selected_at)
		VALUES (?, ?, ?)`,
		in.Day, in.Source, mustTime(in.SelectedAt),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) ListSelections(ctx context.Context, filter SelectionListFilter) ([]Selection, error) {
	query := `SELECT id, day, source, selected_at FROM day_selections`
	args := make([]any, 0, 3)
	if filter.Source != "" {
		query += ` WHERE source = ?`
		args = append(args, filter.Source)
	}
	query += ` ORDER BY selected_at DESC, id DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Selection, 0)
	for rows.Next() {
		var (
			item Selection
			at   string
		)
		if err := rows.Scan(&item.ID, &item.Day, &item.Source, &at); err != nil {
			return nil, err
		}
		tm, err := parseRequiredTime(at)
		if err != nil {
			return nil, err
		}
		item.SelectedAt = tm
		out = append(out, item)
	}
	return out, rows.Err()
}

// DeleteSelections clears the selection history and reports how many rows
// were removed.
func (r *SQLiteRepository) DeleteSelections(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM day_selections`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
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
	} else if offset > 0 {
		sql += " LIMIT -1"
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
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
