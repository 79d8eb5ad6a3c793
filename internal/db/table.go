package db

import (
	"context"
	"coursehub/internal/store"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type scanner interface {
	Scan(dest ...any) error
}

// Mapper describes how a record type is laid out in a table. Columns and
// Values exclude the id column and must line up.
type Mapper[T store.Record[T]] interface {
	Table() string
	Columns() []string
	Values(rec T) []any
	// Scan reads a row selected as id followed by Columns.
	Scan(row scanner) (T, error)
}

// Table is a store.Store backed by one SQL table. Identifiers come from the
// database's auto-increment.
type Table[T store.Record[T]] struct {
	db *DB
	m  Mapper[T]

	insertSQL string
	selectSQL string
	updateSQL string
	deleteSQL string
	countSQL  string
}

func NewTable[T store.Record[T]](db *DB, m Mapper[T]) *Table[T] {
	cols := m.Columns()
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
	}
	name := m.Table()

	return &Table[T]{
		db:        db,
		m:         m,
		insertSQL: db.rebind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id", name, strings.Join(cols, ", "), marks)),
		selectSQL: fmt.Sprintf("SELECT id, %s FROM %s", strings.Join(cols, ", "), name),
		updateSQL: db.rebind(fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", name, strings.Join(sets, ", "))),
		deleteSQL: db.rebind(fmt.Sprintf("DELETE FROM %s WHERE id = ?", name)),
		countSQL:  fmt.Sprintf("SELECT COUNT(*) FROM %s", name),
	}
}

func (t *Table[T]) Create(ctx context.Context, rec T) (int64, error) {
	var id int64
	if err := t.db.QueryRowContext(ctx, t.insertSQL, t.m.Values(rec)...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert %s: %w", t.m.Table(), err)
	}
	return id, nil
}

func (t *Table[T]) Get(ctx context.Context, id int64) (T, error) {
	row := t.db.QueryRowContext(ctx, t.db.rebind(t.selectSQL+" WHERE id = ?"), id)

	rec, err := t.m.Scan(row)
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, store.ErrNotFound
		}
		return zero, fmt.Errorf("get %s %d: %w", t.m.Table(), id, err)
	}

	return rec, nil
}

func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	rows, err := t.db.QueryContext(ctx, t.selectSQL+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.m.Table(), err)
	}
	defer rows.Close()

	recs := make([]T, 0)
	for rows.Next() {
		rec, err := t.m.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.m.Table(), err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", t.m.Table(), err)
	}

	return recs, nil
}

func (t *Table[T]) Update(ctx context.Context, id int64, rec T) error {
	args := append(t.m.Values(rec), id)
	res, err := t.db.ExecContext(ctx, t.updateSQL, args...)
	if err != nil {
		return fmt.Errorf("update %s %d: %w", t.m.Table(), id, err)
	}
	return affected(res)
}

func (t *Table[T]) Delete(ctx context.Context, id int64) error {
	res, err := t.db.ExecContext(ctx, t.deleteSQL, id)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", t.m.Table(), id, err)
	}
	return affected(res)
}

func (t *Table[T]) Count(ctx context.Context) (int, error) {
	var n int
	if err := t.db.QueryRowContext(ctx, t.countSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.m.Table(), err)
	}
	return n, nil
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
