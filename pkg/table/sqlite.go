package table

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quotedColumns(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = quoteIdent(c.Name)
	}
	return out
}

type sqliteWriter[T any] struct {
	db     *sql.DB
	tx     *sql.Tx
	stmt   *sql.Stmt
	schema Schema[T]
}

// createSQLite writes all rows in one transaction, committed by Close.
func createSQLite[T any](path string, schema Schema[T]) (Writer[T], error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("remove %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	defs := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		defs[i] = quoteIdent(c.Name) + " " + c.Type
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(schema.Table), strings.Join(defs, ", "))
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table %s: %w", schema.Table, err)
	}

	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("begin: %w", err)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(schema.Columns)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(schema.Table), strings.Join(quotedColumns(schema.Columns), ", "), placeholders)
	stmt, err := tx.Prepare(insert)
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	return &sqliteWriter[T]{db: db, tx: tx, stmt: stmt, schema: schema}, nil
}

func (w *sqliteWriter[T]) Write(v T) error {
	if _, err := w.stmt.Exec(w.schema.Values(v)...); err != nil {
		return fmt.Errorf("insert row: %w", err)
	}
	return nil
}

func (w *sqliteWriter[T]) Close() error {
	w.stmt.Close()
	if err := w.tx.Commit(); err != nil {
		w.db.Close()
		return fmt.Errorf("commit: %w", err)
	}
	return w.db.Close()
}

type sqliteReader[T any] struct {
	db     *sql.DB
	rows   *sql.Rows
	schema Schema[T]
}

func openSQLite[T any](path string, schema Schema[T]) (Reader[T], error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid",
		strings.Join(quotedColumns(schema.Columns), ", "), quoteIdent(schema.Table))
	rows, err := db.Query(query)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("query %s: %w", schema.Table, err)
	}
	return &sqliteReader[T]{db: db, rows: rows, schema: schema}, nil
}

func (r *sqliteReader[T]) Next() (T, error) {
	var zero T
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return zero, fmt.Errorf("iterate %s: %w", r.schema.Table, err)
		}
		return zero, io.EOF
	}
	cells := make([]sql.NullString, len(r.schema.Columns))
	dest := make([]any, len(cells))
	for i := range cells {
		dest[i] = &cells[i]
	}
	if err := r.rows.Scan(dest...); err != nil {
		return zero, fmt.Errorf("scan %s row: %w", r.schema.Table, err)
	}
	fields := make([]string, len(cells))
	for i, c := range cells {
		fields[i] = c.String
	}
	return r.schema.Parse(fields)
}

func (r *sqliteReader[T]) Close() error {
	r.rows.Close()
	return r.db.Close()
}
