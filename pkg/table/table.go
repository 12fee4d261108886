// Package table reads and writes flat record lists as JSON Lines, CSV or
// SQLite files.
package table

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown table format")

type Format string

const (
	JSONL  Format = "jsonl"
	CSV    Format = "csv"
	SQLite Format = "sqlite"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case JSONL, CSV, SQLite:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want jsonl|csv|sqlite)", ErrUnknownFormat, s)
	}
}

// Ext returns the file extension used for the format, with the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Column is one field of a flat record. Type is the SQLite column type.
type Column struct {
	Name string
	Type string
}

// Schema maps a record type onto named columns.
type Schema[T any] struct {
	// Table names the SQLite table holding the rows.
	Table   string
	Columns []Column
	Values  func(T) []any
	Parse   func([]string) (T, error)
}

func (s Schema[T]) columnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

type Writer[T any] interface {
	Write(T) error
	Close() error
}

// Reader returns rows in file order and io.EOF after the last one.
type Reader[T any] interface {
	Next() (T, error)
	Close() error
}

// Create opens a writer that replaces any existing file at path.
func Create[T any](path string, f Format, schema Schema[T]) (Writer[T], error) {
	switch f {
	case JSONL:
		return createJSONL[T](path)
	case CSV:
		return createCSV(path, schema)
	case SQLite:
		return createSQLite(path, schema)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

func Open[T any](path string, f Format, schema Schema[T]) (Reader[T], error) {
	switch f {
	case JSONL:
		return openJSONL[T](path)
	case CSV:
		return openCSV(path, schema)
	case SQLite:
		return openSQLite(path, schema)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// ReadAll drains r and closes it.
func ReadAll[T any](r Reader[T]) ([]T, error) {
	defer r.Close()
	var out []T
	for {
		v, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
}
