package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

type csvWriter[T any] struct {
	f      *os.File
	w      *csv.Writer
	schema Schema[T]
}

func createCSV[T any](path string, schema Schema[T]) (Writer[T], error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(schema.columnNames()); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &csvWriter[T]{f: f, w: w, schema: schema}, nil
}

func (w *csvWriter[T]) Write(v T) error {
	values := w.schema.Values(v)
	row := make([]string, len(values))
	for i, val := range values {
		row[i] = formatValue(val)
	}
	return w.w.Write(row)
}

func (w *csvWriter[T]) Close() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	default:
		return fmt.Sprint(x)
	}
}

type csvReader[T any] struct {
	f      *os.File
	r      *csv.Reader
	schema Schema[T]
	index  []int // schema column -> file column, -1 when absent
}

func openCSV[T any](path string, schema Schema[T]) (Reader[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[name] = i
	}
	index := make([]int, len(schema.Columns))
	for i, c := range schema.Columns {
		if p, ok := pos[c.Name]; ok {
			index[i] = p
		} else {
			index[i] = -1
		}
	}
	return &csvReader[T]{f: f, r: r, schema: schema, index: index}, nil
}

func (r *csvReader[T]) Next() (T, error) {
	var zero T
	rec, err := r.r.Read()
	if err == io.EOF {
		return zero, io.EOF
	}
	if err != nil {
		return zero, err
	}
	fields := make([]string, len(r.index))
	for i, p := range r.index {
		if p >= 0 && p < len(rec) {
			fields[i] = rec[p]
		}
	}
	return r.schema.Parse(fields)
}

func (r *csvReader[T]) Close() error {
	return r.f.Close()
}
