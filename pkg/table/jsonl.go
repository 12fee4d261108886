package table

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
)

type jsonlWriter[T any] struct {
	f *os.File
	w *bufio.Writer
}

func createJSONL[T any](path string) (Writer[T], error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &jsonlWriter[T]{f: f, w: bufio.NewWriter(f)}, nil
}

func (w *jsonlWriter[T]) Write(v T) error {
	line, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}
	if _, err := w.w.Write(line); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *jsonlWriter[T]) Close() error {
	if err := w.w.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

type jsonlReader[T any] struct {
	f    *os.File
	r    *bufio.Reader
	line int
}

func openJSONL[T any](path string) (Reader[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &jsonlReader[T]{f: f, r: bufio.NewReader(f)}, nil
}

func (r *jsonlReader[T]) Next() (T, error) {
	var v T
	for {
		data, err := r.r.ReadBytes('\n')
		if len(data) == 0 && err != nil {
			return v, err // io.EOF or a read error
		}
		r.line++
		data = bytes.TrimSpace(data)
		if len(data) == 0 {
			if err == io.EOF {
				return v, io.EOF
			}
			continue
		}
		if uerr := sonic.Unmarshal(data, &v); uerr != nil {
			return v, fmt.Errorf("line %d: %w", r.line, uerr)
		}
		return v, nil
	}
}

func (r *jsonlReader[T]) Close() error {
	return r.f.Close()
}
