package etcfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/aircraft-registry-etl/internal/domain"
)

// Writer streams output records to a pipe-delimited lookup file. Rows
// accumulate in a temporary file beside the destination and move into
// place atomically on Commit, so a failed run never leaves a truncated
// table at the destination path. Path "-" streams to stdout instead.
type Writer struct {
	path    string
	tmpPath string
	file    *os.File
	csv     *csv.Writer
	logger  *slog.Logger
	stdout  bool
}

// NewWriter creates a writer for path. The filesystem is untouched until
// Open.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger, stdout: path == "-"}
}

// Open creates the temporary output file and writes the header row. The
// pipe delimiter and column order are a fixed contract with the consuming
// tool.
func (w *Writer) Open(_ context.Context) error {
	if w.stdout {
		w.file = os.Stdout
	} else {
		f, err := os.CreateTemp(filepath.Dir(w.path), filepath.Base(w.path)+".tmp-*")
		if err != nil {
			return fmt.Errorf("create temp output: %w", err)
		}
		w.file = f
		w.tmpPath = f.Name()
	}

	w.csv = csv.NewWriter(w.file)
	w.csv.Comma = '|'

	if err := w.csv.Write(domain.OutputColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// Write emits one record row.
func (w *Writer) Write(_ context.Context, rec domain.OutputRecord) error {
	if err := w.csv.Write(rec.Values()); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// Commit flushes buffered rows and moves the table into place.
func (w *Writer) Commit(_ context.Context) error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	if w.stdout {
		return nil
	}

	// CreateTemp opens 0600; the table is plain shareable data.
	if err := w.file.Chmod(0o644); err != nil {
		return fmt.Errorf("set output permissions: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Rename(w.tmpPath, w.path); err != nil {
		return fmt.Errorf("move output into place: %w", err)
	}
	w.tmpPath = ""

	w.logger.Info("lookup table written", "path", w.path)
	return nil
}

// Abort discards the temporary file. Safe to call after Commit or a failed
// Open; the destination path is never touched.
func (w *Writer) Abort() {
	if w.stdout || w.tmpPath == "" {
		return
	}

	w.file.Close()
	if err := os.Remove(w.tmpPath); err != nil {
		w.logger.Warn("could not remove temp output", "path", w.tmpPath, "error", err)
	}
	w.tmpPath = ""
}
