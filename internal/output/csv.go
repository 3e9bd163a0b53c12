package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/strrl/model-exploder/internal/pipeline"
)

const expandedSuffix = "_expanded.csv"

// PathFor derives the output file for an input model: a trailing ".json"
// is replaced, any other name gets the suffix appended.
func PathFor(input string) string {
	return strings.TrimSuffix(input, ".json") + expandedSuffix
}

type Options struct {
	// Quote writes RFC 4180 quoted fields instead of bare "utterance,intent" lines.
	Quote bool
}

// Writer streams rows as two-column CSV with no header.
type Writer struct {
	buf  *bufio.Writer
	csv  *csv.Writer
	file *os.File
	rows int
}

// Create truncates or creates path and returns a Writer over it.
func Create(path string, opts Options) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w := NewWriter(file, opts)
	w.file = file
	return w, nil
}

func NewWriter(dst io.Writer, opts Options) *Writer {
	w := &Writer{buf: bufio.NewWriter(dst)}
	if opts.Quote {
		w.csv = csv.NewWriter(w.buf)
	}
	return w
}

func (w *Writer) Write(row pipeline.Row) error {
	w.rows++

	if w.csv != nil {
		if err := w.csv.Write([]string{row.Utterance, row.Intent}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		return nil
	}

	if _, err := w.buf.WriteString(row.Utterance + "," + row.Intent + "\n"); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

func (w *Writer) Rows() int {
	return w.rows
}

// Close flushes buffered rows and closes the underlying file, if any.
func (w *Writer) Close() error {
	if w.csv != nil {
		w.csv.Flush()
		if err := w.csv.Error(); err != nil {
			return fmt.Errorf("failed to flush output: %w", err)
		}
	}

	if err := w.buf.Flush(); err != nil {
		if w.file != nil {
			w.file.Close()
		}
		return fmt.Errorf("failed to flush output: %w", err)
	}

	if w.file != nil {
		if err := w.file.Close(); err != nil {
			return fmt.Errorf("failed to close output file: %w", err)
		}
	}
	return nil
}
