package output

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidUTF8 is returned when a row contains bytes that are not UTF-8.
// The row is not written.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 in row")

// CSVWriter appends rows to a stream one at a time. Every row is encoded in
// full before any byte reaches the destination, so a rejected row leaves no
// trace, and each accepted row is flushed immediately.
type CSVWriter struct {
	dst    io.Writer
	closer io.Closer
	buf    bytes.Buffer
	enc    *csv.Writer
}

// NewCSVWriter writes to w with CRLF line endings. Close does not close w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	cw := &CSVWriter{dst: w}
	cw.enc = csv.NewWriter(&cw.buf)
	cw.enc.UseCRLF = true
	return cw
}

// Create truncates (or creates) path and returns a writer that owns the file.
func Create(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	cw := NewCSVWriter(f)
	cw.closer = f
	return cw, nil
}

// WriteRow encodes fields as one CSV record. Text is NFC-normalized.
func (w *CSVWriter) WriteRow(fields []string) error {
	record := make([]string, len(fields))
	for i, f := range fields {
		if !utf8.ValidString(f) {
			return fmt.Errorf("%w: column %d: %q", ErrInvalidUTF8, i, f)
		}
		record[i] = norm.NFC.String(f)
	}

	w.buf.Reset()
	if err := w.enc.Write(record); err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}
	w.enc.Flush()
	if err := w.enc.Error(); err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}

	if _, err := w.dst.Write(w.buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

// Close releases the destination if the writer owns it.
func (w *CSVWriter) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}
