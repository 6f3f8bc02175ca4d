package faa

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// table reads a comma-separated FAA file through a header index. The files
// are served as UTF-8 with a byte order mark; the decoder strips it and
// tolerates a UTF-16 BOM should the upstream encoding ever change.
type table struct {
	file    *os.File
	reader  *csv.Reader
	columns map[string]int
}

// openTable opens path and indexes its header row, verifying every column
// in required is present (header names are case-sensitive). The returned
// table must be closed. Row width is not enforced; FAA rows occasionally
// run short and absent fields read as empty.
func openTable(path string, required []string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Source: path, Err: err}
	}

	decoded := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	r := csv.NewReader(decoded)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		f.Close()
		if err == io.EOF {
			return nil, &ParseError{Source: path, Err: errors.New("empty table: no header row")}
		}
		return nil, &ParseError{Source: path, Err: fmt.Errorf("read header: %w", err)}
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			f.Close()
			return nil, &ParseError{Source: path, Err: fmt.Errorf("missing required column %q", name)}
		}
	}

	return &table{file: f, reader: r, columns: columns}, nil
}

// next returns the following data row, or io.EOF after the last one.
func (t *table) next() ([]string, error) {
	return t.reader.Read()
}

// field returns the trimmed value of the named column in row, or "" when
// the row is too short to carry the column.
func (t *table) field(row []string, name string) string {
	idx, ok := t.columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (t *table) close() error {
	return t.file.Close()
}
