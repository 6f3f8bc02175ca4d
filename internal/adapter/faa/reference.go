package faa

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/couchcryptid/aircraft-registry-etl/internal/domain"
)

// ACFTREF.txt columns this tool consumes.
const (
	colCode     = "CODE"
	colMfr      = "MFR"
	colMdlModel = "MODEL"
)

var referenceColumns = []string{colCode, colMfr, colMdlModel}

// LoadReferenceTable parses ACFTREF.txt into the model-code → make/model
// mapping. A code appearing on multiple rows resolves to the last row's
// values; earlier rows are silently superseded.
func LoadReferenceTable(path string, logger *slog.Logger) (domain.ReferenceTable, error) {
	t, err := openTable(path, referenceColumns)
	if err != nil {
		return nil, err
	}
	defer t.close()

	refs := make(domain.ReferenceTable)
	for {
		row, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Source: path, Err: fmt.Errorf("read row: %w", err)}
		}

		refs[t.field(row, colCode)] = domain.ReferenceEntry{
			Make:  t.field(row, colMfr),
			Model: t.field(row, colMdlModel),
		}
	}

	logger.Info("reference table loaded", "path", path, "model_codes", len(refs))
	return refs, nil
}
