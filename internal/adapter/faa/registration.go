package faa

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/couchcryptid/aircraft-registry-etl/internal/domain"
)

// MASTER.txt columns this tool consumes. Every other roster column is
// ignored at parse time.
const (
	colNNumber        = "N-NUMBER"
	colModelCode      = "MFR MDL CODE"
	colYearMfr        = "YEAR MFR"
	colOwnerName      = "NAME"
	colCity           = "CITY"
	colState          = "STATE"
	colModeSHex       = "MODE S CODE HEX"
	colTypeRegistrant = "TYPE REGISTRANT"
)

var registrationColumns = []string{
	colNNumber, colModelCode, colYearMfr, colOwnerName,
	colCity, colState, colModeSHex, colTypeRegistrant,
}

// LoadRegistrationTable parses MASTER.txt into registrations in source row
// order. Every data row produces a record, including rows with blank or
// missing fields, so output cardinality always matches the roster. The
// registrant-type code is resolved to its description here.
func LoadRegistrationTable(path string, logger *slog.Logger) ([]domain.Registration, error) {
	t, err := openTable(path, registrationColumns)
	if err != nil {
		return nil, err
	}
	defer t.close()

	var regs []domain.Registration
	for {
		row, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Source: path, Err: fmt.Errorf("read row: %w", err)}
		}

		regs = append(regs, domain.Registration{
			TailNumber:     t.field(row, colNNumber),
			ModelCode:      t.field(row, colModelCode),
			Year:           t.field(row, colYearMfr),
			OwnerName:      t.field(row, colOwnerName),
			City:           t.field(row, colCity),
			State:          t.field(row, colState),
			ModeSHex:       t.field(row, colModeSHex),
			RegistrantType: domain.RegistrantDescription(t.field(row, colTypeRegistrant)),
		})
	}

	logger.Info("registration roster loaded", "path", path, "registrations", len(regs))
	return regs, nil
}
