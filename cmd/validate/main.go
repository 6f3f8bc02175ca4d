// Command validate performs end-to-end integrity checks on a converted
// lookup table against the FAA source tables it was built from. It
// verifies the header and delimiter, row cardinality and order, the
// reference join, and the registrant vocabulary.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -acftref /tmp/faa/ACFTREF.txt \
//	  -master /tmp/faa/MASTER.txt \
//	  -output /tmp/faa/aircraft.etc
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/aircraft-registry-etl/internal/adapter/faa"
	"github.com/couchcryptid/aircraft-registry-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	acftref := flag.String("acftref", "", "path to the ACFTREF.txt reference table")
	master := flag.String("master", "", "path to the MASTER.txt registration roster")
	output := flag.String("output", "", "path to the converted lookup table")
	flag.Parse()

	if *acftref == "" || *master == "" || *output == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*acftref, *master, *output); code != 0 {
		os.Exit(code)
	}
}

func run(acftrefPath, masterPath, outputPath string) int {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// ── Load all data sources ──
	fmt.Println("=== Aircraft Lookup Table Validation ===")
	fmt.Println()

	refs, err := faa.LoadReferenceTable(acftrefPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load reference table: %v\n", err)
		return 1
	}

	regs, err := faa.LoadRegistrationTable(masterPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load registration roster: %v\n", err)
		return 1
	}

	header, rows, err := loadOutput(outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load output: %v\n", err)
		return 1
	}

	// ── Run validation phases ──
	phases := []*phase{
		validateShape(header, rows),
		validateCardinality(rows, regs),
		validateJoin(rows, regs, refs),
		validateVocabulary(rows),
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d reference, %d roster, %d output\n", len(refs), len(regs), len(rows))

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

// outputRow is a parsed pipe-delimited row with its 1-based line number.
type outputRow struct {
	lineNum int
	fields  []string
}

func loadOutput(path string) ([]string, []outputRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '|'
	r.FieldsPerRecord = -1

	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("no header row in %s", path)
	}

	rows := make([]outputRow, 0, len(all)-1)
	for i, fields := range all[1:] {
		rows = append(rows, outputRow{lineNum: i + 2, fields: fields})
	}
	return all[0], rows, nil
}

// ── Phase 1: Output Shape ──
// Validates the header row, the field count, and field trimming.

func validateShape(header []string, rows []outputRow) *phase {
	p := &phase{name: "Phase 1: Output Shape (header, fields)"}

	if len(header) != len(domain.OutputColumns) {
		p.errorf("header has %d columns, expected %d", len(header), len(domain.OutputColumns))
	} else {
		for i, want := range domain.OutputColumns {
			if header[i] != want {
				p.errorf("header column %d: expected %q, got %q", i, want, header[i])
			}
		}
	}

	for _, row := range rows {
		if len(row.fields) != len(domain.OutputColumns) {
			p.errorf("line %d: %d fields, expected %d", row.lineNum, len(row.fields), len(domain.OutputColumns))
			continue
		}
		for i, v := range row.fields {
			if v != strings.TrimSpace(v) {
				p.errorf("line %d: column %q has untrimmed value %q", row.lineNum, domain.OutputColumns[i], v)
			}
		}
	}
	return p
}

// ── Phase 2: Cardinality & Order ──
// Validates one output row per roster row, in roster order.

func validateCardinality(rows []outputRow, regs []domain.Registration) *phase {
	p := &phase{name: "Phase 2: Cardinality & Order (vs roster)"}

	if len(rows) != len(regs) {
		p.errorf("roster has %d rows, output has %d", len(regs), len(rows))
		return p
	}

	for i, row := range rows {
		if len(row.fields) == 0 {
			continue
		}
		if row.fields[0] != regs[i].TailNumber {
			p.errorf("line %d: tail number %q, roster row %d has %q", row.lineNum, row.fields[0], i+1, regs[i].TailNumber)
		}
	}
	return p
}

// ── Phase 3: Join Correctness ──
// Re-runs the reference merge and compares every field.

func validateJoin(rows []outputRow, regs []domain.Registration, refs domain.ReferenceTable) *phase {
	p := &phase{name: "Phase 3: Join Correctness (merge replay)"}

	if len(rows) != len(regs) {
		p.errorf("cannot replay join: roster has %d rows, output has %d", len(regs), len(rows))
		return p
	}

	for i, row := range rows {
		if len(row.fields) != len(domain.OutputColumns) {
			continue // reported by phase 1
		}
		expected := domain.Merge(regs[i], refs).Values()
		for j, want := range expected {
			if row.fields[j] != want {
				p.errorf("line %d: column %q: expected %q, got %q", row.lineNum, domain.OutputColumns[j], want, row.fields[j])
			}
		}
	}
	return p
}

// ── Phase 4: Vocabulary ──
// Validates registrant descriptions against the fixed FAA vocabulary and
// that joined fields fall back to Unknown instead of empty.

var registrantVocabulary = map[string]bool{
	"Individual":              true,
	"Partnership":             true,
	"Corporation":             true,
	"Co-Owned":                true,
	"Government":              true,
	"LLC":                     true,
	"Non Citizen Corporation": true,
	"Non Citizen Co-Owned":    true,
	"Unknown":                 true,
}

func validateVocabulary(rows []outputRow) *phase {
	p := &phase{name: "Phase 4: Vocabulary (registrant, fallbacks)"}

	for _, row := range rows {
		if len(row.fields) != len(domain.OutputColumns) {
			continue
		}
		if v := row.fields[8]; !registrantVocabulary[v] {
			p.errorf("line %d: registrant_type %q not in FAA vocabulary", row.lineNum, v)
		}
		if row.fields[1] == "" {
			p.errorf("line %d: make is empty (expected Unknown fallback)", row.lineNum)
		}
		if row.fields[2] == "" {
			p.errorf("line %d: model is empty (expected Unknown fallback)", row.lineNum)
		}
	}
	return p
}
