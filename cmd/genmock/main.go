// Command genmock generates synthetic FAA Releasable Aircraft Database
// fixtures: an ACFTREF.txt/MASTER.txt pair and, optionally, the zip
// distribution wrapping them. The files mimic the real distribution's
// quirks (a UTF-8 byte order mark, space-padded fields, a trailing empty
// column, the odd blank value) so the converter exercises the same
// parsing paths as a production download. A few deliberate edge rows are
// mixed in: a duplicated reference code, model codes with no reference
// entry, and blank or unassigned registrant types.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir /tmp/faa -rows 250 -zip
package main

import (
	"archive/zip"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
)

// fleet is the synthetic reference table. Codes follow the FAA's
// seven-character shape but are not real assignments.
var fleet = []struct {
	code  string
	mfr   string
	model string
}{
	{"2072501", "CESSNA", "172S"},
	{"2072811", "CESSNA", "182T"},
	{"3940122", "PIPER", "PA-28-181"},
	{"3941303", "PIPER", "PA-18-150"},
	{"1151508", "BEECH", "A36"},
	{"5460318", "CIRRUS DESIGN CORP", "SR22"},
	{"6570233", "ROBINSON HELICOPTER", "R44 II"},
	{"1386955", "BOEING", "737-8H4"},
	{"7100510", "VANS", "RV-7"},
	{"8090107", "AERONCA", "7AC"},
}

var owners = []string{
	"JOHN A SMITH",
	"JANE DOE",
	"SKYLINE AVIATION LLC",
	"MIDWEST FLYERS CLUB INC",
	"BLUE RIDGE AIR CHARTER",
	"STATE OF MONTANA",
	"FIRST NATIONAL LEASING CORP",
	"DELTA WING PARTNERSHIP",
	"CASCADE HELICOPTERS INC",
	"ROBERT E LEE JR",
}

var places = []struct{ city, state string }{
	{"AUSTIN", "TX"},
	{"RENO", "NV"},
	{"OLATHE", "KS"},
	{"ANCHORAGE", "AK"},
	{"SPOKANE", "WA"},
	{"DULUTH", "MN"},
	{"SAVANNAH", "GA"},
	{"MESA", "AZ"},
	{"BANGOR", "ME"},
	{"TULSA", "OK"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "", "directory for the generated tables")
	rows := flag.Int("rows", 100, "registration rows to generate")
	seed := flag.Uint64("seed", 1, "PRNG seed; a fixed seed gives reproducible fixtures")
	zipOut := flag.Bool("zip", false, "also wrap the tables in ReleasableAircraft.zip")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out-dir")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))

	refPath := filepath.Join(*outDir, "ACFTREF.txt")
	if err := writeReference(refPath); err != nil {
		return fmt.Errorf("writing reference table: %w", err)
	}
	log.Printf("wrote %s: %d model codes", refPath, len(fleet))

	masterPath := filepath.Join(*outDir, "MASTER.txt")
	if err := writeMaster(masterPath, *rows, rng); err != nil {
		return fmt.Errorf("writing registration roster: %w", err)
	}
	log.Printf("wrote %s: %d registrations", masterPath, *rows)

	if *zipOut {
		zipPath := filepath.Join(*outDir, "ReleasableAircraft.zip")
		if err := writeArchive(zipPath, *outDir); err != nil {
			return fmt.Errorf("writing archive: %w", err)
		}
		log.Printf("wrote %s", zipPath)
	}

	return nil
}

// writeReference emits the ACFTREF.txt fixture: every fleet model, plus a
// duplicate row for the first code so duplicate handling stays covered.
func writeReference(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// Real FAA files open with a BOM and close each row with an empty
	// trailing column.
	if _, err := f.WriteString("\uFEFF"); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	header := []string{
		"CODE", "MFR", "MODEL", "TYPE-ACFT", "TYPE-ENG", "AC-CAT",
		"BUILD-CERT-IND", "NO-ENG", "NO-SEATS", "AC-WEIGHT", "SPEED", "",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, m := range fleet {
		if err := w.Write(referenceRow(m.code, m.mfr, m.model)); err != nil {
			return err
		}
	}
	// Duplicate code: the FAA would never ship one, but the converter
	// resolves it last-row-wins, so keep a row here to pin that down.
	if err := w.Write(referenceRow(fleet[0].code, fleet[0].mfr, fleet[0].model+" NAV III")); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func referenceRow(code, mfr, model string) []string {
	return []string{
		code, pad(mfr, 30), pad(model, 20), "4", "1 ", "1",
		"0", "1", "004", "1", "0120", "",
	}
}

// writeMaster emits the MASTER.txt fixture with the real roster's column
// order, including columns the converter ignores.
func writeMaster(path string, rows int, rng *rand.Rand) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString("\uFEFF"); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	header := []string{
		"N-NUMBER", "SERIAL NUMBER", "MFR MDL CODE", "ENG MFR MDL", "YEAR MFR",
		"TYPE REGISTRANT", "NAME", "STREET", "STREET2", "CITY", "STATE",
		"ZIP CODE", "REGION", "COUNTY", "COUNTRY", "LAST ACTION DATE",
		"CERT ISSUE DATE", "CERTIFICATION", "TYPE AIRCRAFT", "TYPE ENGINE",
		"STATUS CODE", "MODE S CODE", "FRACT OWNER", "AIR WORTH DATE",
		"EXPIRATION DATE", "UNIQUE ID", "KIT MFR", "KIT MODEL",
		"MODE S CODE HEX", "",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < rows; i++ {
		if err := w.Write(masterRow(rng)); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func masterRow(rng *rand.Rand) []string {
	place := places[rng.IntN(len(places))]

	code := fleet[rng.IntN(len(fleet))].code
	if rng.IntN(20) == 0 {
		code = "0000000" // no reference entry on purpose
	}

	year := fmt.Sprintf("%d", 1958+rng.IntN(68))
	if rng.IntN(15) == 0 {
		year = ""
	}

	registrant := fmt.Sprintf("%d", 1+rng.IntN(9))
	if rng.IntN(25) == 0 {
		registrant = ""
	}

	return []string{
		pad(tailNumber(rng), 5),
		pad(fmt.Sprintf("%05d", rng.IntN(99999)), 30),
		code,
		fmt.Sprintf("%05d", 10000+rng.IntN(79999)),
		year,
		registrant,
		pad(owners[rng.IntN(len(owners))], 50),
		pad("PO BOX "+fmt.Sprintf("%d", 1+rng.IntN(9999)), 33),
		"",
		pad(place.city, 18),
		place.state,
		pad(fmt.Sprintf("%05d", 10000+rng.IntN(89999)), 10),
		"S",
		"",
		"US",
		"20240105",
		"20190321",
		pad("1", 10),
		"4",
		"1 ",
		"V ",
		pad(fmt.Sprintf("%08o", 0o50000000+rng.IntN(0o7777777)), 8),
		"",
		"20190321",
		"20261231",
		fmt.Sprintf("%08d", 10000000+rng.IntN(89999999)),
		"",
		"",
		pad(fmt.Sprintf("A%05X", rng.IntN(0xFFFFF)), 10),
		"",
	}
}

// tailNumber builds an N-Number the way the roster stores them: digits
// with an optional letter suffix and no leading "N".
func tailNumber(rng *rand.Rand) string {
	n := fmt.Sprintf("%d", 1+rng.IntN(9999))
	if rng.IntN(3) == 0 {
		n += string(rune('A' + rng.IntN(26)))
	}
	return n
}

// pad right-pads s with spaces to the roster's fixed column width.
func pad(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}

// writeArchive wraps the generated tables in a zip shaped like the real
// distribution, extra entries included.
func writeArchive(path, dir string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	for _, name := range []string{"MASTER.txt", "ACFTREF.txt"} {
		if err := addEntry(zw, name, filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	// The real archive carries more tables; one stub proves the converter
	// extracts only what it needs.
	e, err := zw.Create("ENGINE.txt")
	if err != nil {
		return err
	}
	if _, err := e.Write([]byte("CODE,MFR,MODEL,TYPE,HORSEPOWER,THRUST,\n")); err != nil {
		return err
	}

	return zw.Close()
}

func addEntry(zw *zip.Writer, name, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	e, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(e, f)
	return err
}
