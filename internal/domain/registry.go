package domain

// ReferenceEntry holds the manufacturer and model strings for one aircraft
// model code, trimmed.
type ReferenceEntry struct {
	Make  string `json:"make"`
	Model string `json:"model"`
}

// ReferenceTable maps a seven-character model code to its reference entry.
// Built once per run from ACFTREF.txt, read-only during the join. Duplicate
// codes are last-row-wins: a later row silently supersedes an earlier one.
type ReferenceTable map[string]ReferenceEntry

// Registration is one MASTER.txt row after trimming and registrant-type
// resolution. Only the roster columns this tool consumes are carried;
// everything else in MASTER.txt is ignored at parse time.
type Registration struct {
	TailNumber     string
	ModelCode      string // joins to ReferenceTable, may be unmatched
	Year           string
	OwnerName      string
	City           string
	State          string
	ModeSHex       string
	RegistrantType string // resolved description, never the raw code
}

// RegistryTables bundles the two parsed source tables produced by an
// extraction, whichever acquisition mode supplied the raw files.
type RegistryTables struct {
	Reference     ReferenceTable
	Registrations []Registration
}

// OutputColumns is the emitted header in contract order. The pipe-delimited
// layout is a fixed external contract with the consuming tool and is not
// configurable.
var OutputColumns = []string{
	"tail_number",
	"make",
	"model",
	"year",
	"owner_name",
	"city",
	"state",
	"mode_s_hex",
	"registrant_type",
}

// OutputRecord is the emission-only projection of one registration joined
// against the reference table. It exists to be serialized; nothing retains
// it after the row is written.
type OutputRecord struct {
	TailNumber     string `json:"tail_number"`
	Make           string `json:"make"`
	Model          string `json:"model"`
	Year           string `json:"year"`
	OwnerName      string `json:"owner_name"`
	City           string `json:"city"`
	State          string `json:"state"`
	ModeSHex       string `json:"mode_s_hex"`
	RegistrantType string `json:"registrant_type"`
}

// Values returns the record's fields in OutputColumns order.
func (r OutputRecord) Values() []string {
	return []string{
		r.TailNumber,
		r.Make,
		r.Model,
		r.Year,
		r.OwnerName,
		r.City,
		r.State,
		r.ModeSHex,
		r.RegistrantType,
	}
}
