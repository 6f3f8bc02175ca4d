package domain

import "strings"

// Unknown is emitted wherever source data cannot be resolved: blank or
// unassigned registrant-type codes, and model codes absent from the
// reference table.
const Unknown = "Unknown"

// registrantTypes is the FAA "TYPE REGISTRANT" code table. The set is
// closed (the FAA does not assign code 6), so this is a fixed mapping,
// not configuration.
var registrantTypes = map[string]string{
	"1": "Individual",
	"2": "Partnership",
	"3": "Corporation",
	"4": "Co-Owned",
	"5": "Government",
	"7": "LLC",
	"8": "Non Citizen Corporation",
	"9": "Non Citizen Co-Owned",
}

// RegistrantDescription resolves a raw TYPE REGISTRANT code to its
// description. The code is trimmed first; blank and unassigned codes
// resolve to Unknown.
func RegistrantDescription(code string) string {
	if desc, ok := registrantTypes[strings.TrimSpace(code)]; ok {
		return desc
	}
	return Unknown
}

// Merge joins one registration against the reference table and returns the
// output projection. A model code with no reference entry, including the
// empty string, yields make and model Unknown; all other fields pass
// through unchanged. Merge never mutates its inputs, so the same
// registration and table always produce the same record.
func Merge(reg Registration, refs ReferenceTable) OutputRecord {
	makeName, modelName := Unknown, Unknown
	if entry, ok := refs[reg.ModelCode]; ok {
		makeName = entry.Make
		modelName = entry.Model
	}

	return OutputRecord{
		TailNumber:     reg.TailNumber,
		Make:           makeName,
		Model:          modelName,
		Year:           reg.Year,
		OwnerName:      reg.OwnerName,
		City:           reg.City,
		State:          reg.State,
		ModeSHex:       reg.ModeSHex,
		RegistrantType: reg.RegistrantType,
	}
}
