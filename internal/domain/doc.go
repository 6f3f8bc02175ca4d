// Package domain models FAA aircraft registration data.
//
// # Data Source
//
// Records originate from the FAA Releasable Aircraft Database, a zip
// archive published at https://registry.faa.gov/database/ReleasableAircraft.zip
// and refreshed each federal business day. The archive contains several
// comma-separated tables; this tool reads exactly two:
//
//	MASTER.txt   the registration roster, one row per registered aircraft
//	ACFTREF.txt  the aircraft reference table, one row per make/model code
//
// Both files carry a header row, are encoded as UTF-8 with a byte order
// mark, and pad most fields with trailing spaces to a fixed column width.
// Every value must be trimmed before use.
//
// # FAA Data Conventions
//
// N-Number ("N-NUMBER"):
//
//	The registration mark without the leading "N" country prefix, e.g.
//	"12345" for the aircraft commonly written N12345. Emitted as stored.
//
// Aircraft model code ("MFR MDL CODE" / "CODE"):
//
//	A seven-character code: positions 1-3 identify the manufacturer,
//	4-5 the model, 6-7 the series. MASTER.txt rows join to ACFTREF.txt
//	through this code. Codes missing from the reference table are a
//	normal condition (new or retired codes drift between snapshots) and
//	resolve to make/model "Unknown".
//
// Mode S hex ("MODE S CODE HEX"):
//
//	The aircraft's ICAO 24-bit transponder address as six hex digits.
//	US allocations start with "A". This is the key ADS-B receivers report,
//	which makes the emitted table usable as an over-the-air lookup.
//
// Registrant type ("TYPE REGISTRANT"):
//
//	A single-digit code for the kind of registrant. The FAA assigns
//	1 Individual, 2 Partnership, 3 Corporation, 4 Co-Owned, 5 Government,
//	7 LLC, 8 Non Citizen Corporation, 9 Non Citizen Co-Owned; code 6 is
//	unassigned. Blank or unassigned codes resolve to "Unknown".
//
// Year of manufacture ("YEAR MFR"):
//
//	A four-digit year, frequently blank for older airframes. Passed
//	through as text; no numeric interpretation is applied.
package domain
