package faa

import "fmt"

// ParseError reports a source table that could not be parsed: the file is
// unreadable, has no header row, or lacks a required column. Malformed
// field values are not a parse failure; rows always pass through.
type ParseError struct {
	Source string // path of the offending table
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DownloadError reports a transfer that did not complete: a transport
// failure, or a response with a non-success status. StatusCode is zero
// when no response was received.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("download %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// MissingEntryError reports a readable archive that lacks one of the
// required table entries. Kept distinct from a generic archive error so
// operators can tell a wrong or repackaged archive from a failed transfer.
type MissingEntryError struct {
	Entry   string
	Archive string
}

func (e *MissingEntryError) Error() string {
	return fmt.Sprintf("archive %s: missing required entry %q", e.Archive, e.Entry)
}
