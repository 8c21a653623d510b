// Package parsererror defines the typed errors the catalog parsers
// report, so callers can distinguish unreadable files from files that
// parsed but yielded nothing usable.
package parsererror

import "fmt"

// UnsupportedFormatError means the input file is not one of the catalog
// formats this tool can read.
type UnsupportedFormatError struct {
	FilePath  string
	Extension string
	MIMEType  string
}

func (e *UnsupportedFormatError) Error() string {
	if e.MIMEType != "" {
		return fmt.Sprintf("unsupported catalog format for '%s' (extension %q, detected type %q)",
			e.FilePath, e.Extension, e.MIMEType)
	}
	return fmt.Sprintf("unsupported catalog format for '%s' (extension %q)", e.FilePath, e.Extension)
}

// ParseError represents a failure while reading a catalog file.
type ParseError struct {
	Parser   string
	FilePath string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse '%s': %v", e.Parser, e.FilePath, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// HeaderDetectionError means no plausible header row was found within
// the scanned range of a file.
type HeaderDetectionError struct {
	FilePath    string
	RowsScanned int
}

func (e *HeaderDetectionError) Error() string {
	return fmt.Sprintf("no header row detected in '%s' within the first %d rows",
		e.FilePath, e.RowsScanned)
}

// MappingError means source headers could not be mapped onto the target
// schema well enough to produce records.
type MappingError struct {
	FilePath string
	Missing  []string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("column mapping for '%s' left required fields unmapped: %v",
		e.FilePath, e.Missing)
}

// ExtractionError means a file parsed but a required piece of data
// could not be pulled out of it.
type ExtractionError struct {
	FilePath string
	Field    string
	Reason   string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed in '%s' for field '%s': %s",
		e.FilePath, e.Field, e.Reason)
}

// ValidationError represents a validation failure on an input file.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}
