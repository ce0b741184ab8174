// Package parsererror defines the failure taxonomy of the cleaning pipeline.
//
// File- and schema-level failures are fatal and wrap one of the sentinels below so
// callers can branch with errors.Is. Field-level ParseError values never escape the
// cleaner; they are counted and logged.
package parsererror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputNotFound marks a raw file that does not exist or cannot be read.
	ErrInputNotFound = errors.New("input not found")
	// ErrSchemaMismatch marks an input lacking one or more required columns.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrOutputWrite marks a destination that could not be written.
	ErrOutputWrite = errors.New("output write failure")
)

// InputNotFoundError reports an unreadable input file.
type InputNotFoundError struct {
	FilePath string
	Err      error
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input file '%s' not found or unreadable: %v", e.FilePath, e.Err)
}

func (e *InputNotFoundError) Unwrap() []error {
	return []error{ErrInputNotFound, e.Err}
}

// SchemaMismatchError lists the required columns absent from the header.
type SchemaMismatchError struct {
	FilePath string
	Missing  []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch in '%s': missing required columns [%s]",
		e.FilePath, strings.Join(e.Missing, ", "))
}

func (e *SchemaMismatchError) Unwrap() error {
	return ErrSchemaMismatch
}

// OutputWriteError reports a failure to produce the output file.
type OutputWriteError struct {
	FilePath string
	Err      error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("failed to write output '%s': %v", e.FilePath, e.Err)
}

func (e *OutputWriteError) Unwrap() []error {
	return []error{ErrOutputWrite, e.Err}
}

// ParseError is a row-local failure to interpret a single cell.
type ParseError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: failed to parse %s='%s': %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
