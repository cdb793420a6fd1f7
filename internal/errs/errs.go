// Package errs defines the typed errors surfaced by ingestion,
// normalization and categorization.
package errs

import (
	"errors"
	"fmt"
)

// SourceError reports that a connector could not reach its source at all
// (file missing, API unreachable, bad credentials). It scopes the failure
// to one source so a full load can continue past it.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s unavailable: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError wraps err as a SourceError for the named source.
func NewSourceError(source string, err error) *SourceError {
	return &SourceError{Source: source, Err: err}
}

// RecordError reports that a single record failed normalization. It names
// the record and the offending field so callers never have to guess which
// row of a batch went bad. A RecordError must not block the rest of the
// batch.
type RecordError struct {
	Source   string
	RecordID string
	Field    string
	Value    string
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s record %s: failed to parse %s=%q: %v",
		e.Source, e.RecordID, e.Field, e.Value, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// NewRecordError builds a RecordError for one malformed field.
func NewRecordError(source, recordID, field, value string, err error) *RecordError {
	return &RecordError{Source: source, RecordID: recordID, Field: field, Value: value, Err: err}
}

// InvalidArgumentError reports a request rejected synchronously before any
// write happened: a categorization request with no category, or a model
// category without its confidence.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Msg
}

// NewInvalidArgument builds an InvalidArgumentError with a formatted message.
func NewInvalidArgument(format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// IsInvalidArgument reports whether err is an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var target *InvalidArgumentError
	return errors.As(err, &target)
}

// IsSourceUnavailable reports whether err is a SourceError.
func IsSourceUnavailable(err error) bool {
	var target *SourceError
	return errors.As(err, &target)
}
