// =============================================================================
// SDE Types Converter - Error Types
// =============================================================================
//
// This file defines the error taxonomy shared by every pipeline stage. Each
// failure is a *ConversionError whose Kind is one of the sentinels below, so
// callers can test the stage with errors.Is and still reach the underlying
// cause with errors.As.
//
//   errors.Is(err, types.ErrEntryNotFound)
//   types.KindOf(err) == types.ErrSchema
//
// =============================================================================

package types

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR KINDS
// =============================================================================
// Every failure in the pipeline is fatal. The kind tells the operator which
// stage failed; the wrapped cause carries the detail.

var (
	// ErrIO is a file open, read or write failure.
	ErrIO = errors.New("io error")

	// ErrArchive is an invalid or unreadable zip container.
	ErrArchive = errors.New("archive error")

	// ErrEntryNotFound means the required entry is absent or is a directory.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrDecode means the entry is not valid UTF-8.
	ErrDecode = errors.New("decode error")

	// ErrParse is a YAML syntax error.
	ErrParse = errors.New("parse error")

	// ErrSchema means a record is missing a required field or has the
	// wrong shape.
	ErrSchema = errors.New("schema error")

	// ErrKeyFormat means a retained record's key is not an integer.
	ErrKeyFormat = errors.New("key format error")

	// ErrSerialize is an output encoding failure.
	ErrSerialize = errors.New("serialize error")
)

// ConversionError is a classified pipeline failure.
type ConversionError struct {
	// Kind is one of the Err* sentinels above.
	Kind error

	// Detail names the subject of the failure (a path, entry or key).
	Detail string

	// Err is the underlying cause, if any.
	Err error
}

// NewError returns a ConversionError of the given kind.
func NewError(kind error, detail string, err error) error {
	return &ConversionError{Kind: kind, Detail: detail, Err: err}
}

func (e *ConversionError) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the sentinel kind of err, or nil if err is not a
// ConversionError.
func KindOf(err error) error {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return nil
}
