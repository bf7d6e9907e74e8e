// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import "fmt"

// Reason classifies why no tree could be extracted from a source.
type Reason string

const (
	// ReasonNoPayload means the outline container holds none of the
	// expected markup files.
	ReasonNoPayload Reason = "no-payload"

	// ReasonEmptyOutline means the markup has no elements or no root.
	ReasonEmptyOutline Reason = "empty-outline"

	// ReasonMalformed means the input could not be decoded at all
	// (bad zip, bad XML, unreadable file).
	ReasonMalformed Reason = "malformed-input"
)

// Error reports a per-item parse failure. Batch callers branch on Reason
// (or errors.Is against the sentinels below) to count the failure.
type Error struct {
	Reason Reason
	Path   string
	Err    error
}

func (e *Error) Error() string {
	msg := string(e.Reason)
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Reason, so the sentinels work with
// errors.Is regardless of path or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}

// Sentinels for errors.Is.
var (
	ErrNoPayload    = &Error{Reason: ReasonNoPayload}
	ErrEmptyOutline = &Error{Reason: ReasonEmptyOutline}
	ErrMalformed    = &Error{Reason: ReasonMalformed}
)

func newError(reason Reason, path string, format string, args ...any) *Error {
	var err error
	if format != "" {
		err = fmt.Errorf(format, args...)
	}
	return &Error{Reason: reason, Path: path, Err: err}
}
