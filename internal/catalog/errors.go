// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no detail record exists for an id.
	ErrNotFound = errors.New("map not found")

	// ErrExists is returned by CreateDetail when the id is already taken.
	ErrExists = errors.New("map already exists")

	// ErrCorrupt matches every *CorruptError via errors.Is.
	ErrCorrupt = errors.New("catalog corrupt")
)

// CorruptError reports a catalog file that exists but does not decode to
// the expected shape. It is fatal to the operation that touched the file.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("catalog corrupt: %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }
