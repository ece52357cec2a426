// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package selection

import (
	"errors"
	"fmt"
)

// Selection errors
var (
	// ErrEmptyInput indicates the candidate list was empty before filtering.
	// The caller must fetch candidates again.
	ErrEmptyInput = errors.New("no candidates provided for selection")

	// ErrNoEligibleItems indicates every candidate was excluded.
	// The caller may relax its exclusions or report that nothing new is available.
	ErrNoEligibleItems = errors.New("no candidates available after exclusion")

	// ErrEntropySource indicates the secure random source failed.
	ErrEntropySource = errors.New("entropy source unavailable")

	// ErrUnknownDigest indicates an unsupported digest name.
	ErrUnknownDigest = errors.New("unknown entropy digest")
)

// EntropySourceError describes a failed entropy draw.
// It matches ErrEntropySource with errors.Is and unwraps to the cause.
type EntropySourceError struct {
	// Op is the step that failed, e.g. "read" or "digest".
	Op string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *EntropySourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrEntropySource, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", ErrEntropySource, e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *EntropySourceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrEntropySource.
func (e *EntropySourceError) Is(target error) bool {
	return target == ErrEntropySource
}

// entropyError wraps err unless it already is an *EntropySourceError.
func entropyError(op string, err error) error {
	var srcErr *EntropySourceError
	if errors.As(err, &srcErr) {
		return err
	}
	return &EntropySourceError{Op: op, Err: err}
}
