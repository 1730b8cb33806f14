// Package errs defines the sentinel errors shared by the pgtemporal
// packages.
//
// Errors returned by codecs wrap one of these sentinels with %w plus the
// offending wire text, so callers can classify failures with errors.Is
// while still getting diagnostics:
//
//	_, err := dec.Decode(data)
//	if errors.Is(err, errs.ErrOutOfRange) { ... }
//
// ErrTooSmall and ErrTooLarge refine ErrOutOfRange: errors.Is reports
// true for the refinement and for ErrOutOfRange itself.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrParse reports wire bytes that do not match the expected layout
	// for the active style.
	ErrParse = errors.New("cannot parse value")

	// ErrOutOfRange reports a value that parsed correctly but falls
	// outside the representable range of the host type.
	ErrOutOfRange = errors.New("value out of range")

	// ErrTooSmall refines ErrOutOfRange: the value lies before the
	// minimum representable instant.
	ErrTooSmall = fmt.Errorf("%w (too small)", ErrOutOfRange)

	// ErrTooLarge refines ErrOutOfRange: the value lies after the
	// maximum representable instant.
	ErrTooLarge = fmt.Errorf("%w (too large)", ErrOutOfRange)

	// ErrNotImplemented reports a recognized but unsupported
	// connection-negotiated style. It indicates a missing feature, not
	// bad data.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidStyle reports a DateStyle or IntervalStyle parameter
	// value outside the recognized enumeration. It is raised at decoder
	// construction, before any data is parsed.
	ErrInvalidStyle = errors.New("invalid style parameter")
)
