// Package numeric implements the width-bounded integer core shared by
// every calculator operation: literal parsing, two's-complement
// encode/decode, sign extension, and overflow-wrapping arithmetic.
//
// All values are carried as an unsigned magnitude reduced modulo 2^width;
// the signed view is a reinterpretation, never a second representation.
package numeric

import (
	"errors"
	"fmt"
)

// Kind classifies an engine failure.
type Kind string

// Failure kinds. Every error returned by the engine carries exactly one.
const (
	// KindParse marks input that is not a valid literal in the expected
	// base, or an expression with invalid syntax.
	KindParse Kind = "parse_error"

	// KindRange marks a bit index, width, or range argument outside the
	// valid domain for the requested width.
	KindRange Kind = "range_error"

	// KindDomain marks well-formed input that violates a mathematical
	// precondition (division by zero, non-power-of-two boundary, ...).
	KindDomain Kind = "domain_error"
)

// Error is a tagged engine failure. A failing operation returns an
// *Error and no partial result.
type Error struct {
	kind Kind
	msg  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return string(e.kind) + ": " + e.msg
}

// Kind returns the failure classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// ParseErrorf creates a KindParse error.
func ParseErrorf(format string, args ...any) error {
	return &Error{kind: KindParse, msg: fmt.Sprintf(format, args...)}
}

// RangeErrorf creates a KindRange error.
func RangeErrorf(format string, args ...any) error {
	return &Error{kind: KindRange, msg: fmt.Sprintf(format, args...)}
}

// DomainErrorf creates a KindDomain error.
func DomainErrorf(format string, args ...any) error {
	return &Error{kind: KindDomain, msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an engine *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == kind
}
