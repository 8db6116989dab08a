package parser

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Sentinel errors for parse operations.
var (
	// ErrNoInteger is returned when no digit run exists in the input.
	ErrNoInteger = errors.New("no integer found")

	// ErrNotBoolean is returned when the input matches neither boolean token.
	ErrNotBoolean = errors.New("not a boolean")

	// ErrKeyNotFound is returned when a lookup table has no entry for the input.
	ErrKeyNotFound = errors.New("key not found")

	// ErrArity is returned when the number of decomposed pieces does not match
	// the number of positional subparsers, pair pieces or record fields.
	ErrArity = errors.New("arity mismatch")

	// ErrFormatMismatch is returned when a tuple format does not match the input.
	ErrFormatMismatch = errors.New("format mismatch")

	// ErrNoDelimiter is returned by DecideSplitter when none of the priority
	// delimiters occur in the text. Decomposition treats it as "split into
	// characters".
	ErrNoDelimiter = errors.New("no delimiter found")

	// ErrUnhashable is returned when a value cannot be used as a map key.
	ErrUnhashable = errors.New("value is not hashable")

	// ErrChainInput is returned when a chain stage produces a non-string value
	// that would have to feed a following stage.
	ErrChainInput = errors.New("chain stage produced non-text value")

	// ErrType is returned when a value has an unexpected Go type.
	ErrType = errors.New("unexpected value type")

	// ErrConfig is returned when a parser is constructed with conflicting options.
	ErrConfig = errors.New("invalid parser configuration")
)

// previewLen bounds how much of the input is quoted in error messages.
const previewLen = 40

// Error wraps a parse failure with the parser that raised it and the input
// it was given.
type Error struct {
	Op    string // Parser kind ("int", "tuple", "dict[2]")
	Input string // Input text the parser received
	Err   error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, preview(e.Input), e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new parse error.
func NewError(op, input string, err error) *Error {
	return &Error{Op: op, Input: input, Err: err}
}

// preview shortens s for error messages. Inputs are usually single lines,
// but a whole puzzle file can reach a top-level parser.
func preview(s string) string {
	if len(s) <= previewLen {
		return s
	}
	cut := previewLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
