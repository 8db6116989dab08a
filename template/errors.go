package template

import "errors"

// Sentinel errors for format compilation.
var (
	// ErrEmpty is returned when the format string is empty.
	ErrEmpty = errors.New("format is empty")

	// ErrParse is returned when the format is malformed: an unbalanced brace,
	// an invalid field name or an unknown field type.
	ErrParse = errors.New("format parse error")
)
