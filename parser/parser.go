package parser

import "fmt"

// Parser converts a text fragment into a typed value.
//
// Implementations are configured once at construction and are stateless
// afterwards, so a single Parser may be shared between goroutines as long as
// any function injected into it is reentrant.
type Parser interface {
	Parse(text string) (any, error)
}

// ParseFunc adapts an ordinary function to the Parser interface.
// The Parse method of every parser is itself a ParseFunc, so parsers and
// functions can be mixed freely in subparser slots.
type ParseFunc func(text string) (any, error)

// Parse calls f(text).
func (f ParseFunc) Parse(text string) (any, error) {
	return f(text)
}

// Text is the identity parser. It is the default subparser of every
// combinator and returns its input unchanged.
var Text Parser = ParseFunc(func(text string) (any, error) {
	return text, nil
})

// Func adapts a function that cannot fail, such as strings.ToUpper or
// strings.Fields, to the Parser interface.
func Func[T any](fn func(string) T) Parser {
	return ParseFunc(func(text string) (any, error) {
		return fn(text), nil
	})
}

// As runs p on text and asserts the result to T.
// Returns an error wrapping ErrType if the result has a different type.
func As[T any](p Parser, text string) (T, error) {
	var zero T
	v, err := p.Parse(text)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, NewError("as", text, fmt.Errorf("%w: got %T, want %T", ErrType, v, zero))
	}
	return t, nil
}

// orText returns p, or Text when p is nil.
func orText(p Parser) Parser {
	if p == nil {
		return Text
	}
	return p
}
