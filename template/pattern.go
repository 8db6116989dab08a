package template

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Field describes one field of a format.
type Field struct {
	// Name is the field name, empty for anonymous fields.
	Name string

	// Type is the type letter after the colon, empty for untyped fields.
	Type string
}

// fieldPatterns maps field types to the regexp each one captures.
var fieldPatterns = map[string]string{
	"":  `.+?`,
	"d": `[-+]?\d+`,
	"w": `\w+`,
	"l": `\pL+`,
	"S": `\S+`,
}

// Pattern is a compiled format. It is safe for concurrent use.
type Pattern struct {
	format string
	re     *regexp.Regexp
	fields []Field
}

// Compile parses a format into a Pattern.
// Returns ErrEmpty for an empty format and an error wrapping ErrParse for a
// malformed one.
func Compile(format string) (*Pattern, error) {
	if format == "" {
		return nil, ErrEmpty
	}

	var (
		expr   strings.Builder
		fields []Field
		seen   = make(map[string]bool)
	)
	expr.WriteString(`(?s)^`)

	for i := 0; i < len(format); {
		switch {
		case strings.HasPrefix(format[i:], "{{"):
			expr.WriteString(regexp.QuoteMeta("{"))
			i += 2
		case strings.HasPrefix(format[i:], "}}"):
			expr.WriteString(regexp.QuoteMeta("}"))
			i += 2
		case format[i] == '}':
			return nil, fmt.Errorf("%w: unmatched '}' at offset %d", ErrParse, i)
		case format[i] == '{':
			end := strings.IndexByte(format[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed '{' at offset %d", ErrParse, i)
			}
			field, err := parseField(format[i+1 : i+end])
			if err != nil {
				return nil, err
			}
			if field.Name != "" {
				if seen[field.Name] {
					return nil, fmt.Errorf("%w: duplicate field %q", ErrParse, field.Name)
				}
				seen[field.Name] = true
			}
			fields = append(fields, field)
			expr.WriteString("(" + fieldPatterns[field.Type] + ")")
			i += end + 1
		default:
			next := strings.IndexAny(format[i:], "{}")
			if next < 0 {
				next = len(format) - i
			}
			expr.WriteString(regexp.QuoteMeta(format[i : i+next]))
			i += next
		}
	}
	expr.WriteString(`$`)

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &Pattern{format: format, re: re, fields: fields}, nil
}

// MustCompile is like Compile but panics if the format is malformed.
func MustCompile(format string) *Pattern {
	p, err := Compile(format)
	if err != nil {
		panic(fmt.Sprintf("template: Compile(%q): %v", format, err))
	}
	return p
}

// parseField parses the inside of a {name:type} field.
func parseField(spec string) (Field, error) {
	name, typ, _ := strings.Cut(spec, ":")
	if name != "" && !isValidIdentifier(name) {
		return Field{}, fmt.Errorf("%w: invalid field name %q", ErrParse, name)
	}
	if _, ok := fieldPatterns[typ]; !ok {
		return Field{}, fmt.Errorf("%w: unknown field type %q", ErrParse, typ)
	}
	return Field{Name: name, Type: typ}, nil
}

// isValidIdentifier checks if a string is a valid field name.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		// First character cannot be a digit
		if i == 0 && ch >= '0' && ch <= '9' {
			return false
		}
		isLower := ch >= 'a' && ch <= 'z'
		isUpper := ch >= 'A' && ch <= 'Z'
		isDigit := ch >= '0' && ch <= '9'
		if !isLower && !isUpper && !isDigit && ch != '_' {
			return false
		}
	}
	return true
}

// Match returns the text captured by each field, in format order.
// Returns false if text does not match the whole format.
func (p *Pattern) Match(text string) ([]string, bool) {
	m := p.re.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

// MatchNamed returns the captures of the named fields keyed by name.
// Anonymous fields are omitted.
func (p *Pattern) MatchNamed(text string) (map[string]string, bool) {
	captures, ok := p.Match(text)
	if !ok {
		return nil, false
	}
	named := make(map[string]string)
	for i, f := range p.fields {
		if f.Name != "" {
			named[f.Name] = captures[i]
		}
	}
	return named, true
}

// Fields returns the fields of the format in order.
func (p *Pattern) Fields() []Field {
	result := make([]Field, len(p.fields))
	copy(result, p.fields)
	return result
}

// NumFields returns the number of fields in the format.
func (p *Pattern) NumFields() int {
	return len(p.fields)
}

// String returns the source format.
func (p *Pattern) String() string {
	return p.format
}

// cache holds compiled patterns for Match.
var cache = struct {
	mu       sync.RWMutex
	patterns map[string]*Pattern
}{patterns: make(map[string]*Pattern)}

// Match matches text against format, compiling the format at most once.
// The error is non-nil only when the format is malformed.
func Match(format, text string) ([]string, bool, error) {
	cache.mu.RLock()
	p, ok := cache.patterns[format]
	cache.mu.RUnlock()

	if !ok {
		var err error
		p, err = Compile(format)
		if err != nil {
			return nil, false, err
		}
		cache.mu.Lock()
		cache.patterns[format] = p
		cache.mu.Unlock()
	}

	captures, matched := p.Match(text)
	return captures, matched, nil
}
