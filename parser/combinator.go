package parser

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/aocp/template"
)

// List splits its input and parses the pieces into a []any, keeping order
// and duplicates.
type List struct {
	opts options
}

// NewList creates a list parser.
func NewList(opts ...Option) *List {
	return &List{opts: newOptions(opts)}
}

// Parse returns a []any of parsed pieces.
func (p *List) Parse(text string) (any, error) {
	return collect(Decompose(strings.TrimSpace(text), p.opts.delims, p.opts.sub, p.opts.limit))
}

// Set splits its input and parses the pieces into a *HashSet. Order and
// repeats are discarded.
type Set struct {
	opts options
}

// NewSet creates a set parser.
func NewSet(opts ...Option) *Set {
	return &Set{opts: newOptions(opts)}
}

// Parse returns a *HashSet of parsed pieces.
func (p *Set) Parse(text string) (any, error) {
	set := NewHashSet()
	for v, err := range Decompose(strings.TrimSpace(text), p.opts.delims, p.opts.sub, p.opts.limit) {
		if err != nil {
			return nil, err
		}
		set.add(v)
	}
	return set, nil
}

// Tuple parses a fixed number of fields, either by splitting the input or
// by matching it against a format.
type Tuple struct {
	opts    options
	pattern *template.Pattern
}

// NewTuple creates a tuple parser.
//
// Returns an error wrapping ErrConfig if both a format and a splitter are
// set, the format's compile error if it is malformed, and ErrArity if the
// format's field count differs from the number of positional subparsers.
func NewTuple(opts ...Option) (*Tuple, error) {
	t := &Tuple{opts: newOptions(opts)}
	if t.opts.format == "" {
		return t, nil
	}
	if len(t.opts.delims) > 0 {
		return nil, fmt.Errorf("%w: tuple format and splitter are mutually exclusive", ErrConfig)
	}

	pattern, err := template.Compile(t.opts.format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if t.opts.sub.IsPositional() && t.opts.sub.Len() != pattern.NumFields() {
		return nil, fmt.Errorf("%w: format %q has %d fields, %d subparsers given",
			ErrArity, t.opts.format, pattern.NumFields(), t.opts.sub.Len())
	}
	t.pattern = pattern
	return t, nil
}

// Parse returns a []any of fields, or the record built from them.
func (p *Tuple) Parse(text string) (any, error) {
	text = strings.TrimSpace(text)

	var (
		fields []any
		err    error
	)
	if p.pattern != nil {
		fields, err = p.parseFormat(text)
	} else {
		fields, err = collect(Decompose(text, p.opts.delims, p.opts.sub, p.opts.limit))
	}
	if err != nil {
		return nil, err
	}

	if p.opts.record == nil {
		return fields, nil
	}
	v, err := p.opts.record(fields...)
	if err != nil {
		return nil, NewError("record", text, err)
	}
	return v, nil
}

// parseFormat extracts the format captures and parses each one.
func (p *Tuple) parseFormat(text string) ([]any, error) {
	captures, ok := p.pattern.Match(text)
	if !ok {
		return nil, NewError("tuple", text,
			fmt.Errorf("%w: %q", ErrFormatMismatch, p.pattern.String()))
	}

	fields := make([]any, len(captures))
	for i, c := range captures {
		sub := p.opts.sub.each
		if p.opts.sub.IsPositional() {
			sub = p.opts.sub.positional[i]
		}
		v, err := orText(sub).Parse(strings.TrimSpace(c))
		if err != nil {
			return nil, err
		}
		fields[i] = v
	}
	return fields, nil
}

// Dict splits its input into entries and each entry into a key and a value.
type Dict struct {
	entryDelims []string
	pair        *Tuple
}

// DictOption configures a Dict.
type DictOption func(*dictOptions)

type dictOptions struct {
	entryDelims []string
	pairDelims  []string
	key         Parser
	value       Parser
}

// WithKey sets the parser for keys. Defaults to Text.
func WithKey(p Parser) DictOption {
	return func(o *dictOptions) { o.key = p }
}

// WithValue sets the parser for values. Defaults to Text.
func WithValue(p Parser) DictOption {
	return func(o *dictOptions) { o.value = p }
}

// WithEntrySplitter sets the delimiters between entries. Guessed per input
// when unset.
func WithEntrySplitter(delims ...string) DictOption {
	return func(o *dictOptions) { o.entryDelims = append([]string(nil), delims...) }
}

// WithPairSplitter sets the delimiters between a key and its value. Guessed
// per entry when unset.
func WithPairSplitter(delims ...string) DictOption {
	return func(o *dictOptions) { o.pairDelims = append([]string(nil), delims...) }
}

// NewDict creates a mapping parser.
func NewDict(opts ...DictOption) *Dict {
	var o dictOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Dict{
		entryDelims: o.entryDelims,
		pair: &Tuple{opts: options{
			delims: o.pairDelims,
			sub:    Positional(o.key, o.value),
			limit:  AutoLimit,
		}},
	}
}

// Parse returns a map[any]any. A repeated key keeps its last value. Keys are
// compared by value, so two equal sets parsed from different entries are the
// same key.
func (p *Dict) Parse(text string) (any, error) {
	result := make(map[any]any)
	keys := make(map[string]any) // identity -> key stored in result
	for entry, err := range Decompose(strings.TrimSpace(text), p.entryDelims, Each(Text), AutoLimit) {
		if err != nil {
			return nil, err
		}
		kv, err := p.pair.Parse(entry.(string))
		if err != nil {
			return nil, err
		}
		pair := kv.([]any)
		if !hashable(pair[0]) {
			return nil, NewError("dict", entry.(string),
				fmt.Errorf("%w: key of type %T", ErrUnhashable, pair[0]))
		}
		key, id := pair[0], identity(pair[0])
		if seen, ok := keys[id]; ok {
			key = seen
		} else {
			keys[id] = key
		}
		result[key] = pair[1]
	}
	return result, nil
}
