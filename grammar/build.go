package grammar

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/randalmurphal/aocp/parser"
)

// Builder turns nodes into parsers, tracking the path of the node being
// built for error messages.
type Builder struct {
	path []string
}

// Build constructs the parser described by n.
func Build(n *Node) (parser.Parser, error) {
	b := &Builder{}
	return b.Build(n, "$")
}

// Build constructs the child node n found at elem (a field name or index)
// of the current node.
func (b *Builder) Build(n *Node, elem string) (parser.Parser, error) {
	b.path = append(b.path, elem)
	defer func() { b.path = b.path[:len(b.path)-1] }()

	if n == nil {
		return nil, b.errorf("%w: missing node", ErrInvalid)
	}
	factory, ok := lookupFactory(n.Type)
	if !ok {
		return nil, b.errorf("%w: %q", ErrUnknownType, n.Type)
	}

	p, err := factory(b, n)
	if err != nil {
		var pathErr *PathError
		if errors.As(err, &pathErr) {
			return nil, err
		}
		return nil, b.wrap(err)
	}
	slog.Debug("grammar node built", slog.String("path", b.Path()), slog.String("type", n.Type))
	return p, nil
}

// Path returns the dotted path of the node being built, e.g. "$.fields.1".
func (b *Builder) Path() string {
	return strings.Join(b.path, ".")
}

// PathError reports where in a grammar a build failed.
type PathError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("grammar %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *PathError) Unwrap() error {
	return e.Err
}

func (b *Builder) wrap(err error) error {
	return &PathError{Path: b.Path(), Err: err}
}

func (b *Builder) errorf(format string, args ...any) error {
	return b.wrap(fmt.Errorf(format, args...))
}

// buildAll builds a list of child nodes found under field.
func (b *Builder) buildAll(nodes []*Node, field string) ([]parser.Parser, error) {
	ps := make([]parser.Parser, len(nodes))
	for i, n := range nodes {
		p, err := b.Build(n, fmt.Sprintf("%s.%d", field, i))
		if err != nil {
			return nil, err
		}
		ps[i] = p
	}
	return ps, nil
}

// optional builds n if present and returns nil otherwise.
func (b *Builder) optional(n *Node, field string) (parser.Parser, error) {
	if n == nil {
		return nil, nil
	}
	return b.Build(n, field)
}

// sequenceOptions translates the splitter, limit and subparser fields of a
// list, set or tuple node.
func (b *Builder) sequenceOptions(n *Node) ([]parser.Option, error) {
	if n.Subparser != nil && len(n.Fields) > 0 {
		return nil, fmt.Errorf("%w: subparser and fields are mutually exclusive", ErrInvalid)
	}

	var opts []parser.Option
	if len(n.Splitter) > 0 {
		opts = append(opts, parser.WithSplitter(n.Splitter...))
	}
	if n.Limit != nil {
		opts = append(opts, parser.WithLimit(*n.Limit))
	}

	switch {
	case len(n.Fields) > 0:
		fields, err := b.buildAll(n.Fields, "fields")
		if err != nil {
			return nil, err
		}
		opts = append(opts, parser.WithFields(fields...))
	case n.Subparser != nil:
		sub, err := b.Build(n.Subparser, "subparser")
		if err != nil {
			return nil, err
		}
		opts = append(opts, parser.WithEach(sub))
	}
	return opts, nil
}
