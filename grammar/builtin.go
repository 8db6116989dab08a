package grammar

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/randalmurphal/aocp/parser"
)

func init() {
	Register("text", func(*Builder, *Node) (parser.Parser, error) {
		return parser.Text, nil
	})
	Register("int", buildInt)
	Register("intlist", buildIntList)
	Register("bool", func(_ *Builder, n *Node) (parser.Parser, error) {
		return parser.NewBool(n.TrueToken, n.FalseToken), nil
	})
	Register("custom", buildCustom)
	Register("sort", buildSort)
	Register("lookup", buildLookup)
	Register("replace", buildReplace)
	Register("chain", buildChain)
	Register("list", buildList)
	Register("set", buildSet)
	Register("tuple", buildTuple)
	Register("dict", buildDict)

	for name, fn := range defaultFuncs() {
		RegisterFunc(name, fn)
	}
}

// defaultFuncs returns the built-in functions for custom nodes.
func defaultFuncs() map[string]parser.ParseFunc {
	return map[string]parser.ParseFunc{
		"upper":   parser.Func(strings.ToUpper).Parse,
		"lower":   parser.Func(strings.ToLower).Parse,
		"trim":    parser.Func(strings.TrimSpace).Parse,
		"fields":  parser.Func(strings.Fields).Parse,
		"len":     parser.Func(utf8.RuneCountInString).Parse,
		"reverse": parser.Func(reverse).Parse,
		"runes":   parser.Func(runes).Parse,
	}
}

// reverse returns s with its characters in reverse order.
func reverse(s string) string {
	r := []rune(s)
	slices.Reverse(r)
	return string(r)
}

// runes splits s into one string per character.
func runes(s string) []string {
	return lo.Map([]rune(s), func(r rune, _ int) string { return string(r) })
}

func buildInt(_ *Builder, n *Node) (parser.Parser, error) {
	if !parser.ValidBase(n.Base) {
		return nil, fmt.Errorf("%w: base %d out of range 2..36", ErrInvalid, n.Base)
	}
	return parser.NewInt(n.Base), nil
}

func buildIntList(_ *Builder, n *Node) (parser.Parser, error) {
	if !parser.ValidBase(n.Base) {
		return nil, fmt.Errorf("%w: base %d out of range 2..36", ErrInvalid, n.Base)
	}
	return parser.NewIntList(n.Base), nil
}

func buildCustom(_ *Builder, n *Node) (parser.Parser, error) {
	if n.Func == "" {
		return nil, fmt.Errorf("%w: custom node needs func", ErrInvalid)
	}
	fn, ok := lookupFunc(n.Func)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunc, n.Func)
	}
	return parser.Custom(fn), nil
}

func buildSort(_ *Builder, n *Node) (parser.Parser, error) {
	s := parser.NewSort(n.Reverse)
	switch n.Order {
	case "", "codepoint":
		return s, nil
	case "fold":
		return s.WithCompare(parser.SortKey(unicode.ToLower)), nil
	}
	return nil, fmt.Errorf("%w: unknown sort order %q", ErrInvalid, n.Order)
}

func buildLookup(_ *Builder, n *Node) (parser.Parser, error) {
	if n.Mapping.Len() == 0 {
		return nil, fmt.Errorf("%w: lookup node needs mapping", ErrInvalid)
	}
	return parser.NewLookup(n.Mapping.Map()), nil
}

func buildReplace(_ *Builder, n *Node) (parser.Parser, error) {
	pairs, err := n.Mapping.Strings()
	if err != nil {
		return nil, err
	}
	return parser.NewReplaceMap(pairs), nil
}

func buildChain(b *Builder, n *Node) (parser.Parser, error) {
	stages, err := b.buildAll(n.Stages, "stages")
	if err != nil {
		return nil, err
	}
	return parser.NewChain(stages...), nil
}

func buildList(b *Builder, n *Node) (parser.Parser, error) {
	opts, err := b.sequenceOptions(n)
	if err != nil {
		return nil, err
	}
	return parser.NewList(opts...), nil
}

func buildSet(b *Builder, n *Node) (parser.Parser, error) {
	opts, err := b.sequenceOptions(n)
	if err != nil {
		return nil, err
	}
	return parser.NewSet(opts...), nil
}

func buildTuple(b *Builder, n *Node) (parser.Parser, error) {
	opts, err := b.sequenceOptions(n)
	if err != nil {
		return nil, err
	}
	if n.Format != "" {
		opts = append(opts, parser.WithFormat(n.Format))
	}
	if n.Record != "" {
		c, ok := lookupRecord(n.Record)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRecord, n.Record)
		}
		opts = append(opts, parser.WithRecord(c))
	}
	return parser.NewTuple(opts...)
}

func buildDict(b *Builder, n *Node) (parser.Parser, error) {
	key, err := b.optional(n.Key, "key")
	if err != nil {
		return nil, err
	}
	value, err := b.optional(n.Value, "value")
	if err != nil {
		return nil, err
	}

	opts := []parser.DictOption{parser.WithKey(key), parser.WithValue(value)}
	if len(n.EntrySplitter) > 0 {
		opts = append(opts, parser.WithEntrySplitter(n.EntrySplitter...))
	}
	if len(n.PairSplitter) > 0 {
		opts = append(opts, parser.WithPairSplitter(n.PairSplitter...))
	}
	return parser.NewDict(opts...), nil
}
