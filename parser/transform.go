package parser

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Sort reorders the characters of its input.
type Sort struct {
	reverse bool
	compare func(a, b rune) int
}

// NewSort creates a sorter ordering runes by code point.
func NewSort(reverse bool) *Sort {
	return &Sort{reverse: reverse, compare: cmp.Compare[rune]}
}

// WithCompare returns a copy of the sorter using compare to order runes.
// Equal runes keep their input order.
func (p *Sort) WithCompare(compare func(a, b rune) int) *Sort {
	c := *p
	if compare == nil {
		compare = cmp.Compare[rune]
	}
	c.compare = compare
	return &c
}

// SortKey builds a rune comparison from a key function, for use with
// WithCompare.
//
//	caseless := parser.NewSort(false).WithCompare(parser.SortKey(unicode.ToLower))
func SortKey[K cmp.Ordered](key func(rune) K) func(a, b rune) int {
	return func(a, b rune) int {
		return cmp.Compare(key(a), key(b))
	}
}

// Parse returns the runes of text in sorted order as a string.
func (p *Sort) Parse(text string) (any, error) {
	runes := []rune(text)
	compare := p.compare
	if p.reverse {
		compare = func(a, b rune) int { return p.compare(b, a) }
	}
	slices.SortStableFunc(runes, compare)
	return string(runes), nil
}

// Lookup maps whole inputs to fixed values.
type Lookup struct {
	mapping map[string]any
}

// NewLookup creates a lookup parser. The mapping is copied.
func NewLookup[V any](mapping map[string]V) *Lookup {
	m := make(map[string]any, len(mapping))
	for k, v := range mapping {
		m[k] = v
	}
	return &Lookup{mapping: m}
}

// Parse returns the value stored for text. The text is matched exactly;
// wrap the lookup in a combinator or Chain if it needs trimming.
func (p *Lookup) Parse(text string) (any, error) {
	v, ok := p.mapping[text]
	if !ok {
		return nil, NewError("lookup", text, ErrKeyNotFound)
	}
	return v, nil
}

// Keys returns the lookup keys in sorted order.
func (p *Lookup) Keys() []string {
	return slices.Sorted(maps.Keys(p.mapping))
}

// Replace applies literal substring replacements one after another, each to
// the result of the previous one. Order matters when keys overlap.
type Replace struct {
	pairs *orderedmap.OrderedMap[string, string]
}

// NewReplace creates a replacer from old, new string pairs, applied in
// argument order. A repeated old string keeps its first position and its
// last replacement. Panics if given an odd number of arguments.
func NewReplace(oldnew ...string) *Replace {
	if len(oldnew)%2 == 1 {
		panic("parser: NewReplace: odd argument count")
	}
	pairs := orderedmap.New[string, string](len(oldnew) / 2)
	for i := 0; i < len(oldnew); i += 2 {
		pairs.Set(oldnew[i], oldnew[i+1])
	}
	return &Replace{pairs: pairs}
}

// NewReplaceMap creates a replacer from an ordered map. The map is copied.
func NewReplaceMap(pairs *orderedmap.OrderedMap[string, string]) *Replace {
	c := orderedmap.New[string, string]()
	if pairs != nil {
		for pair := pairs.Oldest(); pair != nil; pair = pair.Next() {
			c.Set(pair.Key, pair.Value)
		}
	}
	return &Replace{pairs: c}
}

// Parse returns text with every replacement applied.
func (p *Replace) Parse(text string) (any, error) {
	for pair := p.pairs.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == "" {
			continue
		}
		text = strings.ReplaceAll(text, pair.Key, pair.Value)
	}
	return text, nil
}

// Len returns the number of replacements.
func (p *Replace) Len() int {
	return p.pairs.Len()
}

// String describes the replacements in order, e.g. `replace["a"->"b" "b"->"c"]`.
func (p *Replace) String() string {
	var b strings.Builder
	b.WriteString("replace[")
	for pair := p.pairs.Oldest(); pair != nil; pair = pair.Next() {
		if pair != p.pairs.Oldest() {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%q->%q", pair.Key, pair.Value)
	}
	b.WriteByte(']')
	return b.String()
}
