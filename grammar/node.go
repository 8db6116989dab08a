package grammar

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Node describes one parser in a grammar file. Which fields apply depends on
// Type; the rest are ignored.
type Node struct {
	// Type selects the parser: text, int, intlist, bool, custom, sort,
	// lookup, replace, chain, list, set, tuple or dict.
	Type string `json:"type" yaml:"type" toml:"type"`

	// Base is the numeric base for int and intlist (default 10).
	Base int `json:"base,omitempty" yaml:"base,omitempty" toml:"base,omitempty"`

	// TrueToken and FalseToken are the bool tokens (default "1" and "0").
	TrueToken  string `json:"true_token,omitempty" yaml:"true_token,omitempty" toml:"true_token,omitempty"`
	FalseToken string `json:"false_token,omitempty" yaml:"false_token,omitempty" toml:"false_token,omitempty"`

	// Mapping is the lookup table or the ordered replacement list.
	Mapping *Mapping `json:"mapping,omitempty" yaml:"mapping,omitempty" toml:"mapping,omitempty"`

	// Func names a registered function for custom nodes.
	Func string `json:"func,omitempty" yaml:"func,omitempty" toml:"func,omitempty"`

	// Reverse and Order configure sort nodes. Order is "codepoint" (default)
	// or "fold" for case-insensitive ordering.
	Reverse bool   `json:"reverse,omitempty" yaml:"reverse,omitempty" toml:"reverse,omitempty"`
	Order   string `json:"order,omitempty" yaml:"order,omitempty" toml:"order,omitempty" jsonschema:"enum=codepoint,enum=fold"`

	// Splitter, Limit, Subparser and Fields configure list, set and tuple.
	Splitter  Splitter `json:"splitter,omitempty" yaml:"splitter,omitempty" toml:"splitter,omitempty"`
	Limit     *int     `json:"limit,omitempty" yaml:"limit,omitempty" toml:"limit,omitempty"`
	Subparser *Node    `json:"subparser,omitempty" yaml:"subparser,omitempty" toml:"subparser,omitempty"`
	Fields    []*Node  `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields,omitempty"`

	// Format and Record are tuple-only.
	Format string `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`
	Record string `json:"record,omitempty" yaml:"record,omitempty" toml:"record,omitempty"`

	// Stages lists chain stages in order.
	Stages []*Node `json:"stages,omitempty" yaml:"stages,omitempty" toml:"stages,omitempty"`

	// Key, Value, EntrySplitter and PairSplitter configure dict nodes.
	Key           *Node    `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	Value         *Node    `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	EntrySplitter Splitter `json:"entry_splitter,omitempty" yaml:"entry_splitter,omitempty" toml:"entry_splitter,omitempty"`
	PairSplitter  Splitter `json:"pair_splitter,omitempty" yaml:"pair_splitter,omitempty" toml:"pair_splitter,omitempty"`
}

// Splitter is a delimiter list written either as a single string or as a
// list of interchangeable strings.
type Splitter []string

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (s *Splitter) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*s = Splitter{value.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	}
	return fmt.Errorf("%w: splitter must be a string or a list of strings (line %d)", ErrInvalid, value.Line)
}

// UnmarshalJSON accepts a string or an array of strings.
func (s *Splitter) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = Splitter{one}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("%w: splitter must be a string or a list of strings", ErrInvalid)
	}
	*s = list
	return nil
}

// UnmarshalTOML accepts a string or an array of strings.
func (s *Splitter) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		*s = Splitter{v}
		return nil
	case []any:
		list := make([]string, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return fmt.Errorf("%w: splitter item %d is %T, want string", ErrInvalid, i, item)
			}
			list[i] = str
		}
		*s = list
		return nil
	}
	return fmt.Errorf("%w: splitter must be a string or a list of strings", ErrInvalid)
}

// JSONSchema describes the string-or-list form.
func (Splitter) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
		Description: "delimiter or list of interchangeable delimiters",
	}
}

// Mapping is an ordered string-keyed table. It is written either as an
// object or as a list of [key, value] pairs; the pair form keeps order in
// formats whose tables are unordered (TOML tables are read in key order).
type Mapping struct {
	pairs *orderedmap.OrderedMap[string, any]
}

// NewMapping creates a mapping from alternating keys and values.
func NewMapping(kv ...any) *Mapping {
	m := &Mapping{pairs: orderedmap.New[string, any]()}
	for i := 0; i+1 < len(kv); i += 2 {
		m.pairs.Set(fmt.Sprint(kv[i]), normalize(kv[i+1]))
	}
	return m
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil || m.pairs == nil {
		return 0
	}
	return m.pairs.Len()
}

// Map returns the entries as a plain map.
func (m *Mapping) Map() map[string]any {
	out := make(map[string]any, m.Len())
	if m.Len() == 0 {
		return out
	}
	for pair := m.pairs.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// Strings returns the entries in order, failing if a value is not a string.
func (m *Mapping) Strings() (*orderedmap.OrderedMap[string, string], error) {
	out := orderedmap.New[string, string]()
	if m.Len() == 0 {
		return out, nil
	}
	for pair := m.pairs.Oldest(); pair != nil; pair = pair.Next() {
		s, ok := pair.Value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: mapping value for %q is %T, want string", ErrInvalid, pair.Key, pair.Value)
		}
		out.Set(pair.Key, s)
	}
	return out, nil
}

func (m *Mapping) set(key string, value any) {
	if m.pairs == nil {
		m.pairs = orderedmap.New[string, any]()
	}
	m.pairs.Set(key, normalize(value))
}

// UnmarshalYAML accepts a mapping node or a sequence of two-item sequences.
func (m *Mapping) UnmarshalYAML(value *yaml.Node) error {
	m.pairs = orderedmap.New[string, any]()
	switch value.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			var v any
			if err := value.Content[i+1].Decode(&v); err != nil {
				return err
			}
			m.set(value.Content[i].Value, v)
		}
		return nil
	case yaml.SequenceNode:
		for _, item := range value.Content {
			if item.Kind != yaml.SequenceNode || len(item.Content) != 2 {
				return fmt.Errorf("%w: mapping pair must have two items (line %d)", ErrInvalid, item.Line)
			}
			var v any
			if err := item.Content[1].Decode(&v); err != nil {
				return err
			}
			m.set(item.Content[0].Value, v)
		}
		return nil
	}
	return fmt.Errorf("%w: mapping must be an object or a list of pairs (line %d)", ErrInvalid, value.Line)
}

// UnmarshalJSON accepts an object, keeping key order, or an array of pairs.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	om := orderedmap.New[string, any]()
	if err := om.UnmarshalJSON(data); err == nil {
		m.pairs = orderedmap.New[string, any]()
		for pair := om.Oldest(); pair != nil; pair = pair.Next() {
			m.set(pair.Key, pair.Value)
		}
		return nil
	}

	var list [][]any
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("%w: mapping must be an object or a list of pairs", ErrInvalid)
	}
	return m.fromPairs(list)
}

// UnmarshalTOML accepts a table, read in sorted key order, or an array of
// pairs.
func (m *Mapping) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case map[string]any:
		m.pairs = orderedmap.New[string, any]()
		for _, k := range slices.Sorted(maps.Keys(v)) {
			m.set(k, v[k])
		}
		return nil
	case []any:
		list := make([][]any, len(v))
		for i, item := range v {
			pair, ok := item.([]any)
			if !ok {
				return fmt.Errorf("%w: mapping pair %d is %T, want array", ErrInvalid, i, item)
			}
			list[i] = pair
		}
		return m.fromPairs(list)
	}
	return fmt.Errorf("%w: mapping must be a table or a list of pairs", ErrInvalid)
}

func (m *Mapping) fromPairs(list [][]any) error {
	m.pairs = orderedmap.New[string, any]()
	for i, pair := range list {
		if len(pair) != 2 {
			return fmt.Errorf("%w: mapping pair %d has %d items, want 2", ErrInvalid, i, len(pair))
		}
		key, ok := pair[0].(string)
		if !ok {
			return fmt.Errorf("%w: mapping pair %d key is %T, want string", ErrInvalid, i, pair[0])
		}
		m.set(key, pair[1])
	}
	return nil
}

// MarshalJSON writes the mapping as an object in entry order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	if m.Len() == 0 {
		return []byte("{}"), nil
	}
	return m.pairs.MarshalJSON()
}

// JSONSchema describes the object-or-pairs form.
func (Mapping) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "object"},
			{Type: "array", Items: &jsonschema.Schema{Type: "array"}},
		},
		Description: "lookup table or ordered replacement pairs",
	}
}

// normalize turns whole float64 values, as produced by JSON and TOML
// decoding, into ints so lookups yield the same types from every format.
func normalize(v any) any {
	switch n := v.(type) {
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	case int64:
		return int(n)
	}
	return v
}
