package parser

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// HashSet is an unordered collection of distinct parsed values.
//
// Members are identified by their Go type and value, so []any tuples and
// lists can be members even though Go cannot use them as map keys.
type HashSet struct {
	items map[string]any
}

// NewHashSet creates a set holding values.
func NewHashSet(values ...any) *HashSet {
	s := &HashSet{items: make(map[string]any, len(values))}
	for _, v := range values {
		s.add(v)
	}
	return s
}

func (s *HashSet) add(v any) {
	s.items[identity(v)] = v
}

// Len returns the number of distinct members.
func (s *HashSet) Len() int {
	return len(s.items)
}

// Contains reports whether v is a member.
func (s *HashSet) Contains(v any) bool {
	_, ok := s.items[identity(v)]
	return ok
}

// All iterates over the members in no particular order.
func (s *HashSet) All() iter.Seq[any] {
	return maps.Values(s.items)
}

// Values returns the members ordered by their identity, which is stable
// across runs.
func (s *HashSet) Values() []any {
	keys := slices.Sorted(maps.Keys(s.items))
	values := make([]any, len(keys))
	for i, k := range keys {
		values[i] = s.items[k]
	}
	return values
}

// Equal reports whether s and other have the same members.
func (s *HashSet) Equal(other *HashSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for k := range s.items {
		if _, ok := other.items[k]; !ok {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a JSON array.
func (s *HashSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// String formats the set like {a b c}.
func (s *HashSet) String() string {
	list := fmt.Sprint(s.Values())
	return "{" + list[1:len(list)-1] + "}"
}

// identity renders v with its type so 1 and "1" stay distinct. Sets, lists
// and maps are rendered member by member, so equal nested values share an
// identity even when they sit behind different pointers.
func identity(v any) string {
	var b strings.Builder
	writeIdentity(&b, v)
	return b.String()
}

func writeIdentity(b *strings.Builder, v any) {
	switch t := v.(type) {
	case *HashSet:
		b.WriteString("set{")
		b.WriteString(strings.Join(slices.Sorted(maps.Keys(t.items)), ", "))
		b.WriteByte('}')
	case []any:
		b.WriteString("list{")
		for i, item := range t {
			if i > 0 {
				b.WriteString(", ")
			}
			writeIdentity(b, item)
		}
		b.WriteByte('}')
	case map[any]any:
		entries := make([]string, 0, len(t))
		for k, item := range t {
			entries = append(entries, identity(k)+": "+identity(item))
		}
		slices.Sort(entries)
		b.WriteString("map{")
		b.WriteString(strings.Join(entries, ", "))
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "%#v", v)
	}
}

// hashable reports whether v can be used as a Go map key.
func hashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}
