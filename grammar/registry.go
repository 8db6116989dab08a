package grammar

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/randalmurphal/aocp/parser"
)

// Factory builds a parser from a node. Child nodes are built through b so
// that errors report their position in the grammar.
type Factory func(b *Builder, n *Node) (parser.Parser, error)

// registry stores parser factories, named functions and record constructors.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	funcs      = make(map[string]parser.ParseFunc)
	records    = make(map[string]parser.Constructor)
)

// Register adds a parser type. Built-in types register themselves in init.
// Panics if a type with the same name is already registered.
//
// Example:
//
//	func init() {
//	    grammar.Register("hex", func(b *grammar.Builder, n *grammar.Node) (parser.Parser, error) {
//	        return parser.NewInt(16), nil
//	    })
//	}
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("grammar type %q already registered", name))
	}
	factories[name] = factory
}

// Types returns the names of all registered parser types, sorted.
func Types() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return slices.Sorted(maps.Keys(factories))
}

// IsRegistered checks if a parser type is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	_, ok := factories[name]
	return ok
}

func lookupFactory(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f, ok := factories[name]
	return f, ok
}

// RegisterFunc makes fn available to custom nodes under name.
// Registering an existing name replaces it.
func RegisterFunc(name string, fn parser.ParseFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()

	funcs[name] = fn
}

// Funcs returns the names of all registered functions, sorted.
func Funcs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return slices.Sorted(maps.Keys(funcs))
}

func lookupFunc(name string) (parser.ParseFunc, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	fn, ok := funcs[name]
	return fn, ok
}

// RegisterRecord makes c available to tuple nodes under name.
// Registering an existing name replaces it.
//
// Example:
//
//	type point struct{ X, Y int }
//	grammar.RegisterRecord("point", parser.StructOf[point]())
func RegisterRecord(name string, c parser.Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()

	records[name] = c
}

func lookupRecord(name string) (parser.Constructor, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	c, ok := records[name]
	return c, ok
}

// Unregister removes a parser type.
// This is primarily useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	delete(factories, name)
}

// UnregisterFunc removes a named function.
func UnregisterFunc(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	delete(funcs, name)
}

// UnregisterRecord removes a named record constructor.
func UnregisterRecord(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	delete(records, name)
}
