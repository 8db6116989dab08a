// Package aocp provides composable parsers for structured puzzle input.
//
// aocp turns lines and blocks of text into typed Go values by splitting them
// recursively and handing each piece to another parser. Each subpackage can
// be used independently:
//
//   - parser: the parser contract, splitting heuristics and all parsers
//   - template: format-string matching used by tuple formats
//   - grammar: parser trees declared in YAML, JSON or TOML files
//
// The aocp command (cmd/aocp) applies a grammar file to an input file.
//
// # Quick Start
//
// Parse a list of integer pairs:
//
//	import "github.com/randalmurphal/aocp/parser"
//	pairs := parser.NewList(parser.WithEach(parser.NewIntList(0)))
//	v, _ := pairs.Parse("1,3\n4,5")
//
// Parse key/value rules:
//
//	rules := parser.NewDict(parser.WithValue(parser.NewInt(0)))
//	m, _ := rules.Parse("a:1,b:2")
//
// Build the same from a grammar file:
//
//	import "github.com/randalmurphal/aocp/grammar"
//	p, _ := grammar.Compile("rules.yaml")
//
// # Design Philosophy
//
//   - Parsers are immutable once built and safe to share between goroutines
//   - Every parser has the same Parse(text) (any, error) contract, so any
//     parser or function can fill any subparser slot
//   - Failures are returned immediately with a precise cause; nothing is
//     retried or coerced
package aocp
