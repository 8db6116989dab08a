// Package grammar builds parser trees from declarative YAML, JSON or TOML
// files, so puzzle inputs can be described without writing Go.
//
// A grammar is one Node, whose type names a registered parser and whose
// other fields configure it. Child parsers nest under subparser, fields,
// stages, key and value:
//
//	# points.yaml: "1,2\n3,4" -> [[1 2] [3 4]]
//	type: list
//	splitter: "\n"
//	subparser:
//	  type: tuple
//	  splitter: ","
//	  fields:
//	    - type: int
//	    - type: int
//
// The same grammar in TOML:
//
//	type = "list"
//	splitter = "\n"
//
//	[subparser]
//	type = "tuple"
//	splitter = ","
//	fields = [{ type = "int" }, { type = "int" }]
//
// Usage:
//
//	p, err := grammar.Compile("points.yaml")
//	v, err := p.Parse(input)
//
// # Registries
//
// Parser types, custom functions and record constructors are looked up by
// name. Built-in types: text, int, intlist, bool, custom, sort, lookup,
// replace, chain, list, set, tuple, dict. Built-in functions: upper, lower,
// trim, fields, len, reverse, runes. Add more with Register, RegisterFunc and
// RegisterRecord.
//
// # Tooling
//
// Schema returns a JSON schema for editor validation, and Watch recompiles
// a grammar whenever its file changes.
package grammar
