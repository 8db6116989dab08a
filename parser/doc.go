// Package parser turns short, human-authored text fragments into typed values.
//
// Parsers are small immutable objects composed into a tree. Leaf parsers
// convert a single piece of text (Int, IntList, Bool, Sort, Lookup, Replace,
// Custom). Combinators split their input and hand each piece to child parsers
// (List, Set, Tuple, Dict) or thread one parser's output into the next (Chain).
//
// Core types:
//   - Parser: the uniform contract, Parse(text) (any, error)
//   - ParseFunc: adapts any function to Parser
//   - Subparser: either one parser applied to every piece (Each) or one
//     parser per position (Positional)
//
// When no delimiter is configured, combinators guess one with DecideSplitter,
// trying coarse separators (blank line, newline) before fine ones (space,
// colon). Text with none of them is split into characters.
//
// Example usage:
//
//	points := parser.NewList(
//	    parser.WithSplitter("\n"),
//	    parser.WithEach(lo.Must(parser.NewTuple(
//	        parser.WithSplitter(","),
//	        parser.WithFields(parser.NewInt(0), parser.NewInt(0)),
//	    ))),
//	)
//	v, err := points.Parse("1,2\n3,4")
//	// v: []any{[]any{1, 2}, []any{3, 4}}
//
//	rules := parser.NewDict(
//	    parser.WithEntrySplitter(","),
//	    parser.WithPairSplitter(":"),
//	    parser.WithValue(parser.NewInt(0)),
//	)
//	m, _ := rules.Parse("a:1,b:2")
//	// m: map[any]any{"a": 1, "b": 2}
//
// Failures are returned as *Error values wrapping one of the package's
// sentinel errors, so callers can test them with errors.Is.
package parser
