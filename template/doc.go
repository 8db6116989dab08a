// Package template matches text against format strings with embedded fields
// and returns the captured field text.
//
// A format is literal text interleaved with fields in braces:
//
//	{}          any text (as little as possible)
//	{name}      any text, captured under name
//	{:d}        a signed decimal integer
//	{:w}        a run of letters, digits and underscores
//	{:l}        a run of letters
//	{:S}        a run of non-space characters
//	{name:d}    a named field with a type
//	{{ and }}   literal braces
//
// The whole text must match. Literal text is compared exactly, so spacing in
// the format has to agree with the input.
//
// # Example
//
//	p := template.MustCompile("{name} bags contain {count:d} {}")
//	fields, ok := p.Match("light red bags contain 1 bright white bag")
//	// fields: ["light red", "1", "bright white bag"], ok: true
//
//	named, _ := p.MatchNamed("light red bags contain 1 bright white bag")
//	// named: map[count:1 name:light red]
//
// Match compiles through a shared cache, so calling it repeatedly with the
// same format is cheap:
//
//	fields, ok, err := template.Match("#{:d} @ {:d},{:d}", "#1 @ 3,4")
package template
