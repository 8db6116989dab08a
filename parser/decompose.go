package parser

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/ngicks/go-iterator-helper/hiter"
	"github.com/samber/lo"
	"spheric.cloud/xiter"
)

// Subparser selects how decomposed pieces are parsed: one parser for every
// piece (Each) or one parser per position (Positional).
// The zero value parses every piece with Text.
type Subparser struct {
	each       Parser
	positional []Parser
}

// Each applies p to every non-empty piece. A nil p means Text.
func Each(p Parser) Subparser {
	return Subparser{each: orText(p)}
}

// Positional applies ps[i] to the i-th piece. The input must decompose into
// exactly len(ps) pieces. Nil entries mean Text.
func Positional(ps ...Parser) Subparser {
	fields := make([]Parser, len(ps))
	for i, p := range ps {
		fields[i] = orText(p)
	}
	return Subparser{positional: fields}
}

// IsPositional reports whether s parses pieces by position.
func (s Subparser) IsPositional() bool {
	return s.positional != nil
}

// Len returns the number of positional parsers, or 0 for uniform subparsers.
func (s Subparser) Len() int {
	return len(s.positional)
}

// Decompose splits text and lazily parses each piece.
//
// When delims is empty the delimiter is chosen by DecideSplitter, falling
// back to one piece per character. For positional subparsers AutoLimit
// becomes Len()-1, so the text is cut into at most as many pieces as there
// are parsers; any other piece count fails with ErrArity. The sequence
// yields (nil, err) and stops at the first failure.
func Decompose(text string, delims []string, sub Subparser, limit int) iter.Seq2[any, error] {
	delims = lo.Compact(delims)
	if len(delims) == 0 {
		// ErrNoDelimiter leaves delims empty: one piece per character.
		if d, err := DecideSplitter(text); err == nil {
			delims = []string{d}
		}
	}

	if !sub.IsPositional() {
		pieces := xiter.Filter(
			xiter.Map(slices.Values(Split(text, delims, limit)), strings.TrimSpace),
			func(s string) bool { return s != "" },
		)
		return stopOnError(xiter.MapErr(pieces, orText(sub.each).Parse))
	}

	if limit == AutoLimit {
		limit = sub.Len() - 1
	}
	pieces := Split(text, delims, limit)
	if len(pieces) != sub.Len() {
		return failed(NewError("decompose", text,
			fmt.Errorf("%w: %d pieces for %d subparsers", ErrArity, len(pieces), sub.Len())))
	}

	return stopOnError(func(yield func(any, error) bool) {
		for p, piece := range hiter.Pairs(slices.Values(sub.positional), slices.Values(pieces)) {
			if !yield(p.Parse(strings.TrimSpace(piece))) {
				return
			}
		}
	})
}

// collect materialises a decomposition, returning the first error.
func collect(seq iter.Seq2[any, error]) ([]any, error) {
	values, err := xiter.TryCollect(seq)
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = []any{}
	}
	return values, nil
}

// stopOnError ends seq after the first error it yields.
func stopOnError(seq iter.Seq2[any, error]) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		for v, err := range seq {
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// failed is a sequence yielding only err.
func failed(err error) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		yield(nil, err)
	}
}
