package parser

import (
	"strings"

	"github.com/samber/lo"
)

// Split-count limits with special meaning.
const (
	// NoLimit splits at every delimiter.
	NoLimit = -1

	// AutoLimit lets Decompose choose: one split fewer than the number of
	// positional subparsers, or NoLimit for uniform ones.
	AutoLimit = -2
)

// DefaultPriority lists the delimiters DecideSplitter tries, coarsest first.
var DefaultPriority = []string{"\n\n", "\n", "|", "->", ";", ",", " ", ":"}

// DecideSplitter returns the delimiter most likely to separate the fields of
// text: the first entry of DefaultPriority found in the trimmed text.
// Returns ErrNoDelimiter if none occurs.
func DecideSplitter(text string) (string, error) {
	return DecideSplitterFrom(text, DefaultPriority)
}

// DecideSplitterFrom is DecideSplitter with a caller-supplied priority list.
func DecideSplitterFrom(text string, priority []string) (string, error) {
	text = strings.TrimSpace(text)
	for _, d := range priority {
		if d != "" && strings.Contains(text, d) {
			return d, nil
		}
	}
	return "", NewError("splitter", text, ErrNoDelimiter)
}

// Split cuts text at the given delimiters.
//
// With no delimiters, every character becomes its own piece. Otherwise text
// is split at most limit times (limit+1 pieces); a negative limit splits at
// every occurrence. Several delimiters are aliases of one another: each cut
// is made at the leftmost occurrence of any of them, preferring the longest
// alias when several start at the same offset.
func Split(text string, delims []string, limit int) []string {
	delims = lo.Compact(delims)
	switch len(delims) {
	case 0:
		return strings.Split(text, "")
	case 1:
		return strings.SplitN(text, delims[0], splitN(limit))
	}

	var pieces []string
	for limit < 0 || len(pieces) < limit {
		at, size := -1, 0
		for _, d := range delims {
			i := strings.Index(text, d)
			if i < 0 {
				continue
			}
			if at < 0 || i < at || (i == at && len(d) > size) {
				at, size = i, len(d)
			}
		}
		if at < 0 {
			break
		}
		pieces = append(pieces, text[:at])
		text = text[at+size:]
	}
	return append(pieces, text)
}

// splitN converts a split limit to the piece count strings.SplitN expects.
func splitN(limit int) int {
	if limit < 0 {
		return -1
	}
	return limit + 1
}
