package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Int extracts the first integer embedded in the text.
//
// The raw, untrimmed input is scanned for integer literals, optionally
// preceded by a sign, so "x=-12," yields -12. The whole input does not have
// to be a number. Up to base 10 a literal is any maximal run of digits. Above
// base 10 letters are digits too, so a literal must be a whole word (letters,
// digits and underscores) made only of base digits, and Int prefers a word
// containing a decimal digit over all-letter words: in base 16 "add 1f"
// yields 0x1f and "Monkey 0:" yields 0.
type Int struct {
	base   int
	digits *digits
}

// NewInt creates an integer parser for the given base (2 to 36).
// A base of 0 means 10. Panics on any other out-of-range base.
func NewInt(base int) *Int {
	base = normalizeBase(base)
	return &Int{base: base, digits: digitsFor(base)}
}

// Base returns the numeric base.
func (p *Int) Base() int {
	return p.base
}

// Parse returns the first integer in text as an int.
func (p *Int) Parse(text string) (any, error) {
	m, ok := p.digits.first(text)
	if !ok {
		return nil, NewError("int", text, ErrNoInteger)
	}
	n, err := strconv.ParseInt(m, p.base, 0)
	if err != nil {
		return nil, NewError("int", text, err)
	}
	return int(n), nil
}

// IntList extracts every integer embedded in the text, in order. Literals
// follow Int's rules, but all-letter words of base digits are kept.
// Useful for lines like "move 3 from 1 to 2".
type IntList struct {
	base   int
	digits *digits
}

// NewIntList creates an integer-list parser; base follows NewInt.
func NewIntList(base int) *IntList {
	base = normalizeBase(base)
	return &IntList{base: base, digits: digitsFor(base)}
}

// Parse returns all integers in text as []int.
func (p *IntList) Parse(text string) (any, error) {
	found := p.digits.all(text)
	if len(found) == 0 {
		return nil, NewError("intlist", text, ErrNoInteger)
	}
	ints := make([]int, 0, len(found))
	for _, m := range found {
		n, err := strconv.ParseInt(m, p.base, 0)
		if err != nil {
			return nil, NewError("intlist", text, err)
		}
		ints = append(ints, int(n))
	}
	return ints, nil
}

// ValidBase reports whether base is accepted by NewInt and NewIntList.
func ValidBase(base int) bool {
	return base == 0 || (base >= 2 && base <= 36)
}

func normalizeBase(base int) int {
	if !ValidBase(base) {
		panic(fmt.Sprintf("parser: invalid integer base %d", base))
	}
	if base == 0 {
		return 10
	}
	return base
}

// signedWord matches a word with an optional sign.
var signedWord = regexp.MustCompile(`[-+]?[0-9A-Za-z_]+`)

// digits finds the integer literals of one base in free text.
type digits struct {
	base int
	run  *regexp.Regexp // base <= 10: signed digit runs
	word *regexp.Regexp // base > 10: a whole signed word of base digits
}

// digitsByBase caches one scanner per base.
var digitsByBase sync.Map // map[int]*digits

func digitsFor(base int) *digits {
	if d, ok := digitsByBase.Load(base); ok {
		return d.(*digits)
	}

	d := &digits{base: base}
	if base <= 10 {
		d.run = regexp.MustCompile(fmt.Sprintf(`[-+]?[0-%d]+`, base-1))
	} else {
		last := rune('a' + base - 11)
		d.word = regexp.MustCompile(fmt.Sprintf(`^[-+]?[0-9a-%cA-%c]+$`, last, last-'a'+'A'))
	}
	actual, _ := digitsByBase.LoadOrStore(base, d)
	return actual.(*digits)
}

// all returns every literal in text, in order.
func (d *digits) all(text string) []string {
	if d.run != nil {
		return d.run.FindAllString(text, -1)
	}
	return lo.Filter(signedWord.FindAllString(text, -1), func(w string, _ int) bool {
		return d.word.MatchString(w)
	})
}

// first returns the literal Int reads: the first one, except that above base
// 10 a literal containing a decimal digit wins over all-letter words.
func (d *digits) first(text string) (string, bool) {
	if d.run != nil {
		m := d.run.FindString(text)
		return m, m != ""
	}
	found := d.all(text)
	if len(found) == 0 {
		return "", false
	}
	if w, ok := lo.Find(found, func(w string) bool { return strings.ContainsAny(w, "0123456789") }); ok {
		return w, true
	}
	return found[0], true
}

// Bool maps two tokens to true and false.
type Bool struct {
	trueToken  string
	falseToken string
}

// NewBool creates a boolean parser. Empty tokens default to "1" and "0".
func NewBool(trueToken, falseToken string) *Bool {
	if trueToken == "" {
		trueToken = "1"
	}
	if falseToken == "" {
		falseToken = "0"
	}
	return &Bool{trueToken: trueToken, falseToken: falseToken}
}

// Parse trims text and compares it to the configured tokens.
func (p *Bool) Parse(text string) (any, error) {
	switch strings.TrimSpace(text) {
	case p.trueToken:
		return true, nil
	case p.falseToken:
		return false, nil
	}
	return nil, NewError("bool", text,
		fmt.Errorf("%w: want %q or %q", ErrNotBoolean, p.trueToken, p.falseToken))
}

// CustomParser wraps an arbitrary function so one-off logic can sit anywhere
// in a parser tree.
type CustomParser struct {
	fn ParseFunc
}

// Custom creates a parser from fn. fn must be safe for concurrent use if the
// parser is shared. A nil fn behaves like Text.
func Custom(fn ParseFunc) *CustomParser {
	if fn == nil {
		fn = Text.Parse
	}
	return &CustomParser{fn: fn}
}

// Parse calls the wrapped function.
func (p *CustomParser) Parse(text string) (any, error) {
	return p.fn(text)
}
