package parser

// Option configures a List, Set or Tuple.
type Option func(*options)

type options struct {
	delims []string
	sub    Subparser
	limit  int
	format string
	record Constructor
}

func newOptions(opts []Option) options {
	o := options{sub: Each(Text), limit: AutoLimit}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSplitter sets the delimiters pieces are separated by. Several
// delimiters are interchangeable. Without this option the delimiter is
// guessed per input by DecideSplitter.
func WithSplitter(delims ...string) Option {
	return func(o *options) {
		o.delims = append([]string(nil), delims...)
	}
}

// WithEach parses every piece with p.
func WithEach(p Parser) Option {
	return func(o *options) {
		o.sub = Each(p)
	}
}

// WithFields parses the i-th piece with ps[i]; the input must split into
// exactly len(ps) pieces.
func WithFields(ps ...Parser) Option {
	return func(o *options) {
		o.sub = Positional(ps...)
	}
}

// WithSubparser sets the subparser directly.
func WithSubparser(s Subparser) Option {
	return func(o *options) {
		if s.each == nil && s.positional == nil {
			s = Each(Text)
		}
		o.sub = s
	}
}

// WithLimit caps the number of splits; NoLimit splits everywhere. The
// default, AutoLimit, gives positional subparsers one split fewer than their
// field count.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// WithFormat makes a Tuple extract its fields with a format such as
// "{} bags contain {:d}" instead of splitting. See package template for the
// syntax. Cannot be combined with WithSplitter.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithRecord makes a Tuple pass its parsed fields to c and return the result.
func WithRecord(c Constructor) Option {
	return func(o *options) {
		o.record = c
	}
}
