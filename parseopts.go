package precedence

// DefaultMaxDepth is the default bound on the nesting of parenthesized and
// right-associative subexpressions.
const DefaultMaxDepth = 1000

// Option is an option for parsing.
type Option interface {
	option(config) config
}

type (
	dialectopt struct {
		d *Dialect
	}
	depthopt int
)

// config holds the options applied to a parse. A *config is also an Option.
type config struct {
	// dialect is the scanner and precedence table to parse with.
	dialect *Dialect
	// maxDepth bounds the nesting depth of a parse. Zero or negative disables
	// the bound.
	maxDepth int
}

// WithDialect sets the dialect to parse with. The default is Arithmetic.
func WithDialect(d *Dialect) Option {
	return dialectopt{d}
}

func (o dialectopt) option(c config) config {
	if o.d == nil {
		panic("precedence: nil dialect")
	}
	c.dialect = o.d
	return c
}

// MaxDepth bounds the depth of nested parentheses and right-associative
// operator chains. Parses that nest deeper fail with a *NestingError. If n is
// zero or negative, nesting is limited only by available stack space.
func MaxDepth(n int) Option {
	return depthopt(n)
}

func (o depthopt) option(c config) config {
	c.maxDepth = int(o)
	return c
}

// Preset folds a list of options into one. A preset replaces the effect of
// any options applied before it; options applied after it still take effect.
func Preset(opts ...Option) Option {
	c := newConfig(opts)
	return &c
}

func (o *config) option(config) config {
	return *o
}

// newConfig applies options in order to the default configuration.
func newConfig(opts []Option) config {
	c := config{dialect: Arithmetic, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	return c
}
