package precedence

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

// recorder is a sink that records the events it receives.
type recorder struct {
	events []string
}

func (r *recorder) leaf(tok Token) error {
	r.events = append(r.events, tok.Text)
	return nil
}

func (r *recorder) prefix(ops []prefixOp) error {
	var b strings.Builder
	b.WriteString("prefix[")
	for i, op := range ops {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(op.op.Name)
	}
	b.WriteByte(']')
	r.events = append(r.events, b.String())
	return nil
}

func (r *recorder) infix(op *Operator, tok Token) error {
	r.events = append(r.events, op.Name)
	return nil
}

func (r *recorder) group(open Token) error {
	r.events = append(r.events, "()")
	return nil
}

func TestParseEvents(t *testing.T) {
	cases := []struct {
		name   string
		d      *Dialect
		src    string
		events string
	}{
		{"int", Arithmetic, "3", "3"},
		{"add", Arithmetic, "1+2", "1 2 add"},
		{"left", Arithmetic, "2-3-4", "2 3 sub 4 sub"},
		{"right", Arithmetic, "5**3**2", "5 3 2 exp exp"},
		{"loosest-pow", Arithmetic, "2**1+2", "2 1 2 add exp"},
		{"mixed", Arithmetic, "2*3 + 11/5", "2 3 mul 11 5 div add"},
		{"parens", Arithmetic, "2*(3+11)/5", "2 3 11 add () mul 5 div"},
		{"prefix", Arithmetic, "-+-5", "5 prefix[neg id+ neg]"},
		{"prefix-operand", Arithmetic, "2*-3", "2 3 prefix[neg] mul"},
		{"prefix-group", Arithmetic, "-(1+2)", "1 2 add () prefix[neg]"},
		{"nested-prefix", Arithmetic, "-(-1)", "1 prefix[neg] () prefix[neg]"},
		{"triple", Arithmetic, "(((7)))", "7 () () ()"},
		{"bitwise", Bitwise, "1^2+3-9", "1 2 xor 3 add 9 sub"},
		{"bitwise-prefix", Bitwise, "-~12", "12 prefix[neg not]"},
		{"shift", Bitwise, "1<<4>>2", "1 4 shl 2 shr"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var r recorder
			cfg := newConfig([]Option{WithDialect(c.d)})
			ok, err := parse(c.src, &cfg, &r)
			if err != nil {
				t.Fatalf("parsing %q: %v", c.src, err)
			}
			if !ok {
				t.Fatalf("parsing %q: no expression", c.src)
			}
			if got := strings.Join(r.events, " "); got != c.events {
				t.Errorf("parsing %q: want events %q, got %q", c.src, c.events, got)
			}
		})
	}
}

func TestParseNoExpression(t *testing.T) {
	for _, src := range []string{"", " ", "\t\n  "} {
		var r recorder
		cfg := newConfig(nil)
		ok, err := parse(src, &cfg, &r)
		if ok || err != nil {
			t.Errorf("parsing %q: want no expression, got %v, %v", src, ok, err)
		}
		if len(r.events) != 0 {
			t.Errorf("parsing %q: got events %q", src, r.events)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		d    *Dialect
		src  string
		err  error
		re   string
	}{
		{
			name: "two-ints",
			d:    Arithmetic,
			src:  "1 2",
			err:  &IncompleteParseError{Token: Token{Kind: TokenInt, Val: 2, Text: "2", Pos: 2}},
			re:   `^2: unexpected integer 2 after expression$`,
		},
		{
			name: "close",
			d:    Arithmetic,
			src:  ")",
			err:  &IncompleteParseError{Token: Token{Kind: ')', Text: ")", Pos: 0}},
			re:   `^0: unexpected '\)'`,
		},
		{
			name: "trailing-close",
			d:    Arithmetic,
			src:  "(1))",
			err:  &IncompleteParseError{Token: Token{Kind: ')', Text: ")", Pos: 3}},
			re:   `^3: `,
		},
		{
			name: "leading-op",
			d:    Arithmetic,
			src:  "*2",
			err:  &IncompleteParseError{Token: Token{Kind: '*', Text: "*", Pos: 0}},
			re:   `unexpected '\*'`,
		},
		{
			name: "pow-bitwise",
			d:    Bitwise,
			src:  "2**3",
			err:  &IncompleteParseError{Token: Token{Kind: TokenPow, Text: "**", Pos: 1}},
			re:   `unexpected '\*\*'`,
		},
		{
			name: "missing-exponent",
			d:    Arithmetic,
			src:  "2**",
			err:  &ParseError{Want: TokenInt, Got: Token{Pos: 3}, Start: 1},
			re:   `^3: expected integer but found end of input \(from 1\)$`,
		},
		{
			name: "missing-right",
			d:    Arithmetic,
			src:  "1 + * 2",
			err:  &ParseError{Want: TokenInt, Got: Token{Kind: '*', Text: "*", Pos: 4}, Start: 2},
			re:   `^4: expected integer but found '\*'`,
		},
		{
			name: "missing-close",
			d:    Arithmetic,
			src:  "(2*3",
			err:  &ParseError{Want: ')', Got: Token{Pos: 4}, Start: 0},
			re:   `^4: expected '\)' but found end of input \(from 0\)$`,
		},
		{
			name: "missing-close-nested",
			d:    Arithmetic,
			src:  "((1) 2",
			err:  &ParseError{Want: ')', Got: Token{Kind: TokenInt, Val: 2, Text: "2", Pos: 5}, Start: 0},
			re:   `found integer 2`,
		},
		{
			name: "empty-parens",
			d:    Arithmetic,
			src:  "()",
			err:  &ParseError{Want: TokenInt, Got: Token{Kind: ')', Text: ")", Pos: 1}, Start: 0},
			re:   `^1: expected integer`,
		},
		{
			name: "dangling-prefix",
			d:    Arithmetic,
			src:  "--",
			err:  &ParseError{Want: TokenInt, Got: Token{Pos: 2}, Start: 1},
			re:   `\(from 1\)$`,
		},
		{
			name: "dangling-not",
			d:    Bitwise,
			src:  "1 + ~",
			err:  &ParseError{Want: TokenInt, Got: Token{Pos: 5}, Start: 4},
			re:   `^5: `,
		},
		{
			name: "scan-first",
			d:    Arithmetic,
			src:  "$",
			err:  &ScanError{Offset: 0, Text: "$"},
			re:   `^0: unknown token`,
		},
		{
			name: "scan-later",
			d:    Arithmetic,
			src:  "1 + 2 ~ 3",
			err:  &ScanError{Offset: 6, Text: "~"},
			re:   `^6: `,
		},
		{
			name: "scan-overflow",
			d:    Arithmetic,
			src:  "1-9223372036854775808",
			err:  &ScanError{Offset: 2, Text: "9223372036854775808", Kind: "integer"},
			re:   `out of range`,
		},
		{
			name: "scan-stars",
			d:    Arithmetic,
			src:  "2***3",
			err:  &ScanError{Offset: 1, Text: "***", Kind: "operator"},
			re:   `malformed`,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var r recorder
			cfg := newConfig([]Option{WithDialect(c.d)})
			ok, err := parse(c.src, &cfg, &r)
			if err == nil {
				t.Fatalf("parsing %q gave no error; ok=%v events=%q", c.src, ok, r.events)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("parsing %q: want %T, got %T (%v)", c.src, c.err, err, err)
			}
			if !reflect.DeepEqual(err, c.err) {
				t.Errorf("parsing %q: want %#v, got %#v", c.src, c.err, err)
			}
			if !regexp.MustCompile(c.re).MatchString(err.Error()) {
				t.Errorf("error message %q does not match %s", err.Error(), c.re)
			}
			if ie, ok := err.(InputError); !ok {
				t.Errorf("%T is not an InputError", err)
			} else if ie.Pos() < 0 || ie.Pos() > len(c.src) {
				t.Errorf("error position %d outside input of length %d", ie.Pos(), len(c.src))
			}
		})
	}
}

func TestParseNesting(t *testing.T) {
	cases := []struct {
		name  string
		depth int
		src   string
		err   *NestingError
	}{
		{"parens-ok", 3, "(((1)))", nil},
		{"parens-deep", 3, "((((1))))", &NestingError{Offset: 3, Depth: 3}},
		{"pow-ok", 3, "1**1**1**1", nil},
		{"pow-deep", 2, "1**1**1**1", &NestingError{Offset: 7, Depth: 2}},
		{"mixed", 2, "2**(3)", nil},
		{"mixed-deep", 2, "2**((3))", &NestingError{Offset: 4, Depth: 2}},
		{"sequential", 1, "(1)+(2)+(3)", nil},
		{"unbounded", 0, strings.Repeat("(", 5000) + "1" + strings.Repeat(")", 5000), nil},
		{"default", DefaultMaxDepth, strings.Repeat("(", DefaultMaxDepth+1) + "1" + strings.Repeat(")", DefaultMaxDepth+1), &NestingError{Offset: DefaultMaxDepth, Depth: DefaultMaxDepth}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var r recorder
			cfg := newConfig([]Option{MaxDepth(c.depth)})
			_, err := parse(c.src, &cfg, &r)
			if c.err == nil {
				if err != nil {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			if !reflect.DeepEqual(err, c.err) {
				t.Errorf("want %#v, got %#v", c.err, err)
			}
		})
	}
}

func TestParseDefaultDepth(t *testing.T) {
	src := strings.Repeat("(", DefaultMaxDepth) + "1" + strings.Repeat(")", DefaultMaxDepth)
	var r recorder
	cfg := newConfig(nil)
	if _, err := parse(src, &cfg, &r); err != nil {
		t.Errorf("nesting %d deep: %v", DefaultMaxDepth, err)
	}
}

func TestOptions(t *testing.T) {
	cases := []struct {
		name string
		opts []Option
		want config
	}{
		{"default", nil, config{dialect: Arithmetic, maxDepth: DefaultMaxDepth}},
		{"nil", []Option{nil}, config{dialect: Arithmetic, maxDepth: DefaultMaxDepth}},
		{"dialect", []Option{WithDialect(Bitwise)}, config{dialect: Bitwise, maxDepth: DefaultMaxDepth}},
		{"depth", []Option{MaxDepth(7)}, config{dialect: Arithmetic, maxDepth: 7}},
		{"later-wins", []Option{MaxDepth(7), MaxDepth(9)}, config{dialect: Arithmetic, maxDepth: 9}},
		{"preset", []Option{Preset(WithDialect(Bitwise), MaxDepth(3))}, config{dialect: Bitwise, maxDepth: 3}},
		{"preset-replaces", []Option{MaxDepth(7), Preset(WithDialect(Bitwise))}, config{dialect: Bitwise, maxDepth: DefaultMaxDepth}},
		{"after-preset", []Option{Preset(WithDialect(Bitwise)), MaxDepth(7)}, config{dialect: Bitwise, maxDepth: 7}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := newConfig(c.opts)
			if got != c.want {
				t.Errorf("want %+v, got %+v", c.want, got)
			}
		})
	}
}

func TestNilDialect(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic with nil dialect")
		}
	}()
	newConfig([]Option{WithDialect(nil)})
}

// fold parses a chain of subtractions of xs under a table where subtraction
// has the given shape.
func fold(t *testing.T, shape Shape, xs ...int64) int64 {
	t.Helper()
	tab, err := NewTable(
		Level{Shape: shape, Ops: []Operator{{Name: "sub", Token: '-', Arity: 2, Op: OpSub}}},
		Level{Shape: UnaryPrefix, Ops: []Operator{{Name: "neg", Token: '-', Arity: 1, Op: OpNeg}}},
	)
	if err != nil {
		t.Fatal(err)
	}
	d := NewDialect("fold", tab, false)
	var b strings.Builder
	for i, x := range xs {
		if i > 0 {
			b.WriteByte('-')
		}
		if x < 0 {
			b.WriteString("(-" + strconv.FormatInt(-x, 10) + ")")
		} else {
			b.WriteString(strconv.FormatInt(x, 10))
		}
	}
	r, err := EvalString(b.String(), WithDialect(d))
	if err != nil {
		t.Fatalf("evaluating %q: %v", b.String(), err)
	}
	return r.Value
}

func TestAssociativity(t *testing.T) {
	cases := []struct {
		xs          []int64
		left, right int64
	}{
		{[]int64{3, 5, 7}, -9, 5},
		{[]int64{10, 4}, 6, 6},
		{[]int64{1}, 1, 1},
		{[]int64{1, 2, 3, 4}, -8, -2},
		{[]int64{-1, -2, -3}, 4, -2},
	}
	for _, c := range cases {
		if got := fold(t, BinaryLeftAssoc, c.xs...); got != c.left {
			t.Errorf("left fold of %v: want %d, got %d", c.xs, c.left, got)
		}
		if got := fold(t, BinaryRightAssoc, c.xs...); got != c.right {
			t.Errorf("right fold of %v: want %d, got %d", c.xs, c.right, got)
		}
	}
}

func TestEmptyTable(t *testing.T) {
	// With no levels, only atoms parse.
	d := NewDialect("atoms", Table{}, false)
	r, err := EvalString("((42))", WithDialect(d))
	if err != nil {
		t.Fatal(err)
	}
	if r.Value != 42 {
		t.Errorf("want 42, got %d", r.Value)
	}
	if _, err := EvalString("1+2", WithDialect(d)); err == nil {
		t.Error("no error parsing an operator with an empty table")
	}
}
