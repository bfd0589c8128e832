package precedence

import "strconv"

// Shape is the syntactic form shared by the operators of a precedence level.
type Shape int8

const (
	shapeNone Shape = iota
	// UnaryPrefix operators precede their single operand and chain, as in
	// --x or -~x.
	UnaryPrefix
	// BinaryLeftAssoc operators are infix and group from the left:
	// a-b-c is (a-b)-c.
	BinaryLeftAssoc
	// BinaryRightAssoc operators are infix and group from the right:
	// a**b**c is a**(b**c).
	BinaryRightAssoc
)

func (s Shape) String() string {
	switch s {
	case UnaryPrefix:
		return "UnaryPrefix"
	case BinaryLeftAssoc:
		return "BinaryLeftAssoc"
	case BinaryRightAssoc:
		return "BinaryRightAssoc"
	default:
		return "Shape(" + strconv.Itoa(int(s)) + ")"
	}
}

// Arity is the number of operands taken by operators of the shape.
func (s Shape) Arity() int {
	if s == UnaryPrefix {
		return 1
	}
	return 2
}

// Op is the operation an operator performs when evaluated.
type Op int8

const (
	OpNone Op = iota

	OpNeg // -x
	OpID  // +x
	OpNot // ~x, bitwise complement

	OpPow // x**y, real power truncated toward zero
	OpAdd // x+y
	OpSub // x-y
	OpMul // x*y
	OpDiv // x/y, truncated
	OpMod // x%y, truncated remainder
	OpShl // x<<y
	OpShr // x>>y, arithmetic
	OpAnd // x&y
	OpOr  // x|y
	OpXor // x^y
)

// Arity is the number of operands the operation takes, or 0 for OpNone.
func (o Op) Arity() int {
	switch {
	case o == OpNone:
		return 0
	case o <= OpNot:
		return 1
	case o <= OpXor:
		return 2
	default:
		return 0
	}
}

// Operator is an operator recognized at a precedence level.
type Operator struct {
	// Name is the display name of the operator, used in evaluation traces.
	Name string
	// Token is the kind of token that denotes the operator.
	Token TokenKind
	// Arity is the number of operands the operator takes.
	Arity int
	// Op is the operation to perform in evaluation.
	Op Op
}

// Level is one rung of a precedence table.
type Level struct {
	Shape Shape
	// Ops is the operators recognized at this level.
	Ops []Operator
}

// find returns the operator at the level matching a token kind, or nil if
// there is none. Multiple matches resolve to the first in declaration order.
func (l *Level) find(k TokenKind) *Operator {
	for i := range l.Ops {
		if l.Ops[i].Token == k {
			return &l.Ops[i]
		}
	}
	return nil
}

// Table is a validated list of precedence levels ordered from loosest to
// tightest binding. The zero Table has no levels and parses only atoms.
type Table struct {
	levels []Level
}

// NewTable validates a list of precedence levels, loosest first. Each level
// must have a known shape and at least one operator, each operator must have
// the arity of its level and an operation of that arity, and no token may
// denote an operator at two prefix levels or at two infix levels. A token may
// denote both a prefix and an infix operator, e.g. - for negation and
// subtraction.
func NewTable(levels ...Level) (Table, error) {
	prefix := make(map[TokenKind]int)
	infix := make(map[TokenKind]int)
	t := Table{levels: make([]Level, len(levels))}
	for i, l := range levels {
		if l.Shape <= shapeNone || l.Shape > BinaryRightAssoc {
			return Table{}, &TableError{Level: i, Reason: "invalid shape " + l.Shape.String()}
		}
		if len(l.Ops) == 0 {
			return Table{}, &TableError{Level: i, Reason: "no operators"}
		}
		seen := infix
		if l.Shape == UnaryPrefix {
			seen = prefix
		}
		for _, op := range l.Ops {
			if op.Arity != l.Shape.Arity() {
				return Table{}, &TableError{Level: i, Op: op.Name, Reason: "arity " + strconv.Itoa(op.Arity) + " at " + l.Shape.String() + " level"}
			}
			if op.Op.Arity() != op.Arity {
				return Table{}, &TableError{Level: i, Op: op.Name, Reason: "operation does not take " + strconv.Itoa(op.Arity) + " operands"}
			}
			if k, ok := seen[op.Token]; ok {
				return Table{}, &TableError{Level: i, Op: op.Name, Reason: "token " + op.Token.String() + " already used at level " + strconv.Itoa(k)}
			}
			seen[op.Token] = i
		}
		t.levels[i] = Level{Shape: l.Shape, Ops: append([]Operator(nil), l.Ops...)}
	}
	return t, nil
}

func mustTable(levels ...Level) Table {
	t, err := NewTable(levels...)
	if err != nil {
		panic("precedence: " + err.Error())
	}
	return t
}

// Len returns the number of levels in the table.
func (t Table) Len() int {
	return len(t.levels)
}

// Level returns a copy of level i.
func (t Table) Level(i int) Level {
	l := t.levels[i]
	l.Ops = append([]Operator(nil), l.Ops...)
	return l
}

// TableError is an error describing an invalid precedence table.
type TableError struct {
	// Level is the index of the offending level.
	Level int
	// Op is the name of the offending operator, if any.
	Op string
	// Reason describes the problem.
	Reason string
}

func (err *TableError) Error() string {
	s := "invalid precedence level " + strconv.Itoa(err.Level)
	if err.Op != "" {
		s += " operator " + strconv.Quote(err.Op)
	}
	return s + ": " + err.Reason
}

var arithmeticTable = mustTable(
	Level{Shape: BinaryRightAssoc, Ops: []Operator{
		{Name: "exp", Token: TokenPow, Arity: 2, Op: OpPow},
	}},
	Level{Shape: BinaryLeftAssoc, Ops: []Operator{
		{Name: "add", Token: '+', Arity: 2, Op: OpAdd},
		{Name: "sub", Token: '-', Arity: 2, Op: OpSub},
	}},
	Level{Shape: BinaryLeftAssoc, Ops: []Operator{
		{Name: "mul", Token: '*', Arity: 2, Op: OpMul},
		{Name: "div", Token: '/', Arity: 2, Op: OpDiv},
	}},
	Level{Shape: UnaryPrefix, Ops: []Operator{
		{Name: "neg", Token: '-', Arity: 1, Op: OpNeg},
		{Name: "id+", Token: '+', Arity: 1, Op: OpID},
	}},
)

var bitwiseTable = mustTable(
	Level{Shape: BinaryLeftAssoc, Ops: []Operator{
		{Name: "add", Token: '+', Arity: 2, Op: OpAdd},
		{Name: "sub", Token: '-', Arity: 2, Op: OpSub},
		{Name: "or", Token: '|', Arity: 2, Op: OpOr},
		{Name: "xor", Token: '^', Arity: 2, Op: OpXor},
	}},
	Level{Shape: BinaryLeftAssoc, Ops: []Operator{
		{Name: "mul", Token: '*', Arity: 2, Op: OpMul},
		{Name: "div", Token: '/', Arity: 2, Op: OpDiv},
		{Name: "mod", Token: '%', Arity: 2, Op: OpMod},
		{Name: "shl", Token: TokenShl, Arity: 2, Op: OpShl},
		{Name: "shr", Token: TokenShr, Arity: 2, Op: OpShr},
		{Name: "and", Token: '&', Arity: 2, Op: OpAnd},
	}},
	Level{Shape: UnaryPrefix, Ops: []Operator{
		{Name: "not", Token: '~', Arity: 1, Op: OpNot},
		{Name: "neg", Token: '-', Arity: 1, Op: OpNeg},
	}},
)
