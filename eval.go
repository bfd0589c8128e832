package precedence

import (
	"strconv"
	"strings"
)

// Evaluator evaluates expressions to 64-bit integers as they are parsed,
// recording each evaluation step. Its buffers are reused across evaluations.
// It is not safe to use an Evaluator concurrently.
type Evaluator struct {
	cfg   config
	stack []int64
	trace Trace
}

// Trace is the sequence of literals and operators consumed by an evaluation,
// in postfix order. Binary operators appear as "name{2}". A net negation by
// prefix - and + appears as the marker "-{1}"; other prefix operators appear
// as "name{1}".
type Trace []string

func (t Trace) String() string {
	return strings.Join(t, " ")
}

// negMarker is the trace entry for a net negation.
const negMarker = "-{1}"

// Evaluation is the result of evaluating an expression.
type Evaluation struct {
	// Value is the value of the expression.
	Value int64
	// Trace is the postfix evaluation trace.
	Trace Trace
}

// NewEvaluator creates an evaluator. The options are applied in order.
func NewEvaluator(opts ...Option) *Evaluator {
	return &Evaluator{cfg: newConfig(opts)}
}

// Eval parses and evaluates src. If src contains no expression, i.e. it is
// empty or all whitespace, the result is nil with no error. The trace of the
// result shares storage with ev and is valid until the next call to Eval or
// Free.
func (ev *Evaluator) Eval(src string) (*Evaluation, error) {
	ev.stack = ev.stack[:0]
	ev.trace = ev.trace[:0]
	ok, err := parse(src, &ev.cfg, ev)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	if len(ev.stack) != 1 {
		panic("precedence: inconsistent stack: " + strconv.Itoa(len(ev.stack)) + " items")
	}
	return &Evaluation{Value: ev.stack[0], Trace: ev.trace}, nil
}

// Free releases the evaluator's buffers. The evaluator remains usable.
func (ev *Evaluator) Free() {
	ev.stack = nil
	ev.trace = nil
}

// Dialect returns the dialect the evaluator parses.
func (ev *Evaluator) Dialect() *Dialect {
	return ev.cfg.dialect
}

func (ev *Evaluator) leaf(tok Token) error {
	ev.stack = append(ev.stack, tok.Val)
	ev.trace = append(ev.trace, strconv.FormatInt(tok.Val, 10))
	return nil
}

func (ev *Evaluator) prefix(ops []prefixOp) error {
	v := &ev.stack[len(ev.stack)-1]
	// Signs fold into a multiplier, which applies before any other operator.
	var neg bool
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i].op
		switch op.Op {
		case OpID:
		case OpNeg:
			neg = !neg
		case OpNot:
			ev.negate(v, neg)
			neg = false
			*v = ^*v
			ev.trace = append(ev.trace, op.Name+"{1}")
		default:
			panic("precedence: operator " + strconv.Quote(op.Name) + " is not unary")
		}
	}
	ev.negate(v, neg)
	return nil
}

// negate applies a pending negation.
func (ev *Evaluator) negate(v *int64, neg bool) {
	if neg {
		*v = -*v
		ev.trace = append(ev.trace, negMarker)
	}
}

func (ev *Evaluator) infix(op *Operator, tok Token) error {
	y := ev.stack[len(ev.stack)-1]
	ev.stack = ev.stack[:len(ev.stack)-1]
	x := &ev.stack[len(ev.stack)-1]
	r, err := apply(op, tok, *x, y)
	if err != nil {
		return err
	}
	*x = r
	ev.trace = append(ev.trace, op.Name+"{"+strconv.Itoa(op.Arity)+"}")
	return nil
}

func (ev *Evaluator) group(Token) error {
	return nil
}

// EvalString is a shortcut to evaluate an expression with a new Evaluator.
func EvalString(src string, opts ...Option) (*Evaluation, error) {
	return NewEvaluator(opts...).Eval(src)
}
