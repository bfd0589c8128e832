package precedence

// Expr = Level(0)
// Level(k) for each level of the table, loosest first:
//   UnaryPrefix      = { op } Level(k+1)
//   BinaryLeftAssoc  = Level(k+1) { op Level(k+1) }
//   BinaryRightAssoc = Level(k+1) [ op Level(k) ]
// Level(len(table)) = Atom
// Atom = int | '(' Expr ')'

// sink materializes the results of a parse. The parser calls each method
// only after the operands it applies to have been materialized, so a sink
// sees its input in postfix order.
type sink interface {
	// leaf materializes an integer literal.
	leaf(tok Token) error
	// prefix applies a chain of prefix operators, outermost first, to the
	// last materialized operand. The innermost operator applies first.
	prefix(ops []prefixOp) error
	// infix combines the last two materialized operands.
	infix(op *Operator, tok Token) error
	// group marks the last materialized operand as a parenthesized
	// subexpression.
	group(open Token) error
}

// prefixOp is a prefix operator along with the token that denoted it.
type prefixOp struct {
	op  *Operator
	tok Token
}

// stream is a source string with a single token of lookahead.
type stream struct {
	d   *Dialect
	src string
	// pos is the offset at which to scan the token after tok.
	pos int
	// tok is the current lookahead token.
	tok Token
}

// next advances the lookahead to the next token.
func (s *stream) next() error {
	tok, pos, err := s.d.Scan(s.src, s.pos)
	s.pos = pos
	if err != nil {
		return err
	}
	s.tok = tok
	return nil
}

type parser struct {
	s     stream
	table *Table
	out   sink
	// ops is a stack of prefix operators, shared among nested prefix chains.
	ops []prefixOp
	// depth is the current nesting depth; max is its bound, or <= 0 for none.
	depth, max int
}

// parse parses src in its entirety, sending results to out. The result is
// false with a nil error if src contains no tokens.
func parse(src string, c *config, out sink) (bool, error) {
	p := parser{
		s:     stream{d: c.dialect, src: src},
		table: &c.dialect.table,
		out:   out,
		max:   c.maxDepth,
	}
	if err := p.s.next(); err != nil {
		return false, err
	}
	ok, err := p.level(0)
	if err != nil {
		return false, err
	}
	if p.s.tok.Kind != TokenNone {
		return false, &IncompleteParseError{Token: p.s.tok}
	}
	return ok, nil
}

// level parses an expression at precedence level k. If no expression begins
// at the current token, the result is false with a nil error and no tokens
// have been consumed.
func (p *parser) level(k int) (bool, error) {
	if k == len(p.table.levels) {
		return p.atom()
	}
	l := &p.table.levels[k]
	switch l.Shape {
	case UnaryPrefix:
		return p.unaryPrefix(k, l)
	case BinaryLeftAssoc:
		return p.binaryLeft(k, l)
	case BinaryRightAssoc:
		return p.binaryRight(k, l)
	default:
		panic("precedence: invalid level shape " + l.Shape.String())
	}
}

func (p *parser) unaryPrefix(k int, l *Level) (bool, error) {
	mark := len(p.ops)
	for {
		op := l.find(p.s.tok.Kind)
		if op == nil {
			break
		}
		p.ops = append(p.ops, prefixOp{op: op, tok: p.s.tok})
		if err := p.s.next(); err != nil {
			return false, err
		}
	}
	if len(p.ops) == mark {
		return p.level(k + 1)
	}
	if err := p.operand(k+1, p.ops[len(p.ops)-1].tok); err != nil {
		return false, err
	}
	err := p.out.prefix(p.ops[mark:])
	p.ops = p.ops[:mark]
	return true, err
}

func (p *parser) binaryLeft(k int, l *Level) (bool, error) {
	ok, err := p.level(k + 1)
	if !ok || err != nil {
		return ok, err
	}
	for {
		op := l.find(p.s.tok.Kind)
		if op == nil {
			return true, nil
		}
		tok := p.s.tok
		if err := p.s.next(); err != nil {
			return false, err
		}
		if err := p.operand(k+1, tok); err != nil {
			return false, err
		}
		// Combining here, before looking for the next operator, is what
		// makes the level a left fold.
		if err := p.out.infix(op, tok); err != nil {
			return false, err
		}
	}
}

func (p *parser) binaryRight(k int, l *Level) (bool, error) {
	ok, err := p.level(k + 1)
	if !ok || err != nil {
		return ok, err
	}
	op := l.find(p.s.tok.Kind)
	if op == nil {
		return true, nil
	}
	tok := p.s.tok
	if err := p.enter(tok); err != nil {
		return false, err
	}
	if err := p.s.next(); err != nil {
		return false, err
	}
	// The right operand recurses into the same level, so further operators
	// at this level group to the right.
	if err := p.operand(k, tok); err != nil {
		return false, err
	}
	p.depth--
	return true, p.out.infix(op, tok)
}

// atom parses an integer or a parenthesized expression.
func (p *parser) atom() (bool, error) {
	switch p.s.tok.Kind {
	case TokenInt:
		tok := p.s.tok
		if err := p.s.next(); err != nil {
			return false, err
		}
		return true, p.out.leaf(tok)
	case '(':
		open := p.s.tok
		if err := p.enter(open); err != nil {
			return false, err
		}
		if err := p.s.next(); err != nil {
			return false, err
		}
		if err := p.operand(0, open); err != nil {
			return false, err
		}
		if p.s.tok.Kind != ')' {
			return false, &ParseError{Want: ')', Got: p.s.tok, Start: open.Pos}
		}
		if err := p.s.next(); err != nil {
			return false, err
		}
		p.depth--
		return true, p.out.group(open)
	default:
		return false, nil
	}
}

// operand parses an expression at level k which must be present because of
// the token from.
func (p *parser) operand(k int, from Token) error {
	ok, err := p.level(k)
	if err != nil {
		return err
	}
	if !ok {
		return &ParseError{Want: TokenInt, Got: p.s.tok, Start: from.Pos}
	}
	return nil
}

// enter increases the nesting depth for a subexpression started by tok.
func (p *parser) enter(tok Token) error {
	p.depth++
	if p.max > 0 && p.depth > p.max {
		return &NestingError{Offset: tok.Pos, Depth: p.max}
	}
	return nil
}
