package precedence

import "strconv"

// ParseError is an error indicating a token other than the one the grammar
// requires, e.g. a missing close parenthesis. It implements InputError.
type ParseError struct {
	// Want is the kind of token that was expected.
	Want TokenKind
	// Got is the token that was found instead.
	Got Token
	// Start is the position of the construct being parsed when the error
	// occurred: the open parenthesis for a missing close parenthesis, or the
	// operator for a missing operand.
	Start int
}

func (err *ParseError) Error() string {
	var want string
	switch err.Want {
	case TokenInt:
		want = "integer"
	default:
		want = err.Want.String()
	}
	return errpos(err.Got.Pos, "expected "+want+" but found "+describe(err.Got)+" (from "+strconv.Itoa(err.Start)+")")
}

func (err *ParseError) Pos() int {
	return err.Got.Pos
}

// IncompleteParseError is an error indicating input remaining after a
// complete expression. It implements InputError.
type IncompleteParseError struct {
	// Token is the first token that was not consumed.
	Token Token
}

func (err *IncompleteParseError) Error() string {
	return errpos(err.Token.Pos, "unexpected "+describe(err.Token)+" after expression")
}

func (err *IncompleteParseError) Pos() int {
	return err.Token.Pos
}

// NestingError is an error indicating an expression nested more deeply than
// the parse allows. It implements InputError.
type NestingError struct {
	// Offset is the position of the token that exceeded the bound.
	Offset int
	// Depth is the bound that was exceeded.
	Depth int
}

func (err *NestingError) Error() string {
	return errpos(err.Offset, "expression nested deeper than "+strconv.Itoa(err.Depth))
}

func (err *NestingError) Pos() int {
	return err.Offset
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the byte offset in the input of the token that caused the
	// error.
	Pos() int
}

var (
	_ InputError = (*ScanError)(nil)
	_ InputError = (*ParseError)(nil)
	_ InputError = (*IncompleteParseError)(nil)
	_ InputError = (*NestingError)(nil)
	_ InputError = (*DomainError)(nil)
)
