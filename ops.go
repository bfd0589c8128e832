package precedence

import (
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// powPrec is the precision in bits of real-valued exponentiation.
const powPrec = 128

// apply evaluates a binary operation.
func apply(op *Operator, tok Token, x, y int64) (int64, error) {
	switch op.Op {
	case OpAdd:
		return x + y, nil
	case OpSub:
		return x - y, nil
	case OpMul:
		return x * y, nil
	case OpDiv:
		if y == 0 {
			return 0, &DomainError{Offset: tok.Pos, Op: tok.Text, X: x, Y: y, Reason: "division by zero"}
		}
		return x / y, nil
	case OpMod:
		if y == 0 {
			return 0, &DomainError{Offset: tok.Pos, Op: tok.Text, X: x, Y: y, Reason: "division by zero"}
		}
		return x % y, nil
	case OpShl:
		if y < 0 {
			return 0, &DomainError{Offset: tok.Pos, Op: tok.Text, X: x, Y: y, Reason: "negative shift count"}
		}
		return x << uint64(y), nil
	case OpShr:
		if y < 0 {
			return 0, &DomainError{Offset: tok.Pos, Op: tok.Text, X: x, Y: y, Reason: "negative shift count"}
		}
		return x >> uint64(y), nil
	case OpAnd:
		return x & y, nil
	case OpOr:
		return x | y, nil
	case OpXor:
		return x ^ y, nil
	case OpPow:
		r, reason := pow(x, y)
		if reason != "" {
			return 0, &DomainError{Offset: tok.Pos, Op: tok.Text, X: x, Y: y, Reason: reason}
		}
		return r, nil
	default:
		panic("precedence: operator " + strconv.Quote(op.Name) + " is not binary")
	}
}

// pow computes x**y as a real number truncated toward zero. If the result is
// undefined or does not fit in 64 bits, the second result describes why.
func pow(x, y int64) (int64, string) {
	switch {
	case y == 0:
		return 1, ""
	case x == 0:
		if y < 0 {
			return 0, "zero to a negative power"
		}
		return 0, ""
	case x == 1:
		return 1, ""
	case x == -1:
		if y&1 != 0 {
			return -1, ""
		}
		return 1, ""
	}
	// |x| >= 2 from here.
	switch {
	case y > 63:
		return 0, "result out of range"
	case y < -64:
		// Magnitude below 2**-64.
		return 0, ""
	}
	b := new(big.Float).SetPrec(powPrec).SetInt64(x)
	b.Abs(b)
	e := new(big.Float).SetPrec(powPrec).SetInt64(y)
	z := bigfloat.Pow(new(big.Float).SetPrec(powPrec), b, e)
	if x < 0 && y&1 != 0 {
		z.Neg(z)
	}
	if y > 0 {
		// The exact result is an integer. Round to it so that error in the
		// last place cannot truncate to its neighbor.
		half := big.NewFloat(0.5)
		if z.Signbit() {
			z.Sub(z, half)
		} else {
			z.Add(z, half)
		}
	}
	r, _ := z.Int(nil)
	if !r.IsInt64() {
		return 0, "result out of range"
	}
	return r.Int64(), ""
}

// DomainError is an error returned when an operation is evaluated on operands
// outside its domain. It implements InputError.
type DomainError struct {
	// Offset is the position of the operator.
	Offset int
	// Op is the operator text.
	Op string
	// X and Y are the operands.
	X, Y int64
	// Reason describes the problem.
	Reason string
}

func (err *DomainError) Error() string {
	x := strconv.FormatInt(err.X, 10)
	y := strconv.FormatInt(err.Y, 10)
	return errpos(err.Offset, err.Reason+": "+x+" "+err.Op+" "+y)
}

func (err *DomainError) Pos() int {
	return err.Offset
}
