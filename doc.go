// Package precedence implements a table-driven operator-precedence parser for
// integer expressions.
//
// A Table lists precedence levels from loosest to tightest binding. Each level
// is prefix, left-associative infix, or right-associative infix, and a single
// recursive procedure parses every level by consulting the table. The same
// parser feeds two consumers: an Evaluator, which computes a 64-bit result as
// it parses and records a postfix trace of the evaluation, and a Tree, which
// builds an index-addressed arena of nodes that renders as an S-expression.
//
// In the Arithmetic dialect, ** is the loosest operator, so "2**1+2" is 8 and
// "5**3**2" is 5**9. "2*(3+11)/5" is 5, with division truncating. The Bitwise
// dialect adds % & | ^ << >> and prefix ~, so "-~12" renders as "(- (~ 12))".
package precedence
