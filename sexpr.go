package precedence

import "strings"

// String renders the tree's root as an S-expression. An empty tree renders
// as the empty string.
func (t *Tree) String() string {
	if t.Root() == 0 {
		return ""
	}
	return t.SExpr(t.Root())
}

// SExpr renders the subtree at index i as a fully parenthesized prefix
// expression, e.g. "(+ 1 (* 2 3))".
func (t *Tree) SExpr(i int) string {
	var b strings.Builder
	t.WriteSExpr(&b, i)
	return b.String()
}

// WriteSExpr writes the S-expression of the subtree at index i to b. Trees
// may be as deep as their source is long, so rendering keeps its own stack
// rather than recursing.
func (t *Tree) WriteSExpr(b *strings.Builder, i int) {
	// Positive entries are node indices; negative entries are the bytes to
	// write, negated.
	stack := []int{i}
	for len(stack) > 0 {
		k := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if k < 0 {
			b.WriteByte(byte(-k))
			continue
		}
		n := t.Node(k)
		switch {
		case n.Left == 0:
			b.WriteString(n.Token.Text)
		case n.Token.Kind == TokenNone:
			stack = append(stack, n.Left)
		default:
			b.WriteByte('(')
			b.WriteString(n.Token.Text)
			b.WriteByte(' ')
			stack = append(stack, -')')
			if n.Right != 0 {
				stack = append(stack, n.Right, -' ')
			}
			stack = append(stack, n.Left)
		}
	}
}
