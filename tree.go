package precedence

import "strconv"

// Node is a node in an expression tree. Children are indices into the same
// Tree; index 0 means no child.
type Node struct {
	// Token labels the node. Leaves are integer literals. A node with kind
	// TokenNone and a left child passes through to that child; the parser
	// creates these for parenthesized subexpressions.
	Token Token
	// Left and Right are the indices of the node's children. A prefix
	// operator has only a left child.
	Left, Right int
}

// Tree is an append-only arena of expression nodes. Real nodes occupy
// indices 1 through Len, and the tree is rooted at its last node. Resetting
// or forgetting nodes keeps the backing storage for reuse across parses.
// It is not safe to use a Tree concurrently.
type Tree struct {
	cfg   config
	nodes []Node
	// stack holds the indices of materialized operands during Parse.
	stack []int
}

// NewTree creates an empty tree. The options are applied in order and
// configure Parse.
func NewTree(opts ...Option) *Tree {
	return &Tree{cfg: newConfig(opts)}
}

// Len returns the number of nodes in the tree, which is also the index of the
// last node.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the index of the last node, or 0 if the tree is empty.
func (t *Tree) Root() int {
	return len(t.nodes)
}

// Node returns the node at index i. Panics if i is not in [1, Len].
func (t *Tree) Node(i int) Node {
	if i < 1 || i > len(t.nodes) {
		panic("precedence: node index " + strconv.Itoa(i) + " out of range [1, " + strconv.Itoa(len(t.nodes)) + "]")
	}
	return t.nodes[i-1]
}

// Nodes returns the nodes of the tree in index order, so that node i is at
// Nodes()[i-1]. The result shares storage with t and is valid until the next
// change to t.
func (t *Tree) Nodes() []Node {
	return t.nodes
}

// Append adds a node to the tree and returns its index. Panics if either
// child index is not less than the new node's index, or if the node has a
// right child but no left child.
func (t *Tree) Append(n Node) int {
	id := len(t.nodes) + 1
	if n.Left < 0 || n.Left >= id || n.Right < 0 || n.Right >= id {
		panic("precedence: node " + strconv.Itoa(id) + " has child " + strconv.Itoa(n.Left) + ", " + strconv.Itoa(n.Right) + " not below it")
	}
	if n.Left == 0 && n.Right != 0 {
		panic("precedence: node " + strconv.Itoa(id) + " has right child without left")
	}
	t.nodes = append(t.nodes, n)
	return id
}

// Reset removes all nodes from the tree.
func (t *Tree) Reset() {
	t.Forget(0)
}

// Forget truncates the tree to its first n nodes. Panics if n is not in
// [0, Len].
func (t *Tree) Forget(n int) {
	if n < 0 || n > len(t.nodes) {
		panic("precedence: cannot forget to " + strconv.Itoa(n) + " of " + strconv.Itoa(len(t.nodes)) + " nodes")
	}
	t.nodes = t.nodes[:n]
}

// Free removes all nodes and releases the tree's storage.
func (t *Tree) Free() {
	t.nodes = nil
	t.stack = nil
}

// Parse parses src and appends its nodes to the tree. The result is the index
// of the expression's root, which is the tree's new last node. If src
// contains no expression, the result is 0 with no error. If there is an
// error, the tree is restored to its length before the call.
func (t *Tree) Parse(src string) (int, error) {
	mark := len(t.nodes)
	t.stack = t.stack[:0]
	ok, err := parse(src, &t.cfg, t)
	if err != nil {
		t.Forget(mark)
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	if len(t.stack) != 1 || t.stack[0] != t.Root() {
		panic("precedence: inconsistent node stack " + strconv.Itoa(len(t.stack)) + " items")
	}
	return t.Root(), nil
}

func (t *Tree) push(n Node) {
	t.stack = append(t.stack, t.Append(n))
}

func (t *Tree) pop() int {
	i := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	return i
}

func (t *Tree) leaf(tok Token) error {
	t.push(Node{Token: tok})
	return nil
}

func (t *Tree) prefix(ops []prefixOp) error {
	for i := len(ops) - 1; i >= 0; i-- {
		t.push(Node{Token: ops[i].tok, Left: t.pop()})
	}
	return nil
}

func (t *Tree) infix(op *Operator, tok Token) error {
	r := t.pop()
	l := t.pop()
	t.push(Node{Token: tok, Left: l, Right: r})
	return nil
}

func (t *Tree) group(open Token) error {
	t.push(Node{Token: Token{Pos: open.Pos}, Left: t.pop()})
	return nil
}
