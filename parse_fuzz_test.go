//go:build go1.18
// +build go1.18

package precedence_test

import (
	"testing"

	"github.com/zephyrtronium/precedence"
)

func FuzzTree(f *testing.F) {
	f.Add("2*(3 + 11)/5")
	f.Add("-+-5")
	f.Add("1^(2+3)-9")
	f.Add(")(")
	f.Fuzz(func(t *testing.T, s string) {
		for _, d := range []*precedence.Dialect{precedence.Arithmetic, precedence.Bitwise} {
			tree := precedence.NewTree(precedence.WithDialect(d))
			root, terr := tree.Parse(s)
			_, eerr := precedence.EvalString(s, precedence.WithDialect(d))
			if terr != nil {
				if eerr == nil {
					t.Errorf("%s %q: tree error %v but evaluation succeeds", d.Name(), s, terr)
				}
				if tree.Len() != 0 {
					t.Errorf("%s %q: %d nodes left after error", d.Name(), s, tree.Len())
				}
				continue
			}
			if eerr != nil {
				if _, ok := eerr.(*precedence.DomainError); !ok {
					t.Errorf("%s %q: tree parses but evaluation fails with %v", d.Name(), s, eerr)
				}
			}
			if root != tree.Len() {
				t.Errorf("%s %q: root %d of %d nodes", d.Name(), s, root, tree.Len())
			}
			// Rendering visits every reachable node and must not panic.
			if root != 0 {
				_ = tree.SExpr(root)
			}
		}
	})
}
