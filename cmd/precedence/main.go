package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/zephyrtronium/precedence"
)

func main() {
	log.SetFlags(0)
	var (
		bitwise, sexpr, dump, quiet, interactive bool
		depth                                    int
		history                                  string
	)
	flag.BoolVar(&bitwise, "bitwise", false, "use the bitwise dialect (~ & | ^ % << >>)")
	flag.BoolVar(&sexpr, "sexpr", false, "also print the expression tree as an S-expression")
	flag.BoolVar(&dump, "dump", false, "dump the nodes of the expression tree")
	flag.BoolVar(&quiet, "q", false, "do not print evaluation traces")
	flag.BoolVar(&interactive, "i", false, "read expressions interactively (default if no args given)")
	flag.IntVar(&depth, "depth", precedence.DefaultMaxDepth, "maximum nesting depth, or 0 for no limit")
	flag.StringVar(&history, "history", defaultHistory(), "history file for interactive mode, or empty for none")
	flag.Parse()
	if depth < 0 {
		log.Fatalf("depth (%d) must not be negative", depth)
	}

	d := precedence.Arithmetic
	if bitwise {
		d = precedence.Bitwise
	}
	h := newHost(d, depth)
	h.sexpr, h.dump, h.quiet = sexpr, dump, quiet

	if interactive || flag.NArg() == 0 {
		if err := h.repl(history); err != nil {
			log.Fatal(err)
		}
		return
	}
	// Arguments concatenate without separators, so a shell-split expression
	// reads as it was typed.
	src := strings.Join(flag.Args(), "")
	if err := h.run(os.Stdout, src); err != nil {
		log.Fatal(err)
	}
}

func defaultHistory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".precedence_history")
}

var errNoExpression = errors.New("no expression")

// host evaluates and renders expressions for the command.
type host struct {
	ev    *precedence.Evaluator
	tree  *precedence.Tree
	depth int
	// sexpr, dump, and quiet select output.
	sexpr, dump, quiet bool
}

func newHost(d *precedence.Dialect, depth int) *host {
	h := &host{depth: depth}
	h.setDialect(d)
	return h
}

// setDialect replaces the host's evaluator and tree with ones for d.
func (h *host) setDialect(d *precedence.Dialect) {
	opts := precedence.Preset(precedence.WithDialect(d), precedence.MaxDepth(h.depth))
	h.ev = precedence.NewEvaluator(opts)
	h.tree = precedence.NewTree(opts)
}

// run evaluates src and writes the results to w.
func (h *host) run(w io.Writer, src string) error {
	r, err := h.ev.Eval(src)
	if err != nil {
		return fmt.Errorf("eval(%s): %w", src, err)
	}
	if r == nil {
		return errNoExpression
	}
	if !h.quiet {
		fmt.Fprintf(w, "trace: %v\n", r.Trace)
	}
	fmt.Fprintf(w, "eval(%s) = %d\n", src, r.Value)
	if !h.sexpr && !h.dump {
		return nil
	}
	h.tree.Reset()
	root, err := h.tree.Parse(src)
	if err != nil {
		// The evaluator accepted the same input.
		panic(fmt.Errorf("tree rejected %q: %w", src, err))
	}
	if h.sexpr {
		fmt.Fprintf(w, "sexpr(%s) = %s\n", src, h.tree.SExpr(root))
	}
	if h.dump {
		spew.Fdump(w, h.tree.Nodes())
	}
	return nil
}

// caret marks the position of an input error under the source line.
func caret(src string, err error) string {
	var ie precedence.InputError
	if !errors.As(err, &ie) || ie.Pos() > len(src) {
		return ""
	}
	return src + "\n" + strings.Repeat(" ", ie.Pos()) + "^"
}
