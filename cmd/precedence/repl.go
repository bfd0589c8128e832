package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/precedence"
)

const replHelp = `enter an expression to evaluate it, or a command:
  :arith     use the arithmetic dialect
  :bitwise   use the bitwise dialect
  :sexpr     toggle printing S-expressions
  :dump      toggle dumping expression trees
  :trace     toggle printing evaluation traces
  :quit      exit (also :exit or Ctrl+D)`

// repl reads expressions from the terminal until the user quits. If hist is
// not empty, it names the file from which to load and to which to save
// line history.
func (h *host) repl(hist string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if hist != "" {
		loadHistory(ln, hist)
		defer saveHistory(ln, hist)
	}

	for {
		line, err := ln.Prompt(h.prompt())
		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, liner.ErrPromptAborted):
			fmt.Println()
			return nil
		default:
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(line, ":") {
			if h.command(os.Stdout, line) {
				return nil
			}
			continue
		}
		if err := h.run(os.Stdout, line); err != nil {
			if c := caret(line, err); c != "" {
				fmt.Fprintln(os.Stderr, c)
			}
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// historian is the part of a line editor that keeps history.
type historian interface {
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
}

// loadHistory reads line history from the file at path. A missing file is
// not an error; other failures are logged.
func loadHistory(h historian, path string) {
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("reading history: %v", err)
		}
		return
	}
	defer f.Close()
	if _, err := h.ReadHistory(f); err != nil {
		log.Printf("reading history from %s: %v", path, err)
	}
}

// saveHistory writes line history to the file at path, logging failures.
func saveHistory(h historian, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Printf("saving history: %v", err)
		return
	}
	if _, err := h.WriteHistory(f); err != nil {
		log.Printf("saving history to %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		log.Printf("saving history to %s: %v", path, err)
	}
}

func (h *host) prompt() string {
	return h.ev.Dialect().Name() + "> "
}

// command executes a REPL command. The result is true if the REPL should
// exit.
func (h *host) command(w io.Writer, line string) bool {
	switch strings.ToLower(line) {
	case ":quit", ":exit", ":q":
		return true
	case ":arith", ":arithmetic":
		h.setDialect(precedence.Arithmetic)
	case ":bitwise":
		h.setDialect(precedence.Bitwise)
	case ":sexpr":
		h.sexpr = !h.sexpr
		fmt.Fprintln(w, "sexpr", onoff(h.sexpr))
	case ":dump":
		h.dump = !h.dump
		fmt.Fprintln(w, "dump", onoff(h.dump))
	case ":trace":
		h.quiet = !h.quiet
		fmt.Fprintln(w, "trace", onoff(!h.quiet))
	case ":help", ":?":
		fmt.Fprintln(w, replHelp)
	default:
		fmt.Fprintf(w, "unknown command %s; type :help for commands\n", line)
	}
	return false
}

func onoff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
