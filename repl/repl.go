/*
File    : dragon/repl/repl.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/

// Package repl implements the interactive Dragon session.
//
// Dragon statements are line-oriented, but blocks and function bodies
// span lines, so the REPL buffers input until it forms a complete
// compilable chunk: an open `if`/`while` or an unfinished `function`
// keeps the continuation prompt going. Each complete chunk executes
// against a persistent global frame, so variables and functions survive
// between entries.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/yukatan1701/dragon/eval"
	"github.com/yukatan1701/dragon/lexer"
	"github.com/yukatan1701/dragon/parser"
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

// Prompt is the primary input prompt.
const Prompt = "dragon> "

// ContPrompt is shown while the current entry still needs more lines.
const ContPrompt = "   ...> "

// ExitCommand ends the session.
const ExitCommand = "/exit"

// Repl is one interactive session.
type Repl struct {
	Version string
	session *eval.Interpreter
	buffer  []string
}

// NewRepl creates a session with a fresh global scope.
func NewRepl(version string) *Repl {
	return &Repl{Version: version, session: eval.NewSession()}
}

// Start reads entries until EOF or /exit, reporting errors to out.
// Program output (print/println) also goes to out; entries are not
// echoed and no result value is printed.
func (r *Repl) Start(out io.Writer) error {
	rl, err := readline.New(Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	r.session.SetWriter(out)
	cyanColor.Fprintf(out, "DRAGON %s is running. Type %s to leave.\n", r.Version, ExitCommand)
	for {
		line, err := rl.Readline()
		if err != nil {
			// Ctrl-D or Ctrl-C: drop the pending entry and leave.
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == ExitCommand {
			return nil
		}
		r.buffer = append(r.buffer, line)
		if done := r.tryExecute(out); done {
			rl.SetPrompt(Prompt)
		} else {
			rl.SetPrompt(ContPrompt)
		}
	}
}

// tryExecute compiles the buffered lines and runs them when they form a
// complete chunk. It reports false while more input is needed.
func (r *Repl) tryExecute(out io.Writer) bool {
	src := strings.Join(r.buffer, "\n")
	lex, err := lexer.FromString(src)
	if err != nil {
		r.buffer = nil
		redColor.Fprintf(out, "%v\n", err)
		return true
	}
	p := parser.New(lex)
	p.AddKnownFunctions(r.session.Functions())
	funcs, err := p.Parse()
	if err != nil {
		var syntaxErr *parser.SyntaxError
		if errors.As(err, &syntaxErr) && syntaxErr.Incomplete {
			return false
		}
		r.buffer = nil
		redColor.Fprintf(out, "%v\n", err)
		return true
	}
	r.buffer = nil
	if err := r.session.Execute(funcs); err != nil {
		redColor.Fprintf(out, "%v\n", err)
	}
	return true
}

// PrintBannerInfo writes the version banner shown by the CLI before the
// first prompt.
func (r *Repl) PrintBannerInfo(w io.Writer) {
	yellowColor.Fprintf(w, "Dragon interpreter %s\n", r.Version)
	cyanColor.Fprintln(w, "Line-oriented scripting language: if/endif, while/endwhile, functions ending in return.")
	fmt.Fprintln(w)
}
