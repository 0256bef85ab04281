/*
File    : dragon/eval/session.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/
package eval

import (
	"github.com/yukatan1701/dragon/lexer"
	"github.com/yukatan1701/dragon/parser"
	"github.com/yukatan1701/dragon/scope"
)

// NewSession creates an interpreter for incremental execution: the
// @global frame is pushed immediately and persists across Execute calls,
// so variables and functions defined by one chunk of input remain
// visible to the next. This is the REPL's execution engine.
func NewSession() *Interpreter {
	ip := New(make(parser.FuncMap))
	ip.scopes.Push(scope.NewFrame(lexer.GlobalFunc))
	ip.funcStack = append(ip.funcStack, lexer.GlobalFunc)
	return ip
}

// Functions returns the functions the session knows so far. The REPL
// seeds each new parse with them, keeping earlier definitions callable.
func (ip *Interpreter) Functions() parser.FuncMap {
	return ip.funcs
}

// Execute runs one compiled chunk against the persistent session state.
// Function definitions in the chunk are merged into the session (later
// definitions shadow earlier ones); the chunk's @global body then runs
// directly in the session's global frame. Unlike Run, `main` is not
// invoked implicitly.
func (ip *Interpreter) Execute(funcs parser.FuncMap) error {
	for name, fn := range funcs {
		if name != lexer.GlobalFunc {
			ip.funcs[name] = fn
		}
	}
	chunk, ok := funcs[lexer.GlobalFunc]
	if !ok {
		return nil
	}
	_, err := ip.runFunction(chunk)
	return err
}
