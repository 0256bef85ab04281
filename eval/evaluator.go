/*
File    : dragon/eval/evaluator.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/

// Package eval executes compiled Dragon programs.
//
// The interpreter is a stack machine: every postfix line runs left to
// right against a value stack that is discarded at the end of the line.
// Calls push a fresh frame on the scope stack; arguments and return
// values travel over a separate call stack, deep-copied at every hop so
// no value is ever shared across a call boundary. Execution starts with
// the synthetic @global function, whose frame persists for the whole run
// and serves as the global scope, followed by `main` when one is defined.
package eval

import (
	"fmt"
	"io"
	"os"

	"github.com/yukatan1701/dragon/lexer"
	"github.com/yukatan1701/dragon/objects"
	"github.com/yukatan1701/dragon/parser"
	"github.com/yukatan1701/dragon/scope"
)

// RuntimeError is an execution error: an undefined name, a type
// mismatch, a bad operand. The first one aborts the run.
type RuntimeError struct {
	Msg    string
	Line   int
	Column int
}

// Error renders the error with the runtime-phase prefix, appending the
// source position when one is known.
func (e *RuntimeError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("[RUNTIME EXCEPTION] %s", e.Msg)
	}
	return fmt.Sprintf("[RUNTIME EXCEPTION] %s at %d:%d", e.Msg, e.Line, e.Column)
}

// errorAt builds a RuntimeError positioned at a token.
func errorAt(tok *lexer.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Msg:    fmt.Sprintf(format, args...),
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// entry is one slot of the per-line value stack: either a resolved
// runtime value or a still-unresolved identifier. Identifiers resolve
// lazily, at the operator that consumes them, because assignment and
// `global` need the name rather than the value.
type entry struct {
	obj objects.Object
	id  *lexer.Token
}

// Interpreter executes a FuncMap. Program output goes to Writer; debug
// traces, when enabled, go to TraceWriter.
type Interpreter struct {
	funcs     parser.FuncMap
	scopes    *scope.Stack
	callStack []objects.Object
	funcStack []string

	// Writer receives the program's print/println output.
	Writer io.Writer
	// Debug enables step tracing on TraceWriter.
	Debug bool
	// TraceWriter receives debug traces; defaults to stderr.
	TraceWriter io.Writer
}

// New creates an interpreter for a compiled program, writing program
// output to stdout.
func New(funcs parser.FuncMap) *Interpreter {
	return &Interpreter{
		funcs:       funcs,
		scopes:      scope.NewStack(),
		Writer:      os.Stdout,
		TraceWriter: os.Stderr,
	}
}

// SetWriter redirects the program's print/println output, which is how
// the tests capture it.
func (ip *Interpreter) SetWriter(w io.Writer) {
	ip.Writer = w
}

// Run executes the program: first @global, then `main` if defined. The
// @global frame persists between the two, so main sees the top-level
// variables as globals.
func (ip *Interpreter) Run() error {
	if _, err := ip.call(lexer.GlobalFunc); err != nil {
		return err
	}
	if _, ok := ip.funcs[mainFunc]; ok {
		if _, err := ip.call(mainFunc); err != nil {
			return err
		}
	}
	return nil
}

// mainFunc is the optional entry function invoked after @global.
const mainFunc = "main"

// call activates a function by name: pushes a frame, binds parameters
// from the call stack in reverse declaration order, runs the body, and
// tears the frame down again. The @global frame is the exception: it
// stays pushed so later calls resolve globals against it. The returned
// flag reports whether the body executed `return` with a value, in which
// case the value is on top of the call stack.
func (ip *Interpreter) call(name string) (bool, error) {
	fn, ok := ip.funcs[name]
	if !ok {
		return false, &RuntimeError{Msg: fmt.Sprintf("Function with name `%s` does not exist", name)}
	}
	if len(ip.callStack) < len(fn.Params) {
		return false, &RuntimeError{Msg: fmt.Sprintf("Not enough arguments for function `%s`", name)}
	}
	ip.trace("entering `%s`", name)

	ip.scopes.Push(scope.NewFrame(name))
	for i := len(fn.Params) - 1; i >= 0; i-- {
		arg := ip.popCall()
		ip.scopes.Current().Vars[fn.Params[i]] = arg.Clone()
	}
	ip.funcStack = append(ip.funcStack, name)

	hasReturned, err := ip.runFunction(fn)

	if name != lexer.GlobalFunc {
		ip.scopes.Pop()
	}
	ip.funcStack = ip.funcStack[:len(ip.funcStack)-1]
	ip.trace("leaving `%s` (returned value: %t)", name, hasReturned)
	return hasReturned, err
}

// runFunction executes the postfix lines of fn against the current
// frame. It reports whether a `return` with a value was executed.
func (ip *Interpreter) runFunction(fn *parser.Function) (bool, error) {
lines:
	for idx := 0; idx < len(fn.Postfix); idx++ {
		line := fn.Postfix[idx]
		var stack []entry
		for _, tok := range line {
			switch {
			case tok.IsConstant():
				stack = append(stack, entry{obj: objects.FromToken(tok)})

			case tok.Kind == lexer.IDENT:
				callee, ok := ip.funcs[tok.Text]
				if !ok || tok.Text == lexer.GlobalFunc {
					stack = append(stack, entry{id: tok})
					break
				}
				retValue, err := ip.callFromStack(tok, callee, &stack)
				if err != nil {
					return false, err
				}
				if retValue != nil {
					stack = append(stack, entry{obj: retValue})
				}

			case tok.Class == lexer.PREFIX:
				switch tok.Kind {
				case lexer.RETURN:
					if len(stack) == 0 {
						return false, nil
					}
					value, err := ip.resolve(&stack[len(stack)-1], tok)
					if err != nil {
						return false, err
					}
					ip.callStack = append(ip.callStack, value.Clone())
					return true, nil
				case lexer.GOTO_UN:
					target, err := ip.jumpTarget(&stack, tok)
					if err != nil {
						return false, err
					}
					idx = target - 1
					continue lines
				default:
					if err := ip.applyUnary(tok, &stack); err != nil {
						return false, err
					}
				}

			case tok.Class == lexer.BINARY:
				if len(stack) < 2 {
					return false, errorAt(tok, "Not enough operands for %s", lexer.KindName(tok.Kind))
				}
				if tok.Kind == lexer.GOTO_BIN {
					jump, target, err := ip.conditionalJump(&stack, tok)
					if err != nil {
						return false, err
					}
					if jump {
						idx = target - 1
					}
					continue lines
				}
				if err := ip.applyBinary(tok, &stack); err != nil {
					return false, err
				}

			default:
				return false, errorAt(tok, "Unexpected token %s", tok)
			}
		}
	}
	return false, nil
}

// callFromStack performs a call occurring inside an expression: it moves
// the callee's arguments from the value stack to the call stack (deep
// copies, keeping their order), invokes the function, and hands back the
// returned value if there was one.
func (ip *Interpreter) callFromStack(tok *lexer.Token, callee *parser.Function, stack *[]entry) (objects.Object, error) {
	argc := len(callee.Params)
	if len(*stack) < argc {
		return nil, errorAt(tok, "Not enough arguments for function `%s`", callee.Name)
	}
	args := make([]objects.Object, argc)
	for i := argc - 1; i >= 0; i-- {
		top := &(*stack)[len(*stack)-1]
		value, err := ip.resolve(top, tok)
		if err != nil {
			return nil, err
		}
		args[i] = value.Clone()
		*stack = (*stack)[:len(*stack)-1]
	}
	ip.callStack = append(ip.callStack, args...)

	hasReturned, err := ip.call(callee.Name)
	if err != nil {
		return nil, err
	}
	if !hasReturned {
		return nil, nil
	}
	return ip.popCall(), nil
}

// jumpTarget consumes the integer line index a synthesized goto* jumps
// to.
func (ip *Interpreter) jumpTarget(stack *[]entry, tok *lexer.Token) (int, error) {
	if len(*stack) == 0 {
		return 0, errorAt(tok, "Not enough operands for goto")
	}
	top := (*stack)[len(*stack)-1]
	*stack = (*stack)[:len(*stack)-1]
	target, ok := top.obj.(*objects.Integer)
	if !ok {
		return 0, errorAt(tok, "Integer position expected for goto")
	}
	ip.trace("jump to line %d", target.Value)
	return int(target.Value), nil
}

// conditionalJump handles the synthesized binary goto: pop the target
// line index, pop the (already negated) condition, and jump when it is
// true.
func (ip *Interpreter) conditionalJump(stack *[]entry, tok *lexer.Token) (bool, int, error) {
	right := (*stack)[len(*stack)-1]
	left := (*stack)[len(*stack)-2]
	*stack = (*stack)[:len(*stack)-2]
	target, ok := right.obj.(*objects.Integer)
	if !ok {
		return false, 0, errorAt(tok, "Integer position expected for goto")
	}
	cond, ok := left.obj.(*objects.Boolean)
	if !ok {
		return false, 0, errorAt(tok, "Boolean expected for goto")
	}
	if cond.Value {
		ip.trace("conditional jump to line %d", target.Value)
	}
	return cond.Value, int(target.Value), nil
}

// resolve turns a stack entry into a runtime value: identifiers are
// looked up through the scope rules, values pass through as-is.
func (ip *Interpreter) resolve(e *entry, at *lexer.Token) (objects.Object, error) {
	if e.obj != nil {
		return e.obj, nil
	}
	obj, ok := ip.scopes.Lookup(e.id.Text)
	if !ok {
		return nil, errorAt(at, "Variable with name `%s` does not exist in this scope", e.id.Text)
	}
	return obj, nil
}

// popCall removes and returns the top of the call stack.
func (ip *Interpreter) popCall() objects.Object {
	top := ip.callStack[len(ip.callStack)-1]
	ip.callStack = ip.callStack[:len(ip.callStack)-1]
	return top
}

// trace writes a debug line when tracing is enabled, tagged with the
// function currently on top of the function stack.
func (ip *Interpreter) trace(format string, args ...interface{}) {
	if !ip.Debug {
		return
	}
	where := ""
	if len(ip.funcStack) > 0 {
		where = " " + ip.funcStack[len(ip.funcStack)-1]
	}
	fmt.Fprintf(ip.TraceWriter, "[RUNTIME]"+where+": "+format+"\n", args...)
}
