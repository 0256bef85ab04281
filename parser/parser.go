/*
File    : dragon/parser/parser.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/

// Package parser compiles the lexer's token lines into per-function
// postfix programs.
//
// A Dragon program is a flat sequence of lines. A line starting with
// `function` opens a definition; the body runs until the first line that
// starts with `return` while no `if`/`while` block is open. Every line
// outside a definition belongs to the synthetic @global function, which
// executes first. Each body line is translated to postfix with
// Shunting-Yard, and `if`/`else`/`endif`/`while`/`endwhile` lower to
// synthesized conditional and unconditional jumps patched onto already
// emitted lines.
package parser

import (
	"fmt"

	"github.com/yukatan1701/dragon/lexer"
)

// SyntaxError is a structural error in the token stream: a malformed
// function header, an unmatched bracket or block, a wrong argument count.
// Compilation stops at the first one.
type SyntaxError struct {
	Msg    string
	Line   int
	Column int
	// Incomplete marks errors that more input could still fix: an open
	// block or an unterminated function body at end of input. The REPL
	// uses it to keep buffering instead of reporting.
	Incomplete bool
}

// Error renders the error with the syntax-phase prefix, appending the
// source position when one is known.
func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("[SYNTAX EXCEPTION] %s", e.Msg)
	}
	return fmt.Sprintf("[SYNTAX EXCEPTION] %s at %d:%d", e.Msg, e.Line, e.Column)
}

// errorAt builds a SyntaxError positioned at a token.
func errorAt(tok *lexer.Token, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Msg:    fmt.Sprintf(format, args...),
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// Parser drives the compilation of one token stream into a FuncMap.
type Parser struct {
	lex    *lexer.Lexer
	funcs  FuncMap
	seeded map[string]struct{}
}

// New creates a parser over a tokenized source.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex, funcs: make(FuncMap), seeded: make(map[string]struct{})}
}

// AddKnownFunctions seeds the parser with functions compiled earlier, so
// identifiers naming them compile as calls with arity checking. The REPL
// uses this to keep functions from previous entries callable; a seeded
// function may be redefined by the new source.
func (p *Parser) AddKnownFunctions(funcs FuncMap) {
	for name, fn := range funcs {
		if name == lexer.GlobalFunc {
			continue
		}
		p.funcs[name] = fn
		p.seeded[name] = struct{}{}
	}
}

// Parse compiles the whole token stream and returns the function map,
// including the synthetic @global entry. The first structural error
// aborts and is returned as a *SyntaxError.
func (p *Parser) Parse() (FuncMap, error) {
	global := newBuilder(p, &Function{Name: lexer.GlobalFunc})
	p.funcs[lexer.GlobalFunc] = global.fn

	var current *builder // non-nil while inside a function body
	for _, line := range p.lex.TokenLines() {
		if len(line) == 0 {
			continue
		}
		first := line[0]
		if first.Kind == lexer.FUNCTION {
			if current != nil {
				return nil, errorAt(first, "Nested function definition inside `%s`", current.fn.Name)
			}
			fn, err := p.parseHeader(line)
			if err != nil {
				return nil, err
			}
			// Register before compiling the body so recursive calls
			// resolve with their declared arity.
			p.funcs[fn.Name] = fn
			current = newBuilder(p, fn)
			continue
		}
		if current != nil {
			if err := current.compileLine(line); err != nil {
				return nil, err
			}
			if first.Kind == lexer.RETURN && len(current.blocks) == 0 {
				current.finish()
				current = nil
			}
			continue
		}
		if err := global.compileLine(line); err != nil {
			return nil, err
		}
	}
	if current != nil {
		return nil, &SyntaxError{
			Msg:        fmt.Sprintf("Return statement for function `%s` not found", current.fn.Name),
			Incomplete: true,
		}
	}
	if len(global.blocks) > 0 {
		open := global.blocks[len(global.blocks)-1]
		return nil, &SyntaxError{
			Msg:        fmt.Sprintf("Unclosed `%s` block", lexer.KindName(open.kind)),
			Line:       open.tok.Line,
			Column:     open.tok.Column,
			Incomplete: true,
		}
	}
	global.finish()
	return p.funcs, nil
}

// parseHeader validates `function name ( p1 , p2 , ... )` and returns the
// declared function. Nothing may follow the closing parenthesis.
func (p *Parser) parseHeader(line []*lexer.Token) (*Function, error) {
	kw := line[0]
	if len(line) < 2 {
		return nil, errorAt(kw, "Function name expected after `function`")
	}
	name := line[1]
	if name.Kind != lexer.IDENT {
		return nil, errorAt(name, "Function name expected after `function`")
	}
	if _, exists := p.funcs[name.Text]; exists {
		if _, ok := p.seeded[name.Text]; !ok {
			return nil, errorAt(name, "Function `%s` redefined", name.Text)
		}
		delete(p.seeded, name.Text)
	}
	if len(line) < 3 || line[2].Kind != lexer.LEFT_PAREN {
		return nil, errorAt(name, "'(' expected after function name")
	}
	if len(line) < 4 {
		return nil, errorAt(line[2], "')' or parameter expected")
	}
	fn := &Function{Name: name.Text}
	for i := 3; ; i += 2 {
		if i >= len(line) {
			return nil, errorAt(line[len(line)-1], "')' expected in function declaration")
		}
		tok := line[i]
		if tok.Kind == lexer.RIGHT_PAREN {
			if i+1 != len(line) {
				return nil, errorAt(line[i+1], "Extra tokens after ')' in function declaration")
			}
			return fn, nil
		}
		if tok.Kind != lexer.IDENT {
			return nil, errorAt(tok, "Parameter name expected in function declaration")
		}
		fn.Params = append(fn.Params, tok.Text)
		if i+1 >= len(line) {
			return nil, errorAt(tok, "')' expected in function declaration")
		}
		switch sep := line[i+1]; sep.Kind {
		case lexer.RIGHT_PAREN:
			if i+2 != len(line) {
				return nil, errorAt(line[i+2], "Extra tokens after ')' in function declaration")
			}
			return fn, nil
		case lexer.COMMA:
			// Next parameter.
		default:
			return nil, errorAt(sep, "',' or ')' expected in function declaration")
		}
	}
}

// isFunction reports whether name refers to a function declared so far.
// Definitions must precede calls in source order.
func (p *Parser) isFunction(name string) (*Function, bool) {
	fn, ok := p.funcs[name]
	if !ok || name == lexer.GlobalFunc {
		return nil, false
	}
	return fn, true
}
