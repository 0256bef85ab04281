/*
File    : dragon/parser/postfix.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/
package parser

import (
	"github.com/yukatan1701/dragon/lexer"
)

// blockInfo is one pending `if`/`else`/`while` on the block stack. line
// is the index of the postfix line the block keyword originated on; the
// token keeps the source position for error reporting.
type blockInfo struct {
	kind lexer.Kind
	line int
	tok  *lexer.Token
}

// callInfo tracks argument accounting for one in-progress call. lastSep
// is the token index of the opening '(' or of the last ',' seen, which is
// how empty arguments between separators are detected.
type callInfo struct {
	fn       *Function
	tok      *lexer.Token
	argCount int
	lastSep  int
}

// builder compiles the body of a single function, one line at a time.
// It owns the function's postfix program and the block stack used to
// patch jump fragments onto already emitted lines.
type builder struct {
	p      *Parser
	fn     *Function
	blocks []blockInfo
}

func newBuilder(p *Parser, fn *Function) *builder {
	return &builder{p: p, fn: fn}
}

// finish appends the trailing empty postfix line. It is the landing pad
// for jumps past the last statement and the fallthrough for bodies whose
// last executed line is not a `return`.
func (b *builder) finish() {
	b.fn.Postfix = append(b.fn.Postfix, []*lexer.Token{})
}

// notGotoTo builds the conditional jump fragment: negate the condition on
// top of the value stack, then jump to line target if the negation is
// true. The synthesized tokens carry the position of the block keyword
// they were lowered from.
func notGotoTo(target int, at *lexer.Token) []*lexer.Token {
	return []*lexer.Token{
		lexer.NewKeywordKind(lexer.NOT, at.Line, at.Column),
		lexer.NewInt(int64(target), at.Line, at.Column),
		lexer.NewKeywordKind(lexer.GOTO_BIN, at.Line, at.Column),
	}
}

// gotoTo builds the unconditional jump fragment to line target.
func gotoTo(target int, at *lexer.Token) []*lexer.Token {
	return []*lexer.Token{
		lexer.NewInt(int64(target), at.Line, at.Column),
		lexer.NewKeywordKind(lexer.GOTO_UN, at.Line, at.Column),
	}
}

// isUnaryContext reports whether a `+`/`-` at this point is a sign rather
// than a binary operator: at the start of a line, or right after any
// keyword except a closing bracket.
func isUnaryContext(prev *lexer.Token) bool {
	if prev == nil {
		return true
	}
	return prev.IsKeywordClass() &&
		prev.Kind != lexer.RIGHT_PAREN && prev.Kind != lexer.RIGHT_SQUARE
}

// compileLine translates one infix token line into postfix and appends it
// to the function body. Shunting-Yard with two extra stacks: callInfos
// for argument accounting, and the builder's block stack for control
// flow. Jumps synthesized for `else`/`endif`/`endwhile` are patched onto
// postfix lines emitted earlier.
func (b *builder) compileLine(line []*lexer.Token) error {
	cur := len(b.fn.Postfix)
	b.fn.Postfix = append(b.fn.Postfix, nil)

	var out []*lexer.Token
	var opStack []*lexer.Token
	var callInfos []callInfo
	var prev *lexer.Token

	popOp := func() *lexer.Token {
		top := opStack[len(opStack)-1]
		opStack = opStack[:len(opStack)-1]
		return top
	}

	for idx := 0; idx < len(line); idx++ {
		tok := line[idx]
		switch {
		case tok.IsConstant():
			out = append(out, tok)

		case tok.Kind == lexer.IDENT:
			fn, ok := b.p.isFunction(tok.Text)
			if !ok {
				out = append(out, tok)
				break
			}
			if idx+1 >= len(line) || line[idx+1].Kind != lexer.LEFT_PAREN {
				return errorAt(tok, "'(' expected after function name `%s`", tok.Text)
			}
			opStack = append(opStack, tok)
			callInfos = append(callInfos, callInfo{fn: fn, tok: tok, lastSep: idx + 1})

		case tok.Kind == lexer.COMMA:
			if len(callInfos) == 0 {
				return errorAt(tok, "Bracket mismatch or misplaced comma")
			}
			ci := &callInfos[len(callInfos)-1]
			if idx == ci.lastSep+1 {
				return errorAt(tok, "Empty argument in call to `%s`", ci.fn.Name)
			}
			ci.argCount++
			ci.lastSep = idx
			for {
				if len(opStack) == 0 {
					return errorAt(tok, "Bracket mismatch or misplaced comma")
				}
				if opStack[len(opStack)-1].Kind == lexer.LEFT_PAREN {
					break
				}
				out = append(out, popOp())
			}

		case tok.Kind == lexer.LEFT_PAREN || tok.Kind == lexer.LEFT_SQUARE:
			opStack = append(opStack, tok)

		case tok.Kind == lexer.RIGHT_PAREN:
			for {
				if len(opStack) == 0 {
					return errorAt(tok, "Bracket mismatch")
				}
				if opStack[len(opStack)-1].Kind == lexer.LEFT_PAREN {
					break
				}
				out = append(out, popOp())
			}
			popOp() // the '('
			if len(opStack) > 0 && opStack[len(opStack)-1].Kind == lexer.IDENT {
				ci := callInfos[len(callInfos)-1]
				callInfos = callInfos[:len(callInfos)-1]
				if idx > ci.lastSep+1 {
					ci.argCount++
				}
				if ci.argCount != len(ci.fn.Params) {
					return errorAt(ci.tok, "Function `%s` expects %d argument(s), got %d",
						ci.fn.Name, len(ci.fn.Params), ci.argCount)
				}
				out = append(out, popOp())
			}

		case tok.Kind == lexer.RIGHT_SQUARE:
			for {
				if len(opStack) == 0 {
					return errorAt(tok, "Bracket mismatch")
				}
				if opStack[len(opStack)-1].Kind == lexer.LEFT_SQUARE {
					break
				}
				out = append(out, popOp())
			}
			popOp() // the '['

		case tok.Kind == lexer.IF || tok.Kind == lexer.WHILE:
			b.blocks = append(b.blocks, blockInfo{kind: tok.Kind, line: cur, tok: tok})

		case tok.Kind == lexer.ELSE:
			if len(b.blocks) == 0 || b.blocks[len(b.blocks)-1].kind != lexer.IF {
				return errorAt(tok, "`else` without matching `if`")
			}
			ifBlock := b.blocks[len(b.blocks)-1]
			target := len(b.fn.Postfix)
			b.fn.Postfix[ifBlock.line] = append(b.fn.Postfix[ifBlock.line], notGotoTo(target, tok)...)
			b.blocks[len(b.blocks)-1] = blockInfo{kind: lexer.ELSE, line: cur, tok: tok}

		case tok.Kind == lexer.ENDIF:
			if len(b.blocks) == 0 {
				return errorAt(tok, "`endif` without matching `if`")
			}
			block := b.blocks[len(b.blocks)-1]
			target := len(b.fn.Postfix)
			switch block.kind {
			case lexer.IF:
				b.fn.Postfix[block.line] = append(b.fn.Postfix[block.line], notGotoTo(target, tok)...)
			case lexer.ELSE:
				// The true branch ends on the line right before the
				// `else`; give it an unconditional jump over the else
				// body.
				if block.line == 0 {
					return errorAt(tok, "`endif` without matching `if`")
				}
				b.fn.Postfix[block.line-1] = append(b.fn.Postfix[block.line-1], gotoTo(target, tok)...)
			default:
				return errorAt(tok, "`endif` without matching `if`")
			}
			b.blocks = b.blocks[:len(b.blocks)-1]

		case tok.Kind == lexer.ENDWHILE:
			if len(b.blocks) == 0 || b.blocks[len(b.blocks)-1].kind != lexer.WHILE {
				return errorAt(tok, "`endwhile` without matching `while`")
			}
			block := b.blocks[len(b.blocks)-1]
			b.blocks = b.blocks[:len(b.blocks)-1]
			target := len(b.fn.Postfix)
			b.fn.Postfix[block.line] = append(b.fn.Postfix[block.line], notGotoTo(target, tok)...)
			out = append(out, gotoTo(block.line, tok)...)

		case tok.Class == lexer.BINARY:
			op := tok
			if (op.Kind == lexer.PLUS || op.Kind == lexer.MINUS) && isUnaryContext(prev) {
				kind := lexer.UNARY_PLUS
				if op.Kind == lexer.MINUS {
					kind = lexer.UNARY_MINUS
				}
				opStack = append(opStack, lexer.NewKeywordKind(kind, tok.Line, tok.Column))
				break
			}
			for len(opStack) > 0 {
				top := opStack[len(opStack)-1]
				if top.Kind == lexer.IDENT || top.Class == lexer.BRACKET {
					break
				}
				if top.Precedence() < op.Precedence() {
					out = append(out, popOp())
					continue
				}
				if top.Precedence() == op.Precedence() &&
					top.Class == lexer.BINARY && top.Assoc == lexer.LEFT {
					out = append(out, popOp())
					continue
				}
				break
			}
			opStack = append(opStack, op)

		case tok.Class == lexer.PREFIX:
			// print, println, return, global, ! and the synthesized
			// unary signs all wait on the operator stack until their
			// operand is complete.
			opStack = append(opStack, tok)

		default:
			return errorAt(tok, "Unexpected token %s", tok)
		}
		prev = tok
	}

	for len(opStack) > 0 {
		top := popOp()
		if top.Class == lexer.BRACKET || top.Kind == lexer.IDENT {
			return errorAt(top, "Parenthesis mismatch")
		}
		out = append(out, top)
	}
	if len(callInfos) > 0 {
		return errorAt(callInfos[len(callInfos)-1].tok, "Parenthesis mismatch")
	}

	b.fn.Postfix[cur] = append(b.fn.Postfix[cur], out...)
	return nil
}
