/*
File    : dragon/lexer/token.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/
package lexer

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies what a token is: a reserved keyword, an operator, a
// bracket, a literal constant, or a user-chosen identifier. The keyword
// kinds are grouped into contiguous ranges so that classification
// (bracket / prefix / binary) is a range check, exactly like the
// enumeration layout of the original Dragon interpreter.
type Kind int

const (
	// Plain keywords. They structure the program but never appear in a
	// postfix line themselves.
	FUNCTION Kind = iota
	COLON
	QUOTE

	// Brackets.
	bracketsBegin
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_SQUARE
	RIGHT_SQUARE
	bracketsEnd

	// Prefix operators and statement-introducing keywords.
	prefixBegin
	PRINTLN
	PRINT
	UNARY_PLUS
	UNARY_MINUS
	NOT
	RETURN
	COMMA
	IF
	ELSE
	ENDIF
	WHILE
	ENDWHILE
	GLOBAL
	GOTO_UN
	prefixEnd

	// Binary operators.
	binaryBegin
	ASSIGN
	OR
	AND
	BIT_OR
	BIT_AND
	BIT_XOR
	EQ
	NEQ
	LT
	LEQ
	GT
	GEQ
	SHL
	SHR
	PLUS
	MINUS
	MUL
	DIV
	MOD
	GOTO_BIN
	binaryEnd

	// Non-keyword kinds: literal constants and identifiers.
	INT_LIT
	FLOAT_LIT
	STRING_LIT
	BOOL_LIT
	IDENT
)

// Class is the coarse classification the compiler and interpreter dispatch
// on. It replaces the Token/Word/Keyword class hierarchy of the original
// with a flat tag.
type Class int

const (
	CONSTANT Class = iota // int, float, string and bool literals
	IDENTIFIER
	KEYWORD // plain keyword: function, :, "
	BRACKET
	PREFIX
	BINARY
)

// Assoc is the associativity of a binary operator.
type Assoc int

const (
	LEFT Assoc = iota
	RIGHT
)

// Punctuations lists every character that may start or continue a
// punctuation keyword. The lexer uses it both for maximal munch and for
// validating the character that terminates a number.
const Punctuations = "+,-*/%^|&!()[]:<>=\""

// GlobalFunc is the name of the synthetic function holding all top-level
// statements. It is not spellable in source (identifiers cannot contain
// '@'), so it can never collide with a user function.
const GlobalFunc = "@global"

// kindToName maps each keyword kind to its source spelling. Together with
// nameToKind (derived in init) it forms the keyword bimap.
var kindToName = map[Kind]string{
	FUNCTION:     "function",
	RETURN:       "return",
	PRINTLN:      "println",
	PRINT:        "print",
	IF:           "if",
	ELSE:         "else",
	ENDIF:        "endif",
	WHILE:        "while",
	ENDWHILE:     "endwhile",
	GLOBAL:       "global",
	COMMA:        ",",
	ASSIGN:       "=",
	OR:           "or",
	AND:          "and",
	NOT:          "!",
	BIT_OR:       "|",
	BIT_AND:      "&",
	BIT_XOR:      "^",
	EQ:           "==",
	NEQ:          "!=",
	LT:           "<",
	LEQ:          "<=",
	GT:           ">",
	GEQ:          ">=",
	SHL:          "<<",
	SHR:          ">>",
	PLUS:         "+",
	MINUS:        "-",
	MUL:          "*",
	DIV:          "/",
	MOD:          "%",
	LEFT_PAREN:   "(",
	RIGHT_PAREN:  ")",
	LEFT_SQUARE:  "[",
	RIGHT_SQUARE: "]",
	COLON:        ":",
	QUOTE:        "\"",
	GOTO_BIN:     "goto",
	GOTO_UN:      "goto*",
	UNARY_MINUS:  "-$",
	UNARY_PLUS:   "+$",
}

// nameToKind is the reverse direction of the bimap, built in init.
var nameToKind = make(map[string]Kind, len(kindToName))

func init() {
	for kind, name := range kindToName {
		nameToKind[name] = kind
	}
}

// kindToPrec assigns every keyword its precedence: lower binds tighter.
// The table mirrors the priority map of the original Dragon Token.cpp.
var kindToPrec = map[Kind]int{
	FUNCTION: -1,
	ELSE:     -1,
	ENDIF:    -1,
	ENDWHILE: -1,
	COLON:    -1,
	QUOTE:    -1,

	LEFT_PAREN:   1,
	RIGHT_PAREN:  1,
	LEFT_SQUARE:  1,
	RIGHT_SQUARE: 1,

	UNARY_PLUS:  2,
	UNARY_MINUS: 2,
	NOT:         2,

	MUL: 3,
	DIV: 3,
	MOD: 3,

	PLUS:  4,
	MINUS: 4,

	SHL: 5,
	SHR: 5,

	LT:  6,
	LEQ: 6,
	GT:  6,
	GEQ: 6,

	EQ:  7,
	NEQ: 7,

	BIT_AND: 8,
	BIT_XOR: 9,
	BIT_OR:  10,

	AND: 11,
	OR:  12,

	ASSIGN: 13,
	COMMA:  15,

	IF:    99,
	WHILE: 99,

	RETURN:  100,
	PRINT:   100,
	PRINTLN: 100,
	GLOBAL:  100,

	GOTO_BIN: 101,
	GOTO_UN:  101,
}

// Token is the tagged variant flowing through the whole pipeline. Exactly
// one payload field is meaningful for a given kind: Text holds identifier
// names and string literals, Int/Float/Bool hold decoded constants, and
// keyword kinds carry no payload at all.
//
// Tokens are created once by the lexer (or synthesized by the compiler)
// and referenced by pointer from postfix lines; they are never mutated
// after construction.
type Token struct {
	Kind   Kind
	Class  Class
	Assoc  Assoc // meaningful for BINARY tokens only
	Text   string
	Int    int64
	Float  float64
	Bool   bool
	Line   int
	Column int
}

// IsKeyword reports whether word is a reserved spelling, including the
// punctuation keywords and the boolean literal words.
func IsKeyword(word string) bool {
	if word == "true" || word == "false" {
		return true
	}
	_, ok := nameToKind[word]
	return ok
}

// IsPunct reports whether ch may appear inside a punctuation keyword.
func IsPunct(ch byte) bool {
	return strings.IndexByte(Punctuations, ch) >= 0
}

// KindName returns the source spelling of a keyword kind, or a
// placeholder for kinds with no spelling.
func KindName(k Kind) string {
	if name, ok := kindToName[k]; ok {
		return name
	}
	return "<unknown keyword>"
}

// classOf derives the coarse classification from a keyword kind using the
// enumeration ranges.
func classOf(k Kind) Class {
	switch {
	case k > bracketsBegin && k < bracketsEnd:
		return BRACKET
	case k > prefixBegin && k < prefixEnd:
		return PREFIX
	case k > binaryBegin && k < binaryEnd:
		return BINARY
	default:
		return KEYWORD
	}
}

// NewKeyword classifies a known keyword spelling and returns the token
// for it. This is the dynamic classification step of the lexer: the same
// spelling table decides whether the token becomes a bracket, a prefix
// operator, a binary operator (with RIGHT associativity for assignment)
// or a plain keyword. The spellings "true" and "false" come back as
// boolean literals.
func NewKeyword(word string, line, column int) *Token {
	if word == "true" || word == "false" {
		return NewBool(word == "true", line, column)
	}
	kind, ok := nameToKind[word]
	if !ok {
		panic(fmt.Sprintf("lexer: %q is not a keyword", word))
	}
	return NewKeywordKind(kind, line, column)
}

// NewKeywordKind builds a keyword token directly from its kind. The
// compiler uses it to synthesize tokens: the unary plus/minus the lexer
// never emits, and the logical-not and two goto forms of the jump
// fragments.
func NewKeywordKind(kind Kind, line, column int) *Token {
	tok := &Token{Kind: kind, Class: classOf(kind), Line: line, Column: column}
	if tok.Class == BINARY {
		if kind == ASSIGN {
			tok.Assoc = RIGHT
		} else {
			tok.Assoc = LEFT
		}
	}
	return tok
}

// NewIdent builds an identifier token.
func NewIdent(name string, line, column int) *Token {
	return &Token{Kind: IDENT, Class: IDENTIFIER, Text: name, Line: line, Column: column}
}

// NewInt builds an integer literal token.
func NewInt(value int64, line, column int) *Token {
	return &Token{Kind: INT_LIT, Class: CONSTANT, Int: value, Line: line, Column: column}
}

// NewFloat builds a float literal token.
func NewFloat(value float64, line, column int) *Token {
	return &Token{Kind: FLOAT_LIT, Class: CONSTANT, Float: value, Line: line, Column: column}
}

// NewString builds a string literal token.
func NewString(text string, line, column int) *Token {
	return &Token{Kind: STRING_LIT, Class: CONSTANT, Text: text, Line: line, Column: column}
}

// NewBool builds a boolean literal token.
func NewBool(value bool, line, column int) *Token {
	return &Token{Kind: BOOL_LIT, Class: CONSTANT, Bool: value, Line: line, Column: column}
}

// Precedence returns the binding strength of a keyword token; lower binds
// tighter.
func (t *Token) Precedence() int {
	prec, ok := kindToPrec[t.Kind]
	if !ok {
		panic(fmt.Sprintf("lexer: keyword %q has no precedence", KindName(t.Kind)))
	}
	return prec
}

// IsConstant reports whether the token is a literal constant.
func (t *Token) IsConstant() bool {
	return t.Class == CONSTANT
}

// IsKeywordClass reports whether the token is any flavour of keyword
// (plain, bracket, prefix or binary).
func (t *Token) IsKeywordClass() bool {
	switch t.Class {
	case KEYWORD, BRACKET, PREFIX, BINARY:
		return true
	}
	return false
}

// Pos renders the source position as "line:column".
func (t *Token) Pos() string {
	return strconv.Itoa(t.Line) + ":" + strconv.Itoa(t.Column)
}

// String renders the token in the dump format of the original
// interpreter: "<kw: +>", "<id: x>", "<int: 3>" and so on.
func (t *Token) String() string {
	switch t.Kind {
	case INT_LIT:
		return "<int: " + strconv.FormatInt(t.Int, 10) + ">"
	case FLOAT_LIT:
		return "<float: " + strconv.FormatFloat(t.Float, 'g', -1, 64) + ">"
	case STRING_LIT:
		if t.Text == "" {
			return "<literal: (empty)>"
		}
		return "<literal: " + t.Text + ">"
	case BOOL_LIT:
		return "<bool: " + strconv.FormatBool(t.Bool) + ">"
	case IDENT:
		return "<id: " + t.Text + ">"
	default:
		return "<kw: " + KindName(t.Kind) + ">"
	}
}
