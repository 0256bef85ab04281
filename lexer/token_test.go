/*
File    : dragon/lexer/token_test.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewKeyword_Classification checks the dynamic classification step:
// the same spelling table routes each keyword into its bracket, prefix,
// binary or plain class.
func TestNewKeyword_Classification(t *testing.T) {
	tests := []struct {
		Word  string
		Kind  Kind
		Class Class
	}{
		{"function", FUNCTION, KEYWORD},
		{":", COLON, KEYWORD},
		{"\"", QUOTE, KEYWORD},
		{"(", LEFT_PAREN, BRACKET},
		{")", RIGHT_PAREN, BRACKET},
		{"[", LEFT_SQUARE, BRACKET},
		{"]", RIGHT_SQUARE, BRACKET},
		{"print", PRINT, PREFIX},
		{"println", PRINTLN, PREFIX},
		{"return", RETURN, PREFIX},
		{"global", GLOBAL, PREFIX},
		{"!", NOT, PREFIX},
		{",", COMMA, PREFIX},
		{"if", IF, PREFIX},
		{"else", ELSE, PREFIX},
		{"endif", ENDIF, PREFIX},
		{"while", WHILE, PREFIX},
		{"endwhile", ENDWHILE, PREFIX},
		{"=", ASSIGN, BINARY},
		{"or", OR, BINARY},
		{"and", AND, BINARY},
		{"|", BIT_OR, BINARY},
		{"&", BIT_AND, BINARY},
		{"^", BIT_XOR, BINARY},
		{"==", EQ, BINARY},
		{"!=", NEQ, BINARY},
		{"<", LT, BINARY},
		{"<=", LEQ, BINARY},
		{">", GT, BINARY},
		{">=", GEQ, BINARY},
		{"<<", SHL, BINARY},
		{">>", SHR, BINARY},
		{"+", PLUS, BINARY},
		{"-", MINUS, BINARY},
		{"*", MUL, BINARY},
		{"/", DIV, BINARY},
		{"%", MOD, BINARY},
		{"goto", GOTO_BIN, BINARY},
	}
	for _, test := range tests {
		tok := NewKeyword(test.Word, 1, 1)
		assert.Equal(t, test.Kind, tok.Kind, "kind of %q", test.Word)
		assert.Equal(t, test.Class, tok.Class, "class of %q", test.Word)
	}
}

// TestNewKeyword_BooleanWords checks that true/false come back as
// boolean literal tokens, not keywords.
func TestNewKeyword_BooleanWords(t *testing.T) {
	tok := NewKeyword("true", 2, 3)
	assert.Equal(t, BOOL_LIT, tok.Kind)
	assert.Equal(t, CONSTANT, tok.Class)
	assert.True(t, tok.Bool)

	tok = NewKeyword("false", 2, 3)
	assert.Equal(t, BOOL_LIT, tok.Kind)
	assert.False(t, tok.Bool)
}

// TestAssociativity checks that assignment is the only right-associative
// binary operator.
func TestAssociativity(t *testing.T) {
	assert.Equal(t, RIGHT, NewKeyword("=", 1, 1).Assoc)
	for _, word := range []string{"+", "-", "*", "/", "==", "or", "and", "<<"} {
		assert.Equal(t, LEFT, NewKeyword(word, 1, 1).Assoc, "assoc of %q", word)
	}
}

// TestPrecedence_Order spot-checks the precedence table: lower binds
// tighter.
func TestPrecedence_Order(t *testing.T) {
	mul := NewKeyword("*", 1, 1)
	plus := NewKeyword("+", 1, 1)
	shl := NewKeyword("<<", 1, 1)
	less := NewKeyword("<", 1, 1)
	eq := NewKeyword("==", 1, 1)
	and := NewKeyword("and", 1, 1)
	or := NewKeyword("or", 1, 1)
	assign := NewKeyword("=", 1, 1)

	assert.Less(t, mul.Precedence(), plus.Precedence())
	assert.Less(t, plus.Precedence(), shl.Precedence())
	assert.Less(t, shl.Precedence(), less.Precedence())
	assert.Less(t, less.Precedence(), eq.Precedence())
	assert.Less(t, eq.Precedence(), and.Precedence())
	assert.Less(t, and.Precedence(), or.Precedence())
	assert.Less(t, or.Precedence(), assign.Precedence())

	unary := NewKeywordKind(UNARY_MINUS, 1, 1)
	assert.Less(t, unary.Precedence(), mul.Precedence())
}

// TestKeywordBimap checks both directions of the spelling table.
func TestKeywordBimap(t *testing.T) {
	require.True(t, IsKeyword("endwhile"))
	require.True(t, IsKeyword("goto"))
	require.True(t, IsKeyword("true"))
	require.False(t, IsKeyword("counter"))
	// Synthetic spellings live in the same bimap even though the lexer
	// can never scan them: '$' and '*' break the word and munch rules.
	require.True(t, IsKeyword("goto*"))
	require.True(t, IsKeyword("-$"))
	assert.Equal(t, "endwhile", KindName(ENDWHILE))
	assert.Equal(t, "goto*", KindName(GOTO_UN))
	assert.Equal(t, "-$", KindName(UNARY_MINUS))
}

// TestTokenString checks the dump rendering of each token flavour.
func TestTokenString(t *testing.T) {
	assert.Equal(t, "<int: 42>", NewInt(42, 1, 1).String())
	assert.Equal(t, "<float: 2.5>", NewFloat(2.5, 1, 1).String())
	assert.Equal(t, "<literal: abc>", NewString("abc", 1, 1).String())
	assert.Equal(t, "<literal: (empty)>", NewString("", 1, 1).String())
	assert.Equal(t, "<bool: true>", NewBool(true, 1, 1).String())
	assert.Equal(t, "<id: x>", NewIdent("x", 1, 1).String())
	assert.Equal(t, "<kw: +>", NewKeyword("+", 1, 1).String())
	assert.Equal(t, "<kw: goto*>", NewKeywordKind(GOTO_UN, 1, 1).String())
}

// TestTokenPos checks the "line:column" rendering.
func TestTokenPos(t *testing.T) {
	assert.Equal(t, "3:14", NewIdent("x", 3, 14).Pos())
}
