/*
File    : dragon/lexer/lexer_utils.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/
package lexer

// Character class helpers for the line scanner. Dragon source is ASCII;
// these run in the hot path, so they stay byte-level.

// isSpace reports whether c is horizontal whitespace. Newlines never
// reach the scanner: the input is split into lines first.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

// isDigit reports whether c is an ASCII decimal digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isNumberChar reports whether c may continue a numeric literal.
func isNumberChar(c byte) bool {
	return isDigit(c) || c == '.'
}

// isAlpha reports whether c is an ASCII letter.
func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isWordStart reports whether c may begin an identifier or keyword word.
func isWordStart(c byte) bool {
	return isAlpha(c) || c == '_'
}

// isWordChar reports whether c may continue an identifier or keyword word.
func isWordChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '_'
}
