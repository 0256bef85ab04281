/*
File    : dragon/lexer/lexer.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/

// Package lexer performs lexical analysis of Dragon source code.
//
// Dragon is line-oriented: a statement never spans lines, so the lexer
// splits the input into lines first and then each line into tokens. The
// result is an ordered list of token lines that the parser consumes to
// build per-function postfix programs.
//
// Per line the lexer handles:
//   - whitespace separation (significant only as a separator)
//   - '#' comments running to the end of the line
//   - integer and float literals (at most one '.', decoded by strconv)
//   - words: reserved keywords (via dynamic classification) or identifiers
//   - punctuation keywords with maximal munch ("<=", "<<", "==", ...)
//   - double-quoted string literals, taken verbatim
package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseError is a lexical error. It aborts the whole run: Dragon performs
// no error recovery, the first malformed token wins.
type ParseError struct {
	Msg    string
	Line   int
	Column int
}

// Error renders the error with the original interpreter's prefix and the
// source position.
func (e *ParseError) Error() string {
	return fmt.Sprintf("[PARSER EXCEPTION] %s at %d:%d", e.Msg, e.Line, e.Column)
}

// Lexer turns a source stream into lines of tokens. The zero value is not
// usable; construct one with New or FromString.
type Lexer struct {
	lines [][]*Token
	lineN int
}

// New reads the whole source from r and tokenizes it line by line.
// The first lexical error aborts and is returned as a *ParseError.
func New(r io.Reader) (*Lexer, error) {
	lex := &Lexer{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := lex.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lex, nil
}

// FromString tokenizes an in-memory source, which is what the REPL and
// the tests feed the pipeline with.
func FromString(src string) (*Lexer, error) {
	return New(strings.NewReader(src))
}

// TokenLines returns the token lines in source order. A source line maps
// to exactly one entry; blank and comment-only lines yield an empty one.
func (l *Lexer) TokenLines() [][]*Token {
	return l.lines
}

// charsAfterNumber are the only characters allowed to terminate a number:
// punctuation, a comment, or whitespace.
const charsAfterNumber = Punctuations + "# \t\r\n"

// parseLine tokenizes a single source line and appends the result to the
// line list. The scan is a single forward pass over the bytes; i always
// points at the first byte of the next candidate token.
func (l *Lexer) parseLine(line string) error {
	l.lineN++
	tokens := []*Token{}
	for i := 0; i < len(line); i++ {
		ch := line[i]
		col := i + 1
		switch {
		case isSpace(ch):
			continue
		case ch == '#':
			// Comment: drop the rest of the line.
			l.lines = append(l.lines, tokens)
			return nil
		case isDigit(ch):
			start := i
			hasDot := false
			for i+1 < len(line) && isNumberChar(line[i+1]) {
				if line[i+1] == '.' {
					if hasDot {
						break
					}
					hasDot = true
				}
				i++
			}
			if i+1 < len(line) && strings.IndexByte(charsAfterNumber, line[i+1]) < 0 {
				return &ParseError{"Invalid character after number", l.lineN, i + 2}
			}
			numStr := line[start : i+1]
			tok, err := l.decodeNumber(numStr, col)
			if err != nil {
				return err
			}
			tokens = append(tokens, tok)
		case isWordStart(ch):
			start := i
			for i+1 < len(line) && isWordChar(line[i+1]) {
				i++
			}
			word := line[start : i+1]
			if IsKeyword(word) {
				tokens = append(tokens, NewKeyword(word, l.lineN, col))
			} else {
				tokens = append(tokens, NewIdent(word, l.lineN, col))
			}
		case ch == '"':
			end := strings.IndexByte(line[i+1:], '"')
			if end < 0 {
				return &ParseError{"Incomplete literal", l.lineN, len(line) + 1}
			}
			tokens = append(tokens, NewString(line[i+1:i+1+end], l.lineN, col))
			i += end + 1
		case IsPunct(ch):
			// Maximal munch: take the longest run of punctuation
			// characters, then shrink from the right until the prefix is
			// a known spelling. Every single punctuation character is a
			// keyword, so the shrink always terminates with a match.
			end := i + 1
			for end < len(line) && IsPunct(line[end]) {
				end++
			}
			word := line[i:end]
			for !IsKeyword(word) {
				word = word[:len(word)-1]
			}
			tokens = append(tokens, NewKeyword(word, l.lineN, col))
			i += len(word) - 1
		default:
			return &ParseError{"Invalid character", l.lineN, col}
		}
	}
	l.lines = append(l.lines, tokens)
	return nil
}

// decodeNumber turns the scanned digit run into an integer or float
// token. strconv is locale-independent, so "1.5" decodes the same way on
// every machine.
func (l *Lexer) decodeNumber(numStr string, col int) (*Token, error) {
	if strings.Trim(numStr, ".") == "" {
		return nil, &ParseError{"Invalid number format", l.lineN, col}
	}
	if !strings.ContainsRune(numStr, '.') {
		value, err := strconv.ParseInt(numStr, 10, 64)
		if err != nil {
			return nil, &ParseError{"Invalid number format", l.lineN, col}
		}
		return NewInt(value, l.lineN, col), nil
	}
	value, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return nil, &ParseError{"Invalid number format", l.lineN, col}
	}
	return NewFloat(value, l.lineN, col), nil
}

// Dump writes the token lines to w in the numbered format of the original
// interpreter's debug output.
func (l *Lexer) Dump(w io.Writer) {
	width := len(strconv.Itoa(len(l.lines)))
	for n, tokens := range l.lines {
		fmt.Fprintf(w, "%*d| ", width, n+1)
		for _, tok := range tokens {
			fmt.Fprintf(w, "%s ", tok)
		}
		fmt.Fprintln(w)
	}
}
