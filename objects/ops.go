/*
File    : dragon/objects/ops.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/
package objects

import (
	"errors"
	"fmt"

	"github.com/yukatan1701/dragon/lexer"
)

// Binary applies a binary operator to two resolved values and returns a
// freshly allocated result. The typing rules:
//
//	and, or                  bool x bool    -> bool
//	&, |, ^, <<, >>, %       int x int      -> int
//	+, -, *                  int x int      -> int
//	                         any with float -> float
//	                         string+string  -> string (+ only)
//	/                        numeric        -> float (int/int promotes)
//	==, !=                   matching or mixed-numeric operands -> bool
//	<, <=, >, >=             numeric (possibly mixed) -> bool
//
// Strings admit no ordering comparisons and booleans admit no
// comparisons beyond equality; everything else is a type mismatch. All
// type errors come back as plain errors for the interpreter to wrap with
// a source position.
func Binary(op lexer.Kind, left, right Object) (Object, error) {
	switch op {
	case lexer.AND, lexer.OR:
		return logicalOp(op, left, right)
	case lexer.BIT_AND, lexer.BIT_OR, lexer.BIT_XOR, lexer.SHL, lexer.SHR, lexer.MOD:
		return integerOp(op, left, right)
	default:
		return arithmeticOrCompareOp(op, left, right)
	}
}

func logicalOp(op lexer.Kind, left, right Object) (Object, error) {
	b1, ok1 := left.(*Boolean)
	b2, ok2 := right.(*Boolean)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("Type mismatch for logical %s", lexer.KindName(op))
	}
	if op == lexer.OR {
		return &Boolean{Value: b1.Value || b2.Value}, nil
	}
	return &Boolean{Value: b1.Value && b2.Value}, nil
}

func integerOp(op lexer.Kind, left, right Object) (Object, error) {
	i1, ok1 := left.(*Integer)
	i2, ok2 := right.(*Integer)
	if !ok1 || !ok2 {
		return nil, errors.New("Type mismatch for bitwise operation")
	}
	switch op {
	case lexer.BIT_AND:
		return &Integer{Value: i1.Value & i2.Value}, nil
	case lexer.BIT_OR:
		return &Integer{Value: i1.Value | i2.Value}, nil
	case lexer.BIT_XOR:
		return &Integer{Value: i1.Value ^ i2.Value}, nil
	case lexer.SHL, lexer.SHR:
		if i2.Value < 0 {
			return nil, errors.New("Negative shift count")
		}
		if op == lexer.SHL {
			return &Integer{Value: i1.Value << uint64(i2.Value)}, nil
		}
		return &Integer{Value: i1.Value >> uint64(i2.Value)}, nil
	default: // MOD
		if i2.Value == 0 {
			return nil, errors.New("Modulo by zero")
		}
		return &Integer{Value: i1.Value % i2.Value}, nil
	}
}

// arithmeticOrCompareOp handles +, -, *, /, and the six comparisons over
// every legal operand pairing: int x int, float x float, the two mixed
// numeric pairings, string x string and bool x bool.
func arithmeticOrCompareOp(op lexer.Kind, left, right Object) (Object, error) {
	if i1, ok := left.(*Integer); ok {
		if i2, ok := right.(*Integer); ok {
			return intIntOp(op, i1.Value, i2.Value)
		}
		if f2, ok := right.(*Float); ok {
			return floatFloatOp(op, float64(i1.Value), f2.Value)
		}
	}
	if f1, ok := left.(*Float); ok {
		if f2, ok := right.(*Float); ok {
			return floatFloatOp(op, f1.Value, f2.Value)
		}
		if i2, ok := right.(*Integer); ok {
			return floatFloatOp(op, f1.Value, float64(i2.Value))
		}
	}
	if s1, ok := left.(*String); ok {
		if s2, ok := right.(*String); ok {
			return stringStringOp(op, s1.Value, s2.Value)
		}
	}
	if b1, ok := left.(*Boolean); ok {
		if b2, ok := right.(*Boolean); ok {
			return boolBoolOp(op, b1.Value, b2.Value)
		}
	}
	return nil, fmt.Errorf("Type mismatch for operator %s", lexer.KindName(op))
}

func intIntOp(op lexer.Kind, a, b int64) (Object, error) {
	switch op {
	case lexer.EQ:
		return &Boolean{Value: a == b}, nil
	case lexer.NEQ:
		return &Boolean{Value: a != b}, nil
	case lexer.LT:
		return &Boolean{Value: a < b}, nil
	case lexer.LEQ:
		return &Boolean{Value: a <= b}, nil
	case lexer.GT:
		return &Boolean{Value: a > b}, nil
	case lexer.GEQ:
		return &Boolean{Value: a >= b}, nil
	case lexer.PLUS:
		return &Integer{Value: a + b}, nil
	case lexer.MINUS:
		return &Integer{Value: a - b}, nil
	case lexer.MUL:
		return &Integer{Value: a * b}, nil
	case lexer.DIV:
		// Division always promotes to float.
		return &Float{Value: float64(a) / float64(b)}, nil
	}
	return nil, fmt.Errorf("Type mismatch for operator %s", lexer.KindName(op))
}

func floatFloatOp(op lexer.Kind, a, b float64) (Object, error) {
	switch op {
	case lexer.EQ:
		return &Boolean{Value: a == b}, nil
	case lexer.NEQ:
		return &Boolean{Value: a != b}, nil
	case lexer.LT:
		return &Boolean{Value: a < b}, nil
	case lexer.LEQ:
		return &Boolean{Value: a <= b}, nil
	case lexer.GT:
		return &Boolean{Value: a > b}, nil
	case lexer.GEQ:
		return &Boolean{Value: a >= b}, nil
	case lexer.PLUS:
		return &Float{Value: a + b}, nil
	case lexer.MINUS:
		return &Float{Value: a - b}, nil
	case lexer.MUL:
		return &Float{Value: a * b}, nil
	case lexer.DIV:
		return &Float{Value: a / b}, nil
	}
	return nil, fmt.Errorf("Type mismatch for operator %s", lexer.KindName(op))
}

func stringStringOp(op lexer.Kind, a, b string) (Object, error) {
	switch op {
	case lexer.EQ:
		return &Boolean{Value: a == b}, nil
	case lexer.NEQ:
		return &Boolean{Value: a != b}, nil
	case lexer.PLUS:
		return &String{Value: a + b}, nil
	}
	return nil, errors.New("It is forbidden to compare strings")
}

func boolBoolOp(op lexer.Kind, a, b bool) (Object, error) {
	switch op {
	case lexer.EQ:
		return &Boolean{Value: a == b}, nil
	case lexer.NEQ:
		return &Boolean{Value: a != b}, nil
	}
	return nil, errors.New("It is forbidden to compare bools")
}

// FromToken materializes a runtime value from a constant token. Each call
// returns a fresh object: postfix lines are re-executed inside loops, and
// the in-place unary operators must never write through to the program
// text.
func FromToken(tok *lexer.Token) Object {
	switch tok.Kind {
	case lexer.INT_LIT:
		return &Integer{Value: tok.Int}
	case lexer.FLOAT_LIT:
		return &Float{Value: tok.Float}
	case lexer.STRING_LIT:
		return &String{Value: tok.Text}
	case lexer.BOOL_LIT:
		return &Boolean{Value: tok.Bool}
	}
	panic("objects: token is not a constant")
}
