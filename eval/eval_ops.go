/*
File    : dragon/eval/eval_ops.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/
package eval

import (
	"fmt"

	"github.com/yukatan1701/dragon/lexer"
	"github.com/yukatan1701/dragon/objects"
)

// applyUnary executes a prefix operator against the top of the value
// stack. Except for `global`, the operand stays on the stack: print
// reads it, and negation/not update the referent in place. For an
// identifier operand the referent is the variable's backing value
// itself.
func (ip *Interpreter) applyUnary(op *lexer.Token, stack *[]entry) error {
	if len(*stack) == 0 {
		return errorAt(op, "Unexpected unary operator %s", lexer.KindName(op.Kind))
	}
	top := &(*stack)[len(*stack)-1]

	if op.Kind == lexer.GLOBAL {
		if top.id == nil {
			return errorAt(op, "Identifier expected after `global`")
		}
		if !ip.scopes.MarkGlobal(top.id.Text) {
			return errorAt(top.id, "Variable with name `%s` does not exist in global scope", top.id.Text)
		}
		*stack = (*stack)[:len(*stack)-1]
		return nil
	}

	value, err := ip.resolve(top, op)
	if err != nil {
		return err
	}
	switch op.Kind {
	case lexer.UNARY_MINUS:
		switch v := value.(type) {
		case *objects.Integer:
			v.Value = -v.Value
		case *objects.Float:
			v.Value = -v.Value
		default:
			return errorAt(op, "Unexpected operand type for unary minus")
		}
	case lexer.UNARY_PLUS:
		switch value.(type) {
		case *objects.Integer, *objects.Float:
			// Sign of a number: nothing to do.
		default:
			return errorAt(op, "Unexpected operand type for unary plus")
		}
	case lexer.NOT:
		v, ok := value.(*objects.Boolean)
		if !ok {
			return errorAt(op, "Unexpected operand type for logical not")
		}
		v.Value = !v.Value
	case lexer.PRINT:
		fmt.Fprint(ip.Writer, value.ToString())
	case lexer.PRINTLN:
		fmt.Fprintln(ip.Writer, value.ToString())
	default:
		return errorAt(op, "Unexpected unary operator %s", lexer.KindName(op.Kind))
	}
	return nil
}

// applyBinary executes a binary operator. Assignment pops only its right
// operand and binds the left identifier, leaving it on the stack so that
// right-associative chains (`a = b = 3`) see it again as their right
// operand. Every other operator pops both operands and pushes a freshly
// computed value.
func (ip *Interpreter) applyBinary(op *lexer.Token, stack *[]entry) error {
	right := &(*stack)[len(*stack)-1]
	left := &(*stack)[len(*stack)-2]

	if op.Kind == lexer.ASSIGN {
		if left.id == nil {
			return errorAt(op, "Left operand of assignment must be a variable")
		}
		value, err := ip.resolve(right, op)
		if err != nil {
			return err
		}
		ip.scopes.Bind(left.id.Text, value)
		ip.trace("assign `%s` = %s", left.id.Text, value.ToObject())
		*stack = (*stack)[:len(*stack)-1]
		return nil
	}

	leftValue, err := ip.resolve(left, op)
	if err != nil {
		return err
	}
	rightValue, err := ip.resolve(right, op)
	if err != nil {
		return err
	}
	result, err := objects.Binary(op.Kind, leftValue, rightValue)
	if err != nil {
		return errorAt(op, "%s", err)
	}
	*stack = (*stack)[:len(*stack)-2]
	*stack = append(*stack, entry{obj: result})
	return nil
}
