/*
File    : dragon/scope/scope.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/

// Package scope implements Dragon's variable tables and the two-level
// resolution rule.
//
// Dragon has no nested lexical scopes: an identifier lives either in the
// current call frame or, when the frame has declared it with `global`, in
// the table of the synthetic @global frame at the bottom of the stack.
// Lookup never walks intermediate frames.
package scope

import (
	"github.com/yukatan1701/dragon/lexer"
	"github.com/yukatan1701/dragon/objects"
)

// Frame is one function activation. It owns a variable table and the set
// of names the activation has re-bound to the global table with `global`.
// Values stored in Vars are private to the frame: every writer deep-copies
// before storing.
type Frame struct {
	// Func is the name of the function this frame belongs to.
	Func string
	// Vars maps variable names to their current values.
	Vars map[string]objects.Object
	// Globals holds the names declared `global` in this frame.
	Globals map[string]struct{}
}

// NewFrame creates an empty frame for an activation of the named
// function.
func NewFrame(funcName string) *Frame {
	return &Frame{
		Func:    funcName,
		Vars:    make(map[string]objects.Object),
		Globals: make(map[string]struct{}),
	}
}

// Stack is the scope stack of a running interpreter. Index 0 is the
// innermost (current) frame; the last entry is the @global frame, which
// persists for the whole run.
type Stack struct {
	frames []*Frame
}

// NewStack creates an empty scope stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push makes f the current frame.
func (s *Stack) Push(f *Frame) {
	s.frames = append([]*Frame{f}, s.frames...)
}

// Pop removes and returns the current frame.
func (s *Stack) Pop() *Frame {
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f
}

// Current returns the innermost frame.
func (s *Stack) Current() *Frame {
	return s.frames[0]
}

// Global returns the bottom frame, the activation of @global.
func (s *Stack) Global() *Frame {
	return s.frames[len(s.frames)-1]
}

// Depth returns the number of live frames.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// target selects the table an identifier resolves to in the current
// frame: the global table when the frame has declared the name `global`
// (and the frame is not @global itself), the frame's own table otherwise.
func (s *Stack) target(name string) *Frame {
	cur := s.Current()
	if _, ok := cur.Globals[name]; ok && cur != s.Global() {
		return s.Global()
	}
	return cur
}

// Lookup resolves a name for reading. It consults exactly one table per
// the resolution rule and reports whether the name was bound there.
func (s *Stack) Lookup(name string) (objects.Object, bool) {
	obj, ok := s.target(name).Vars[name]
	return obj, ok
}

// Bind stores value under name in the resolved table, creating the slot
// if absent. The caller passes a value it owns; Bind deep-copies so the
// table never aliases the caller's object.
func (s *Stack) Bind(name string, value objects.Object) {
	s.target(name).Vars[name] = value.Clone()
}

// MarkGlobal records a `global name` declaration in the current frame.
// The name must already be bound in the global table; `global` re-binds,
// it never creates.
func (s *Stack) MarkGlobal(name string) bool {
	if _, ok := s.Global().Vars[name]; !ok {
		return false
	}
	s.Current().Globals[name] = struct{}{}
	return true
}

// IsGlobalFrame reports whether the current frame is the @global
// activation.
func (s *Stack) IsGlobalFrame() bool {
	return s.Current().Func == lexer.GlobalFunc
}
