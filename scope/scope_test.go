/*
File    : dragon/scope/scope_test.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/
package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukatan1701/dragon/lexer"
	"github.com/yukatan1701/dragon/objects"
)

// newTestStack builds a stack with the persistent @global frame at the
// bottom, the way the interpreter sets it up.
func newTestStack() *Stack {
	s := NewStack()
	s.Push(NewFrame(lexer.GlobalFunc))
	return s
}

// TestLookup_CurrentFrameOnly checks that lookup never walks
// intermediate frames: a name bound only in the global frame is
// invisible to a call frame without a `global` declaration.
func TestLookup_CurrentFrameOnly(t *testing.T) {
	s := newTestStack()
	s.Bind("g", &objects.Integer{Value: 10})

	s.Push(NewFrame("f"))
	_, ok := s.Lookup("g")
	assert.False(t, ok)

	s.Bind("x", &objects.Integer{Value: 1})
	obj, ok := s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), obj.(*objects.Integer).Value)

	// The local x does not leak into the global frame.
	s.Pop()
	_, ok = s.Lookup("x")
	assert.False(t, ok)
}

// TestMarkGlobal_Redirect checks the `global` declaration: reads and
// writes of the marked name go to the global table.
func TestMarkGlobal_Redirect(t *testing.T) {
	s := newTestStack()
	s.Bind("g", &objects.Integer{Value: 10})

	s.Push(NewFrame("bump"))
	require.True(t, s.MarkGlobal("g"))

	obj, ok := s.Lookup("g")
	require.True(t, ok)
	assert.Equal(t, int64(10), obj.(*objects.Integer).Value)

	s.Bind("g", &objects.Integer{Value: 11})
	s.Pop()

	obj, ok = s.Lookup("g")
	require.True(t, ok)
	assert.Equal(t, int64(11), obj.(*objects.Integer).Value)
}

// TestMarkGlobal_RequiresExistingName checks that `global` re-binds an
// existing global but never creates one.
func TestMarkGlobal_RequiresExistingName(t *testing.T) {
	s := newTestStack()
	s.Push(NewFrame("f"))
	assert.False(t, s.MarkGlobal("missing"))
}

// TestMarkGlobal_PerFrame checks that the declaration is frame-local: a
// later activation starts without it.
func TestMarkGlobal_PerFrame(t *testing.T) {
	s := newTestStack()
	s.Bind("g", &objects.Integer{Value: 1})

	s.Push(NewFrame("f"))
	require.True(t, s.MarkGlobal("g"))
	s.Pop()

	s.Push(NewFrame("f"))
	s.Bind("g", &objects.Integer{Value: 99})
	s.Pop()

	// The second activation had no `global g`, so it wrote a local.
	obj, _ := s.Lookup("g")
	assert.Equal(t, int64(1), obj.(*objects.Integer).Value)
}

// TestBind_DeepCopies checks that a table never aliases the value the
// caller passed in.
func TestBind_DeepCopies(t *testing.T) {
	s := newTestStack()
	original := &objects.Integer{Value: 5}
	s.Bind("x", original)
	original.Value = 99

	obj, _ := s.Lookup("x")
	assert.Equal(t, int64(5), obj.(*objects.Integer).Value)
}

// TestGlobalFrameResolution checks that inside the @global frame itself
// the resolution rule targets the frame directly, `global` marks or not.
func TestGlobalFrameResolution(t *testing.T) {
	s := newTestStack()
	s.Bind("x", &objects.Integer{Value: 3})
	require.True(t, s.MarkGlobal("x"))
	obj, ok := s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, int64(3), obj.(*objects.Integer).Value)
	assert.True(t, s.IsGlobalFrame())

	s.Push(NewFrame("f"))
	assert.False(t, s.IsGlobalFrame())
}

// TestStackDepth smoke-tests push/pop bookkeeping.
func TestStackDepth(t *testing.T) {
	s := newTestStack()
	assert.Equal(t, 1, s.Depth())
	s.Push(NewFrame("a"))
	s.Push(NewFrame("b"))
	assert.Equal(t, 3, s.Depth())
	assert.Equal(t, "b", s.Current().Func)
	assert.Equal(t, lexer.GlobalFunc, s.Global().Func)
	popped := s.Pop()
	assert.Equal(t, "b", popped.Func)
	assert.Equal(t, "a", s.Current().Func)
}
