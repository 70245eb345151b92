package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringValue string

func (s stringValue) String() string { return string(s) }

func TestDefineAndGet(t *testing.T) {
	env := New(nil)
	env.Define("a", stringValue("1"))

	v, err := env.Get("a")
	require.NoError(t, err)
	assert.Equal(t, stringValue("1"), v)
}

func TestGet_UndefinedVariable(t *testing.T) {
	env := New(nil)
	_, err := env.Get("missing")
	assert.EqualError(t, err, "Undefined variable 'missing'.")
}

func TestGet_WalksToEnclosingScope(t *testing.T) {
	global := New(nil)
	global.Define("g", stringValue("global"))
	inner := New(global)

	v, err := inner.Get("g")
	require.NoError(t, err)
	assert.Equal(t, stringValue("global"), v)
}

func TestDefine_ShadowsEnclosingScope(t *testing.T) {
	global := New(nil)
	global.Define("a", stringValue("outer"))
	inner := New(global)
	inner.Define("a", stringValue("inner"))

	v, err := inner.Get("a")
	require.NoError(t, err)
	assert.Equal(t, stringValue("inner"), v)

	outerV, err := global.Get("a")
	require.NoError(t, err)
	assert.Equal(t, stringValue("outer"), outerV, "shadowing must not clobber the enclosing binding")
}

func TestAssign_WalksOutwardAndMutatesInPlace(t *testing.T) {
	global := New(nil)
	global.Define("a", stringValue("1"))
	inner := New(global)

	require.NoError(t, inner.Assign("a", stringValue("2")))

	v, err := global.Get("a")
	require.NoError(t, err)
	assert.Equal(t, stringValue("2"), v)
}

func TestAssign_UndefinedVariable(t *testing.T) {
	env := New(nil)
	err := env.Assign("missing", stringValue("x"))
	assert.EqualError(t, err, "Undefined variable 'missing'.")
}

func TestGetAtAndAssignAt(t *testing.T) {
	global := New(nil)
	global.Define("a", stringValue("global"))
	middle := New(global)
	middle.Define("a", stringValue("middle"))
	inner := New(middle)

	v, err := inner.GetAt(1, "a")
	require.NoError(t, err)
	assert.Equal(t, stringValue("middle"), v)

	require.NoError(t, inner.AssignAt(2, "a", stringValue("changed")))
	v, err = global.Get("a")
	require.NoError(t, err)
	assert.Equal(t, stringValue("changed"), v)
}
