package main

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(name string) Token { return Token{Type: IDENTIFIER, Lexeme: name, Line: 1} }

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", NewNumber(mustDecimal("1")))

	v, err := env.Get(tok("a"))
	require.Nil(t, err)
	assert.Equal(t, "1", v.String())
}

func TestEnvironmentGetUndefinedIsRuntimeError(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Get(tok("missing"))
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "Undefined variable")
}

func TestEnvironmentAssignWalksToEnclosingScope(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", NewNumber(mustDecimal("1")))
	inner := NewEnvironment(outer)

	err := inner.Assign(tok("a"), NewNumber(mustDecimal("2")))
	require.Nil(t, err)

	v, _ := outer.Get(tok("a"))
	assert.Equal(t, "2", v.String())
}

func TestEnvironmentAssignUndefinedIsRuntimeError(t *testing.T) {
	env := NewEnvironment(nil)
	err := env.Assign(tok("missing"), NewNil())
	require.NotNil(t, err)
}

func TestEnvironmentDefineShadowsEnclosingWithoutMutatingIt(t *testing.T) {
	outer := NewEnvironment(nil)
	outer.Define("a", NewNumber(mustDecimal("1")))
	inner := NewEnvironment(outer)
	inner.Define("a", NewNumber(mustDecimal("2")))

	innerVal, _ := inner.Get(tok("a"))
	outerVal, _ := outer.Get(tok("a"))
	assert.Equal(t, "2", innerVal.String())
	assert.Equal(t, "1", outerVal.String())
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", NewNumber(mustDecimal("1")))
	middle := NewEnvironment(global)
	inner := NewEnvironment(middle)

	assert.Equal(t, "1", inner.GetAt(2, "a").String())

	inner.AssignAt(2, tok("a"), NewNumber(mustDecimal("9")))
	v, _ := global.Get(tok("a"))
	assert.Equal(t, "9", v.String())
}

func mustDecimal(s string) decimal.Decimal { return parseNumberLiteral(s) }
