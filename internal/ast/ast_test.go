package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loxgo/internal/token"
)

func TestBinaryExpr_String(t *testing.T) {
	expr := &BinaryExpr{
		Left:  &LiteralExpr{Value: 1.0},
		Op:    token.Token{Type: token.PLUS, Lexeme: "+"},
		Right: &LiteralExpr{Value: 2.0},
	}
	assert.Equal(t, "(+ 1 2)", expr.String())
}

func TestVariableExprIdentity_DistinctAllocationsAreDistinctKeys(t *testing.T) {
	a := &VariableExpr{Name: token.Token{Lexeme: "x"}}
	b := &VariableExpr{Name: token.Token{Lexeme: "x"}}

	m := map[Expr]int{a: 1}
	_, ok := m[b]
	assert.False(t, ok, "syntactically identical nodes must not collide as map keys")
}
