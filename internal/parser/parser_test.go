package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loxgo/internal/ast"
	"loxgo/internal/lexer"
	"loxgo/internal/token"
)

func parse(t *testing.T, source string) []ast.Stmt {
	t.Helper()
	tokens, lexDiags := lexer.New(source).Scan()
	require.False(t, lexDiags.HasErrors())
	stmts, diags := New(tokens).Parse()
	require.Falsef(t, diags.HasErrors(), "unexpected parse diagnostics: %v", diags)
	return stmts
}

func TestParse_VarDeclaration(t *testing.T) {
	stmts := parse(t, `var a = 1 + 2;`)
	require.Len(t, stmts, 1)

	v, ok := stmts[0].(*ast.VarStmt)
	require.True(t, ok)
	assert.Equal(t, "a", v.Name.Lexeme)

	bin, ok := v.Initializer.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, bin.Op.Type)
}

func TestParse_IfElse(t *testing.T) {
	stmts := parse(t, `if (true) print 1; else print 2;`)
	require.Len(t, stmts, 1)

	ifStmt, ok := stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	assert.NotNil(t, ifStmt.ThenBranch)
	assert.NotNil(t, ifStmt.ElseBranch)
}

func TestParse_ForDesugarsToWhile(t *testing.T) {
	stmts := parse(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	require.Len(t, stmts, 1)

	outer, ok := stmts[0].(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, outer.Statements, 2)

	_, ok = outer.Statements[0].(*ast.VarStmt)
	assert.True(t, ok, "initializer should be a var declaration")

	whileStmt, ok := outer.Statements[1].(*ast.WhileStmt)
	require.True(t, ok)

	body, ok := whileStmt.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, body.Statements, 2, "body statement plus increment")
}

func TestParse_ForOmittedClauses(t *testing.T) {
	stmts := parse(t, `for (;;) print 1;`)
	require.Len(t, stmts, 1)

	whileStmt, ok := stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
	lit, ok := whileStmt.Condition.(*ast.LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, true, lit.Value)
}

func TestParse_AssignmentIsRightAssociative(t *testing.T) {
	stmts := parse(t, `a = b = 3;`)
	require.Len(t, stmts, 1)

	exprStmt, ok := stmts[0].(*ast.ExpressionStmt)
	require.True(t, ok)
	outer, ok := exprStmt.Expression.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "a", outer.Name.Lexeme)

	inner, ok := outer.Value.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Name.Lexeme)
}

func TestParse_InvalidAssignmentTargetIsDiagnostic(t *testing.T) {
	tokens, _ := lexer.New(`1 = 2;`).Scan()
	_, diags := New(tokens).Parse()
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags[0].Message, "Invalid assignment target")
}

func TestParse_FunctionDeclaration(t *testing.T) {
	stmts := parse(t, `fun add(a, b) { return a + b; }`)
	require.Len(t, stmts, 1)

	fn, ok := stmts[0].(*ast.FunctionStmt)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Lexeme)
	require.Len(t, fn.Params, 2)
	require.Len(t, fn.Body, 1)
}

func TestParse_TooManyArgumentsIsDiagnostic(t *testing.T) {
	tokens, _ := lexer.New(`f(1, 2, 3, 4, 5, 6, 7, 8, 9);`).Scan()
	_, diags := New(tokens).Parse()
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags[0].Message, "Can't have more than 8 arguments")
}

func TestParse_ClassDeclarationIsRejected(t *testing.T) {
	tokens, _ := lexer.New(`class Foo {} print 1;`).Scan()
	stmts, diags := New(tokens).Parse()
	require.True(t, diags.HasErrors())
	assert.Contains(t, diags[0].Message, "Class declarations are not supported")

	// parser resynchronizes and still recovers the statement after it
	require.Len(t, stmts, 1)
	_, ok := stmts[0].(*ast.PrintStmt)
	assert.True(t, ok)
}

func TestParse_MissingSemicolonSynchronizes(t *testing.T) {
	tokens, _ := lexer.New("print 1\nprint 2;").Scan()
	stmts, diags := New(tokens).Parse()
	require.True(t, diags.HasErrors())
	require.Len(t, stmts, 1)
	_, ok := stmts[0].(*ast.PrintStmt)
	assert.True(t, ok)
}
