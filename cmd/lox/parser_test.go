package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAll(t *testing.T, src string) ([]Stmt, *ErrorReporter) {
	t.Helper()
	errs := NewErrorReporter(&bytes.Buffer{})
	toks := NewScanner(src, errs).ScanTokens()
	stmts := NewParser(toks, errs).Parse()
	return stmts, errs
}

func TestParserExpressionStatement(t *testing.T) {
	stmts, errs := parseAll(t, "1 + 2 * 3;")
	require.False(t, errs.HadStaticError())
	require.Len(t, stmts, 1)

	exprStmt, ok := stmts[0].(*ExpressionStmt)
	require.True(t, ok)

	bin, ok := exprStmt.Expression.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, PLUS, bin.Op.Type)

	rhs, ok := bin.Right.(*BinaryExpr)
	require.True(t, ok, "* must bind tighter than +")
	assert.Equal(t, STAR, rhs.Op.Type)
}

func TestParserVarDeclaration(t *testing.T) {
	stmts, errs := parseAll(t, "var x = 1;")
	require.False(t, errs.HadStaticError())
	require.Len(t, stmts, 1)

	v, ok := stmts[0].(*VarStmt)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name.Lexeme)
	assert.NotNil(t, v.Initializer)
}

func TestParserClassWithSuperclassAndMethods(t *testing.T) {
	stmts, errs := parseAll(t, `
		class B < A {
			init(x) { this.x = x; }
			greet() { print "hi"; }
		}
	`)
	require.False(t, errs.HadStaticError())
	require.Len(t, stmts, 1)

	class, ok := stmts[0].(*ClassStmt)
	require.True(t, ok)
	assert.Equal(t, "B", class.Name.Lexeme)
	require.NotNil(t, class.Superclass)
	assert.Equal(t, "A", class.Superclass.Name.Lexeme)
	require.Len(t, class.Methods, 2)
	assert.True(t, class.Methods[0].IsInit())
}

func TestParserForDesugarsToWhile(t *testing.T) {
	stmts, errs := parseAll(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.False(t, errs.HadStaticError())
	require.Len(t, stmts, 1)

	outer, ok := stmts[0].(*BlockStmt)
	require.True(t, ok, "for with an initializer wraps in a block")
	require.Len(t, outer.Statements, 2)

	_, ok = outer.Statements[0].(*VarStmt)
	assert.True(t, ok)

	whileStmt, ok := outer.Statements[1].(*WhileStmt)
	require.True(t, ok)
	assert.NotNil(t, whileStmt.Condition)
}

func TestParserBreakStatement(t *testing.T) {
	stmts, errs := parseAll(t, "while (true) { break; }")
	require.False(t, errs.HadStaticError())
	whileStmt := stmts[0].(*WhileStmt)
	body := whileStmt.Body.(*BlockStmt)
	_, ok := body.Statements[0].(*BreakStmt)
	assert.True(t, ok)
}

func TestParserSynchronizesAfterError(t *testing.T) {
	// The first declaration is malformed (missing initializer), the second is valid;
	// synchronization should still let the second one parse (spec.md §8
	// invariant 8).
	stmts, errs := parseAll(t, "var a = ; var b = 2;")
	assert.True(t, errs.HadStaticError())
	require.Len(t, stmts, 1)
	v, ok := stmts[0].(*VarStmt)
	require.True(t, ok)
	assert.Equal(t, "b", v.Name.Lexeme)
}

func TestParserGetAndSetExpressions(t *testing.T) {
	stmts, errs := parseAll(t, "a.b.c = 1;")
	require.False(t, errs.HadStaticError())
	exprStmt := stmts[0].(*ExpressionStmt)
	set, ok := exprStmt.Expression.(*SetExpr)
	require.True(t, ok)
	assert.Equal(t, "c", set.Name.Lexeme)
	_, ok = set.Object.(*GetExpr)
	assert.True(t, ok)
}
