package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/expr"
)

func intLit(v int32) ast.Expr   { return ast.Expr{Kind: ast.ExprInt, IntVal: v, Type: ast.TypeInt} }
func floatLit(v float32) ast.Expr {
	return ast.Expr{Kind: ast.ExprFloat, FloatVal: v, Type: ast.TypeFloat}
}

func TestAnnotateArithmeticMatchingTypes(t *testing.T) {
	l, r := intLit(1), intLit(2)
	e := ast.Expr{Kind: ast.ExprAdd, Left: &l, Right: &r}
	out, err := expr.Annotate(e)
	require.NoError(t, err)
	require.Equal(t, ast.TypeInt, out.Type)
}

func TestAnnotateArithmeticMismatchedTypesIsError(t *testing.T) {
	l, r := intLit(1), floatLit(2)
	e := ast.Expr{Kind: ast.ExprAdd, Left: &l, Right: &r}
	_, err := expr.Annotate(e)
	require.Error(t, err)
}

func TestAnnotateComparisonAlwaysReturnsInt(t *testing.T) {
	l, r := floatLit(1), floatLit(2)
	e := ast.Expr{Kind: ast.ExprLt, Left: &l, Right: &r}
	out, err := expr.Annotate(e)
	require.NoError(t, err)
	require.Equal(t, ast.TypeInt, out.Type)
}

func TestAnnotateBitwiseRequiresInt(t *testing.T) {
	l, r := floatLit(1), floatLit(2)
	e := ast.Expr{Kind: ast.ExprBinAnd, Left: &l, Right: &r}
	_, err := expr.Annotate(e)
	require.Error(t, err)
}

func TestAnnotateSqrtRequiresFloat(t *testing.T) {
	o := intLit(4)
	e := ast.Expr{Kind: ast.ExprSqrt, Operand: &o}
	_, err := expr.Annotate(e)
	require.Error(t, err)

	of := floatLit(4)
	e2 := ast.Expr{Kind: ast.ExprSqrt, Operand: &of}
	out, err := expr.Annotate(e2)
	require.NoError(t, err)
	require.Equal(t, ast.TypeFloat, out.Type)
}

func TestAnnotateUnresolvedIdentifierIsError(t *testing.T) {
	_, err := expr.Annotate(ast.Expr{Kind: ast.ExprId, Name: "x"})
	require.Error(t, err)
}

func TestAnnotateNotRequiresInt(t *testing.T) {
	o := floatLit(1)
	_, err := expr.Annotate(ast.Expr{Kind: ast.ExprNot, Operand: &o})
	require.Error(t, err)

	oi := intLit(0)
	out, err := expr.Annotate(ast.Expr{Kind: ast.ExprNot, Operand: &oi})
	require.NoError(t, err)
	require.Equal(t, ast.TypeInt, out.Type)
}
