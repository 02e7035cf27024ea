package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/expr"
)

func TestFoldIntArithmetic(t *testing.T) {
	l, r := intLit(3), intLit(4)
	out := expr.Fold(ast.Expr{Kind: ast.ExprAdd, Left: &l, Right: &r})
	require.Equal(t, ast.ExprInt, out.Kind)
	require.Equal(t, int32(7), out.IntVal)
}

func TestFoldIntDivisionByZeroLeavesNodeUnfolded(t *testing.T) {
	l, r := intLit(3), intLit(0)
	out := expr.Fold(ast.Expr{Kind: ast.ExprDiv, Left: &l, Right: &r})
	require.Equal(t, ast.ExprDiv, out.Kind)
}

func TestFoldStringConcat(t *testing.T) {
	l := ast.Expr{Kind: ast.ExprStr, StrVal: "foo", Type: ast.TypeString}
	r := ast.Expr{Kind: ast.ExprStr, StrVal: "bar", Type: ast.TypeString}
	out := expr.Fold(ast.Expr{Kind: ast.ExprAdd, Left: &l, Right: &r})
	require.Equal(t, ast.ExprStr, out.Kind)
	require.Equal(t, "foobar", out.StrVal)
}

func TestFoldStringRepeatByInt(t *testing.T) {
	l := ast.Expr{Kind: ast.ExprStr, StrVal: "ab", Type: ast.TypeString}
	r := intLit(3)
	out := expr.Fold(ast.Expr{Kind: ast.ExprMul, Left: &l, Right: &r})
	require.Equal(t, ast.ExprStr, out.Kind)
	require.Equal(t, "ababab", out.StrVal)
}

func TestFoldUnaryUminus(t *testing.T) {
	o := intLit(5)
	out := expr.Fold(ast.Expr{Kind: ast.ExprUminus, Operand: &o})
	require.Equal(t, ast.ExprInt, out.Kind)
	require.Equal(t, int32(-5), out.IntVal)
}

func TestFoldNotOnInt(t *testing.T) {
	o := intLit(0)
	out := expr.Fold(ast.Expr{Kind: ast.ExprNot, Operand: &o})
	require.Equal(t, ast.ExprInt, out.Kind)
	require.Equal(t, int32(1), out.IntVal)
}

func TestFoldIntOverflowWraps(t *testing.T) {
	l, r := intLit(2147483647), intLit(1)
	out := expr.Fold(ast.Expr{Kind: ast.ExprAdd, Left: &l, Right: &r})
	require.Equal(t, int32(-2147483648), out.IntVal)
}

func TestFoldIsIdempotent(t *testing.T) {
	l, r := intLit(3), intLit(4)
	once := expr.Fold(ast.Expr{Kind: ast.ExprAdd, Left: &l, Right: &r})
	twice := expr.Fold(once)
	require.Equal(t, once, twice)
}

func TestFoldLeavesVariableReferenceUntouched(t *testing.T) {
	v := ast.Expr{Kind: ast.ExprVarInt, Offset: 4, Type: ast.TypeInt}
	out := expr.Fold(v)
	require.Equal(t, v, out)
}
