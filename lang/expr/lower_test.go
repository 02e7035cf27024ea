package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/expr"
)

func TestLowerAddDispatchesOnOperandType(t *testing.T) {
	l, r := intLit(1), intLit(2)
	name, err := expr.Lower(ast.Expr{Kind: ast.ExprAdd, Left: &l, Right: &r})
	require.NoError(t, err)
	require.Equal(t, "ins_50", name)

	lf, rf := floatLit(1), floatLit(2)
	name, err = expr.Lower(ast.Expr{Kind: ast.ExprAdd, Left: &lf, Right: &rf})
	require.NoError(t, err)
	require.Equal(t, "ins_51", name)
}

func TestLowerGeLandsOnSpecExamplePair(t *testing.T) {
	l, r := intLit(1), intLit(2)
	name, err := expr.Lower(ast.Expr{Kind: ast.ExprGe, Left: &l, Right: &r})
	require.NoError(t, err)
	require.Equal(t, "ins_69", name)

	lf, rf := floatLit(1), floatLit(2)
	name, err = expr.Lower(ast.Expr{Kind: ast.ExprGe, Left: &lf, Right: &rf})
	require.NoError(t, err)
	require.Equal(t, "ins_70", name)
}

func TestLowerModHasNoFloatVariant(t *testing.T) {
	l, r := intLit(5), intLit(2)
	name, err := expr.Lower(ast.Expr{Kind: ast.ExprMod, Left: &l, Right: &r})
	require.NoError(t, err)
	require.Equal(t, "ins_58", name)
}

func TestLowerUminusDispatchesOnOperandType(t *testing.T) {
	o := floatLit(1)
	name, err := expr.Lower(ast.Expr{Kind: ast.ExprUminus, Operand: &o})
	require.NoError(t, err)
	require.Equal(t, "ins_84", name)

	oi := intLit(1)
	name, err = expr.Lower(ast.Expr{Kind: ast.ExprUminus, Operand: &oi})
	require.NoError(t, err)
	require.Equal(t, "ins_83", name)
}

func TestLowerUnresolvedIdentifierIsError(t *testing.T) {
	_, err := expr.Lower(ast.Expr{Kind: ast.ExprId, Name: "x"})
	require.Error(t, err)
}

func TestLowerIntLiteralPushesInt(t *testing.T) {
	name, err := expr.Lower(intLit(1))
	require.NoError(t, err)
	require.Equal(t, "ins_42", name)
}
