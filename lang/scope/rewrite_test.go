package scope_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/scope"
	"github.com/ecl-lang/eclc/lang/token"
)

func TestReplaceInBlocDeclaresVarThenResolvesReferenceInLaterStatement(t *testing.T) {
	s := scope.New()
	s.Push()
	instrs := []ast.Instr{
		{Kind: ast.InstrVarInt, Name: "x", HasInit: true, Expr: ast.Expr{Kind: ast.ExprInt, IntVal: 1}},
		{Kind: ast.InstrAffect, Name: "x", Expr: ast.Expr{Kind: ast.ExprId, Name: "x"}},
	}
	out, err := scope.ReplaceInBloc(instrs, s)
	require.NoError(t, err)
	require.Len(t, out, 2)

	require.Equal(t, int32(0), out[0].Offset)
	require.Equal(t, int32(0), out[1].Offset)
	require.Equal(t, ast.ParamInt, out[1].VarKind)
	require.Equal(t, ast.ExprVarInt, out[1].Expr.Kind)
	require.Equal(t, int32(0), out[1].Expr.Offset)
}

func TestReplaceInBlocAffectToUnknownVariableIsError(t *testing.T) {
	s := scope.New()
	s.Push()
	instrs := []ast.Instr{{Kind: ast.InstrAffect, Name: "missing", Expr: ast.Expr{Kind: ast.ExprInt, IntVal: 1}}}
	_, err := scope.ReplaceInBloc(instrs, s)
	require.Error(t, err)
}

func TestReplaceInBlocFloatVarProducesVarFloatRef(t *testing.T) {
	s := scope.New()
	s.Push()
	instrs := []ast.Instr{
		{Kind: ast.InstrVarFloat, Name: "f", HasInit: false},
		{Kind: ast.InstrPushExpr, Expr: ast.Expr{Kind: ast.ExprId, Name: "f"}},
	}
	out, err := scope.ReplaceInBloc(instrs, s)
	require.NoError(t, err)
	require.Equal(t, ast.ExprVarFloat, out[1].Expr.Kind)
	require.Equal(t, ast.TypeFloat, out[1].Expr.Type)
}

func TestReplaceInBlocNestedBlocVariableDoesNotEscapeOuterScope(t *testing.T) {
	s := scope.New()
	s.Push()
	instrs := []ast.Instr{
		{Kind: ast.InstrBloc, Body: []ast.Instr{
			{Kind: ast.InstrVarInt, Name: "inner"},
		}},
		{Kind: ast.InstrAffect, Name: "inner", Expr: ast.Expr{Kind: ast.ExprInt, IntVal: 1}},
	}
	_, err := scope.ReplaceInBloc(instrs, s)
	require.Error(t, err, "inner's binding should not survive past the Bloc it was declared in")
}

func TestReplaceExprUnresolvedIdentifierIsLeftForLaterPasses(t *testing.T) {
	s := scope.New()
	s.Push()
	instrs := []ast.Instr{
		{Kind: ast.InstrPushExpr, Expr: ast.Expr{Kind: ast.ExprId, Name: "PI"}},
	}
	out, err := scope.ReplaceInBloc(instrs, s)
	require.NoError(t, err)
	require.Equal(t, ast.ExprId, out[0].Expr.Kind)
	require.Equal(t, "PI", out[0].Expr.Name)
}

func TestReplaceExprBinaryRecursesBothSides(t *testing.T) {
	s := scope.New()
	s.Push()
	_, err := s.AddVar("a", ast.ParamInt, token.Position{})
	require.NoError(t, err)

	l := ast.Expr{Kind: ast.ExprId, Name: "a"}
	r := ast.Expr{Kind: ast.ExprInt, IntVal: 1}
	instrs := []ast.Instr{
		{Kind: ast.InstrPushExpr, Expr: ast.Expr{Kind: ast.ExprAdd, Left: &l, Right: &r}},
	}
	out, err := scope.ReplaceInBloc(instrs, s)
	require.NoError(t, err)
	require.Equal(t, ast.ExprVarInt, out[0].Expr.Left.Kind)
	require.Equal(t, ast.ExprInt, out[0].Expr.Right.Kind)
}
