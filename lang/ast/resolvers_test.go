package ast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecl-lang/eclc/lang/astdef"
	"github.com/ecl-lang/eclc/lang/token"
)

func TestNewVarWithInitializerSetsHasInit(t *testing.T) {
	nameTok := astdef.TokenNode{Tok: token.Token{Text: "x"}}
	init := Expr{Kind: ExprInt, IntVal: 1}
	node, err := newVar([]astdef.Node{nameTok, init}, ParamInt)
	require.NoError(t, err)
	in := node.(Instr)
	require.True(t, in.HasInit)
	require.Equal(t, ExprInt, in.Expr.Kind)
}

func TestNewVarWithNoInitSentinelLeavesHasInitFalse(t *testing.T) {
	nameTok := astdef.TokenNode{Tok: token.Token{Text: "x"}}
	sentinel, err := resolveNoInit(nil)
	require.NoError(t, err)
	node, err := newVar([]astdef.Node{nameTok, sentinel}, ParamFloat)
	require.NoError(t, err)
	in := node.(Instr)
	require.False(t, in.HasInit)
	require.Equal(t, InstrVarFloat, in.Kind)
}

func TestNewVarMissingNameIsGrammarError(t *testing.T) {
	_, err := newVar(nil, ParamInt)
	require.Error(t, err)
}

func TestUnescapeStringStripsQuotesAndDecodesEscapes(t *testing.T) {
	require.Equal(t, "hello\nworld", unescapeString(`"hello\nworld"`))
	require.Equal(t, `say "hi"`, unescapeString(`"say \"hi\""`))
	require.Equal(t, "tab\there", unescapeString(`"tab\there"`))
}

func TestUnescapeStringLeavesUnquotedTextUntouched(t *testing.T) {
	require.Equal(t, "noquotes", unescapeString("noquotes"))
}

func TestParseRankMaskAllSetsEveryBit(t *testing.T) {
	m, err := parseRankMask("all")
	require.NoError(t, err)
	require.Equal(t, uint8(0xFF), m)
}

func TestParseRankMaskBaseIs192(t *testing.T) {
	m, err := parseRankMask("")
	require.NoError(t, err)
	require.Equal(t, uint8(192), m)
}

func TestTimeLabelResolverSetsDistinctOps(t *testing.T) {
	tok := astdef.TokenNode{Tok: token.Token{Text: "5"}}
	for _, c := range []struct {
		op   TimeLabelOp
		want TimeLabelOp
	}{
		{TimeSet, TimeSet}, {TimeAdd, TimeAdd}, {TimeSub, TimeSub},
	} {
		node, err := timeLabelResolver(c.op)([]astdef.Node{tok})
		require.NoError(t, err)
		in := node.(Instr)
		require.Equal(t, InstrTimeLabel, in.Kind)
		require.Equal(t, c.want, in.TimeOp)
		require.Equal(t, int32(5), in.TimeVal)
	}
}

func TestSubCallResolverSyncHasNoDelay(t *testing.T) {
	nameTok := astdef.TokenNode{Tok: token.Token{Text: "helper"}}
	node, err := subCallResolver(SubCallSync)([]astdef.Node{nameTok, astdef.List{}})
	require.NoError(t, err)
	in := node.(Instr)
	require.Equal(t, SubCallSync, in.Mode)
	require.Equal(t, "helper", in.SubName)
	require.Equal(t, Expr{}, in.Delay)
}

func TestSubCallResolverAsyncDelayReadsDelayBeforeArgs(t *testing.T) {
	nameTok := astdef.TokenNode{Tok: token.Token{Text: "helper"}}
	delay := Expr{Kind: ExprInt, IntVal: 2}
	arg := Expr{Kind: ExprInt, IntVal: 7}
	node, err := subCallResolver(SubCallAsyncDelay)([]astdef.Node{nameTok, delay, astdef.List{arg}})
	require.NoError(t, err)
	in := node.(Instr)
	require.Equal(t, SubCallAsyncDelay, in.Mode)
	require.Equal(t, int32(2), in.Delay.IntVal)
	require.Len(t, in.Args, 1)
	require.Equal(t, int32(7), in.Args[0].IntVal)
}

func TestLabelResolverBuildsInstrLabel(t *testing.T) {
	nameTok := astdef.TokenNode{Tok: token.Token{Text: "top"}}
	node, err := resolveLabel([]astdef.Node{nameTok})
	require.NoError(t, err)
	in := node.(Instr)
	require.Equal(t, InstrLabel, in.Kind)
	require.Equal(t, "top", in.Name)
}

func TestStringListUnescapesEntries(t *testing.T) {
	list := astdef.List{
		astdef.TokenNode{Tok: token.Token{Text: `"a"`}},
		astdef.TokenNode{Tok: token.Token{Text: `"b\nc"`}},
	}
	out, err := stringList(list, "test")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b\nc"}, out)
}

func TestBinaryExprResolverBuildsExprWithLeftAndRight(t *testing.T) {
	l := Expr{Kind: ExprInt, IntVal: 1}
	r := Expr{Kind: ExprInt, IntVal: 2}
	node, err := binaryExprResolver(ExprAdd)([]astdef.Node{l, r})
	require.NoError(t, err)
	e := node.(Expr)
	require.Equal(t, ExprAdd, e.Kind)
	require.Equal(t, int32(1), e.Left.IntVal)
	require.Equal(t, int32(2), e.Right.IntVal)
}

func TestUnaryExprResolverBuildsExprWithOperand(t *testing.T) {
	o := Expr{Kind: ExprInt, IntVal: 3}
	node, err := unaryExprResolver(ExprUminus)([]astdef.Node{o})
	require.NoError(t, err)
	e := node.(Expr)
	require.Equal(t, ExprUminus, e.Kind)
	require.Equal(t, int32(3), e.Operand.IntVal)
}
