package desugar_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/desugar"
)

func intCond(v int32) ast.Expr {
	return ast.Expr{Kind: ast.ExprInt, IntVal: v, Type: ast.TypeInt}
}

func varCond() ast.Expr {
	return ast.Expr{Kind: ast.ExprVarInt, Offset: 4, Type: ast.TypeInt}
}

func TestLabelerProducesMonotonicNames(t *testing.T) {
	lab := desugar.NewLabeler("main")
	require.Equal(t, "main_label_1", lab.New())
	require.Equal(t, "main_label_2", lab.New())
	require.Equal(t, "main_label_3", lab.New())
}

func TestDesugarIfConstantTrueKeepsOnlyThen(t *testing.T) {
	in := ast.Instr{
		Kind: ast.InstrIf,
		Cond: intCond(1),
		Body: []ast.Instr{{Kind: ast.InstrReturn}},
		Else: []ast.Instr{{Kind: ast.InstrDelete}},
	}
	out, err := desugar.Body([]ast.Instr{in}, desugar.NewLabeler("s"), nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, ast.InstrReturn, out[0].Kind)
}

func TestDesugarIfConstantFalseKeepsOnlyElse(t *testing.T) {
	in := ast.Instr{
		Kind: ast.InstrIf,
		Cond: intCond(0),
		Body: []ast.Instr{{Kind: ast.InstrReturn}},
		Else: []ast.Instr{{Kind: ast.InstrDelete}},
	}
	out, err := desugar.Body([]ast.Instr{in}, desugar.NewLabeler("s"), nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, ast.InstrDelete, out[0].Kind)
}

func TestDesugarIfDynamicConditionWithoutElseEmitsSingleEndLabel(t *testing.T) {
	in := ast.Instr{
		Kind: ast.InstrIf,
		Cond: varCond(),
		Body: []ast.Instr{{Kind: ast.InstrReturn}},
	}
	out, err := desugar.Body([]ast.Instr{in}, desugar.NewLabeler("s"), nil)
	require.NoError(t, err)

	var labels, returns int
	for _, i := range out {
		if i.Kind == ast.InstrLabel {
			labels++
		}
		if i.Kind == ast.InstrReturn {
			returns++
		}
	}
	require.Equal(t, 1, labels)
	require.Equal(t, 1, returns)
	require.NoError(t, noStructuredFormsRemain(out))
}

func TestDesugarIfDynamicConditionWithElseEmitsTwoLabels(t *testing.T) {
	in := ast.Instr{
		Kind: ast.InstrIf,
		Cond: varCond(),
		Body: []ast.Instr{{Kind: ast.InstrReturn}},
		Else: []ast.Instr{{Kind: ast.InstrDelete}},
	}
	out, err := desugar.Body([]ast.Instr{in}, desugar.NewLabeler("s"), nil)
	require.NoError(t, err)

	var labels int
	for _, i := range out {
		if i.Kind == ast.InstrLabel {
			labels++
		}
	}
	require.Equal(t, 2, labels)
}

func TestDesugarIfNonIntConditionIsError(t *testing.T) {
	in := ast.Instr{
		Kind: ast.InstrIf,
		Cond: ast.Expr{Kind: ast.ExprVarFloat, Type: ast.TypeFloat},
		Body: []ast.Instr{{Kind: ast.InstrReturn}},
	}
	_, err := desugar.Body([]ast.Instr{in}, desugar.NewLabeler("s"), nil)
	require.Error(t, err)
}

func TestDesugarLoopWithBreakEmitsBreakLabelOnlyWhenUsed(t *testing.T) {
	withBreak := ast.Instr{Kind: ast.InstrLoop, Body: []ast.Instr{{Kind: ast.InstrBreak}}}
	out, err := desugar.Body([]ast.Instr{withBreak}, desugar.NewLabeler("s"), nil)
	require.NoError(t, err)
	require.Equal(t, 2, countKind(out, ast.InstrLabel))

	noBreak := ast.Instr{Kind: ast.InstrLoop, Body: []ast.Instr{{Kind: ast.InstrReturn}}}
	out2, err := desugar.Body([]ast.Instr{noBreak}, desugar.NewLabeler("s"), nil)
	require.NoError(t, err)
	require.Equal(t, 1, countKind(out2, ast.InstrLabel))
}

func TestDesugarWhileConstantTrueDegradesToLoop(t *testing.T) {
	in := ast.Instr{Kind: ast.InstrWhile, Cond: intCond(1), Body: []ast.Instr{{Kind: ast.InstrReturn}}}
	out, err := desugar.Body([]ast.Instr{in}, desugar.NewLabeler("s"), nil)
	require.NoError(t, err)
	require.NoError(t, noStructuredFormsRemain(out))
}

func TestDesugarWhileConstantFalseEmitsNothing(t *testing.T) {
	in := ast.Instr{Kind: ast.InstrWhile, Cond: intCond(0), Body: []ast.Instr{{Kind: ast.InstrReturn}}}
	out, err := desugar.Body([]ast.Instr{in}, desugar.NewLabeler("s"), nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestDesugarDoWhileConstantFalseStillRunsBodyOnce(t *testing.T) {
	in := ast.Instr{Kind: ast.InstrDoWhile, Cond: intCond(0), Body: []ast.Instr{{Kind: ast.InstrReturn}}}
	out, err := desugar.Body([]ast.Instr{in}, desugar.NewLabeler("s"), nil)
	require.NoError(t, err)
	require.Equal(t, 1, countKind(out, ast.InstrReturn))
}

func TestDesugarBreakOutsideLoopIsDropped(t *testing.T) {
	out, err := desugar.Body([]ast.Instr{{Kind: ast.InstrBreak}}, desugar.NewLabeler("s"), nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func countKind(instrs []ast.Instr, k ast.InstrKind) int {
	n := 0
	for _, i := range instrs {
		if i.Kind == k {
			n++
		}
	}
	return n
}

func noStructuredFormsRemain(instrs []ast.Instr) error {
	for _, i := range instrs {
		switch i.Kind {
		case ast.InstrIf, ast.InstrLoop, ast.InstrWhile, ast.InstrDoWhile, ast.InstrBloc, ast.InstrBreak, ast.InstrContinue:
			return errStructuredFormSurvived
		}
	}
	return nil
}

var errStructuredFormSurvived = &structuredFormErr{}

type structuredFormErr struct{}

func (*structuredFormErr) Error() string { return "structured form survived desugaring" }
