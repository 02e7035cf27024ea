package astdef_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecl-lang/eclc/lang/astdef"
)

func TestParseDerive(t *testing.T) {
	d, err := astdef.Parse("$2")
	require.NoError(t, err)
	require.Equal(t, astdef.KindDerive, d.Kind)
	require.Equal(t, 2, d.Child)
}

func TestParseDeriveWith(t *testing.T) {
	d, err := astdef.Parse("$1.derive($0)")
	require.NoError(t, err)
	require.Equal(t, astdef.KindDeriveWith, d.Kind)
	require.Equal(t, 1, d.Child)
	require.Len(t, d.Args, 1)
	require.Equal(t, astdef.KindDerive, d.Args[0].Kind)
	require.Equal(t, 0, d.Args[0].Child)
}

func TestParseParam(t *testing.T) {
	d, err := astdef.Parse("$param0")
	require.NoError(t, err)
	require.Equal(t, astdef.KindParam, d.Kind)
	require.Equal(t, 0, d.Param)
}

func TestParseCallNoArgs(t *testing.T) {
	d, err := astdef.Parse("List::Empty()")
	require.NoError(t, err)
	require.Equal(t, astdef.KindCall, d.Kind)
	require.Equal(t, "List::Empty", d.Path)
	require.Empty(t, d.Args)
}

func TestParseCallNestedArgs(t *testing.T) {
	d, err := astdef.Parse("Expr::Binary::Add($param0,$1)")
	require.NoError(t, err)
	require.Equal(t, astdef.KindCall, d.Kind)
	require.Equal(t, "Expr::Binary::Add", d.Path)
	require.Len(t, d.Args, 2)
	require.Equal(t, astdef.KindParam, d.Args[0].Kind)
	require.Equal(t, astdef.KindDerive, d.Args[1].Kind)
}

func TestParseCallWithParamAndChildArgs(t *testing.T) {
	d, err := astdef.Parse("Instr::Call($param0,$1)")
	require.NoError(t, err)
	require.Equal(t, "Instr::Call", d.Path)
	require.Len(t, d.Args, 2)
}

func TestParseDeriveWithNestedCallArg(t *testing.T) {
	d, err := astdef.Parse("$2.derive(Expr::Binary::Or($param0,$1))")
	require.NoError(t, err)
	require.Equal(t, astdef.KindDeriveWith, d.Kind)
	require.Len(t, d.Args, 1)
	require.Equal(t, astdef.KindCall, d.Args[0].Kind)
	require.Equal(t, "Expr::Binary::Or", d.Args[0].Path)
	require.Len(t, d.Args[0].Args, 2)
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	_, err := astdef.Parse("$0 garbage")
	require.Error(t, err)
}

func TestParseRejectsMalformedCall(t *testing.T) {
	_, err := astdef.Parse("Foo::Bar")
	require.Error(t, err)
}

func TestParseRejectsOutOfPlaceDollar(t *testing.T) {
	_, err := astdef.Parse("$")
	require.Error(t, err)
}

func TestParseIgnoresSurroundingWhitespace(t *testing.T) {
	d, err := astdef.Parse("  $param0  ")
	require.NoError(t, err)
	require.Equal(t, astdef.KindParam, d.Kind)
}
