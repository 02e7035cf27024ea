package emitter_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/emitter"
)

func TestSizeOfCallMatchesArgCount(t *testing.T) {
	in := ast.Instr{Kind: ast.InstrCall, Name: "ins_10"}
	sz, err := emitter.Size(in)
	require.NoError(t, err)
	require.Equal(t, 16, sz)

	in.Args = []ast.Expr{{Kind: ast.ExprInt, IntVal: 1}, {Kind: ast.ExprVarInt, Offset: -1}}
	sz, err = emitter.Size(in)
	require.NoError(t, err)
	require.Equal(t, 24, sz)
}

func TestSizeIsZeroForLabels(t *testing.T) {
	for _, k := range []ast.InstrKind{ast.InstrLabel, ast.InstrTimeLabel, ast.InstrRankLabel} {
		sz, err := emitter.Size(ast.Instr{Kind: k})
		require.NoError(t, err)
		require.Zero(t, sz)
	}
}

func TestEmitMinimalProgram(t *testing.T) {
	p := emitter.Program{
		Subs: []emitter.Sub{
			{Name: "main", Instructions: []ast.Instr{{Kind: ast.InstrCall, Name: "ins_10"}}},
		},
	}
	out, err := emitter.Emit(p)
	require.NoError(t, err)
	require.Equal(t, "SCPT", string(out[:4]))
	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(out[4:6]))
	require.Equal(t, uint32(36), binary.LittleEndian.Uint32(out[8:12]))
	require.Equal(t, uint32(1), binary.LittleEndian.Uint32(out[16:20]))
}

func TestEmitRejectsUnresolvedLabel(t *testing.T) {
	p := emitter.Program{
		Subs: []emitter.Sub{
			{Name: "main", Instructions: []ast.Instr{{Kind: ast.InstrLabel, Name: "lbl"}}},
		},
	}
	_, err := emitter.Emit(p)
	require.Error(t, err)
}
