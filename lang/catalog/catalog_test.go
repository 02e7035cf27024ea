package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecl-lang/eclc/lang/catalog"
)

func testDefs() []catalog.InsDef {
	return []catalog.InsDef{
		{Opcode: 1, Aliases: []string{"wait"}, ArgFormat: []catalog.ArgKind{catalog.ArgInt}},
		{Opcode: 2, Aliases: []string{"move"}, ArgFormat: []catalog.ArgKind{catalog.ArgFloat, catalog.ArgFloat}},
		{Opcode: 3, Aliases: []string{"print"}, ArgFormat: []catalog.ArgKind{catalog.ArgStr, catalog.ArgVarargs}},
		{Opcode: 4, Aliases: []string{"move"}, ArgFormat: []catalog.ArgKind{catalog.ArgInt, catalog.ArgInt}},
	}
}

func TestMatchInstructionPerfectMatch(t *testing.T) {
	c := catalog.New(testDefs())
	m := c.MatchInstruction("wait", []catalog.ArgValue{{Kind: catalog.ArgInt}})
	require.Equal(t, catalog.PerfectMatch, m.Kind)
	require.Equal(t, uint16(1), m.Opcode)
}

func TestMatchInstructionOverloadPicksMatchingArity(t *testing.T) {
	c := catalog.New(testDefs())
	m := c.MatchInstruction("move", []catalog.ArgValue{{Kind: catalog.ArgInt}, {Kind: catalog.ArgInt}})
	require.Equal(t, catalog.PerfectMatch, m.Kind)
	require.Equal(t, uint16(4), m.Opcode)
}

func TestMatchInstructionWithVarargs(t *testing.T) {
	c := catalog.New(testDefs())
	m := c.MatchInstruction("print", []catalog.ArgValue{
		{Kind: catalog.ArgStr}, {Kind: catalog.ArgInt}, {Kind: catalog.ArgInt},
	})
	require.Equal(t, catalog.WithVarargs, m.Kind)
	require.Equal(t, uint16(3), m.Opcode)
	require.Equal(t, 1, m.VarargStart)
}

func TestMatchInstructionStringInVarargsRejected(t *testing.T) {
	c := catalog.New(testDefs())
	m := c.MatchInstruction("print", []catalog.ArgValue{
		{Kind: catalog.ArgStr}, {Kind: catalog.ArgStr},
	})
	require.Equal(t, catalog.StringInVarargs, m.Kind)
}

func TestMatchInstructionNameAndArgCountMismatch(t *testing.T) {
	c := catalog.New(testDefs())
	m := c.MatchInstruction("wait", []catalog.ArgValue{{Kind: catalog.ArgFloat}})
	require.Equal(t, catalog.NameAndArgCountMatch, m.Kind)
	require.Len(t, m.NearMatches, 1)
}

func TestMatchInstructionNoMatchForUnknownName(t *testing.T) {
	c := catalog.New(testDefs())
	m := c.MatchInstruction("nope", []catalog.ArgValue{})
	require.Equal(t, catalog.NoMatch, m.Kind)
	require.Empty(t, m.NearMatches)
}

func TestMatchInstructionLiteralInsNameMatchesOpcodeDirectly(t *testing.T) {
	c := catalog.New(testDefs())
	m := c.MatchInstruction("ins_2", []catalog.ArgValue{{Kind: catalog.ArgFloat}, {Kind: catalog.ArgFloat}})
	require.Equal(t, catalog.PerfectMatch, m.Kind)
	require.Equal(t, uint16(2), m.Opcode)
}

func TestMatchInstructionLiteralInsNameUnknownOpcode(t *testing.T) {
	c := catalog.New(testDefs())
	m := c.MatchInstruction("ins_999", []catalog.ArgValue{})
	require.Equal(t, catalog.NoMatch, m.Kind)
}

func TestDescribeNearMatches(t *testing.T) {
	defs := testDefs()
	desc := catalog.DescribeNearMatches([]catalog.InsDef{defs[1], defs[3]})
	require.Equal(t, "move(Float, Float), move(Int, Int)", desc)
}
