package scope_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/scope"
	"github.com/ecl-lang/eclc/lang/token"
)

func TestAddVarAssignsIncreasingOffsets(t *testing.T) {
	s := scope.New()
	s.Push()
	o1, err := s.AddVar("a", ast.ParamInt, token.Position{})
	require.NoError(t, err)
	o2, err := s.AddVar("b", ast.ParamInt, token.Position{})
	require.NoError(t, err)
	require.Equal(t, int32(0), o1)
	require.Equal(t, int32(4), o2)
	require.Equal(t, int32(8), s.MaxOffset())
}

func TestAddVarDuplicateInSameFrameIsError(t *testing.T) {
	s := scope.New()
	s.Push()
	_, err := s.AddVar("a", ast.ParamInt, token.Position{})
	require.NoError(t, err)
	_, err = s.AddVar("a", ast.ParamInt, token.Position{})
	require.Error(t, err)
}

func TestGetVarWalksOuterFrames(t *testing.T) {
	s := scope.New()
	s.Push()
	_, err := s.AddVar("outer", ast.ParamFloat, token.Position{})
	require.NoError(t, err)

	s.Push()
	_, err = s.AddVar("inner", ast.ParamInt, token.Position{})
	require.NoError(t, err)

	kind, _, ok := s.GetVar("outer")
	require.True(t, ok)
	require.Equal(t, ast.ParamFloat, kind)

	kind, _, ok = s.GetVar("inner")
	require.True(t, ok)
	require.Equal(t, ast.ParamInt, kind)
}

func TestGetVarMissingReturnsFalse(t *testing.T) {
	s := scope.New()
	s.Push()
	_, _, ok := s.GetVar("nope")
	require.False(t, ok)
}

func TestPopRollsBackLocalOffsetButKeepsSubMax(t *testing.T) {
	s := scope.New()
	s.Push()
	_, err := s.AddVar("a", ast.ParamInt, token.Position{})
	require.NoError(t, err)

	s.Push()
	_, err = s.AddVar("b", ast.ParamInt, token.Position{})
	require.NoError(t, err)
	require.Equal(t, int32(8), s.MaxOffset())

	s.Pop()
	require.Equal(t, int32(8), s.MaxOffset(), "subroutine-wide high-water mark survives a pop")

	o, err := s.AddVar("c", ast.ParamInt, token.Position{})
	require.NoError(t, err)
	require.Equal(t, int32(4), o, "a new sibling block reuses the offset freed by the popped frame")
}

func TestPopRemovesInnerFrameBindings(t *testing.T) {
	s := scope.New()
	s.Push()
	_, err := s.AddVar("a", ast.ParamInt, token.Position{})
	require.NoError(t, err)

	s.Push()
	_, err = s.AddVar("b", ast.ParamInt, token.Position{})
	require.NoError(t, err)
	s.Pop()

	_, _, ok := s.GetVar("b")
	require.False(t, ok)
	_, _, ok = s.GetVar("a")
	require.True(t, ok)
}
