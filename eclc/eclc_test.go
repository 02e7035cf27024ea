package eclc_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecl-lang/eclc/eclc"
)

func TestTokenizeSkipsWhitespaceAndComments(t *testing.T) {
	src := `sub main() { // a comment
		return;
	}`
	toks, err := eclc.Tokenize("t.ecl", []byte(src))
	require.NoError(t, err)

	var kinds []string
	for _, tok := range toks {
		kinds = append(kinds, string(tok.Kind))
	}
	require.Contains(t, kinds, "K_SUB")
	require.Contains(t, kinds, "K_RETURN")
	require.Equal(t, "$EOF", kinds[len(kinds)-1])
}

func TestParseProgramEmptySub(t *testing.T) {
	src := `sub main() { }`
	prog, err := eclc.ParseProgram("t.ecl", []byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Subs, 1)
	require.Equal(t, "main", prog.Subs[0].Name)
	require.Empty(t, prog.Subs[0].Instructions)
}

func TestParseProgramEcliAnmiHeaders(t *testing.T) {
	src := `
ecli { "a.ecl", "b.ecl" }
anmi { "walk" }
sub main() { return; }
`
	prog, err := eclc.ParseProgram("t.ecl", []byte(src))
	require.NoError(t, err)
	require.Equal(t, []string{"a.ecl", "b.ecl"}, prog.Ecli)
	require.Equal(t, []string{"walk"}, prog.Anmi)
}

func TestParseProgramVarDeclAndIf(t *testing.T) {
	src := `
sub main(int x) {
	int y = x + 1;
	if (y > 0) {
		return;
	} else {
		delete;
	}
}
`
	prog, err := eclc.ParseProgram("t.ecl", []byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Subs, 1)
	sub := prog.Subs[0]
	require.Len(t, sub.Params, 1)
	require.Len(t, sub.Instructions, 2)
}

func TestParseProgramSubCallForms(t *testing.T) {
	src := `
sub helper() { return; }
sub main() {
	@helper();
	@helper@async();
	@helper@async 2(1, 2);
	return;
}
`
	prog, err := eclc.ParseProgram("t.ecl", []byte(src))
	require.NoError(t, err)
	require.Len(t, prog.Subs, 2)
}

func TestCompileEmptyProgramProducesWellFormedHeader(t *testing.T) {
	src := `sub main() { }`
	blob, err := eclc.Compile("t.ecl", []byte(src))
	require.NoError(t, err)
	require.Equal(t, "SCPT", string(blob[:4]))
	require.Equal(t, uint32(1), binary.LittleEndian.Uint32(blob[16:20]))
}

func TestCompileRejectsUnknownBuiltinLabel(t *testing.T) {
	src := `sub main() { PI: return; }`
	_, err := eclc.Compile("t.ecl", []byte(src))
	require.Error(t, err)
}
