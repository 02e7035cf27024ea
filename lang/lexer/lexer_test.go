package lexer_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecl-lang/eclc/lang/lexer"
	"github.com/ecl-lang/eclc/lang/token"
)

func rule(kind token.Kind, pattern string, ignore bool) lexer.Rule {
	return lexer.Rule{Kind: kind, Regex: regexp.MustCompile(`\A(?:` + pattern + `)`), Ignore: ignore}
}

func identKeywordRules() []lexer.Rule {
	return []lexer.Rule{
		rule("IDENT", `[a-zA-Z_][a-zA-Z0-9_]*`, false),
		rule("K_IF", `if\b`, false),
		rule(" ", `[ \t\n]+`, true),
	}
}

func TestTokenizeLongestMatchWins(t *testing.T) {
	toks, err := lexer.New("t", []byte("ifcount"), identKeywordRules()).Tokenize()
	require.NoError(t, err)
	require.Equal(t, token.Kind("IDENT"), toks[0].Kind)
	require.Equal(t, "ifcount", toks[0].Text)
}

func TestTokenizeTieBreaksToLaterDeclaredRule(t *testing.T) {
	toks, err := lexer.New("t", []byte("if"), identKeywordRules()).Tokenize()
	require.NoError(t, err)
	require.Equal(t, token.Kind("K_IF"), toks[0].Kind)
}

func TestTokenizeSkipsIgnoredRuns(t *testing.T) {
	toks, err := lexer.New("t", []byte("if   if"), identKeywordRules()).Tokenize()
	require.NoError(t, err)
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []token.Kind{"K_IF", "K_IF", token.EOF}, kinds)
}

func TestTokenizeAlwaysTerminatesWithEOF(t *testing.T) {
	toks, err := lexer.New("t", []byte(""), identKeywordRules()).Tokenize()
	require.NoError(t, err)
	require.Len(t, toks, 1)
	require.Equal(t, token.EOF, toks[0].Kind)
}

func TestTokenizeReportsErrorOnUnrecognizedCharacterAndContinues(t *testing.T) {
	toks, err := lexer.New("t", []byte("if#if"), identKeywordRules()).Tokenize()
	require.Error(t, err)
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []token.Kind{"K_IF", "K_IF", token.EOF}, kinds)
}

func TestTokenizeTracksLineAndColumnAcrossNewlines(t *testing.T) {
	toks, err := lexer.New("t", []byte("if\nif"), identKeywordRules()).Tokenize()
	require.NoError(t, err)
	require.Equal(t, 1, toks[0].Pos.Line)
	require.Equal(t, 1, toks[0].Pos.ColStart)
	require.Equal(t, 2, toks[1].Pos.Line)
	require.Equal(t, 1, toks[1].Pos.ColStart)
}
