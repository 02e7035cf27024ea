package parser_test

import (
	"testing"

	"github.com/ecl-lang/eclc/lang/grammar"
	"github.com/ecl-lang/eclc/lang/lexer"
	"github.com/ecl-lang/eclc/lang/parser"
	"github.com/ecl-lang/eclc/lang/token"
	"github.com/stretchr/testify/require"
)

const exprGrammar = `
!token PLUS => \+
!token INT => [0-9]+
!token LPAREN => \(
!token RPAREN => \)
!ignore [ \t]+

E ::= T EP { $0 }
EP ::= PLUS T EP { $0 } | epsilon { $0 }
T ::= INT { $0 } | LPAREN E RPAREN { $0 }
`

func compileExprGrammar(t *testing.T) *grammar.Compiled {
	t.Helper()
	g, err := grammar.Load(exprGrammar)
	require.NoError(t, err)
	c, err := grammar.Compile(g)
	require.NoError(t, err)
	return c
}

func tokenize(t *testing.T, c *grammar.Compiled, src string) []token.Token {
	t.Helper()
	lx := lexer.New("test.ecl", []byte(src), c.Grammar.LexerRules())
	toks, err := lx.Tokenize()
	require.NoError(t, err)
	return toks
}

func TestParseAcceptsNestedExpression(t *testing.T) {
	c := compileExprGrammar(t)
	toks := tokenize(t, c, "1+(2+3)")

	p := parser.New(c.Table, toks)
	tree, err := p.Parse(c.Grammar.Start)
	require.NoError(t, err)
	require.NotNil(t, tree)
	require.Equal(t, "E", tree.Name)
	require.Len(t, tree.Children, 2) // T EP
}

func TestParseReportsUnexpectedToken(t *testing.T) {
	c := compileExprGrammar(t)
	toks := tokenize(t, c, "1+")

	p := parser.New(c.Table, toks)
	_, err := p.Parse(c.Grammar.Start)
	require.Error(t, err)
}

func TestParseReportsMissingProduction(t *testing.T) {
	c := compileExprGrammar(t)
	toks := tokenize(t, c, "+1")

	p := parser.New(c.Table, toks)
	_, err := p.Parse(c.Grammar.Start)
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected one of")
}
