package grammar

import "github.com/ecl-lang/eclc/lang/token"

// Symbol is one element of a production's right-hand side: either a
// terminal (a token.Kind produced by the lexer) or a nonterminal (named by
// another rule's left-hand side).
type Symbol struct {
	Name     string
	Terminal bool
}

func (s Symbol) String() string { return s.Name }

// T builds a terminal Symbol.
func T(kind token.Kind) Symbol { return Symbol{Name: string(kind), Terminal: true} }

// NT builds a nonterminal Symbol.
func NT(name string) Symbol { return Symbol{Name: name} }

// eof and epsilon are the two sentinel terminals present in every grammar,
// regardless of what the grammar file itself declares. FIRST/FOLLOW puts
// eof in FOLLOW(start) and tracks nullability in a separate set; epsilon is
// never inserted into a FIRST or FOLLOW set.
var (
	symEOF     = T(token.EOF)
	symEpsilon = T(token.Epsilon)
)
