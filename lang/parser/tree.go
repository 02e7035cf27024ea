// Package parser implements the table-driven LL(1) predictive parser
// described in spec.md §4.2: given a grammar.Compiled production table and
// a token stream, it produces a concrete ParseTree, using an explicit
// work-stack rather than recursion (mirroring the teacher's own hand-written
// parser's preference for an explicit iterative loop with a panic/recover
// escape for error resynchronization, adapted here to drive a stack
// machine instead of recursive-descent calls).
package parser

import "github.com/ecl-lang/eclc/lang/token"

// Tree is a concrete parse tree node: either a Terminal wrapping the
// matched token, or a NonTerminal wrapping its expanded children
// (spec.md §3).
type Tree struct {
	// Terminal fields; NonTerminal is empty/false when this is a terminal.
	Tok token.Token

	// NonTerminal fields. AstDef is the raw AstDef micro-language source
	// bound to the production that built this node (grammar.Rule.AstDef),
	// consumed by lang/astdef to build the typed AST (spec.md §4.3).
	Name     string
	Children []*Tree
	AstDef   string

	isTerminal bool
}

// IsTerminal reports whether this node wraps a single matched token.
func (t *Tree) IsTerminal() bool { return t.isTerminal }

func newTerminal(tok token.Token) *Tree {
	return &Tree{Tok: tok, isTerminal: true}
}

func newNonTerminal(name, astDef string, children []*Tree) *Tree {
	return &Tree{Name: name, AstDef: astDef, Children: children}
}
