package parser

import (
	"fmt"
	"strings"

	"github.com/ecl-lang/eclc/lang/diag"
	"github.com/ecl-lang/eclc/lang/grammar"
	"github.com/ecl-lang/eclc/lang/token"
)

// ntFrame tracks one nonterminal under construction: its name, its
// not-yet-filled children, and how many are still pending. This is the
// "parallel stack of (partial NT node, remaining-children-count)" spec.md
// §4.2 calls for; completing the frame (remaining reaching zero) attaches
// it to whichever frame is now on top, cascading through any ancestor that
// also happens to complete as a result (e.g. when an epsilon production
// leaves a chain of single-child nonterminals).
type ntFrame struct {
	name      string
	astDef    string
	children  []*Tree
	remaining int
}

// workSym is one pending entry on the symbol stack: either a terminal to
// match against the input, or a nonterminal to expand via the production
// table.
type workSym struct {
	sym grammar.Symbol
}

// Parser is a table-driven LL(1) predictive parser.
type Parser struct {
	table  *grammar.ProductionTable
	toks   []token.Token
	pos    int
	errors diag.List
}

// New creates a Parser over toks (which must end with an EOF token, as
// produced by lang/lexer), driven by the given production table.
func New(table *grammar.ProductionTable, toks []token.Token) *Parser {
	return &Parser{table: table, toks: toks}
}

// Parse runs the parser from the given start symbol and returns the
// resulting concrete parse tree. Parser errors are fatal for the current
// file (spec.md §7): Parse stops and returns the accumulated diag.List's
// Err() on the first syntax error, since a malformed tree cannot be safely used by
// later stages.
func (p *Parser) Parse(start string) (*Tree, error) {
	var symStack []workSym
	var nodeStack []*ntFrame
	var root *Tree

	symStack = append(symStack, workSym{sym: grammar.T(token.EOF)})
	symStack = append(symStack, workSym{sym: grammar.NT(start)})

	attach := func(child *Tree) {
		for {
			if len(nodeStack) == 0 {
				root = child
				return
			}
			top := nodeStack[len(nodeStack)-1]
			idx := len(top.children) - top.remaining
			top.children[idx] = child
			top.remaining--
			if top.remaining > 0 {
				return
			}
			nodeStack = nodeStack[:len(nodeStack)-1]
			child = newNonTerminal(top.name, top.astDef, top.children)
		}
	}

	for len(symStack) > 0 {
		w := symStack[len(symStack)-1]
		symStack = symStack[:len(symStack)-1]

		if w.sym.Terminal {
			cur := p.current()
			if token.Kind(w.sym.Name) != cur.Kind {
				p.errorExpected(cur, w.sym.Name)
				return nil, p.errors.Err()
			}
			if cur.Kind == token.EOF {
				continue // well-formedness confirmed, nothing to attach
			}
			p.advance()
			attach(newTerminal(cur))
			continue
		}

		nt := w.sym.Name
		cur := p.current()
		rule, ok := p.table.Get(nt, cur.Kind)
		if !ok {
			p.errorNoProduction(nt, cur)
			return nil, p.errors.Err()
		}

		frame := &ntFrame{name: nt, astDef: rule.AstDef, children: make([]*Tree, len(rule.RHS)), remaining: len(rule.RHS)}
		if len(rule.RHS) == 0 {
			attach(newNonTerminal(nt, rule.AstDef, nil))
			continue
		}
		nodeStack = append(nodeStack, frame)
		for i := len(rule.RHS) - 1; i >= 0; i-- {
			symStack = append(symStack, workSym{sym: rule.RHS[i]})
		}
	}

	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return root, nil
}

func (p *Parser) current() token.Token {
	if p.pos >= len(p.toks) {
		if len(p.toks) == 0 {
			return token.Token{Kind: token.EOF}
		}
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.toks) {
		p.pos++
	}
}

func (p *Parser) errorExpected(got token.Token, want string) {
	p.errors.Add(diag.Simple, got.Pos, "unexpected token %s, expected %s", describe(got), want)
}

func (p *Parser) errorNoProduction(nt string, got token.Token) {
	lookaheads := p.table.Lookaheads(nt)
	names := make([]string, len(lookaheads))
	for i, k := range lookaheads {
		names[i] = string(k)
	}
	p.errors.Add(diag.Simple, got.Pos, "unexpected token %s while parsing %s, expected one of: %s",
		describe(got), nt, strings.Join(names, ", "))
}

func describe(tok token.Token) string {
	if tok.Text != "" {
		return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
	}
	return string(tok.Kind)
}
