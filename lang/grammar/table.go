package grammar

import "github.com/ecl-lang/eclc/lang/token"

// tableKey identifies one cell of the predictive parse table: a
// nonterminal together with a lookahead terminal.
type tableKey struct {
	NT        string
	Lookahead token.Kind
}

// ProductionTable maps (nonterminal, lookahead) to the production to
// expand, per spec.md §4.2.
type ProductionTable struct {
	cells map[tableKey]Rule
}

// Get returns the rule to expand NT with, given the current lookahead
// token kind, and whether an entry exists.
func (t *ProductionTable) Get(nt string, lookahead token.Kind) (Rule, bool) {
	r, ok := t.cells[tableKey{NT: nt, Lookahead: lookahead}]
	return r, ok
}

// Lookaheads returns the set of lookahead kinds that have an entry for nt,
// used to build "expected one of ..." parse error messages.
func (t *ProductionTable) Lookaheads(nt string) []token.Kind {
	var out []token.Kind
	for k := range t.cells {
		if k.NT == nt {
			out = append(out, k.Lookahead)
		}
	}
	return out
}

// buildTable constructs the production table: for every rule, its RHS is
// registered under every terminal in FIRST(RHS); if the RHS is nullable,
// it is additionally registered under every terminal in FOLLOW(LHS).
// checkLL1 having already verified disjointness, no cell is assigned
// twice by two different rules.
func buildTable(g *Grammar, first map[string]map[Symbol]bool, follow map[string]map[Symbol]bool, nullable map[string]bool) *ProductionTable {
	t := &ProductionTable{cells: make(map[tableKey]Rule)}
	for _, r := range g.Rules {
		rhsFirst, rhsNullable := firstOfSeq(r.RHS, first, nullable)
		for sym := range rhsFirst {
			t.cells[tableKey{NT: r.LHS, Lookahead: token.Kind(sym.Name)}] = r
		}
		if rhsNullable {
			for sym := range follow[r.LHS] {
				t.cells[tableKey{NT: r.LHS, Lookahead: token.Kind(sym.Name)}] = r
			}
		}
	}
	return t
}
