package grammar

import (
	"github.com/ecl-lang/eclc/lang/diag"
	"github.com/ecl-lang/eclc/lang/token"
)

// checkLL1 verifies, for every nonterminal with more than one production,
// that the productions' FIRST sets are pairwise disjoint, and that any
// nullable production's FOLLOW(nonterminal) is disjoint from the FIRST
// sets of its siblings (spec.md §4.2). Conflicts are reported as Grammar
// errors naming both conflicting rules.
func checkLL1(g *Grammar, first map[string]map[Symbol]bool, follow map[string]map[Symbol]bool, nullable map[string]bool, errs *diag.List) {
	for _, nt := range g.nonterminals() {
		rules := g.rulesFor(nt)
		if len(rules) < 2 {
			continue
		}

		type ruleFirst struct {
			rule      Rule
			firstSet  map[Symbol]bool
			isNullable bool
		}
		rfs := make([]ruleFirst, len(rules))
		for i, r := range rules {
			fs, n := firstOfSeq(r.RHS, first, nullable)
			rfs[i] = ruleFirst{rule: r, firstSet: fs, isNullable: n}
		}

		for i := 0; i < len(rfs); i++ {
			for j := i + 1; j < len(rfs); j++ {
				if inter := intersect(rfs[i].firstSet, rfs[j].firstSet); len(inter) > 0 {
					errs.Add(diag.Grammar, token.Position{}, "LL(1) conflict on %s: rules %q and %q share lookahead(s) %v",
						nt, rfs[i].rule, rfs[j].rule, symbolNames(inter))
				}
			}
		}

		// a nullable production's FOLLOW(nt) must not collide with a
		// sibling's FIRST set.
		for i := range rfs {
			if !rfs[i].isNullable {
				continue
			}
			for j := range rfs {
				if i == j {
					continue
				}
				if inter := intersect(follow[nt], rfs[j].firstSet); len(inter) > 0 {
					errs.Add(diag.Grammar, token.Position{}, "LL(1) conflict on %s: nullable rule %q and rule %q share lookahead(s) %v via FOLLOW",
						nt, rfs[i].rule, rfs[j].rule, symbolNames(inter))
				}
			}
		}
	}
}

func intersect(a, b map[Symbol]bool) map[Symbol]bool {
	out := make(map[Symbol]bool)
	for s := range a {
		if b[s] {
			out[s] = true
		}
	}
	return out
}

func symbolNames(set map[Symbol]bool) []string {
	names := make([]string, 0, len(set))
	for s := range set {
		names = append(names, s.Name)
	}
	return names
}
