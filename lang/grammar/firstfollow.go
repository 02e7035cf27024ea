package grammar

// computeFirst computes FIRST(A) for every nonterminal A by iterating the
// standard fixpoint rules to convergence (spec.md §4.2): epsilon is
// treated as a sentinel terminal internally (via the nullable set) and is
// never itself inserted into a returned FIRST set — FIRST(α) of a string
// of symbols drops epsilon as soon as a later symbol contributes, which is
// exactly what firstOfSeq implements.
func computeFirst(g *Grammar) (map[string]map[Symbol]bool, map[string]bool) {
	nts := g.nonterminals()
	first := make(map[string]map[Symbol]bool, len(nts))
	nullable := make(map[string]bool, len(nts))
	for _, nt := range nts {
		first[nt] = make(map[Symbol]bool)
	}

	for changed := true; changed; {
		changed = false
		for _, nt := range nts {
			for _, r := range g.rulesFor(nt) {
				rhsFirst, rhsNullable := firstOfSeq(r.RHS, first, nullable)
				for s := range rhsFirst {
					if !first[nt][s] {
						first[nt][s] = true
						changed = true
					}
				}
				if rhsNullable && !nullable[nt] {
					nullable[nt] = true
					changed = true
				}
			}
		}
	}
	return first, nullable
}

// computeFollow computes FOLLOW(A) for every nonterminal A. FOLLOW(start)
// always includes EOF, per spec.md §4.2.
func computeFollow(g *Grammar, first map[string]map[Symbol]bool, nullable map[string]bool) map[string]map[Symbol]bool {
	nts := g.nonterminals()
	follow := make(map[string]map[Symbol]bool, len(nts))
	for _, nt := range nts {
		follow[nt] = make(map[Symbol]bool)
	}
	follow[g.Start][symEOF] = true

	for changed := true; changed; {
		changed = false
		for _, r := range g.Rules {
			for i, sym := range r.RHS {
				if sym.Terminal {
					continue
				}
				rest := r.RHS[i+1:]
				restFirst, restNullable := firstOfSeq(rest, first, nullable)
				for s := range restFirst {
					if !follow[sym.Name][s] {
						follow[sym.Name][s] = true
						changed = true
					}
				}
				if restNullable {
					for s := range follow[r.LHS] {
						if !follow[sym.Name][s] {
							follow[sym.Name][s] = true
							changed = true
						}
					}
				}
			}
		}
	}
	return follow
}
