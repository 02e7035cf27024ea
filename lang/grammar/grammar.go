// Package grammar loads a declarative grammar (rule strings plus token
// regexes) and compiles it into the tables the parser needs: FIRST/FOLLOW
// sets, an LL(1) conflict check, and a predictive production table
// (spec.md §4.2). It also exposes the token regex list (built from the
// grammar file's "!token" directives) to drive lang/lexer.
//
// Parsing the grammar FILE itself — the line-oriented "!token"/"!ignore"/
// "!prio" directive syntax — is a thin collaborator (spec.md §1 excludes
// its preprocessing details from the core); what matters to the rest of
// the pipeline is the resulting Rule list and token regex table, which is
// what this package's Compile function consumes.
package grammar

import (
	"fmt"
	"regexp"

	"github.com/ecl-lang/eclc/lang/diag"
	"github.com/ecl-lang/eclc/lang/lexer"
	"github.com/ecl-lang/eclc/lang/token"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Rule is one alternative of a nonterminal's production, already stripped
// of any epsilon symbol (an empty RHS denotes the epsilon production).
type Rule struct {
	LHS      string
	RHS      []Symbol
	AstDef   string // raw AstDef micro-language source bound to this rule, see lang/astdef
	Priority int    // from a preceding "!prio" directive, 0 if unset
}

func (r Rule) String() string {
	if len(r.RHS) == 0 {
		return fmt.Sprintf("%s ::= epsilon", r.LHS)
	}
	parts := make([]string, len(r.RHS))
	for i, s := range r.RHS {
		parts[i] = s.Name
	}
	return fmt.Sprintf("%s ::= %v", r.LHS, parts)
}

// TokenDef is one lexer rule, built from a "!token" (or "!ignore")
// directive: a declared kind, its regex, and whether it should be
// discarded by the lexer rather than emitted as a token.
type TokenDef struct {
	Kind   token.Kind
	Regex  *regexp.Regexp
	Ignore bool
}

// Grammar is a fully loaded, but not yet compiled, grammar: the start
// symbol, every rule, and the token table.
type Grammar struct {
	Start  string
	Rules  []Rule
	Tokens []TokenDef
}

// LexerRules adapts the grammar's token table into lang/lexer's rule
// shape, in declaration order (later rules win ties, per spec.md §4.1).
func (g *Grammar) LexerRules() []lexer.Rule {
	rules := make([]lexer.Rule, len(g.Tokens))
	for i, td := range g.Tokens {
		rules[i] = lexer.Rule{Kind: td.Kind, Regex: td.Regex, Ignore: td.Ignore}
	}
	return rules
}

// rulesFor returns every rule whose LHS is nt, in declaration order.
func (g *Grammar) rulesFor(nt string) []Rule {
	var out []Rule
	for _, r := range g.Rules {
		if r.LHS == nt {
			out = append(out, r)
		}
	}
	return out
}

// nonterminals returns the set of all nonterminal names appearing as an
// LHS, sorted for deterministic iteration in diagnostics.
func (g *Grammar) nonterminals() []string {
	seen := make(map[string]bool)
	for _, r := range g.Rules {
		seen[r.LHS] = true
	}
	names := maps.Keys(seen)
	slices.Sort(names)
	return names
}

// Compiled holds the derived tables produced by Compile: FIRST/FOLLOW sets
// and the LL(1) production table, ready for the parser to consume.
type Compiled struct {
	Grammar *Grammar
	First   map[string]map[Symbol]bool // FIRST(nonterminal)
	Follow  map[string]map[Symbol]bool // FOLLOW(nonterminal)
	Table   *ProductionTable
}

// Compile computes FIRST/FOLLOW, checks the grammar is LL(1), and builds
// the predictive production table. On any LL(1) conflict it returns the
// accumulated diag.List's Err() (a single *diag.Error for one conflict),
// naming the two conflicting rules.
func Compile(g *Grammar) (*Compiled, error) {
	first, nullable := computeFirst(g)
	follow := computeFollow(g, first, nullable)

	var errs diag.List
	checkLL1(g, first, follow, nullable, &errs)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	table := buildTable(g, first, follow, nullable)
	return &Compiled{Grammar: g, First: first, Follow: follow, Table: table}, nil
}

// firstOfSeq computes FIRST(X1 X2 ... Xn) for a sequence of grammar
// symbols, consulting the per-nonterminal FIRST sets already computed, and
// reports whether the whole sequence is nullable (can derive epsilon).
func firstOfSeq(seq []Symbol, first map[string]map[Symbol]bool, nullable map[string]bool) (map[Symbol]bool, bool) {
	out := make(map[Symbol]bool)
	seqNullable := true
	for _, sym := range seq {
		var symFirst map[Symbol]bool
		var symNullable bool
		if sym.Terminal {
			symFirst = map[Symbol]bool{sym: true}
			symNullable = false
		} else {
			symFirst = first[sym.Name]
			symNullable = nullable[sym.Name]
		}
		for s := range symFirst {
			out[s] = true
		}
		if !symNullable {
			seqNullable = false
			break
		}
	}
	if len(seq) == 0 {
		seqNullable = true
	}
	return out, seqNullable
}
