package grammar

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ecl-lang/eclc/lang/token"
)

// Load parses a grammar file's text (spec.md §6.4) into a Grammar. This is
// a thin collaborator: only the resulting token table and rule list matter
// to the rest of the pipeline (spec.md §1), so directive handling here is
// intentionally minimal rather than a full preprocessor.
//
// Supported directives:
//
//	!token <name> => <regex>   declares a named token matched by regex
//	!token <name>              declares a token matched by its own literal text
//	!token <name> $            declares the EOF token (<name> is not recorded; the kind is token.EOF)
//	!ignore <regex>            declares a skipped (non-emitted) pattern
//	!prio <token> <n>          sets a priority hint for the immediately following rule
//
// Rules have the form:
//
//	NT ::= sym sym … { astdef } | sym … { astdef } …
//
// The first rule's LHS encountered becomes the grammar's start symbol.
func Load(src string) (*Grammar, error) {
	g := &Grammar{}
	var pendingPrio int
	var pendingPrioTok string

	sc := bufio.NewScanner(strings.NewReader(src))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "!token"):
			td, err := parseTokenDirective(line)
			if err != nil {
				return nil, fmt.Errorf("grammar: line %d: %w", lineNo, err)
			}
			g.Tokens = append(g.Tokens, td)

		case strings.HasPrefix(line, "!ignore"):
			rx := strings.TrimSpace(strings.TrimPrefix(line, "!ignore"))
			re, err := regexp.Compile("^(?:" + rx + ")")
			if err != nil {
				return nil, fmt.Errorf("grammar: line %d: invalid !ignore regex: %w", lineNo, err)
			}
			g.Tokens = append(g.Tokens, TokenDef{Kind: "$IGNORE", Regex: re, Ignore: true})

		case strings.HasPrefix(line, "!prio"):
			fields := strings.Fields(line)
			if len(fields) != 3 {
				return nil, fmt.Errorf("grammar: line %d: !prio expects 2 fields, got %d", lineNo, len(fields)-1)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("grammar: line %d: invalid !prio priority: %w", lineNo, err)
			}
			pendingPrioTok, pendingPrio = fields[1], n

		default:
			rules, err := parseRuleLine(line)
			if err != nil {
				return nil, fmt.Errorf("grammar: line %d: %w", lineNo, err)
			}
			for i := range rules {
				if pendingPrioTok != "" {
					rules[i].Priority = pendingPrio
				}
			}
			pendingPrioTok = ""
			if g.Start == "" && len(rules) > 0 {
				g.Start = rules[0].LHS
			}
			g.Rules = append(g.Rules, rules...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

func parseTokenDirective(line string) (TokenDef, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "!token"))
	if rest == "" {
		return TokenDef{}, fmt.Errorf("!token requires a name")
	}

	if idx := strings.Index(rest, "=>"); idx >= 0 {
		name := strings.TrimSpace(rest[:idx])
		pattern := strings.TrimSpace(rest[idx+2:])
		re, err := regexp.Compile("^(?:" + pattern + ")")
		if err != nil {
			return TokenDef{}, fmt.Errorf("invalid token regex for %s: %w", name, err)
		}
		return TokenDef{Kind: token.Kind(name), Regex: re}, nil
	}

	fields := strings.Fields(rest)
	name := fields[0]
	if len(fields) == 2 && fields[1] == "$" {
		return TokenDef{Kind: token.EOF, Regex: regexp.MustCompile("^$")}, nil
	}
	// literal match: the token's own name, escaped.
	re, err := regexp.Compile("^" + regexp.QuoteMeta(name))
	if err != nil {
		return TokenDef{}, fmt.Errorf("invalid literal token %s: %w", name, err)
	}
	return TokenDef{Kind: token.Kind(name), Regex: re}, nil
}

// parseRuleLine parses "NT ::= a b { astdef } | c d { astdef } …" into one
// Rule per alternative.
func parseRuleLine(line string) ([]Rule, error) {
	parts := strings.SplitN(line, "::=", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected 'NT ::= ...', got %q", line)
	}
	lhs := strings.TrimSpace(parts[0])
	if lhs == "" {
		return nil, fmt.Errorf("rule is missing a left-hand side")
	}

	alts := splitTopLevel(parts[1], '|')
	rules := make([]Rule, 0, len(alts))
	for _, alt := range alts {
		rhs, astDef, err := parseAlt(alt)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", lhs, err)
		}
		rules = append(rules, Rule{LHS: lhs, RHS: rhs, AstDef: astDef})
	}
	return rules, nil
}

// splitTopLevel splits s on sep, ignoring occurrences inside { } blocks.
func splitTopLevel(s string, sep byte) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		default:
			if s[i] == sep && depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])
	return out
}

func parseAlt(alt string) ([]Symbol, string, error) {
	astStart := strings.Index(alt, "{")
	var symPart, astDef string
	if astStart < 0 {
		symPart = alt
	} else {
		astEnd := strings.LastIndex(alt, "}")
		if astEnd < astStart {
			return nil, "", fmt.Errorf("unterminated astdef block in %q", alt)
		}
		symPart = alt[:astStart]
		astDef = strings.TrimSpace(alt[astStart+1 : astEnd])
	}

	fields := strings.Fields(symPart)
	var rhs []Symbol
	for _, f := range fields {
		if f == "epsilon" {
			continue
		}
		rhs = append(rhs, symbolFromToken(f))
	}
	return rhs, astDef, nil
}

// symbolFromToken classifies a grammar-file token as terminal or
// nonterminal using the convention that terminals are written in
// ALL_CAPS or as a quoted literal, matching the original rule file's
// convention of uppercase token names.
func symbolFromToken(f string) Symbol {
	if strings.HasPrefix(f, "'") || strings.ToUpper(f) == f {
		return T(token.Kind(strings.Trim(f, "'")))
	}
	return NT(f)
}
