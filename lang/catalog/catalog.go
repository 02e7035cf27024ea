// Package catalog implements the instruction catalog and overload
// resolver (spec.md §4.5, component F): a static table of opcode
// signatures and MatchInstruction, which resolves a call-site name and
// argument list to an opcode or a ranked list of near-misses. The
// alias/opcode lookup maps use github.com/dolthub/swiss, the same
// hash-map package the teacher repository's runtime depends on for its own
// flat lookup tables — here it is wired for the catalog's two hot lookup
// paths (name→candidates, ins_N→opcode) instead.
package catalog

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// ArgKind is one formal argument's kind in an InsDef signature (spec.md §3).
type ArgKind int

const (
	ArgInt ArgKind = iota
	ArgIntRef
	ArgFloat
	ArgFloatRef
	ArgStr
	ArgVarargs
)

// InsDef is one opcode's catalog entry.
type InsDef struct {
	Opcode    uint16
	Aliases   []string
	ArgFormat []ArgKind
}

// MatchKind ranks how well a call site matched a candidate, from best to
// worst (spec.md §4.5).
type MatchKind int

const (
	PerfectMatch MatchKind = iota
	WithVarargs
	StringInVarargs
	NameAndArgCountMatch
	NameMatch
	NoMatch
)

// Match is the result of MatchInstruction.
type Match struct {
	Kind        MatchKind
	Opcode      uint16
	VarargStart int      // first index collapsed into a Vararg, valid iff Kind == WithVarargs
	NearMatches []InsDef // every candidate that ranked NameAndArgCountMatch or worse, in catalog order
}

// ArgValue is the minimal shape MatchInstruction needs to know about a
// call-site argument: its annotated type, and whether it is a string
// literal (strings are never permitted to collapse into a vararg tail,
// spec.md §4.5).
type ArgValue struct {
	Kind ArgKind // ArgInt, ArgFloat, or ArgStr — the argument's own type
}

// Catalog is the compiled instruction table: every InsDef indexed both by
// literal "ins_N" name and by every alias it declares.
type Catalog struct {
	byOpcode *swiss.Map[uint16, InsDef]
	byAlias  *swiss.Map[string, []InsDef]
}

// New builds a Catalog from defs, the full static instruction list
// (spec.md §4.5, supplemented per SPEC_FULL.md §4).
func New(defs []InsDef) *Catalog {
	c := &Catalog{
		byOpcode: swiss.NewMap[uint16, InsDef](uint32(len(defs))),
		byAlias:  swiss.NewMap[string, []InsDef](uint32(len(defs) * 2)),
	}
	for _, d := range defs {
		c.byOpcode.Put(d.Opcode, d)
		for _, alias := range d.Aliases {
			existing, _ := c.byAlias.Get(alias)
			c.byAlias.Put(alias, append(existing, d))
		}
	}
	return c
}

// candidates returns the InsDefs for a literal "ins_N" name or a registered
// alias, preferring the literal form (spec.md §4.5: "literal ins_N
// matches opcode N directly").
func (c *Catalog) candidates(name string) []InsDef {
	if opcode, ok := parseInsName(name); ok {
		if d, ok := c.byOpcode.Get(opcode); ok {
			return []InsDef{d}
		}
		return nil
	}
	defs, _ := c.byAlias.Get(name)
	return defs
}

func parseInsName(name string) (uint16, bool) {
	const prefix = "ins_"
	if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
		return 0, false
	}
	var n uint16
	for _, c := range name[len(prefix):] {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint16(c-'0')
	}
	return n, true
}

// MatchInstruction resolves name/args against the catalog (spec.md §4.5).
func (c *Catalog) MatchInstruction(name string, args []ArgValue) Match {
	defs := c.candidates(name)
	if len(defs) == 0 {
		return Match{Kind: NoMatch}
	}

	best := Match{Kind: NoMatch}
	for _, d := range defs {
		m := matchOne(d, args)
		if m.Kind < best.Kind {
			best = m
		}
		if m.Kind >= NameAndArgCountMatch {
			best.NearMatches = append(best.NearMatches, d)
		}
	}
	return best
}

func matchOne(d InsDef, args []ArgValue) Match {
	hasVarargs := len(d.ArgFormat) > 0 && d.ArgFormat[len(d.ArgFormat)-1] == ArgVarargs
	fixed := d.ArgFormat
	if hasVarargs {
		fixed = d.ArgFormat[:len(d.ArgFormat)-1]
	}

	if !hasVarargs {
		if len(args) != len(fixed) {
			return Match{Kind: NameAndArgCountMatch}
		}
		for i, k := range fixed {
			if !argKindMatches(k, args[i].Kind) {
				return Match{Kind: NameAndArgCountMatch}
			}
		}
		return Match{Kind: PerfectMatch, Opcode: d.Opcode}
	}

	if len(args) < len(fixed) {
		return Match{Kind: NameAndArgCountMatch}
	}
	for i, k := range fixed {
		if !argKindMatches(k, args[i].Kind) {
			return Match{Kind: NameAndArgCountMatch}
		}
	}
	for i := len(fixed); i < len(args); i++ {
		if args[i].Kind == ArgStr {
			return Match{Kind: StringInVarargs}
		}
	}
	if len(args) == len(fixed) {
		return Match{Kind: PerfectMatch, Opcode: d.Opcode}
	}
	return Match{Kind: WithVarargs, Opcode: d.Opcode, VarargStart: len(fixed)}
}

func argKindMatches(want, got ArgKind) bool {
	switch want {
	case ArgInt:
		return got == ArgInt
	case ArgIntRef:
		return got == ArgInt // only the type is compared; an Int literal also matches an IntRef slot
	case ArgFloat:
		return got == ArgFloat
	case ArgFloatRef:
		return got == ArgFloat
	case ArgStr:
		return got == ArgStr
	default:
		return false
	}
}

// DescribeNearMatches renders a diagnostic listing every near-miss
// candidate's signature, for the "must list both candidates" contract in
// spec.md §8 scenario S6.
func DescribeNearMatches(matches []InsDef) string {
	out := ""
	for i, d := range matches {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s%s", d.Aliases[0], describeArgs(d.ArgFormat))
	}
	return out
}

func describeArgs(args []ArgKind) string {
	out := "("
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		switch a {
		case ArgInt:
			out += "Int"
		case ArgIntRef:
			out += "IntRef"
		case ArgFloat:
			out += "Float"
		case ArgFloatRef:
			out += "FloatRef"
		case ArgStr:
			out += "Str"
		case ArgVarargs:
			out += "..."
		}
	}
	return out + ")"
}
