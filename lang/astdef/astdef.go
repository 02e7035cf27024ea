// Package astdef implements the grammar's AstDef micro-language (spec.md
// §4.3): a tiny expression language bound to each grammar production that
// says how to turn that production's parse-tree node into a typed AST
// node. An AstDef is one of:
//
//	$N                    Derive(N): resolve child N with no parameters
//	$N.derive(a, b, ...)  DeriveWith(N, args): evaluate a,b,... in the
//	                      current frame, then resolve child N with them
//	                      as its params
//	$paramN               Param(N): pass through the caller-supplied
//	                      parameter N
//	Name::Sub::Fun(a,...) Call(path, args): invoke the registered
//	                      resolver function named by the path
//
// Dispatch from a grammar rule to its resolver is by name through a
// registry (spec.md §9: "no dynamic dispatch on rule resolution"),
// mirroring the teacher's own preference for small string-keyed registries
// over reflection-based dispatch.
package astdef

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates an AstDef node.
type Kind int

const (
	KindDerive Kind = iota
	KindDeriveWith
	KindParam
	KindCall
)

// Def is one parsed AstDef expression.
type Def struct {
	Kind Kind

	Child int    // KindDerive, KindDeriveWith: child index
	Param int    // KindParam: parameter index
	Path  string // KindCall: dotted function name, e.g. "Expr::Binary::Add"
	Args  []Def  // KindDeriveWith, KindCall: argument AstDefs
}

// Parse parses the body of an AstDef block (the text between the grammar
// rule's "{" and "}", already stripped by lang/grammar.Load) into a Def.
func Parse(src string) (Def, error) {
	p := &defParser{src: src}
	p.skipSpace()
	d, err := p.parseExpr()
	if err != nil {
		return Def{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Def{}, fmt.Errorf("astdef: unexpected trailing input %q", p.src[p.pos:])
	}
	return d, nil
}

type defParser struct {
	src string
	pos int
}

func (p *defParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

func (p *defParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *defParser) parseExpr() (Def, error) {
	p.skipSpace()
	switch {
	case p.peek() == '$':
		return p.parseDollar()
	default:
		return p.parseCall()
	}
}

// parseDollar handles "$N", "$N.derive(...)", and "$paramN".
func (p *defParser) parseDollar() (Def, error) {
	p.pos++ // consume '$'
	if strings.HasPrefix(p.src[p.pos:], "param") {
		p.pos += len("param")
		n, err := p.parseInt()
		if err != nil {
			return Def{}, fmt.Errorf("astdef: invalid $paramN: %w", err)
		}
		return Def{Kind: KindParam, Param: n}, nil
	}
	n, err := p.parseInt()
	if err != nil {
		return Def{}, fmt.Errorf("astdef: invalid $N: %w", err)
	}
	if strings.HasPrefix(p.src[p.pos:], ".derive(") {
		p.pos += len(".derive(")
		args, err := p.parseArgList()
		if err != nil {
			return Def{}, err
		}
		return Def{Kind: KindDeriveWith, Child: n, Args: args}, nil
	}
	return Def{Kind: KindDerive, Child: n}, nil
}

// parseCall handles "Name::Sub::Fun(arg, ...)".
func (p *defParser) parseCall() (Def, error) {
	start := p.pos
	for p.pos < len(p.src) && isPathChar(p.src[p.pos]) {
		p.pos++
	}
	path := p.src[start:p.pos]
	if path == "" {
		return Def{}, fmt.Errorf("astdef: expected a function path at %q", p.src[p.pos:])
	}
	if p.peek() != '(' {
		return Def{}, fmt.Errorf("astdef: expected '(' after %s", path)
	}
	p.pos++ // consume '('
	args, err := p.parseArgList()
	if err != nil {
		return Def{}, err
	}
	return Def{Kind: KindCall, Path: path, Args: args}, nil
}

// parseArgList parses a comma-separated argument list up to and including
// the closing ')'; the opening '(' has already been consumed.
func (p *defParser) parseArgList() ([]Def, error) {
	var args []Def
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
		return args, nil
	}
	for {
		p.skipSpace()
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
			continue
		case ')':
			p.pos++
			return args, nil
		default:
			return nil, fmt.Errorf("astdef: expected ',' or ')' at %q", p.src[p.pos:])
		}
	}
}

func (p *defParser) parseInt() (int, error) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 0, fmt.Errorf("expected a number at %q", p.src[start:])
	}
	return strconv.Atoi(p.src[start:p.pos])
}

func isPathChar(b byte) bool {
	return b == ':' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
