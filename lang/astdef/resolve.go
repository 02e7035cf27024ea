package astdef

import (
	"fmt"

	"github.com/ecl-lang/eclc/lang/diag"
	"github.com/ecl-lang/eclc/lang/parser"
	"github.com/ecl-lang/eclc/lang/token"
)

// Node is the generic value an AstDef evaluates to before a registered
// resolver narrows it into a concrete lang/ast type. It is deliberately
// `any` rather than an interface hierarchy: resolver functions type-assert
// their expected shapes, the same "registry of typed callbacks" pattern
// spec.md §9 calls for, rather than building a second polymorphic node
// tree on top of the first.
type Node any

// TokenNode wraps a matched terminal, used when an AstDef's $N names a
// terminal child.
type TokenNode struct {
	Tok token.Token
}

// Data is a generic holder for intermediate grammar nodes consumed by an
// outer resolver (spec.md §3), e.g. "Else::Some" or "NoInit":
// Tag names which grammar alternative built it.
type Data struct {
	Tag      string
	Children []Node
}

// List is a homogeneous sequence of resolved nodes, used by the grammar's
// left-recursion-elimination helper productions (e.g. an instruction-list
// tail) to accumulate results before an outer resolver flattens them.
type List []Node

// Resolver is a registered AstDef function: given its evaluated arguments
// (each already resolved against the current parse-tree frame), it
// validates their shape and returns the AstNode they build, or a Grammar
// error on arity/shape mismatch (spec.md §4.3).
type Resolver func(args []Node) (Node, error)

// Registry maps a dotted AstDef function path ("Expr::Binary::Add") to its
// Resolver, populated once at process start by the package that knows how
// to build each lang/ast node (spec.md §9: dispatch by name, not by
// reflection on the parse tree's shape).
type Registry struct {
	fns map[string]Resolver
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry { return &Registry{fns: make(map[string]Resolver)} }

// Register binds path to fn. Re-registering an existing path overwrites it,
// which lets a composing package (lang/ast) build up the full registry from
// several smaller per-kind registration functions.
func (r *Registry) Register(path string, fn Resolver) { r.fns[path] = fn }

// Resolve evaluates tree's bound AstDef (tree.AstDef, attached by
// lang/parser from the production that built it) against reg, with
// params as the caller-supplied $paramN values. It is the single entry
// point callers (starting with the grammar's start symbol) use to turn a
// parser.Tree into a typed AstNode.
func Resolve(tree *parser.Tree, params []Node, reg *Registry) (Node, error) {
	if tree.IsTerminal() {
		return TokenNode{Tok: tree.Tok}, nil
	}
	def, err := Parse(tree.AstDef)
	if err != nil {
		return nil, &diag.Error{Kind: diag.Grammar, Pos: tree.Tok.Pos, Msg: err.Error()}
	}
	return eval(def, tree, params, reg)
}

func eval(d Def, tree *parser.Tree, params []Node, reg *Registry) (Node, error) {
	switch d.Kind {
	case KindParam:
		if d.Param < 0 || d.Param >= len(params) {
			return nil, &diag.Error{Kind: diag.Grammar, Pos: tree.Tok.Pos,
				Msg: fmt.Sprintf("astdef: $param%d out of range (have %d params)", d.Param, len(params))}
		}
		return params[d.Param], nil

	case KindDerive:
		child, err := childTree(tree, d.Child)
		if err != nil {
			return nil, err
		}
		return Resolve(child, nil, reg)

	case KindDeriveWith:
		child, err := childTree(tree, d.Child)
		if err != nil {
			return nil, err
		}
		args, err := evalArgs(d.Args, tree, params, reg)
		if err != nil {
			return nil, err
		}
		return Resolve(child, args, reg)

	case KindCall:
		fn, ok := reg.fns[d.Path]
		if !ok {
			return nil, &diag.Error{Kind: diag.Grammar, Pos: tree.Tok.Pos,
				Msg: fmt.Sprintf("astdef: unknown resolver function %q", d.Path)}
		}
		args, err := evalArgs(d.Args, tree, params, reg)
		if err != nil {
			return nil, err
		}
		return fn(args)

	default:
		return nil, &diag.Error{Kind: diag.Internal, Pos: tree.Tok.Pos, Msg: "astdef: unreachable Def kind"}
	}
}

// evalArgs evaluates each argument AstDef in the current frame (tree's
// children and params), left to right — spec.md §4.3's "arguments to a
// .derive(...) are evaluated first in the current frame".
func evalArgs(defs []Def, tree *parser.Tree, params []Node, reg *Registry) ([]Node, error) {
	out := make([]Node, len(defs))
	for i, ad := range defs {
		v, err := eval(ad, tree, params, reg)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func childTree(tree *parser.Tree, i int) (*parser.Tree, error) {
	if i < 0 || i >= len(tree.Children) {
		return nil, &diag.Error{Kind: diag.Internal, Pos: tree.Tok.Pos,
			Msg: fmt.Sprintf("astdef: $%d out of range for %s (has %d children)", i, tree.Name, len(tree.Children))}
	}
	return tree.Children[i], nil
}
