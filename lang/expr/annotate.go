// Package expr implements the expression engine (spec.md §4.4, component
// E): bottom-up type annotation, constant folding, and operator-to-
// instruction lowering, grounded on
// _examples/original_source/src/ast/expr.rs's own bottom-up recursive
// "annotate then fold" pipeline over the same tagged-union Expr shape.
package expr

import (
	"fmt"

	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/diag"
	"github.com/ecl-lang/eclc/lang/token"
)

// Annotate performs bottom-up type inference over e, returning a new Expr
// tree with every operator node's Type field set (spec.md §4.4, invariant
// 1 in spec.md §8). Leaves (Int/Float/Str/VarInt/VarFloat) already carry
// their type from construction; Id nodes are expected to have been
// resolved to VarInt/VarFloat or replaced by a builtin literal before this
// runs (lang/compiler pass 2/3), so encountering one here is a Simple
// error ("unresolved identifier").
func Annotate(e ast.Expr) (ast.Expr, error) {
	switch e.Kind {
	case ast.ExprInt, ast.ExprFloat, ast.ExprStr, ast.ExprVarInt, ast.ExprVarFloat:
		return e, nil

	case ast.ExprId:
		return ast.Expr{}, simpleErr(e.Pos, "unresolved identifier %q", e.Name)

	case ast.ExprVararg:
		items := make([]ast.Expr, len(e.Items))
		for i, it := range e.Items {
			a, err := Annotate(it)
			if err != nil {
				return ast.Expr{}, err
			}
			items[i] = a
		}
		e.Items = items
		e.Type = ast.TypeVararg
		return e, nil

	case ast.ExprUminus:
		o, err := Annotate(*e.Operand)
		if err != nil {
			return ast.Expr{}, err
		}
		if o.Type != ast.TypeInt && o.Type != ast.TypeFloat {
			return ast.Expr{}, simpleErr(e.Pos, "unary - requires Int or Float, got %s", o.Type)
		}
		e.Operand = &o
		e.Type = o.Type
		return e, nil

	case ast.ExprNot:
		o, err := Annotate(*e.Operand)
		if err != nil {
			return ast.Expr{}, err
		}
		if o.Type != ast.TypeInt {
			return ast.Expr{}, simpleErr(e.Pos, "! requires Int, got %s", o.Type)
		}
		e.Operand = &o
		e.Type = ast.TypeInt
		return e, nil

	case ast.ExprSin, ast.ExprCos, ast.ExprSqrt:
		o, err := Annotate(*e.Operand)
		if err != nil {
			return ast.Expr{}, err
		}
		if o.Type != ast.TypeFloat {
			return ast.Expr{}, simpleErr(e.Pos, "%s requires Float, got %s", unaryName(e.Kind), o.Type)
		}
		e.Operand = &o
		e.Type = ast.TypeFloat
		return e, nil

	default:
		if e.Kind.IsBinary() {
			return annotateBinary(e)
		}
		return ast.Expr{}, &diag.Error{Kind: diag.Internal, Pos: e.Pos, Msg: "expr: unreachable Expr kind in Annotate"}
	}
}

func annotateBinary(e ast.Expr) (ast.Expr, error) {
	l, err := Annotate(*e.Left)
	if err != nil {
		return ast.Expr{}, err
	}
	r, err := Annotate(*e.Right)
	if err != nil {
		return ast.Expr{}, err
	}
	e.Left, e.Right = &l, &r

	switch e.Kind {
	case ast.ExprAdd, ast.ExprSub, ast.ExprMul, ast.ExprDiv:
		if l.Type != r.Type {
			return ast.Expr{}, simpleErr(e.Pos, "arithmetic requires matching operand types, got %s and %s", l.Type, r.Type)
		}
		e.Type = l.Type
		return e, nil

	case ast.ExprMod, ast.ExprBinAnd, ast.ExprBinOr, ast.ExprXor, ast.ExprAnd, ast.ExprOr:
		if l.Type != ast.TypeInt || r.Type != ast.TypeInt {
			return ast.Expr{}, simpleErr(e.Pos, "%s requires Int operands, got %s and %s", binaryName(e.Kind), l.Type, r.Type)
		}
		e.Type = ast.TypeInt
		return e, nil

	case ast.ExprGt, ast.ExprGe, ast.ExprLt, ast.ExprLe, ast.ExprEq, ast.ExprNe:
		if l.Type != r.Type {
			return ast.Expr{}, simpleErr(e.Pos, "comparison requires matching operand types, got %s and %s", l.Type, r.Type)
		}
		e.Type = ast.TypeInt
		return e, nil

	default:
		return ast.Expr{}, &diag.Error{Kind: diag.Internal, Pos: e.Pos, Msg: "expr: unreachable binary Expr kind"}
	}
}

func simpleErr(pos token.Position, format string, args ...any) error {
	return &diag.Error{Kind: diag.Simple, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func unaryName(k ast.ExprKind) string {
	switch k {
	case ast.ExprSin:
		return "sin"
	case ast.ExprCos:
		return "cos"
	case ast.ExprSqrt:
		return "sqrt"
	default:
		return "?"
	}
}

func binaryName(k ast.ExprKind) string {
	switch k {
	case ast.ExprMod:
		return "%"
	case ast.ExprBinAnd:
		return "&"
	case ast.ExprBinOr:
		return "|"
	case ast.ExprXor:
		return "^"
	case ast.ExprAnd:
		return "&&"
	case ast.ExprOr:
		return "||"
	default:
		return "?"
	}
}
