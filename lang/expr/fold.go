package expr

import (
	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/token"
)

// Fold performs bottom-up constant folding over an already-annotated e
// (spec.md §4.4). Folding is idempotent: Fold(Fold(e)) == Fold(e), since a
// folded literal node has no children left to recurse into. Integer
// arithmetic follows Go's own wrapping int32 semantics (spec.md §4.4:
// "follows the host language's wrapping arithmetic — document"); this
// repo's host language is Go, so overflow wraps per int32's two's
// complement rules rather than panicking.
func Fold(e ast.Expr) ast.Expr {
	switch e.Kind {
	case ast.ExprInt, ast.ExprFloat, ast.ExprStr, ast.ExprId, ast.ExprVarInt, ast.ExprVarFloat:
		return e

	case ast.ExprVararg:
		items := make([]ast.Expr, len(e.Items))
		for i, it := range e.Items {
			items[i] = Fold(it)
		}
		e.Items = items
		return e

	default:
		if e.Kind.IsUnary() {
			return foldUnary(e)
		}
		if e.Kind.IsBinary() {
			return foldBinary(e)
		}
		return e
	}
}

func foldUnary(e ast.Expr) ast.Expr {
	o := Fold(*e.Operand)
	e.Operand = &o

	switch e.Kind {
	case ast.ExprUminus:
		if o.Kind == ast.ExprInt {
			return ast.Expr{Kind: ast.ExprInt, IntVal: -o.IntVal, Type: ast.TypeInt, Pos: e.Pos}
		}
		if o.Kind == ast.ExprFloat {
			return ast.Expr{Kind: ast.ExprFloat, FloatVal: -o.FloatVal, Type: ast.TypeFloat, Pos: e.Pos}
		}
	case ast.ExprNot:
		if o.Kind == ast.ExprInt {
			return ast.Expr{Kind: ast.ExprInt, IntVal: boolInt(o.IntVal == 0), Type: ast.TypeInt, Pos: e.Pos}
		}
	}
	return e
}

func foldBinary(e ast.Expr) ast.Expr {
	l := Fold(*e.Left)
	r := Fold(*e.Right)
	e.Left, e.Right = &l, &r

	if l.Kind == ast.ExprStr && r.Kind == ast.ExprStr {
		return foldStrString(e, l, r)
	}
	if l.Kind == ast.ExprStr && r.Kind == ast.ExprInt && e.Kind == ast.ExprMul {
		return ast.Expr{Kind: ast.ExprStr, StrVal: repeatString(l.StrVal, int(r.IntVal)), Type: ast.TypeString, Pos: e.Pos}
	}
	if l.Kind == ast.ExprInt && r.Kind == ast.ExprStr && e.Kind == ast.ExprMul {
		return ast.Expr{Kind: ast.ExprStr, StrVal: repeatString(r.StrVal, int(l.IntVal)), Type: ast.TypeString, Pos: e.Pos}
	}

	if l.Kind == ast.ExprInt && r.Kind == ast.ExprInt {
		return foldIntInt(e, l.IntVal, r.IntVal)
	}
	if l.Kind == ast.ExprFloat && r.Kind == ast.ExprFloat {
		return foldFloatFloat(e, l.FloatVal, r.FloatVal)
	}
	return e
}

func foldStrString(e, l, r ast.Expr) ast.Expr {
	switch e.Kind {
	case ast.ExprAdd:
		return ast.Expr{Kind: ast.ExprStr, StrVal: l.StrVal + r.StrVal, Type: ast.TypeString, Pos: e.Pos}
	case ast.ExprEq:
		return ast.Expr{Kind: ast.ExprInt, IntVal: boolInt(l.StrVal == r.StrVal), Type: ast.TypeInt, Pos: e.Pos}
	case ast.ExprNe:
		return ast.Expr{Kind: ast.ExprInt, IntVal: boolInt(l.StrVal != r.StrVal), Type: ast.TypeInt, Pos: e.Pos}
	default:
		return e
	}
}

func repeatString(s string, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

func foldIntInt(e ast.Expr, l, r int32) ast.Expr {
	switch e.Kind {
	case ast.ExprAdd:
		return intLit(e.Pos, l+r)
	case ast.ExprSub:
		return intLit(e.Pos, l-r)
	case ast.ExprMul:
		return intLit(e.Pos, l*r)
	case ast.ExprDiv:
		if r == 0 {
			return e
		}
		return intLit(e.Pos, l/r)
	case ast.ExprMod:
		if r == 0 {
			return e
		}
		return intLit(e.Pos, l%r)
	case ast.ExprBinAnd:
		return intLit(e.Pos, l&r)
	case ast.ExprBinOr:
		return intLit(e.Pos, l|r)
	case ast.ExprXor:
		return intLit(e.Pos, l^r)
	case ast.ExprAnd:
		return intLit(e.Pos, boolInt(l != 0 && r != 0))
	case ast.ExprOr:
		return intLit(e.Pos, boolInt(l != 0 || r != 0))
	case ast.ExprGt:
		return intLit(e.Pos, boolInt(l > r))
	case ast.ExprGe:
		return intLit(e.Pos, boolInt(l >= r))
	case ast.ExprLt:
		return intLit(e.Pos, boolInt(l < r))
	case ast.ExprLe:
		return intLit(e.Pos, boolInt(l <= r))
	case ast.ExprEq:
		return intLit(e.Pos, boolInt(l == r))
	case ast.ExprNe:
		return intLit(e.Pos, boolInt(l != r))
	default:
		return e
	}
}

func foldFloatFloat(e ast.Expr, l, r float32) ast.Expr {
	switch e.Kind {
	case ast.ExprAdd:
		return floatLit(e.Pos, l+r)
	case ast.ExprSub:
		return floatLit(e.Pos, l-r)
	case ast.ExprMul:
		return floatLit(e.Pos, l*r)
	case ast.ExprDiv:
		if r == 0 {
			return e
		}
		return floatLit(e.Pos, l/r)
	case ast.ExprGt:
		return intLit(e.Pos, boolInt(l > r))
	case ast.ExprGe:
		return intLit(e.Pos, boolInt(l >= r))
	case ast.ExprLt:
		return intLit(e.Pos, boolInt(l < r))
	case ast.ExprLe:
		return intLit(e.Pos, boolInt(l <= r))
	case ast.ExprEq:
		return intLit(e.Pos, boolInt(l == r))
	case ast.ExprNe:
		return intLit(e.Pos, boolInt(l != r))
	default:
		return e
	}
}

func intLit(pos token.Position, v int32) ast.Expr {
	return ast.Expr{Kind: ast.ExprInt, IntVal: v, Type: ast.TypeInt, Pos: pos}
}

func floatLit(pos token.Position, v float32) ast.Expr {
	return ast.Expr{Kind: ast.ExprFloat, FloatVal: v, Type: ast.TypeFloat, Pos: pos}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
