package compiler

import (
	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/diag"
	"github.com/ecl-lang/eclc/lang/expr"
	"github.com/ecl-lang/eclc/lang/token"
)

// isPrimitive reports whether e is already one of the primitive Expr
// forms a Call instruction's wire encoding accepts directly, with no
// need to hoist it through PushExpr first (spec.md §4.8 step 7).
func isPrimitive(e ast.Expr) bool {
	switch e.Kind {
	case ast.ExprInt, ast.ExprFloat, ast.ExprStr, ast.ExprVarInt, ast.ExprVarFloat:
		return true
	default:
		return false
	}
}

// prepareArg annotates and folds e, then — only if the result is still a
// non-primitive operator tree — hoists it via hoistChain, returning any
// prefix instructions to emit before the owning Call and the now-always-
// primitive value to use as the argument itself.
func prepareArg(e ast.Expr, counter *int32) ([]ast.Instr, ast.Expr, error) {
	annotated, err := expr.Annotate(e)
	if err != nil {
		return nil, ast.Expr{}, err
	}
	folded := expr.Fold(annotated)

	if folded.Kind == ast.ExprVararg {
		var instrs []ast.Instr
		items := make([]ast.Expr, len(folded.Items))
		for i, it := range folded.Items {
			pre, ref, err := prepareArg(it, counter)
			if err != nil {
				return nil, ast.Expr{}, err
			}
			instrs = append(instrs, pre...)
			items[i] = ref
		}
		folded.Items = items
		return instrs, folded, nil
	}

	if isPrimitive(folded) {
		return nil, folded, nil
	}
	return hoistChain(folded, counter)
}

// hoistChain implements the PushExpr-expansion mechanism shared by pass 7
// (call-argument hoisting) and pass 9 (PushExpr's own body): every node
// in a non-primitive expression tree, leaf or operator, lowers to exactly
// one Call instruction via lang/expr.Lower, each one allocating the next
// stack-frame offset decreasing from -1 (spec.md §8 invariant 6).
func hoistChain(e ast.Expr, counter *int32) ([]ast.Instr, ast.Expr, error) {
	switch {
	case e.Kind.IsBinary():
		lInstrs, lRef, err := leafOrChain(*e.Left, counter)
		if err != nil {
			return nil, ast.Expr{}, err
		}
		rInstrs, rRef, err := leafOrChain(*e.Right, counter)
		if err != nil {
			return nil, ast.Expr{}, err
		}
		name, err := expr.Lower(e)
		if err != nil {
			return nil, ast.Expr{}, err
		}
		offset := allocate(counter)
		call := ast.Instr{Kind: ast.InstrCall, Pos: e.Pos, Name: name, Args: []ast.Expr{lRef, rRef}}
		out := append(append(lInstrs, rInstrs...), call)
		return out, refFor(e.Type, offset, e.Pos), nil

	case e.Kind.IsUnary():
		oInstrs, oRef, err := leafOrChain(*e.Operand, counter)
		if err != nil {
			return nil, ast.Expr{}, err
		}
		name, err := expr.Lower(e)
		if err != nil {
			return nil, ast.Expr{}, err
		}
		offset := allocate(counter)
		call := ast.Instr{Kind: ast.InstrCall, Pos: e.Pos, Name: name, Args: []ast.Expr{oRef}}
		out := append(oInstrs, call)
		return out, refFor(e.Type, offset, e.Pos), nil

	case isPrimitive(e):
		name, err := expr.Lower(e)
		if err != nil {
			return nil, ast.Expr{}, err
		}
		offset := allocate(counter)
		call := ast.Instr{Kind: ast.InstrCall, Pos: e.Pos, Name: name, Args: []ast.Expr{e}}
		return []ast.Instr{call}, refFor(e.Type, offset, e.Pos), nil

	default:
		return nil, ast.Expr{}, &diag.Error{Kind: diag.BackEnd, Pos: e.Pos, Msg: "expression shape cannot be hoisted"}
	}
}

// leafOrChain is hoistChain's operand helper: a primitive operand still
// gets its own push (Lower maps every leaf to push-int/push-float), an
// operator operand recurses.
func leafOrChain(e ast.Expr, counter *int32) ([]ast.Instr, ast.Expr, error) {
	return hoistChain(e, counter)
}

func allocate(counter *int32) int32 {
	*counter--
	return *counter
}

func refFor(t ast.Type, offset int32, pos token.Position) ast.Expr {
	if t == ast.TypeFloat {
		return ast.Expr{Kind: ast.ExprVarFloat, Offset: offset, Type: ast.TypeFloat, Pos: pos}
	}
	return ast.Expr{Kind: ast.ExprVarInt, Offset: offset, Type: ast.TypeInt, Pos: pos}
}
