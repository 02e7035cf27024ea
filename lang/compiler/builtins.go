package compiler

import (
	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/builtin"
	"github.com/ecl-lang/eclc/lang/diag"
)

// substituteBuiltins implements pass 3: replace every remaining
// identifier expression naming a built-in with its literal value, and
// reject any label or variable declaration that shadows one (spec.md
// §4.8 step 3, §6.2).
func substituteBuiltins(instrs []ast.Instr) ([]ast.Instr, error) {
	out := make([]ast.Instr, len(instrs))
	for i, in := range instrs {
		rewritten, err := substituteBuiltinsOne(in)
		if err != nil {
			return nil, err
		}
		out[i] = rewritten
	}
	return out, nil
}

func substituteBuiltinsOne(in ast.Instr) (ast.Instr, error) {
	switch in.Kind {
	case ast.InstrLabel:
		if builtin.IsBuiltin(in.Name) {
			return in, &diag.Error{Kind: diag.Simple, Pos: in.Pos, Msg: "label " + in.Name + " shadows a built-in identifier"}
		}
		return in, nil

	case ast.InstrVarInt, ast.InstrVarFloat:
		if builtin.IsBuiltin(in.Name) {
			return in, &diag.Error{Kind: diag.Simple, Pos: in.Pos, Msg: "variable " + in.Name + " shadows a built-in identifier"}
		}
		if in.HasInit {
			in.Expr = replaceBuiltinExpr(in.Expr)
		}
		return in, nil

	case ast.InstrCall:
		in.Args = replaceBuiltinExprs(in.Args)
		return in, nil

	case ast.InstrPushExpr, ast.InstrAffect:
		in.Expr = replaceBuiltinExpr(in.Expr)
		return in, nil

	case ast.InstrIf, ast.InstrWhile, ast.InstrDoWhile:
		in.Cond = replaceBuiltinExpr(in.Cond)
		body, err := substituteBuiltins(in.Body)
		if err != nil {
			return in, err
		}
		in.Body = body
		if len(in.Else) > 0 {
			elseBody, err := substituteBuiltins(in.Else)
			if err != nil {
				return in, err
			}
			in.Else = elseBody
		}
		return in, nil

	case ast.InstrLoop, ast.InstrBloc:
		body, err := substituteBuiltins(in.Body)
		if err != nil {
			return in, err
		}
		in.Body = body
		return in, nil

	case ast.InstrGoto:
		in.GotoTime = replaceBuiltinExpr(in.GotoTime)
		return in, nil

	case ast.InstrSubCall:
		in.Args = replaceBuiltinExprs(in.Args)
		if in.Mode == ast.SubCallAsyncDelay {
			in.Delay = replaceBuiltinExpr(in.Delay)
		}
		return in, nil

	default:
		return in, nil
	}
}

func replaceBuiltinExprs(exprs []ast.Expr) []ast.Expr {
	out := make([]ast.Expr, len(exprs))
	for i, e := range exprs {
		out[i] = replaceBuiltinExpr(e)
	}
	return out
}

func replaceBuiltinExpr(e ast.Expr) ast.Expr {
	switch e.Kind {
	case ast.ExprId:
		if v, ok := builtin.Table[e.Name]; ok {
			return builtin.ToExpr(v, e.Pos)
		}
		return e

	case ast.ExprVararg:
		e.Items = replaceBuiltinExprs(e.Items)
		return e

	default:
		if e.Kind.IsBinary() {
			l := replaceBuiltinExpr(*e.Left)
			r := replaceBuiltinExpr(*e.Right)
			e.Left, e.Right = &l, &r
			return e
		}
		if e.Kind.IsUnary() {
			o := replaceBuiltinExpr(*e.Operand)
			e.Operand = &o
			return e
		}
		return e
	}
}
