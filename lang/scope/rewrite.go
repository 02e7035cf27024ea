package scope

import (
	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/diag"
)

// ReplaceInBloc recursively rewrites every Id expression in instrs via
// GetVar, translating it to a VarInt/VarFloat reference, installs new
// bindings for VarInt/VarFloat declarations, and resolves each Affect
// assignment's target against an existing binding (spec.md §4.7). It is the single entry point lang/compiler's pass 2
// calls once per subroutine body.
func ReplaceInBloc(instrs []ast.Instr, s *Scope) ([]ast.Instr, error) {
	out := make([]ast.Instr, 0, len(instrs))
	for _, in := range instrs {
		rewritten, err := replaceOne(in, s)
		if err != nil {
			return nil, err
		}
		out = append(out, rewritten)
	}
	return out, nil
}

func replaceOne(in ast.Instr, s *Scope) (ast.Instr, error) {
	switch in.Kind {
	case ast.InstrCall:
		args, err := replaceExprs(in.Args, s)
		if err != nil {
			return in, err
		}
		in.Args = args
		return in, nil

	case ast.InstrPushExpr:
		e, err := replaceExpr(in.Expr, s)
		if err != nil {
			return in, err
		}
		in.Expr = e
		return in, nil

	case ast.InstrAffect:
		kind, offset, ok := s.GetVar(in.Name)
		if !ok {
			return in, &diag.Error{Kind: diag.Simple, Pos: in.Pos, Msg: "assignment to unknown variable " + in.Name}
		}
		e, err := replaceExpr(in.Expr, s)
		if err != nil {
			return in, err
		}
		in.Expr = e
		in.Offset = offset
		in.VarKind = kind
		return in, nil

	case ast.InstrVarInt, ast.InstrVarFloat:
		kind := ast.ParamInt
		if in.Kind == ast.InstrVarFloat {
			kind = ast.ParamFloat
		}
		offset, err := s.AddVar(in.Name, kind, in.Pos)
		if err != nil {
			return in, err
		}
		in.Offset = offset
		if in.HasInit {
			e, err := replaceExpr(in.Expr, s)
			if err != nil {
				return in, err
			}
			in.Expr = e
		}
		return in, nil

	case ast.InstrBloc:
		s.Push()
		body, err := ReplaceInBloc(in.Body, s)
		s.Pop()
		if err != nil {
			return in, err
		}
		in.Body = body
		return in, nil

	case ast.InstrIf:
		cond, err := replaceExpr(in.Cond, s)
		if err != nil {
			return in, err
		}
		in.Cond = cond
		s.Push()
		then, err := ReplaceInBloc(in.Body, s)
		s.Pop()
		if err != nil {
			return in, err
		}
		in.Body = then
		if len(in.Else) > 0 {
			s.Push()
			elseBody, err := ReplaceInBloc(in.Else, s)
			s.Pop()
			if err != nil {
				return in, err
			}
			in.Else = elseBody
		}
		return in, nil

	case ast.InstrLoop:
		s.Push()
		body, err := ReplaceInBloc(in.Body, s)
		s.Pop()
		if err != nil {
			return in, err
		}
		in.Body = body
		return in, nil

	case ast.InstrWhile, ast.InstrDoWhile:
		cond, err := replaceExpr(in.Cond, s)
		if err != nil {
			return in, err
		}
		in.Cond = cond
		s.Push()
		body, err := ReplaceInBloc(in.Body, s)
		s.Pop()
		if err != nil {
			return in, err
		}
		in.Body = body
		return in, nil

	case ast.InstrSubCall:
		args, err := replaceExprs(in.Args, s)
		if err != nil {
			return in, err
		}
		in.Args = args
		delay, err := replaceExpr(in.Delay, s)
		if err != nil {
			return in, err
		}
		in.Delay = delay
		return in, nil

	case ast.InstrGoto:
		t, err := replaceExpr(in.GotoTime, s)
		if err != nil {
			return in, err
		}
		in.GotoTime = t
		return in, nil

	default:
		return in, nil
	}
}

func replaceExprs(exprs []ast.Expr, s *Scope) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(exprs))
	for i, e := range exprs {
		r, err := replaceExpr(e, s)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func replaceExpr(e ast.Expr, s *Scope) (ast.Expr, error) {
	switch e.Kind {
	case ast.ExprId:
		kind, offset, ok := s.GetVar(e.Name)
		if !ok {
			return e, nil // may be a builtin or a call-target name; left for lang/builtin / later passes
		}
		if kind == ast.ParamFloat {
			return ast.Expr{Kind: ast.ExprVarFloat, Offset: offset, Type: ast.TypeFloat, Pos: e.Pos}, nil
		}
		return ast.Expr{Kind: ast.ExprVarInt, Offset: offset, Type: ast.TypeInt, Pos: e.Pos}, nil

	case ast.ExprVararg:
		items, err := replaceExprs(e.Items, s)
		if err != nil {
			return e, err
		}
		e.Items = items
		return e, nil

	default:
		if e.Kind.IsBinary() {
			l, err := replaceExpr(*e.Left, s)
			if err != nil {
				return e, err
			}
			r, err := replaceExpr(*e.Right, s)
			if err != nil {
				return e, err
			}
			e.Left, e.Right = &l, &r
			return e, nil
		}
		if e.Kind.IsUnary() {
			o, err := replaceExpr(*e.Operand, s)
			if err != nil {
				return e, err
			}
			e.Operand = &o
			return e, nil
		}
		return e, nil
	}
}
