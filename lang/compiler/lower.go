package compiler

import (
	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/catalog"
	"github.com/ecl-lang/eclc/lang/diag"
	"github.com/ecl-lang/eclc/lang/expr"
	"github.com/ecl-lang/eclc/lang/token"
)

// lowerBody implements pass 7 and pass 9 together: the input is already
// flat (lang/desugar has removed every structured form except the
// PushExpr markers it introduced), and every remaining Instr is lowered
// to zero or more Call instructions plus any passthrough Label/
// TimeLabel/RankLabel markers pass 10 still needs.
func lowerBody(instrs []ast.Instr, cat *catalog.Catalog, counter *int32, subName string) ([]ast.Instr, error) {
	var out []ast.Instr
	for _, in := range instrs {
		lowered, err := lowerOne(in, cat, counter)
		if err != nil {
			return nil, err
		}
		out = append(out, lowered...)
	}
	return out, nil
}

func lowerOne(in ast.Instr, cat *catalog.Catalog, counter *int32) ([]ast.Instr, error) {
	switch in.Kind {
	case ast.InstrLabel, ast.InstrTimeLabel, ast.InstrRankLabel:
		return []ast.Instr{in}, nil

	case ast.InstrPushExpr:
		annotated, err := expr.Annotate(in.Expr)
		if err != nil {
			return nil, err
		}
		folded := expr.Fold(annotated)
		instrs, _, err := hoistChain(folded, counter)
		return instrs, err

	case ast.InstrCall:
		if isLiteralInsName(in.Name) {
			// Already a resolved internal instruction synthesized by
			// lang/desugar (jmp/jmpif): its args are already primitive
			// except for a label Id placeholder pass 10 resolves, so it
			// must bypass catalog overload matching and argument hoisting.
			return []ast.Instr{in}, nil
		}
		return lowerCall(in, cat, counter)

	case ast.InstrAffect:
		return lowerStore(in.Pos, in.VarKind, in.Offset, in.Expr, counter)

	case ast.InstrVarInt, ast.InstrVarFloat:
		if !in.HasInit {
			return nil, nil
		}
		kind := ast.ParamInt
		if in.Kind == ast.InstrVarFloat {
			kind = ast.ParamFloat
		}
		return lowerStore(in.Pos, kind, in.Offset, in.Expr, counter)

	case ast.InstrGoto:
		pre, timeRef, err := prepareArg(in.GotoTime, counter)
		if err != nil {
			return nil, err
		}
		jump := ast.Instr{Kind: ast.InstrCall, Pos: in.Pos, Name: "ins_12", Args: []ast.Expr{
			{Kind: ast.ExprId, Name: in.Name, Type: ast.TypeInt, Pos: in.Pos},
			timeRef,
		}}
		return append(pre, jump), nil

	case ast.InstrSubCall:
		return lowerSubCall(in, counter)

	case ast.InstrReturn:
		return []ast.Instr{{Kind: ast.InstrCall, Pos: in.Pos, Name: "ins_10"}}, nil

	case ast.InstrDelete:
		return []ast.Instr{{Kind: ast.InstrCall, Pos: in.Pos, Name: "ins_1"}}, nil

	default:
		return nil, &diag.Error{Kind: diag.BackEnd, Pos: in.Pos, Msg: "structured instruction survived desugaring"}
	}
}

// lowerStore implements `name = expr;` and `var name = expr;`: evaluate
// value (hoisting it through PushExpr if non-primitive), then store the
// resulting primitive into the destination's already-allocated offset.
func lowerStore(pos token.Position, kind ast.ParamKind, offset int32, value ast.Expr, counter *int32) ([]ast.Instr, error) {
	pre, ref, err := prepareArg(value, counter)
	if err != nil {
		return nil, err
	}
	dest := ast.Expr{Kind: ast.ExprVarInt, Offset: offset, Type: ast.TypeInt, Pos: pos}
	opcode := "ins_44"
	if kind == ast.ParamFloat {
		dest = ast.Expr{Kind: ast.ExprVarFloat, Offset: offset, Type: ast.TypeFloat, Pos: pos}
		opcode = "ins_45"
	}
	store := ast.Instr{Kind: ast.InstrCall, Pos: pos, Name: opcode, Args: []ast.Expr{dest, ref}}
	return append(pre, store), nil
}

func lowerCall(in ast.Instr, cat *catalog.Catalog, counter *int32) ([]ast.Instr, error) {
	var pre []ast.Instr
	finalArgs := make([]ast.Expr, len(in.Args))
	for i, a := range in.Args {
		p, ref, err := prepareArg(a, counter)
		if err != nil {
			return nil, err
		}
		pre = append(pre, p...)
		finalArgs[i] = ref
	}

	argVals := make([]catalog.ArgValue, len(finalArgs))
	for i, a := range finalArgs {
		argVals[i] = argValueOf(a)
	}

	match := cat.MatchInstruction(in.Name, argVals)
	switch match.Kind {
	case catalog.PerfectMatch:
		call := ast.Instr{Kind: ast.InstrCall, Pos: in.Pos, Name: insName(match.Opcode), Args: finalArgs}
		return append(pre, call), nil

	case catalog.WithVarargs:
		fixed := append([]ast.Expr{}, finalArgs[:match.VarargStart]...)
		tail := finalArgs[match.VarargStart:]
		call := ast.Instr{Kind: ast.InstrCall, Pos: in.Pos, Name: insName(match.Opcode),
			Args: append(fixed, ast.Expr{Kind: ast.ExprVararg, Items: tail, Type: ast.TypeVararg})}
		return append(pre, call), nil

	default:
		return nil, &diag.Error{Kind: diag.Simple, Pos: in.Pos, Msg: "no matching instruction overload for " +
			in.Name + "; candidates: " + catalog.DescribeNearMatches(match.NearMatches)}
	}
}

func lowerSubCall(in ast.Instr, counter *int32) ([]ast.Instr, error) {
	opcode := "ins_11"
	fixed := []ast.Expr{{Kind: ast.ExprId, Name: in.SubName, Type: ast.TypeInt, Pos: in.Pos}}
	switch in.Mode {
	case ast.SubCallAsync:
		opcode = "ins_15"
	case ast.SubCallAsyncDelay:
		opcode = "ins_16"
	}

	var pre []ast.Instr
	if in.Mode == ast.SubCallAsyncDelay {
		p, delayRef, err := prepareArg(in.Delay, counter)
		if err != nil {
			return nil, err
		}
		pre = append(pre, p...)
		fixed = append(fixed, delayRef)
	}

	items := make([]ast.Expr, len(in.Args))
	for i, a := range in.Args {
		p, ref, err := prepareArg(a, counter)
		if err != nil {
			return nil, err
		}
		pre = append(pre, p...)
		items[i] = ref
	}

	call := ast.Instr{Kind: ast.InstrCall, Pos: in.Pos, Name: opcode,
		Args: append(fixed, ast.Expr{Kind: ast.ExprVararg, Items: items, Type: ast.TypeVararg})}
	return append(pre, call), nil
}

func argValueOf(a ast.Expr) catalog.ArgValue {
	switch {
	case a.Type == ast.TypeFloat:
		return catalog.ArgValue{Kind: catalog.ArgFloat}
	case a.Type == ast.TypeString:
		return catalog.ArgValue{Kind: catalog.ArgStr}
	default:
		return catalog.ArgValue{Kind: catalog.ArgInt}
	}
}

func insName(opcode uint16) string {
	return "ins_" + itoa(int(opcode))
}

func isLiteralInsName(name string) bool {
	const prefix = "ins_"
	if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
		return false
	}
	for _, c := range name[len(prefix):] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	buf := make([]byte, 0, 6)
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}
	return string(buf)
}
