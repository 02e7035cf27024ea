package desugar

import (
	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/diag"
)

// desugarIf implements spec.md §4.6's If lowering. A known-constant
// condition collapses to just the live branch; otherwise it emits a
// false-jump over the then-block to an else (or end) label.
func desugarIf(in ast.Instr, lab *Labeler, lc *loopCtx) ([]ast.Instr, error) {
	cond, err := foldCond(in.Cond)
	if err != nil {
		return nil, err
	}

	if cond.Kind == ast.ExprInt {
		if cond.IntVal != 0 {
			return Body(in.Body, lab, lc)
		}
		return Body(in.Else, lab, lc)
	}
	if cond.Type != ast.TypeInt {
		return nil, &diag.Error{Kind: diag.Simple, Pos: in.Cond.Pos, Msg: "if condition must be Int"}
	}

	then, err := Body(in.Body, lab, lc)
	if err != nil {
		return nil, err
	}

	if len(in.Else) == 0 {
		endLabel := lab.New()
		out := []ast.Instr{{Kind: ast.InstrPushExpr, Expr: cond}, condJump(opJmpFalse, endLabel, falseFlag())}
		out = append(out, then...)
		out = append(out, labelInstr(endLabel))
		return out, nil
	}

	elseLabel := lab.New()
	endLabel := lab.New()
	elseBody, err := Body(in.Else, lab, lc)
	if err != nil {
		return nil, err
	}

	out := []ast.Instr{{Kind: ast.InstrPushExpr, Expr: cond}, condJump(opJmpFalse, elseLabel, falseFlag())}
	out = append(out, then...)
	out = append(out, jumpTo(opJmp, endLabel))
	out = append(out, labelInstr(elseLabel))
	out = append(out, elseBody...)
	out = append(out, labelInstr(endLabel))
	return out, nil
}

// falseFlag is the polarity argument to opcode 14's conditional jump: the
// condition value itself is pushed separately via PushExpr, so the
// instruction's own polarity argument just says "jump if zero".
func falseFlag() ast.Expr { return ast.Expr{Kind: ast.ExprInt, IntVal: 0, Type: ast.TypeInt} }
func trueFlag() ast.Expr  { return ast.Expr{Kind: ast.ExprInt, IntVal: 1, Type: ast.TypeInt} }

// desugarLoop implements spec.md §4.6's unconditional loop lowering.
func desugarLoop(in ast.Instr, lab *Labeler, parent *loopCtx) ([]ast.Instr, error) {
	loopLabel := lab.New()
	lc := &loopCtx{loopLabel: loopLabel, breakLabel: lab.New(), parent: parent}

	body, err := Body(in.Body, lab, lc)
	if err != nil {
		return nil, err
	}

	out := []ast.Instr{labelInstr(loopLabel)}
	out = append(out, body...)
	out = append(out, jumpTo(opJmp, loopLabel))
	if lc.breakUsed {
		out = append(out, labelInstr(lc.breakLabel))
	}
	return out, nil
}

// desugarWhile implements spec.md §4.6's while/do-while lowering. A
// known-nonzero condition degrades to an unconditional loop; a known-zero
// condition (while only) emits nothing.
func desugarWhile(in ast.Instr, lab *Labeler, parent *loopCtx, isDoWhile bool) ([]ast.Instr, error) {
	cond, err := foldCond(in.Cond)
	if err != nil {
		return nil, err
	}
	if cond.Kind == ast.ExprInt {
		if cond.IntVal != 0 {
			return desugarLoop(ast.Instr{Kind: ast.InstrLoop, Body: in.Body}, lab, parent)
		}
		if !isDoWhile {
			return nil, nil
		}
	}
	if cond.Kind != ast.ExprInt && cond.Type != ast.TypeInt {
		return nil, &diag.Error{Kind: diag.Simple, Pos: in.Cond.Pos, Msg: "while condition must be Int"}
	}

	loopLabel := lab.New()
	condLabel := lab.New()
	lc := &loopCtx{loopLabel: loopLabel, breakLabel: lab.New(), parent: parent}

	body, err := Body(in.Body, lab, lc)
	if err != nil {
		return nil, err
	}

	var out []ast.Instr
	if !isDoWhile {
		out = append(out, jumpTo(opJmp, condLabel))
	}
	out = append(out, labelInstr(loopLabel))
	out = append(out, body...)
	out = append(out, labelInstr(condLabel))
	out = append(out, ast.Instr{Kind: ast.InstrPushExpr, Expr: cond})
	out = append(out, condJump(opJmpTrue, loopLabel, trueFlag()))
	if lc.breakUsed {
		out = append(out, labelInstr(lc.breakLabel))
	}
	return out, nil
}
