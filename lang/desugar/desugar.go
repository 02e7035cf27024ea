// Package desugar lowers structured control flow (if/else, loop, while,
// do-while, break, continue) into labeled jumps (spec.md §4.6, component
// G), grounded on _examples/original_source/src/ast/if_construct.rs,
// while_construct.rs, and loop_construct.rs, each of which recursively
// rewrites one construct's body into a flat Instr list built from labels
// and conditional/unconditional jumps before handing control back up the
// same recursive traversal this package also uses.
package desugar

import (
	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/expr"
)

const (
	opJmp      = "ins_12"
	opJmpFalse = "ins_14"
	opJmpTrue  = "ins_14"
)

// Labeler hands out monotonically increasing label names for one
// subroutine, "<subname>_label_<N>" (spec.md §4.6).
type Labeler struct {
	sub string
	n   int
}

// NewLabeler creates a Labeler for the named subroutine.
func NewLabeler(sub string) *Labeler { return &Labeler{sub: sub} }

// New returns the next fresh label name.
func (l *Labeler) New() string {
	l.n++
	return l.sub + "_label_" + itoa(l.n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	buf := make([]byte, 0, 8)
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}
	return string(buf)
}

// loopCtx tracks the innermost loop's labels so Break/Continue can bind to
// it; desugaring proceeds innermost-first by recursing into a loop's body
// before emitting the loop's own labels (spec.md §4.6).
type loopCtx struct {
	loopLabel  string
	breakLabel string
	breakUsed  bool
	parent     *loopCtx
}

// Body desugars a flat instruction list in place, recursing into every
// nested structured form. lc is nil outside any loop; Break/Continue
// outside a loop is dropped here: it produces no instruction and no error.
func Body(instrs []ast.Instr, lab *Labeler, lc *loopCtx) ([]ast.Instr, error) {
	var out []ast.Instr
	for _, in := range instrs {
		lowered, err := one(in, lab, lc)
		if err != nil {
			return nil, err
		}
		out = append(out, lowered...)
	}
	return out, nil
}

func one(in ast.Instr, lab *Labeler, lc *loopCtx) ([]ast.Instr, error) {
	switch in.Kind {
	case ast.InstrIf:
		return desugarIf(in, lab, lc)
	case ast.InstrLoop:
		return desugarLoop(in, lab, lc)
	case ast.InstrWhile:
		return desugarWhile(in, lab, lc, false)
	case ast.InstrDoWhile:
		return desugarWhile(in, lab, lc, true)
	case ast.InstrBloc:
		body, err := Body(in.Body, lab, lc)
		if err != nil {
			return nil, err
		}
		return body, nil
	case ast.InstrBreak:
		if lc == nil {
			return nil, nil
		}
		lc.breakUsed = true
		return []ast.Instr{jumpTo(opJmp, lc.breakLabel)}, nil
	case ast.InstrContinue:
		if lc == nil {
			return nil, nil
		}
		return []ast.Instr{jumpTo(opJmp, lc.loopLabel)}, nil
	default:
		return []ast.Instr{in}, nil
	}
}

func jumpTo(opcode, label string) ast.Instr {
	return ast.Instr{Kind: ast.InstrCall, Name: opcode, Args: []ast.Expr{
		{Kind: ast.ExprId, Name: label, Type: ast.TypeInt},
		{Kind: ast.ExprFloat, FloatVal: 0, Type: ast.TypeFloat}, // time arg, always 0.0 (spec.md §9 open question 1)
	}}
}

func condJump(opcode, label string, cond ast.Expr) ast.Instr {
	return ast.Instr{Kind: ast.InstrCall, Name: opcode, Args: []ast.Expr{
		{Kind: ast.ExprId, Name: label, Type: ast.TypeInt},
		{Kind: ast.ExprFloat, FloatVal: 0, Type: ast.TypeFloat},
		cond,
	}}
}

func labelInstr(name string) ast.Instr { return ast.Instr{Kind: ast.InstrLabel, Name: name} }

func foldCond(cond ast.Expr) (ast.Expr, error) {
	annotated, err := expr.Annotate(cond)
	if err != nil {
		return ast.Expr{}, err
	}
	return expr.Fold(annotated), nil
}
