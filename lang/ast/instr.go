package ast

import "github.com/ecl-lang/eclc/lang/token"

// InstrKind discriminates the Instr tagged union (spec.md §3). Structured
// forms (Bloc/Loop/While/DoWhile/If/Break/Continue/PushExpr) only exist
// between parsing and the end of lang/desugar + lang/compiler's PushExpr
// expansion; none may remain once lang/compiler's pass 9 has run
// (invariant 2, spec.md §8).
type InstrKind int

const (
	InstrLabel InstrKind = iota
	InstrTimeLabel
	InstrRankLabel
	InstrCall
	InstrBloc
	InstrLoop
	InstrWhile
	InstrDoWhile
	InstrIf
	InstrPushExpr
	InstrAffect
	InstrVarInt
	InstrVarFloat
	InstrBreak
	InstrContinue
	InstrGoto
	InstrSubCall
	InstrReturn
	InstrDelete
)

// TimeLabelOp is the update kind a TimeLabel applies to the running time
// cursor (spec.md §4.9).
type TimeLabelOp int

const (
	TimeSet TimeLabelOp = iota
	TimeAdd
	TimeSub
)

// SubCallMode distinguishes a plain subroutine call from its two async
// forms (spec.md §6.1: "@name(args)", "@name@async(args)",
// "@name@async N(args)"), which lower to opcodes 11, 15, and 16
// respectively (lang/compiler's pass 7).
type SubCallMode int

const (
	SubCallSync SubCallMode = iota
	SubCallAsync
	SubCallAsyncDelay
)

// Instr is one statement in a Sub's body. Exactly one field group is
// meaningful per Kind; this mirrors the teacher's own AST node shape
// (a discriminant plus a flat field set) rather than an interface
// hierarchy, since every pass dispatches on Kind with a single switch.
type Instr struct {
	Kind InstrKind
	Pos  token.Position

	// InstrLabel, InstrGoto (label name), InstrAffect, InstrVarInt/VarFloat
	// (variable name), InstrCall (resolved or alias name).
	Name string

	// InstrTimeLabel
	TimeOp  TimeLabelOp
	TimeVal int32

	// InstrRankLabel
	RankMask uint8

	// InstrGoto: target time for the jump, per source syntax "goto lbl @t;".
	GotoTime Expr

	// InstrCall
	Args []Expr

	// InstrBloc, InstrLoop, then-branch of InstrIf, body of InstrWhile/
	// InstrDoWhile.
	Body []Instr

	// InstrIf else-branch; InstrWhile/InstrDoWhile/InstrIf condition.
	Else []Instr
	Cond Expr

	// InstrPushExpr, InstrAffect, optional initializer for
	// InstrVarInt/InstrVarFloat.
	Expr Expr

	// InstrAffect, InstrVarInt/InstrVarFloat: the target's resolved stack
	// offset and kind, filled in by lang/scope.ReplaceInBloc.
	Offset  int32
	VarKind ParamKind

	// InstrVarInt/InstrVarFloat: whether an initializer is present (Expr is
	// the zero Expr otherwise).
	HasInit bool

	// InstrSubCall
	SubName string
	Mode    SubCallMode
	Delay   Expr
}
