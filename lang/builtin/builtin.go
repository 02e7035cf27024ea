// Package builtin holds the built-in identifier table (spec.md §6.2): a
// fixed map of names to literal Expr values, substituted into a
// subroutine's body before label/variable resolution (lang/compiler pass
// 3). Grounded on _examples/original_source/src/ast/builtin_idents.rs's
// "replace" pass, which walks every Instr/Expr substituting from exactly
// this kind of map before anything else runs.
package builtin

import (
	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/token"
)

// Value is one built-in's literal replacement: either an Int or a Float,
// matching the two primitive Expr kinds the source grammar allows as a
// built-in's value (spec.md §6.2).
type Value struct {
	IsFloat bool
	IntVal  int32
	FloatVal float32
}

func i(v int32) Value   { return Value{IntVal: v} }
func f(v float32) Value { return Value{IsFloat: true, FloatVal: v} }

// Table is the fixed built-in identifier table. EX_* and AIM_* are the
// runtime's named power-of-two flag and small-integer constants
// (spec.md §6.2); this table carries a representative subset of them, not
// the full original set (see DESIGN.md).
var Table = map[string]Value{
	"true":  i(1),
	"false": i(0),
	"NULL":  i(-999999),
	"NULLF": f(-999999.0),
	"PI":    f(3.1415926535),

	"EX_NONE":     i(0),
	"EX_STOP":     i(1 << 0),
	"EX_FREEZE":   i(1 << 1),
	"EX_SHOOT":    i(1 << 2),
	"EX_SPELL":    i(1 << 3),
	"EX_SLOW":     i(1 << 4),
	"EX_BONUS":    i(1 << 5),
	"EX_INVINC":   i(1 << 6),
	"EX_AUTODEL":  i(1 << 7),

	"AIM_NONE":    i(0),
	"AIM_PLAYER":  i(1),
	"AIM_NEAREST": i(2),
	"AIM_FORWARD": i(3),
}

// IsBuiltin reports whether name is a reserved built-in identifier: using
// one as a label or variable name is an error (spec.md §6.2).
func IsBuiltin(name string) bool {
	_, ok := Table[name]
	return ok
}

// ToExpr converts a built-in's Value into the literal Expr it substitutes
// for, preserving the original identifier's source position.
func ToExpr(v Value, pos token.Position) ast.Expr {
	if v.IsFloat {
		return ast.Expr{Kind: ast.ExprFloat, FloatVal: v.FloatVal, Type: ast.TypeFloat, Pos: pos}
	}
	return ast.Expr{Kind: ast.ExprInt, IntVal: v.IntVal, Type: ast.TypeInt, Pos: pos}
}
