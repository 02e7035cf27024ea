package expr

import (
	"fmt"

	"github.com/ecl-lang/eclc/lang/ast"
)

// opcodeFor is the fixed operator→opcode table (spec.md §4.4). The spec's
// prose describes the ten comparison/arithmetic operators as dispatching
// "in pairs (50,51)…(69,70)" while also calling out "%" as its own opcode
// 58 — the two statements only reconcile if "%" is not itself one of the
// ten paired operators, so this table assigns the four paired arithmetic
// ops 50–57, "%" the standalone opcode 58 (int only, no float variant:
// the source grammar never applies "%" to a float), and the six
// comparisons 59–70 in pairs, landing the last pair exactly on (69,70) as
// the spec's example states (see DESIGN.md).
var opcodeFor = map[ast.ExprKind][2]uint16{
	ast.ExprAdd: {50, 51},
	ast.ExprSub: {52, 53},
	ast.ExprMul: {54, 55},
	ast.ExprDiv: {56, 57},
	ast.ExprEq:  {59, 60},
	ast.ExprNe:  {61, 62},
	ast.ExprLt:  {63, 64},
	ast.ExprLe:  {65, 66},
	ast.ExprGt:  {67, 68},
	ast.ExprGe:  {69, 70},
}

const (
	opcodeMod       = 58
	opcodeXor       = 75
	opcodeBinOr     = 76
	opcodeBinAnd    = 77
	opcodeOr        = 73
	opcodeAnd       = 74
	opcodeNot       = 71 // int only
	opcodeUminusInt = 83
	opcodeUminusFlt = 84
	opcodeSin       = 79
	opcodeCos       = 80
	opcodeSqrt      = 88
	opcodePushInt   = 42
	opcodePushFloat = 43
)

// Lower returns the "ins_N" instruction name a fully annotated-and-folded
// operator node emits to (spec.md §4.4). Called once per surviving
// operator node during lang/compiler's pass 7, after expression constant
// folding has eliminated everything foldable.
func Lower(e ast.Expr) (string, error) {
	switch e.Kind {
	case ast.ExprInt, ast.ExprVarInt:
		return insName(opcodePushInt), nil
	case ast.ExprFloat, ast.ExprVarFloat:
		return insName(opcodePushFloat), nil

	case ast.ExprMod:
		return insName(opcodeMod), nil
	case ast.ExprBinAnd:
		return insName(opcodeBinAnd), nil
	case ast.ExprBinOr:
		return insName(opcodeBinOr), nil
	case ast.ExprXor:
		return insName(opcodeXor), nil
	case ast.ExprAnd:
		return insName(opcodeAnd), nil
	case ast.ExprOr:
		return insName(opcodeOr), nil

	case ast.ExprUminus:
		if e.Operand.Type == ast.TypeFloat {
			return insName(opcodeUminusFlt), nil
		}
		return insName(opcodeUminusInt), nil
	case ast.ExprNot:
		return insName(opcodeNot), nil
	case ast.ExprSin:
		return insName(opcodeSin), nil
	case ast.ExprCos:
		return insName(opcodeCos), nil
	case ast.ExprSqrt:
		return insName(opcodeSqrt), nil

	case ast.ExprId:
		return "", fmt.Errorf("%s: unresolved identifier %q reached instruction lowering", e.Pos, e.Name)

	default:
		if pair, ok := opcodeFor[e.Kind]; ok {
			if e.Left.Type == ast.TypeFloat {
				return insName(pair[1]), nil
			}
			return insName(pair[0]), nil
		}
		return "", fmt.Errorf("%s: expr kind %d has no instruction mapping", e.Pos, e.Kind)
	}
}

func insName(opcode uint16) string { return fmt.Sprintf("ins_%d", opcode) }
