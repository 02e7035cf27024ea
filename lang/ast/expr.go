package ast

import "github.com/ecl-lang/eclc/lang/token"

// ExprKind discriminates the Expr tagged union (spec.md §3).
type ExprKind int

const (
	ExprInt ExprKind = iota
	ExprFloat
	ExprStr
	ExprId
	ExprVarInt
	ExprVarFloat
	ExprVararg
	ExprAdd
	ExprSub
	ExprMul
	ExprDiv
	ExprMod
	ExprGt
	ExprGe
	ExprLt
	ExprLe
	ExprEq
	ExprNe
	ExprBinAnd
	ExprBinOr
	ExprXor
	ExprOr
	ExprAnd
	ExprUminus
	ExprNot
	ExprSin
	ExprCos
	ExprSqrt
)

// IsBinary reports whether k takes both Left and Right operands.
func (k ExprKind) IsBinary() bool {
	return k >= ExprAdd && k <= ExprAnd
}

// IsUnary reports whether k takes a single Left operand.
func (k ExprKind) IsUnary() bool {
	return k >= ExprUminus && k <= ExprSqrt
}

// Type is the concrete type an Expr carries after annotation (spec.md §4.4).
// The zero value, TypeUnset, marks an expression annotate hasn't visited
// yet; invariant 1 (spec.md §8) requires every operator node hold a
// definite non-Vararg type (or TypeVararg at a call-argument root) once
// annotation has completed for its subroutine.
type Type int

const (
	TypeUnset Type = iota
	TypeInt
	TypeFloat
	TypeString
	TypeVararg
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeVararg:
		return "vararg"
	default:
		return "unset"
	}
}

// Expr is one expression node. As with Instr, exactly one field group is
// meaningful per Kind.
type Expr struct {
	Kind ExprKind
	Pos  token.Position
	Type Type // set by lang/expr's annotate pass

	IntVal   int32
	FloatVal float32
	StrVal   string
	Name     string // ExprId

	// ExprVarInt/ExprVarFloat: resolved stack-frame offset, a multiple of 4
	// for a declared variable; a hoisted temporary (lang/compiler passes 7
	// and 9) is numbered -1, -2, ... instead.
	Offset int32

	Items []Expr // ExprVararg

	Left, Right *Expr // binary ops
	Operand     *Expr // unary ops
}
