// Package ast defines the typed syntax tree produced by lang/astdef's
// resolvers (spec.md §3): Program, Sub, Param, Instr, and Expr, each
// modeled as an exhaustive Go tagged union in the style of the teacher's
// own lang/ast package (a Kind discriminator plus one struct per variant,
// rather than an interface-per-variant hierarchy), since every pass in
// this pipeline switches on a node's shape rather than asking it to
// behave polymorphically.
package ast

import "github.com/ecl-lang/eclc/lang/token"

// Program is the root of a compiled source file (spec.md §3).
type Program struct {
	Ecli []string
	Anmi []string
	Subs []*Sub
}

// ParamKind distinguishes the two primitive parameter/local types the
// source language supports.
type ParamKind int

const (
	ParamInt ParamKind = iota
	ParamFloat
)

// Param is one formal parameter of a Sub.
type Param struct {
	Name string
	Kind ParamKind
	Pos  token.Position
}

// Sub is one compiled subroutine: its declared parameters and its body,
// which is progressively rewritten in place by lang/compiler's fixed pass
// order (spec.md §4.8) until every invariant in spec.md §8 holds.
type Sub struct {
	Name         string
	Params       []Param
	Instructions []Instr
	Pos          token.Position
}
