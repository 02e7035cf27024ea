// Package compiler implements the subroutine processor (spec.md §4.8,
// component I): the fixed ten-pass order that turns one resolved Sub's
// structured body into a flat, fully resolved stream of Call
// instructions ready for lang/emitter, grounded on
// _examples/original_source/src/compiler/sub_compiler.rs's own
// single-entry "compile one sub through a fixed stage list" shape.
package compiler

import (
	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/builtin"
	"github.com/ecl-lang/eclc/lang/catalog"
	"github.com/ecl-lang/eclc/lang/desugar"
	"github.com/ecl-lang/eclc/lang/diag"
	"github.com/ecl-lang/eclc/lang/emitter"
	"github.com/ecl-lang/eclc/lang/scope"
)

// Result is one compiled subroutine, ready for lang/emitter, plus the
// stack high-water mark its stackAlloc prologue (if any) must reserve.
type Result struct {
	Name         string
	Instructions []ast.Instr
	MaxOffset    int32
}

// CompileSub runs spec.md §4.8's fixed ten-pass pipeline over one Sub.
// Passes 1-2 use lang/scope, pass 3 lang/builtin, passes 4-6 lang/desugar,
// pass 7 lang/expr + lang/catalog (this package's args.go), pass 8 is a
// single check, pass 9 reuses pass 7's hoisting machinery, and pass 10
// (labels.go) resolves every label to a relative byte offset.
func CompileSub(sub *ast.Sub, cat *catalog.Catalog) (Result, error) {
	s := scope.New()
	s.Push()
	for _, p := range sub.Params {
		if builtin.IsBuiltin(p.Name) {
			return Result{}, &diag.Error{Kind: diag.Simple, Pos: p.Pos, Msg: "parameter name " + p.Name + " shadows a built-in identifier"}
		}
		if _, err := s.AddVar(p.Name, p.Kind, p.Pos); err != nil {
			return Result{}, err
		}
	}

	body, err := scope.ReplaceInBloc(sub.Instructions, s)
	if err != nil {
		return Result{}, err
	}

	body, err = substituteBuiltins(body)
	if err != nil {
		return Result{}, err
	}

	flatStructured, err := desugar.Body(body, desugar.NewLabeler(sub.Name), nil)
	if err != nil {
		return Result{}, err
	}

	counter := int32(0)
	flat, err := lowerBody(flatStructured, cat, &counter, sub.Name)
	if err != nil {
		return Result{}, err
	}

	flat = ensureTerminator(flat, sub)

	resolved, err := resolveLabels(flat)
	if err != nil {
		return Result{}, err
	}

	return Result{Name: sub.Name, Instructions: resolved, MaxOffset: s.MaxOffset()}, nil
}

// ensureTerminator implements pass 8: the last instruction must be
// return (opcode 10) or delete (opcode 1); append return otherwise.
func ensureTerminator(flat []ast.Instr, sub *ast.Sub) []ast.Instr {
	for i := len(flat) - 1; i >= 0; i-- {
		if flat[i].Kind != ast.InstrCall {
			continue
		}
		if flat[i].Name == "ins_10" || flat[i].Name == "ins_1" {
			return flat
		}
		break
	}
	return append(flat, ast.Instr{Kind: ast.InstrCall, Name: "ins_10", Pos: sub.Pos})
}

// Program is the whole-program compiler: it compiles every sub, then
// resolves `@name(args)` subroutine-call references to the callee's
// index in declaration order — a resolution spec.md §4.8 doesn't spell
// out (subroutine calls reference a sub by its position in the offset
// table, per §4.9, the same way labels reference a byte offset within
// one sub), so this pass generalizes pass 10's label-resolution idea
// across the whole program instead of within one sub.
func Program(prog *ast.Program, cat *catalog.Catalog) (emitter.Program, error) {
	index := make(map[string]int32, len(prog.Subs))
	for i, s := range prog.Subs {
		index[s.Name] = int32(i)
	}

	results := make([]Result, len(prog.Subs))
	for i, s := range prog.Subs {
		r, err := CompileSub(s, cat)
		if err != nil {
			return emitter.Program{}, err
		}
		r.Instructions = resolveSubRefs(r.Instructions, index)
		r.Instructions = withPrologue(r)
		results[i] = r
	}

	subs := make([]emitter.Sub, len(results))
	for i, r := range results {
		subs[i] = emitter.Sub{Name: r.Name, Instructions: r.Instructions}
	}
	return emitter.Program{Anim: prog.Anmi, Ecli: prog.Ecli, Subs: subs}, nil
}

// withPrologue emits the stackAlloc(maxOffset) prologue call required by
// spec.md §9 open question 2's resolution: only when maxOffset > 0.
func withPrologue(r Result) []ast.Instr {
	if r.MaxOffset <= 0 {
		return r.Instructions
	}
	prologue := ast.Instr{Kind: ast.InstrCall, Name: "ins_40", Args: []ast.Expr{
		{Kind: ast.ExprInt, IntVal: r.MaxOffset, Type: ast.TypeInt},
	}}
	out := make([]ast.Instr, 0, len(r.Instructions)+1)
	out = append(out, prologue)
	out = append(out, r.Instructions...)
	return out
}

func resolveSubRefs(instrs []ast.Instr, index map[string]int32) []ast.Instr {
	for i, in := range instrs {
		if in.Kind != ast.InstrCall {
			continue
		}
		if in.Name != "ins_11" && in.Name != "ins_15" && in.Name != "ins_16" {
			continue
		}
		if len(in.Args) == 0 || in.Args[0].Kind != ast.ExprId {
			continue
		}
		if idx, ok := index[in.Args[0].Name]; ok {
			instrs[i].Args[0] = ast.Expr{Kind: ast.ExprInt, IntVal: idx, Type: ast.TypeInt, Pos: in.Args[0].Pos}
		}
	}
	return instrs
}

