package compiler

import (
	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/diag"
	"github.com/ecl-lang/eclc/lang/emitter"
)

// resolveLabels implements pass 10: compute each label's byte offset by
// summing instruction sizes, rewrite every Id(label) Call argument to a
// relative integer offset (target minus the jump's own position), then
// drop the now-meaningless Label markers from the stream (spec.md §4.8
// step 10). TimeLabel/RankLabel survive: they still drive the running
// time/rank cursors lang/emitter threads through the final Call stream.
func resolveLabels(instrs []ast.Instr) ([]ast.Instr, error) {
	offsets := make(map[string]int, 8)
	pos := 0
	for _, in := range instrs {
		if in.Kind == ast.InstrLabel {
			offsets[in.Name] = pos
			continue
		}
		sz, err := emitter.Size(in)
		if err != nil {
			return nil, err
		}
		pos += sz
	}

	out := make([]ast.Instr, 0, len(instrs))
	pos = 0
	for _, in := range instrs {
		if in.Kind == ast.InstrLabel {
			continue
		}
		if in.Kind == ast.InstrCall {
			resolved, err := resolveCallLabels(in, pos, offsets)
			if err != nil {
				return nil, err
			}
			in = resolved
		}
		out = append(out, in)
		sz, err := emitter.Size(in)
		if err != nil {
			return nil, err
		}
		pos += sz
	}
	return out, nil
}

// subCallOpcodes name their first Arg as a subroutine reference, resolved
// program-wide by compiler.Program's resolveSubRefs pass, not a same-sub
// label offset — pass 10 must leave it as an Id for that later pass.
var subCallOpcodes = map[string]bool{"ins_11": true, "ins_15": true, "ins_16": true}

func resolveCallLabels(in ast.Instr, pos int, offsets map[string]int) (ast.Instr, error) {
	args := make([]ast.Expr, len(in.Args))
	for i, a := range in.Args {
		if i == 0 && subCallOpcodes[in.Name] {
			args[i] = a
			continue
		}
		if a.Kind != ast.ExprId {
			args[i] = a
			continue
		}
		target, ok := offsets[a.Name]
		if !ok {
			return in, &diag.Error{Kind: diag.BackEnd, Pos: a.Pos, Msg: "jump target label not found: " + a.Name}
		}
		args[i] = ast.Expr{Kind: ast.ExprInt, IntVal: int32(target - pos), Type: ast.TypeInt, Pos: a.Pos}
	}
	in.Args = args
	return in, nil
}
