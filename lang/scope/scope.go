// Package scope implements the variable/scope manager (spec.md §4.7,
// component H): a stack of lexical frames mapping names to stack-frame
// offsets, grounded on
// _examples/original_source/src/ast/variables.rs's own frame-stack
// design (addVar/getVar over a parent-linked chain, with a high-water
// mark surviving pops).
package scope

import (
	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/diag"
	"github.com/ecl-lang/eclc/lang/token"
)

type binding struct {
	kind   ast.ParamKind
	offset int32
}

type frame struct {
	vars   map[string]binding
	parent *frame
}

// Scope is a subroutine's lexical scope stack. Entering a nested block
// (Bloc/Loop/If/While/DoWhile) pushes a new frame; leaving it pops the
// frame, but maxOffset survives the pop (spec.md §4.7).
type Scope struct {
	top            *frame
	localMaxOffset int32 // next free offset in the *current* chain of live frames
	maxOffset      int32 // subroutine-wide high-water mark
}

// New creates an empty Scope.
func New() *Scope { return &Scope{} }

// MaxOffset returns the subroutine-wide high-water mark, used to emit the
// stackAlloc prologue (spec.md §4.7, opcode 40).
func (s *Scope) MaxOffset() int32 { return s.maxOffset }

// Push enters a new nested frame.
func (s *Scope) Push() { s.top = &frame{vars: make(map[string]binding), parent: s.top} }

// Pop leaves the current frame. localMaxOffset is rolled back to the
// parent frame's high-water mark (frame-local offsets are reused once a
// block exits), while the subroutine-wide maxOffset is untouched.
func (s *Scope) Pop() {
	// Recompute localMaxOffset as the sum of sizes in the remaining chain.
	var n int32
	for f := s.top.parent; f != nil; f = f.parent {
		n += int32(len(f.vars)) * 4
	}
	s.localMaxOffset = n
	s.top = s.top.parent
}

// AddVar places a new variable at the current high-water offset,
// advancing it by 4, and updates the subroutine-wide maxOffset. Declaring
// a name already bound in the same frame (shadowing across nested frames
// is allowed; re-declaring within one frame is not) is a Simple error.
func (s *Scope) AddVar(name string, kind ast.ParamKind, pos token.Position) (int32, error) {
	if _, ok := s.top.vars[name]; ok {
		return 0, &diag.Error{Kind: diag.Simple, Pos: pos, Msg: "duplicate local variable " + name}
	}
	offset := s.localMaxOffset
	s.top.vars[name] = binding{kind: kind, offset: offset}
	s.localMaxOffset += 4
	if s.localMaxOffset > s.maxOffset {
		s.maxOffset = s.localMaxOffset
	}
	return offset, nil
}

// GetVar walks the frame chain outward looking for name.
func (s *Scope) GetVar(name string) (ast.ParamKind, int32, bool) {
	for f := s.top; f != nil; f = f.parent {
		if b, ok := f.vars[name]; ok {
			return b.kind, b.offset, true
		}
	}
	return 0, 0, false
}
