// Package diag implements the compiler's shared error-handling contract
// (spec.md §7): a small tagged union of error classes, and an accumulating
// error list modeled directly on the standard library's go/scanner.Error
// and go/scanner.ErrorList, which is the pattern the teacher package reuses
// wholesale for its own scanner and resolver error lists.
package diag

import (
	"fmt"
	"sort"

	"github.com/ecl-lang/eclc/lang/token"
)

// Kind classifies an Error per spec.md §7.
type Kind int

const (
	// IO covers failures reading source or grammar files. The compiler core
	// never performs this I/O itself (spec.md §1 names it a collaborator),
	// but the Kind exists so callers that do read files can report failures
	// through the same error shape.
	IO Kind = iota
	// Grammar covers malformed rule files, malformed AstDef strings, unknown
	// AstDef commands, and resolver arity mismatches.
	Grammar
	// Simple covers user-visible semantic and syntax errors: lex errors,
	// parse errors, type mismatches, unresolved identifiers, unresolved
	// opcodes, duplicate locals, and the like.
	Simple
	// BackEnd covers invariants that a prior pass should have established
	// but didn't (e.g. an untyped expression reaching emission).
	BackEnd
	// Internal covers defensive, "should never happen" conditions: a
	// well-formed parse tree shaped in a way no resolver expects.
	Internal
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "io error"
	case Grammar:
		return "grammar error"
	case Simple:
		return "error"
	case BackEnd:
		return "internal error (back-end invariant violated)"
	case Internal:
		return "internal compiler error"
	default:
		return "error"
	}
}

// Error is a single diagnostic, anchored to a source Position where one is
// available (synthesized nodes may carry a zero-width Position).
type Error struct {
	Kind Kind
	Pos  token.Position
	Msg  string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// List is an accumulating list of Errors, implementing the error interface
// just like go/scanner.ErrorList so it can be returned directly as the
// error result of a pass, following every pass's "accumulate, then return
// Err() once" idiom.
type List []*Error

// Add appends a new Error of the given kind to the list.
func (l *List) Add(kind Kind, pos token.Position, format string, args ...any) {
	*l = append(*l, &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// Sort orders the list by filename, then line, then column, so that
// diagnostics are reported in source order regardless of the order passes
// discovered them in.
func (l List) Sort() {
	sort.Slice(l, func(i, j int) bool {
		a, b := l[i].Pos, l[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.ColStart < b.ColStart
	})
}

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns nil if the list is empty, the sole *Error if it has exactly
// one element, or the List itself (as an error) otherwise. Unlike
// go/scanner.ErrorList.Err, a one-element list collapses to its *Error.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	if len(l) == 1 {
		return l[0]
	}
	return l
}
