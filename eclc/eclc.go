// Package eclc is the top-level facade (SPEC_FULL.md §2.3, §5): it wires
// the lexer, grammar, parser, astdef resolver registry, subroutine
// processor, and emitter into a single Compile entry point, the same role
// the teacher's internal/maincmd plays for its own parse/resolve
// pipeline, minus the REPL- and file-reading concerns that package's
// caller owns instead.
package eclc

import (
	"sync"

	"github.com/ecl-lang/eclc/lang/ast"
	"github.com/ecl-lang/eclc/lang/astdef"
	"github.com/ecl-lang/eclc/lang/catalog"
	"github.com/ecl-lang/eclc/lang/compiler"
	"github.com/ecl-lang/eclc/lang/diag"
	"github.com/ecl-lang/eclc/lang/emitter"
	"github.com/ecl-lang/eclc/lang/grammar"
	"github.com/ecl-lang/eclc/lang/lexer"
	"github.com/ecl-lang/eclc/lang/parser"
	"github.com/ecl-lang/eclc/lang/token"
)

var (
	compiledOnce sync.Once
	compiledGram *grammar.Compiled
	compiledErr  error
	registryOnce sync.Once
	registry     *astdef.Registry
	catalogOnce  sync.Once
	cat          *catalog.Catalog
)

// Grammar lazily compiles the bundled grammar source once per process
// (spec.md §5: "the static instruction catalog and built-in identifier
// table, initialized once, idempotent, pure data" — the compiled grammar
// and its FIRST/FOLLOW tables are the same kind of pure, reusable data).
func Grammar() (*grammar.Compiled, error) {
	compiledOnce.Do(func() {
		g, err := grammar.Load(grammarSource)
		if err != nil {
			compiledErr = err
			return
		}
		compiledGram, compiledErr = grammar.Compile(g)
	})
	return compiledGram, compiledErr
}

// Registry lazily builds the lang/ast resolver registry once per process.
func Registry() *astdef.Registry {
	registryOnce.Do(func() { registry = ast.NewRegistry() })
	return registry
}

// Catalog lazily builds the instruction catalog once per process.
func Catalog() *catalog.Catalog {
	catalogOnce.Do(func() { cat = catalog.New(catalog.Defs) })
	return cat
}

// Tokenize lexes src under filename, returning the raw token stream (the
// `tokenize` CLI subcommand's collaborator).
func Tokenize(filename string, src []byte) ([]token.Token, error) {
	g, err := Grammar()
	if err != nil {
		return nil, err
	}
	lx := lexer.New(filename, src, g.Grammar.LexerRules())
	return lx.Tokenize()
}

// Parse lexes and parses src into a concrete parse tree, without
// resolving it against the AstDef registry (the `parse` CLI subcommand's
// collaborator).
func Parse(filename string, src []byte) (*parser.Tree, error) {
	g, err := Grammar()
	if err != nil {
		return nil, err
	}
	toks, err := Tokenize(filename, src)
	if err != nil {
		return nil, err
	}
	p := parser.New(g.Table, toks)
	return p.Parse(g.Grammar.Start)
}

// ParseProgram parses src and resolves the tree against lang/ast's
// registry, returning the typed *ast.Program.
func ParseProgram(filename string, src []byte) (*ast.Program, error) {
	tree, err := Parse(filename, src)
	if err != nil {
		return nil, err
	}
	node, err := astdef.Resolve(tree, nil, Registry())
	if err != nil {
		return nil, err
	}
	prog, ok := node.(*ast.Program)
	if !ok {
		return nil, &diag.Error{Kind: diag.Internal, Msg: "astdef resolution did not produce a Program"}
	}
	return prog, nil
}

// Compile runs the full pipeline (spec.md §1, components A-J) over src
// and returns the serialized ECL binary blob.
func Compile(filename string, src []byte) ([]byte, error) {
	prog, err := ParseProgram(filename, src)
	if err != nil {
		return nil, err
	}
	p, err := compiler.Program(prog, Catalog())
	if err != nil {
		return nil, err
	}
	return emitter.Emit(p)
}
