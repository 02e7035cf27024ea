package grammar

import (
	"fmt"
	"io"

	"golang.org/x/exp/ebnf"
)

// VerifyEBNF is a sanity-check entry point: it reads an EBNF mirror of a
// rule file (kept by convention alongside the grammar's ".rules" source,
// for documentation and tooling) and verifies it is well-formed and that
// start names a production, using the same golang.org/x/exp/ebnf package
// the teacher repository uses to self-check its own grammar files. It does
// not feed back into Compile — it is a documentation/CI aid, not part of
// the compilation pipeline.
func VerifyEBNF(r io.Reader, filename, start string) error {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return fmt.Errorf("ebnf: %w", err)
	}
	if err := ebnf.Verify(g, start); err != nil {
		return fmt.Errorf("ebnf: %w", err)
	}
	return nil
}
