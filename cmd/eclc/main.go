// Command eclc is the compiler's CLI collaborator (SPEC_FULL.md §2.4): a
// thin google/subcommands dispatcher over eclc.Tokenize/Parse/Compile.
// Flag parsing, colorized diagnostics and hex-dump pretty printing are
// out-of-scope collaborators per spec.md §1 — this exists only to prove
// the pipeline wires together.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&tokenizeCmd{}, "")
	subcommands.Register(&parseCmd{}, "")
	subcommands.Register(&compileCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
