package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ecl-lang/eclc/eclc"
)

type tokenizeCmd struct{}

func (*tokenizeCmd) Name() string             { return "tokenize" }
func (*tokenizeCmd) Synopsis() string         { return "Lex a source file and print its token stream" }
func (*tokenizeCmd) Usage() string            { return "eclc tokenize <file>\n" }
func (*tokenizeCmd) SetFlags(f *flag.FlagSet) {}

func (*tokenizeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "tokenize: expected exactly one file argument")
		return subcommands.ExitUsageError
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokenize: %v\n", err)
		return subcommands.ExitFailure
	}
	toks, err := eclc.Tokenize(args[0], src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokenize: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, t := range toks {
		fmt.Printf("%s %-12s %q\n", t.Pos, t.Kind, t.Text)
	}
	return subcommands.ExitSuccess
}
