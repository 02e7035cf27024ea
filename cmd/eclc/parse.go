package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/ecl-lang/eclc/eclc"
	"github.com/ecl-lang/eclc/lang/parser"
)

type parseCmd struct{}

func (*parseCmd) Name() string             { return "parse" }
func (*parseCmd) Synopsis() string         { return "Parse a source file and print its concrete parse tree" }
func (*parseCmd) Usage() string            { return "eclc parse <file>\n" }
func (*parseCmd) SetFlags(f *flag.FlagSet) {}

func (*parseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "parse: expected exactly one file argument")
		return subcommands.ExitUsageError
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse: %v\n", err)
		return subcommands.ExitFailure
	}
	tree, err := eclc.Parse(args[0], src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse: %v\n", err)
		return subcommands.ExitFailure
	}
	printTree(tree, 0)
	return subcommands.ExitSuccess
}

func printTree(t *parser.Tree, depth int) {
	indent := strings.Repeat("  ", depth)
	if t.IsTerminal() {
		fmt.Printf("%s%s %q\n", indent, t.Tok.Kind, t.Tok.Text)
		return
	}
	fmt.Printf("%s%s\n", indent, t.Name)
	for _, c := range t.Children {
		printTree(c, depth+1)
	}
}
