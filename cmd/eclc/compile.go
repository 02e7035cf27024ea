package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/ecl-lang/eclc/eclc"
)

type compileCmd struct {
	out string
}

func (*compileCmd) Name() string     { return "compile" }
func (*compileCmd) Synopsis() string { return "Compile a source file to a binary ECL blob" }
func (*compileCmd) Usage() string    { return "eclc compile [-o out.ecl] <file>\n" }

func (cmd *compileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.out, "o", "", "output file path (defaults to the input path with its extension replaced by .ecl)")
}

func (cmd *compileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "compile: expected exactly one file argument")
		return subcommands.ExitUsageError
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile: %v\n", err)
		return subcommands.ExitFailure
	}
	blob, err := eclc.Compile(args[0], src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile: %v\n", err)
		return subcommands.ExitFailure
	}
	outPath := cmd.out
	if outPath == "" {
		outPath = replaceExt(args[0], ".ecl")
	}
	if err := os.WriteFile(outPath, blob, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "compile: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("wrote %d bytes to %s\n", len(blob), outPath)
	return subcommands.ExitSuccess
}

func replaceExt(path, ext string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[:i] + ext
	}
	return path + ext
}
