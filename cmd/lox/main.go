package main

import (
	"fmt"
	"os"
)

// main implements the closed CLI contract of spec.md §6: no arguments opens
// the REPL, one argument runs that file as a script, anything else is
// usage error. Exit codes follow §7: 0 clean, 65 static error, 70 runtime
// error, 1 CLI misuse.
func main() {
	switch len(os.Args) {
	case 1:
		if err := NewRepl().Run(os.Stdout, os.Stderr); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case 2:
		os.Exit(runFile(os.Args[1]))
	default:
		fmt.Fprintln(os.Stderr, "Usage: lox [script]")
		os.Exit(1)
	}
}

func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	errs := NewErrorReporter(os.Stderr)
	interp := NewInterpreter(os.Stdout)
	runSource(string(source), errs, interp)
	return errs.ExitCode()
}
