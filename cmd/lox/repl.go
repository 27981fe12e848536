package main

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Repl is the interactive prompt (spec.md §6): one line in, evaluated
// against a single session-long interpreter, errors reported but never
// fatal. No exit code is produced here — only os.Exit from running a
// script carries one, since a REPL session never "fails".
type Repl struct {
	prompt string
}

func NewRepl() *Repl {
	return &Repl{prompt: "> "}
}

func (r *Repl) Run(out, errOut io.Writer) error {
	rl, err := readline.New(r.prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	errs := NewErrorReporter(errOut)
	interp := NewInterpreter(out)

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on Ctrl+D, readline.ErrInterrupt on Ctrl+C
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rl.SaveHistory(line)

		errs.Reset()
		runSource(line, errs, interp)
	}
}

// runSource scans, parses, resolves and interprets one chunk of source
// against errs/interp, reporting through errs as it goes (spec.md §7). The
// caller decides what to do with errs' accumulated state afterward.
func runSource(source string, errs *ErrorReporter, interp *Interpreter) {
	scanner := NewScanner(source, errs)
	tokens := scanner.ScanTokens()

	parser := NewParser(tokens, errs)
	statements := parser.Parse()

	if errs.HadStaticError() {
		return
	}

	resolver := NewResolver(interp, errs)
	resolver.Resolve(statements)

	if errs.HadStaticError() {
		return
	}

	if err := interp.Interpret(statements); err != nil {
		errs.RuntimeError(err)
	}
}
