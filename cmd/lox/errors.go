package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ErrorReporter accumulates scan/parse/resolve errors and the first runtime
// error for one `run` invocation. Scan and parse/resolve errors never abort
// their pass; a runtime error aborts the statement list being interpreted.
type ErrorReporter struct {
	out            io.Writer
	hadStaticError bool
	hadRuntime     bool
}

func NewErrorReporter(out io.Writer) *ErrorReporter {
	return &ErrorReporter{out: out}
}

func (r *ErrorReporter) ScanError(line int, message string) {
	r.report(line, "", message)
	r.hadStaticError = true
}

func (r *ErrorReporter) ParseError(tok Token, message string) {
	where := "at '" + tok.Lexeme + "'"
	if tok.Type == EOF {
		where = "at end"
	}
	r.report(tok.Line, where, message)
	r.hadStaticError = true
}

func (r *ErrorReporter) ResolveError(tok Token, message string) {
	r.ParseError(tok, message)
}

func (r *ErrorReporter) RuntimeError(err *LoxRuntimeError) {
	r.report(err.Token.Line, "", err.Message)
	r.hadRuntime = true
}

func (r *ErrorReporter) report(line int, where, message string) {
	loc := fmt.Sprintf("[line %d]", line)
	if where != "" {
		where = " " + where
	}
	color.New(color.FgRed).Fprintf(r.out, "%s Error%s: %s\n", loc, where, message)
}

func (r *ErrorReporter) HadStaticError() bool  { return r.hadStaticError }
func (r *ErrorReporter) HadRuntimeError() bool { return r.hadRuntime }

func (r *ErrorReporter) Reset() {
	r.hadStaticError = false
	r.hadRuntime = false
}

// ExitCode mirrors spec.md §7's table: 65 for compile-time errors, 70 for
// runtime errors, 0 otherwise. Static errors take priority since the
// evaluator never runs when they occurred.
func (r *ErrorReporter) ExitCode() int {
	switch {
	case r.hadStaticError:
		return 65
	case r.hadRuntime:
		return 70
	default:
		return 0
	}
}

// LoxRuntimeError carries the token that caused it, for uniform reporting.
type LoxRuntimeError struct {
	Token   Token
	Message string
}

func (e *LoxRuntimeError) Error() string { return e.Message }

func newRuntimeError(tok Token, format string, args ...any) *LoxRuntimeError {
	return &LoxRuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}
