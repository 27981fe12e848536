package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runProgram scans, parses, resolves and interprets src against a fresh
// interpreter, returning the accumulated stdout and the error reporter so
// callers can assert on static or runtime failures.
func runProgram(t *testing.T, src string) (string, *ErrorReporter) {
	t.Helper()
	out := &bytes.Buffer{}
	errs := NewErrorReporter(&bytes.Buffer{})
	interp := NewInterpreter(out)
	runSource(src, errs, interp)
	return out.String(), errs
}

func TestEndToEndArithmetic(t *testing.T) {
	out, errs := runProgram(t, `print 1 + 2;`)
	require.False(t, errs.HadStaticError())
	require.False(t, errs.HadRuntimeError())
	assert.Equal(t, "3\n", out)
}

func TestEndToEndStringConcatenation(t *testing.T) {
	out, _ := runProgram(t, `print "a" + "b";`)
	assert.Equal(t, "ab\n", out)
}

func TestEndToEndBlockShadowing(t *testing.T) {
	out, _ := runProgram(t, `var a = 1; { var a = 2; print a; } print a;`)
	assert.Equal(t, "2\n1\n", out)
}

func TestEndToEndClosureCapturesByReference(t *testing.T) {
	out, _ := runProgram(t, `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				print i;
			}
			return count;
		}
		var c = makeCounter();
		c();
		c();
	`)
	assert.Equal(t, "1\n2\n", out)
}

func TestEndToEndClassMethod(t *testing.T) {
	out, _ := runProgram(t, `
		class A { greet() { print "hi"; } }
		A().greet();
	`)
	assert.Equal(t, "hi\n", out)
}

func TestEndToEndInheritanceAndSuperInit(t *testing.T) {
	out, errs := runProgram(t, `
		class A { init(x) { this.x = x; } }
		class B < A { init(x) { super.init(x); this.y = x + 1; } }
		var b = B(3);
		print b.x;
		print b.y;
	`)
	require.False(t, errs.HadStaticError())
	assert.Equal(t, "3\n4\n", out)
}

func TestEndToEndDivisionByZeroIsRuntimeError(t *testing.T) {
	_, errs := runProgram(t, `print 1/0;`)
	assert.True(t, errs.HadRuntimeError())
	assert.Equal(t, 70, errs.ExitCode())
}

func TestEndToEndTopLevelReturnIsStaticError(t *testing.T) {
	_, errs := runProgram(t, `return 1;`)
	assert.True(t, errs.HadStaticError())
	assert.Equal(t, 65, errs.ExitCode())
}

func TestEndToEndInitAlwaysReturnsInstanceDespiteBareReturn(t *testing.T) {
	out, errs := runProgram(t, `
		class A {
			init() { return; }
		}
		print A();
	`)
	require.False(t, errs.HadStaticError())
	assert.Equal(t, "<A instance>\n", out)
}

func TestEndToEndTruthiness(t *testing.T) {
	out, _ := runProgram(t, `
		if (0) print "zero is truthy"; else print "zero is falsy";
		if ("") print "empty string is truthy"; else print "empty string is falsy";
		if (nil) print "nil is truthy"; else print "nil is falsy";
		if (false) print "false is truthy"; else print "false is falsy";
	`)
	assert.Equal(t, "zero is truthy\nempty string is truthy\nnil is falsy\nfalse is falsy\n", out)
}

func TestEndToEndEqualityNeverRaisesAndIsFalseAcrossTypes(t *testing.T) {
	out, errs := runProgram(t, `
		print nil == nil;
		print 1 == "1";
		print nil == false;
		print 1 == 1.0;
	`)
	require.False(t, errs.HadRuntimeError())
	assert.Equal(t, "true\nfalse\nfalse\ntrue\n", out)
}

func TestEndToEndBreakExitsNearestLoopOnly(t *testing.T) {
	out, _ := runProgram(t, `
		for (var i = 0; i < 5; i = i + 1) {
			if (i == 2) break;
			print i;
		}
		print "done";
	`)
	assert.Equal(t, "0\n1\ndone\n", out)
}

func TestEndToEndNativeBuiltins(t *testing.T) {
	out, errs := runProgram(t, `
		print str(1);
		print type(1);
		print type("s");
		print type(nil);
		print type(true);
	`)
	require.False(t, errs.HadRuntimeError())
	assert.Equal(t, "1\nnumber\nstring\nnil\nboolean\n", out)
}
