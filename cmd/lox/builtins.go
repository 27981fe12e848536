package main

import (
	"time"

	"github.com/shopspring/decimal"
)

// installBuiltins preloads globals with the native functions every Lox
// program can call without declaring them (spec.md §6's native table).
func installBuiltins(globals *Environment) {
	globals.Define("clock", &NativeFunction{
		Name: "clock", arity: 0,
		fn: func(interp *Interpreter, args []Object) (Object, *LoxRuntimeError) {
			seconds := float64(time.Now().UnixNano()) / 1e9
			return NewNumber(decimal.NewFromFloat(seconds)), nil
		},
	})
	globals.Define("str", &NativeFunction{
		Name: "str", arity: 1,
		fn: func(interp *Interpreter, args []Object) (Object, *LoxRuntimeError) {
			return NewString(printForm(args[0])), nil
		},
	})
	globals.Define("type", &NativeFunction{
		Name: "type", arity: 1,
		fn: func(interp *Interpreter, args []Object) (Object, *LoxRuntimeError) {
			return NewString(typeName(args[0])), nil
		},
	})
}
