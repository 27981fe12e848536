package main

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Object is the tagged runtime value: nil, boolean, decimal number, string,
// callable (native or user function), class, or instance.
type Object interface {
	String() string
}

type LoxNil struct{}

func NewNil() Object          { return LoxNil{} }
func (LoxNil) String() string { return "nil" }

type LoxBool struct{ Value bool }

func NewBool(b bool) Object { return LoxBool{Value: b} }
func (b LoxBool) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

type LoxNumber struct{ Value decimal.Decimal }

func NewNumber(d decimal.Decimal) Object { return LoxNumber{Value: d} }
func (n LoxNumber) String() string       { return n.Value.String() }

type LoxString struct{ Value string }

func NewString(s string) Object    { return LoxString{Value: s} }
func (s LoxString) String() string { return s.Value }

// --- type inspection helpers ---

func asNumber(obj Object) (decimal.Decimal, bool) {
	n, ok := obj.(LoxNumber)
	if !ok {
		return decimal.Decimal{}, false
	}
	return n.Value, true
}

func asString(obj Object) (string, bool) {
	s, ok := obj.(LoxString)
	if !ok {
		return "", false
	}
	return s.Value, true
}

func asBool(obj Object) (bool, bool) {
	b, ok := obj.(LoxBool)
	if !ok {
		return false, false
	}
	return b.Value, true
}

func isNil(obj Object) bool {
	_, ok := obj.(LoxNil)
	return ok
}

// isTruthy: only nil and false are falsy (spec.md §4.5).
func isTruthy(obj Object) bool {
	switch v := obj.(type) {
	case LoxNil:
		return false
	case LoxBool:
		return v.Value
	default:
		return true
	}
}

// valuesEqual never raises: cross-type comparisons are false, nil==nil is
// true (spec.md §4.5 / §8).
func valuesEqual(a, b Object) bool {
	if isNil(a) && isNil(b) {
		return true
	}
	if isNil(a) || isNil(b) {
		return false
	}
	if an, ok := asNumber(a); ok {
		if bn, ok := asNumber(b); ok {
			return an.Equal(bn)
		}
		return false
	}
	if as, ok := asString(a); ok {
		if bs, ok := asString(b); ok {
			return as == bs
		}
		return false
	}
	if ab, ok := asBool(a); ok {
		if bb, ok := asBool(b); ok {
			return ab == bb
		}
		return false
	}
	return a == b
}

// typeName is used by the `type` native and is otherwise only descriptive.
func typeName(obj Object) string {
	switch obj.(type) {
	case LoxNil:
		return "nil"
	case LoxBool:
		return "boolean"
	case LoxNumber:
		return "number"
	case LoxString:
		return "string"
	case *LoxFunction, *NativeFunction:
		return "function"
	case *LoxClass:
		return "class"
	case *LoxInstance:
		return "instance"
	default:
		return fmt.Sprintf("%T", obj)
	}
}
