package main

// execKind is the tri-state result of running a statement: a plain
// completion, a break escaping the nearest loop, or a return carrying a
// value out of the nearest function. Modeling this as data (spec.md §9)
// means no unwinding machinery is needed for control flow that is always
// statically local by the time the resolver has run.
type execKind int

const (
	execNormal execKind = iota
	execBreak
	execReturn
)

type execResult struct {
	kind  execKind
	value Object // meaningful only when kind == execReturn
}

var normalResult = execResult{kind: execNormal}

func breakResult() execResult { return execResult{kind: execBreak} }

func returnResult(v Object) execResult { return execResult{kind: execReturn, value: v} }
