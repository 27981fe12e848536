package main

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// Interpreter walks the resolved AST against a lexically-scoped environment
// chain. The current environment is its only mutable ambient state; block
// execution saves and restores it around every exit path.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[NodeID]int
	out         io.Writer
}

func NewInterpreter(out io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	interp := &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[NodeID]int),
		out:         out,
	}
	installBuiltins(globals)
	return interp
}

// Resolve records the scope depth the resolver computed for expr.
func (interp *Interpreter) Resolve(expr Expr, depth int) {
	interp.locals[expr.id()] = depth
}

// Interpret runs statements in order, aborting at the first runtime error
// (spec.md §7). Control-flow signals never escape here: a stray Break/Return
// at the top level would be an interpreter bug, since the resolver rejects
// both outside their legal context before Interpret is ever called.
func (interp *Interpreter) Interpret(statements []Stmt) *LoxRuntimeError {
	for _, stmt := range statements {
		if _, err := interp.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (interp *Interpreter) execute(stmt Stmt) (execResult, *LoxRuntimeError) {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		_, err := interp.evaluate(s.Expression)
		return normalResult, err
	case *PrintStmt:
		v, err := interp.evaluate(s.Expression)
		if err != nil {
			return normalResult, err
		}
		fmt.Fprintln(interp.out, printForm(v))
		return normalResult, nil
	case *VarStmt:
		var value Object = NewNil()
		if s.Initializer != nil {
			v, err := interp.evaluate(s.Initializer)
			if err != nil {
				return normalResult, err
			}
			value = v
		}
		interp.environment.Define(s.Name.Lexeme, value)
		return normalResult, nil
	case *BlockStmt:
		return interp.executeBlock(s.Statements, NewEnvironment(interp.environment))
	case *IfStmt:
		cond, err := interp.evaluate(s.Condition)
		if err != nil {
			return normalResult, err
		}
		if isTruthy(cond) {
			return interp.execute(s.Then)
		}
		if s.Else != nil {
			return interp.execute(s.Else)
		}
		return normalResult, nil
	case *WhileStmt:
		for {
			cond, err := interp.evaluate(s.Condition)
			if err != nil {
				return normalResult, err
			}
			if !isTruthy(cond) {
				return normalResult, nil
			}
			result, err := interp.execute(s.Body)
			if err != nil {
				return normalResult, err
			}
			switch result.kind {
			case execBreak:
				return normalResult, nil
			case execReturn:
				return result, nil
			}
		}
	case *BreakStmt:
		return breakResult(), nil
	case *ReturnStmt:
		var value Object = NewNil()
		if s.Value != nil {
			v, err := interp.evaluate(s.Value)
			if err != nil {
				return normalResult, err
			}
			value = v
		}
		return returnResult(value), nil
	case *FunctionStmt:
		fn := &LoxFunction{decl: s, closure: interp.environment}
		interp.environment.Define(s.Name.Lexeme, fn)
		return normalResult, nil
	case *ClassStmt:
		return normalResult, interp.executeClass(s)
	default:
		panic(fmt.Sprintf("unreachable: unknown statement type %T", stmt))
	}
}

// executeBlock runs statements against environment, restoring the previous
// environment on every exit path — normal completion, a propagating
// control-flow signal, or a runtime error.
func (interp *Interpreter) executeBlock(statements []Stmt, environment *Environment) (execResult, *LoxRuntimeError) {
	previous := interp.environment
	interp.environment = environment
	defer func() { interp.environment = previous }()

	for _, stmt := range statements {
		result, err := interp.execute(stmt)
		if err != nil {
			return normalResult, err
		}
		if result.kind != execNormal {
			return result, nil
		}
	}
	return normalResult, nil
}

func (interp *Interpreter) executeClass(stmt *ClassStmt) *LoxRuntimeError {
	var superclass *LoxClass
	if stmt.Superclass != nil {
		v, err := interp.evaluate(stmt.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*LoxClass)
		if !ok {
			return newRuntimeError(stmt.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	interp.environment.Define(stmt.Name.Lexeme, NewNil())

	env := interp.environment
	if superclass != nil {
		env = NewEnvironment(interp.environment)
		env.Define("super", superclass)
	}

	methods := make(map[string]*LoxFunction, len(stmt.Methods))
	for _, m := range stmt.Methods {
		methods[m.Name.Lexeme] = &LoxFunction{decl: m, closure: env, isInit: m.IsInit()}
	}

	class := &LoxClass{Name: stmt.Name.Lexeme, Superclass: superclass, Methods: methods}

	return interp.environment.Assign(stmt.Name, class)
}

func (interp *Interpreter) evaluate(expr Expr) (Object, *LoxRuntimeError) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *GroupingExpr:
		return interp.evaluate(e.Inner)
	case *UnaryExpr:
		return interp.evalUnary(e)
	case *BinaryExpr:
		return interp.evalBinary(e)
	case *LogicalExpr:
		return interp.evalLogical(e)
	case *VariableExpr:
		return interp.lookUpVariable(e.Name, e)
	case *AssignExpr:
		return interp.evalAssign(e)
	case *CallExpr:
		return interp.evalCall(e)
	case *GetExpr:
		return interp.evalGet(e)
	case *SetExpr:
		return interp.evalSet(e)
	case *ThisExpr:
		return interp.lookUpVariable(e.Keyword, e)
	case *SuperExpr:
		return interp.evalSuper(e)
	default:
		panic(fmt.Sprintf("unreachable: unknown expression type %T", expr))
	}
}

func (interp *Interpreter) evalUnary(e *UnaryExpr) (Object, *LoxRuntimeError) {
	right, err := interp.evaluate(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op.Type {
	case BANG:
		return NewBool(!isTruthy(right)), nil
	case MINUS:
		n, ok := asNumber(right)
		if !ok {
			return nil, newRuntimeError(e.Op, "Operand must be a number.")
		}
		return NewNumber(n.Neg()), nil
	default:
		panic("unreachable: unary operator " + e.Op.Type.String())
	}
}

func (interp *Interpreter) evalLogical(e *LogicalExpr) (Object, *LoxRuntimeError) {
	left, err := interp.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Type == OR {
		if isTruthy(left) {
			return left, nil
		}
	} else { // AND
		if !isTruthy(left) {
			return left, nil
		}
	}
	return interp.evaluate(e.Right)
}

func (interp *Interpreter) evalBinary(e *BinaryExpr) (Object, *LoxRuntimeError) {
	left, err := interp.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := interp.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case PLUS:
		if ls, lok := asString(left); lok {
			if rs, rok := asString(right); rok {
				return NewString(ls + rs), nil
			}
		}
		if ln, lok := asNumber(left); lok {
			if rn, rok := asNumber(right); rok {
				return NewNumber(ln.Add(rn)), nil
			}
		}
		return nil, newRuntimeError(e.Op, "Operands must be two numbers or two strings.")
	case MINUS:
		l, r, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return NewNumber(l.Sub(r)), nil
	case STAR:
		l, r, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return NewNumber(l.Mul(r)), nil
	case SLASH:
		l, r, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		if r.IsZero() {
			return nil, newRuntimeError(e.Op, "Division by zero.")
		}
		return NewNumber(l.DivRound(r, decimalPrecision)), nil
	case GREATER:
		l, r, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return NewBool(l.GreaterThan(r)), nil
	case GREATER_EQUAL:
		l, r, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return NewBool(l.GreaterThanOrEqual(r)), nil
	case LESS:
		l, r, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return NewBool(l.LessThan(r)), nil
	case LESS_EQUAL:
		l, r, err := interp.numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return NewBool(l.LessThanOrEqual(r)), nil
	case EQUAL_EQUAL:
		return NewBool(valuesEqual(left, right)), nil
	case BANG_EQUAL:
		return NewBool(!valuesEqual(left, right)), nil
	default:
		panic("unreachable: binary operator " + e.Op.Type.String())
	}
}

// decimalPrecision is the fixed division scale in decimal places (§9 Open
// Question: the same value as shopspring/decimal's default DivisionPrecision).
const decimalPrecision = 16

func (interp *Interpreter) numberOperands(op Token, left, right Object) (decimal.Decimal, decimal.Decimal, *LoxRuntimeError) {
	l, lok := asNumber(left)
	r, rok := asNumber(right)
	if !lok || !rok {
		return decimal.Decimal{}, decimal.Decimal{}, newRuntimeError(op, "Operands must be numbers.")
	}
	return l, r, nil
}

func (interp *Interpreter) evalAssign(e *AssignExpr) (Object, *LoxRuntimeError) {
	value, err := interp.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := interp.locals[e.id()]; ok {
		interp.environment.AssignAt(depth, e.Name, value)
	} else if err := interp.globals.Assign(e.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (interp *Interpreter) evalCall(e *CallExpr) (Object, *LoxRuntimeError) {
	callee, err := interp.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Object, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := interp.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, newRuntimeError(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(interp, args)
}

func (interp *Interpreter) evalGet(e *GetExpr) (Object, *LoxRuntimeError) {
	obj, err := interp.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*LoxInstance)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have properties.")
	}
	return instance.Get(e.Name)
}

func (interp *Interpreter) evalSet(e *SetExpr) (Object, *LoxRuntimeError) {
	obj, err := interp.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*LoxInstance)
	if !ok {
		return nil, newRuntimeError(e.Name, "Only instances have properties.")
	}
	value, err := interp.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(e.Name, value)
	return value, nil
}

func (interp *Interpreter) evalSuper(e *SuperExpr) (Object, *LoxRuntimeError) {
	depth := interp.locals[e.id()]
	superclass := interp.environment.GetAt(depth, "super").(*LoxClass)
	instance := interp.environment.GetAt(depth-1, "this").(*LoxInstance)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, newRuntimeError(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.bind(instance), nil
}

func (interp *Interpreter) lookUpVariable(name Token, expr Expr) (Object, *LoxRuntimeError) {
	if depth, ok := interp.locals[expr.id()]; ok {
		return interp.environment.GetAt(depth, name.Lexeme), nil
	}
	return interp.globals.Get(name)
}

// printForm renders a value the way `print` and the str() builtin do
// (spec.md §6): nil/bool/number/string literally, functions/classes/
// instances via their angle-bracket forms.
func printForm(v Object) string {
	return v.String()
}
