package main

// Callable is anything that can appear on the left of a Call expression.
type Callable interface {
	Object
	Arity() int
	Call(interp *Interpreter, args []Object) (Object, *LoxRuntimeError)
}

// NativeFunction wraps a Go function as a Lox built-in (clock, str, type).
type NativeFunction struct {
	Name  string
	arity int
	fn    func(interp *Interpreter, args []Object) (Object, *LoxRuntimeError)
}

func (f *NativeFunction) Arity() int { return f.arity }
func (f *NativeFunction) Call(interp *Interpreter, args []Object) (Object, *LoxRuntimeError) {
	return f.fn(interp, args)
}
func (f *NativeFunction) String() string { return "<fn " + f.Name + ">" }

// LoxFunction is a user-defined function or method, closed over the
// environment active when it was declared.
type LoxFunction struct {
	decl    *FunctionStmt
	closure *Environment
	isInit  bool
}

func (f *LoxFunction) Arity() int { return len(f.decl.Params) }

func (f *LoxFunction) String() string { return "<fn " + f.decl.Name.Lexeme + ">" }

func (f *LoxFunction) Call(interp *Interpreter, args []Object) (Object, *LoxRuntimeError) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	result, err := interp.executeBlock(f.decl.Body, env)
	if err != nil {
		return nil, err
	}

	if f.isInit {
		return f.closure.GetAt(0, "this"), nil
	}
	if result.kind == execReturn {
		return result.value, nil
	}
	return NewNil(), nil
}

// bind returns a copy of f closed over a new environment where "this" is
// instance — this is what makes a method retrieved off an instance behave
// like a bound method.
func (f *LoxFunction) bind(instance *LoxInstance) *LoxFunction {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return &LoxFunction{decl: f.decl, closure: env, isInit: f.isInit}
}

// LoxClass is itself callable: calling it builds an instance and, if an
// init method exists, runs it with the call's arguments.
type LoxClass struct {
	Name       string
	Superclass *LoxClass
	Methods    map[string]*LoxFunction
}

func (c *LoxClass) String() string { return "<cls " + c.Name + ">" }

func (c *LoxClass) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *LoxClass) Call(interp *Interpreter, args []Object) (Object, *LoxRuntimeError) {
	instance := &LoxInstance{Class: c, fields: make(map[string]Object)}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *LoxClass) FindMethod(name string) *LoxFunction {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// LoxInstance holds a class reference and its own fields; fields shadow
// methods on lookup.
type LoxInstance struct {
	Class  *LoxClass
	fields map[string]Object
}

func (i *LoxInstance) String() string { return "<" + i.Class.Name + " instance>" }

func (i *LoxInstance) Get(name Token) (Object, *LoxRuntimeError) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}
	if method := i.Class.FindMethod(name.Lexeme); method != nil {
		return method.bind(i), nil
	}
	return nil, newRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
}

func (i *LoxInstance) Set(name Token, value Object) {
	i.fields[name.Lexeme] = value
}
