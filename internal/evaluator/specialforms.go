package evaluator

import (
	"github.com/fuzy112/golisp/internal/errs"
	"github.com/fuzy112/golisp/internal/runtime"
)

// Special form magic values for the shared let/let*/letrec handler (spec
// §4.4: "lets one handler serve several closely related forms").
const (
	magicLet = iota
	magicLetStar
	magicLetrec
)

// RegisterSpecialForms installs every special form named in spec §4.4
// into global, each as a Syntax value (spec §3.5).
func RegisterSpecialForms(rt *runtime.Runtime, global *runtime.Environment) {
	define := func(name string, magic int, handler runtime.SyntaxFunc) {
		sym := rt.Symbols.Intern(name)
		syn := &runtime.Syntax{Name: sym.Name, Magic: magic, Handler: handler}
		if err := global.Define(rt.Manager, sym, syn); err != nil {
			panic(err)
		}
	}

	define("quote", 0, quoteForm)
	define("if", 0, ifForm)
	define("cond", 0, condForm)
	define("define", 0, defineForm)
	define("set!", 0, setForm)
	define("lambda", 0, lambdaForm)
	define("named-lambda", 0, namedLambdaForm)
	define("let", magicLet, letForm)
	define("let*", magicLetStar, letForm)
	define("letrec", magicLetrec, letForm)
	define("begin", 0, beginForm)
}

func illFormed(name string) *errs.Error {
	return errs.New(errs.KindType, errs.ErrMsgIllFormedForm, name)
}

func quoteForm(rt *runtime.Runtime, _ *runtime.Environment, args runtime.Value, _ int, _ []runtime.Value) runtime.Value {
	forms, ok := runtime.ListToSlice(args)
	if !ok || len(forms) != 1 {
		return rt.Raise(illFormed("quote"))
	}
	return forms[0]
}

func ifForm(rt *runtime.Runtime, env *runtime.Environment, args runtime.Value, _ int, _ []runtime.Value) runtime.Value {
	forms, ok := runtime.ListToSlice(args)
	if !ok || len(forms) < 2 || len(forms) > 3 {
		return rt.Raise(illFormed("if"))
	}
	cond := Eval(rt, env, forms[0])
	if runtime.IsException(cond) {
		return cond
	}
	if runtime.Truthy(cond) {
		return Eval(rt, env, forms[1])
	}
	if len(forms) == 3 {
		return Eval(rt, env, forms[2])
	}
	return runtime.Nil
}

func isElseSymbol(v runtime.Value) bool {
	sym, ok := v.(*runtime.Symbol)
	return ok && sym.Name == "ELSE"
}

func condForm(rt *runtime.Runtime, env *runtime.Environment, args runtime.Value, _ int, _ []runtime.Value) runtime.Value {
	clauses, ok := runtime.ListToSlice(args)
	if !ok || len(clauses) == 0 {
		return rt.Raise(illFormed("cond"))
	}
	for _, clause := range clauses {
		parts, ok := runtime.ListToSlice(clause)
		if !ok || len(parts) == 0 {
			return rt.Raise(illFormed("cond"))
		}
		test := parts[0]
		if isElseSymbol(test) {
			return evalBody(rt, env, parts[1:])
		}
		result := Eval(rt, env, test)
		if runtime.IsException(result) {
			return result
		}
		if runtime.Truthy(result) {
			return evalBody(rt, env, parts[1:])
		}
	}
	return runtime.Nil
}

func defineForm(rt *runtime.Runtime, env *runtime.Environment, args runtime.Value, _ int, _ []runtime.Value) runtime.Value {
	parts, ok := runtime.ListToSlice(args)
	if !ok || len(parts) < 2 {
		return rt.Raise(illFormed("define"))
	}

	switch header := parts[0].(type) {
	case *runtime.Symbol:
		if len(parts) != 2 {
			return rt.Raise(illFormed("define"))
		}
		val := Eval(rt, env, parts[1])
		if runtime.IsException(val) {
			return val
		}
		if err := env.Define(rt.Manager, header, val); err != nil {
			return rt.Raise(err)
		}
		return runtime.Nil

	case *runtime.Pair:
		// (define (name . params) body...), sugar for binding name to a
		// named-lambda over params and body (spec §4.4).
		name, ok := header.Car.(*runtime.Symbol)
		if !ok {
			return rt.Raise(illFormed("define"))
		}
		spec, err := parseParamSpec(header.Cdr)
		if err != nil {
			return rt.Raise(err)
		}
		proc := runtime.NewInterpretedProcedure(rt.Manager, name, spec, parts[1:], env)
		if err := env.Define(rt.Manager, name, proc); err != nil {
			return rt.Raise(err)
		}
		return runtime.Nil

	default:
		return rt.Raise(illFormed("define"))
	}
}

func setForm(rt *runtime.Runtime, env *runtime.Environment, args runtime.Value, _ int, _ []runtime.Value) runtime.Value {
	parts, ok := runtime.ListToSlice(args)
	if !ok || len(parts) != 2 {
		return rt.Raise(illFormed("set!"))
	}
	sym, ok := parts[0].(*runtime.Symbol)
	if !ok {
		return rt.Raise(illFormed("set!"))
	}
	val := Eval(rt, env, parts[1])
	if runtime.IsException(val) {
		return val
	}
	if err := env.Assign(rt.Manager, sym, val); err != nil {
		return rt.Raise(err)
	}
	// The tracing-collector variant of the source returns a distinct
	// "void"; the refcounted variant returns Nil. This implementation
	// picks Nil (spec §9: "the safer default").
	return runtime.Nil
}

func lambdaForm(rt *runtime.Runtime, env *runtime.Environment, args runtime.Value, _ int, _ []runtime.Value) runtime.Value {
	rest, ok := args.(*runtime.Pair)
	if !ok {
		return rt.Raise(illFormed("lambda"))
	}
	spec, err := parseParamSpec(rest.Car)
	if err != nil {
		return rt.Raise(err)
	}
	body, ok := runtime.ListToSlice(rest.Cdr)
	if !ok {
		return rt.Raise(illFormed("lambda"))
	}
	return runtime.NewInterpretedProcedure(rt.Manager, nil, spec, body, env)
}

func namedLambdaForm(rt *runtime.Runtime, env *runtime.Environment, args runtime.Value, _ int, _ []runtime.Value) runtime.Value {
	rest, ok := args.(*runtime.Pair)
	if !ok {
		return rt.Raise(illFormed("named-lambda"))
	}
	header, ok := rest.Car.(*runtime.Pair)
	if !ok {
		return rt.Raise(illFormed("named-lambda"))
	}
	name, ok := header.Car.(*runtime.Symbol)
	if !ok {
		return rt.Raise(illFormed("named-lambda"))
	}
	spec, err := parseParamSpec(header.Cdr)
	if err != nil {
		return rt.Raise(err)
	}
	body, ok := runtime.ListToSlice(rest.Cdr)
	if !ok {
		return rt.Raise(illFormed("named-lambda"))
	}
	return runtime.NewInterpretedProcedure(rt.Manager, name, spec, body, env)
}

// letForm serves let, let* and letrec, distinguished by magic. let
// evaluates every init in the enclosing env before binding; let* and
// letrec evaluate inits in the new env (letrec pre-binds every name to
// Nil first, so all bindings are visible to every init).
func letForm(rt *runtime.Runtime, env *runtime.Environment, args runtime.Value, magic int, _ []runtime.Value) runtime.Value {
	rest, ok := args.(*runtime.Pair)
	if !ok {
		return rt.Raise(illFormed("let"))
	}
	bindingForms, ok := runtime.ListToSlice(rest.Car)
	if !ok {
		return rt.Raise(illFormed("let"))
	}
	body, ok := runtime.ListToSlice(rest.Cdr)
	if !ok {
		return rt.Raise(illFormed("let"))
	}

	type binding struct {
		sym  *runtime.Symbol
		expr runtime.Value
	}
	bindings := make([]binding, 0, len(bindingForms))
	for _, bf := range bindingForms {
		parts, ok := runtime.ListToSlice(bf)
		if !ok || len(parts) != 2 {
			return rt.Raise(illFormed("let"))
		}
		sym, ok := parts[0].(*runtime.Symbol)
		if !ok {
			return rt.Raise(illFormed("let"))
		}
		bindings = append(bindings, binding{sym: sym, expr: parts[1]})
	}

	switch magic {
	case magicLetrec:
		child := runtime.NewEnclosedEnvironment(rt.Manager, "letrec", env)
		rt.Manager.IncRef(child)
		defer rt.Manager.DecRef(child)
		for _, b := range bindings {
			if err := child.Define(rt.Manager, b.sym, runtime.Nil); err != nil {
				return rt.Raise(err)
			}
		}
		for _, b := range bindings {
			val := Eval(rt, child, b.expr)
			if runtime.IsException(val) {
				return val
			}
			if err := child.Assign(rt.Manager, b.sym, val); err != nil {
				return rt.Raise(err)
			}
		}
		return evalBody(rt, child, body)

	case magicLetStar:
		child := runtime.NewEnclosedEnvironment(rt.Manager, "let*", env)
		rt.Manager.IncRef(child)
		defer rt.Manager.DecRef(child)
		for _, b := range bindings {
			val := Eval(rt, child, b.expr)
			if runtime.IsException(val) {
				return val
			}
			if err := child.Define(rt.Manager, b.sym, val); err != nil {
				return rt.Raise(err)
			}
		}
		return evalBody(rt, child, body)

	default: // magicLet
		values := make([]runtime.Value, 0, len(bindings))
		for _, b := range bindings {
			val := Eval(rt, env, b.expr)
			if runtime.IsException(val) {
				for _, v := range values {
					runtime.ReleaseValue(rt.Manager, v)
				}
				return val
			}
			runtime.RetainValue(rt.Manager, val)
			values = append(values, val)
		}
		child := runtime.NewEnclosedEnvironment(rt.Manager, "let", env)
		rt.Manager.IncRef(child)
		defer rt.Manager.DecRef(child)
		for i, b := range bindings {
			if err := child.Define(rt.Manager, b.sym, values[i]); err != nil {
				runtime.ReleaseValue(rt.Manager, values[i])
				return rt.Raise(err)
			}
			runtime.ReleaseValue(rt.Manager, values[i])
		}
		return evalBody(rt, child, body)
	}
}

func beginForm(rt *runtime.Runtime, env *runtime.Environment, args runtime.Value, _ int, _ []runtime.Value) runtime.Value {
	forms, ok := runtime.ListToSlice(args)
	if !ok {
		return rt.Raise(illFormed("begin"))
	}
	return evalBody(rt, env, forms)
}

// parseParamSpec reads a lambda parameter list (spec §3.4): the empty
// list, a proper list of distinct symbols, an improper list ending in a
// rest symbol, or a bare rest symbol.
func parseParamSpec(v runtime.Value) (runtime.ParamSpec, *errs.Error) {
	var names []string
	cur := v
	for {
		switch c := cur.(type) {
		case runtime.NilValue:
			return runtime.ParamSpec{Names: names}, nil
		case *runtime.Symbol:
			return runtime.ParamSpec{Names: names, RestName: c.Name, HasRest: true}, nil
		case *runtime.Pair:
			sym, ok := c.Car.(*runtime.Symbol)
			if !ok {
				return runtime.ParamSpec{}, illFormed("lambda parameter list")
			}
			names = append(names, sym.Name)
			cur = c.Cdr
		default:
			return runtime.ParamSpec{}, illFormed("lambda parameter list")
		}
	}
}
