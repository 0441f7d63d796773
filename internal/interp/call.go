package interp

import (
	"github.com/nyjc-computing/pseudo9608/internal/ast"
	cerrors "github.com/nyjc-computing/pseudo9608/internal/errors"
	"github.com/nyjc-computing/pseudo9608/internal/token"
	"github.com/nyjc-computing/pseudo9608/internal/types"
)

// call dispatches a CALL statement or function-call expression: a
// built-in, or a user PROCEDURE/FUNCTION activated in a fresh frame
// parented on the global frame.
func (i *Interpreter) call(env *Environment, name string, args []ast.Expr, pos token.Position) (Value, *cerrors.Diagnostic) {
	if fn, ok := builtinImpls[name]; ok {
		return i.callBuiltin(env, fn, args, pos)
	}

	c, ok := i.callables[name]
	if !ok {
		return nil, i.runtimeErrorf(pos, "undefined callable: %s", name)
	}

	frame := NewEnclosedEnvironment(i.global)
	for n, p := range c.decl.Params {
		arg := args[n]
		if p.Mode == types.ByRef {
			v, ref, goErr := i.evaluateLValue(env, arg)
			if goErr != nil {
				return nil, i.runtimeErrorf(arg.Position(), "%s", goErr)
			}
			_ = v
			frame.DefineRef(p.Name, ref)
			continue
		}
		v, err := i.eval(env, arg)
		if err != nil {
			return nil, err
		}
		frame.Define(p.Name, widen(v.Clone(), p.Type))
	}

	i.callableStack = append(i.callableStack, name)
	sig, err := i.execBlock(frame, c.decl.Body)
	i.callableStack = i.callableStack[:len(i.callableStack)-1]
	if err != nil {
		return nil, err
	}
	if !c.isFunc {
		return nil, nil
	}
	if sig == nil || !sig.isReturn {
		return nil, i.runtimeErrorf(pos, "function %q did not return a value", name)
	}
	return widen(sig.value, *c.decl.ReturnType), nil
}

func (i *Interpreter) callBuiltin(env *Environment, fn builtinFunc, args []ast.Expr, pos token.Position) (Value, *cerrors.Diagnostic) {
	vals := make([]Value, len(args))
	for n, a := range args {
		v, err := i.eval(env, a)
		if err != nil {
			return nil, err
		}
		vals[n] = v
	}
	result, goErr := fn(i, vals)
	if goErr != nil {
		return nil, i.runtimeErrorf(pos, "%s", goErr)
	}
	return result, nil
}
