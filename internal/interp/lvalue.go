package interp

import (
	"fmt"

	"github.com/nyjc-computing/pseudo9608/internal/ast"
)

// evaluateLValue evaluates a variable-reference expression once and
// returns its current value plus a closure that writes a new value to
// that same location. Used for assignment targets, INPUT targets, and to
// build the Reference bound into a BYREF parameter slot.
func (i *Interpreter) evaluateLValue(env *Environment, e ast.Expr) (Value, *Reference, error) {
	switch target := e.(type) {
	case *ast.Name:
		return i.lvalueName(env, target)
	case *ast.Index:
		return i.lvalueIndex(env, target)
	case *ast.Field:
		return i.lvalueField(env, target)
	default:
		return nil, nil, fmt.Errorf("invalid assignment target: %T", e)
	}
}

func (i *Interpreter) lvalueName(env *Environment, target *ast.Name) (Value, *Reference, error) {
	v, ok := env.Get(target.Ident)
	if !ok {
		return nil, nil, fmt.Errorf("undefined variable: %s", target.Ident)
	}
	return v, env.Ref(target.Ident), nil
}

func (i *Interpreter) lvalueIndex(env *Environment, target *ast.Index) (Value, *Reference, error) {
	arrVal, err := i.eval(env, target.Array)
	if err != nil {
		return nil, nil, err
	}
	arr, ok := arrVal.(*ArrayValue)
	if !ok {
		return nil, nil, fmt.Errorf("cannot index into %s", arrVal.Type())
	}
	idx := make([]int64, len(target.Indices))
	for n, ie := range target.Indices {
		iv, err := i.eval(env, ie)
		if err != nil {
			return nil, nil, err
		}
		intVal, ok := iv.(IntegerValue)
		if !ok {
			return nil, nil, fmt.Errorf("array index must be INTEGER, got %s", iv.Type())
		}
		idx[n] = intVal.V
	}
	offset, err := arr.index(idx)
	if err != nil {
		return nil, nil, err
	}
	ref := &Reference{
		Get: func() Value { return arr.Elements[offset] },
		Set: func(v Value) error { arr.Elements[offset] = v; return nil },
	}
	return arr.Elements[offset], ref, nil
}

func (i *Interpreter) lvalueField(env *Environment, target *ast.Field) (Value, *Reference, error) {
	recVal, err := i.eval(env, target.Record)
	if err != nil {
		return nil, nil, err
	}
	rec, ok := recVal.(*RecordValue)
	if !ok {
		return nil, nil, fmt.Errorf("cannot access field of %s", recVal.Type())
	}
	cur, ok := rec.Fields[target.FieldName]
	if !ok {
		return nil, nil, fmt.Errorf("record %s has no field %q", rec.TypeName, target.FieldName)
	}
	ref := &Reference{
		Get: func() Value { return rec.Fields[target.FieldName] },
		Set: func(v Value) error { rec.Fields[target.FieldName] = v; return nil },
	}
	return cur, ref, nil
}
