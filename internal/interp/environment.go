package interp

import "fmt"

// Reference is an indirect slot handle: a closure pair that resolves to a
// mutable storage location on every read/write, used for BYREF parameter
// aliasing per spec.md §9 ("model a variable reference as a path that can
// be resolved to a mutable location").
type Reference struct {
	Get func() Value
	Set func(Value) error
}

// slot is one binding in an Environment: either an owned value or an
// alias onto another frame's storage.
type slot struct {
	value Value
	ref   *Reference
}

// Environment is a single activation's name table: the global frame, or
// one fresh frame per callable call, parented on the global frame. There
// is no deeper nesting, per the language's frame model.
type Environment struct {
	vars  map[string]*slot
	outer *Environment
}

// NewEnvironment creates a new root environment with no outer scope.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]*slot)}
}

// NewEnclosedEnvironment creates a callable activation frame parented on
// outer (always the global frame in this language).
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{vars: make(map[string]*slot), outer: outer}
}

// Define binds name to an owned value in this exact frame.
func (e *Environment) Define(name string, v Value) {
	e.vars[name] = &slot{value: v}
}

// DefineRef binds name to an aliased location in this exact frame.
func (e *Environment) DefineRef(name string, ref *Reference) {
	e.vars[name] = &slot{ref: ref}
}

func (e *Environment) find(name string) (*slot, *Environment) {
	for env := e; env != nil; env = env.outer {
		if s, ok := env.vars[name]; ok {
			return s, env
		}
	}
	return nil, nil
}

// Get returns the current value of name, searching outer frames.
func (e *Environment) Get(name string) (Value, bool) {
	s, _ := e.find(name)
	if s == nil {
		return nil, false
	}
	if s.ref != nil {
		return s.ref.Get(), true
	}
	return s.value, true
}

// Assign writes v into name's slot, following an alias if present.
func (e *Environment) Assign(name string, v Value) error {
	s, _ := e.find(name)
	if s == nil {
		return fmt.Errorf("undefined variable: %s", name)
	}
	if s.ref != nil {
		return s.ref.Set(v)
	}
	s.value = v
	return nil
}

// Ref builds a Reference that reads and writes name through this
// environment's chain, used to bind a BYREF argument into a callee frame.
func (e *Environment) Ref(name string) *Reference {
	return &Reference{
		Get: func() Value { v, _ := e.Get(name); return v },
		Set: func(v Value) error { return e.Assign(name, v) },
	}
}
