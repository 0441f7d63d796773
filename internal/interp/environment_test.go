package interp

import "testing"

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("X", IntegerValue{V: 1})
	v, ok := env.Get("X")
	if !ok {
		t.Fatal("Get(X) = false, want true")
	}
	if v.(IntegerValue).V != 1 {
		t.Errorf("X = %v, want 1", v)
	}
}

func TestEnvironmentLooksUpOuterFrame(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("X", IntegerValue{V: 42})
	inner := NewEnclosedEnvironment(outer)
	v, ok := inner.Get("X")
	if !ok || v.(IntegerValue).V != 42 {
		t.Errorf("Get(X) from inner = (%v, %v), want (42, true)", v, ok)
	}
}

func TestEnvironmentAssignUndefinedIsError(t *testing.T) {
	env := NewEnvironment()
	if err := env.Assign("Missing", IntegerValue{V: 1}); err == nil {
		t.Fatal("expected error assigning to an undefined variable")
	}
}

func TestRefAliasesOuterStorage(t *testing.T) {
	outer := NewEnvironment()
	outer.Define("A", IntegerValue{V: 1})

	inner := NewEnclosedEnvironment(outer)
	inner.DefineRef("X", outer.Ref("A"))

	if err := inner.Assign("X", IntegerValue{V: 99}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, ok := outer.Get("A")
	if !ok || v.(IntegerValue).V != 99 {
		t.Errorf("A after aliased assign = (%v, %v), want (99, true)", v, ok)
	}
}
