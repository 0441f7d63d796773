package types

import "testing"

func TestEqualPrimitives(t *testing.T) {
	if !Equal(Integer, Integer) {
		t.Error("INTEGER should equal itself")
	}
	if Equal(Integer, RealT) {
		t.Error("INTEGER should not equal REAL")
	}
}

func TestEqualArrayShapes(t *testing.T) {
	a := NewArray(Integer, []Bound{{Lo: 1, Hi: 10}})
	b := NewArray(Integer, []Bound{{Lo: 1, Hi: 10}})
	c := NewArray(Integer, []Bound{{Lo: 1, Hi: 5}})
	if !Equal(a, b) {
		t.Error("arrays with identical element type and bounds should be equal")
	}
	if Equal(a, c) {
		t.Error("arrays with different bounds should not be equal")
	}
}

func TestEqualRecordIsNominal(t *testing.T) {
	a := NewRecord("Point")
	b := NewRecord("Point")
	c := NewRecord("Vector")
	if !Equal(a, b) {
		t.Error("records with the same name should be equal")
	}
	if Equal(a, c) {
		t.Error("records with different names should not be equal")
	}
}

func TestAssignableToWidening(t *testing.T) {
	if !AssignableTo(Integer, RealT) {
		t.Error("INTEGER should be assignable to REAL")
	}
	if AssignableTo(RealT, Integer) {
		t.Error("REAL should not be assignable to INTEGER")
	}
	if !AssignableTo(Integer, Integer) {
		t.Error("INTEGER should be assignable to INTEGER")
	}
	if AssignableTo(StringT, Integer) {
		t.Error("STRING should not be assignable to INTEGER")
	}
}

func TestBoundSize(t *testing.T) {
	b := Bound{Lo: 1, Hi: 10}
	if got, want := b.Size(), int64(10); got != want {
		t.Errorf("Size() = %d, want %d", got, want)
	}
}

func TestRank(t *testing.T) {
	scalar := Integer
	if got := scalar.Rank(); got != 0 {
		t.Errorf("scalar Rank() = %d, want 0", got)
	}
	matrix := NewArray(Integer, []Bound{{Lo: 1, Hi: 3}, {Lo: 1, Hi: 3}})
	if got := matrix.Rank(); got != 2 {
		t.Errorf("matrix Rank() = %d, want 2", got)
	}
}

func TestRecordDefFieldType(t *testing.T) {
	def := &RecordDef{Name: "Point", Fields: []Field{
		{Name: "X", Type: Integer},
		{Name: "Y", Type: Integer},
	}}
	typ, ok := def.FieldType("X")
	if !ok || typ.Tag != INTEGER {
		t.Errorf("FieldType(X) = (%v, %v)", typ, ok)
	}
	if _, ok := def.FieldType("Z"); ok {
		t.Error("FieldType(Z) should report false for a missing field")
	}
}

func TestTypeStringRendersCompositeTypes(t *testing.T) {
	arr := NewArray(Integer, []Bound{{Lo: 1, Hi: 10}})
	if got, want := arr.String(), "ARRAY[1:10] OF INTEGER"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	realT := RealT
	fn := NewCallable([]Param{{Name: "N", Type: Integer, Mode: ByValue}}, &realT)
	if got, want := fn.String(), "FUNCTION(INTEGER) RETURNS REAL"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	proc := NewCallable(nil, nil)
	if got, want := proc.String(), "PROCEDURE()"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFileModeString(t *testing.T) {
	tests := map[FileMode]string{ReadMode: "READ", WriteMode: "WRITE", AppendMode: "APPEND"}
	for mode, want := range tests {
		if got := mode.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", mode, got, want)
		}
	}
}
