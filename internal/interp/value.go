// Package interp is the tree-walking interpreter: it executes a resolved
// Program against a runtime frame stack and a file table, exactly as
// typed by the resolver (no representation-level type checks remain at
// this stage, per spec.md §4.4).
package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nyjc-computing/pseudo9608/internal/types"
)

// Value is any runtime value the interpreter manipulates. Concrete
// variants mirror the closed type-tag system 1:1.
type Value interface {
	Type() types.Type
	String() string
	Clone() Value
}

// IntegerValue holds an INTEGER.
type IntegerValue struct{ V int64 }

func (v IntegerValue) Type() types.Type { return types.Integer }
func (v IntegerValue) String() string   { return strconv.FormatInt(v.V, 10) }
func (v IntegerValue) Clone() Value     { return v }

// RealValue holds a REAL.
type RealValue struct{ V float64 }

func (v RealValue) Type() types.Type { return types.RealT }
func (v RealValue) String() string   { return formatReal(v.V) }
func (v RealValue) Clone() Value     { return v }

// formatReal renders a REAL with a minimal representation that always
// keeps at least one fractional digit, per spec.md §9's design decision.
func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// StringValue holds a STRING.
type StringValue struct{ V string }

func (v StringValue) Type() types.Type { return types.StringT }
func (v StringValue) String() string   { return v.V }
func (v StringValue) Clone() Value     { return v }

// BooleanValue holds a BOOLEAN.
type BooleanValue struct{ V bool }

func (v BooleanValue) Type() types.Type { return types.Bool }
func (v BooleanValue) String() string {
	if v.V {
		return "TRUE"
	}
	return "FALSE"
}
func (v BooleanValue) Clone() Value { return v }

// ArrayValue holds a fixed-shape ARRAY. Elements is laid out row-major for
// rank 2 (first bound varies slowest).
type ArrayValue struct {
	ElemType types.Type
	Bounds   []types.Bound
	Elements []Value
}

func (v *ArrayValue) Type() types.Type { return types.NewArray(v.ElemType, v.Bounds) }
func (v *ArrayValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (v *ArrayValue) Clone() Value {
	cp := &ArrayValue{ElemType: v.ElemType, Bounds: v.Bounds, Elements: make([]Value, len(v.Elements))}
	for i, e := range v.Elements {
		cp.Elements[i] = e.Clone()
	}
	return cp
}

// index computes the flat offset for idx (one index per dimension),
// bounds-checked against v.Bounds.
func (v *ArrayValue) index(idx []int64) (int, error) {
	if len(idx) != len(v.Bounds) {
		return 0, fmt.Errorf("expected %d index(es), got %d", len(v.Bounds), len(idx))
	}
	offset := 0
	for dim, b := range v.Bounds {
		i := idx[dim]
		if i < b.Lo || i > b.Hi {
			return 0, fmt.Errorf("array index %d out of bounds [%d:%d]", i, b.Lo, b.Hi)
		}
		offset = offset*int(b.Size()) + int(i-b.Lo)
	}
	return offset, nil
}

// RecordValue holds a RECORD instance.
type RecordValue struct {
	TypeName string
	Fields   map[string]Value
	Order    []string // declaration order, for deterministic String()
}

func (v *RecordValue) Type() types.Type { return types.NewRecord(v.TypeName) }
func (v *RecordValue) String() string {
	parts := make([]string, 0, len(v.Order))
	for _, name := range v.Order {
		parts = append(parts, name+": "+v.Fields[name].String())
	}
	return v.TypeName + "{" + strings.Join(parts, ", ") + "}"
}
func (v *RecordValue) Clone() Value {
	cp := &RecordValue{TypeName: v.TypeName, Fields: make(map[string]Value, len(v.Fields)), Order: v.Order}
	for k, f := range v.Fields {
		cp.Fields[k] = f.Clone()
	}
	return cp
}

// Zero builds the zero value for t: 0 / 0.0 / "" / FALSE for primitives, a
// fully-populated array of zero elements, or a record with every field at
// its own zero value.
func Zero(t types.Type, records map[string]*types.RecordDef) Value {
	switch t.Tag {
	case types.INTEGER:
		return IntegerValue{}
	case types.REAL:
		return RealValue{}
	case types.STRING:
		return StringValue{}
	case types.BOOLEAN:
		return BooleanValue{}
	case types.ARRAY:
		size := 1
		for _, b := range t.Bounds {
			size *= int(b.Size())
		}
		elems := make([]Value, size)
		for i := range elems {
			elems[i] = Zero(*t.Elem, records)
		}
		return &ArrayValue{ElemType: *t.Elem, Bounds: t.Bounds, Elements: elems}
	case types.RECORD:
		def := records[t.Name]
		rv := &RecordValue{TypeName: t.Name, Fields: make(map[string]Value, len(def.Fields))}
		for _, f := range def.Fields {
			rv.Fields[f.Name] = Zero(f.Type, records)
			rv.Order = append(rv.Order, f.Name)
		}
		return rv
	default:
		return StringValue{}
	}
}

// widen converts an IntegerValue to a RealValue when target is REAL,
// implementing the language's single INTEGER -> REAL widening rule.
// Every other value passes through unchanged.
func widen(v Value, target types.Type) Value {
	if iv, ok := v.(IntegerValue); ok && target.Tag == types.REAL {
		return RealValue{V: float64(iv.V)}
	}
	return v
}
