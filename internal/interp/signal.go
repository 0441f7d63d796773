package interp

// signal is the internal control-flow carrier used to unwind a RETURN out
// of arbitrarily deep statement execution without resorting to panics,
// per spec.md §9 ("never use host-language exceptions for data flow").
type signal struct {
	isReturn bool
	value    Value
}
