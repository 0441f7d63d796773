package interp

import (
	"fmt"
	"math/rand"
)

// builtinFunc is the runtime shape of a built-in function: given the
// interpreter (for file-table access) and already-evaluated arguments, it
// returns the result or a Go error, which call() wraps into a runtime
// Diagnostic. Signatures are enforced ahead of time by the resolver using
// internal/builtins, so argument count and type here are never wrong.
type builtinFunc func(i *Interpreter, args []Value) (Value, error)

var builtinImpls = map[string]builtinFunc{
	"EOF":           biEOF,
	"INT":           biInt,
	"MID":           biMid,
	"LENGTH":        biLength,
	"LEFT":          biLeft,
	"RIGHT":         biRight,
	"ASC":           biAsc,
	"RANDOMBETWEEN": biRandomBetween,
	"RND":           biRnd,
}

func biEOF(i *Interpreter, args []Value) (Value, error) {
	name := args[0].(StringValue).V
	of, open := i.files[name]
	if !open {
		return nil, fmt.Errorf("file %q is not open", name)
	}
	return BooleanValue{V: of.handle.EOF()}, nil
}

func biInt(_ *Interpreter, args []Value) (Value, error) {
	return IntegerValue{V: int64(asFloat(args[0]))}, nil
}

func biMid(_ *Interpreter, args []Value) (Value, error) {
	s := args[0].(StringValue).V
	start := int(args[1].(IntegerValue).V)
	length := int(args[2].(IntegerValue).V)
	if start < 1 || start > len(s)+1 || length < 0 || start-1+length > len(s) {
		return nil, fmt.Errorf("MID: start %d, length %d out of range for string of length %d", start, length, len(s))
	}
	return StringValue{V: s[start-1 : start-1+length]}, nil
}

func biLength(_ *Interpreter, args []Value) (Value, error) {
	return IntegerValue{V: int64(len(args[0].(StringValue).V))}, nil
}

func biLeft(_ *Interpreter, args []Value) (Value, error) {
	s := args[0].(StringValue).V
	n := int(args[1].(IntegerValue).V)
	if n < 0 || n > len(s) {
		return nil, fmt.Errorf("LEFT: count %d out of range for string of length %d", n, len(s))
	}
	return StringValue{V: s[:n]}, nil
}

func biRight(_ *Interpreter, args []Value) (Value, error) {
	s := args[0].(StringValue).V
	n := int(args[1].(IntegerValue).V)
	if n < 0 || n > len(s) {
		return nil, fmt.Errorf("RIGHT: count %d out of range for string of length %d", n, len(s))
	}
	return StringValue{V: s[len(s)-n:]}, nil
}

func biAsc(_ *Interpreter, args []Value) (Value, error) {
	s := args[0].(StringValue).V
	if len(s) == 0 {
		return nil, fmt.Errorf("ASC: empty string has no first character")
	}
	return IntegerValue{V: int64(s[0])}, nil
}

func biRandomBetween(_ *Interpreter, args []Value) (Value, error) {
	lo := args[0].(IntegerValue).V
	hi := args[1].(IntegerValue).V
	if hi < lo {
		return nil, fmt.Errorf("RANDOMBETWEEN: upper bound %d is less than lower bound %d", hi, lo)
	}
	return IntegerValue{V: lo + rand.Int63n(hi-lo+1)}, nil
}

func biRnd(_ *Interpreter, _ []Value) (Value, error) {
	return RealValue{V: rand.Float64()}, nil
}
