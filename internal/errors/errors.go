// Package errors provides the single diagnostic type shared by every phase
// of the pipeline (scanner, parser, resolver, interpreter). It formats
// diagnostics in the wire format fixed by the specification:
//
//	<Phase>Error at line L, column C: <message>
package errors

import (
	"fmt"

	"github.com/nyjc-computing/pseudo9608/internal/token"
)

// Phase identifies which stage of the pipeline raised a Diagnostic.
type Phase int

const (
	Scan Phase = iota
	Parse
	Resolve
	Runtime
)

// String returns the phase name used in the diagnostic prefix, e.g. "Scan".
func (p Phase) String() string {
	switch p {
	case Scan:
		return "Scan"
	case Parse:
		return "Parse"
	case Resolve:
		return "Resolve"
	case Runtime:
		return "Runtime"
	default:
		return "Unknown"
	}
}

// Diagnostic is a single error raised by the pipeline. It always carries a
// source position; runtime diagnostics may additionally carry the name of
// the callable that was active when the error occurred.
type Diagnostic struct {
	Phase    Phase
	Pos      token.Position
	Message  string
	Callable string // active callable name, runtime diagnostics only
}

// New builds a Diagnostic for the given phase.
func New(phase Phase, pos token.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{Phase: phase, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// WithCallable attaches the name of the active callable to a runtime
// diagnostic and returns the receiver for chaining.
func (d *Diagnostic) WithCallable(name string) *Diagnostic {
	d.Callable = name
	return d
}

// Error implements the error interface using the fixed wire format from
// the specification. The active callable, when present, is appended in
// parentheses rather than folded into Message so that Message alone stays
// stable for callers that only care about the failure text.
func (d *Diagnostic) Error() string {
	base := fmt.Sprintf("%sError at line %d, column %d: %s", d.Phase, d.Pos.Line, d.Pos.Column, d.Message)
	if d.Callable != "" {
		base += fmt.Sprintf(" (in %s)", d.Callable)
	}
	return base
}

// Is reports whether d was raised by the given phase. It takes a Phase
// rather than an error, so the standard library's errors.Is does not call
// it; callers more commonly type-assert to *Diagnostic and read Phase
// directly.
func (d *Diagnostic) Is(phase Phase) bool {
	return d.Phase == phase
}
