package interp

import (
	"github.com/nyjc-computing/pseudo9608/internal/ast"
	cerrors "github.com/nyjc-computing/pseudo9608/internal/errors"
	"github.com/nyjc-computing/pseudo9608/internal/host"
	"github.com/nyjc-computing/pseudo9608/internal/resolver"
	"github.com/nyjc-computing/pseudo9608/internal/token"
	"github.com/nyjc-computing/pseudo9608/internal/trace"
	"github.com/nyjc-computing/pseudo9608/internal/types"
)

// Interpreter walks a resolved Program against a global frame, a table of
// callable declarations, and a file table, per spec.md §4.4.
type Interpreter struct {
	global    *Environment
	records   map[string]*types.RecordDef
	callables map[string]*callable
	files     map[string]*openFile
	host      host.IO
	tracer    trace.Tracer

	// callableStack names the currently-executing callable, innermost
	// last, so runtime diagnostics can report it.
	callableStack []string
}

// SetTracer installs t as the interpreter's statement tracer. A nil t
// disables tracing, which is also the default.
func (i *Interpreter) SetTracer(t trace.Tracer) {
	i.tracer = t
}

type callable struct {
	decl   *ast.CallableDecl
	isFunc bool
}

// openFile is one entry in the interpreter's file table: a host handle
// plus the mode it was opened in, per spec.md §4.4 and §5.
type openFile struct {
	handle host.File
	mode   types.FileMode
}

// New builds an Interpreter ready to run result.Program against io.
func New(result *resolver.Result, io host.IO) *Interpreter {
	interp := &Interpreter{
		global:    NewEnvironment(),
		records:   result.Records,
		callables: make(map[string]*callable),
		files:     make(map[string]*openFile),
		host:      io,
	}
	collectCallables(result.Program.Stmts, interp.callables)
	return interp
}

func collectCallables(stmts ast.Block, out map[string]*callable) {
	for _, s := range stmts {
		switch d := s.(type) {
		case *ast.ProcedureDecl:
			out[d.Decl.Name] = &callable{decl: d.Decl, isFunc: false}
		case *ast.FunctionDecl:
			out[d.Decl.Name] = &callable{decl: d.Decl, isFunc: true}
		}
	}
}

// Run executes prog's top-level statements in order.
func (i *Interpreter) Run(prog *ast.Program) *cerrors.Diagnostic {
	for _, s := range prog.Stmts {
		switch s.(type) {
		case *ast.ProcedureDecl, *ast.FunctionDecl:
			continue // already registered by collectCallables
		}
		sig, err := i.exec(i.global, s)
		if err != nil {
			return err
		}
		if sig != nil {
			// RETURN can only appear inside a callable; the resolver
			// guarantees top-level statements never produce a signal.
			return i.runtimeErrorf(s.Position(), "RETURN is not allowed outside a function")
		}
	}
	return nil
}

func (i *Interpreter) activeCallable() string {
	if len(i.callableStack) == 0 {
		return ""
	}
	return i.callableStack[len(i.callableStack)-1]
}

func (i *Interpreter) runtimeErrorf(pos token.Position, format string, args ...any) *cerrors.Diagnostic {
	d := cerrors.New(cerrors.Runtime, pos, format, args...)
	if name := i.activeCallable(); name != "" {
		d = d.WithCallable(name)
	}
	return d
}
