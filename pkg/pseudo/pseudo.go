// Package pseudo is the library entry point for embedding the 9608
// pseudocode pipeline: scan, parse, resolve, and interpret a program
// against a pluggable host I/O adapter, per spec.md §6.
package pseudo

import (
	"io"
	"os"

	cerrors "github.com/nyjc-computing/pseudo9608/internal/errors"
	"github.com/nyjc-computing/pseudo9608/internal/host"
	"github.com/nyjc-computing/pseudo9608/internal/interp"
	"github.com/nyjc-computing/pseudo9608/internal/parser"
	"github.com/nyjc-computing/pseudo9608/internal/resolver"
	"github.com/nyjc-computing/pseudo9608/internal/token"
	"github.com/nyjc-computing/pseudo9608/internal/trace"
)

// Engine runs pseudocode programs against a fixed host adapter.
type Engine struct {
	io        host.IO
	traceSink io.Writer
}

// Option configures an Engine.
type Option func(*Engine)

// WithHost overrides the default OS-backed host adapter.
func WithHost(io host.IO) Option {
	return func(e *Engine) { e.io = io }
}

// WithTrace enables the structured per-statement execution trace,
// written as one JSON object per line to w.
func WithTrace(w io.Writer) Option {
	return func(e *Engine) { e.traceSink = w }
}

// New builds an Engine. With no options, it talks to process stdin/stdout
// and the local filesystem.
func New(opts ...Option) *Engine {
	e := &Engine{io: host.NewOS()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunFile reads path and runs it as a pseudocode program.
func (e *Engine) RunFile(path string) *cerrors.Diagnostic {
	src, err := os.ReadFile(path)
	if err != nil {
		return cerrors.New(cerrors.Runtime, token.Position{}, "reading %s: %s", path, err)
	}
	return e.RunSource(string(src))
}

// RunSource scans, parses, resolves, and executes src in order, stopping
// at the first error from any phase.
func (e *Engine) RunSource(src string) *cerrors.Diagnostic {
	prog, err := parser.Parse(src)
	if err != nil {
		return err
	}
	result, err := resolver.Resolve(prog)
	if err != nil {
		return err
	}
	engine := interp.New(result, e.io)
	if e.traceSink != nil {
		engine.SetTracer(trace.NewWriter(e.traceSink))
	}
	return engine.Run(result.Program)
}
