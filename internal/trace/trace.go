// Package trace emits a structured, per-statement execution trace. It is
// purely observational: enabling it never changes evaluation order or
// results, only what is written to the trace sink.
package trace

import (
	"io"
	"sync"

	"github.com/tidwall/sjson"

	"github.com/nyjc-computing/pseudo9608/internal/token"
)

// Tracer receives one event per executed statement.
type Tracer interface {
	Statement(kind string, pos token.Position)
}

// Writer is a Tracer that appends one JSON object per line to an
// underlying writer, built incrementally with sjson rather than
// marshalling a Go struct per event.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
	seq int
}

// NewWriter builds a Writer tracer sinking events to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Statement implements Tracer.
func (w *Writer) Statement(kind string, pos token.Position) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq++
	buf, err := sjson.SetBytes(nil, "seq", w.seq)
	if err != nil {
		return
	}
	buf, err = sjson.SetBytes(buf, "stmt", kind)
	if err != nil {
		return
	}
	buf, err = sjson.SetBytes(buf, "line", pos.Line)
	if err != nil {
		return
	}
	buf, err = sjson.SetBytes(buf, "column", pos.Column)
	if err != nil {
		return
	}
	buf = append(buf, '\n')
	_, _ = w.out.Write(buf)
}
