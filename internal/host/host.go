// Package host defines the I/O boundary the interpreter talks to: a
// terminal (read_line/write) and a small filesystem (open/readline/write/
// eof/close), exactly the surface spec.md's library entry points expose
// to callers. OS provides the default process-backed implementation;
// Memory backs tests that must not touch the real filesystem or stdin.
package host

import "github.com/nyjc-computing/pseudo9608/internal/types"

// File is a single open file handle, in one of READ, WRITE, or APPEND mode.
type File interface {
	// ReadLine returns the next line (without its terminator) and true, or
	// ok=false when the file is exhausted.
	ReadLine() (line string, ok bool, err error)
	WriteLine(line string) error
	EOF() bool
	Close() error
}

// IO is the full adapter surface: a terminal plus a filesystem. The
// default program-wide adapter is OS; tests substitute Memory.
type IO interface {
	ReadLine() (string, error)
	Write(text string)
	Open(name string, mode types.FileMode) (File, error)
}
