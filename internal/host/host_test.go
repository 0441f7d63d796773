package host

import (
	"testing"

	"github.com/nyjc-computing/pseudo9608/internal/types"
)

func TestMemoryReadLineExhausted(t *testing.T) {
	m := NewMemory([]string{"a", "b"}, nil)
	for _, want := range []string{"a", "b", ""} {
		got, err := m.ReadLine()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("ReadLine() = %q, want %q", got, want)
		}
	}
}

func TestMemoryWriteAccumulatesStdout(t *testing.T) {
	m := NewMemory(nil, nil)
	m.Write("a")
	m.Write("b\n")
	if got, want := m.Stdout(), "ab\n"; got != want {
		t.Errorf("Stdout() = %q, want %q", got, want)
	}
}

func TestMemoryOpenReadRequiresExistingFile(t *testing.T) {
	m := NewMemory(nil, nil)
	if _, err := m.Open("missing.txt", types.ReadMode); err == nil {
		t.Fatal("expected error opening a nonexistent file for READ")
	}
}

func TestMemoryOpenSameNameTwiceIsError(t *testing.T) {
	m := NewMemory(nil, map[string][]string{"a.txt": {"line"}})
	if _, err := m.Open("a.txt", types.ReadMode); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Open("a.txt", types.WriteMode); err == nil {
		t.Fatal("expected error opening an already-open file")
	}
}

func TestMemoryWriteModeTruncatesExistingFile(t *testing.T) {
	m := NewMemory(nil, map[string][]string{"a.txt": {"old"}})
	f, err := m.Open("a.txt", types.WriteMode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.WriteLine("new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines, _ := m.File("a.txt")
	if len(lines) != 1 || lines[0] != "new" {
		t.Errorf("a.txt = %v, want [new]", lines)
	}
}

func TestMemoryAppendModePreservesExistingFile(t *testing.T) {
	m := NewMemory(nil, map[string][]string{"a.txt": {"old"}})
	f, err := m.Open("a.txt", types.AppendMode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.WriteLine("new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines, _ := m.File("a.txt")
	if len(lines) != 2 || lines[0] != "old" || lines[1] != "new" {
		t.Errorf("a.txt = %v, want [old new]", lines)
	}
}

func TestMemoryFileEOF(t *testing.T) {
	m := NewMemory(nil, map[string][]string{"a.txt": {"one"}})
	f, err := m.Open("a.txt", types.ReadMode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.EOF() {
		t.Fatal("EOF() = true before reading the only line")
	}
	if _, ok, err := f.ReadLine(); !ok || err != nil {
		t.Fatalf("ReadLine() = (_, %v, %v)", ok, err)
	}
	if !f.EOF() {
		t.Fatal("EOF() = false after reading the only line")
	}
}

func TestMemoryCloseReleasesNameForReopen(t *testing.T) {
	m := NewMemory(nil, map[string][]string{"a.txt": {"one"}})
	f, err := m.Open("a.txt", types.ReadMode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Open("a.txt", types.WriteMode); err != nil {
		t.Fatalf("reopening after close: %v", err)
	}
}

func TestMemoryWriteLineWrongModeIsError(t *testing.T) {
	m := NewMemory(nil, map[string][]string{"a.txt": {"one"}})
	f, err := m.Open("a.txt", types.ReadMode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.WriteLine("x"); err == nil {
		t.Fatal("expected error writing to a file opened for READ")
	}
}
