package host

import (
	"fmt"
	"strings"

	"github.com/nyjc-computing/pseudo9608/internal/types"
)

// Memory is an in-memory host adapter for tests: stdin is a fixed list of
// lines, stdout is captured into a buffer, and the filesystem is a map of
// name to line slice that Files mutate in place.
type Memory struct {
	stdin     []string
	stdinPos  int
	stdout    strings.Builder
	files     map[string][]string
	openNames map[string]bool
}

// NewMemory builds a Memory adapter whose stdin yields the given lines in
// order and whose filesystem starts out containing the given named files.
func NewMemory(stdinLines []string, files map[string][]string) *Memory {
	fs := make(map[string][]string, len(files))
	for name, lines := range files {
		cp := make([]string, len(lines))
		copy(cp, lines)
		fs[name] = cp
	}
	return &Memory{stdin: stdinLines, files: fs, openNames: make(map[string]bool)}
}

func (m *Memory) ReadLine() (string, error) {
	if m.stdinPos >= len(m.stdin) {
		return "", nil
	}
	line := m.stdin[m.stdinPos]
	m.stdinPos++
	return line, nil
}

func (m *Memory) Write(text string) {
	m.stdout.WriteString(text)
}

// Stdout returns everything written via Write so far.
func (m *Memory) Stdout() string { return m.stdout.String() }

// File returns the current line contents of a named in-memory file, for
// assertions after a run completes.
func (m *Memory) File(name string) ([]string, bool) {
	lines, ok := m.files[name]
	return lines, ok
}

func (m *Memory) Open(name string, mode types.FileMode) (File, error) {
	if m.openNames[name] {
		return nil, fmt.Errorf("file %q is already open", name)
	}
	switch mode {
	case types.ReadMode:
		lines, ok := m.files[name]
		if !ok {
			return nil, fmt.Errorf("file %q does not exist", name)
		}
		m.openNames[name] = true
		return &memFile{m: m, name: name, mode: mode, readLines: append([]string{}, lines...)}, nil
	case types.WriteMode:
		m.files[name] = nil
		m.openNames[name] = true
		return &memFile{m: m, name: name, mode: mode}, nil
	case types.AppendMode:
		if _, ok := m.files[name]; !ok {
			m.files[name] = nil
		}
		m.openNames[name] = true
		return &memFile{m: m, name: name, mode: mode}, nil
	default:
		return nil, fmt.Errorf("unknown file mode %v", mode)
	}
}

type memFile struct {
	m         *Memory
	name      string
	mode      types.FileMode
	readLines []string
	readPos   int
}

func (f *memFile) ReadLine() (string, bool, error) {
	if f.mode != types.ReadMode {
		return "", false, fmt.Errorf("file %q is not open for reading", f.name)
	}
	if f.readPos >= len(f.readLines) {
		return "", false, nil
	}
	line := f.readLines[f.readPos]
	f.readPos++
	return line, true, nil
}

func (f *memFile) WriteLine(line string) error {
	if f.mode != types.WriteMode && f.mode != types.AppendMode {
		return fmt.Errorf("file %q is not open for writing", f.name)
	}
	f.m.files[f.name] = append(f.m.files[f.name], line)
	return nil
}

func (f *memFile) EOF() bool {
	return f.readPos >= len(f.readLines)
}

func (f *memFile) Close() error {
	delete(f.m.openNames, f.name)
	return nil
}
