package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// TestRunProgramSuccess exercises the run subcommand's happy path end to
// end: a real file on disk, executed through the cobra command, stdout
// captured via a pipe the way the teacher's cmd tests do it.
func TestRunProgramSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.pseudo")
	if err := os.WriteFile(path, []byte(`OUTPUT "Hello World!"`+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	oldConfigPath := configPathFlag
	oldTrace := traceFlag
	defer func() {
		configPathFlag = oldConfigPath
		traceFlag = oldTrace
	}()
	configPathFlag = filepath.Join(dir, "pseudo.yaml") // intentionally missing
	traceFlag = false

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	err := runProgram(runCmd, []string{path})

	w.Close()
	os.Stdout = oldStdout
	var buf bytes.Buffer
	io.Copy(&buf, r)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "Hello World!\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}
