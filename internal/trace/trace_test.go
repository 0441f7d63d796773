package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/nyjc-computing/pseudo9608/internal/token"
)

func TestWriterEmitsOneLinePerStatement(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Statement("Assign", token.Position{Line: 1, Column: 1})
	w.Statement("Output", token.Position{Line: 2, Column: 3})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2 (%q)", len(lines), buf.String())
	}

	first := gjson.Parse(lines[0])
	if first.Get("seq").Int() != 1 {
		t.Errorf("first seq = %d, want 1", first.Get("seq").Int())
	}
	if first.Get("stmt").String() != "Assign" {
		t.Errorf("first stmt = %q, want Assign", first.Get("stmt").String())
	}
	if first.Get("line").Int() != 1 || first.Get("column").Int() != 1 {
		t.Errorf("first pos = %d:%d, want 1:1", first.Get("line").Int(), first.Get("column").Int())
	}

	second := gjson.Parse(lines[1])
	if second.Get("seq").Int() != 2 {
		t.Errorf("second seq = %d, want 2", second.Get("seq").Int())
	}
	if second.Get("stmt").String() != "Output" {
		t.Errorf("second stmt = %q, want Output", second.Get("stmt").String())
	}
}

func TestWriterSequenceIncrementsAcrossCalls(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for i := 0; i < 5; i++ {
		w.Statement("Noop", token.Position{})
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	if gjson.Parse(lines[4]).Get("seq").Int() != 5 {
		t.Errorf("last seq = %d, want 5", gjson.Parse(lines[4]).Get("seq").Int())
	}
}
