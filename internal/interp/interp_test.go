package interp_test

import (
	"testing"

	"github.com/nyjc-computing/pseudo9608/internal/host"
	"github.com/nyjc-computing/pseudo9608/pkg/pseudo"
)

func run(t *testing.T, src string) (string, *host.Memory) {
	t.Helper()
	mem := host.NewMemory(nil, nil)
	engine := pseudo.New(pseudo.WithHost(mem))
	if diag := engine.RunSource(src); diag != nil {
		t.Fatalf("unexpected error running %q: %s", src, diag.Error())
	}
	return mem.Stdout(), mem
}

func runErr(t *testing.T, src string) string {
	t.Helper()
	mem := host.NewMemory(nil, nil)
	engine := pseudo.New(pseudo.WithHost(mem))
	diag := engine.RunSource(src)
	if diag == nil {
		t.Fatalf("expected an error running %q, got none", src)
	}
	return diag.Phase.String()
}

func TestWhileLoop(t *testing.T) {
	src := `
DECLARE I : INTEGER
I <- 0
WHILE I < 3 DO
  OUTPUT I
  I <- I + 1
ENDWHILE
`
	if got, want := mustStdout(t, src), "0\n1\n2\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRepeatUntilRunsBodyAtLeastOnce(t *testing.T) {
	src := `
DECLARE I : INTEGER
I <- 5
REPEAT
  OUTPUT I
  I <- I + 1
UNTIL I > 5
`
	if got, want := mustStdout(t, src), "5\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestCaseStatement(t *testing.T) {
	src := `
DECLARE X : INTEGER
X <- 2
CASE OF X
  1 : OUTPUT "one"
  2 : OUTPUT "two"
  OTHERWISE : OUTPUT "other"
ENDCASE
`
	if got, want := mustStdout(t, src), "two\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestCaseOtherwiseFallback(t *testing.T) {
	src := `
DECLARE X : INTEGER
X <- 9
CASE OF X
  1 : OUTPUT "one"
  OTHERWISE : OUTPUT "other"
ENDCASE
`
	if got, want := mustStdout(t, src), "other\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestForLoopCountNegativeStep(t *testing.T) {
	src := `
FOR I <- 5 TO 1 STEP -1
  OUTPUT I
ENDFOR
`
	if got, want := mustStdout(t, src), "5\n4\n3\n2\n1\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestForLoopZeroIterationsWhenDirectionDisagrees(t *testing.T) {
	src := `
DECLARE N : INTEGER
N <- 0
FOR I <- 5 TO 1
  N <- N + 1
ENDFOR
OUTPUT N
`
	if got, want := mustStdout(t, src), "0\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestForLoopStepZeroIsRuntimeError(t *testing.T) {
	src := `
FOR I <- 1 TO 5 STEP 0
  OUTPUT I
ENDFOR
`
	if got := runErr(t, src); got != "Runtime" {
		t.Errorf("phase = %s, want Runtime", got)
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	src := `
DECLARE X : REAL
X <- 1 / 0
`
	if got := runErr(t, src); got != "Runtime" {
		t.Errorf("phase = %s, want Runtime", got)
	}
}

func TestOutputFormatsRealWithFractionalDigit(t *testing.T) {
	src := `
DECLARE X : REAL
X <- 3
OUTPUT X
`
	if got, want := mustStdout(t, src), "3.0\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestOutputFormatsBoolean(t *testing.T) {
	src := `OUTPUT TRUE
OUTPUT FALSE
`
	if got, want := mustStdout(t, src), "TRUE\nFALSE\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestBuiltinStringFunctions(t *testing.T) {
	src := `
DECLARE S : STRING
S <- "Hello World"
OUTPUT LENGTH(S)
OUTPUT LEFT(S, 5)
OUTPUT RIGHT(S, 5)
OUTPUT MID(S, 7, 5)
OUTPUT ASC("A")
`
	got := mustStdout(t, src)
	want := "11\nHello\nWorld\nWorld\n65\n"
	if got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestBuiltinIntTruncates(t *testing.T) {
	src := `OUTPUT INT(3.9)
OUTPUT INT(-3.9)
`
	if got, want := mustStdout(t, src), "3\n-3\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestInputCoercion(t *testing.T) {
	mem := host.NewMemory([]string{"42"}, nil)
	engine := pseudo.New(pseudo.WithHost(mem))
	src := `
DECLARE X : INTEGER
INPUT X
OUTPUT X + 1
`
	if diag := engine.RunSource(src); diag != nil {
		t.Fatalf("unexpected error: %s", diag.Error())
	}
	if got, want := mem.Stdout(), "43\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestInputCoercionFailureIsRuntimeError(t *testing.T) {
	mem := host.NewMemory([]string{"not-a-number"}, nil)
	engine := pseudo.New(pseudo.WithHost(mem))
	src := `
DECLARE X : INTEGER
INPUT X
`
	diag := engine.RunSource(src)
	if diag == nil {
		t.Fatal("expected an error, got none")
	}
	if diag.Phase.String() != "Runtime" {
		t.Errorf("phase = %s, want Runtime", diag.Phase)
	}
}

func TestReadPastEndOfFileIsRuntimeError(t *testing.T) {
	files := map[string][]string{"FileA.txt": {"one"}}
	mem := host.NewMemory(nil, files)
	engine := pseudo.New(pseudo.WithHost(mem))
	src := `
DECLARE Line : STRING
OPENFILE FileA.txt FOR READ
READFILE FileA.txt, Line
READFILE FileA.txt, Line
`
	diag := engine.RunSource(src)
	if diag == nil {
		t.Fatal("expected an error, got none")
	}
	if diag.Phase.String() != "Runtime" {
		t.Errorf("phase = %s, want Runtime", diag.Phase)
	}
}

func TestClosingUnopenedFileIsRuntimeError(t *testing.T) {
	if got := runErr(t, "CLOSEFILE FileA.txt\n"); got != "Runtime" {
		t.Errorf("phase = %s, want Runtime", got)
	}
}

func TestWholeArrayAssignmentCopiesNotAliases(t *testing.T) {
	src := `
DECLARE A : ARRAY[1:3] OF INTEGER
DECLARE B : ARRAY[1:3] OF INTEGER
A[1] <- 1
A[2] <- 2
A[3] <- 3
B <- A
A[1] <- 99
OUTPUT B[1]
OUTPUT A[1]
`
	if got, want := mustStdout(t, src), "1\n99\n"; got != want {
		t.Errorf("stdout = %q, want %q (whole-array assignment must copy, not alias)", got, want)
	}
}

func TestWholeRecordAssignmentCopiesNotAliases(t *testing.T) {
	src := `
TYPE Point
  DECLARE X : INTEGER
ENDTYPE
DECLARE P : Point
DECLARE Q : Point
P.X <- 1
Q <- P
P.X <- 99
OUTPUT Q.X
OUTPUT P.X
`
	if got, want := mustStdout(t, src), "1\n99\n"; got != want {
		t.Errorf("stdout = %q, want %q (whole-record assignment must copy, not alias)", got, want)
	}
}

func mustStdout(t *testing.T, src string) string {
	t.Helper()
	out, _ := run(t, src)
	return out
}
