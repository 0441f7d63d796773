package ast_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/nyjc-computing/pseudo9608/internal/ast"
	"github.com/nyjc-computing/pseudo9608/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	return prog
}

func TestPrintDeterministic(t *testing.T) {
	src := `DECLARE X : INTEGER
X <- 1 + 2 * 3
IF X > 5 THEN
  OUTPUT "big"
ELSE
  OUTPUT "small"
ENDIF
`
	prog := mustParse(t, src)
	first := ast.Print(prog)
	second := ast.Print(mustParse(t, src))
	if first != second {
		t.Fatalf("Print is not deterministic:\n%s\n---\n%s", first, second)
	}
}

func TestPrintRoundTripsThroughReparse(t *testing.T) {
	cases := []string{
		`DECLARE X : INTEGER
X <- 1 + 2 * 3
IF X > 5 THEN
  OUTPUT "big"
ELSE
  OUTPUT "small"
ENDIF
`,
		`DECLARE Total : INTEGER
DECLARE I : INTEGER
Total <- 0
FOR I <- 1 TO 10
  Total <- Total + I
ENDFOR
OUTPUT Total
`,
		`PROCEDURE Swap(BYREF A : INTEGER, BYREF B : INTEGER)
  DECLARE Temp : INTEGER
  Temp <- A
  A <- B
  B <- Temp
ENDPROCEDURE
`,
		`FUNCTION Factorial(N : INTEGER) RETURNS INTEGER
  IF N <= 1 THEN
    RETURN 1
  ELSE
    RETURN N * Factorial(N - 1)
  ENDIF
ENDFUNCTION
`,
	}

	for _, src := range cases {
		prog := mustParse(t, src)
		printed := ast.Print(prog)

		reprog, err := parser.Parse(printed)
		if err != nil {
			t.Fatalf("re-parsing printed output failed: %s\nprinted:\n%s", err, printed)
		}
		reprinted := ast.Print(reprog)

		if printed != reprinted {
			t.Errorf("printing is not a fixed point after re-scan/re-parse:\nfirst:\n%s\n---\nsecond:\n%s", printed, reprinted)
		}
	}
}

func TestPrintSnapshots(t *testing.T) {
	cases := map[string]string{
		"for_loop": `DECLARE Total : INTEGER
DECLARE I : INTEGER
Total <- 0
FOR I <- 1 TO 10
  Total <- Total + I
ENDFOR
OUTPUT Total
`,
		"procedure_byref": `PROCEDURE Swap(BYREF A : INTEGER, BYREF B : INTEGER)
  DECLARE Temp : INTEGER
  Temp <- A
  A <- B
  B <- Temp
ENDPROCEDURE
`,
		"function_recursive": `FUNCTION Factorial(N : INTEGER) RETURNS INTEGER
  IF N <= 1 THEN
    RETURN 1
  ELSE
    RETURN N * Factorial(N - 1)
  ENDIF
ENDFUNCTION
`,
		"case_statement": `DECLARE Grade : STRING
CASE OF Grade
  "A": OUTPUT "Excellent"
  "B": OUTPUT "Good"
  OTHERWISE: OUTPUT "Keep trying"
ENDCASE
`,
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			prog := mustParse(t, src)
			snaps.MatchSnapshot(t, ast.Print(prog))
		})
	}
}
