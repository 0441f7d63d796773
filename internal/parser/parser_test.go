package parser

import (
	"testing"

	"github.com/nyjc-computing/pseudo9608/internal/ast"
	"github.com/nyjc-computing/pseudo9608/internal/types"
)

func parseOrFatal(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, err)
	}
	return prog
}

func TestParseDeclare(t *testing.T) {
	prog := parseOrFatal(t, "DECLARE X : INTEGER\n")
	if len(prog.Stmts) != 1 {
		t.Fatalf("stmt count = %d, want 1", len(prog.Stmts))
	}
	decl, ok := prog.Stmts[0].(*ast.Declare)
	if !ok {
		t.Fatalf("stmt type = %T, want *ast.Declare", prog.Stmts[0])
	}
	if decl.Name != "X" {
		t.Errorf("name = %q, want X", decl.Name)
	}
	if decl.DeclType.Tag != types.INTEGER {
		t.Errorf("type = %v, want INTEGER", decl.DeclType)
	}
}

func TestParseDeclareArray(t *testing.T) {
	prog := parseOrFatal(t, "DECLARE A : ARRAY[1:10] OF INTEGER\n")
	decl, ok := prog.Stmts[0].(*ast.DeclareArray)
	if !ok {
		t.Fatalf("stmt type = %T, want *ast.DeclareArray", prog.Stmts[0])
	}
	if len(decl.Bounds) != 1 {
		t.Fatalf("bounds = %d, want 1", len(decl.Bounds))
	}
}

func TestParseTypeDecl(t *testing.T) {
	src := "TYPE Point\n\tDECLARE X : INTEGER\n\tDECLARE Y : INTEGER\nENDTYPE\n"
	prog := parseOrFatal(t, src)
	decl, ok := prog.Stmts[0].(*ast.TypeDecl)
	if !ok {
		t.Fatalf("stmt type = %T, want *ast.TypeDecl", prog.Stmts[0])
	}
	if decl.Name != "Point" || len(decl.Fields) != 2 {
		t.Fatalf("decl = %+v", decl)
	}
}

func TestExpressionPrecedence(t *testing.T) {
	prog := parseOrFatal(t, "X <- 1 + 2 * 3\n")
	assign := prog.Stmts[0].(*ast.Assign)
	bin, ok := assign.Value.(*ast.Binary)
	if !ok {
		t.Fatalf("value type = %T, want *ast.Binary", assign.Value)
	}
	if bin.Op.String() != "+" {
		t.Fatalf("top operator = %s, want +", bin.Op)
	}
	rhs, ok := bin.Right.(*ast.Binary)
	if !ok || rhs.Op.String() != "*" {
		t.Fatalf("rhs = %+v, want a '*' binary", bin.Right)
	}
}

func TestRelationalChainingIsError(t *testing.T) {
	_, err := Parse("X <- 1 < 2 < 3\n")
	if err == nil {
		t.Fatal("expected parse error for chained relational operators")
	}
}

func TestIfElseEndif(t *testing.T) {
	src := "IF X > 0\n\tTHEN\n\t\tOUTPUT \"pos\"\n\tELSE\n\t\tOUTPUT \"non-pos\"\n\tENDIF\n"
	prog := parseOrFatal(t, src)
	stmt, ok := prog.Stmts[0].(*ast.If)
	if !ok {
		t.Fatalf("stmt type = %T, want *ast.If", prog.Stmts[0])
	}
	if len(stmt.Then) != 1 || len(stmt.Else) != 1 {
		t.Fatalf("then/else = %d/%d, want 1/1", len(stmt.Then), len(stmt.Else))
	}
}

func TestForLoopWithStep(t *testing.T) {
	src := "FOR I <- 10 TO 1 STEP -1\n\tOUTPUT I\nENDFOR\n"
	prog := parseOrFatal(t, src)
	loop, ok := prog.Stmts[0].(*ast.For)
	if !ok {
		t.Fatalf("stmt type = %T, want *ast.For", prog.Stmts[0])
	}
	if loop.Var != "I" || loop.Step == nil {
		t.Fatalf("loop = %+v", loop)
	}
}

func TestCaseOtherwise(t *testing.T) {
	src := "CASE OF X\n\t1 : OUTPUT \"one\"\n\t2 : OUTPUT \"two\"\n\tOTHERWISE : OUTPUT \"other\"\nENDCASE\n"
	prog := parseOrFatal(t, src)
	c, ok := prog.Stmts[0].(*ast.Case)
	if !ok {
		t.Fatalf("stmt type = %T, want *ast.Case", prog.Stmts[0])
	}
	if len(c.Clauses) != 2 || c.Otherwise == nil {
		t.Fatalf("case = %+v", c)
	}
}

func TestOtherwiseNotFirstIsError(t *testing.T) {
	_, err := Parse("CASE OF X\n\tOTHERWISE : OUTPUT \"x\"\n\t1 : OUTPUT \"y\"\nENDCASE\n")
	if err == nil {
		t.Fatal("expected parse error for OTHERWISE not last")
	}
}

func TestProcedureDeclWithByRefParam(t *testing.T) {
	src := "PROCEDURE SWAP(BYREF X : INTEGER, BYREF Y : INTEGER)\n\tOUTPUT X\nENDPROCEDURE\n"
	prog := parseOrFatal(t, src)
	decl, ok := prog.Stmts[0].(*ast.ProcedureDecl)
	if !ok {
		t.Fatalf("stmt type = %T, want *ast.ProcedureDecl", prog.Stmts[0])
	}
	if len(decl.Decl.Params) != 2 {
		t.Fatalf("params = %d, want 2", len(decl.Decl.Params))
	}
	for _, p := range decl.Decl.Params {
		if p.Mode != types.ByRef {
			t.Errorf("param %s mode = %v, want ByRef", p.Name, p.Mode)
		}
	}
}

func TestFunctionDeclReturnsType(t *testing.T) {
	src := "FUNCTION F(N : INTEGER) RETURNS INTEGER\n\tRETURN N\nENDFUNCTION\n"
	prog := parseOrFatal(t, src)
	decl, ok := prog.Stmts[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("stmt type = %T, want *ast.FunctionDecl", prog.Stmts[0])
	}
	if decl.Decl.ReturnType == nil || decl.Decl.ReturnType.Tag != types.INTEGER {
		t.Fatalf("return type = %+v", decl.Decl.ReturnType)
	}
}

func TestPostfixIndexFieldCallChain(t *testing.T) {
	prog := parseOrFatal(t, "X <- Pts[1].Y\n")
	assign := prog.Stmts[0].(*ast.Assign)
	field, ok := assign.Value.(*ast.Field)
	if !ok {
		t.Fatalf("value type = %T, want *ast.Field", assign.Value)
	}
	idx, ok := field.Record.(*ast.Index)
	if !ok {
		t.Fatalf("record type = %T, want *ast.Index", field.Record)
	}
	if len(idx.Indices) != 1 {
		t.Fatalf("indices = %d, want 1", len(idx.Indices))
	}
}

func TestOpenFileDottedName(t *testing.T) {
	src := "OPENFILE FileA.txt FOR READ\n"
	prog := parseOrFatal(t, src)
	open, ok := prog.Stmts[0].(*ast.OpenFile)
	if !ok {
		t.Fatalf("stmt type = %T, want *ast.OpenFile", prog.Stmts[0])
	}
	if open.Name != "FileA.txt" {
		t.Errorf("name = %q, want FileA.txt", open.Name)
	}
	if open.Mode != types.ReadMode {
		t.Errorf("mode = %v, want Read", open.Mode)
	}
}

func TestMissingEndifIsParseError(t *testing.T) {
	_, err := Parse("IF X THEN\n\tOUTPUT X\n")
	if err == nil {
		t.Fatal("expected parse error for missing ENDIF")
	}
}

func TestCallStatement(t *testing.T) {
	prog := parseOrFatal(t, "CALL SWAP(A, B)\n")
	call, ok := prog.Stmts[0].(*ast.CallStmt)
	if !ok {
		t.Fatalf("stmt type = %T, want *ast.CallStmt", prog.Stmts[0])
	}
	if call.Name != "SWAP" || len(call.Args) != 2 {
		t.Fatalf("call = %+v", call)
	}
}

func TestRepeatUntil(t *testing.T) {
	src := "REPEAT\n\tX <- X + 1\nUNTIL X > 10\n"
	prog := parseOrFatal(t, src)
	if _, ok := prog.Stmts[0].(*ast.Repeat); !ok {
		t.Fatalf("stmt type = %T, want *ast.Repeat", prog.Stmts[0])
	}
}
