package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nyjc-computing/pseudo9608/internal/types"
)

// Print renders prog as an indented, deterministic text tree. It is used
// by the `pseudo parse` CLI subcommand and by golden-file tests asserting
// that every program the parser accepts prints the same tree every time.
func Print(prog *Program) string {
	var b strings.Builder
	printBlock(&b, prog.Stmts, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func printBlock(b *strings.Builder, block Block, depth int) {
	for _, s := range block {
		printStmt(b, s, depth)
	}
}

func printStmt(b *strings.Builder, s Stmt, depth int) {
	indent(b, depth)
	switch st := s.(type) {
	case *Declare:
		fmt.Fprintf(b, "Declare %s : %s\n", st.Name, st.DeclType)
	case *DeclareArray:
		fmt.Fprintf(b, "DeclareArray %s OF %s\n", st.Name, st.ElemType)
		for _, bnd := range st.Bounds {
			indent(b, depth+1)
			fmt.Fprintf(b, "Bound [%s : %s]\n", printExpr(bnd.Lo), printExpr(bnd.Hi))
		}
	case *TypeDecl:
		fmt.Fprintf(b, "TypeDecl %s\n", st.Name)
		for _, f := range st.Fields {
			indent(b, depth+1)
			fmt.Fprintf(b, "Field %s : %s\n", f.Name, f.Type)
		}
	case *Assign:
		fmt.Fprintf(b, "Assign %s <- %s\n", printExpr(st.Target), printExpr(st.Value))
	case *Output:
		parts := make([]string, len(st.Exprs))
		for i, e := range st.Exprs {
			parts[i] = printExpr(e)
		}
		fmt.Fprintf(b, "Output %s\n", strings.Join(parts, ", "))
	case *Input:
		fmt.Fprintf(b, "Input %s\n", printExpr(st.Target))
	case *If:
		fmt.Fprintf(b, "If %s\n", printExpr(st.Cond))
		indent(b, depth+1)
		b.WriteString("Then\n")
		printBlock(b, st.Then, depth+2)
		if st.Else != nil {
			indent(b, depth+1)
			b.WriteString("Else\n")
			printBlock(b, st.Else, depth+2)
		}
	case *Case:
		fmt.Fprintf(b, "Case %s\n", printExpr(st.Subject))
		for _, c := range st.Clauses {
			indent(b, depth+1)
			fmt.Fprintf(b, "When %s\n", printExpr(c.Value))
			printStmt(b, c.Stmt, depth+2)
		}
		if st.Otherwise != nil {
			indent(b, depth+1)
			b.WriteString("Otherwise\n")
			printStmt(b, st.Otherwise, depth+2)
		}
	case *While:
		fmt.Fprintf(b, "While %s\n", printExpr(st.Cond))
		printBlock(b, st.Body, depth+1)
	case *Repeat:
		b.WriteString("Repeat\n")
		printBlock(b, st.Body, depth+1)
		indent(b, depth+1)
		fmt.Fprintf(b, "Until %s\n", printExpr(st.Cond))
	case *For:
		step := "1"
		if st.Step != nil {
			step = printExpr(st.Step)
		}
		fmt.Fprintf(b, "For %s <- %s TO %s STEP %s\n", st.Var, printExpr(st.Start), printExpr(st.Stop), step)
		printBlock(b, st.Body, depth+1)
	case *ProcedureDecl:
		fmt.Fprintf(b, "ProcedureDecl %s\n", printSignature(st.Decl))
		printBlock(b, st.Decl.Body, depth+1)
	case *FunctionDecl:
		fmt.Fprintf(b, "FunctionDecl %s\n", printSignature(st.Decl))
		printBlock(b, st.Decl.Body, depth+1)
	case *CallStmt:
		fmt.Fprintf(b, "CallStmt %s\n", printExpr(NewCall(st.Pos, st.Name, st.Args)))
	case *Return:
		fmt.Fprintf(b, "Return %s\n", printExpr(st.Value))
	case *OpenFile:
		fmt.Fprintf(b, "OpenFile %s FOR %s\n", st.Name, st.Mode)
	case *ReadFile:
		fmt.Fprintf(b, "ReadFile %s, %s\n", st.Name, printExpr(st.Target))
	case *WriteFile:
		fmt.Fprintf(b, "WriteFile %s, %s\n", st.Name, printExpr(st.Value))
	case *CloseFile:
		fmt.Fprintf(b, "CloseFile %s\n", st.Name)
	default:
		fmt.Fprintf(b, "<unknown stmt %T>\n", s)
	}
}

func printSignature(decl *CallableDecl) string {
	parts := make([]string, len(decl.Params))
	for i, p := range decl.Params {
		mode := "BYVALUE"
		if p.Mode == types.ByRef {
			mode = "BYREF"
		}
		parts[i] = fmt.Sprintf("%s : %s %s", p.Name, mode, p.Type)
	}
	sig := fmt.Sprintf("%s(%s)", decl.Name, strings.Join(parts, ", "))
	if decl.ReturnType != nil {
		sig += " RETURNS " + decl.ReturnType.String()
	}
	return sig
}

func printExpr(e Expr) string {
	switch ex := e.(type) {
	case *Literal:
		return printLiteral(ex.Value)
	case *Name:
		return ex.Ident
	case *Unary:
		return fmt.Sprintf("(%s %s)", ex.Op, printExpr(ex.Operand))
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", printExpr(ex.Left), ex.Op, printExpr(ex.Right))
	case *Index:
		parts := make([]string, len(ex.Indices))
		for i, idx := range ex.Indices {
			parts[i] = printExpr(idx)
		}
		return fmt.Sprintf("%s[%s]", printExpr(ex.Array), strings.Join(parts, ", "))
	case *Field:
		return fmt.Sprintf("%s.%s", printExpr(ex.Record), ex.FieldName)
	case *Call:
		parts := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			parts[i] = printExpr(a)
		}
		return fmt.Sprintf("%s(%s)", ex.Name, strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

func printLiteral(v any) string {
	switch lv := v.(type) {
	case int64:
		return strconv.FormatInt(lv, 10)
	case float64:
		return strconv.FormatFloat(lv, 'g', -1, 64)
	case string:
		return strconv.Quote(lv)
	case bool:
		if lv {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", lv)
	}
}
