// Package ast defines the statement/expression tree produced by the parser
// and annotated in place by the resolver (every expression node gains a
// resolved type; nothing else about the tree's shape changes).
package ast

import (
	"github.com/nyjc-computing/pseudo9608/internal/token"
	"github.com/nyjc-computing/pseudo9608/internal/types"
)

// Node is implemented by every AST node so diagnostics can always report a
// source position.
type Node interface {
	Position() token.Position
}

// Expr is any expression node. After a successful resolve pass, Type()
// returns a non-zero types.Type for every Expr reachable from the program.
type Expr interface {
	Node
	Type() types.Type
	SetType(types.Type)
	exprNode()
}

// ExprBase is embedded by every concrete expression to supply Position,
// Type, and SetType without repeating them on each node.
type ExprBase struct {
	Pos      token.Position
	Resolved types.Type
}

func (e *ExprBase) Position() token.Position { return e.Pos }
func (e *ExprBase) Type() types.Type         { return e.Resolved }
func (e *ExprBase) SetType(t types.Type)     { e.Resolved = t }
func (e *ExprBase) exprNode()                {}

// Literal is a constant value written directly in source: an integer,
// real, string, or boolean.
type Literal struct {
	ExprBase
	Value any // int64, float64, string, or bool
}

// Name is a bare identifier reference, resolved against the enclosing
// frame chain.
type Name struct {
	ExprBase
	Ident string
}

// Unary is a prefix operator: NOT or unary MINUS.
type Unary struct {
	ExprBase
	Op      token.Kind
	Operand Expr
}

// Binary is an infix operator: arithmetic, relational, or logical.
type Binary struct {
	ExprBase
	Op          token.Kind
	Left, Right Expr
}

// Index is an array subscript expression, e.g. A[i] or M[i, j].
type Index struct {
	ExprBase
	Array   Expr
	Indices []Expr
}

// Field is a record member access expression, e.g. P.X.
type Field struct {
	ExprBase
	Record    Expr
	FieldName string
}

// Call is a function-call expression (procedures are called via the
// CallStmt statement form, never as an expression).
type Call struct {
	ExprBase
	Name string
	Args []Expr
}

func NewLiteral(pos token.Position, value any) *Literal { return &Literal{ExprBase: ExprBase{Pos: pos}, Value: value} }
func NewName(pos token.Position, ident string) *Name    { return &Name{ExprBase: ExprBase{Pos: pos}, Ident: ident} }

// NewUnary builds a Unary expression node at pos.
func NewUnary(pos token.Position, op token.Kind, operand Expr) *Unary {
	return &Unary{ExprBase: ExprBase{Pos: pos}, Op: op, Operand: operand}
}

// NewBinary builds a Binary expression node at pos.
func NewBinary(pos token.Position, op token.Kind, left, right Expr) *Binary {
	return &Binary{ExprBase: ExprBase{Pos: pos}, Op: op, Left: left, Right: right}
}

// NewIndex builds an Index expression node at pos.
func NewIndex(pos token.Position, array Expr, indices []Expr) *Index {
	return &Index{ExprBase: ExprBase{Pos: pos}, Array: array, Indices: indices}
}

// NewField builds a Field expression node at pos.
func NewField(pos token.Position, record Expr, name string) *Field {
	return &Field{ExprBase: ExprBase{Pos: pos}, Record: record, FieldName: name}
}

// NewCall builds a Call expression node at pos.
func NewCall(pos token.Position, name string, args []Expr) *Call {
	return &Call{ExprBase: ExprBase{Pos: pos}, Name: name, Args: args}
}

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

type StmtBase struct {
	Pos token.Position
}

func (s *StmtBase) Position() token.Position { return s.Pos }
func (s *StmtBase) stmtNode()                {}

// Block is a sequence of statements executed in order.
type Block []Stmt

// Program is the root of a parsed source file.
type Program struct {
	Stmts Block
}

// Declare is `DECLARE name : type`.
type Declare struct {
	StmtBase
	Name     string
	DeclType types.Type
}

// BoundSpec is one dimension of a DeclareArray: literal integer bounds,
// kept as expressions so they carry source positions for diagnostics.
type BoundSpec struct {
	Lo, Hi Expr
}

// DeclareArray is `DECLARE name : ARRAY[lo:hi, ...] OF elemtype`.
type DeclareArray struct {
	StmtBase
	Name     string
	Bounds   []BoundSpec
	ElemType types.Type
}

// FieldDecl is one field of a TypeDecl.
type FieldDecl struct {
	Name string
	Type types.Type
}

// TypeDecl is `TYPE name ... ENDTYPE`, declaring a record type.
type TypeDecl struct {
	StmtBase
	Name   string
	Fields []FieldDecl
}

// Assign is `target <- value`.
type Assign struct {
	StmtBase
	Target Expr
	Value  Expr
}

// Output is `OUTPUT expr, expr, ...`.
type Output struct {
	StmtBase
	Exprs []Expr
}

// Input is `INPUT target`.
type Input struct {
	StmtBase
	Target Expr
}

// If is `IF cond THEN ... [ELSE ...] ENDIF`.
type If struct {
	StmtBase
	Cond Expr
	Then Block
	Else Block // nil when no ELSE clause
}

// CaseClause is one `literal : stmt` arm of a Case statement.
type CaseClause struct {
	Value Expr // a literal
	Stmt  Stmt
}

// Case is `CASE OF subject ... [OTHERWISE: stmt] ENDCASE`.
type Case struct {
	StmtBase
	Subject   Expr
	Clauses   []CaseClause
	Otherwise Stmt // nil when no OTHERWISE clause
}

// While is `WHILE cond DO ... ENDWHILE` (condition tested before body).
type While struct {
	StmtBase
	Cond Expr
	Body Block
}

// Repeat is `REPEAT ... UNTIL cond` (condition tested after body).
type Repeat struct {
	StmtBase
	Body Block
	Cond Expr
}

// For is `FOR var <- start TO stop [STEP step] ... ENDFOR`. Step is nil
// when absent, in which case the resolver/interpreter treat it as 1.
type For struct {
	StmtBase
	Var         string
	Start, Stop Expr
	Step        Expr
	Body        Block
}

// Param is one formal parameter of a callable.
type Param struct {
	Name string
	Type types.Type
	Mode types.Mode
}

// CallableDecl is the shared shape of a PROCEDURE or FUNCTION declaration.
type CallableDecl struct {
	Name       string
	Params     []Param
	ReturnType *types.Type // nil for a procedure
	Body       Block
}

// ProcedureDecl declares a procedure in the global frame.
type ProcedureDecl struct {
	StmtBase
	Decl *CallableDecl
}

// FunctionDecl declares a function in the global frame.
type FunctionDecl struct {
	StmtBase
	Decl *CallableDecl
}

// CallStmt is `CALL name(args...)`, the statement form used for
// procedures (functions are invoked via the Call expression).
type CallStmt struct {
	StmtBase
	Name string
	Args []Expr
}

// Return is `RETURN expr`, valid only inside a function body.
type Return struct {
	StmtBase
	Value Expr
}

// OpenFile is `OPENFILE name FOR mode`.
type OpenFile struct {
	StmtBase
	Name string
	Mode types.FileMode
}

// ReadFile is `READFILE name, target`.
type ReadFile struct {
	StmtBase
	Name   string
	Target Expr
}

// WriteFile is `WRITEFILE name, value`.
type WriteFile struct {
	StmtBase
	Name  string
	Value Expr
}

// CloseFile is `CLOSEFILE name`.
type CloseFile struct {
	StmtBase
	Name string
}

// Constructors. Each mirrors its struct's field order and wraps pos into
// the embedded StmtBase, keeping parser call sites free of the embedding
// detail.

func NewDeclare(pos token.Position, name string, t types.Type) *Declare {
	return &Declare{StmtBase: StmtBase{Pos: pos}, Name: name, DeclType: t}
}

func NewDeclareArray(pos token.Position, name string, bounds []BoundSpec, elem types.Type) *DeclareArray {
	return &DeclareArray{StmtBase: StmtBase{Pos: pos}, Name: name, Bounds: bounds, ElemType: elem}
}

func NewTypeDecl(pos token.Position, name string, fields []FieldDecl) *TypeDecl {
	return &TypeDecl{StmtBase: StmtBase{Pos: pos}, Name: name, Fields: fields}
}

func NewAssign(pos token.Position, target, value Expr) *Assign {
	return &Assign{StmtBase: StmtBase{Pos: pos}, Target: target, Value: value}
}

func NewOutput(pos token.Position, exprs []Expr) *Output {
	return &Output{StmtBase: StmtBase{Pos: pos}, Exprs: exprs}
}

func NewInput(pos token.Position, target Expr) *Input {
	return &Input{StmtBase: StmtBase{Pos: pos}, Target: target}
}

func NewIf(pos token.Position, cond Expr, then, els Block) *If {
	return &If{StmtBase: StmtBase{Pos: pos}, Cond: cond, Then: then, Else: els}
}

func NewCase(pos token.Position, subject Expr) *Case {
	return &Case{StmtBase: StmtBase{Pos: pos}, Subject: subject}
}

func NewWhile(pos token.Position, cond Expr, body Block) *While {
	return &While{StmtBase: StmtBase{Pos: pos}, Cond: cond, Body: body}
}

func NewRepeat(pos token.Position, body Block, cond Expr) *Repeat {
	return &Repeat{StmtBase: StmtBase{Pos: pos}, Body: body, Cond: cond}
}

func NewFor(pos token.Position, v string, start, stop, step Expr, body Block) *For {
	return &For{StmtBase: StmtBase{Pos: pos}, Var: v, Start: start, Stop: stop, Step: step, Body: body}
}

func NewProcedureDecl(pos token.Position, decl *CallableDecl) *ProcedureDecl {
	return &ProcedureDecl{StmtBase: StmtBase{Pos: pos}, Decl: decl}
}

func NewFunctionDecl(pos token.Position, decl *CallableDecl) *FunctionDecl {
	return &FunctionDecl{StmtBase: StmtBase{Pos: pos}, Decl: decl}
}

func NewCallStmt(pos token.Position, name string, args []Expr) *CallStmt {
	return &CallStmt{StmtBase: StmtBase{Pos: pos}, Name: name, Args: args}
}

func NewReturn(pos token.Position, value Expr) *Return {
	return &Return{StmtBase: StmtBase{Pos: pos}, Value: value}
}

func NewOpenFile(pos token.Position, name string, mode types.FileMode) *OpenFile {
	return &OpenFile{StmtBase: StmtBase{Pos: pos}, Name: name, Mode: mode}
}

func NewReadFile(pos token.Position, name string, target Expr) *ReadFile {
	return &ReadFile{StmtBase: StmtBase{Pos: pos}, Name: name, Target: target}
}

func NewWriteFile(pos token.Position, name string, value Expr) *WriteFile {
	return &WriteFile{StmtBase: StmtBase{Pos: pos}, Name: name, Value: value}
}

func NewCloseFile(pos token.Position, name string) *CloseFile {
	return &CloseFile{StmtBase: StmtBase{Pos: pos}, Name: name}
}
