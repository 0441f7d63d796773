// Package resolver is the static pre-execution pass: it type-checks the
// parsed AST in place (every Expr node gets its resolved type set),
// builds the global frame's declaration layout, and rejects any program
// that would hit a type-tag mismatch at runtime.
package resolver

import (
	"github.com/nyjc-computing/pseudo9608/internal/ast"
	"github.com/nyjc-computing/pseudo9608/internal/builtins"
	cerrors "github.com/nyjc-computing/pseudo9608/internal/errors"
	"github.com/nyjc-computing/pseudo9608/internal/token"
	"github.com/nyjc-computing/pseudo9608/internal/types"
)

// Result is what a successful resolve pass hands to the interpreter: the
// same *ast.Program (now fully typed in place), the record layouts the
// program declared, and the flat set of names that belong in the global
// frame (user declarations, callables, and built-ins together).
type Result struct {
	Program *ast.Program
	Records map[string]*types.RecordDef
	Globals map[string]types.Type
}

type resolver struct {
	global  *Frame
	current *Frame
	records map[string]*types.RecordDef

	// funcReturn is the declared return type of the function currently
	// being resolved, or nil outside any callable body.
	funcReturn *types.Type
	// inProcedure is true while resolving a procedure body (RETURN is an
	// error there regardless of funcReturn).
	inProcedure bool
	// callableName names the callable whose body is being resolved, for
	// attaching to diagnostics; empty at global scope.
	callableName string
}

// Resolve type-checks prog and returns the declaration layout the
// interpreter needs to seed its global frame.
func Resolve(prog *ast.Program) (*Result, *cerrors.Diagnostic) {
	r := &resolver{
		global:  newFrame(nil),
		records: make(map[string]*types.RecordDef),
	}
	r.current = r.global
	for name, sig := range builtins.Signatures() {
		r.global.define(name, sig)
	}

	for _, stmt := range prog.Stmts {
		if err := r.resolveStmt(stmt); err != nil {
			return nil, err
		}
	}

	globals := make(map[string]types.Type, len(r.global.vars))
	for name, sym := range r.global.vars {
		globals[name] = sym.Type
	}
	return &Result{Program: prog, Records: r.records, Globals: globals}, nil
}

func (r *resolver) errorf(pos token.Position, format string, args ...any) *cerrors.Diagnostic {
	d := cerrors.New(cerrors.Resolve, pos, format, args...)
	if r.callableName != "" {
		d = d.WithCallable(r.callableName)
	}
	return d
}

// isVariableRef reports whether e is a Name, Index, or Field — the only
// expression forms that denote an assignable storage location.
func isVariableRef(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Name, *ast.Index, *ast.Field:
		return true
	default:
		return false
	}
}

func isScalarPrimitive(t types.Type) bool {
	switch t.Tag {
	case types.INTEGER, types.REAL, types.STRING, types.BOOLEAN:
		return true
	default:
		return false
	}
}

// --- Statements ---

func (r *resolver) resolveStmt(s ast.Stmt) *cerrors.Diagnostic {
	switch st := s.(type) {
	case *ast.Declare:
		return r.resolveDeclare(st)
	case *ast.DeclareArray:
		return r.resolveDeclareArray(st)
	case *ast.TypeDecl:
		return r.resolveTypeDecl(st)
	case *ast.Assign:
		return r.resolveAssign(st)
	case *ast.Output:
		return r.resolveOutput(st)
	case *ast.Input:
		return r.resolveInput(st)
	case *ast.If:
		return r.resolveIf(st)
	case *ast.Case:
		return r.resolveCase(st)
	case *ast.While:
		return r.resolveWhile(st)
	case *ast.Repeat:
		return r.resolveRepeat(st)
	case *ast.For:
		return r.resolveFor(st)
	case *ast.ProcedureDecl:
		return r.resolveProcedureDecl(st)
	case *ast.FunctionDecl:
		return r.resolveFunctionDecl(st)
	case *ast.CallStmt:
		return r.resolveCallStmt(st)
	case *ast.Return:
		return r.resolveReturn(st)
	case *ast.OpenFile:
		return nil // mode and dotted name are already fixed at parse time
	case *ast.ReadFile:
		return r.resolveReadFile(st)
	case *ast.WriteFile:
		return r.resolveWriteFile(st)
	case *ast.CloseFile:
		return nil
	default:
		return r.errorf(s.Position(), "internal: unhandled statement type %T", s)
	}
}

func (r *resolver) resolveDeclare(st *ast.Declare) *cerrors.Diagnostic {
	if st.DeclType.Tag == types.RECORD {
		if _, ok := r.records[st.DeclType.Name]; !ok {
			return r.errorf(st.Position(), "unknown type %q", st.DeclType.Name)
		}
	}
	if !r.current.define(st.Name, st.DeclType) {
		return r.errorf(st.Position(), "%q is already declared in this scope", st.Name)
	}
	return nil
}

func (r *resolver) resolveDeclareArray(st *ast.DeclareArray) *cerrors.Diagnostic {
	if len(st.Bounds) != 1 && len(st.Bounds) != 2 {
		return r.errorf(st.Position(), "array must have 1 or 2 dimensions, got %d", len(st.Bounds))
	}
	if st.ElemType.Tag == types.RECORD {
		if _, ok := r.records[st.ElemType.Name]; !ok {
			return r.errorf(st.Position(), "unknown type %q", st.ElemType.Name)
		}
	}
	bounds := make([]types.Bound, 0, len(st.Bounds))
	for _, b := range st.Bounds {
		lo, ok1 := intLiteral(b.Lo)
		hi, ok2 := intLiteral(b.Hi)
		if !ok1 || !ok2 {
			return r.errorf(st.Position(), "array bounds must be integer literals")
		}
		if hi < lo {
			return r.errorf(st.Position(), "array upper bound %d is less than lower bound %d", hi, lo)
		}
		bounds = append(bounds, types.Bound{Lo: lo, Hi: hi})
	}
	arrType := types.NewArray(st.ElemType, bounds)
	if !r.current.define(st.Name, arrType) {
		return r.errorf(st.Position(), "%q is already declared in this scope", st.Name)
	}
	return nil
}

func intLiteral(e ast.Expr) (int64, bool) {
	lit, ok := e.(*ast.Literal)
	if !ok {
		return 0, false
	}
	v, ok := lit.Value.(int64)
	return v, ok
}

func (r *resolver) resolveTypeDecl(st *ast.TypeDecl) *cerrors.Diagnostic {
	if _, exists := r.records[st.Name]; exists {
		return r.errorf(st.Position(), "type %q is already declared", st.Name)
	}
	fields := make([]types.Field, 0, len(st.Fields))
	for _, f := range st.Fields {
		if f.Type.Tag == types.RECORD {
			if _, ok := r.records[f.Type.Name]; !ok {
				return r.errorf(st.Position(), "unknown type %q for field %q", f.Type.Name, f.Name)
			}
		}
		fields = append(fields, types.Field{Name: f.Name, Type: f.Type})
	}
	r.records[st.Name] = &types.RecordDef{Name: st.Name, Fields: fields}
	return nil
}

func (r *resolver) resolveAssign(st *ast.Assign) *cerrors.Diagnostic {
	if !isVariableRef(st.Target) {
		return r.errorf(st.Position(), "assignment target must be a variable, index, or field reference")
	}
	targetType, err := r.resolveExpr(st.Target)
	if err != nil {
		return err
	}
	valueType, err := r.resolveExpr(st.Value)
	if err != nil {
		return err
	}
	if !types.AssignableTo(valueType, targetType) {
		return r.errorf(st.Position(), "cannot assign %s to %s", valueType, targetType)
	}
	return nil
}

func (r *resolver) resolveOutput(st *ast.Output) *cerrors.Diagnostic {
	for _, e := range st.Exprs {
		if _, err := r.resolveExpr(e); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) resolveInput(st *ast.Input) *cerrors.Diagnostic {
	if !isVariableRef(st.Target) {
		return r.errorf(st.Position(), "INPUT target must be a variable, index, or field reference")
	}
	targetType, err := r.resolveExpr(st.Target)
	if err != nil {
		return err
	}
	if !isScalarPrimitive(targetType) {
		return r.errorf(st.Position(), "INPUT only supports INTEGER, REAL, STRING, or BOOLEAN targets, got %s", targetType)
	}
	return nil
}

func (r *resolver) resolveIf(st *ast.If) *cerrors.Diagnostic {
	condType, err := r.resolveExpr(st.Cond)
	if err != nil {
		return err
	}
	if condType.Tag != types.BOOLEAN {
		return r.errorf(st.Position(), "IF condition must be BOOLEAN, got %s", condType)
	}
	for _, s := range st.Then {
		if err := r.resolveStmt(s); err != nil {
			return err
		}
	}
	for _, s := range st.Else {
		if err := r.resolveStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) resolveCase(st *ast.Case) *cerrors.Diagnostic {
	subjType, err := r.resolveExpr(st.Subject)
	if err != nil {
		return err
	}
	for _, c := range st.Clauses {
		valType, err := r.resolveExpr(c.Value)
		if err != nil {
			return err
		}
		if !types.Equal(valType, subjType) && !types.AssignableTo(valType, subjType) {
			return r.errorf(c.Value.Position(), "CASE label type %s does not match subject type %s", valType, subjType)
		}
		if err := r.resolveStmt(c.Stmt); err != nil {
			return err
		}
	}
	if st.Otherwise != nil {
		if err := r.resolveStmt(st.Otherwise); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) resolveWhile(st *ast.While) *cerrors.Diagnostic {
	condType, err := r.resolveExpr(st.Cond)
	if err != nil {
		return err
	}
	if condType.Tag != types.BOOLEAN {
		return r.errorf(st.Position(), "WHILE condition must be BOOLEAN, got %s", condType)
	}
	for _, s := range st.Body {
		if err := r.resolveStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) resolveRepeat(st *ast.Repeat) *cerrors.Diagnostic {
	for _, s := range st.Body {
		if err := r.resolveStmt(s); err != nil {
			return err
		}
	}
	condType, err := r.resolveExpr(st.Cond)
	if err != nil {
		return err
	}
	if condType.Tag != types.BOOLEAN {
		return r.errorf(st.Position(), "UNTIL condition must be BOOLEAN, got %s", condType)
	}
	return nil
}

func (r *resolver) resolveFor(st *ast.For) *cerrors.Diagnostic {
	startType, err := r.resolveExpr(st.Start)
	if err != nil {
		return err
	}
	if !startType.IsNumeric() {
		return r.errorf(st.Start.Position(), "FOR start value must be numeric, got %s", startType)
	}
	stopType, err := r.resolveExpr(st.Stop)
	if err != nil {
		return err
	}
	if !stopType.IsNumeric() {
		return r.errorf(st.Stop.Position(), "FOR stop value must be numeric, got %s", stopType)
	}
	if st.Step != nil {
		stepType, err := r.resolveExpr(st.Step)
		if err != nil {
			return err
		}
		if !stepType.IsNumeric() {
			return r.errorf(st.Step.Position(), "FOR step value must be numeric, got %s", stepType)
		}
	}
	if !r.current.define(st.Var, types.Integer) {
		// A loop variable may reuse an existing name; the language has no
		// block scoping to make that an error, only DECLARE does.
		if sym, _ := r.current.lookup(st.Var); !sym.Type.IsNumeric() {
			return r.errorf(st.Position(), "FOR loop variable %q must be numeric, already declared as %s", st.Var, sym.Type)
		}
	}
	for _, s := range st.Body {
		if err := r.resolveStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) resolveProcedureDecl(st *ast.ProcedureDecl) *cerrors.Diagnostic {
	return r.resolveCallableDecl(st.Position(), st.Decl, nil)
}

func (r *resolver) resolveFunctionDecl(st *ast.FunctionDecl) *cerrors.Diagnostic {
	return r.resolveCallableDecl(st.Position(), st.Decl, st.Decl.ReturnType)
}

func (r *resolver) resolveCallableDecl(pos token.Position, decl *ast.CallableDecl, ret *types.Type) *cerrors.Diagnostic {
	params := make([]types.Param, 0, len(decl.Params))
	for _, p := range decl.Params {
		params = append(params, types.Param{Name: p.Name, Type: p.Type, Mode: p.Mode})
	}
	if !r.global.define(decl.Name, types.NewCallable(params, ret)) {
		return r.errorf(pos, "%q is already declared", decl.Name)
	}

	savedCurrent, savedReturn, savedProc, savedName := r.current, r.funcReturn, r.inProcedure, r.callableName
	r.current = newFrame(r.global)
	r.funcReturn = ret
	r.inProcedure = ret == nil
	r.callableName = decl.Name
	defer func() {
		r.current, r.funcReturn, r.inProcedure, r.callableName = savedCurrent, savedReturn, savedProc, savedName
	}()

	for _, p := range decl.Params {
		if !r.current.define(p.Name, p.Type) {
			return r.errorf(pos, "duplicate parameter name %q in %q", p.Name, decl.Name)
		}
	}
	for _, s := range decl.Body {
		if err := r.resolveStmt(s); err != nil {
			return err
		}
	}
	if ret != nil && !blockReturns(decl.Body) {
		return r.errorf(pos, "function %q does not return on every path", decl.Name)
	}
	return nil
}

// blockReturns reports whether every execution path through block ends in
// a RETURN. Loops are never assumed to execute, so only IF/CASE branches
// (and a final RETURN) can make a block provably returning.
func blockReturns(block ast.Block) bool {
	for _, s := range block {
		if stmtReturns(s) {
			return true
		}
	}
	return false
}

func stmtReturns(s ast.Stmt) bool {
	switch st := s.(type) {
	case *ast.Return:
		return true
	case *ast.If:
		if st.Else == nil {
			return false
		}
		return blockReturns(st.Then) && blockReturns(st.Else)
	case *ast.Case:
		if st.Otherwise == nil {
			return false
		}
		for _, c := range st.Clauses {
			if !stmtReturns(c.Stmt) {
				return false
			}
		}
		return stmtReturns(st.Otherwise)
	default:
		return false
	}
}

func (r *resolver) resolveCallStmt(st *ast.CallStmt) *cerrors.Diagnostic {
	sym, ok := r.current.lookup(st.Name)
	if !ok {
		return r.errorf(st.Position(), "undeclared name %q", st.Name)
	}
	if sym.Type.Tag != types.CALLABLE {
		return r.errorf(st.Position(), "%q is not callable", st.Name)
	}
	return r.checkArgs(st.Position(), st.Name, sym.Type, st.Args)
}

func (r *resolver) resolveReturn(st *ast.Return) *cerrors.Diagnostic {
	if r.funcReturn == nil {
		if r.inProcedure {
			return r.errorf(st.Position(), "RETURN is not allowed in a procedure")
		}
		return r.errorf(st.Position(), "RETURN is not allowed outside a function")
	}
	valType, err := r.resolveExpr(st.Value)
	if err != nil {
		return err
	}
	if !types.AssignableTo(valType, *r.funcReturn) {
		return r.errorf(st.Position(), "RETURN type %s does not match declared return type %s", valType, *r.funcReturn)
	}
	return nil
}

func (r *resolver) resolveReadFile(st *ast.ReadFile) *cerrors.Diagnostic {
	if !isVariableRef(st.Target) {
		return r.errorf(st.Position(), "READFILE target must be a variable, index, or field reference")
	}
	_, err := r.resolveExpr(st.Target)
	return err
}

func (r *resolver) resolveWriteFile(st *ast.WriteFile) *cerrors.Diagnostic {
	_, err := r.resolveExpr(st.Value)
	return err
}

// --- Expressions ---

func (r *resolver) resolveExpr(e ast.Expr) (types.Type, *cerrors.Diagnostic) {
	var t types.Type
	var err *cerrors.Diagnostic
	switch ex := e.(type) {
	case *ast.Literal:
		t, err = r.resolveLiteral(ex)
	case *ast.Name:
		t, err = r.resolveName(ex)
	case *ast.Unary:
		t, err = r.resolveUnary(ex)
	case *ast.Binary:
		t, err = r.resolveBinary(ex)
	case *ast.Index:
		t, err = r.resolveIndex(ex)
	case *ast.Field:
		t, err = r.resolveField(ex)
	case *ast.Call:
		t, err = r.resolveCall(ex)
	default:
		return types.Type{}, r.errorf(e.Position(), "internal: unhandled expression type %T", e)
	}
	if err != nil {
		return types.Type{}, err
	}
	e.SetType(t)
	return t, nil
}

func (r *resolver) resolveLiteral(lit *ast.Literal) (types.Type, *cerrors.Diagnostic) {
	switch lit.Value.(type) {
	case int64:
		return types.Integer, nil
	case float64:
		return types.RealT, nil
	case string:
		return types.StringT, nil
	case bool:
		return types.Bool, nil
	default:
		return types.Type{}, r.errorf(lit.Position(), "internal: literal of unknown kind %T", lit.Value)
	}
}

func (r *resolver) resolveName(n *ast.Name) (types.Type, *cerrors.Diagnostic) {
	sym, ok := r.current.lookup(n.Ident)
	if !ok {
		return types.Type{}, r.errorf(n.Position(), "undeclared name %q", n.Ident)
	}
	return sym.Type, nil
}

func (r *resolver) resolveUnary(u *ast.Unary) (types.Type, *cerrors.Diagnostic) {
	operandType, err := r.resolveExpr(u.Operand)
	if err != nil {
		return types.Type{}, err
	}
	switch u.Op {
	case token.MINUS:
		if !operandType.IsNumeric() {
			return types.Type{}, r.errorf(u.Position(), "unary - requires INTEGER or REAL, got %s", operandType)
		}
		return operandType, nil
	case token.NOT:
		if operandType.Tag != types.BOOLEAN {
			return types.Type{}, r.errorf(u.Position(), "NOT requires BOOLEAN, got %s", operandType)
		}
		return types.Bool, nil
	default:
		return types.Type{}, r.errorf(u.Position(), "internal: unknown unary operator %s", u.Op)
	}
}

var relOps = map[token.Kind]bool{
	token.EQ: true, token.NE: true, token.LT: true, token.GT: true, token.LE: true, token.GE: true,
}

func (r *resolver) resolveBinary(b *ast.Binary) (types.Type, *cerrors.Diagnostic) {
	leftType, err := r.resolveExpr(b.Left)
	if err != nil {
		return types.Type{}, err
	}
	rightType, err := r.resolveExpr(b.Right)
	if err != nil {
		return types.Type{}, err
	}

	switch b.Op {
	case token.PLUS, token.MINUS, token.STAR:
		if !leftType.IsNumeric() || !rightType.IsNumeric() {
			return types.Type{}, r.errorf(b.Position(), "%s requires numeric operands, got %s and %s", b.Op, leftType, rightType)
		}
		if leftType.Tag == types.REAL || rightType.Tag == types.REAL {
			return types.RealT, nil
		}
		return types.Integer, nil
	case token.SLASH:
		if !leftType.IsNumeric() || !rightType.IsNumeric() {
			return types.Type{}, r.errorf(b.Position(), "/ requires numeric operands, got %s and %s", leftType, rightType)
		}
		return types.RealT, nil
	case token.AND, token.OR:
		if leftType.Tag != types.BOOLEAN || rightType.Tag != types.BOOLEAN {
			return types.Type{}, r.errorf(b.Position(), "%s requires BOOLEAN operands, got %s and %s", b.Op, leftType, rightType)
		}
		return types.Bool, nil
	case token.EQ, token.NE:
		if !comparable(leftType, rightType) {
			return types.Type{}, r.errorf(b.Position(), "cannot compare %s with %s", leftType, rightType)
		}
		return types.Bool, nil
	case token.LT, token.GT, token.LE, token.GE:
		if leftType.Tag == types.STRING || leftType.Tag == types.BOOLEAN || rightType.Tag == types.STRING || rightType.Tag == types.BOOLEAN {
			return types.Type{}, r.errorf(b.Position(), "%s only applies to numeric operands, got %s and %s", b.Op, leftType, rightType)
		}
		if !comparable(leftType, rightType) {
			return types.Type{}, r.errorf(b.Position(), "cannot compare %s with %s", leftType, rightType)
		}
		return types.Bool, nil
	default:
		return types.Type{}, r.errorf(b.Position(), "internal: unknown binary operator %s", b.Op)
	}
}

// comparable reports whether a and b can appear on either side of a
// relational operator: identical types, or one INTEGER and one REAL.
func comparable(a, b types.Type) bool {
	if types.Equal(a, b) {
		return true
	}
	return a.IsNumeric() && b.IsNumeric()
}

func (r *resolver) resolveIndex(ix *ast.Index) (types.Type, *cerrors.Diagnostic) {
	arrType, err := r.resolveExpr(ix.Array)
	if err != nil {
		return types.Type{}, err
	}
	if arrType.Tag != types.ARRAY {
		return types.Type{}, r.errorf(ix.Position(), "cannot index non-array type %s", arrType)
	}
	if len(ix.Indices) != arrType.Rank() {
		return types.Type{}, r.errorf(ix.Position(), "array has rank %d, got %d index expressions", arrType.Rank(), len(ix.Indices))
	}
	for _, idxExpr := range ix.Indices {
		idxType, err := r.resolveExpr(idxExpr)
		if err != nil {
			return types.Type{}, err
		}
		if idxType.Tag != types.INTEGER {
			return types.Type{}, r.errorf(idxExpr.Position(), "array index must be INTEGER, got %s", idxType)
		}
	}
	return *arrType.Elem, nil
}

func (r *resolver) resolveField(f *ast.Field) (types.Type, *cerrors.Diagnostic) {
	recType, err := r.resolveExpr(f.Record)
	if err != nil {
		return types.Type{}, err
	}
	if recType.Tag != types.RECORD {
		return types.Type{}, r.errorf(f.Position(), "cannot access field %q of non-record type %s", f.FieldName, recType)
	}
	def, ok := r.records[recType.Name]
	if !ok {
		return types.Type{}, r.errorf(f.Position(), "internal: unknown record type %q", recType.Name)
	}
	fieldType, ok := def.FieldType(f.FieldName)
	if !ok {
		return types.Type{}, r.errorf(f.Position(), "record %q has no field %q", recType.Name, f.FieldName)
	}
	return fieldType, nil
}

func (r *resolver) resolveCall(c *ast.Call) (types.Type, *cerrors.Diagnostic) {
	sym, ok := r.current.lookup(c.Name)
	if !ok {
		return types.Type{}, r.errorf(c.Position(), "undeclared name %q", c.Name)
	}
	if sym.Type.Tag != types.CALLABLE || sym.Type.Return == nil {
		return types.Type{}, r.errorf(c.Position(), "%q is not a function", c.Name)
	}
	if err := r.checkArgs(c.Position(), c.Name, sym.Type, c.Args); err != nil {
		return types.Type{}, err
	}
	return *sym.Type.Return, nil
}

func (r *resolver) checkArgs(pos token.Position, name string, callable types.Type, args []ast.Expr) *cerrors.Diagnostic {
	if len(args) != len(callable.Params) {
		return r.errorf(pos, "%q expects %d argument(s), got %d", name, len(callable.Params), len(args))
	}
	for i, arg := range args {
		param := callable.Params[i]
		argType, err := r.resolveExpr(arg)
		if err != nil {
			return err
		}
		if param.Mode == types.ByRef {
			if !isVariableRef(arg) {
				return r.errorf(arg.Position(), "argument %d of %q is BYREF and must be a variable, index, or field reference", i+1, name)
			}
			if !types.Equal(argType, param.Type) {
				return r.errorf(arg.Position(), "argument %d of %q must be exactly %s, got %s", i+1, name, param.Type, argType)
			}
			continue
		}
		if !types.AssignableTo(argType, param.Type) {
			return r.errorf(arg.Position(), "argument %d of %q must be %s, got %s", i+1, name, param.Type, argType)
		}
	}
	return nil
}
