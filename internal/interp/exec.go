package interp

import (
	"strconv"
	"strings"

	"github.com/nyjc-computing/pseudo9608/internal/ast"
	cerrors "github.com/nyjc-computing/pseudo9608/internal/errors"
	"github.com/nyjc-computing/pseudo9608/internal/types"
)

// exec runs one statement against env, returning a non-nil signal only
// when a RETURN has fired somewhere beneath it.
func (i *Interpreter) exec(env *Environment, s ast.Stmt) (*signal, *cerrors.Diagnostic) {
	if i.tracer != nil {
		i.tracer.Statement(stmtKind(s), s.Position())
	}
	switch st := s.(type) {
	case *ast.Declare:
		env.Define(st.Name, Zero(st.DeclType, i.records))
		return nil, nil
	case *ast.DeclareArray:
		return nil, i.execDeclareArray(env, st)
	case *ast.TypeDecl:
		return nil, nil // already absorbed into i.records by the resolver
	case *ast.Assign:
		return nil, i.execAssign(env, st)
	case *ast.Output:
		return nil, i.execOutput(env, st)
	case *ast.Input:
		return nil, i.execInput(env, st)
	case *ast.If:
		return i.execIf(env, st)
	case *ast.Case:
		return i.execCase(env, st)
	case *ast.While:
		return i.execWhile(env, st)
	case *ast.Repeat:
		return i.execRepeat(env, st)
	case *ast.For:
		return i.execFor(env, st)
	case *ast.ProcedureDecl, *ast.FunctionDecl:
		return nil, nil
	case *ast.CallStmt:
		_, err := i.call(env, st.Name, st.Args, st.Position())
		return nil, err
	case *ast.Return:
		v, err := i.eval(env, st.Value)
		if err != nil {
			return nil, err
		}
		return &signal{isReturn: true, value: v}, nil
	case *ast.OpenFile:
		return nil, i.execOpenFile(st)
	case *ast.ReadFile:
		return nil, i.execReadFile(env, st)
	case *ast.WriteFile:
		return nil, i.execWriteFile(env, st)
	case *ast.CloseFile:
		return nil, i.execCloseFile(st)
	default:
		return nil, i.runtimeErrorf(s.Position(), "internal: unhandled statement type %T", s)
	}
}

func stmtKind(s ast.Stmt) string {
	switch s.(type) {
	case *ast.Declare:
		return "Declare"
	case *ast.DeclareArray:
		return "DeclareArray"
	case *ast.TypeDecl:
		return "TypeDecl"
	case *ast.Assign:
		return "Assign"
	case *ast.Output:
		return "Output"
	case *ast.Input:
		return "Input"
	case *ast.If:
		return "If"
	case *ast.Case:
		return "Case"
	case *ast.While:
		return "While"
	case *ast.Repeat:
		return "Repeat"
	case *ast.For:
		return "For"
	case *ast.ProcedureDecl:
		return "ProcedureDecl"
	case *ast.FunctionDecl:
		return "FunctionDecl"
	case *ast.CallStmt:
		return "CallStmt"
	case *ast.Return:
		return "Return"
	case *ast.OpenFile:
		return "OpenFile"
	case *ast.ReadFile:
		return "ReadFile"
	case *ast.WriteFile:
		return "WriteFile"
	case *ast.CloseFile:
		return "CloseFile"
	default:
		return "Unknown"
	}
}

func (i *Interpreter) execBlock(env *Environment, block ast.Block) (*signal, *cerrors.Diagnostic) {
	for _, s := range block {
		sig, err := i.exec(env, s)
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return sig, nil
		}
	}
	return nil, nil
}

func (i *Interpreter) execDeclareArray(env *Environment, st *ast.DeclareArray) *cerrors.Diagnostic {
	bounds := make([]types.Bound, len(st.Bounds))
	for n, b := range st.Bounds {
		lo, err := i.eval(env, b.Lo)
		if err != nil {
			return err
		}
		hi, err := i.eval(env, b.Hi)
		if err != nil {
			return err
		}
		bounds[n] = types.Bound{Lo: lo.(IntegerValue).V, Hi: hi.(IntegerValue).V}
	}
	env.Define(st.Name, Zero(types.NewArray(st.ElemType, bounds), i.records))
	return nil
}

func (i *Interpreter) execAssign(env *Environment, st *ast.Assign) *cerrors.Diagnostic {
	value, err := i.eval(env, st.Value)
	if err != nil {
		return err
	}
	_, ref, goErr := i.evaluateLValue(env, st.Target)
	if goErr != nil {
		return i.runtimeErrorf(st.Position(), "%s", goErr)
	}
	if setErr := ref.Set(widen(value.Clone(), st.Target.Type())); setErr != nil {
		return i.runtimeErrorf(st.Position(), "%s", setErr)
	}
	return nil
}

func (i *Interpreter) execOutput(env *Environment, st *ast.Output) *cerrors.Diagnostic {
	var b strings.Builder
	for _, e := range st.Exprs {
		v, err := i.eval(env, e)
		if err != nil {
			return err
		}
		b.WriteString(v.String())
	}
	b.WriteByte('\n')
	i.host.Write(b.String())
	return nil
}

func (i *Interpreter) execInput(env *Environment, st *ast.Input) *cerrors.Diagnostic {
	line, goErr := i.host.ReadLine()
	if goErr != nil {
		return i.runtimeErrorf(st.Position(), "reading input: %s", goErr)
	}
	v, goErr := coerce(line, st.Target.Type())
	if goErr != nil {
		return i.runtimeErrorf(st.Position(), "cannot read %q as %s", line, st.Target.Type())
	}
	_, ref, goErr := i.evaluateLValue(env, st.Target)
	if goErr != nil {
		return i.runtimeErrorf(st.Position(), "%s", goErr)
	}
	if setErr := ref.Set(v); setErr != nil {
		return i.runtimeErrorf(st.Position(), "%s", setErr)
	}
	return nil
}

func coerce(line string, t types.Type) (Value, error) {
	switch t.Tag {
	case types.INTEGER:
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			return nil, err
		}
		return IntegerValue{V: n}, nil
	case types.REAL:
		f, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			return nil, err
		}
		return RealValue{V: f}, nil
	case types.BOOLEAN:
		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "TRUE":
			return BooleanValue{V: true}, nil
		case "FALSE":
			return BooleanValue{V: false}, nil
		default:
			return nil, strconv.ErrSyntax
		}
	default:
		return StringValue{V: line}, nil
	}
}

func (i *Interpreter) execIf(env *Environment, st *ast.If) (*signal, *cerrors.Diagnostic) {
	cond, err := i.eval(env, st.Cond)
	if err != nil {
		return nil, err
	}
	if cond.(BooleanValue).V {
		return i.execBlock(env, st.Then)
	}
	return i.execBlock(env, st.Else)
}

func (i *Interpreter) execCase(env *Environment, st *ast.Case) (*signal, *cerrors.Diagnostic) {
	subject, err := i.eval(env, st.Subject)
	if err != nil {
		return nil, err
	}
	for _, c := range st.Clauses {
		val, err := i.eval(env, c.Value)
		if err != nil {
			return nil, err
		}
		if valuesEqual(subject, widen(val, subject.Type())) {
			return i.exec(env, c.Stmt)
		}
	}
	if st.Otherwise != nil {
		return i.exec(env, st.Otherwise)
	}
	return nil, nil
}

func (i *Interpreter) execWhile(env *Environment, st *ast.While) (*signal, *cerrors.Diagnostic) {
	for {
		cond, err := i.eval(env, st.Cond)
		if err != nil {
			return nil, err
		}
		if !cond.(BooleanValue).V {
			return nil, nil
		}
		sig, err := i.execBlock(env, st.Body)
		if err != nil || sig != nil {
			return sig, err
		}
	}
}

func (i *Interpreter) execRepeat(env *Environment, st *ast.Repeat) (*signal, *cerrors.Diagnostic) {
	for {
		sig, err := i.execBlock(env, st.Body)
		if err != nil || sig != nil {
			return sig, err
		}
		cond, err := i.eval(env, st.Cond)
		if err != nil {
			return nil, err
		}
		if cond.(BooleanValue).V {
			return nil, nil
		}
	}
}

func (i *Interpreter) execFor(env *Environment, st *ast.For) (*signal, *cerrors.Diagnostic) {
	start, err := i.eval(env, st.Start)
	if err != nil {
		return nil, err
	}
	stop, err := i.eval(env, st.Stop)
	if err != nil {
		return nil, err
	}
	step := IntegerValue{V: 1}
	if st.Step != nil {
		v, err := i.eval(env, st.Step)
		if err != nil {
			return nil, err
		}
		step = toInt(v)
	}
	if step.V == 0 {
		return nil, i.runtimeErrorf(st.Position(), "FOR step must not be zero")
	}

	startI, stopI := toInt(start), toInt(stop)
	env.Define(st.Var, IntegerValue{V: startI.V})
	for {
		cur, _ := env.Get(st.Var)
		v := cur.(IntegerValue).V
		if step.V > 0 && v > stopI.V {
			return nil, nil
		}
		if step.V < 0 && v < stopI.V {
			return nil, nil
		}
		sig, err := i.execBlock(env, st.Body)
		if err != nil || sig != nil {
			return sig, err
		}
		env.Assign(st.Var, IntegerValue{V: v + step.V})
	}
}

func toInt(v Value) IntegerValue {
	if iv, ok := v.(IntegerValue); ok {
		return iv
	}
	return IntegerValue{V: int64(v.(RealValue).V)}
}

func (i *Interpreter) execOpenFile(st *ast.OpenFile) *cerrors.Diagnostic {
	if _, open := i.files[st.Name]; open {
		return i.runtimeErrorf(st.Position(), "file %q is already open", st.Name)
	}
	f, goErr := i.host.Open(st.Name, st.Mode)
	if goErr != nil {
		return i.runtimeErrorf(st.Position(), "opening %q: %s", st.Name, goErr)
	}
	i.files[st.Name] = &openFile{handle: f, mode: st.Mode}
	return nil
}

func (i *Interpreter) execReadFile(env *Environment, st *ast.ReadFile) *cerrors.Diagnostic {
	of, open := i.files[st.Name]
	if !open {
		return i.runtimeErrorf(st.Position(), "file %q is not open", st.Name)
	}
	if of.mode != types.ReadMode {
		return i.runtimeErrorf(st.Position(), "file %q is not open for reading", st.Name)
	}
	line, ok, goErr := of.handle.ReadLine()
	if goErr != nil {
		return i.runtimeErrorf(st.Position(), "reading %q: %s", st.Name, goErr)
	}
	if !ok {
		return i.runtimeErrorf(st.Position(), "read past end-of-file on %q", st.Name)
	}
	v, goErr := coerce(line, st.Target.Type())
	if goErr != nil {
		return i.runtimeErrorf(st.Position(), "cannot read %q as %s", line, st.Target.Type())
	}
	_, ref, goErr := i.evaluateLValue(env, st.Target)
	if goErr != nil {
		return i.runtimeErrorf(st.Position(), "%s", goErr)
	}
	if setErr := ref.Set(v); setErr != nil {
		return i.runtimeErrorf(st.Position(), "%s", setErr)
	}
	return nil
}

func (i *Interpreter) execWriteFile(env *Environment, st *ast.WriteFile) *cerrors.Diagnostic {
	of, open := i.files[st.Name]
	if !open {
		return i.runtimeErrorf(st.Position(), "file %q is not open", st.Name)
	}
	if of.mode != types.WriteMode && of.mode != types.AppendMode {
		return i.runtimeErrorf(st.Position(), "file %q is not open for writing", st.Name)
	}
	v, err := i.eval(env, st.Value)
	if err != nil {
		return err
	}
	if goErr := of.handle.WriteLine(v.String()); goErr != nil {
		return i.runtimeErrorf(st.Position(), "writing %q: %s", st.Name, goErr)
	}
	return nil
}

func (i *Interpreter) execCloseFile(st *ast.CloseFile) *cerrors.Diagnostic {
	of, open := i.files[st.Name]
	if !open {
		return i.runtimeErrorf(st.Position(), "file %q is not open", st.Name)
	}
	delete(i.files, st.Name)
	if goErr := of.handle.Close(); goErr != nil {
		return i.runtimeErrorf(st.Position(), "closing %q: %s", st.Name, goErr)
	}
	return nil
}
