package interp

import (
	"github.com/nyjc-computing/pseudo9608/internal/ast"
	cerrors "github.com/nyjc-computing/pseudo9608/internal/errors"
	"github.com/nyjc-computing/pseudo9608/internal/token"
	"github.com/nyjc-computing/pseudo9608/internal/types"
)

func (i *Interpreter) eval(env *Environment, e ast.Expr) (Value, *cerrors.Diagnostic) {
	switch ex := e.(type) {
	case *ast.Literal:
		return literalValue(ex), nil
	case *ast.Name:
		v, ok := env.Get(ex.Ident)
		if !ok {
			return nil, i.runtimeErrorf(ex.Position(), "undefined variable: %s", ex.Ident)
		}
		return v, nil
	case *ast.Unary:
		return i.evalUnary(env, ex)
	case *ast.Binary:
		return i.evalBinary(env, ex)
	case *ast.Index:
		v, ref, goErr := i.evaluateLValue(env, ex)
		_ = ref
		if goErr != nil {
			return nil, i.runtimeErrorf(ex.Position(), "%s", goErr)
		}
		return v, nil
	case *ast.Field:
		v, ref, goErr := i.evaluateLValue(env, ex)
		_ = ref
		if goErr != nil {
			return nil, i.runtimeErrorf(ex.Position(), "%s", goErr)
		}
		return v, nil
	case *ast.Call:
		return i.call(env, ex.Name, ex.Args, ex.Position())
	default:
		return nil, i.runtimeErrorf(e.Position(), "internal: unhandled expression type %T", e)
	}
}

func literalValue(lit *ast.Literal) Value {
	switch v := lit.Value.(type) {
	case int64:
		return IntegerValue{V: v}
	case float64:
		return RealValue{V: v}
	case string:
		return StringValue{V: v}
	case bool:
		return BooleanValue{V: v}
	default:
		return StringValue{}
	}
}

func (i *Interpreter) evalUnary(env *Environment, u *ast.Unary) (Value, *cerrors.Diagnostic) {
	v, err := i.eval(env, u.Operand)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case token.MINUS:
		if iv, ok := v.(IntegerValue); ok {
			return IntegerValue{V: -iv.V}, nil
		}
		return RealValue{V: -v.(RealValue).V}, nil
	case token.NOT:
		return BooleanValue{V: !v.(BooleanValue).V}, nil
	default:
		return nil, i.runtimeErrorf(u.Position(), "internal: unknown unary operator %s", u.Op)
	}
}

func (i *Interpreter) evalBinary(env *Environment, b *ast.Binary) (Value, *cerrors.Diagnostic) {
	if b.Op == token.AND {
		left, err := i.eval(env, b.Left)
		if err != nil {
			return nil, err
		}
		if !left.(BooleanValue).V {
			return BooleanValue{V: false}, nil
		}
		right, err := i.eval(env, b.Right)
		if err != nil {
			return nil, err
		}
		return BooleanValue{V: right.(BooleanValue).V}, nil
	}
	if b.Op == token.OR {
		left, err := i.eval(env, b.Left)
		if err != nil {
			return nil, err
		}
		if left.(BooleanValue).V {
			return BooleanValue{V: true}, nil
		}
		right, err := i.eval(env, b.Right)
		if err != nil {
			return nil, err
		}
		return BooleanValue{V: right.(BooleanValue).V}, nil
	}

	left, err := i.eval(env, b.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(env, b.Right)
	if err != nil {
		return nil, err
	}

	resultReal := left.Type().Tag == types.REAL || right.Type().Tag == types.REAL
	switch b.Op {
	case token.PLUS, token.MINUS, token.STAR:
		if resultReal {
			lf, rf := asFloat(left), asFloat(right)
			switch b.Op {
			case token.PLUS:
				return RealValue{V: lf + rf}, nil
			case token.MINUS:
				return RealValue{V: lf - rf}, nil
			default:
				return RealValue{V: lf * rf}, nil
			}
		}
		li, ri := left.(IntegerValue).V, right.(IntegerValue).V
		switch b.Op {
		case token.PLUS:
			return IntegerValue{V: li + ri}, nil
		case token.MINUS:
			return IntegerValue{V: li - ri}, nil
		default:
			return IntegerValue{V: li * ri}, nil
		}
	case token.SLASH:
		rf := asFloat(right)
		if rf == 0 {
			return nil, i.runtimeErrorf(b.Position(), "division by zero")
		}
		return RealValue{V: asFloat(left) / rf}, nil
	case token.EQ:
		return BooleanValue{V: valuesEqual(left, right)}, nil
	case token.NE:
		return BooleanValue{V: !valuesEqual(left, right)}, nil
	case token.LT:
		return BooleanValue{V: asFloat(left) < asFloat(right)}, nil
	case token.GT:
		return BooleanValue{V: asFloat(left) > asFloat(right)}, nil
	case token.LE:
		return BooleanValue{V: asFloat(left) <= asFloat(right)}, nil
	case token.GE:
		return BooleanValue{V: asFloat(left) >= asFloat(right)}, nil
	default:
		return nil, i.runtimeErrorf(b.Position(), "internal: unknown binary operator %s", b.Op)
	}
}

func asFloat(v Value) float64 {
	switch n := v.(type) {
	case IntegerValue:
		return float64(n.V)
	case RealValue:
		return n.V
	default:
		return 0
	}
}

// valuesEqual compares two scalar values for = and <>, and CASE label
// matching, with INTEGER/REAL values compared numerically.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case IntegerValue, RealValue:
		return asFloat(a) == asFloat(b)
	case StringValue:
		return av.V == b.(StringValue).V
	case BooleanValue:
		return av.V == b.(BooleanValue).V
	default:
		return false
	}
}
