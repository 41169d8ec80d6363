package formula

import (
	"errors"
	"fmt"
	"math"

	"github.com/midbel/gridcalc/formula/op"
	"github.com/midbel/gridcalc/value"
)

var ErrEval = errors.New("expression can not be evaluated")

// Value is the result of a calculated expression: a number or a boolean.
type Value struct {
	number  float64
	boolean bool
	isBool  bool
}

func Number(f float64) Value {
	return Value{
		number: f,
	}
}

func Boolean(b bool) Value {
	return Value{
		boolean: b,
		isBool:  true,
	}
}

func (v Value) IsBool() bool {
	return v.isBool
}

// Float gives the numeric value of v. Booleans count as 1 and 0.
func (v Value) Float() float64 {
	if !v.isBool {
		return v.number
	}
	if v.boolean {
		return 1
	}
	return 0
}

func (v Value) True() bool {
	if v.isBool {
		return v.boolean
	}
	return v.number != 0 && !math.IsNaN(v.number)
}

func (v Value) String() string {
	if v.isBool {
		if v.boolean {
			return "true"
		}
		return "false"
	}
	return value.FormatNumber(v.number)
}

func Eval(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case number:
		return Number(e.value), nil
	case unary:
		return evalUnary(e)
	case binary:
		return evalBinary(e)
	case and:
		return evalAnd(e)
	case or:
		return evalOr(e)
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrEval, expr)
	}
}

func evalUnary(e unary) (Value, error) {
	v, err := Eval(e.expr)
	if err != nil {
		return v, err
	}
	switch e.op {
	case op.Not:
		return Boolean(!v.True()), nil
	case op.Sub:
		return checkFinite(-v.Float())
	case op.Add:
		return checkFinite(v.Float())
	default:
		return Value{}, fmt.Errorf("%w: unsupported unary operator %s", ErrEval, op.Symbol(e.op))
	}
}

func evalBinary(e binary) (Value, error) {
	left, err := Eval(e.left)
	if err != nil {
		return left, err
	}
	right, err := Eval(e.right)
	if err != nil {
		return right, err
	}
	switch e.op {
	case op.Add:
		return doMath(left, right, func(left, right float64) float64 {
			return left + right
		})
	case op.Sub:
		return doMath(left, right, func(left, right float64) float64 {
			return left - right
		})
	case op.Mul:
		return doMath(left, right, func(left, right float64) float64 {
			return left * right
		})
	case op.Div:
		return doMath(left, right, func(left, right float64) float64 {
			return left / right
		})
	case op.Mod:
		return doMath(left, right, math.Mod)
	case op.Pow:
		return doMath(left, right, math.Pow)
	case op.Eq:
		return Boolean(left.Float() == right.Float()), nil
	case op.Ne:
		return Boolean(left.Float() != right.Float()), nil
	case op.StrictEq:
		return Boolean(strictEqual(left, right)), nil
	case op.StrictNe:
		return Boolean(!strictEqual(left, right)), nil
	case op.Le:
		return Boolean(left.Float() <= right.Float()), nil
	case op.Ge:
		return Boolean(left.Float() >= right.Float()), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported binary operator %s", ErrEval, op.Symbol(e.op))
	}
}

// evalAnd and evalOr give back the operand that decided the result.
func evalAnd(e and) (Value, error) {
	left, err := Eval(e.left)
	if err != nil || !left.True() {
		return left, err
	}
	return Eval(e.right)
}

func evalOr(e or) (Value, error) {
	left, err := Eval(e.left)
	if err != nil || left.True() {
		return left, err
	}
	return Eval(e.right)
}

func strictEqual(left, right Value) bool {
	if left.IsBool() != right.IsBool() {
		return false
	}
	return left.Float() == right.Float()
}

func doMath(left, right Value, do func(left, right float64) float64) (Value, error) {
	return checkFinite(do(left.Float(), right.Float()))
}

func checkFinite(f float64) (Value, error) {
	f, err := value.Finite(f)
	if err != nil {
		return Value{}, err
	}
	return Number(f), nil
}
