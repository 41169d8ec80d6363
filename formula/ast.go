package formula

import (
	"fmt"

	"github.com/midbel/gridcalc/formula/op"
	"github.com/midbel/gridcalc/value"
)

type Expr interface {
	fmt.Stringer
}

type number struct {
	value float64
}

func NewNumber(f float64) Expr {
	return number{
		value: f,
	}
}

func (n number) String() string {
	return value.FormatNumber(n.value)
}

type unary struct {
	expr Expr
	op   op.Op
}

func NewUnary(expr Expr, oper op.Op) Expr {
	return unary{
		expr: expr,
		op:   oper,
	}
}

func (u unary) String() string {
	return fmt.Sprintf("%s%s", op.Symbol(u.op), u.expr)
}

type binary struct {
	left  Expr
	right Expr
	op    op.Op
}

func NewBinary(left, right Expr, oper op.Op) Expr {
	return binary{
		left:  left,
		right: right,
		op:    oper,
	}
}

func (b binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.left, op.Symbol(b.op), b.right)
}

type and struct {
	left  Expr
	right Expr
}

func NewAnd(left, right Expr) Expr {
	return and{
		left:  left,
		right: right,
	}
}

func (a and) String() string {
	return fmt.Sprintf("(%s && %s)", a.left, a.right)
}

type or struct {
	left  Expr
	right Expr
}

func NewOr(left, right Expr) Expr {
	return or{
		left:  left,
		right: right,
	}
}

func (o or) String() string {
	return fmt.Sprintf("(%s || %s)", o.left, o.right)
}
