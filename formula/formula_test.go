package formula

import (
	"errors"
	"strings"
	"testing"

	"github.com/midbel/gridcalc/formula/op"
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

type fakeContext struct {
	dim   layout.Dimension
	cells map[string]string
}

func (c fakeContext) Bounds() layout.Dimension {
	return c.dim
}

func (c fakeContext) At(pos layout.Position) (string, error) {
	if err := c.dim.Check(pos); err != nil {
		return "", err
	}
	return c.cells[pos.Addr()], nil
}

func (c fakeContext) Range(start, end layout.Position) ([]string, error) {
	var list []string
	for _, pos := range layout.NewRange(start, end).Normalize().Positions() {
		str, err := c.At(pos)
		if err != nil {
			return nil, err
		}
		list = append(list, str)
	}
	return list, nil
}

func fake() Context {
	ctx := fakeContext{
		dim:   layout.DefaultDimension,
		cells: make(map[string]string),
	}
	ctx.cells["A1"] = "1"
	ctx.cells["B1"] = "foo"
	ctx.cells["C1"] = "11"
	ctx.cells["A2"] = "-2"
	ctx.cells["B2"] = "bar"
	ctx.cells["C2"] = "42"
	ctx.cells["A3"] = "0"
	ctx.cells["B3"] = "#ERROR"
	ctx.cells["C3"] = "67"
	return ctx
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		Expr string
		Want []string
	}{
		{
			Expr: "1+2",
			Want: []string{"1", "+", "2"},
		},
		{
			Expr: " A1 * ( B2 - 3 ) ",
			Want: []string{"A1", "*", "(", "B2", "-", "3", ")"},
		},
		{
			Expr: "1===1",
			Want: []string{"1", "===", "1"},
		},
		{
			Expr: "1!==2",
			Want: []string{"1", "!==", "2"},
		},
		{
			Expr: "1==2!=3",
			Want: []string{"1", "==", "2", "!=", "3"},
		},
		{
			Expr: "2**3",
			Want: []string{"2", "**", "3"},
		},
		{
			Expr: "!1&&0||1",
			Want: []string{"!", "1", "&&", "0", "||", "1"},
		},
		{
			Expr: "A1:B2;3",
			Want: []string{"A1", ":", "B2", ";", "3"},
		},
		{
			Expr: "1<=2>=3%4",
			Want: []string{"1", "<=", "2", ">=", "3", "%", "4"},
		},
		{
			Expr: "",
			Want: []string{},
		},
	}
	for _, c := range tests {
		got := Tokenize(c.Expr)
		if strings.Join(got, "|") != strings.Join(c.Want, "|") {
			t.Errorf("%s: tokens mismatched! want %q, got %q", c.Expr, c.Want, got)
		}
	}
}

func TestTokenizeSpans(t *testing.T) {
	expr := "=SUM( A1 ;$B$2)"
	for _, s := range TokenizeSpans(expr) {
		if expr[s.Offset:s.End()] != s.Text {
			t.Errorf("%s: span does not match input at %d (got %q)", s.Text, s.Offset, expr[s.Offset:s.End()])
		}
	}
}

func TestBuildSafe(t *testing.T) {
	tests := []struct {
		Expr string
		Want string
		Err  error
	}{
		{
			Expr: "1 + A1",
			Want: "1 + 1",
		},
		{
			Expr: "C1*A2",
			Want: "11 * -2",
		},
		{
			Expr: "$C$2-c3",
			Want: "42 - 67",
		},
		{
			Expr: "B1+1",
			Err:  value.ErrArgument,
		},
		{
			Expr: "D1+1",
			Err:  value.ErrArgument,
		},
		{
			Expr: "K1+1",
			Err:  value.ErrAddress,
		},
		{
			Expr: "alert(1)",
			Err:  value.ErrSyntax,
		},
		{
			Expr: "1 2",
			Err:  value.ErrSyntax,
		},
	}
	ctx := fake()
	for _, c := range tests {
		expr, err := BuildSafe(Tokenize(c.Expr), ctx)
		if c.Err != nil {
			if !errors.Is(err, c.Err) {
				t.Errorf("%s: expected error %s, got %v", c.Expr, c.Err, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: fail to build expression: %s", c.Expr, err)
			continue
		}
		if got := expr.String(); got != c.Want {
			t.Errorf("%s: safe expression mismatched! want %s, got %s", c.Expr, c.Want, got)
		}
	}
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		Expr string
		Want Expr
	}{
		{
			Expr: "1+2*3",
			Want: NewBinary(NewNumber(1), NewBinary(NewNumber(2), NewNumber(3), op.Mul), op.Add),
		},
		{
			Expr: "(1+2)*3",
			Want: NewBinary(NewBinary(NewNumber(1), NewNumber(2), op.Add), NewNumber(3), op.Mul),
		},
		{
			Expr: "2**3**2",
			Want: NewBinary(NewNumber(2), NewBinary(NewNumber(3), NewNumber(2), op.Pow), op.Pow),
		},
		{
			Expr: "1-2-3",
			Want: NewBinary(NewBinary(NewNumber(1), NewNumber(2), op.Sub), NewNumber(3), op.Sub),
		},
		{
			Expr: "-1+2",
			Want: NewBinary(NewUnary(NewNumber(1), op.Sub), NewNumber(2), op.Add),
		},
		{
			Expr: "1||0&&0",
			Want: NewOr(NewNumber(1), NewAnd(NewNumber(0), NewNumber(0))),
		},
		{
			Expr: "1+1==2",
			Want: NewBinary(NewBinary(NewNumber(1), NewNumber(1), op.Add), NewNumber(2), op.Eq),
		},
	}
	ctx := fake()
	for _, c := range tests {
		safe, err := BuildSafe(Tokenize(c.Expr), ctx)
		if err != nil {
			t.Errorf("%s: fail to build expression: %s", c.Expr, err)
			continue
		}
		got, err := ParseExpression(safe)
		if err != nil {
			t.Errorf("%s: fail to parse expr: %s", c.Expr, err)
			continue
		}
		assertEqualExpr(t, c.Want, got)
	}
}

func TestParseExpressionInvalid(t *testing.T) {
	tests := []string{
		"1+",
		"(1+2",
		"1+2)",
		"*2",
		"A1:C1",
		"1;2",
		"()",
		"1 ( 2 )",
	}
	ctx := fake()
	for _, str := range tests {
		_, err := Calculate(str, ctx)
		if !errors.Is(err, value.ErrSyntax) {
			t.Errorf("%s: syntax error expected, got %v", str, err)
		}
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		Expr string
		Want string
	}{
		{Expr: "=1+1", Want: "2"},
		{Expr: "=1+A1*2", Want: "3"},
		{Expr: "=(C1+C2)/2", Want: "26.5"},
		{Expr: "=A2*-1", Want: "2"},
		{Expr: "=2**10", Want: "1024"},
		{Expr: "=7%4", Want: "3"},
		{Expr: "=1==1", Want: "true"},
		{Expr: "=1===1", Want: "true"},
		{Expr: "=(1==1)===1", Want: "false"},
		{Expr: "=(1==1)==1", Want: "true"},
		{Expr: "=1!==1", Want: "false"},
		{Expr: "=2<=1", Want: "false"},
		{Expr: "=2>=1", Want: "true"},
		{Expr: "=!0", Want: "true"},
		{Expr: "=0&&1", Want: "0"},
		{Expr: "=0||5", Want: "5"},
		{Expr: "=3&&4", Want: "4"},
		{Expr: "=0.1+0.2", Want: "0.30000000000000004"},
		{Expr: "= A3 - 0", Want: "0"},
	}
	ctx := fake()
	for _, c := range tests {
		got, err := Calculate(c.Expr, ctx)
		if err != nil {
			t.Errorf("%s: fail to evaluate expression: %s", c.Expr, err)
			continue
		}
		if got.String() != c.Want {
			t.Errorf("%s: results mismatched! want %s, got %s", c.Expr, c.Want, got)
		}
	}
}

func TestCalculateArithmeticError(t *testing.T) {
	tests := []string{
		"=1/0",
		"=1/A3",
		"=0/0",
		"=5%0",
		"=10**400",
	}
	ctx := fake()
	for _, str := range tests {
		_, err := Calculate(str, ctx)
		if !errors.Is(err, value.ErrArithmetic) {
			t.Errorf("%s: arithmetic error expected, got %v", str, err)
		}
	}
}

func TestCalculateShortCircuit(t *testing.T) {
	ctx := fake()
	if got, err := Calculate("=0&&(1/0)", ctx); err != nil || got.String() != "0" {
		t.Errorf("right operand of && should not be evaluated: %v %v", got, err)
	}
	if got, err := Calculate("=1||(1/0)", ctx); err != nil || got.String() != "1" {
		t.Errorf("right operand of || should not be evaluated: %v %v", got, err)
	}
}

func assertEqualExpr(t *testing.T, want, got Expr) {
	t.Helper()
	if want.String() != got.String() {
		t.Errorf("expression mismatched! want %s, got %s", want, got)
	}
}

func TestDumpExpr(t *testing.T) {
	tests := []struct {
		Expr string
		Want string
	}{
		{
			Expr: "1+C1*2",
			Want: "binary(number(1), binary(number(11), number(2), *), +)",
		},
		{
			Expr: "!A3||-A2",
			Want: "or(unary(number(0), !), unary(number(-2), -))",
		},
		{
			Expr: "1&&2",
			Want: "and(number(1), number(2))",
		},
	}
	ctx := fake()
	for _, c := range tests {
		expr, err := Compile(c.Expr, ctx)
		if err != nil {
			t.Errorf("%s: fail to compile expression: %s", c.Expr, err)
			continue
		}
		if got := DumpExpr(expr); got != c.Want {
			t.Errorf("%s: tree mismatched! want %s - got %s", c.Expr, c.Want, got)
		}
	}
}

func TestCalculateKind(t *testing.T) {
	tests := []struct {
		Expr string
		Bool bool
	}{
		{Expr: "=1+1", Bool: false},
		{Expr: "=1<=2", Bool: true},
		{Expr: "=!1", Bool: true},
		{Expr: "=(1==1)&&5", Bool: false},
		{Expr: "=0||(2>=1)", Bool: true},
	}
	ctx := fake()
	for _, c := range tests {
		got, err := Calculate(c.Expr, ctx)
		if err != nil {
			t.Errorf("%s: fail to evaluate expression: %s", c.Expr, err)
			continue
		}
		if got.IsBool() != c.Bool {
			t.Errorf("%s: kind mismatched! want bool %t, got %t", c.Expr, c.Bool, got.IsBool())
		}
	}
}
