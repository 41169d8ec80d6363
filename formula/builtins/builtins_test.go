package builtins

import (
	"errors"
	"testing"

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

func fake() fakeContext {
	ctx := fakeContext{
		dim:   layout.DefaultDimension,
		cells: make(map[string]string),
	}
	ctx.cells["A1"] = "x"
	ctx.cells["B1"] = "5"
	ctx.cells["C1"] = "10"
	ctx.cells["A2"] = "2"
	ctx.cells["B2"] = "-4"
	ctx.cells["C2"] = "héllo"
	ctx.cells["A3"] = "0"
	ctx.cells["B3"] = "#ERROR"
	return ctx
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		Expr string
		Want float64
	}{
		{Expr: "=SUM(1;2)", Want: 3},
		{Expr: "=SUM(B1;C1;1)", Want: 16},
		{Expr: "=SUM(A1:B1)", Want: 5},
		{Expr: "=SUM(C2:A1)", Want: 13},
		{Expr: "=SUM(D5:E6)", Want: 0},
		{Expr: "=SUM(=SUM(1;2);3)", Want: 6},
		{Expr: "=sum( 1 ; 2 )", Want: 3},
		{Expr: "=SUB(10;4)", Want: 6},
		{Expr: "=SUB(B1;C1)", Want: -5},
		{Expr: "=MULT(2;3;4)", Want: 24},
		{Expr: "=MULT(A1:C2)", Want: -400},
		{Expr: "=MULT(D5:E6)", Want: 1},
		{Expr: "=DIV(10;4)", Want: 2.5},
		{Expr: "=DIV(C1;B1)", Want: 2},
		{Expr: "=AVG(1;2;3;4)", Want: 2.5},
		{Expr: "=AVG(A1:C1)", Want: 7.5},
		{Expr: "=MAX(1;7;3)", Want: 7},
		{Expr: "=MAX(A1:C2)", Want: 10},
		{Expr: "=MIN(1;7;3)", Want: 1},
		{Expr: "=MIN(A1:C2)", Want: -4},
		{Expr: "=LENGTH(hello)", Want: 5},
		{Expr: "=LENGTH(C2)", Want: 5},
		{Expr: "=LENGTH(D4)", Want: 0},
		{Expr: "=LENGTH(=SUM(10;5))", Want: 2},
		{Expr: "=SUM(=SUB(1;5);=MULT(2;=DIV(9;3)))", Want: 2},
	}
	ctx := fake()
	eng := Engine()
	for _, c := range tests {
		got, err := eng.Resolve(c.Expr, ctx)
		if err != nil {
			t.Errorf("%s: fail to resolve formula: %s", c.Expr, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%s: results mismatched! want %v, got %v", c.Expr, c.Want, got)
		}
	}
}

func TestBuiltinsFailures(t *testing.T) {
	tests := []struct {
		Expr string
		Err  error
	}{
		{Expr: "=SUM(A1;B1)", Err: value.ErrArgument},
		{Expr: "=SUM(1;D1)", Err: value.ErrArgument},
		{Expr: "=SUM(1;K1)", Err: value.ErrAddress},
		{Expr: "=SUM(1;A1:B1)", Err: value.ErrMode},
		{Expr: "=SUM(5)", Err: value.ErrMode},
		{Expr: "=SUM(A1:K1)", Err: value.ErrAddress},
		{Expr: "=SUM(A1:2)", Err: value.ErrArgument},
		{Expr: "=SUM(A1:B1:C1)", Err: value.ErrArgument},
		{Expr: "=SUB(1;2;3)", Err: value.ErrArgument},
		{Expr: "=SUB(A1:B1)", Err: value.ErrMode},
		{Expr: "=SUB(1)", Err: value.ErrMode},
		{Expr: "=DIV(10;0)", Err: value.ErrArithmetic},
		{Expr: "=DIV(10;A3)", Err: value.ErrArithmetic},
		{Expr: "=DIV(B1:C1)", Err: value.ErrMode},
		{Expr: "=AVG(A1:A1)", Err: value.ErrArithmetic},
		{Expr: "=AVG(D5:E6)", Err: value.ErrArithmetic},
		{Expr: "=MAX(D5:E6)", Err: value.ErrArithmetic},
		{Expr: "=MIN(B3:B3)", Err: value.ErrArithmetic},
		{Expr: "=LENGTH(A1:B1)", Err: value.ErrMode},
		{Expr: "=LENGTH(K1)", Err: value.ErrAddress},
		{Expr: "=SUM(=DIV(1;0);2)", Err: value.ErrArithmetic},
		{Expr: "=IF(1;2)", Err: value.ErrUnknown},
		{Expr: "=FILL(A1:B2)", Err: value.ErrUnknown},
		{Expr: "=MULT(1e200;1e200)", Err: value.ErrArithmetic},
	}
	ctx := fake()
	eng := Engine()
	for _, c := range tests {
		got, err := eng.Resolve(c.Expr, ctx)
		if err == nil {
			t.Errorf("%s: expected failure, got %v", c.Expr, got)
			continue
		}
		if !errors.Is(err, c.Err) {
			t.Errorf("%s: expected error %s, got %s", c.Expr, c.Err, err)
		}
	}
}

func TestRegistry(t *testing.T) {
	want := []string{"SUM", "SUB", "MULT", "DIV", "AVG", "MAX", "MIN", "LENGTH"}
	list := Registry().Builtins()
	if len(list) != len(want) {
		t.Fatalf("number of builtins mismatched! want %d, got %d", len(want), len(list))
	}
	for i := range want {
		if list[i].Name != want[i] {
			t.Errorf("builtin %d mismatched! want %s, got %s", i, want[i], list[i].Name)
		}
		if list[i].Help == "" {
			t.Errorf("%s: missing help", list[i].Name)
		}
	}
}
