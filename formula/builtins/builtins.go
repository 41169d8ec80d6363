package builtins

import (
	"errors"
	"fmt"
	"strings"

	"github.com/midbel/gridcalc/formula"
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

var ErrArity = errors.New("invalid number of arguments")

type mode int8

const (
	modeList mode = iota
	modeRange
)

var registry = formula.NewRegistry()

func init() {
	register("SUM", "sum of numbers", Sum)
	register("SUB", "difference of two numbers", Sub)
	register("MULT", "product of numbers", Mult)
	register("DIV", "quotient of two numbers", Div)
	register("AVG", "mean of numbers", Avg)
	register("MAX", "largest number", Max)
	register("MIN", "smallest number", Min)
	register("LENGTH", "number of characters of a text or cell", Length)
}

func register(name, help string, fn formula.Func) {
	if err := registry.Register(name, help, fn); err != nil {
		panic(err)
	}
}

// Registry gives the table of built-in formulas. It should not be modified.
func Registry() *formula.Registry {
	return registry
}

// Engine gives an engine resolving calls with the built-in formulas.
func Engine() *formula.Engine {
	return formula.NewEngine(registry)
}

func argMode(args string) (mode, error) {
	if strings.Contains(args, ";") {
		return modeList, nil
	}
	if strings.Contains(args, ":") {
		return modeRange, nil
	}
	return 0, fmt.Errorf("%w: arguments should be separated by ';' or ':'", value.ErrMode)
}

// collect gives the numbers designated by args. Every argument of a list
// should be a number. Cells of a range that do not hold a number are
// skipped.
func collect(args string, ctx formula.Context) ([]float64, error) {
	m, err := argMode(args)
	if err != nil {
		return nil, err
	}
	if m == modeList {
		return collectList(args, ctx)
	}
	return collectRange(args, ctx)
}

func collectList(args string, ctx formula.Context) ([]float64, error) {
	var list []float64
	for _, arg := range formula.SplitList(args) {
		if strings.Contains(arg.Text, ":") {
			return nil, fmt.Errorf("%w: range %q in argument list", value.ErrMode, arg.Text)
		}
		n, err := arg.Value(ctx)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, nil
}

func collectRange(args string, ctx formula.Context) ([]float64, error) {
	rg, err := parseRange(args, ctx)
	if err != nil {
		return nil, err
	}
	values, err := ctx.Range(rg.Starts, rg.Ends)
	if err != nil {
		return nil, err
	}
	var list []float64
	for _, str := range values {
		n, err := value.ParseNumber(str)
		if err != nil {
			continue
		}
		list = append(list, n)
	}
	return list, nil
}

func parseRange(args string, ctx formula.Context) (*layout.Range, error) {
	fst, lst, _ := strings.Cut(args, ":")
	for _, str := range []string{fst, lst} {
		if arg := formula.ParseArgument(str); arg.Kind != formula.ArgReference {
			return nil, fmt.Errorf("%w: %q is not a cell reference", value.ErrArgument, arg.Text)
		}
	}
	return layout.ParseRange(args, ctx.Bounds())
}

// pair gives the two numbers of a call accepting only a list of two
// arguments.
func pair(args string, ctx formula.Context) (float64, float64, error) {
	if strings.Contains(args, ":") {
		return 0, 0, fmt.Errorf("%w: range not allowed", value.ErrMode)
	}
	if !strings.Contains(args, ";") {
		return 0, 0, fmt.Errorf("%w: arguments should be separated by ';'", value.ErrMode)
	}
	list, err := collectList(args, ctx)
	if err != nil {
		return 0, 0, err
	}
	if len(list) != 2 {
		return 0, 0, fmt.Errorf("%w: %w: want 2, got %d", value.ErrArgument, ErrArity, len(list))
	}
	return list[0], list[1], nil
}
