package builtins

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/midbel/gridcalc/formula"
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

func Sum(args string, ctx formula.Context) (float64, error) {
	list, err := collect(args, ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for i := range list {
		total += list[i]
	}
	return value.Finite(total)
}

func Sub(args string, ctx formula.Context) (float64, error) {
	left, right, err := pair(args, ctx)
	if err != nil {
		return 0, err
	}
	return value.Finite(left - right)
}

func Mult(args string, ctx formula.Context) (float64, error) {
	list, err := collect(args, ctx)
	if err != nil {
		return 0, err
	}
	total := 1.0
	for i := range list {
		total *= list[i]
	}
	return value.Finite(total)
}

func Div(args string, ctx formula.Context) (float64, error) {
	left, right, err := pair(args, ctx)
	if err != nil {
		return 0, err
	}
	if right == 0 {
		return 0, fmt.Errorf("%w: division by zero", value.ErrArithmetic)
	}
	return value.Finite(left / right)
}

func Avg(args string, ctx formula.Context) (float64, error) {
	list, err := collect(args, ctx)
	if err != nil {
		return 0, err
	}
	if len(list) == 0 {
		return 0, fmt.Errorf("%w: no number to average", value.ErrArithmetic)
	}
	var total float64
	for i := range list {
		total += list[i]
	}
	return value.Finite(total / float64(len(list)))
}

func Max(args string, ctx formula.Context) (float64, error) {
	list, err := collect(args, ctx)
	if err != nil {
		return 0, err
	}
	if len(list) == 0 {
		return 0, fmt.Errorf("%w: no number found", value.ErrArithmetic)
	}
	var res float64
	for i := range list {
		if i == 0 {
			res = list[i]
			continue
		}
		res = max(res, list[i])
	}
	return res, nil
}

func Min(args string, ctx formula.Context) (float64, error) {
	list, err := collect(args, ctx)
	if err != nil {
		return 0, err
	}
	if len(list) == 0 {
		return 0, fmt.Errorf("%w: no number found", value.ErrArithmetic)
	}
	var res float64
	for i := range list {
		if i == 0 {
			res = list[i]
			continue
		}
		res = min(res, list[i])
	}
	return res, nil
}

// Length counts the characters of the value of a cell when args is a
// reference, and the characters of args otherwise.
func Length(args string, ctx formula.Context) (float64, error) {
	if strings.Contains(args, ":") {
		return 0, fmt.Errorf("%w: range not allowed", value.ErrMode)
	}
	str := strings.TrimSpace(args)
	if !layout.IsAddress(str) {
		return float64(utf8.RuneCountInString(str)), nil
	}
	addr, err := layout.ParseBounded(str, ctx.Bounds())
	if err != nil {
		return 0, err
	}
	cell, err := ctx.At(addr.Position)
	if err != nil {
		return 0, err
	}
	return float64(utf8.RuneCountInString(cell)), nil
}
