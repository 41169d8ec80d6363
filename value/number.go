package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IsNumeric reports whether str holds a finite number.
func IsNumeric(str string) bool {
	_, err := ParseNumber(str)
	return err == nil
}

func ParseNumber(str string) (float64, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, fmt.Errorf("%w: empty value", ErrArgument)
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, fmt.Errorf("%w: %s out of range", ErrArithmetic, str)
		}
		return 0, fmt.Errorf("%w: %q is not a number", ErrArgument, str)
	}
	if !IsFinite(f) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrArgument, str)
	}
	return f, nil
}

func IsFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Finite returns f unless it is infinite or NaN.
func Finite(f float64) (float64, error) {
	if !IsFinite(f) {
		return 0, fmt.Errorf("%w: result is not a finite number", ErrArithmetic)
	}
	return f, nil
}

// FormatNumber gives the shortest text that parses back to f.
func FormatNumber(f float64) string {
	if f == 0 {
		f = 0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
