package formula

import (
	"fmt"
	"strings"

	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

type ArgKind int8

const (
	ArgInvalid ArgKind = iota
	ArgLiteral
	ArgReference
	ArgNested
)

func (k ArgKind) String() string {
	switch k {
	case ArgLiteral:
		return "literal"
	case ArgReference:
		return "reference"
	case ArgNested:
		return "nested"
	default:
		return "invalid"
	}
}

// Argument is one piece of the argument list of a formula call.
type Argument struct {
	Kind   ArgKind
	Text   string
	Number float64
	Addr   layout.Address
}

// ParseArgument decides once what kind of argument str is.
func ParseArgument(str string) Argument {
	str = strings.TrimSpace(str)
	arg := Argument{
		Text: str,
	}
	if n, err := value.ParseNumber(str); err == nil {
		arg.Kind = ArgLiteral
		arg.Number = n
		return arg
	}
	if addr, err := layout.ParseAddress(str); err == nil {
		arg.Kind = ArgReference
		arg.Addr = addr
		return arg
	}
	if IsFormula(str) {
		arg.Kind = ArgNested
		return arg
	}
	return arg
}

// Value gives the number held by the argument. References should point
// inside the grid to a cell holding a number.
func (a Argument) Value(ctx Context) (float64, error) {
	switch a.Kind {
	case ArgLiteral:
		return a.Number, nil
	case ArgReference:
		if err := ctx.Bounds().Check(a.Addr.Position); err != nil {
			return 0, err
		}
		str, err := ctx.At(a.Addr.Position)
		if err != nil {
			return 0, err
		}
		n, err := value.ParseNumber(str)
		if err != nil {
			return 0, fmt.Errorf("%w: %s does not hold a number", value.ErrArgument, a.Addr)
		}
		return n, nil
	case ArgNested:
		return 0, fmt.Errorf("%w: %s should have been resolved", value.ErrMalformed, a.Text)
	default:
		return 0, fmt.Errorf("%w: %q", value.ErrArgument, a.Text)
	}
}

// SplitList splits the arguments of a call written in list mode.
func SplitList(args string) []Argument {
	var list []Argument
	for _, str := range strings.Split(args, ";") {
		list = append(list, ParseArgument(str))
	}
	return list
}
