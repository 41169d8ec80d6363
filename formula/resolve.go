package formula

import (
	"fmt"
	"strings"

	"github.com/midbel/gridcalc/value"
)

const DefaultMaxDepth = 32

type Kind int8

const (
	KindLiteral Kind = iota
	KindExpression
	KindCall
)

func (k Kind) String() string {
	switch k {
	case KindExpression:
		return "expression"
	case KindCall:
		return "call"
	default:
		return "literal"
	}
}

// Classify tells how the text of a cell should be computed.
func Classify(text string) Kind {
	str := strings.TrimSpace(text)
	if !strings.HasPrefix(str, "=") {
		return KindLiteral
	}
	if IsFormula(str) {
		return KindCall
	}
	return KindExpression
}

// IsFormula reports whether str has the shape =NAME(args).
func IsFormula(str string) bool {
	if len(str) < 2 || str[0] != '=' {
		return false
	}
	ix := strings.IndexByte(str, '(')
	if ix <= 1 || !isName(str[1:ix]) {
		return false
	}
	return str[len(str)-1] == ')' && len(str)-ix > 2
}

// IsSingleCall reports whether the first parenthesis of str is closed by its
// last character.
func IsSingleCall(str string) bool {
	ix := strings.IndexByte(str, '(')
	if ix < 0 {
		return false
	}
	return CallEnd(str, ix) == len(str)-1
}

// CallEnd gives the index of the parenthesis closing the one at open, or -1.
func CallEnd(str string, open int) int {
	var depth int
	for i := open; i < len(str); i++ {
		switch str[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// HasNestedCall reports whether args still contains a formula call.
func HasNestedCall(args string) bool {
	return nestedStart(args) >= 0
}

func nestedStart(args string) int {
	for i := 0; i < len(args); i++ {
		if args[i] != '=' {
			continue
		}
		j := i + 1
		for j < len(args) && isName(args[j:j+1]) {
			j++
		}
		if j == i+1 || j >= len(args) || args[j] != '(' {
			continue
		}
		if strings.LastIndexByte(args, ')') > j+1 {
			return i
		}
	}
	return -1
}

// SplitCall separates the name of a call from its arguments.
func SplitCall(text string) (string, string, error) {
	str := strings.TrimSpace(text)
	if !strings.HasPrefix(str, "=") {
		return "", "", fmt.Errorf("%w: %q should start with '='", value.ErrMalformed, text)
	}
	open := strings.IndexByte(str, '(')
	if open < 0 {
		return "", "", fmt.Errorf("%w: %q: missing '('", value.ErrMalformed, text)
	}
	name := strings.ToUpper(strings.TrimSpace(str[1:open]))
	if !isName(name) {
		return "", "", fmt.Errorf("%w: %q: invalid formula name", value.ErrMalformed, text)
	}
	end := CallEnd(str, open)
	if end < 0 {
		return "", "", fmt.Errorf("%w: %q: unbalanced parenthesis", value.ErrMalformed, text)
	}
	if end != len(str)-1 {
		return "", "", fmt.Errorf("%w: %q: unexpected text after call", value.ErrMalformed, text)
	}
	args := str[open+1 : end]
	if strings.TrimSpace(args) == "" {
		return "", "", fmt.Errorf("%w: %q: missing arguments", value.ErrMalformed, text)
	}
	return name, args, nil
}

type Engine struct {
	registry *Registry
	maxDepth int
}

func NewEngine(reg *Registry) *Engine {
	return &Engine{
		registry: reg,
		maxDepth: DefaultMaxDepth,
	}
}

func (e *Engine) Registry() *Registry {
	return e.registry
}

// Evaluate computes the text of a cell and gives back the value to display.
// Literals are returned unchanged.
func (e *Engine) Evaluate(text string, ctx Context) (string, error) {
	switch Classify(text) {
	case KindCall:
		str := strings.TrimSpace(text)
		if !IsSingleCall(str) {
			return "", fmt.Errorf("%w: %q is not a single call", value.ErrMalformed, text)
		}
		res, err := e.Resolve(str, ctx)
		if err != nil {
			return "", err
		}
		return value.FormatNumber(res), nil
	case KindExpression:
		res, err := Calculate(text, ctx)
		if err != nil {
			return "", err
		}
		return res.String(), nil
	default:
		return text, nil
	}
}

// Resolve computes a formula call. Nested calls found in its arguments are
// computed first and replaced by their results.
func (e *Engine) Resolve(text string, ctx Context) (float64, error) {
	return e.resolve(text, ctx, 0)
}

func (e *Engine) resolve(text string, ctx Context, depth int) (float64, error) {
	if depth > e.maxDepth {
		return 0, fmt.Errorf("%w: too many nested calls", value.ErrMalformed)
	}
	name, args, err := SplitCall(text)
	if err != nil {
		return 0, err
	}
	fn, ok := e.registry.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", value.ErrUnknown, name)
	}
	args, err = e.flatten(args, ctx, depth)
	if err != nil {
		return 0, err
	}
	res, err := fn.Call(args, ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return value.Finite(res)
}

// flatten replaces every nested call in args by its result.
func (e *Engine) flatten(args string, ctx Context, depth int) (string, error) {
	for {
		start := nestedStart(args)
		if start < 0 {
			break
		}
		open := start + strings.IndexByte(args[start:], '(')
		end := CallEnd(args, open)
		if end < 0 {
			return "", fmt.Errorf("%w: %q: unbalanced parenthesis", value.ErrMalformed, args[start:])
		}
		res, err := e.resolve(args[start:end+1], ctx, depth+1)
		if err != nil {
			return "", err
		}
		args = args[:start] + value.FormatNumber(res) + args[end+1:]
	}
	return args, nil
}
