package formula

import (
	"fmt"
	"strings"

	"github.com/midbel/gridcalc/formula/op"
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

// Expression is a calculated expression where every cell reference has been
// replaced by the number it holds.
type Expression struct {
	tokens []Token
}

// BuildSafe checks every fragment given by Tokenize. A fragment is kept if
// it is an operator or a number. References to cells inside the grid are
// replaced by their values, which should be numbers. Any other fragment
// rejects the whole expression.
func BuildSafe(fragments []string, ctx Context) (Expression, error) {
	var expr Expression
	for i, str := range fragments {
		tok, err := classify(str, ctx)
		if err != nil {
			return expr, err
		}
		tok.Offset = i
		expr.tokens = append(expr.tokens, tok)
	}
	if len(expr.tokens) == 0 {
		return expr, fmt.Errorf("%w: empty expression", value.ErrSyntax)
	}
	return expr, nil
}

func classify(str string, ctx Context) (Token, error) {
	tok := Token{
		Literal: str,
	}
	if kind, ok := op.Lookup(str); ok {
		tok.Type = kind
		return tok, nil
	}
	if n, err := value.ParseNumber(str); err == nil {
		tok.Type = op.Number
		tok.Literal = value.FormatNumber(n)
		return tok, nil
	}
	if !layout.IsAddress(str) {
		return tok, fmt.Errorf("%w: %q not allowed in expression", value.ErrSyntax, str)
	}
	addr, err := layout.ParseBounded(str, ctx.Bounds())
	if err != nil {
		return tok, err
	}
	cell, err := ctx.At(addr.Position)
	if err != nil {
		return tok, err
	}
	n, err := value.ParseNumber(cell)
	if err != nil {
		return tok, fmt.Errorf("%w: %s does not hold a number", value.ErrArgument, addr)
	}
	tok.Type = op.Number
	tok.Literal = value.FormatNumber(n)
	return tok, nil
}

func (e Expression) Tokens() []Token {
	return e.tokens
}

func (e Expression) String() string {
	var list []string
	for _, t := range e.tokens {
		list = append(list, t.Literal)
	}
	return strings.Join(list, " ")
}
