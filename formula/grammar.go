package formula

import (
	"fmt"

	"github.com/midbel/gridcalc/formula/op"
	"github.com/midbel/gridcalc/value"
)

const (
	powLowest = iota
	powOr
	powAnd
	powEq
	powCmp
	powAdd
	powMul
	powPow
	powUnary
)

var defaultBindings = map[op.Op]int{
	op.Or:       powOr,
	op.And:      powAnd,
	op.Eq:       powEq,
	op.Ne:       powEq,
	op.StrictEq: powEq,
	op.StrictNe: powEq,
	op.Le:       powCmp,
	op.Ge:       powCmp,
	op.Add:      powAdd,
	op.Sub:      powAdd,
	op.Mul:      powMul,
	op.Div:      powMul,
	op.Mod:      powMul,
	op.Pow:      powPow,
}

type (
	PrefixFunc func(*Parser) (Expr, error)
	InfixFunc  func(*Parser, Expr) (Expr, error)
)

type Grammar struct {
	name string

	prefix   map[op.Op]PrefixFunc
	infix    map[op.Op]InfixFunc
	bindings map[op.Op]int
}

func NewGrammar(name string) *Grammar {
	g := Grammar{
		name:     name,
		prefix:   make(map[op.Op]PrefixFunc),
		infix:    make(map[op.Op]InfixFunc),
		bindings: make(map[op.Op]int),
	}
	for k, p := range defaultBindings {
		g.bindings[k] = p
	}
	return &g
}

// ExpressionGrammar gives the grammar of calculated expressions. Range and
// list separators are known to the tokenizer but have no meaning here.
func ExpressionGrammar() *Grammar {
	g := NewGrammar("expression")

	g.RegisterPrefix(op.Number, parseNumber)
	g.RegisterPrefix(op.Sub, parseUnary)
	g.RegisterPrefix(op.Add, parseUnary)
	g.RegisterPrefix(op.Not, parseUnary)
	g.RegisterPrefix(op.BegGrp, parseGroup)

	g.RegisterInfix(op.Add, parseBinary)
	g.RegisterInfix(op.Sub, parseBinary)
	g.RegisterInfix(op.Mul, parseBinary)
	g.RegisterInfix(op.Div, parseBinary)
	g.RegisterInfix(op.Mod, parseBinary)
	g.RegisterInfix(op.Pow, parsePower)
	g.RegisterInfix(op.Eq, parseBinary)
	g.RegisterInfix(op.Ne, parseBinary)
	g.RegisterInfix(op.StrictEq, parseBinary)
	g.RegisterInfix(op.StrictNe, parseBinary)
	g.RegisterInfix(op.Le, parseBinary)
	g.RegisterInfix(op.Ge, parseBinary)
	g.RegisterInfix(op.And, parseAnd)
	g.RegisterInfix(op.Or, parseOr)

	return g
}

func (g *Grammar) Context() string {
	return g.name
}

func (g *Grammar) Pow(kind op.Op) int {
	pow, ok := g.bindings[kind]
	if !ok {
		pow = powLowest
	}
	return pow
}

func (g *Grammar) Prefix(tok Token) (PrefixFunc, error) {
	fn, ok := g.prefix[tok.Type]
	if !ok {
		return nil, fmt.Errorf("%w: (%d) %s: unsupported prefix operator (%s)", value.ErrSyntax, tok.Offset, g.name, tok)
	}
	return fn, nil
}

func (g *Grammar) Infix(tok Token) (InfixFunc, error) {
	fn, ok := g.infix[tok.Type]
	if !ok {
		return nil, fmt.Errorf("%w: (%d) %s: unsupported infix operator (%s)", value.ErrSyntax, tok.Offset, g.name, tok)
	}
	return fn, nil
}

func (g *Grammar) RegisterPrefix(kd op.Op, fn PrefixFunc) {
	g.prefix[kd] = fn
}

func (g *Grammar) RegisterInfix(kd op.Op, fn InfixFunc) {
	g.infix[kd] = fn
}
