package formula

import (
	"fmt"
	"strings"

	"github.com/midbel/gridcalc/formula/op"
	"github.com/midbel/gridcalc/value"
)

type Parser struct {
	tokens []Token
	index  int
	curr   Token

	grammar *Grammar
}

func NewParser(g *Grammar) *Parser {
	return &Parser{
		grammar: g,
	}
}

// ParseExpression parses a safe expression into a tree.
func ParseExpression(expr Expression) (Expr, error) {
	p := NewParser(ExpressionGrammar())
	return p.Parse(expr.Tokens())
}

func (p *Parser) Parse(tokens []Token) (Expr, error) {
	p.tokens = tokens
	p.index = 0
	p.next()
	if p.done() {
		return nil, p.makeError("empty expression")
	}
	expr, err := p.parse(powLowest)
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, p.makeError(fmt.Sprintf("unexpected token %s", p.curr))
	}
	return expr, nil
}

func (p *Parser) parse(pow int) (Expr, error) {
	fn, err := p.prefix()
	if err != nil {
		return nil, err
	}
	left, err := fn(p)
	if err != nil {
		return nil, err
	}
	for !p.done() && pow < p.pow(p.curr.Type) {
		fn, err := p.infix()
		if err != nil {
			return nil, err
		}
		left, err = fn(p, left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) next() {
	if p.index >= len(p.tokens) {
		p.curr = Token{
			Type:   op.EOF,
			Offset: len(p.tokens),
		}
		return
	}
	p.curr = p.tokens[p.index]
	p.index++
}

func (p *Parser) done() bool {
	return p.is(op.EOF)
}

func (p *Parser) is(kind op.Op) bool {
	return p.curr.Type == kind
}

func (p *Parser) pow(kind op.Op) int {
	return p.grammar.Pow(kind)
}

func (p *Parser) prefix() (PrefixFunc, error) {
	return p.grammar.Prefix(p.curr)
}

func (p *Parser) infix() (InfixFunc, error) {
	return p.grammar.Infix(p.curr)
}

func (p *Parser) makeError(msg string) error {
	return fmt.Errorf("%w: (%s) %d: %s", value.ErrSyntax, p.grammar.Context(), p.curr.Offset, msg)
}

func parseBinary(p *Parser, left Expr) (Expr, error) {
	oper := p.curr.Type
	p.next()
	right, err := p.parse(p.pow(oper))
	if err != nil {
		return nil, err
	}
	return NewBinary(left, right, oper), nil
}

func parsePower(p *Parser, left Expr) (Expr, error) {
	p.next()
	right, err := p.parse(powPow - 1)
	if err != nil {
		return nil, err
	}
	return NewBinary(left, right, op.Pow), nil
}

func parseUnary(p *Parser) (Expr, error) {
	oper := p.curr.Type
	p.next()
	right, err := p.parse(powUnary)
	if err != nil {
		return nil, err
	}
	return NewUnary(right, oper), nil
}

func parseGroup(p *Parser) (Expr, error) {
	p.next()
	expr, err := p.parse(powLowest)
	if err != nil {
		return nil, err
	}
	if !p.is(op.EndGrp) {
		return nil, p.makeError("missing ')' at end of expression")
	}
	p.next()
	return expr, nil
}

func parseNumber(p *Parser) (Expr, error) {
	defer p.next()

	x, err := value.ParseNumber(p.curr.Literal)
	if err != nil {
		return nil, err
	}
	return NewNumber(x), nil
}

func parseAnd(p *Parser, left Expr) (Expr, error) {
	p.next()
	right, err := p.parse(powAnd)
	if err != nil {
		return nil, err
	}
	return NewAnd(left, right), nil
}

func parseOr(p *Parser, left Expr) (Expr, error) {
	p.next()
	right, err := p.parse(powOr)
	if err != nil {
		return nil, err
	}
	return NewOr(left, right), nil
}

// Compile gives the tree of a calculated expression once its references
// have been replaced by the values of their cells. The leading '=' is
// optional.
func Compile(text string, ctx Context) (Expr, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "=")

	safe, err := BuildSafe(Tokenize(text), ctx)
	if err != nil {
		return nil, err
	}
	return ParseExpression(safe)
}

// Calculate evaluates the text of a calculated expression.
func Calculate(text string, ctx Context) (Value, error) {
	expr, err := Compile(text, ctx)
	if err != nil {
		return Value{}, err
	}
	return Eval(expr)
}
