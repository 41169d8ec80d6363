package formula

import (
	"fmt"

	"github.com/midbel/gridcalc/formula/op"
)

type Token struct {
	Literal string
	Type    op.Op
	Offset  int
}

func (t Token) String() string {
	switch t.Type {
	case op.Invalid:
		return "<invalid>"
	case op.EOF:
		return "<eof>"
	case op.Number:
		return fmt.Sprintf("number(%s)", t.Literal)
	case op.Add:
		return "<add>"
	case op.Sub:
		return "<subtract>"
	case op.Mul:
		return "<multiply>"
	case op.Div:
		return "<divide>"
	case op.Mod:
		return "<modulo>"
	case op.Pow:
		return "<power>"
	case op.Not:
		return "<not>"
	case op.And:
		return "<and>"
	case op.Or:
		return "<or>"
	case op.Eq:
		return "<equal>"
	case op.Ne:
		return "<notequal>"
	case op.StrictEq:
		return "<strict-equal>"
	case op.StrictNe:
		return "<strict-notequal>"
	case op.Le:
		return "<lesseq>"
	case op.Ge:
		return "<greateq>"
	case op.BegGrp:
		return "<beg-group>"
	case op.EndGrp:
		return "<end-group>"
	case op.RangeRef:
		return "<range>"
	case op.Semi:
		return "<semicolon>"
	default:
		return "<unknown>"
	}
}
