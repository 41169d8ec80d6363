package formula

import (
	"bytes"
	"io"

	"github.com/midbel/gridcalc/formula/op"
	"github.com/midbel/gridcalc/value"
)

func DumpExpr(expr Expr) string {
	var buf bytes.Buffer
	dumpExpr(&buf, expr)
	return buf.String()
}

func dumpExpr(w io.Writer, expr Expr) {
	switch e := expr.(type) {
	case number:
		io.WriteString(w, "number(")
		io.WriteString(w, value.FormatNumber(e.value))
		io.WriteString(w, ")")
	case unary:
		io.WriteString(w, "unary(")
		dumpExpr(w, e.expr)
		io.WriteString(w, ", ")
		io.WriteString(w, op.Symbol(e.op))
		io.WriteString(w, ")")
	case binary:
		io.WriteString(w, "binary(")
		dumpExpr(w, e.left)
		io.WriteString(w, ", ")
		dumpExpr(w, e.right)
		io.WriteString(w, ", ")
		io.WriteString(w, op.Symbol(e.op))
		io.WriteString(w, ")")
	case and:
		io.WriteString(w, "and(")
		dumpExpr(w, e.left)
		io.WriteString(w, ", ")
		dumpExpr(w, e.right)
		io.WriteString(w, ")")
	case or:
		io.WriteString(w, "or(")
		dumpExpr(w, e.left)
		io.WriteString(w, ", ")
		dumpExpr(w, e.right)
		io.WriteString(w, ")")
	default:
		io.WriteString(w, "unknown")
	}
}
