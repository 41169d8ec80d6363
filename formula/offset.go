package formula

import (
	"strings"

	"github.com/midbel/gridcalc/layout"
)

// ShiftReferences moves every relative reference of text by the distance
// between anchor and dest. Absolute parts of references are kept. It fails
// if a moved reference falls outside of dim.
func ShiftReferences(anchor, dest layout.Position, text string, dim layout.Dimension) (string, error) {
	lines, columns := anchor.Delta(dest)
	var (
		str  strings.Builder
		last int
	)
	for _, s := range TokenizeSpans(text) {
		frag := strings.TrimLeft(s.Text, "= ")
		offset := s.Offset + len(s.Text) - len(frag)

		addr, err := layout.ParseAddress(frag)
		if err != nil {
			continue
		}
		moved := addr.CloneWithOffset(lines, columns)
		if err := dim.Check(moved.Position); err != nil {
			return "", err
		}
		str.WriteString(text[last:offset])
		str.WriteString(moved.String())
		last = offset + len(frag)
	}
	str.WriteString(text[last:])
	return str.String(), nil
}
