package layout

import (
	"fmt"
	"strings"

	"github.com/midbel/gridcalc/value"
)

type Range struct {
	Starts Position
	Ends   Position
}

func NewRange(starts, ends Position) *Range {
	return &Range{
		Starts: starts,
		Ends:   ends,
	}
}

// ParseRange decodes a "A1:B3" reference. Both ends should be inside dim.
func ParseRange(str string, dim Dimension) (*Range, error) {
	fst, lst, ok := strings.Cut(str, ":")
	if !ok || strings.Contains(lst, ":") {
		return nil, fmt.Errorf("%w: %q is not a range", value.ErrArgument, str)
	}
	starts, err := ParseBounded(strings.TrimSpace(fst), dim)
	if err != nil {
		return nil, err
	}
	ends, err := ParseBounded(strings.TrimSpace(lst), dim)
	if err != nil {
		return nil, err
	}
	return NewRange(starts.Position, ends.Position).Normalize(), nil
}

func (r *Range) Contains(pos Position) bool {
	ok := pos.Line >= r.Starts.Line && pos.Line <= r.Ends.Line
	if !ok {
		return false
	}
	return pos.Column >= r.Starts.Column && pos.Column <= r.Ends.Column
}

func (r *Range) Width() int {
	return r.Ends.Column - r.Starts.Column
}

func (r *Range) Height() int {
	return r.Ends.Line - r.Starts.Line
}

// Lines gives the number of lines covered by a normalized range.
func (r *Range) Lines() int {
	return r.Height() + 1
}

// Columns gives the number of columns covered by a normalized range.
func (r *Range) Columns() int {
	return r.Width() + 1
}

func (r *Range) String() string {
	if r.Starts.Equal(r.Ends) {
		return r.Starts.Addr()
	}
	return fmt.Sprintf("%s:%s", r.Starts.Addr(), r.Ends.Addr())
}

func (r *Range) Normalize() *Range {
	x := NewRange(r.Starts, r.Ends)
	x.Starts.Line = min(r.Starts.Line, r.Ends.Line)
	x.Starts.Column = min(r.Starts.Column, r.Ends.Column)
	x.Ends.Line = max(r.Starts.Line, r.Ends.Line)
	x.Ends.Column = max(r.Starts.Column, r.Ends.Column)
	return x
}

// Positions lists every position of a normalized range, line by line.
func (r *Range) Positions() []Position {
	list := make([]Position, 0, r.Lines()*r.Columns())
	for line := r.Starts.Line; line <= r.Ends.Line; line++ {
		for col := r.Starts.Column; col <= r.Ends.Column; col++ {
			list = append(list, Position{Line: line, Column: col})
		}
	}
	return list
}

// Fits reports whether a block of lines x columns starting at pos stays
// inside dim.
func Fits(pos Position, lines, columns int, dim Dimension) bool {
	if !dim.Contains(pos) {
		return false
	}
	return dim.Contains(pos.Offset(lines-1, columns-1))
}
