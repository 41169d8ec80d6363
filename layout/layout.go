package layout

import (
	"fmt"

	"github.com/midbel/gridcalc/value"
)

const (
	MaxLines   = 999
	MaxColumns = 26
)

var DefaultDimension = Dimension{
	Lines:   10,
	Columns: 10,
}

type Dimension struct {
	Lines   int
	Columns int
}

func (d Dimension) Size() int {
	return d.Lines * d.Columns
}

func (d Dimension) Contains(pos Position) bool {
	return pos.Line >= 1 && pos.Line <= d.Lines && pos.Column >= 1 && pos.Column <= d.Columns
}

func (d Dimension) Check(pos Position) error {
	if !d.Contains(pos) {
		return fmt.Errorf("%w: %s outside of %s", value.ErrAddress, pos, d)
	}
	return nil
}

func (d Dimension) Validate() error {
	if d.Lines < 1 || d.Lines > MaxLines {
		return fmt.Errorf("number of lines should be between 1 and %d (got %d)", MaxLines, d.Lines)
	}
	if d.Columns < 1 || d.Columns > MaxColumns {
		return fmt.Errorf("number of columns should be between 1 and %d (got %d)", MaxColumns, d.Columns)
	}
	return nil
}

// Last gives the bottom right position of the grid.
func (d Dimension) Last() Position {
	return Position{
		Line:   d.Lines,
		Column: d.Columns,
	}
}

func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Lines, d.Columns)
}
