package grid

import (
	"github.com/midbel/gridcalc/layout"
)

// Selection is a rectangle of cells. Cells are ordered line by line from
// the top left corner.
type Selection struct {
	Origin  layout.Position
	Lines   int
	Columns int
	Cells   []*Cell
}

func (s *Selection) Len() int {
	return len(s.Cells)
}

// At gives the cell at line and column relative to the origin, starting
// at 0.
func (s *Selection) At(line, column int) *Cell {
	if line < 0 || line >= s.Lines || column < 0 || column >= s.Columns {
		return nil
	}
	return s.Cells[line*s.Columns+column]
}

func (s *Selection) Range() *layout.Range {
	ends := s.Origin.Offset(s.Lines-1, s.Columns-1)
	return layout.NewRange(s.Origin, ends)
}

func (s *Selection) Contains(pos layout.Position) bool {
	return s.Range().Contains(pos)
}

// Clone copies the cells of the selection. Later updates of the grid do not
// change the copy.
func (s *Selection) Clone() *Selection {
	x := Selection{
		Origin:  s.Origin,
		Lines:   s.Lines,
		Columns: s.Columns,
		Cells:   make([]*Cell, 0, len(s.Cells)),
	}
	for i := range s.Cells {
		c := *s.Cells[i]
		x.Cells = append(x.Cells, &c)
	}
	return &x
}

func (s *Selection) String() string {
	return s.Range().String()
}
