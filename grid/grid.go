package grid

import (
	"errors"
	"fmt"
	"iter"

	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

var (
	ErrNoSelection    = errors.New("no cell selected")
	ErrEmptyClipboard = errors.New("clipboard is empty")
)

type Cell struct {
	layout.Position

	Value     string
	Formula   string
	Committed bool
}

// Text gives what should be shown when the cell is edited.
func (c *Cell) Text() string {
	if c.Formula != "" {
		return c.Formula
	}
	return c.Value
}

func (c *Cell) Empty() bool {
	return c.Value == "" && c.Formula == ""
}

func (c *Cell) Failed() bool {
	return c.Value == value.ErrorDisplayValue && c.Formula != ""
}

func (c *Cell) Clear() {
	c.Value = ""
	c.Formula = ""
}

// Grid is a fixed rectangle of cells. Cells are created once and updated
// in place.
type Grid struct {
	size  layout.Dimension
	cells []*Cell
}

func NewGrid(size layout.Dimension) (*Grid, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	g := Grid{
		size:  size,
		cells: make([]*Cell, 0, size.Size()),
	}
	for line := 1; line <= size.Lines; line++ {
		for col := 1; col <= size.Columns; col++ {
			c := Cell{
				Position: layout.Position{
					Line:   line,
					Column: col,
				},
				Committed: true,
			}
			g.cells = append(g.cells, &c)
		}
	}
	return &g, nil
}

func (g *Grid) Bounds() layout.Dimension {
	return g.size
}

// Cell gives the cell at pos. It panics if pos is outside of the grid.
func (g *Grid) Cell(pos layout.Position) *Cell {
	if !g.size.Contains(pos) {
		panic(fmt.Sprintf("grid: %s outside of %s", pos, g.size))
	}
	return g.cells[g.index(pos)]
}

func (g *Grid) Lookup(pos layout.Position) (*Cell, error) {
	if err := g.size.Check(pos); err != nil {
		return nil, err
	}
	return g.cells[g.index(pos)], nil
}

// At gives the value displayed by the cell at pos.
func (g *Grid) At(pos layout.Position) (string, error) {
	c, err := g.Lookup(pos)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}

// Range gives the values of the rectangle between start and end, line by
// line.
func (g *Grid) Range(start, end layout.Position) ([]string, error) {
	sel, err := g.Select(start, end)
	if err != nil {
		return nil, err
	}
	list := make([]string, 0, sel.Len())
	for _, c := range sel.Cells {
		list = append(list, c.Value)
	}
	return list, nil
}

func (g *Grid) Select(start, end layout.Position) (*Selection, error) {
	if err := g.size.Check(start); err != nil {
		return nil, err
	}
	if err := g.size.Check(end); err != nil {
		return nil, err
	}
	rg := layout.NewRange(start, end).Normalize()
	sel := Selection{
		Origin:  rg.Starts,
		Lines:   rg.Lines(),
		Columns: rg.Columns(),
	}
	for _, pos := range rg.Positions() {
		sel.Cells = append(sel.Cells, g.cells[g.index(pos)])
	}
	return &sel, nil
}

// Set replaces the value and the formula of the cell at pos.
func (g *Grid) Set(pos layout.Position, val, formula string) error {
	c, err := g.Lookup(pos)
	if err != nil {
		return err
	}
	c.Committed = false
	c.Value = val
	c.Formula = formula
	c.Committed = true
	return nil
}

func (g *Grid) Rows() iter.Seq[[]*Cell] {
	fn := func(yield func([]*Cell) bool) {
		for i := 0; i < len(g.cells); i += g.size.Columns {
			if !yield(g.cells[i : i+g.size.Columns]) {
				return
			}
		}
	}
	return fn
}

func (g *Grid) index(pos layout.Position) int {
	return (pos.Line-1)*g.size.Columns + pos.Column - 1
}
