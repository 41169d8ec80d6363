package formula

import (
	"github.com/midbel/gridcalc/layout"
)

// Context gives read access to the values displayed by a grid.
type Context interface {
	Bounds() layout.Dimension
	At(layout.Position) (string, error)
	Range(start, end layout.Position) ([]string, error)
}

type emptyContext struct {
	dim layout.Dimension
}

// Empty gives a context where every cell of dim exists but holds no value.
func Empty(dim layout.Dimension) Context {
	return emptyContext{
		dim: dim,
	}
}

func (c emptyContext) Bounds() layout.Dimension {
	return c.dim
}

func (c emptyContext) At(pos layout.Position) (string, error) {
	return "", c.dim.Check(pos)
}

func (c emptyContext) Range(start, end layout.Position) ([]string, error) {
	if err := c.dim.Check(start); err != nil {
		return nil, err
	}
	if err := c.dim.Check(end); err != nil {
		return nil, err
	}
	rg := layout.NewRange(start, end).Normalize()
	return make([]string, rg.Lines()*rg.Columns()), nil
}
