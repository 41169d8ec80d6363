package grid

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/midbel/gridcalc/formula"
	"github.com/midbel/gridcalc/formula/builtins"
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

// Result is the outcome of committing the text of a cell.
type Result struct {
	Value   string
	Formula string
	Err     error
}

func (r Result) Failed() bool {
	return r.Err != nil
}

type Option func(*Session)

func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

func WithEngine(engine *formula.Engine) Option {
	return func(s *Session) {
		s.engine = engine
	}
}

// Session holds a grid with the current selection and the content of the
// clipboard. A session is not safe for concurrent use.
type Session struct {
	grid      *Grid
	engine    *formula.Engine
	selection *Selection
	clipboard *Selection

	logger *log.Logger
}

func NewSession(size layout.Dimension, options ...Option) (*Session, error) {
	g, err := NewGrid(size)
	if err != nil {
		return nil, err
	}
	s := Session{
		grid:   g,
		engine: builtins.Engine(),
		logger: log.New(io.Discard),
	}
	for _, o := range options {
		o(&s)
	}
	return &s, nil
}

func (s *Session) Grid() *Grid {
	return s.grid
}

func (s *Session) Bounds() layout.Dimension {
	return s.grid.Bounds()
}

// Commit computes raw and stores the result in the cell at pos. A failed
// computation shows the error token and keeps raw as formula. The returned
// error is only set when pos is not a cell of the grid.
func (s *Session) Commit(pos layout.Position, raw string) (Result, error) {
	cell, err := s.grid.Lookup(pos)
	if err != nil {
		return Result{}, err
	}
	cell.Committed = false
	defer func() {
		cell.Committed = true
	}()

	var res Result
	if formula.Classify(raw) == formula.KindLiteral {
		res.Value = raw
	} else {
		res.Formula = raw
		res.Value, res.Err = s.engine.Evaluate(raw, s.grid)
	}
	if res.Err != nil {
		res.Value = value.ErrorDisplayValue
		var code string
		if kind, ok := value.Kind(res.Err); ok {
			code = kind.Code()
		}
		s.logger.Debug("evaluation failed", "pos", pos, "formula", raw, "kind", code, "err", res.Err)
	} else {
		s.logger.Debug("cell committed", "pos", pos, "raw", raw, "value", res.Value)
	}
	cell.Value = res.Value
	cell.Formula = res.Formula
	return res, nil
}

// CommitAddr is like Commit but takes the address of the cell.
func (s *Session) CommitAddr(addr, raw string) (Result, error) {
	a, err := layout.ParseBounded(addr, s.Bounds())
	if err != nil {
		return Result{}, err
	}
	return s.Commit(a.Position, raw)
}

// EditText gives the text to edit for the cell at pos: its formula if it
// has one, its value otherwise.
func (s *Session) EditText(pos layout.Position) (string, error) {
	cell, err := s.grid.Lookup(pos)
	if err != nil {
		return "", err
	}
	return cell.Text(), nil
}

func (s *Session) Value(pos layout.Position) (string, error) {
	return s.grid.At(pos)
}

func (s *Session) Select(start, end layout.Position) error {
	sel, err := s.grid.Select(start, end)
	if err != nil {
		return err
	}
	s.selection = sel
	return nil
}

// SelectRange selects the cells given as "A1" or "A1:B3".
func (s *Session) SelectRange(str string) error {
	if a, err := layout.ParseBounded(str, s.Bounds()); err == nil {
		return s.Select(a.Position, a.Position)
	}
	rg, err := layout.ParseRange(str, s.Bounds())
	if err != nil {
		return err
	}
	return s.Select(rg.Starts, rg.Ends)
}

func (s *Session) Selection() *Selection {
	return s.selection
}

func (s *Session) Clipboard() *Selection {
	return s.clipboard
}

func (s *Session) Copy() error {
	if s.selection == nil {
		return ErrNoSelection
	}
	s.clipboard = s.selection.Clone()
	s.logger.Debug("selection copied", "range", s.clipboard)
	return nil
}

// Cut copies the selection then clears its cells.
func (s *Session) Cut() error {
	if err := s.Copy(); err != nil {
		return err
	}
	return s.Delete()
}

// Delete clears every cell of the selection.
func (s *Session) Delete() error {
	if s.selection == nil {
		return ErrNoSelection
	}
	for _, c := range s.selection.Cells {
		if err := s.grid.Set(c.Position, "", ""); err != nil {
			return err
		}
	}
	s.logger.Debug("selection cleared", "range", s.selection)
	return nil
}

// Paste writes the clipboard with its top left corner at pos. Formulas are
// moved by the distance between their original cell and their new cell
// before being computed again. Nothing is written when the clipboard does
// not fit in the grid or when a moved reference falls outside of it.
func (s *Session) Paste(pos layout.Position, mode CopyMode) error {
	if s.clipboard == nil {
		return ErrEmptyClipboard
	}
	clip := s.clipboard
	if !layout.Fits(pos, clip.Lines, clip.Columns, s.Bounds()) {
		return fmt.Errorf("%w: %dx%d block does not fit at %s", value.ErrAddress, clip.Lines, clip.Columns, pos)
	}
	var edits []edit
	for i, c := range clip.Cells {
		dst := pos.Offset(i/clip.Columns, i%clip.Columns)
		e, ok, err := s.moveCell(c, dst, mode)
		if err != nil {
			return err
		}
		if ok {
			edits = append(edits, e)
		}
	}
	if err := s.apply(edits); err != nil {
		return err
	}
	s.logger.Debug("clipboard pasted", "range", clip, "at", pos, "mode", mode)
	return nil
}

// Fill copies the top left cell of the selection to its other cells, moving
// the references of its formula.
func (s *Session) Fill() error {
	if s.selection == nil {
		return ErrNoSelection
	}
	anchor := *s.selection.Cells[0]
	var edits []edit
	for _, c := range s.selection.Cells[1:] {
		e, _, err := s.moveCell(&anchor, c.Position, CopyAll)
		if err != nil {
			return err
		}
		edits = append(edits, e)
	}
	if err := s.apply(edits); err != nil {
		return err
	}
	s.logger.Debug("selection filled", "range", s.selection, "from", anchor.Position)
	return nil
}

type edit struct {
	pos     layout.Position
	text    string
	compute bool
}

func (s *Session) moveCell(c *Cell, dst layout.Position, mode CopyMode) (edit, bool, error) {
	e := edit{
		pos: dst,
	}
	switch {
	case c.Formula != "" && mode&CopyFormula != 0:
		text, err := formula.ShiftReferences(c.Position, dst, c.Formula, s.Bounds())
		if err != nil {
			return e, false, err
		}
		e.text = text
		e.compute = true
	case mode&CopyValue != 0:
		e.text = c.Value
	default:
		return e, false, nil
	}
	return e, true, nil
}

func (s *Session) apply(edits []edit) error {
	for _, e := range edits {
		var err error
		if e.compute {
			_, err = s.Commit(e.pos, e.text)
		} else {
			err = s.grid.Set(e.pos, e.text, "")
		}
		if err != nil {
			return fmt.Errorf("%s: %w", e.pos.Addr(), err)
		}
	}
	return nil
}
