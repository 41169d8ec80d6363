package csv

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/midbel/gridcalc/format"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/layout"
)

type Mode int8

const (
	// ModeGrid reads every record as a line of the grid.
	ModeGrid Mode = iota
	// ModeEdits reads records made of an address and the text of the cell.
	ModeEdits
)

func ModeFromString(str string) (Mode, error) {
	switch str {
	case "", "grid":
		return ModeGrid, nil
	case "edits":
		return ModeEdits, nil
	default:
		return 0, fmt.Errorf("%s: unsupported input mode", str)
	}
}

// Edit is the text to commit in a cell.
type Edit struct {
	Addr string
	Text string
	Line int
}

// ReadEdits reads the edits found in r, in the order they appear.
func ReadEdits(r io.Reader, mode Mode, comma byte) ([]Edit, error) {
	rs := NewReader(r)
	rs.Comma = comma
	if mode == ModeEdits {
		rs.Comment = '#'
		rs.FieldsPerLine = 2
		rs.TrimSpace = true
	}
	var (
		list []Edit
		line int
	)
	for {
		fields, err := rs.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		line++
		if mode == ModeEdits {
			e := Edit{
				Addr: fields[0],
				Text: fields[1],
				Line: rs.Line(),
			}
			list = append(list, e)
			continue
		}
		for col, str := range fields {
			if str == "" {
				continue
			}
			pos := layout.Position{
				Line:   line,
				Column: col + 1,
			}
			e := Edit{
				Addr: pos.Addr(),
				Text: str,
				Line: rs.Line(),
			}
			list = append(list, e)
		}
	}
	return list, nil
}

// Replay commits the edits in order. Failed computations are not errors:
// they show up as error tokens in the grid.
func Replay(s *grid.Session, edits []Edit) (int, error) {
	var failed int
	for _, e := range edits {
		res, err := s.CommitAddr(e.Addr, e.Text)
		if err != nil {
			return failed, fmt.Errorf("line %d: %s: %w", e.Line, e.Addr, err)
		}
		if res.Failed() {
			failed++
		}
	}
	return failed, nil
}

// Open loads the file into a new session of the given size.
func Open(file string, size layout.Dimension, mode Mode, comma byte, options ...grid.Option) (*grid.Session, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	edits, err := ReadEdits(r, mode, comma)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	s, err := grid.NewSession(size, options...)
	if err != nil {
		return nil, err
	}
	if _, err := Replay(s, edits); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return s, nil
}

// WriteGrid writes the values displayed by g, line by line.
func WriteGrid(w io.Writer, g *grid.Grid, comma byte, vf format.Formatter) error {
	ws := NewWriter(w)
	ws.Comma = comma
	for row := range g.Rows() {
		line := make([]string, len(row))
		for i, c := range row {
			line[i] = c.Value
			if vf == nil {
				continue
			}
			if str, err := vf.Format(c.Value); err == nil {
				line[i] = str
			}
		}
		if err := ws.Write(line); err != nil {
			return err
		}
	}
	return ws.Flush()
}
