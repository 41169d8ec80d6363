package csv

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	quote = '"'
	nl    = '\n'
	cr    = '\r'
	space = ' '
)

var errUnterminated = errors.New("unterminated quoted field")

type Reader struct {
	inner         *bufio.Reader
	Comma         byte
	Comment       byte
	FieldsPerLine int
	TrimSpace     bool

	line  int
	atEOF bool
}

func NewReader(r io.Reader) *Reader {
	rs := Reader{
		inner: bufio.NewReader(r),
		Comma: ',',
	}
	return &rs
}

// Line gives the line where the last record read started.
func (r *Reader) Line() int {
	return r.line
}

func (r *Reader) Done() bool {
	return r.atEOF
}

func (r *Reader) ReadAll() ([][]string, error) {
	var all [][]string
	for {
		rs, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		all = append(all, rs)
	}
	return all, nil
}

// Read gives the fields of the next record. Blank lines and comments are
// skipped.
func (r *Reader) Read() ([]string, error) {
	line, err := r.readLine()
	if err != nil {
		return nil, err
	}
	var res []string
	for i := 0; i < len(line); {
		var (
			field []byte
			size  int
			err   error
		)
		if line[i] == quote {
			for {
				field, size, err = r.readQuotedField(line[i:])
				if !errors.Is(err, errUnterminated) {
					break
				}
				next, err1 := r.inner.ReadBytes(nl)
				if len(next) == 0 {
					return nil, r.makeError(err)
				}
				if err1 != nil && !errors.Is(err1, io.EOF) {
					return nil, err1
				}
				line = append(line, next...)
			}
		} else {
			field, size, err = r.readDefaultField(line[i:])
		}
		if err != nil {
			return nil, r.makeError(err)
		}
		i += size
		res = append(res, string(field))
		if i >= len(line) {
			break
		}
		switch line[i] {
		case r.Comma:
			i++
			if i >= len(line) || line[i] == nl || line[i] == cr {
				res = append(res, "")
				i = len(line)
			}
		case cr:
			if i+1 < len(line) && line[i+1] != nl {
				return nil, r.makeError(fmt.Errorf("carriage return only allow followed by newline"))
			}
			i = len(line)
		case nl:
			i = len(line)
		default:
			return nil, r.makeError(fmt.Errorf("unexpected character after field"))
		}
	}
	if r.FieldsPerLine > 0 && len(res) != r.FieldsPerLine {
		return nil, r.makeError(fmt.Errorf("invalid number of fields (want %d, got %d)", r.FieldsPerLine, len(res)))
	}
	return res, nil
}

func (r *Reader) readLine() ([]byte, error) {
	for {
		if r.Done() {
			return nil, io.EOF
		}
		line, err := r.inner.ReadBytes(nl)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, err
			}
			r.atEOF = true
		}
		r.line++
		if len(bytes.TrimRight(line, "\r\n")) == 0 {
			continue
		}
		if r.Comment != 0 && line[0] == r.Comment {
			continue
		}
		return line, nil
	}
}

func (r *Reader) readQuotedField(line []byte) ([]byte, int, error) {
	var (
		pos    = 1
		offset = pos
	)
	for offset < len(line) {
		if line[offset] == quote {
			if offset+1 < len(line) && line[offset+1] == quote {
				offset += 2
				continue
			}
			field := bytes.ReplaceAll(line[pos:offset], []byte{quote, quote}, []byte{quote})
			return field, offset + 1, nil
		}
		offset++
	}
	return nil, 0, errUnterminated
}

func (r *Reader) readDefaultField(line []byte) ([]byte, int, error) {
	var offset int
	for offset < len(line) {
		switch line[offset] {
		case quote:
			return nil, 0, fmt.Errorf("unexpected quote")
		case r.Comma, cr, nl:
			return r.trim(line[:offset]), offset, nil
		default:
			offset++
		}
	}
	return r.trim(line[:offset]), offset, nil
}

func (r *Reader) trim(field []byte) []byte {
	if !r.TrimSpace {
		return field
	}
	return bytes.TrimSpace(field)
}

func (r *Reader) makeError(err error) error {
	return fmt.Errorf("line %d: %w", r.line, err)
}
