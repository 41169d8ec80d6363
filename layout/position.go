package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/midbel/gridcalc/value"
)

const (
	maxLetters = 3
	maxDigits  = 3
	dollar     = '$'
)

type Position struct {
	Line   int
	Column int
}

func (p Position) Equal(other Position) bool {
	return p.Line == other.Line && p.Column == other.Column
}

func (p Position) Addr() string {
	return ColumnName(p.Column) + strconv.Itoa(p.Line)
}

func (p Position) String() string {
	return p.Addr()
}

func (p Position) Offset(lines, columns int) Position {
	p.Line += lines
	p.Column += columns
	return p
}

// Delta gives the number of lines and columns to move from p to other.
func (p Position) Delta(other Position) (int, int) {
	return other.Line - p.Line, other.Column - p.Column
}

// Address is a position as written in a formula. Absolute components are
// left untouched when the formula is moved.
type Address struct {
	Position
	AbsCol bool
	AbsRow bool
}

func NewAddress(pos Position) Address {
	return Address{
		Position: pos,
	}
}

func (a Address) String() string {
	var str strings.Builder
	if a.AbsCol {
		str.WriteRune(dollar)
	}
	str.WriteString(ColumnName(a.Column))
	if a.AbsRow {
		str.WriteRune(dollar)
	}
	str.WriteString(strconv.Itoa(a.Line))
	return str.String()
}

func (a Address) CloneWithOffset(lines, columns int) Address {
	if !a.AbsRow {
		a.Line += lines
	}
	if !a.AbsCol {
		a.Column += columns
	}
	return a
}

func FormatAddress(a Address) string {
	return a.String()
}

func IsAddress(str string) bool {
	_, err := ParseAddress(str)
	return err == nil
}

// ParseAddress decodes str without checking it against any grid.
func ParseAddress(str string) (Address, error) {
	var (
		addr   Address
		offset int
		size   = len(str)
	)
	if offset < size && str[offset] == dollar {
		addr.AbsCol = true
		offset++
	}
	col, n := ParseIndex(str[offset:])
	if n == 0 || n > maxLetters {
		return addr, fmt.Errorf("%w: %q", value.ErrAddress, str)
	}
	offset += n
	if offset < size && str[offset] == dollar {
		addr.AbsRow = true
		offset++
	}
	digits := str[offset:]
	if len(digits) == 0 || len(digits) > maxDigits {
		return addr, fmt.Errorf("%w: %q", value.ErrAddress, str)
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(rune(digits[i])) {
			return addr, fmt.Errorf("%w: %q", value.ErrAddress, str)
		}
	}
	line, _ := strconv.Atoi(digits)
	addr.Line = line
	addr.Column = col
	return addr, nil
}

// ParseBounded decodes str and rejects addresses outside of dim.
func ParseBounded(str string, dim Dimension) (Address, error) {
	addr, err := ParseAddress(str)
	if err != nil {
		return addr, err
	}
	return addr, dim.Check(addr.Position)
}

func ParseIndex(str string) (int, int) {
	var (
		offset int
		index  int
	)
	for offset < len(str) && isLetter(rune(str[offset])) {
		delta := byte('A')
		if isLower(rune(str[offset])) {
			delta = 'a'
		}
		index = index*26 + int(str[offset]-delta+1)
		offset++
	}
	return index, offset
}

func ColumnIndex(str string) int {
	ix, n := ParseIndex(str)
	if n != len(str) {
		return 0
	}
	return ix
}

func ColumnName(ix int) string {
	var result string
	for ix > 0 {
		ix--
		result = string(rune('A')+rune(ix%26)) + result
		ix /= 26
	}
	return result
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isLower(c rune) bool {
	return c >= 'a' && c <= 'z'
}

func isUpper(c rune) bool {
	return c >= 'A' && c <= 'Z'
}

func isLetter(c rune) bool {
	return isLower(c) || isUpper(c)
}
