package format

import (
	"strconv"
	"strings"

	"github.com/midbel/gridcalc/value"
)

const DefaultNumberPattern = "#######.00"

const (
	KindNumber = "number"
	KindBool   = "boolean"
	KindText   = "text"
)

// Formatter changes how a value is displayed. Stored values are never
// formatted.
type Formatter interface {
	Format(string) (string, error)
}

type ValueFormatter struct {
	formatters map[string]Formatter
}

func FormatValue() *ValueFormatter {
	vf := ValueFormatter{
		formatters: make(map[string]Formatter),
	}
	return &vf
}

func (vf *ValueFormatter) Set(kind string, formatter Formatter) {
	vf.formatters[kind] = formatter
}

func (vf *ValueFormatter) Number(pattern string) error {
	f, err := ParseNumberFormatter(pattern)
	if err == nil {
		vf.Set(KindNumber, f)
	}
	return err
}

func (vf *ValueFormatter) Format(str string) (string, error) {
	f, ok := vf.formatters[Kind(str)]
	if ok {
		return f.Format(str)
	}
	return str, nil
}

// Kind tells whether str is a number, a boolean or any other text.
func Kind(str string) string {
	if value.IsNumeric(str) {
		return KindNumber
	}
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true", "false":
		return KindBool
	}
	return KindText
}

func FormatString() Formatter {
	return strFormatter{}
}

func FormatBool() Formatter {
	return boolFormatter{}
}

type strFormatter struct{}

func (strFormatter) Format(str string) (string, error) {
	return str, nil
}

type boolFormatter struct{}

func (f boolFormatter) Format(str string) (string, error) {
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(str)))
	if err != nil {
		return "", err
	}
	return strings.ToUpper(strconv.FormatBool(b)), nil
}
