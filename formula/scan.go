package formula

import (
	"strings"

	"github.com/midbel/gridcalc/formula/op"
)

// Span is a fragment of an expression with its byte offset in the
// original text.
type Span struct {
	Text   string
	Offset int
}

func (s Span) End() int {
	return s.Offset + len(s.Text)
}

// Tokenize splits expr on the operator symbols. Longer symbols are matched
// first. Empty fragments are dropped and the others are trimmed.
func Tokenize(expr string) []string {
	spans := TokenizeSpans(expr)
	list := make([]string, 0, len(spans))
	for _, s := range spans {
		list = append(list, s.Text)
	}
	return list
}

func TokenizeSpans(expr string) []Span {
	scan := Scanner{
		input: expr,
		seps:  op.Separators(),
	}
	return scan.Scan()
}

type Scanner struct {
	input string
	curr  int
	start int
	seps  []string

	spans []Span
}

func (s *Scanner) Scan() []Span {
	for !s.done() {
		sep, ok := s.separator()
		if !ok {
			s.curr++
			continue
		}
		s.flush()
		s.spans = append(s.spans, Span{
			Text:   sep,
			Offset: s.curr,
		})
		s.curr += len(sep)
		s.start = s.curr
	}
	s.flush()
	return s.spans
}

func (s *Scanner) separator() (string, bool) {
	rest := s.input[s.curr:]
	for _, sep := range s.seps {
		if strings.HasPrefix(rest, sep) {
			return sep, true
		}
	}
	return "", false
}

func (s *Scanner) flush() {
	frag := s.input[s.start:s.curr]
	str := strings.TrimSpace(frag)
	if str == "" {
		return
	}
	s.spans = append(s.spans, Span{
		Text:   str,
		Offset: s.start + strings.Index(frag, str),
	})
}

func (s *Scanner) done() bool {
	return s.curr >= len(s.input)
}
