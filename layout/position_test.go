package layout

import (
	"errors"
	"testing"

	"github.com/midbel/gridcalc/value"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		Input string
		Want  Address
	}{
		{
			Input: "A1",
			Want:  Address{Position: Position{Line: 1, Column: 1}},
		},
		{
			Input: "j10",
			Want:  Address{Position: Position{Line: 10, Column: 10}},
		},
		{
			Input: "$B$3",
			Want:  Address{Position: Position{Line: 3, Column: 2}, AbsCol: true, AbsRow: true},
		},
		{
			Input: "C$7",
			Want:  Address{Position: Position{Line: 7, Column: 3}, AbsRow: true},
		},
		{
			Input: "$Z999",
			Want:  Address{Position: Position{Line: 999, Column: 26}, AbsCol: true},
		},
		{
			Input: "AA1",
			Want:  Address{Position: Position{Line: 1, Column: 27}},
		},
	}
	for _, c := range tests {
		got, err := ParseAddress(c.Input)
		if err != nil {
			t.Errorf("%s: fail to parse address: %s", c.Input, err)
			continue
		}
		if got != c.Want {
			t.Errorf("%s: address mismatched! want %+v, got %+v", c.Input, c.Want, got)
		}
	}
}

func TestParseAddressInvalid(t *testing.T) {
	tests := []string{
		"",
		"A",
		"1",
		"1A",
		"ABCD1",
		"A1000",
		"$$A1",
		"A$$1",
		"A1$",
		"A-1",
		"A 1",
		"A1.5",
	}
	for _, str := range tests {
		_, err := ParseAddress(str)
		if err == nil {
			t.Errorf("%s: invalid address parsed successfully", str)
			continue
		}
		if !errors.Is(err, value.ErrAddress) {
			t.Errorf("%s: unexpected error kind: %s", str, err)
		}
		if IsAddress(str) {
			t.Errorf("%s: should not be recognized as an address", str)
		}
	}
}

func TestParseBounded(t *testing.T) {
	tests := []struct {
		Input string
		Valid bool
	}{
		{Input: "A1", Valid: true},
		{Input: "J10", Valid: true},
		{Input: "$J$10", Valid: true},
		{Input: "K1", Valid: false},
		{Input: "A11", Valid: false},
		{Input: "A0", Valid: false},
		{Input: "AA1", Valid: false},
		{Input: "zzz999", Valid: false},
	}
	for _, c := range tests {
		_, err := ParseBounded(c.Input, DefaultDimension)
		if c.Valid && err != nil {
			t.Errorf("%s: address should be valid: %s", c.Input, err)
		}
		if !c.Valid && !errors.Is(err, value.ErrAddress) {
			t.Errorf("%s: address should be rejected, got %v", c.Input, err)
		}
	}
}

func TestFormatAddress(t *testing.T) {
	flags := []struct {
		AbsCol bool
		AbsRow bool
	}{
		{AbsCol: false, AbsRow: false},
		{AbsCol: true, AbsRow: false},
		{AbsCol: false, AbsRow: true},
		{AbsCol: true, AbsRow: true},
	}
	for line := 1; line <= DefaultDimension.Lines; line++ {
		for col := 1; col <= DefaultDimension.Columns; col++ {
			for _, f := range flags {
				want := Address{
					Position: Position{Line: line, Column: col},
					AbsCol:   f.AbsCol,
					AbsRow:   f.AbsRow,
				}
				str := FormatAddress(want)
				got, err := ParseAddress(str)
				if err != nil {
					t.Errorf("%s: fail to parse address: %s", str, err)
					continue
				}
				if got != want {
					t.Errorf("%s: address mismatched! want %+v - got %+v", str, want, got)
				}
			}
		}
	}
	for _, str := range []string{"$Z$999", "Z999", "$A1"} {
		addr, err := ParseAddress(str)
		if err != nil {
			t.Errorf("%s: fail to parse address: %s", str, err)
			continue
		}
		if got := FormatAddress(addr); got != str {
			t.Errorf("%s: formatted address mismatched! got %s", str, got)
		}
	}
	addr, _ := ParseAddress("b2")
	if got := addr.String(); got != "B2" {
		t.Errorf("lowercase address should be formatted uppercase, got %s", got)
	}
}

func TestCloneWithOffset(t *testing.T) {
	tests := []struct {
		Input   string
		Lines   int
		Columns int
		Want    string
	}{
		{Input: "A1", Lines: 1, Columns: 1, Want: "B2"},
		{Input: "$A1", Lines: 1, Columns: 1, Want: "$A2"},
		{Input: "A$1", Lines: 1, Columns: 1, Want: "B$1"},
		{Input: "$A$1", Lines: 3, Columns: 3, Want: "$A$1"},
		{Input: "C3", Lines: -2, Columns: -1, Want: "B1"},
	}
	for _, c := range tests {
		addr, _ := ParseAddress(c.Input)
		got := addr.CloneWithOffset(c.Lines, c.Columns).String()
		if got != c.Want {
			t.Errorf("%s: shifted address mismatched! want %s, got %s", c.Input, c.Want, got)
		}
	}
}

func TestColumnName(t *testing.T) {
	for i := 1; i <= 702; i++ {
		name := ColumnName(i)
		if got := ColumnIndex(name); got != i {
			t.Errorf("%d: column name %s gives back %d", i, name, got)
		}
	}
}
