package navcode

import (
	"errors"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []string{"1", "1.2", "1.2.3.4", "10.20.300", "3.14.1"} {
		c, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if c.String() != s {
			t.Errorf("Parse(%q).String() = %q", s, c.String())
		}
	}
}

func TestParseSegments(t *testing.T) {
	c, err := Parse(" 1.2.3 ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Code{1, 2, 3}
	if len(c) != len(want) {
		t.Fatalf("len = %d, want %d", len(c), len(want))
	}
	for i := range want {
		if c[i] != want[i] {
			t.Errorf("c[%d] = %d, want %d", i, c[i], want[i])
		}
	}
	if c.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", c.Depth())
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		input   string
		segment string
	}{
		{"1.a.3", "a"},
		{"", ""},
		{"1..2", ""},
		{"1.2.", ""},
		{"1.2b", "2b"},
		{"1.-2", "-2"},
		{"1.+2", "+2"},
		{"-1", "-1"},
		{"1.-0", "-0"},
	}
	for _, tt := range tests {
		_, err := Parse(tt.input)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q) error = %v, want *ParseError", tt.input, err)
			continue
		}
		if pe.Segment != tt.segment {
			t.Errorf("Parse(%q) segment = %q, want %q", tt.input, pe.Segment, tt.segment)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2", "1.2.3", -1},
		{"1.2.3", "1.2", 1},
		{"1.2.3", "1.2.4", -1},
		{"2", "1.9.9", 1},
		{"1.10", "1.9", 1},
		{"1.2.3", "1.2.3", 0},
	}
	for _, tt := range tests {
		got := Compare(MustParse(tt.a), MustParse(tt.b))
		if got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParent(t *testing.T) {
	p, err := Parent(MustParse("1.2.3"))
	if err != nil {
		t.Fatalf("Parent: %v", err)
	}
	if p.String() != "1.2" {
		t.Errorf("Parent(1.2.3) = %q, want 1.2", p.String())
	}

	_, err = Parent(MustParse("1"))
	var re *RangeError
	if !errors.As(err, &re) {
		t.Fatalf("Parent(1) error = %v, want *RangeError", err)
	}
	if re.Code != "1" {
		t.Errorf("RangeError.Code = %q, want 1", re.Code)
	}
}

func TestParentDoesNotAlias(t *testing.T) {
	c := MustParse("1.2.3")
	p, _ := Parent(c)
	p[0] = 9
	if c[0] != 1 {
		t.Error("Parent result shares storage with its input")
	}
}

func TestIsPrefixOf(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1", "1.2", true},
		{"1", "12", false},
		{"1", "12.1", false},
		{"1.2", "1.2", true},
		{"1.2.3", "1.2", false},
		{"1.2", "1.20.1", false},
	}
	for _, tt := range tests {
		got := MustParse(tt.a).IsPrefixOf(MustParse(tt.b))
		if got != tt.want {
			t.Errorf("%q.IsPrefixOf(%q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
