// Package navcode parses and orders dotted navigation index codes such as "1.2.3.4".
package navcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Code is a parsed navigation index code. Each element is one level of the hierarchy,
// so "1.2.3" is [1 2 3] and sits two levels below the root code "1".
type Code []int

var errSigned = errors.New("segment must be an unsigned integer")

// ParseError reports a code segment that is not an unsigned base-10 integer.
type ParseError struct {
	Code    string
	Segment string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid nav index code %q: segment %q is not an unsigned integer", e.Code, e.Segment)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RangeError reports a request for the parent of a single-segment code.
type RangeError struct {
	Code string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("nav index code %q has no parent", e.Code)
}

// Parse splits s on "." and parses each part as an unsigned base-10 integer.
func Parse(s string) (Code, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ".")
	code := make(Code, len(parts))
	for i, part := range parts {
		if part != "" && (part[0] == '+' || part[0] == '-') {
			return nil, &ParseError{Code: s, Segment: part, Err: errSigned}
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, &ParseError{Code: s, Segment: part, Err: err}
		}
		code[i] = n
	}
	return code, nil
}

// MustParse is like Parse but panics on error. Intended for literals.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Compare orders two codes element-wise. When one code is a prefix of the other,
// the shorter (shallower) code sorts first.
func Compare(a, b Code) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Parent returns c without its last element.
func Parent(c Code) (Code, error) {
	if len(c) <= 1 {
		return nil, &RangeError{Code: c.String()}
	}
	parent := make(Code, len(c)-1)
	copy(parent, c)
	return parent, nil
}

// String re-joins the segments with ".".
func (c Code) String() string {
	parts := make([]string, len(c))
	for i, n := range c {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Depth is the number of levels below the root; the root code has depth 0.
func (c Code) Depth() int {
	return len(c) - 1
}

// Equal reports whether both codes have the same segments.
func (c Code) Equal(other Code) bool {
	return Compare(c, other) == 0
}

// IsPrefixOf reports whether c is a segment-wise prefix of other (or equal to it).
// "1" is a prefix of "1.2" but not of "12".
func (c Code) IsPrefixOf(other Code) bool {
	if len(c) > len(other) {
		return false
	}
	for i, n := range c {
		if other[i] != n {
			return false
		}
	}
	return true
}
