// Package classify turns spreadsheet rows into unattached navigation nodes.
package classify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ziadkadry99/navchart/internal/navcode"
	"github.com/ziadkadry99/navchart/internal/navtree"
	"github.com/ziadkadry99/navchart/internal/sheet"
)

// FieldError reports a row value that cannot be interpreted.
type FieldError struct {
	Line   int
	Column string
	Value  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("row %d: column %s value %q: %s", e.Line, e.Column, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Flags are the row attributes that decide a node's variant.
type Flags struct {
	ShowInNav      bool
	HasLandingPage bool
	HasSectionNav  bool
}

// disconnected means the entry cannot be reached from the showing navigation.
func (f Flags) disconnected() bool {
	return !f.HasLandingPage || !f.ShowInNav
}

type rule struct {
	match   func(Flags) bool
	variant navtree.Variant
}

// rules are evaluated in order and the first match wins. The conditions overlap: a
// detached section nav also matches the hidden rule, so order decides.
var rules = []rule{
	{func(f Flags) bool { return f.HasSectionNav && f.disconnected() }, navtree.DetachedMenued},
	{func(f Flags) bool { return f.disconnected() }, navtree.Hidden},
	{func(f Flags) bool { return f.HasSectionNav }, navtree.Menued},
	{func(Flags) bool { return true }, navtree.Simple},
}

// Decide returns the variant for a set of flags.
func Decide(f Flags) navtree.Variant {
	for _, r := range rules {
		if r.match(f) {
			return r.variant
		}
	}
	return navtree.Simple
}

// Row converts one sheet row into a node with no children.
func Row(row sheet.Row) (*navtree.Node, error) {
	raw := strings.ReplaceAll(row.NavIndexCode, "'", "")
	code, err := navcode.Parse(raw)
	if err != nil {
		return nil, &FieldError{Line: row.Line, Column: sheet.ColNavIndexCode, Value: row.NavIndexCode, Reason: "invalid nav index code", Err: err}
	}

	level, err := strconv.Atoi(strings.TrimSpace(row.Level))
	if err != nil {
		return nil, &FieldError{Line: row.Line, Column: sheet.ColLevel, Value: row.Level, Reason: "not an integer", Err: err}
	}
	if level != code.Depth() {
		return nil, &FieldError{
			Line:   row.Line,
			Column: sheet.ColLevel,
			Value:  row.Level,
			Reason: fmt.Sprintf("does not match depth %d of code %s", code.Depth(), code),
		}
	}

	leafPages, err := nullableInt(row.Line, sheet.ColNonLandingPageCount, row.NonLandingPageCount)
	if err != nil {
		return nil, err
	}
	levelsToShow, err := nullableInt(row.Line, sheet.ColLevelsToShow, row.LevelsToShow)
	if err != nil {
		return nil, err
	}

	flags := Flags{
		ShowInNav:      flag(row.ShowInNav),
		HasLandingPage: flag(row.HasLandingPage),
		HasSectionNav:  flag(row.HasSectionNav),
	}

	return navtree.New(Decide(flags), navtree.Fields{
		URL:            row.Path,
		Level:          level,
		Code:           code,
		ShowsInNav:     flags.ShowInNav,
		Title:          title(row),
		HasLandingPage: flags.HasLandingPage,
		LeafPages:      leafPages,
		LevelsToShow:   levelsToShow,
	}), nil
}

// Rows converts every row, in order, stopping at the first bad one.
func Rows(rows []sheet.Row) ([]*navtree.Node, error) {
	nodes := make([]*navtree.Node, 0, len(rows))
	for _, r := range rows {
		n, err := Row(r)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func flag(v string) bool {
	return strings.TrimSpace(v) == "1"
}

func isNull(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == sheet.Null
}

func nullableInt(line int, column, v string) (int, error) {
	if isNull(v) {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &FieldError{Line: line, Column: column, Value: v, Reason: "not an integer", Err: err}
	}
	return n, nil
}

// title prefers the nav title and falls back to the landing page title.
func title(row sheet.Row) string {
	if isNull(row.NavTitle) {
		return row.LandingPage
	}
	return row.NavTitle
}
