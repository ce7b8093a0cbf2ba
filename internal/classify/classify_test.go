package classify

import (
	"errors"
	"testing"

	"github.com/ziadkadry99/navchart/internal/navcode"
	"github.com/ziadkadry99/navchart/internal/navtree"
	"github.com/ziadkadry99/navchart/internal/sheet"
)

func baseRow() sheet.Row {
	return sheet.Row{
		Line:                2,
		Path:                "/about",
		Level:               "1",
		NavIndexCode:        "1.1",
		ShowInNav:           "1",
		HasLandingPage:      "1",
		NonLandingPageCount: "4",
		HasSectionNav:       "0",
		LevelsToShow:        "NULL",
		NavTitle:            "About",
		LandingPage:         "About Us",
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  navtree.Variant
	}{
		{"section nav without landing page", Flags{ShowInNav: true, HasLandingPage: false, HasSectionNav: true}, navtree.DetachedMenued},
		{"section nav not shown", Flags{ShowInNav: false, HasLandingPage: true, HasSectionNav: true}, navtree.DetachedMenued},
		{"section nav neither", Flags{HasSectionNav: true}, navtree.DetachedMenued},
		{"not shown", Flags{ShowInNav: false, HasLandingPage: true}, navtree.Hidden},
		{"no landing page", Flags{ShowInNav: true, HasLandingPage: false}, navtree.Hidden},
		{"connected section nav", Flags{ShowInNav: true, HasLandingPage: true, HasSectionNav: true}, navtree.Menued},
		{"normal", Flags{ShowInNav: true, HasLandingPage: true}, navtree.Simple},
	}
	for _, tt := range tests {
		if got := Decide(tt.flags); got != tt.want {
			t.Errorf("%s: Decide = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestRowVariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sheet.Row)
		want   navtree.Variant
	}{
		{"detached", func(r *sheet.Row) { r.HasSectionNav = "1"; r.HasLandingPage = "0" }, navtree.DetachedMenued},
		{"hidden", func(r *sheet.Row) { r.ShowInNav = "0" }, navtree.Hidden},
		{"menued", func(r *sheet.Row) { r.HasSectionNav = "1"; r.LevelsToShow = "3" }, navtree.Menued},
		{"simple", func(*sheet.Row) {}, navtree.Simple},
		{"flag must be exactly 1", func(r *sheet.Row) { r.ShowInNav = "true" }, navtree.Hidden},
	}
	for _, tt := range tests {
		row := baseRow()
		tt.mutate(&row)
		n, err := Row(row)
		if err != nil {
			t.Fatalf("%s: Row: %v", tt.name, err)
		}
		if n.Variant != tt.want {
			t.Errorf("%s: variant = %s, want %s", tt.name, n.Variant, tt.want)
		}
		if len(n.Children) != 0 {
			t.Errorf("%s: new node should have no children", tt.name)
		}
	}
}

func TestRowFields(t *testing.T) {
	row := baseRow()
	row.HasSectionNav = "1"
	row.LevelsToShow = "3"
	row.NavIndexCode = "'1.1'"

	n, err := Row(row)
	if err != nil {
		t.Fatalf("Row: %v", err)
	}
	if !n.Code.Equal(navcode.MustParse("1.1")) {
		t.Errorf("code = %s, want 1.1 with quotes stripped", n.Code)
	}
	if n.URL != "/about" || n.Level != 1 || n.Title != "About" {
		t.Errorf("node = %+v", n)
	}
	if n.LeafPages != 4 || n.LevelsToShow != 3 {
		t.Errorf("leafPages = %d, levelsToShow = %d", n.LeafPages, n.LevelsToShow)
	}
}

func TestRowNullsAndTitleFallback(t *testing.T) {
	row := baseRow()
	row.NonLandingPageCount = "NULL"
	row.NavTitle = "NULL"

	n, err := Row(row)
	if err != nil {
		t.Fatalf("Row: %v", err)
	}
	if n.LeafPages != 0 {
		t.Errorf("leafPages = %d, want 0", n.LeafPages)
	}
	if n.Title != "About Us" {
		t.Errorf("title = %q, want landing page fallback", n.Title)
	}

	row.NavTitle = ""
	row.NonLandingPageCount = ""
	n, err = Row(row)
	if err != nil {
		t.Fatalf("Row: %v", err)
	}
	if n.Title != "About Us" || n.LeafPages != 0 {
		t.Errorf("empty cells: title = %q, leafPages = %d", n.Title, n.LeafPages)
	}
}

func TestRowErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sheet.Row)
		column string
	}{
		{"bad code", func(r *sheet.Row) { r.NavIndexCode = "1.x" }, sheet.ColNavIndexCode},
		{"bad level", func(r *sheet.Row) { r.Level = "one" }, sheet.ColLevel},
		{"level mismatch", func(r *sheet.Row) { r.Level = "2" }, sheet.ColLevel},
		{"bad count", func(r *sheet.Row) { r.NonLandingPageCount = "many" }, sheet.ColNonLandingPageCount},
		{"bad levels to show", func(r *sheet.Row) { r.LevelsToShow = "x" }, sheet.ColLevelsToShow},
	}
	for _, tt := range tests {
		row := baseRow()
		tt.mutate(&row)
		_, err := Row(row)
		var fe *FieldError
		if !errors.As(err, &fe) {
			t.Errorf("%s: error = %v, want *FieldError", tt.name, err)
			continue
		}
		if fe.Column != tt.column || fe.Line != 2 {
			t.Errorf("%s: column = %s line = %d", tt.name, fe.Column, fe.Line)
		}
	}

	row := baseRow()
	row.NavIndexCode = "1.x"
	_, err := Row(row)
	var pe *navcode.ParseError
	if !errors.As(err, &pe) {
		t.Errorf("bad code should unwrap to *navcode.ParseError, got %v", err)
	}
}

func TestRowsStopsAtFirstError(t *testing.T) {
	good := baseRow()
	bad := baseRow()
	bad.Line = 3
	bad.Level = "x"

	nodes, err := Rows([]sheet.Row{good, good})
	if err != nil || len(nodes) != 2 {
		t.Fatalf("Rows = %d, %v", len(nodes), err)
	}

	_, err = Rows([]sheet.Row{good, bad, good})
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Line != 3 {
		t.Errorf("error = %v, want row 3", err)
	}
}
