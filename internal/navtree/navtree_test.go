package navtree

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ziadkadry99/navchart/internal/navcode"
)

// node builds a Simple node whose level follows its code depth.
func node(code string) *Node {
	c := navcode.MustParse(code)
	return NewSimple(Fields{Code: c, Level: c.Depth(), Title: "Title " + code, URL: "/" + code})
}

func childCodes(n *Node) []string {
	var codes []string
	for _, c := range n.Children {
		codes = append(codes, c.IndexCode())
	}
	return codes
}

func TestVariantConstructors(t *testing.T) {
	f := Fields{Code: navcode.MustParse("1.2"), Level: 1, ShowsInNav: false, HasLandingPage: false, LevelsToShow: 3}

	simple := NewSimple(f)
	if !simple.ShowsInNav || !simple.HasLandingPage || simple.HasSectionNav {
		t.Errorf("Simple flags = show:%v landing:%v section:%v, want true/true/false",
			simple.ShowsInNav, simple.HasLandingPage, simple.HasSectionNav)
	}
	if simple.LevelsToShow != 0 {
		t.Errorf("Simple LevelsToShow = %d, want 0", simple.LevelsToShow)
	}

	hidden := NewHidden(f)
	if hidden.HasSectionNav || hidden.ShowsInNav || hidden.HasLandingPage {
		t.Error("Hidden should keep row flags and never have a section nav")
	}

	for _, n := range []*Node{NewMenued(f), NewDetachedMenued(f)} {
		if !n.HasSectionNav {
			t.Errorf("%s should have a section nav", n.Variant)
		}
		if n.LevelsToShow != 3 {
			t.Errorf("%s LevelsToShow = %d, want 3", n.Variant, n.LevelsToShow)
		}
	}

	for _, v := range Variants() {
		if got := New(v, f).Variant; got != v {
			t.Errorf("New(%s).Variant = %s", v, got)
		}
	}
}

func TestVariantNames(t *testing.T) {
	for _, v := range Variants() {
		got, err := ParseVariant(v.String())
		if err != nil {
			t.Fatalf("ParseVariant(%q): %v", v.String(), err)
		}
		if got != v {
			t.Errorf("ParseVariant(%q) = %s", v.String(), got)
		}
	}
	if _, err := ParseVariant("Bogus"); err == nil {
		t.Error("expected error for unknown variant")
	}
	if !Menued.HasMenu() || !DetachedMenued.HasMenu() || Simple.HasMenu() || Hidden.HasMenu() {
		t.Error("HasMenu mismatch")
	}
}

func TestBuildAttachesToDeepestParent(t *testing.T) {
	nodes := []*Node{node("1.1.1"), node("1.2"), node("1"), node("1.1")}

	root, err := Build(nodes)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if root.IndexCode() != "1" {
		t.Fatalf("root = %s, want 1", root.IndexCode())
	}
	if got := strings.Join(childCodes(root), ","); got != "1.1,1.2" {
		t.Errorf("root children = %s, want 1.1,1.2", got)
	}
	first := root.Children[0]
	if got := strings.Join(childCodes(first), ","); got != "1.1.1" {
		t.Errorf("1.1 children = %s, want 1.1.1", got)
	}
	if len(root.Children[1].Children) != 0 {
		t.Errorf("1.2 should be a leaf")
	}
}

func TestBuildSortsChildrenNumerically(t *testing.T) {
	nodes := []*Node{node("1"), node("1.10"), node("1.2"), node("1.9"), node("1.2.1")}

	root, err := Build(nodes)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := strings.Join(childCodes(root), ","); got != "1.2,1.9,1.10" {
		t.Errorf("root children = %s, want 1.2,1.9,1.10", got)
	}
}

func TestBuildGapWithoutDescendantsIsFine(t *testing.T) {
	root, err := Build([]*Node{node("1"), node("1.1"), node("1.3")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(root.Children) != 2 {
		t.Errorf("root children = %d, want 2", len(root.Children))
	}
}

func TestBuildMissingParent(t *testing.T) {
	_, err := Build([]*Node{node("1"), node("1.2.1")})

	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *StructuralError", err)
	}
	if se.Kind != MissingParent {
		t.Errorf("kind = %s, want missing parent", se.Kind)
	}
	if se.Code != "1.2" {
		t.Errorf("code = %q, want 1.2", se.Code)
	}
	if !strings.Contains(err.Error(), "1.2") {
		t.Errorf("message %q should name 1.2", err.Error())
	}
}

func TestBuildRootCount(t *testing.T) {
	noRoot := []*Node{node("1.1"), node("1.2")}
	twoRoots := []*Node{node("1"), node("2"), node("1.1")}

	tests := []struct {
		name  string
		nodes []*Node
		kind  StructuralErrorKind
	}{
		{"none", noRoot, NoRoot},
		{"empty", nil, NoRoot},
		{"two", twoRoots, MultipleRoots},
	}
	for _, tt := range tests {
		_, err := Build(tt.nodes)
		var se *StructuralError
		if !errors.As(err, &se) {
			t.Errorf("%s: error = %v, want *StructuralError", tt.name, err)
			continue
		}
		if se.Kind != tt.kind {
			t.Errorf("%s: kind = %s, want %s", tt.name, se.Kind, tt.kind)
		}
	}
}

func TestBuildDuplicateCode(t *testing.T) {
	_, err := Build([]*Node{node("1"), node("1.1"), node("1.1")})
	var se *StructuralError
	if !errors.As(err, &se) || se.Kind != DuplicateCode {
		t.Fatalf("error = %v, want duplicate code", err)
	}
	if se.Code != "1.1" {
		t.Errorf("code = %q, want 1.1", se.Code)
	}
}

func TestBuildTopLevelCodeWithNonZeroLevel(t *testing.T) {
	stray := NewSimple(Fields{Code: navcode.MustParse("2"), Level: 1})
	_, err := Build([]*Node{node("1"), stray})
	var se *StructuralError
	if !errors.As(err, &se) || se.Kind != MissingParent {
		t.Fatalf("error = %v, want missing parent", err)
	}
	if se.Child != "2" {
		t.Errorf("child = %q, want 2", se.Child)
	}
}

func TestFindRejectsNumericPrefixSiblings(t *testing.T) {
	root, err := Build([]*Node{node("1"), node("1.1"), node("1.12"), node("1.12.3"), node("1.1.2")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	got := root.Find(navcode.MustParse("1.12.3"))
	if got == nil || got.IndexCode() != "1.12.3" {
		t.Fatalf("Find(1.12.3) = %v", got)
	}

	// 1.1 must not claim 1.12.3 even though "1.1" is a string prefix of "1.12.3".
	if found := root.Children[0].Find(navcode.MustParse("1.12.3")); found != nil {
		t.Errorf("1.1 subtree returned %s", found.IndexCode())
	}

	if root.Find(navcode.MustParse("1.5")) != nil {
		t.Error("Find(1.5) should be nil")
	}
	if root.Children[0].Find(navcode.MustParse("1")) != nil {
		t.Error("a subtree must not find its ancestor")
	}
	if root.Find(navcode.MustParse("12")) != nil {
		t.Error("Find(12) should be nil")
	}
}

func TestPath(t *testing.T) {
	root, err := Build([]*Node{node("1"), node("1.1"), node("1.1.1"), node("1.2")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	path := root.Path(navcode.MustParse("1.1.1"))
	var codes []string
	for _, n := range path {
		codes = append(codes, n.IndexCode())
	}
	if got := strings.Join(codes, " > "); got != "1 > 1.1 > 1.1.1" {
		t.Errorf("path = %q", got)
	}
	if root.Path(navcode.MustParse("1.3")) != nil {
		t.Error("Path(1.3) should be nil")
	}
}

func TestOrgChartThreeLevels(t *testing.T) {
	root, err := Build([]*Node{node("1"), node("1.1"), node("1.1.1"), node("1.1.2"), node("1.2")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	chart := root.OrgChart()
	if chart.Code != "1" || len(chart.Children) != 2 {
		t.Fatalf("root chart = %+v", chart)
	}
	if chart.Children[0].Code != "1.1" || chart.Children[1].Code != "1.2" {
		t.Errorf("level 1 order = %s,%s", chart.Children[0].Code, chart.Children[1].Code)
	}
	grand := chart.Children[0].Children
	if len(grand) != 2 || grand[0].Code != "1.1.1" || grand[1].Code != "1.1.2" {
		t.Errorf("level 2 = %+v", grand)
	}
	if chart.Variant != "Simple" {
		t.Errorf("variant = %q, want Simple", chart.Variant)
	}

	data, err := json.Marshal(chart)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	children := generic["children"].([]any)
	leaf := children[1].(map[string]any)
	if _, ok := leaf["children"]; ok {
		t.Error("leaf node should not have a children key")
	}
	if leaf["code"] != "1.2" {
		t.Errorf("leaf code = %v", leaf["code"])
	}
}

func TestOrgChartDeepTree(t *testing.T) {
	code := "1"
	nodes := []*Node{node(code)}
	for i := 0; i < 5000; i++ {
		code += ".1"
		nodes = append(nodes, node(code))
	}
	root, err := Build(nodes)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	depth := 0
	for c := root.OrgChart(); len(c.Children) > 0; c = c.Children[0] {
		depth++
	}
	if depth != 5000 {
		t.Errorf("depth = %d, want 5000", depth)
	}
}

func TestWalkAndCounts(t *testing.T) {
	hidden := NewHidden(Fields{Code: navcode.MustParse("1.2"), Level: 1})
	root, err := Build([]*Node{node("1"), node("1.1"), hidden, node("1.1.1")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var visited []string
	root.Walk(func(n *Node, depth int) bool {
		visited = append(visited, n.IndexCode())
		if depth != n.Code.Depth() {
			t.Errorf("depth for %s = %d", n.IndexCode(), depth)
		}
		return true
	})
	if got := strings.Join(visited, ","); got != "1,1.1,1.1.1,1.2" {
		t.Errorf("walk order = %s", got)
	}

	if root.Count() != 4 {
		t.Errorf("Count = %d, want 4", root.Count())
	}
	counts := root.VariantCounts()
	if counts[Simple] != 3 || counts[Hidden] != 1 {
		t.Errorf("counts = %v", counts)
	}

	var pruned []string
	root.Walk(func(n *Node, depth int) bool {
		pruned = append(pruned, n.IndexCode())
		return depth < 1
	})
	if got := strings.Join(pruned, ","); got != "1,1.1,1.2" {
		t.Errorf("pruned walk = %s", got)
	}
}
