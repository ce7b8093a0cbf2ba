// Package navtree holds the site navigation tree: its node variants, the builder that links a
// flat list of nodes into a rooted tree, and the org chart serialization used by the renderer.
package navtree

import (
	"fmt"

	"github.com/ziadkadry99/navchart/internal/navcode"
)

// Variant identifies which shape of navigation entry a node is.
type Variant int

const (
	// Simple is a normal menu item: shown in nav, with a landing page, no section nav.
	Simple Variant = iota
	// Hidden does not show in navigation, either by flag or for lack of a landing page.
	Hidden
	// Menued carries its own section navigation and is connected to the main nav.
	Menued
	// DetachedMenued carries a section navigation but is not reachable from the main nav.
	// Sections like organizations or cancer types tend to look like this.
	DetachedMenued
)

var variantNames = [...]string{
	Simple:         "Simple",
	Hidden:         "Hidden",
	Menued:         "Menued",
	DetachedMenued: "DetachedMenued",
}

// String returns the variant name used in serialized trees and CSS classes.
func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// Variants lists every variant in declaration order.
func Variants() []Variant {
	return []Variant{Simple, Hidden, Menued, DetachedMenued}
}

// ParseVariant is the inverse of Variant.String.
func ParseVariant(s string) (Variant, error) {
	for i, name := range variantNames {
		if name == s {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("unknown node variant %q", s)
}

// HasMenu reports whether nodes of this variant carry a section navigation.
func (v Variant) HasMenu() bool {
	return v == Menued || v == DetachedMenued
}

// Node is one entry of the navigation hierarchy.
type Node struct {
	Variant        Variant
	URL            string // empty for some hidden nodes
	Level          int    // 0 is the root
	Code           navcode.Code
	ShowsInNav     bool
	Title          string
	HasSectionNav  bool
	HasLandingPage bool
	LeafPages      int // non-landing pages in the folder
	LevelsToShow   int // only meaningful when Variant.HasMenu()
	Children       []*Node
}

// Fields are the attributes shared by every variant. The constructors decide which of them
// are honored and which are fixed by the variant.
type Fields struct {
	URL            string
	Level          int
	Code           navcode.Code
	ShowsInNav     bool
	Title          string
	HasLandingPage bool
	LeafPages      int
	LevelsToShow   int
}

// NewSimple creates a Simple node. These always show in nav and have a landing page.
func NewSimple(f Fields) *Node {
	return &Node{
		Variant:        Simple,
		URL:            f.URL,
		Level:          f.Level,
		Code:           f.Code,
		ShowsInNav:     true,
		Title:          f.Title,
		HasSectionNav:  false,
		HasLandingPage: true,
		LeafPages:      f.LeafPages,
	}
}

// NewHidden creates a Hidden node.
func NewHidden(f Fields) *Node {
	return &Node{
		Variant:        Hidden,
		URL:            f.URL,
		Level:          f.Level,
		Code:           f.Code,
		ShowsInNav:     f.ShowsInNav,
		Title:          f.Title,
		HasSectionNav:  false,
		HasLandingPage: f.HasLandingPage,
		LeafPages:      f.LeafPages,
	}
}

// NewMenued creates a Menued node.
func NewMenued(f Fields) *Node {
	return newMenu(Menued, f)
}

// NewDetachedMenued creates a DetachedMenued node.
func NewDetachedMenued(f Fields) *Node {
	return newMenu(DetachedMenued, f)
}

func newMenu(v Variant, f Fields) *Node {
	return &Node{
		Variant:        v,
		URL:            f.URL,
		Level:          f.Level,
		Code:           f.Code,
		ShowsInNav:     f.ShowsInNav,
		Title:          f.Title,
		HasSectionNav:  true,
		HasLandingPage: f.HasLandingPage,
		LeafPages:      f.LeafPages,
		LevelsToShow:   f.LevelsToShow,
	}
}

// New creates a node of the given variant.
func New(v Variant, f Fields) *Node {
	switch v {
	case Hidden:
		return NewHidden(f)
	case Menued:
		return NewMenued(f)
	case DetachedMenued:
		return NewDetachedMenued(f)
	default:
		return NewSimple(f)
	}
}

// IndexCode returns the dotted form of the node's code.
func (n *Node) IndexCode() string {
	return n.Code.String()
}

// Sections returns the top-level children of the root, one static page each.
func (n *Node) Sections() []*Node {
	return n.Children
}
