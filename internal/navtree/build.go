package navtree

import (
	"fmt"
	"slices"

	"github.com/ziadkadry99/navchart/internal/navcode"
)

// StructuralErrorKind classifies what is wrong with the shape of the input.
type StructuralErrorKind int

const (
	NoRoot StructuralErrorKind = iota
	MultipleRoots
	MissingParent
	DuplicateCode
)

func (k StructuralErrorKind) String() string {
	switch k {
	case NoRoot:
		return "no root"
	case MultipleRoots:
		return "multiple roots"
	case MissingParent:
		return "missing parent"
	case DuplicateCode:
		return "duplicate code"
	default:
		return fmt.Sprintf("StructuralErrorKind(%d)", int(k))
	}
}

// StructuralError reports input that cannot form a single rooted tree. Code names the
// offending code so the source sheet can be corrected; for MissingParent it is the parent
// code that could not be found and Child is the row that needed it.
type StructuralError struct {
	Kind  StructuralErrorKind
	Code  string
	Child string
	Count int // number of level-0 nodes for NoRoot/MultipleRoots
}

func (e *StructuralError) Error() string {
	switch e.Kind {
	case NoRoot:
		return "no root node found"
	case MultipleRoots:
		return fmt.Sprintf("multiple root nodes found (%d with level 0, first %s)", e.Count, e.Code)
	case MissingParent:
		if e.Code == "" {
			return fmt.Sprintf("code %s is not the root but has no parent segment", e.Child)
		}
		return fmt.Sprintf("parent %s not found for code %s", e.Code, e.Child)
	case DuplicateCode:
		return fmt.Sprintf("duplicate nav index code %s", e.Code)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Code)
	}
}

// Build sorts nodes by code, picks the single level-0 node as the root and attaches every
// other node to its parent. nodes is sorted in place. The returned root owns the tree.
func Build(nodes []*Node) (*Node, error) {
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		return navcode.Compare(a.Code, b.Code)
	})

	for i := 1; i < len(nodes); i++ {
		if nodes[i-1].Code.Equal(nodes[i].Code) {
			return nil, &StructuralError{Kind: DuplicateCode, Code: nodes[i].IndexCode()}
		}
	}

	var roots []*Node
	for _, n := range nodes {
		if n.Level == 0 {
			roots = append(roots, n)
		}
	}
	switch len(roots) {
	case 0:
		return nil, &StructuralError{Kind: NoRoot}
	case 1:
	default:
		return nil, &StructuralError{Kind: MultipleRoots, Code: roots[0].IndexCode(), Count: len(roots)}
	}
	root := roots[0]

	for _, n := range nodes {
		if n == root {
			continue
		}
		parentCode, err := navcode.Parent(n.Code)
		if err != nil {
			// A second single-segment code with a non-zero level has nowhere to hang.
			return nil, &StructuralError{Kind: MissingParent, Child: n.IndexCode()}
		}
		parent := root.Find(parentCode)
		if parent == nil {
			return nil, &StructuralError{Kind: MissingParent, Code: parentCode.String(), Child: n.IndexCode()}
		}
		parent.Children = append(parent.Children, n)
	}

	return root, nil
}

// Find returns the node in this subtree whose code equals target, or nil. It stops
// descending as soon as target cannot lie below the current node.
func (n *Node) Find(target navcode.Code) *Node {
	if n.Code.Equal(target) {
		return n
	}
	if len(target) <= len(n.Code) || !n.Code.IsPrefixOf(target) {
		return nil
	}
	for _, child := range n.Children {
		if found := child.Find(target); found != nil {
			return found
		}
	}
	// e.g. looking for 1.2.3.4 when 1.2.3 only has 1.2.3.1 through 1.2.3.3.
	return nil
}

// Path returns the chain of nodes from n down to target, inclusive, or nil when target
// is not in this subtree.
func (n *Node) Path(target navcode.Code) []*Node {
	if n.Code.Equal(target) {
		return []*Node{n}
	}
	if len(target) <= len(n.Code) || !n.Code.IsPrefixOf(target) {
		return nil
	}
	for _, child := range n.Children {
		if rest := child.Path(target); rest != nil {
			return append([]*Node{n}, rest...)
		}
	}
	return nil
}
