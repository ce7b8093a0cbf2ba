package navtree

// OrgChartNode is the plain-data form of a node handed to the renderer and exporters.
// Children is omitted for leaves.
type OrgChartNode struct {
	Code      string          `json:"code" yaml:"code"`
	Title     string          `json:"title" yaml:"title"`
	URL       string          `json:"url" yaml:"url"`
	Variant   string          `json:"variant" yaml:"variant"`
	LeafPages int             `json:"leafPages" yaml:"leafPages"`
	Children  []*OrgChartNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func newOrgChartNode(n *Node) *OrgChartNode {
	return &OrgChartNode{
		Code:      n.IndexCode(),
		Title:     n.Title,
		URL:       n.URL,
		Variant:   n.Variant.String(),
		LeafPages: n.LeafPages,
	}
}

// OrgChart serializes the subtree rooted at n. It walks with an explicit stack, so the
// depth of the tree is not limited by the goroutine stack.
func (n *Node) OrgChart() *OrgChartNode {
	type frame struct {
		src *Node
		dst *OrgChartNode
	}

	out := newOrgChartNode(n)
	stack := []frame{{src: n, dst: out}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(f.src.Children) == 0 {
			continue
		}
		f.dst.Children = make([]*OrgChartNode, len(f.src.Children))
		for i, child := range f.src.Children {
			c := newOrgChartNode(child)
			f.dst.Children[i] = c
			stack = append(stack, frame{src: child, dst: c})
		}
	}
	return out
}

// Walk visits n and its descendants in pre-order, children in list order. depth is 0 for n.
// Returning false from fn skips that node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	type frame struct {
		node  *Node
		depth int
	}

	stack := []frame{{node: n}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(f.node, f.depth) {
			continue
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i], depth: f.depth + 1})
		}
	}
}

// Count returns the number of nodes in the subtree, n included.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// VariantCounts tallies the subtree's nodes by variant.
func (n *Node) VariantCounts() map[Variant]int {
	counts := make(map[Variant]int, len(variantNames))
	n.Walk(func(node *Node, _ int) bool {
		counts[node.Variant]++
		return true
	})
	return counts
}
