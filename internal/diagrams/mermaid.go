// Package diagrams draws the navigation tree as a Mermaid flowchart.
package diagrams

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/navchart/internal/navtree"
)

// classDefs color nodes by variant, matching the org chart legend.
var classDefs = map[navtree.Variant]string{
	navtree.Simple:         "fill:#2da44e,color:#fff,stroke:#1a7f37",
	navtree.Hidden:         "fill:#eaeef2,color:#57606a,stroke:#8c959f,stroke-dasharray:4 3",
	navtree.Menued:         "fill:#0969da,color:#fff,stroke:#0550ae",
	navtree.DetachedMenued: "fill:#8250df,color:#fff,stroke:#6639ba",
}

// NavFlowchart renders the subtree rooted at root as a "graph TD" flowchart. Nodes deeper
// than maxDepth levels below root are left out; maxDepth <= 0 draws everything.
func NavFlowchart(root *navtree.Node, maxDepth int) string {
	var (
		b     strings.Builder
		edges []string
		used  = make(map[navtree.Variant][]string)
	)
	b.WriteString("graph TD\n")

	parents := []string{}
	root.Walk(func(n *navtree.Node, depth int) bool {
		id := nodeID(n)
		fmt.Fprintf(&b, "    %s[\"%s<br/>%s\"]\n", id, n.IndexCode(), escapeMermaid(n.Title))
		used[n.Variant] = append(used[n.Variant], id)

		parents = append(parents[:depth], id)
		if depth > 0 {
			edges = append(edges, fmt.Sprintf("    %s --> %s\n", parents[depth-1], id))
		}
		return maxDepth <= 0 || depth < maxDepth
	})

	for _, e := range edges {
		b.WriteString(e)
	}
	for _, v := range navtree.Variants() {
		ids := used[v]
		if len(ids) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    classDef %s %s\n", v, classDefs[v])
		fmt.Fprintf(&b, "    class %s %s\n", strings.Join(ids, ","), v)
	}
	return b.String()
}

// nodeID turns a nav code into a Mermaid-safe identifier: 1.2.3 -> n1_2_3.
func nodeID(n *navtree.Node) string {
	return "n" + strings.ReplaceAll(n.IndexCode(), ".", "_")
}

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "(", "#lpar;")
	s = strings.ReplaceAll(s, ")", "#rpar;")
	s = strings.ReplaceAll(s, "[", "#lsqb;")
	s = strings.ReplaceAll(s, "]", "#rsqb;")
	s = strings.ReplaceAll(s, "{", "#lbrace;")
	s = strings.ReplaceAll(s, "}", "#rbrace;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
