package site

import (
	"fmt"
	"html"
	"strings"

	"github.com/ziadkadry99/navchart/internal/navcode"
	"github.com/ziadkadry99/navchart/internal/navtree"
)

// SectionPage is the file name of the org chart page for a top-level section.
func SectionPage(code navcode.Code) string {
	return "section-" + code.String() + ".html"
}

// sectionOf returns the top-level section code that contains code, or nil for the root.
func sectionOf(code navcode.Code) navcode.Code {
	if len(code) < 2 {
		return nil
	}
	return code[:2]
}

// SidebarHTML renders the sections of root as nested <ul><li> HTML. Levels below maxDepth
// are left out; maxDepth 1 lists only the sections. The section containing active starts
// expanded, the others collapsed.
func SidebarHTML(root *navtree.Node, active navcode.Code, maxDepth int) string {
	if maxDepth < 1 {
		maxDepth = 1
	}
	activeSection := sectionOf(active)

	var b strings.Builder
	homeActive := ""
	if activeSection == nil {
		homeActive = ` class="active"`
	}
	fmt.Fprintf(&b, `<ul><li class="home-link"><a href="index.html"%s>Home</a></li></ul>`+"\n", homeActive)

	b.WriteString("<ul>\n")
	for _, section := range root.Sections() {
		renderSection(&b, section, activeSection, maxDepth)
	}
	b.WriteString("</ul>\n")
	return b.String()
}

// renderSection writes one section and its descendants using the tree walk, closing
// lists whenever the walk steps back up.
func renderSection(b *strings.Builder, section *navtree.Node, active navcode.Code, maxDepth int) {
	open := 0
	section.Walk(func(n *navtree.Node, depth int) bool {
		for open > depth {
			b.WriteString("</ul></li>\n")
			open--
		}

		classes := []string{"nav-item", n.Variant.String()}
		if !n.ShowsInNav {
			classes = append(classes, "nav-hidden")
		}
		expandable := len(n.Children) > 0 && depth+1 < maxDepth
		if expandable && !(depth == 0 && section.Code.Equal(active)) {
			classes = append(classes, "collapsed")
		}

		fmt.Fprintf(b, `<li class="%s" data-code="%s">`, strings.Join(classes, " "), n.IndexCode())
		if expandable {
			b.WriteString(`<span class="toggle">&#9656;</span> `)
		}
		label := fmt.Sprintf(`<span class="code">%s</span>%s`, n.IndexCode(), html.EscapeString(n.Title))
		if depth == 0 {
			activeClass := ""
			if section.Code.Equal(active) {
				activeClass = ` class="active"`
			}
			fmt.Fprintf(b, `<a href="%s"%s>%s</a>`, SectionPage(n.Code), activeClass, label)
		} else {
			fmt.Fprintf(b, `<span class="label" title="%s">%s</span>`, html.EscapeString(n.URL), label)
		}

		if expandable {
			b.WriteString("\n<ul>\n")
			open++
			return true
		}
		b.WriteString("</li>\n")
		return false
	})
	for ; open > 0; open-- {
		b.WriteString("</ul></li>\n")
	}
}
