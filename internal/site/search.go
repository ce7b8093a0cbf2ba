package site

import (
	"encoding/json"
	"os"

	"github.com/ziadkadry99/navchart/internal/navtree"
)

// SearchEntry is one navigation node in the client-side search index.
type SearchEntry struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Variant string `json:"variant"`
	Page    string `json:"page"` // the page that charts this node
}

// BuildSearchIndex lists every node of the tree in pre-order.
func BuildSearchIndex(root *navtree.Node) []SearchEntry {
	var entries []SearchEntry
	root.Walk(func(n *navtree.Node, _ int) bool {
		page := "index.html"
		if section := sectionOf(n.Code); section != nil {
			page = SectionPage(section)
		}
		entries = append(entries, SearchEntry{
			Code:    n.IndexCode(),
			Title:   n.Title,
			URL:     n.URL,
			Variant: n.Variant.String(),
			Page:    page,
		})
		return true
	})
	return entries
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
