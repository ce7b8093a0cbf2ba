package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/navchart/internal/build"
	"github.com/ziadkadry99/navchart/internal/navcode"
	"github.com/ziadkadry99/navchart/internal/navtree"
	"github.com/ziadkadry99/navchart/internal/site"
)

// NodeDetail describes a single node for the lookup endpoint.
type NodeDetail struct {
	Code           string   `json:"code"`
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Variant        string   `json:"variant"`
	Level          int      `json:"level"`
	ShowsInNav     bool     `json:"showsInNav"`
	HasLandingPage bool     `json:"hasLandingPage"`
	HasSectionNav  bool     `json:"hasSectionNav"`
	LeafPages      int      `json:"leafPages"`
	LevelsToShow   int      `json:"levelsToShow"`
	Path           []string `json:"path"`     // ancestor codes from the root down, excluding the node
	Children       []string `json:"children"` // child codes in order
}

// SectionSummary is one entry of the sections listing.
type SectionSummary struct {
	Code    string `json:"code"`
	Title   string `json:"title"`
	Variant string `json:"variant"`
	Nodes   int    `json:"nodes"`
	Page    string `json:"page"`
}

// BuildInfo describes the build being served.
type BuildInfo struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	StartedAt time.Time      `json:"startedAt"`
	Duration  string         `json:"duration"`
	Rows      int            `json:"rows"`
	Nodes     int            `json:"nodes"`
	Sections  int            `json:"sections"`
	Variants  map[string]int `json:"variants"`
}

// Detail builds the lookup view of the node at code, or nil when the tree has no such node.
func Detail(root *navtree.Node, code navcode.Code) *NodeDetail {
	path := root.Path(code)
	if path == nil {
		return nil
	}
	n := path[len(path)-1]

	d := &NodeDetail{
		Code:           n.IndexCode(),
		Title:          n.Title,
		URL:            n.URL,
		Variant:        n.Variant.String(),
		Level:          n.Level,
		ShowsInNav:     n.ShowsInNav,
		HasLandingPage: n.HasLandingPage,
		HasSectionNav:  n.HasSectionNav,
		LeafPages:      n.LeafPages,
		LevelsToShow:   n.LevelsToShow,
		Path:           []string{},
		Children:       []string{},
	}
	for _, a := range path[:len(path)-1] {
		d.Path = append(d.Path, a.IndexCode())
	}
	for _, c := range n.Children {
		d.Children = append(d.Children, c.IndexCode())
	}
	return d
}

func (s *Server) registerRoutes(r chi.Router) {
	r.Get("/api/tree", s.withBuild(treeHandler))
	r.Get("/api/sections", s.withBuild(sectionsHandler))
	r.Get("/api/nodes/{code}", s.withBuild(nodeHandler))
	r.Get("/api/build", s.withBuild(buildHandler))
}

// withBuild answers 503 until a build is available.
func (s *Server) withBuild(h func(http.ResponseWriter, *http.Request, *build.Result)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := s.store.Current()
		if res == nil {
			writeError(w, http.StatusServiceUnavailable, "no build available yet")
			return
		}
		h(w, r, res)
	}
}

func treeHandler(w http.ResponseWriter, _ *http.Request, res *build.Result) {
	writeJSON(w, http.StatusOK, res.Root.OrgChart())
}

func sectionsHandler(w http.ResponseWriter, _ *http.Request, res *build.Result) {
	sections := []SectionSummary{}
	for _, s := range res.Root.Sections() {
		sections = append(sections, SectionSummary{
			Code:    s.IndexCode(),
			Title:   s.Title,
			Variant: s.Variant.String(),
			Nodes:   s.Count(),
			Page:    site.SectionPage(s.Code),
		})
	}
	writeJSON(w, http.StatusOK, sections)
}

func nodeHandler(w http.ResponseWriter, r *http.Request, res *build.Result) {
	code, err := navcode.Parse(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d := Detail(res.Root, code)
	if d == nil {
		writeError(w, http.StatusNotFound, "no node with code "+code.String())
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func buildHandler(w http.ResponseWriter, _ *http.Request, res *build.Result) {
	variants := make(map[string]int, len(res.Stats.Variants))
	for v, n := range res.Stats.Variants {
		variants[v.String()] = n
	}
	writeJSON(w, http.StatusOK, BuildInfo{
		ID:        res.ID,
		Source:    res.Source,
		StartedAt: res.StartedAt,
		Duration:  res.Duration.String(),
		Rows:      res.Stats.Rows,
		Nodes:     res.Stats.Nodes,
		Sections:  res.Stats.Sections,
		Variants:  variants,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
