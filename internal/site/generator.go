// Package site renders a built navigation tree as a static site: one org chart page per
// top-level section, a Markdown landing page, a sidebar tree and a search index.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/navchart/internal/build"
	"github.com/ziadkadry99/navchart/internal/logging"
	"github.com/ziadkadry99/navchart/internal/navtree"
	"github.com/ziadkadry99/navchart/internal/progress"
)

// Options controls page rendering.
type Options struct {
	SiteTitle     string
	IntroFile     string // optional Markdown placed above the section list
	SidebarDepth  int
	VerticalDepth int
	Depth         int
	AssetBaseURL  string
	LiveReload    bool // pages reload when the preview server announces a new build
	Reporter      progress.Reporter
	Logger        *slog.Logger
}

// Generator writes the static site for a build into OutputDir.
type Generator struct {
	OutputDir string

	opts    Options
	md      goldmark.Markdown
	section *template.Template
	index   *template.Template
}

type sectionData struct {
	Title         string
	SiteTitle     string
	BuildID       string
	TreeHTML      template.HTML
	Data          *navtree.OrgChartNode
	VerticalDepth int
	Depth         int
	AssetBaseURL  string
	LiveReload    bool
}

type indexData struct {
	SiteTitle  string
	BuildID    string
	TreeHTML   template.HTML
	Content    template.HTML
	LiveReload bool
}

// NewGenerator parses the page templates and prepares the Markdown renderer.
func NewGenerator(outputDir string, opts Options) (*Generator, error) {
	if opts.Reporter == nil {
		opts.Reporter = progress.Nop{}
	}
	if opts.SidebarDepth <= 0 {
		opts.SidebarDepth = 2
	}
	if opts.VerticalDepth <= 0 {
		opts.VerticalDepth = 3
	}
	if opts.Depth <= 0 {
		opts.Depth = 4
	}
	opts.AssetBaseURL = strings.TrimRight(opts.AssetBaseURL, "/")

	section, err := template.New("section").Parse(sectionTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing section template: %w", err)
	}
	index, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	return &Generator{
		OutputDir: outputDir,
		opts:      opts,
		md:        md,
		section:   section,
		index:     index,
	}, nil
}

// Generate writes every page for res and returns the number of section pages.
// Pages are rendered into a staging directory beside OutputDir and moved in only once
// all of them succeeded; a failed build leaves the previous site untouched.
func (g *Generator) Generate(res *build.Result) (int, error) {
	log := logging.OrDefault(g.opts.Logger).With("build_id", res.ID, "output", g.OutputDir)
	root := res.Root

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}
	stage, err := os.MkdirTemp(filepath.Dir(filepath.Clean(g.OutputDir)), ".navchart-stage-*")
	if err != nil {
		return 0, fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(stage)

	if err := os.WriteFile(filepath.Join(stage, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(stage, "script.js"), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}
	if err := WriteSearchIndex(BuildSearchIndex(root), filepath.Join(stage, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}
	if err := g.renderIndex(stage, res); err != nil {
		return 0, fmt.Errorf("rendering index: %w", err)
	}
	written := []string{"style.css", "script.js", "search-index.json", "index.html"}

	sections := root.Sections()
	g.opts.Reporter.Start(len(sections))
	defer g.opts.Reporter.Finish()

	pages := make(map[string]bool, len(sections))
	for i, s := range sections {
		if err := g.renderSection(stage, res, s); err != nil {
			return 0, fmt.Errorf("rendering section %s: %w", s.IndexCode(), err)
		}
		name := SectionPage(s.Code)
		pages[name] = true
		written = append(written, name)
		log.Debug("wrote section", "code", s.IndexCode(), "nodes", s.Count())
		g.opts.Reporter.Section(i+1, s.IndexCode(), s.Title)
	}

	for _, name := range written {
		if err := os.Rename(filepath.Join(stage, name), filepath.Join(g.OutputDir, name)); err != nil {
			return 0, fmt.Errorf("publishing %s: %w", name, err)
		}
	}
	if err := g.removeStaleSections(pages); err != nil {
		return len(sections), err
	}

	log.Info("site generated", "sections", len(sections))
	return len(sections), nil
}

// SectionTitle is the page title of a top-level section.
func SectionTitle(n *navtree.Node) string {
	return fmt.Sprintf("Section %s - %s", n.IndexCode(), n.Title)
}

func (g *Generator) renderSection(dir string, res *build.Result, n *navtree.Node) error {
	data := sectionData{
		Title:         SectionTitle(n),
		SiteTitle:     g.opts.SiteTitle,
		BuildID:       res.ID,
		TreeHTML:      template.HTML(SidebarHTML(res.Root, n.Code, g.opts.SidebarDepth)),
		Data:          n.OrgChart(),
		VerticalDepth: g.opts.VerticalDepth,
		Depth:         g.opts.Depth,
		AssetBaseURL:  g.opts.AssetBaseURL,
		LiveReload:    g.opts.LiveReload,
	}
	return writePage(filepath.Join(dir, SectionPage(n.Code)), g.section, data)
}

func (g *Generator) renderIndex(dir string, res *build.Result) error {
	var intro []byte
	if g.opts.IntroFile != "" {
		b, err := os.ReadFile(g.opts.IntroFile)
		if err != nil {
			return fmt.Errorf("reading intro file: %w", err)
		}
		intro = b
	}

	var buf bytes.Buffer
	if err := g.md.Convert([]byte(IndexMarkdown(g.opts.SiteTitle, intro, res)), &buf); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	data := indexData{
		SiteTitle:  g.opts.SiteTitle,
		BuildID:    res.ID,
		TreeHTML:   template.HTML(SidebarHTML(res.Root, nil, g.opts.SidebarDepth)),
		Content:    template.HTML(buf.String()),
		LiveReload: g.opts.LiveReload,
	}
	return writePage(filepath.Join(dir, "index.html"), g.index, data)
}

// IndexMarkdown builds the landing page source: a heading, the intro text, a table of
// sections and the variant totals.
func IndexMarkdown(siteTitle string, intro []byte, res *build.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(siteTitle))
	if len(bytes.TrimSpace(intro)) > 0 {
		b.Write(intro)
		b.WriteString("\n\n")
	}

	b.WriteString("## Sections\n\n")
	b.WriteString("| Code | Section | Variant | Nodes below |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, s := range res.Root.Sections() {
		fmt.Fprintf(&b, "| %s | [%s](%s) | %s | %d |\n",
			s.IndexCode(), escapeMarkdown(s.Title), SectionPage(s.Code), s.Variant, s.Count()-1)
	}

	b.WriteString("\n## Summary\n\n")
	fmt.Fprintf(&b, "Built from `%s` with %d nodes.\n\n", filepath.Base(res.Source), res.Stats.Nodes)
	for _, v := range navtree.Variants() {
		fmt.Fprintf(&b, "- %s: %d\n", v, res.Stats.Variants[v])
	}
	return b.String()
}

// escapeMarkdown backslash-escapes the punctuation that would otherwise change how a
// title renders inside a table cell or link text.
func escapeMarkdown(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune("\\`*_[]<>|#!", r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func writePage(path string, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// removeStaleSections deletes section pages left over from an earlier build that are not
// in keep, so a section that disappeared from the sheet does not linger in the output.
func (g *Generator) removeStaleSections(keep map[string]bool) error {
	matches, err := doublestar.Glob(os.DirFS(g.OutputDir), "section-*.html")
	if err != nil {
		return err
	}
	for _, m := range matches {
		if keep[m] {
			continue
		}
		if err := os.Remove(filepath.Join(g.OutputDir, m)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
