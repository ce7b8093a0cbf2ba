// Package export writes a built navigation tree to JSON, YAML, a Mermaid flowchart or a
// SQLite database.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/navchart/internal/build"
	"github.com/ziadkadry99/navchart/internal/db"
	"github.com/ziadkadry99/navchart/internal/diagrams"
	"github.com/ziadkadry99/navchart/internal/navcode"
	"github.com/ziadkadry99/navchart/internal/navtree"
)

// Format names an export encoding.
type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	Mermaid Format = "mermaid"
	SQLite  Format = "sqlite"
)

// ParseFormat accepts a format name, case-insensitively. "yml" is an alias for yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "mermaid", "mmd":
		return Mermaid, nil
	case "sqlite", "db":
		return SQLite, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json, yaml, mermaid or sqlite)", s)
	}
}

// Extension is the default file extension for the format.
func (f Format) Extension() string {
	switch f {
	case YAML:
		return ".yaml"
	case Mermaid:
		return ".mmd"
	case SQLite:
		return ".db"
	default:
		return ".json"
	}
}

// Write serializes the tree rooted at root in a stream format.
func Write(w io.Writer, format Format, root *navtree.Node) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(root.OrgChart())
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(root.OrgChart()); err != nil {
			return err
		}
		return enc.Close()
	case Mermaid:
		_, err := io.WriteString(w, diagrams.NavFlowchart(root, 0))
		return err
	case SQLite:
		return fmt.Errorf("sqlite export needs a file path, use ToSQLite")
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// ToSQLite stores the build in the database at path, creating it if needed.
func ToSQLite(ctx context.Context, path string, res *build.Result) error {
	d, err := db.Open(path)
	if err != nil {
		return err
	}
	defer d.Close()

	b, nodes := Records(res)
	if err := d.SaveBuild(ctx, b, nodes); err != nil {
		return fmt.Errorf("saving build %s: %w", res.ID, err)
	}
	return nil
}

// FromSQLite reads a stored build back into a tree. An empty buildID picks the newest
// build in the database.
func FromSQLite(ctx context.Context, path, buildID string) (db.BuildRecord, *navtree.Node, error) {
	if _, err := os.Stat(path); err != nil {
		return db.BuildRecord{}, nil, fmt.Errorf("opening export: %w", err)
	}
	d, err := db.Open(path)
	if err != nil {
		return db.BuildRecord{}, nil, err
	}
	defer d.Close()

	builds, err := d.Builds(ctx)
	if err != nil {
		return db.BuildRecord{}, nil, fmt.Errorf("listing builds: %w", err)
	}
	var rec db.BuildRecord
	for _, b := range builds {
		if buildID == "" || b.ID == buildID {
			rec = b
			break
		}
	}
	if rec.ID == "" {
		if buildID == "" {
			return rec, nil, fmt.Errorf("no builds stored in %s", d.Path())
		}
		return rec, nil, fmt.Errorf("build %s not found in %s", buildID, d.Path())
	}

	rows, err := d.Nodes(ctx, rec.ID)
	if err != nil {
		return rec, nil, fmt.Errorf("loading nodes of build %s: %w", rec.ID, err)
	}
	nodes := make([]*navtree.Node, 0, len(rows))
	for _, r := range rows {
		v, err := navtree.ParseVariant(r.Variant)
		if err != nil {
			return rec, nil, err
		}
		code, err := navcode.Parse(r.Code)
		if err != nil {
			return rec, nil, err
		}
		nodes = append(nodes, navtree.New(v, navtree.Fields{
			URL:            r.URL,
			Level:          r.Level,
			Code:           code,
			ShowsInNav:     r.ShowsInNav,
			Title:          r.Title,
			HasLandingPage: r.HasLandingPage,
			LeafPages:      r.LeafPages,
			LevelsToShow:   r.LevelsToShow,
		}))
	}
	root, err := navtree.Build(nodes)
	if err != nil {
		return rec, nil, fmt.Errorf("rebuilding build %s: %w", rec.ID, err)
	}
	return rec, root, nil
}

// Records flattens a build into database rows, nodes in pre-order.
func Records(res *build.Result) (db.BuildRecord, []db.NodeRecord) {
	b := db.BuildRecord{
		ID:           res.ID,
		Source:       res.Source,
		NodeCount:    res.Stats.Nodes,
		SectionCount: res.Stats.Sections,
		StartedAt:    res.StartedAt,
		Duration:     res.Duration,
	}

	var (
		nodes   []db.NodeRecord
		parents []string // parents[d] is the code of the last node seen at depth d
	)
	res.Root.Walk(func(n *navtree.Node, depth int) bool {
		parents = append(parents[:depth], n.IndexCode())
		parent := ""
		if depth > 0 {
			parent = parents[depth-1]
		}
		nodes = append(nodes, db.NodeRecord{
			Code:           n.IndexCode(),
			ParentCode:     parent,
			Position:       len(nodes),
			Level:          n.Level,
			Variant:        n.Variant.String(),
			ShowsInNav:     n.ShowsInNav,
			HasLandingPage: n.HasLandingPage,
			HasSectionNav:  n.HasSectionNav,
			Title:          n.Title,
			URL:            n.URL,
			LeafPages:      n.LeafPages,
			LevelsToShow:   n.LevelsToShow,
		})
		return true
	})
	return b, nodes
}
