// Package build runs one complete navigation build: read the sheet, classify every row and
// link the nodes into a tree. A build either yields a whole tree or an error.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/ziadkadry99/navchart/internal/classify"
	"github.com/ziadkadry99/navchart/internal/logging"
	"github.com/ziadkadry99/navchart/internal/navtree"
	"github.com/ziadkadry99/navchart/internal/sheet"
)

// Options configures a build.
type Options struct {
	Input  string // spreadsheet path
	Sheet  string // worksheet name for workbooks
	Logger *slog.Logger
}

// Stats summarizes a built tree.
type Stats struct {
	Rows     int
	Nodes    int
	Sections int
	Variants map[navtree.Variant]int
}

// Result is the output of a successful build.
type Result struct {
	ID        string
	Source    string
	StartedAt time.Time
	Duration  time.Duration
	Root      *navtree.Node
	Stats     Stats
}

// Run reads opts.Input and builds the navigation tree.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logging.OrDefault(opts.Logger)
	id := uuid.NewString()
	started := time.Now()
	log = log.With("build_id", id, "file", opts.Input)

	log.Info("begin reading")
	rows, err := sheet.ReadFile(opts.Input, sheet.Options{Sheet: opts.Sheet})
	if err != nil {
		return nil, err
	}
	log.Debug("read sheet", "rows", len(rows))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("building tree from %s: %w", opts.Input, err)
	}

	res := &Result{
		ID:        id,
		Source:    opts.Input,
		StartedAt: started,
		Duration:  time.Since(started),
		Root:      root,
		Stats: Stats{
			Rows:     len(rows),
			Nodes:    root.Count(),
			Sections: len(root.Sections()),
			Variants: root.VariantCounts(),
		},
	}

	log.Info("completed reading",
		"rows", res.Stats.Rows,
		"nodes", res.Stats.Nodes,
		"sections", res.Stats.Sections,
		"duration", res.Duration,
	)
	for _, v := range navtree.Variants() {
		log.Debug("variant count", "variant", v.String(), "count", res.Stats.Variants[v])
	}
	return res, nil
}

// FromRows classifies rows and links them into a tree.
func FromRows(rows []sheet.Row) (*navtree.Node, error) {
	nodes, err := classify.Rows(rows)
	if err != nil {
		return nil, err
	}
	return navtree.Build(nodes)
}

// ResolveInputs expands a path or doublestar glob into the spreadsheets it names,
// sorted. A plain path is returned as-is even if it does not exist yet, so the
// read step reports the missing file.
func ResolveInputs(pattern string) ([]string, error) {
	if !hasMeta(pattern) {
		return []string{pattern}, nil
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, fmt.Errorf("invalid input pattern %q", pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding %q: %w", pattern, err)
	}

	var inputs []string
	for _, m := range matches {
		if sheet.IsSupported(m) {
			inputs = append(inputs, m)
		}
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no spreadsheets match %q", pattern)
	}
	sort.Strings(inputs)
	return inputs, nil
}

func hasMeta(p string) bool {
	for _, c := range p {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// OutputNames gives each input matched by pattern its own output subdirectory: the
// input's path below the pattern's fixed prefix, without extension. Inputs that would
// share a subdirectory, such as nav.csv and nav.xlsx, are an error.
func OutputNames(pattern string, inputs []string) ([]string, error) {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	base = filepath.FromSlash(base)

	names := make([]string, len(inputs))
	owner := make(map[string]string, len(inputs))
	for i, input := range inputs {
		rel, err := filepath.Rel(base, input)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			rel = filepath.Base(input)
		}
		name := strings.TrimSuffix(rel, filepath.Ext(rel))
		if prev, ok := owner[name]; ok {
			return nil, fmt.Errorf("inputs %s and %s would both be written to %q", prev, input, name)
		}
		owner[name] = input
		names[i] = name
	}
	return names, nil
}
