package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	for _, table := range []string{"builds", "nav_nodes"} {
		var count int
		err := d.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}

func sampleNodes() []NodeRecord {
	return []NodeRecord{
		{Code: "1", Position: 0, Level: 0, Variant: "Simple", ShowsInNav: true, HasLandingPage: true, Title: "Home", URL: "/"},
		{Code: "1.1", ParentCode: "1", Position: 1, Level: 1, Variant: "Menued", ShowsInNav: true, HasLandingPage: true, HasSectionNav: true, Title: "About", URL: "/about", LeafPages: 4, LevelsToShow: 3},
		{Code: "1.1.1", ParentCode: "1.1", Position: 2, Level: 2, Variant: "Hidden", Title: "Legacy", URL: "/about/legacy"},
	}
}

func TestSaveBuild(t *testing.T) {
	ctx := context.Background()
	d, err := Open(filepath.Join(t.TempDir(), "sub", "nav.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	b := BuildRecord{ID: "b1", Source: "nav.xlsx", NodeCount: 3, SectionCount: 1, StartedAt: started, Duration: 1500 * time.Millisecond}
	if err := d.SaveBuild(ctx, b, sampleNodes()); err != nil {
		t.Fatalf("SaveBuild: %v", err)
	}

	builds, err := d.Builds(ctx)
	if err != nil {
		t.Fatalf("Builds: %v", err)
	}
	if len(builds) != 1 {
		t.Fatalf("builds = %d, want 1", len(builds))
	}
	if !builds[0].StartedAt.Equal(started) || builds[0].Duration != 1500*time.Millisecond {
		t.Errorf("build = %+v", builds[0])
	}

	nodes, err := d.Nodes(ctx, "b1")
	if err != nil {
		t.Fatalf("Nodes: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(nodes))
	}
	if nodes[0].ParentCode != "" {
		t.Errorf("root parent = %q, want empty", nodes[0].ParentCode)
	}
	if nodes[1].Variant != "Menued" || !nodes[1].HasSectionNav || nodes[1].LevelsToShow != 3 {
		t.Errorf("menued node = %+v", nodes[1])
	}
	if nodes[2].ShowsInNav {
		t.Error("hidden node should not show in nav")
	}

	var nullParents int
	if err := d.QueryRow(`SELECT COUNT(*) FROM nav_nodes WHERE parent_code IS NULL`).Scan(&nullParents); err != nil {
		t.Fatal(err)
	}
	if nullParents != 1 {
		t.Errorf("null parents = %d, want 1", nullParents)
	}
}

func TestSaveBuildReplaces(t *testing.T) {
	ctx := context.Background()
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer d.Close()

	b := BuildRecord{ID: "b1", Source: "nav.xlsx", StartedAt: time.Now()}
	if err := d.SaveBuild(ctx, b, sampleNodes()); err != nil {
		t.Fatalf("first SaveBuild: %v", err)
	}
	if err := d.SaveBuild(ctx, b, sampleNodes()[:1]); err != nil {
		t.Fatalf("second SaveBuild: %v", err)
	}
	nodes, err := d.Nodes(ctx, "b1")
	if err != nil {
		t.Fatalf("Nodes: %v", err)
	}
	if len(nodes) != 1 {
		t.Errorf("nodes = %d, want 1 after replace", len(nodes))
	}
}

func TestSaveBuildRejectsUnknownVariant(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer d.Close()

	nodes := []NodeRecord{{Code: "1", Variant: "Folder"}}
	err = d.SaveBuild(context.Background(), BuildRecord{ID: "b1", StartedAt: time.Now()}, nodes)
	if err == nil {
		t.Fatal("expected CHECK constraint failure")
	}
	builds, _ := d.Builds(context.Background())
	if len(builds) != 0 {
		t.Error("failed save should roll back the build row")
	}
}
