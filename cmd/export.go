package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/navchart/internal/export"
	"github.com/ziadkadry99/navchart/internal/navtree"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the navigation tree as JSON, YAML, Mermaid or SQLite",
	Long: `Builds the navigation tree and writes it out. JSON, YAML and Mermaid go to stdout
unless --out is given; SQLite always needs a file and appends the build to it.

With --from, the tree is read back from an earlier SQLite export instead of the
spreadsheet: the newest stored build, or the one named by --build.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("input", "", "spreadsheet path (overrides config)")
	exportCmd.Flags().String("sheet", "", "worksheet name (overrides config)")
	exportCmd.Flags().StringP("format", "f", "json", "export format: json, yaml, mermaid or sqlite")
	exportCmd.Flags().StringP("out", "o", "", "output file (stdout for text formats when empty)")
	exportCmd.Flags().String("from", "", "read the tree from a SQLite export instead of the spreadsheet")
	exportCmd.Flags().String("build", "", "build ID to read with --from (newest when empty)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	applyInputFlags(cmd, cfg)

	formatName, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		if format == export.SQLite {
			return fmt.Errorf("--from already reads a SQLite export, pick json, yaml or mermaid")
		}
		buildID, _ := cmd.Flags().GetString("build")
		rec, root, err := export.FromSQLite(cmd.Context(), from, buildID)
		if err != nil {
			return err
		}
		log.Debug("read stored build", "build_id", rec.ID, "source", rec.Source, "started_at", rec.StartedAt)
		desc := fmt.Sprintf("build %s (%d nodes, %d sections from %s)", rec.ID, rec.NodeCount, rec.SectionCount, filepath.Base(rec.Source))
		return writeExport(format, out, root, desc)
	}

	input, err := singleInput(cfg)
	if err != nil {
		return err
	}
	res, err := buildTree(cmd.Context(), cfg, input, log)
	if err != nil {
		return err
	}

	if format == export.SQLite {
		if out == "" {
			out = "navchart" + format.Extension()
		}
		if err := export.ToSQLite(cmd.Context(), out, res); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Stored %s in %s\n", describeBuild(res), out)
		return nil
	}
	return writeExport(format, out, res.Root, describeBuild(res))
}

// writeExport writes root in a text format to out, or stdout when out is empty.
func writeExport(format export.Format, out string, root *navtree.Node, desc string) error {
	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := export.Write(w, format, root); err != nil {
		return fmt.Errorf("writing %s: %w", format, err)
	}
	if out != "" {
		fmt.Fprintf(os.Stderr, "Wrote %s to %s\n", desc, out)
	}
	return nil
}
