package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/navchart/internal/build"
	"github.com/ziadkadry99/navchart/internal/progress"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the org chart site from the navigation spreadsheet",
	Long: `Reads the navigation spreadsheet, rebuilds the navigation tree and writes one
org chart page per top-level section, plus an index page and search index.

When the input is a glob matching several spreadsheets, each gets its own
subdirectory of the output directory, named after its path below the glob's
fixed prefix.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("input", "", "spreadsheet path or glob (overrides config)")
	buildCmd.Flags().String("sheet", "", "worksheet name (overrides config)")
	buildCmd.Flags().String("output", "", "output directory (overrides config)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	applyInputFlags(cmd, cfg)
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}

	inputs, err := build.ResolveInputs(cfg.Input)
	if err != nil {
		return err
	}

	outDirs, err := outputDirs(cfg.OutputDir, cfg.Input, inputs)
	if err != nil {
		return err
	}

	for i, input := range inputs {
		res, err := buildTree(cmd.Context(), cfg, input, log)
		if err != nil {
			return err
		}

		outDir := outDirs[i]
		pages, err := renderSite(cfg, res, outDir, false, progress.NewReporter(os.Stderr, log), log)
		if err != nil {
			return fmt.Errorf("generating site: %w", err)
		}

		fmt.Printf("Built %s: %d nodes, %d section pages -> %s\n", input, res.Stats.Nodes, pages, outDir)
	}
	return nil
}
