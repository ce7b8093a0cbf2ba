package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/navchart/internal/build"
	"github.com/ziadkadry99/navchart/internal/config"
	"github.com/ziadkadry99/navchart/internal/logging"
	"github.com/ziadkadry99/navchart/internal/progress"
	"github.com/ziadkadry99/navchart/internal/site"
)

// loadConfig loads and validates the config, and installs the configured logger as the
// slog default.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w\nRun `navchart init` to create a config file", err)
	}
	if logFormat != "" {
		cfg.Log.Format = config.LogFormat(logFormat)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}

	log, err := logging.New(os.Stderr, logging.Options{
		Level:   cfg.Log.Level,
		Format:  string(cfg.Log.Format),
		Verbose: verbose,
	})
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(log)
	return cfg, log, nil
}

// buildTree reads one spreadsheet into a tree.
func buildTree(ctx context.Context, cfg *config.Config, input string, log *slog.Logger) (*build.Result, error) {
	return build.Run(ctx, build.Options{
		Input:  input,
		Sheet:  cfg.Sheet,
		Logger: log,
	})
}

// renderSite writes the static site for res into outputDir.
func renderSite(cfg *config.Config, res *build.Result, outputDir string, liveReload bool, reporter progress.Reporter, log *slog.Logger) (int, error) {
	gen, err := site.NewGenerator(outputDir, site.Options{
		SiteTitle:     cfg.SiteTitle,
		IntroFile:     cfg.IntroFile,
		SidebarDepth:  cfg.SidebarDepth,
		VerticalDepth: cfg.Chart.VerticalDepth,
		Depth:         cfg.Chart.Depth,
		AssetBaseURL:  cfg.Chart.AssetBaseURL,
		LiveReload:    liveReload,
		Reporter:      reporter,
		Logger:        log,
	})
	if err != nil {
		return 0, err
	}
	return gen.Generate(res)
}

// singleInput resolves the configured input and insists it names exactly one spreadsheet.
func singleInput(cfg *config.Config) (string, error) {
	inputs, err := build.ResolveInputs(cfg.Input)
	if err != nil {
		return "", err
	}
	if len(inputs) != 1 {
		return "", fmt.Errorf("input %q matches %d spreadsheets, pass --input to pick one", cfg.Input, len(inputs))
	}
	return inputs[0], nil
}

// outputDirs places each input's site in its own subdirectory when several are built.
func outputDirs(base, pattern string, inputs []string) ([]string, error) {
	if len(inputs) == 1 {
		return []string{base}, nil
	}
	names, err := build.OutputNames(pattern, inputs)
	if err != nil {
		return nil, err
	}
	dirs := make([]string, len(names))
	for i, name := range names {
		dirs[i] = filepath.Join(base, name)
	}
	return dirs, nil
}

// applyInputFlags copies --input and --sheet onto cfg when the command has them set.
func applyInputFlags(cmd *cobra.Command, cfg *config.Config) {
	if f := cmd.Flags().Lookup("input"); f != nil && f.Value.String() != "" {
		cfg.Input = f.Value.String()
	}
	if f := cmd.Flags().Lookup("sheet"); f != nil && f.Value.String() != "" {
		cfg.Sheet = f.Value.String()
	}
}

// describeBuild is the one-line summary printed to stderr by lookup and export.
func describeBuild(res *build.Result) string {
	return fmt.Sprintf("build %s from %s (%d nodes)", res.ID, res.Source, res.Stats.Nodes)
}
