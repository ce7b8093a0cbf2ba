package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "navchart",
	Short: "Render a site navigation spreadsheet as org chart pages",
	Long: `navchart reads the navigation export of a website (one row per nav entry,
keyed by a dotted NavIndexCode), rebuilds the navigation hierarchy and renders
one interactive org chart page per top-level section.`,
	SilenceUsage: true,
}

// Execute runs the CLI. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".navchart.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json (overrides config)")
}
