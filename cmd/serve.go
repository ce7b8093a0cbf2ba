package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/navchart/internal/config"
	"github.com/ziadkadry99/navchart/internal/progress"
	"github.com/ziadkadry99/navchart/internal/server"
	"github.com/ziadkadry99/navchart/internal/site"
	"github.com/ziadkadry99/navchart/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it with a live preview",
	Long: `Builds the org chart site and serves it over HTTP together with a JSON API
for the navigation tree. With --watch the spreadsheet is rebuilt whenever it
changes and open pages reload themselves.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("input", "", "spreadsheet path (overrides config)")
	serveCmd.Flags().String("sheet", "", "worksheet name (overrides config)")
	serveCmd.Flags().String("output", "", "output directory (overrides config)")
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("watch", false, "rebuild when the spreadsheet changes")
	serveCmd.Flags().Bool("open", false, "open the browser once the server is up")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	applyInputFlags(cmd, cfg)
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	watch, _ := cmd.Flags().GetBool("watch")
	open, _ := cmd.Flags().GetBool("open")

	input, err := singleInput(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	res, err := buildTree(ctx, cfg, input, log)
	if err != nil {
		return err
	}
	if _, err := renderSite(cfg, res, cfg.OutputDir, watch, progress.Nop{}, log); err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	store := server.NewStore(res)
	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		SiteDir:  cfg.OutputDir,
		AllowAll: cfg.Server.AllowAllOrigins,
		Logger:   log,
	}, store)

	if watch {
		files := []string{input}
		if cfg.IntroFile != "" {
			files = append(files, cfg.IntroFile)
		}
		w, err := watcher.New(files, func([]string) {
			rebuild(ctx, cfg, input, srv, log)
		}, watcher.WithLogger(log))
		if err != nil {
			return err
		}
		w.Start()
		defer w.Stop()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	url := fmt.Sprintf("http://localhost:%d/", cfg.Server.Port)
	fmt.Printf("Serving %s at %s\n", cfg.OutputDir, url)
	if open {
		site.OpenBrowser(url)
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// rebuild replaces the served build after an input change. A failed build keeps the
// previous site in place.
func rebuild(ctx context.Context, cfg *config.Config, input string, srv *server.Server, log *slog.Logger) {
	res, err := buildTree(ctx, cfg, input, log)
	if err != nil {
		log.Error("rebuild failed, keeping previous build", "error", err)
		return
	}
	if _, err := renderSite(cfg, res, cfg.OutputDir, true, progress.Nop{}, log); err != nil {
		log.Error("regenerating site failed", "error", err)
		return
	}
	srv.Store().Set(res)
	srv.Hub().BroadcastReload(res.ID)
}
