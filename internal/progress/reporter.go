// Package progress reports section rendering while a site is generated.
package progress

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter is told about each section page as it is written.
type Reporter interface {
	Start(sections int)
	Section(done int, code, title string)
	Finish()
}

// NewReporter draws a bar on w in an interactive session and logs one record per
// section through log when running under CI, where bars only garble the output.
func NewReporter(w io.Writer, log *slog.Logger) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LogReporter{Log: log}
	}
	return &BarReporter{Out: w}
}

// BarReporter shows a progress bar captioned with the section being rendered.
type BarReporter struct {
	Out io.Writer

	bar *progressbar.ProgressBar
}

func (r *BarReporter) Start(sections int) {
	r.bar = progressbar.NewOptions(sections,
		progressbar.OptionSetWriter(r.Out),
		progressbar.OptionSetDescription("Rendering sections"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) Section(done int, code, title string) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(fmt.Sprintf("Section %s %s", code, title))
	_ = r.bar.Set(done)
}

func (r *BarReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LogReporter writes a structured record per section.
type LogReporter struct {
	Log *slog.Logger

	total   int
	started time.Time
}

func (r *LogReporter) Start(sections int) {
	r.total = sections
	r.started = time.Now()
	r.logger().Info("rendering sections", "total", sections)
}

func (r *LogReporter) Section(done int, code, title string) {
	r.logger().Info("rendered section", "code", code, "title", title, "done", done, "total", r.total)
}

func (r *LogReporter) Finish() {
	r.logger().Info("sections rendered", "total", r.total, "elapsed", time.Since(r.started).Round(time.Millisecond))
}

func (r *LogReporter) logger() *slog.Logger {
	if r.Log == nil {
		return slog.Default()
	}
	return r.Log
}

// Nop discards all progress.
type Nop struct{}

func (Nop) Start(int)                   {}
func (Nop) Section(int, string, string) {}
func (Nop) Finish()                     {}
