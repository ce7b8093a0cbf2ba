package progress

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &LogReporter{Log: slog.New(slog.NewTextHandler(&buf, nil))}
	r.Start(2)
	r.Section(1, "1.1", "About")
	r.Section(2, "1.2", "Research")
	r.Finish()

	out := buf.String()
	for _, want := range []string{
		`msg="rendering sections" total=2`,
		`code=1.1 title=About done=1 total=2`,
		`code=1.2 title=Research done=2 total=2`,
		`msg="sections rendered" total=2`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBarReporterWritesToOut(t *testing.T) {
	var buf bytes.Buffer
	r := &BarReporter{Out: &buf}
	r.Section(1, "1.1", "ignored before Start")
	r.Start(2)
	r.Section(1, "1.1", "About")
	r.Section(2, "1.2", "Research")
	r.Finish()

	if !strings.Contains(buf.String(), "Section 1.") {
		t.Errorf("bar output = %q", buf.String())
	}
}

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter(&bytes.Buffer{}, nil).(*LogReporter); !ok {
		t.Error("expected LogReporter when CI is set")
	}
}

func TestNewReporterInTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	if _, ok := NewReporter(&bytes.Buffer{}, nil).(*BarReporter); !ok {
		t.Error("expected BarReporter outside CI")
	}
}
