package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/srodi/hog/pkg/types"
	"github.com/srodi/hog/pkg/ui"
)

func app(name string, memory uint64, cpu float64, pids ...types.PID) *types.Application {
	return &types.Application{Name: name, MemoryKiB: memory, CPUPercent: cpu, PIDs: types.NewPIDSet(pids...)}
}

func TestRowsMemoryThresholdAndOrder(t *testing.T) {
	apps := types.Applications{
		"Small":  app("Small", 50*1024, 0),
		"Big":    app("Big", 2<<20, 0),
		"Medium": app("Medium", 300*1024, 0),
		"Edge":   app("Edge", 50*1024+1, 0),
	}
	rows := Rows(apps, DefaultFilterConfig(types.ModeMemory))
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows above 50MB, got %d: %+v", len(rows), rows)
	}
	want := []string{"Big", "Medium", "Edge"}
	for i, name := range want {
		if rows[i].Name != name {
			t.Fatalf("row %d: expected %s, got %s", i, name, rows[i].Name)
		}
	}
}

func TestRowsCPUThresholdAndTies(t *testing.T) {
	apps := types.Applications{
		"Idle":  app("Idle", 1<<30, 1.0),
		"Zeta":  app("Zeta", 0, 12.5),
		"Alpha": app("Alpha", 0, 12.5),
		"Hot":   app("Hot", 0, 95),
	}
	rows := Rows(apps, DefaultFilterConfig(types.ModeCPU))
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows above 1%%, got %d", len(rows))
	}
	if rows[0].Name != "Hot" || rows[1].Name != "Alpha" || rows[2].Name != "Zeta" {
		t.Fatalf("unexpected order: %s, %s, %s", rows[0].Name, rows[1].Name, rows[2].Name)
	}
}

func TestRowsEmpty(t *testing.T) {
	if rows := Rows(nil, DefaultFilterConfig(types.ModeMemory)); len(rows) != 0 {
		t.Fatalf("expected no rows, got %+v", rows)
	}
}

func TestWriteFormatsLines(t *testing.T) {
	rows := []types.Application{
		*app("Slack", 400*1024, 3, "412", "530"),
		*app("Finder", 60*1024, 0.5, "300"),
	}
	cfg := DefaultFilterConfig(types.ModeMemory)

	var buf bytes.Buffer
	if err := Write(&buf, rows, cfg, ui.Palette{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	expected := "400.0 MB  Slack\n 60.0 MB  Finder\n"
	if buf.String() != expected {
		t.Fatalf("expected %q, got %q", expected, buf.String())
	}

	cfg.ShowPIDs = true
	buf.Reset()
	if err := Write(&buf, rows[:1], cfg, ui.Palette{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := buf.String(); got != "400.0 MB  Slack (412, 530)\n" {
		t.Fatalf("unexpected pid line %q", got)
	}
}

func TestFormatRowCPUWithColor(t *testing.T) {
	cfg := FilterConfig{Mode: types.ModeCPU, ShowPIDs: true}
	line := FormatRow(*app("Hot", 0, 90, "7"), cfg, ui.Palette{Enabled: true})
	if !strings.Contains(line, " 90.0 %") || !strings.Contains(line, "  Hot ") {
		t.Fatalf("unexpected cpu line %q", line)
	}
	if !strings.Contains(line, "\033[90m(7)\033[0m") {
		t.Fatalf("pid list should be dimmed: %q", line)
	}
}
