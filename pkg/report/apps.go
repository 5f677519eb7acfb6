package report

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/srodi/hog/pkg/types"
	"github.com/srodi/hog/pkg/ui"
)

const (
	// DefaultMinMemoryKiB hides applications using 50 MB or less.
	DefaultMinMemoryKiB = 50 * 1024
	// DefaultMinCPUPercent hides applications using 1% CPU or less.
	DefaultMinCPUPercent = 1.0
)

// FilterConfig controls which applications are listed and how.
type FilterConfig struct {
	Mode          types.Mode
	MinMemoryKiB  uint64
	MinCPUPercent float64
	ShowPIDs      bool
}

// DefaultFilterConfig returns the thresholds used when none are configured.
func DefaultFilterConfig(mode types.Mode) FilterConfig {
	return FilterConfig{
		Mode:          mode,
		MinMemoryKiB:  DefaultMinMemoryKiB,
		MinCPUPercent: DefaultMinCPUPercent,
	}
}

func (cfg FilterConfig) passes(app *types.Application) bool {
	if cfg.Mode == types.ModeCPU {
		return app.CPUPercent > cfg.MinCPUPercent
	}
	return app.MemoryKiB > cfg.MinMemoryKiB
}

// Rows returns the applications above the mode's threshold, highest first.
// Equal values are ordered by name.
func Rows(apps types.Applications, cfg FilterConfig) []types.Application {
	rows := make([]types.Application, 0, len(apps))
	for _, app := range apps {
		if app == nil || !cfg.passes(app) {
			continue
		}
		rows = append(rows, *app)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].Metric(cfg.Mode), rows[j].Metric(cfg.Mode)
		if a == b {
			return rows[i].Name < rows[j].Name
		}
		return a > b
	})
	return rows
}

// FormatRow renders one application line without a trailing newline.
func FormatRow(row types.Application, cfg FilterConfig, p ui.Palette) string {
	var metric string
	if cfg.Mode == types.ModeCPU {
		metric = ui.FormatCPU(p, row.CPUPercent)
	} else {
		metric = ui.FormatMemory(p, row.MemoryKiB)
	}
	line := metric + "  " + row.Name
	if cfg.ShowPIDs {
		line += " " + p.Gray("("+strings.Join(row.PIDs.Strings(), ", ")+")")
	}
	return line
}

// Write prints rows to w, one per line, in a single write.
func Write(w io.Writer, rows []types.Application, cfg FilterConfig, p ui.Palette) error {
	var buf bytes.Buffer
	for _, row := range rows {
		fmt.Fprintln(&buf, FormatRow(row, cfg, p))
	}
	_, err := w.Write(buf.Bytes())
	return err
}
