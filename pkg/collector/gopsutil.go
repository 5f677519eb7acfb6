package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"
)

// GopsutilSampler reads the process table through gopsutil, which works on
// every platform it supports.
type GopsutilSampler struct {
	interval time.Duration
	log      *zap.Logger
}

// NewGopsutilSampler returns a portable sampler.
func NewGopsutilSampler(interval time.Duration, log *zap.Logger) *GopsutilSampler {
	if log == nil {
		log = zap.NewNop()
	}
	return &GopsutilSampler{interval: interval, log: log}
}

// Listing renders every readable process in `ps ax` layout.
func (s *GopsutilSampler) Listing(ctx context.Context) ([]byte, error) {
	samples, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return renderListing(samples), nil
}

// Table renders samples top-style blocks, interval apart.
func (s *GopsutilSampler) Table(ctx context.Context, samples int) ([]byte, error) {
	return sampleTable(ctx, samples, s.interval, s.snapshot)
}

func (s *GopsutilSampler) snapshot(ctx context.Context) ([]procSample, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}
	samples := make([]procSample, 0, len(procs))
	skipped := 0
	for _, p := range procs {
		sample, err := gopsutilSample(ctx, p)
		if err != nil {
			skipped++
			continue
		}
		samples = append(samples, sample)
	}
	s.log.Debug("gopsutil snapshot", zap.Int("processes", len(samples)), zap.Int("skipped", skipped))
	return samples, nil
}

func gopsutilSample(ctx context.Context, p *process.Process) (procSample, error) {
	ppid, err := p.PpidWithContext(ctx)
	if err != nil {
		return procSample{}, err
	}
	sample := procSample{PID: int(p.Pid), PPID: int(ppid)}

	if mem, err := p.MemoryInfoWithContext(ctx); err == nil && mem != nil {
		sample.RSSKiB = mem.RSS / 1024
	}
	if times, err := p.TimesWithContext(ctx); err == nil {
		sample.CPUSeconds = busySeconds(times)
	}
	if pct, err := p.CPUPercentWithContext(ctx); err == nil {
		sample.LifetimeCPU = pct
	}
	if status, err := p.StatusWithContext(ctx); err == nil && len(status) > 0 && status[0] != "" {
		sample.State = strings.ToUpper(status[0][:1])
	}

	cmdline, _ := p.CmdlineWithContext(ctx)
	if cmdline == "" {
		name, _ := p.NameWithContext(ctx)
		cmdline = "[" + name + "]"
	}
	sample.Command = cmdline
	return sample, nil
}

func busySeconds(times *cpu.TimesStat) float64 {
	if times == nil {
		return 0
	}
	return times.User + times.System
}
