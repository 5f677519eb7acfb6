//go:build linux

package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/procfs"
	"go.uber.org/zap"
)

// ProcfsSampler reads the process table straight from /proc.
type ProcfsSampler struct {
	fs       procfs.FS
	interval time.Duration
	log      *zap.Logger
}

// NewProcfsSampler opens the procfs mounted at root (default /proc).
func NewProcfsSampler(root string, interval time.Duration, log *zap.Logger) (*ProcfsSampler, error) {
	if root == "" {
		root = procfs.DefaultMountPoint
	}
	if log == nil {
		log = zap.NewNop()
	}
	fs, err := procfs.NewFS(root)
	if err != nil {
		return nil, fmt.Errorf("opening procfs at %s: %w", root, err)
	}
	return &ProcfsSampler{fs: fs, interval: interval, log: log}, nil
}

// Listing renders every readable process in `ps ax` layout.
func (s *ProcfsSampler) Listing(ctx context.Context) ([]byte, error) {
	samples, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return renderListing(samples), nil
}

// Table renders samples top-style blocks, interval apart.
func (s *ProcfsSampler) Table(ctx context.Context, samples int) ([]byte, error) {
	return sampleTable(ctx, samples, s.interval, s.snapshot)
}

func (s *ProcfsSampler) snapshot(ctx context.Context) ([]procSample, error) {
	procs, err := s.fs.AllProcs()
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}
	now := time.Now()
	samples := make([]procSample, 0, len(procs))
	skipped := 0
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stat, err := p.Stat()
		if err != nil {
			// exited since AllProcs
			skipped++
			continue
		}
		sample := procSample{
			PID:        stat.PID,
			PPID:       stat.PPID,
			State:      stat.State,
			RSSKiB:     uint64(stat.ResidentMemory()) / 1024,
			CPUSeconds: stat.CPUTime(),
			Command:    "[" + stat.Comm + "]",
		}
		if startedAt, err := stat.StartTime(); err == nil {
			sample.LifetimeCPU = lifetimePercent(sample.CPUSeconds, startedAt, now)
		}
		if args, err := p.CmdLine(); err == nil && len(args) > 0 {
			sample.Command = strings.Join(args, " ")
		}
		samples = append(samples, sample)
	}
	s.log.Debug("procfs snapshot", zap.Int("processes", len(samples)), zap.Int("skipped", skipped))
	return samples, nil
}
