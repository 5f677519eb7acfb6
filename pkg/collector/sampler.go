package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Sampler produces the two raw text inputs of the pipeline.
//
// Listing returns `ps ax` style output: a header starting with PID followed
// by PID, TT, STAT, TIME and COMMAND columns.
//
// Table returns `top -stats ppid,pid,mem,cpu -l samples` style output: one
// block per sample, each led by a "PPID PID MEM CPU" header.
type Sampler interface {
	Listing(ctx context.Context) ([]byte, error)
	Table(ctx context.Context, samples int) ([]byte, error)
}

// Source names a Sampler implementation.
type Source string

const (
	SourceAuto     Source = "auto"
	SourceCommand  Source = "command"
	SourceProcfs   Source = "procfs"
	SourceGopsutil Source = "gopsutil"
)

// DefaultInterval separates samples for sources that time their own samples.
const DefaultInterval = time.Second

// Config selects and tunes a Sampler.
type Config struct {
	Source   Source
	Interval time.Duration
	// ProcRoot overrides the procfs mount point.
	ProcRoot string
}

// ParseSource validates a configured source name.
func ParseSource(s string) (Source, error) {
	switch src := Source(strings.ToLower(strings.TrimSpace(s))); src {
	case "":
		return SourceAuto, nil
	case SourceAuto, SourceCommand, SourceProcfs, SourceGopsutil:
		return src, nil
	default:
		return "", fmt.Errorf("unknown sampler source %q (want auto, command, procfs or gopsutil)", s)
	}
}

// New builds the Sampler for cfg. Auto picks command on macOS, procfs on
// Linux and gopsutil elsewhere.
func New(cfg Config, log *zap.Logger) (Sampler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	source := cfg.Source
	if source == "" || source == SourceAuto {
		source = autoSource(log)
		if source == SourceProcfs {
			sampler, err := NewProcfsSampler(cfg.ProcRoot, cfg.Interval, log)
			if err == nil {
				return sampler, nil
			}
			log.Warn("procfs sampler unavailable, falling back to gopsutil", zap.Error(err))
			return NewGopsutilSampler(cfg.Interval, log), nil
		}
	}

	switch source {
	case SourceCommand:
		return NewCommandSampler(log), nil
	case SourceProcfs:
		sampler, err := NewProcfsSampler(cfg.ProcRoot, cfg.Interval, log)
		if err != nil {
			return nil, err
		}
		return sampler, nil
	case SourceGopsutil:
		return NewGopsutilSampler(cfg.Interval, log), nil
	default:
		return nil, fmt.Errorf("unknown sampler source %q", source)
	}
}

// hostInfo allows tests to stub host detection.
var hostInfo = Host

func autoSource(log *zap.Logger) Source {
	host, err := hostInfo()
	if err != nil {
		log.Debug("host detection failed", zap.Error(err))
		return SourceGopsutil
	}
	log.Debug("detected host",
		zap.String("sysname", host.Sysname),
		zap.String("release", host.Release),
		zap.String("machine", host.Machine))
	switch {
	case strings.EqualFold(host.Sysname, "darwin"):
		return SourceCommand
	case strings.EqualFold(host.Sysname, "linux"):
		return SourceProcfs
	default:
		return SourceGopsutil
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
