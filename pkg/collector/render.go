package collector

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/srodi/hog/pkg/tree"
)

// procSample is one process as read by a native sampler.
type procSample struct {
	PID        int
	PPID       int
	State      string
	RSSKiB     uint64
	CPUSeconds float64
	// LifetimeCPU is the average CPU percentage since the process started,
	// reported for the first sample of a window.
	LifetimeCPU float64
	Command     string
}

type snapshotFunc func(ctx context.Context) ([]procSample, error)

// renderListing writes samples in `ps ax` layout.
func renderListing(samples []procSample) []byte {
	sortByPID(samples)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%5s %-3s %-4s %9s %s\n", "PID", "TT", "STAT", "TIME", "COMMAND")
	for _, s := range samples {
		state := s.State
		if state == "" {
			state = "?"
		}
		fmt.Fprintf(&buf, "%5d %-3s %-4s %9s %s\n", s.PID, "?", state, cpuTime(s.CPUSeconds), oneLine(s.Command))
	}
	return buf.Bytes()
}

// renderTableBlock appends one top-style sample block. Memory is written in
// exact KiB so nothing is lost to unit rounding.
func renderTableBlock(buf *bytes.Buffer, samples []procSample, cpu map[int]float64) {
	sortByPID(samples)
	fmt.Fprintf(buf, "Processes: %d total\n", len(samples))
	fmt.Fprintf(buf, "%-7s %-7s %-6s %s\n", tree.HeaderToken, "PID", "MEM", "CPU")
	for _, s := range samples {
		fmt.Fprintf(buf, "%-7d %-7d %-6s %.1f\n", s.PPID, s.PID, strconv.FormatUint(s.RSSKiB, 10)+"K", cpu[s.PID])
	}
	buf.WriteString("\n")
}

// sampleTable takes samples snapshots interval apart. CPU for the first block
// is the lifetime average; later blocks use the user+system time delta over
// the wall time since the previous snapshot.
func sampleTable(ctx context.Context, samples int, interval time.Duration, snapshot snapshotFunc) ([]byte, error) {
	if samples < 1 {
		samples = 1
	}
	var (
		buf      bytes.Buffer
		previous map[int]float64
		lastAt   time.Time
	)
	for i := 0; i < samples; i++ {
		if i > 0 {
			if err := sleepContext(ctx, interval); err != nil {
				return nil, err
			}
		}
		current, err := snapshot(ctx)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		elapsed := now.Sub(lastAt).Seconds()

		cpu := make(map[int]float64, len(current))
		seconds := make(map[int]float64, len(current))
		for _, s := range current {
			seconds[s.PID] = s.CPUSeconds
			before, seen := previous[s.PID]
			if previous == nil || !seen || elapsed <= 0 {
				cpu[s.PID] = s.LifetimeCPU
				continue
			}
			cpu[s.PID] = math.Max(0, (s.CPUSeconds-before)/elapsed*100)
		}
		renderTableBlock(&buf, current, cpu)
		previous, lastAt = seconds, now
	}
	return buf.Bytes(), nil
}

func lifetimePercent(cpuSeconds, startedAt float64, now time.Time) float64 {
	if startedAt <= 0 {
		return 0
	}
	alive := float64(now.UnixNano())/1e9 - startedAt
	if alive <= 0 {
		return 0
	}
	return cpuSeconds / alive * 100
}

func cpuTime(seconds float64) string {
	minutes := int(seconds / 60)
	return fmt.Sprintf("%d:%05.2f", minutes, seconds-float64(minutes*60))
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func sortByPID(samples []procSample) {
	sort.Slice(samples, func(i, j int) bool { return samples[i].PID < samples[j].PID })
}
