package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/srodi/hog/pkg/aggregate"
	"github.com/srodi/hog/pkg/collector"
	"github.com/srodi/hog/pkg/names"
	"github.com/srodi/hog/pkg/tree"
	"github.com/srodi/hog/pkg/types"
)

// DefaultCPUSamples is used in CPU mode when no sample count is configured.
const DefaultCPUSamples = 4

// Options configures one Gather run.
type Options struct {
	Mode types.Mode
	// Samples is the requested sample count; ignored in memory mode.
	Samples  int
	Resolver *names.Resolver
	// Root defaults to types.RootPID.
	Root types.PID
}

// SamplesFor returns the sample count actually taken for mode.
func SamplesFor(mode types.Mode, requested int) int {
	if mode != types.ModeCPU {
		return 1
	}
	if requested <= 0 {
		return DefaultCPUSamples
	}
	return requested
}

// Gather fetches the process listing and the process table concurrently,
// waits for both, then builds the tree and aggregates it per application.
func Gather(ctx context.Context, sampler collector.Sampler, opts Options, log *zap.Logger) (types.Applications, error) {
	if log == nil {
		log = zap.NewNop()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = names.NewResolver(nil)
	}
	root := opts.Root
	if root == "" {
		root = types.RootPID
	}
	samples := SamplesFor(opts.Mode, opts.Samples)

	var listing, table []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := sampler.Listing(gctx)
		if err != nil {
			return fmt.Errorf("sampling process names: %w", err)
		}
		listing = out
		return nil
	})
	g.Go(func() error {
		out, err := sampler.Table(gctx, samples)
		if err != nil {
			return fmt.Errorf("sampling process table: %w", err)
		}
		table = out
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	nameMap, err := names.ParseListing(bytes.NewReader(listing), resolver)
	if err != nil {
		return nil, err
	}
	processTree, err := tree.Build(bytes.NewReader(table), samples)
	if err != nil {
		return nil, fmt.Errorf("building process tree: %w", err)
	}
	apps, err := aggregate.Applications(processTree, nameMap, root)
	if err != nil {
		return nil, fmt.Errorf("aggregating applications: %w", err)
	}
	log.Debug("aggregated applications",
		zap.String("mode", string(opts.Mode)),
		zap.Int("samples", samples),
		zap.Int("processes", len(processTree)),
		zap.Int("names", len(nameMap)),
		zap.Int("applications", len(apps)))
	return apps, nil
}
