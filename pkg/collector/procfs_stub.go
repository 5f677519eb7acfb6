//go:build !linux
// +build !linux

package collector

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

var errUnsupported = errors.New("procfs sampler requires linux")

// ProcfsSampler is a placeholder on non-Linux platforms.
type ProcfsSampler struct{}

// NewProcfsSampler returns an error because procfs only exists on Linux.
func NewProcfsSampler(root string, interval time.Duration, log *zap.Logger) (*ProcfsSampler, error) {
	return nil, errUnsupported
}

// Listing always fails on unsupported platforms.
func (s *ProcfsSampler) Listing(ctx context.Context) ([]byte, error) {
	return nil, errUnsupported
}

// Table always fails on unsupported platforms.
func (s *ProcfsSampler) Table(ctx context.Context, samples int) ([]byte, error) {
	return nil, errUnsupported
}
