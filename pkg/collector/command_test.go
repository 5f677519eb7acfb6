package collector

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/srodi/hog/pkg/types"
)

func stubRunCommand(t *testing.T, fn func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	t.Helper()
	original := runCommand
	t.Cleanup(func() { runCommand = original })
	runCommand = fn
}

func TestCommandSamplerInvocations(t *testing.T) {
	var calls [][]string
	stubRunCommand(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, append([]string{name}, args...))
		return []byte("ok"), nil
	})

	s := NewCommandSampler(nil)
	if out, err := s.Listing(context.Background()); err != nil || string(out) != "ok" {
		t.Fatalf("listing: out=%q err=%v", out, err)
	}
	if _, err := s.Table(context.Background(), 4); err != nil {
		t.Fatalf("table: %v", err)
	}
	if _, err := s.Table(context.Background(), 0); err != nil {
		t.Fatalf("table: %v", err)
	}

	expected := [][]string{
		{"ps", "ax"},
		{"top", "-stats", "ppid,pid,mem,cpu", "-a", "-l", "4"},
		{"top", "-stats", "ppid,pid,mem,cpu", "-a", "-l", "1"},
	}
	if !reflect.DeepEqual(calls, expected) {
		t.Fatalf("unexpected invocations:\n got %v\nwant %v", calls, expected)
	}
}

func TestCommandSamplerPropagatesFailure(t *testing.T) {
	failure := &types.CommandError{Name: "top", Err: errors.New("exit status 1")}
	stubRunCommand(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, failure
	})

	_, err := NewCommandSampler(nil).Table(context.Background(), 1)
	var ce *types.CommandError
	if !errors.As(err, &ce) || ce != failure {
		t.Fatalf("expected CommandError, got %v", err)
	}
}

func TestRunCommandMissingBinary(t *testing.T) {
	_, err := runCommand(context.Background(), "hog-no-such-binary-for-tests", "-x")
	var ce *types.CommandError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if ce.Name != "hog-no-such-binary-for-tests" || len(ce.Args) != 1 {
		t.Fatalf("command error lost invocation details: %+v", ce)
	}
}
