package collector

import (
	"errors"
	"runtime"
	"testing"
)

func stubHost(t *testing.T, info HostInfo, err error) {
	t.Helper()
	t.Cleanup(func() { hostInfo = Host })
	hostInfo = func() (HostInfo, error) { return info, err }
}

func TestParseSource(t *testing.T) {
	cases := map[string]Source{
		"":         SourceAuto,
		"auto":     SourceAuto,
		"Command":  SourceCommand,
		" procfs ": SourceProcfs,
		"GOPSUTIL": SourceGopsutil,
	}
	for input, want := range cases {
		got, err := ParseSource(input)
		if err != nil || got != want {
			t.Fatalf("ParseSource(%q): expected %s, got %s err=%v", input, want, got, err)
		}
	}
	if _, err := ParseSource("bpf"); err == nil {
		t.Fatalf("expected error for unknown source")
	}
}

func TestNewExplicitSources(t *testing.T) {
	s, err := New(Config{Source: SourceCommand}, nil)
	if err != nil {
		t.Fatalf("command: %v", err)
	}
	if _, ok := s.(*CommandSampler); !ok {
		t.Fatalf("expected *CommandSampler, got %T", s)
	}

	s, err = New(Config{Source: SourceGopsutil}, nil)
	if err != nil {
		t.Fatalf("gopsutil: %v", err)
	}
	g, ok := s.(*GopsutilSampler)
	if !ok {
		t.Fatalf("expected *GopsutilSampler, got %T", s)
	}
	if g.interval != DefaultInterval {
		t.Fatalf("expected default interval, got %v", g.interval)
	}

	if _, err := New(Config{Source: "bpf"}, nil); err == nil {
		t.Fatalf("expected error for unknown source")
	}
}

func TestNewAutoSelectsByHost(t *testing.T) {
	stubHost(t, HostInfo{Sysname: "Darwin"}, nil)
	s, err := New(Config{}, nil)
	if err != nil {
		t.Fatalf("darwin: %v", err)
	}
	if _, ok := s.(*CommandSampler); !ok {
		t.Fatalf("darwin should use the command sampler, got %T", s)
	}

	stubHost(t, HostInfo{Sysname: "Plan9"}, nil)
	if s, _ = New(Config{Source: SourceAuto}, nil); s == nil {
		t.Fatalf("expected a sampler")
	}
	if _, ok := s.(*GopsutilSampler); !ok {
		t.Fatalf("unknown hosts should use gopsutil, got %T", s)
	}

	stubHost(t, HostInfo{}, errors.New("uname failed"))
	if s, _ = New(Config{}, nil); s == nil {
		t.Fatalf("expected a sampler")
	}
	if _, ok := s.(*GopsutilSampler); !ok {
		t.Fatalf("failed host detection should use gopsutil, got %T", s)
	}
}

func TestNewAutoLinuxFallsBackWithoutProcfs(t *testing.T) {
	stubHost(t, HostInfo{Sysname: "Linux"}, nil)
	s, err := New(Config{ProcRoot: t.TempDir() + "/missing"}, nil)
	if err != nil {
		t.Fatalf("auto: %v", err)
	}
	if _, ok := s.(*GopsutilSampler); !ok {
		t.Fatalf("expected gopsutil fallback, got %T", s)
	}
}

func TestHostReportsSysname(t *testing.T) {
	info, err := Host()
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	if info.Sysname == "" {
		t.Fatalf("expected a sysname on %s", runtime.GOOS)
	}
}
