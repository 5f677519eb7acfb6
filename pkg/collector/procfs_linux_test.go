//go:build linux

package collector

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srodi/hog/pkg/names"
	"github.com/srodi/hog/pkg/tree"
	"github.com/srodi/hog/pkg/types"
)

func statLine(pid int, comm string, ppid, utime, stime, rssPages int) string {
	return fmt.Sprintf("%d (%s) S %d 1 1 0 -1 4194560 0 0 0 0 %d %d 0 0 20 0 1 0 10 100000 %d "+
		"18446744073709551615 1 1 0 0 0 0 0 0 0 0 0 0 17 0 0 0 0 0 0 0 0 0 0 0 0 0 0\n",
		pid, comm, ppid, utime, stime, rssPages)
}

func writeProc(t *testing.T, root string, pid int, stat, cmdline string) {
	t.Helper()
	dir := filepath.Join(root, fmt.Sprint(pid))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stat"), []byte(stat), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cmdline"), []byte(cmdline), 0o644))
}

func fakeProcfs(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "stat"), []byte("btime 1700000000\n"), 0o644))
	writeProc(t, root, 1, statLine(1, "init", 0, 10, 5, 20), "/sbin/init\x00")
	writeProc(t, root, 2, statLine(2, "kthreadd", 0, 0, 0, 0), "")
	writeProc(t, root, 100, statLine(100, "foo", 1, 300, 200, 50), "/usr/bin/foo\x00--bar\x00")
	writeProc(t, root, 101, statLine(101, "foo-worker", 100, 100, 0, 25), "/usr/bin/foo\x00--worker\x00")
	return root
}

func TestProcfsSamplerListing(t *testing.T) {
	s, err := NewProcfsSampler(fakeProcfs(t), DefaultInterval, nil)
	require.NoError(t, err)

	out, err := s.Listing(context.Background())
	require.NoError(t, err)

	listing, err := names.ParseListing(bytes.NewReader(out), names.NewResolver(nil))
	require.NoError(t, err)
	require.Len(t, listing, 4)
	assert.Equal(t, "/usr/bin/foo --bar", listing["100"].LongName)
	assert.Equal(t, "foo", listing["100"].ShortName)
	assert.Equal(t, "[kthreadd]", listing["2"].LongName)
}

func TestProcfsSamplerTable(t *testing.T) {
	s, err := NewProcfsSampler(fakeProcfs(t), DefaultInterval, nil)
	require.NoError(t, err)

	out, err := s.Table(context.Background(), 1)
	require.NoError(t, err)

	tr, err := tree.Build(bytes.NewReader(out), 1)
	require.NoError(t, err)
	assert.Equal(t, []types.PID{"100"}, tr["1"].Children.Slice())
	assert.Equal(t, []types.PID{"101"}, tr["100"].Children.Slice())
	assert.Equal(t, uint64(50*os.Getpagesize()/1024), tr["100"].MemoryKiB)
	assert.Equal(t, uint64(25*os.Getpagesize()/1024), tr["101"].MemoryKiB)
}

func TestNewProcfsSamplerMissingRoot(t *testing.T) {
	_, err := NewProcfsSampler(filepath.Join(t.TempDir(), "nope"), DefaultInterval, nil)
	require.Error(t, err)
}
