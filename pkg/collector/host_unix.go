//go:build linux || darwin || freebsd || netbsd || openbsd

package collector

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// HostInfo is the subset of uname(2) used for source selection and logs.
type HostInfo struct {
	Sysname string
	Release string
	Machine string
}

// Host reports the running kernel.
func Host() (HostInfo, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return HostInfo{}, fmt.Errorf("uname: %w", err)
	}
	return HostInfo{
		Sysname: unix.ByteSliceToString(uts.Sysname[:]),
		Release: unix.ByteSliceToString(uts.Release[:]),
		Machine: unix.ByteSliceToString(uts.Machine[:]),
	}, nil
}
