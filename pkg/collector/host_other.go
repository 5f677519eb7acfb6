//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package collector

import "runtime"

// HostInfo is the subset of uname(2) used for source selection and logs.
type HostInfo struct {
	Sysname string
	Release string
	Machine string
}

// Host falls back to the build target where uname is unavailable.
func Host() (HostInfo, error) {
	return HostInfo{Sysname: runtime.GOOS, Machine: runtime.GOARCH}, nil
}
