//go:build darwin
// +build darwin

package fileutil

import (
	"os"
	"syscall"
)

// On darwin, fsync does not flush the drive's cache.
func fsync(f *os.File) error {
	_, _, errno := syscall.Syscall(syscall.SYS_FCNTL, f.Fd(), syscall.F_FULLFSYNC, 0)
	if errno == 0 {
		return nil
	}
	return errno
}
