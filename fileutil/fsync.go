//go:build !darwin
// +build !darwin

package fileutil

import "os"

func fsync(f *os.File) error {
	return f.Sync()
}
