// Package fileutil replaces files safely and atomically.
package fileutil

import (
	"os"
	"path/filepath"

	"github.com/printfn/hextoggle/errors"
)

// TempPattern is the name pattern of temporary files,
// as for os.CreateTemp.
const TempPattern = ".temp_hextoggle_*"

// Pending is a temporary file that will replace a target file.
// Write to it, then call exactly one of Commit or Abort.
type Pending struct {
	*os.File
	target string
	done   bool
}

// CreateTemp creates a temporary file in the same directory as target,
// so the final rename does not cross file systems.
// If target exists, the temporary file gets its permission bits.
func CreateTemp(target string) (*Pending, error) {
	f, err := os.CreateTemp(filepath.Dir(target), TempPattern)
	if err != nil {
		return nil, errors.Wrap(err, "creating temporary file")
	}
	if fi, err := os.Stat(target); err == nil {
		err = f.Chmod(fi.Mode().Perm())
		if err != nil {
			f.Close()
			os.Remove(f.Name())
			return nil, errors.Wrap(err, "chmod temporary file")
		}
	}
	return &Pending{File: f, target: target}, nil
}

// Target returns the name of the file p will replace.
func (p *Pending) Target() string {
	return p.target
}

// Commit syncs data to disk, closes the temporary file,
// then atomically renames it to the target.
// If anything fails, the temporary file is removed.
func (p *Pending) Commit() error {
	if p.done {
		return errors.New("fileutil: pending file already finished")
	}
	p.done = true
	err := fsync(p.File)
	if err != nil {
		p.File.Close()
		os.Remove(p.Name())
		return errors.Wrap(err, "sync")
	}
	err = p.File.Close()
	if err != nil {
		os.Remove(p.Name())
		return errors.Wrap(err, "close")
	}
	err = os.Rename(p.Name(), p.target)
	if err != nil {
		os.Remove(p.Name())
		return errors.Wrap(err)
	}
	return nil
}

// Abort closes and removes the temporary file,
// leaving the target untouched.
// It is a no-op after Commit or Abort.
func (p *Pending) Abort() error {
	if p.done {
		return nil
	}
	p.done = true
	p.File.Close()
	return errors.Wrap(os.Remove(p.Name()))
}
