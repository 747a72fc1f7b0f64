//go:build !windows

package filer

import (
	"os"

	"golang.org/x/sys/unix"
)

// Lock takes an exclusive flock(2) on the open file.
func (f *File) Lock(file *os.File) error {
	return unix.Flock(int(file.Fd()), unix.LOCK_EX)
}

// Unlock releases the flock(2) held on the open file.
func (f *File) Unlock(file *os.File) error {
	return unix.Flock(int(file.Fd()), unix.LOCK_UN)
}
