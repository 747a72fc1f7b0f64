package filer

import (
	"os"

	"golang.org/x/sys/windows"
)

// Lock takes an exclusive lock on the first byte of the open file with
// LockFileEx. Windows has no flock(2); a one-byte range lock on a shared
// offset gives the same cooperative exclusion.
func (f *File) Lock(file *os.File) error {
	return windows.LockFileEx(windows.Handle(file.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK, 0, 1, 0, &windows.Overlapped{})
}

// Unlock releases the range lock held on the open file.
func (f *File) Unlock(file *os.File) error {
	return windows.UnlockFileEx(windows.Handle(file.Fd()), 0, 1, 0, &windows.Overlapped{})
}
