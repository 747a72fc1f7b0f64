// Package filer is the file system boundary used by daterr and its
// subpackages. You may override this to gain more control of operations in
// your app, or to keep tests away from the real file system entirely.
package filer

//go:generate mockgen -destination=../mocks/filer.go -package=mocks golift.io/daterr/filer Filer
//go:generate mockgen -destination=../mocks/direntry.go -package=mocks os DirEntry

import (
	"os"
)

// Filer is used to override file-managing procedures.
type Filer interface {
	Remove(fileName string) error
	ReadDir(dirPath string) ([]os.DirEntry, error)
	MkdirAll(path string, perm os.FileMode) error
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Stat(fileName string) (os.FileInfo, error)
	// Lock takes an exclusive advisory lock on an open file. It blocks
	// until the lock is acquired; there is no timeout. Advisory means only
	// other cooperating lockers are held off, not plain writes.
	Lock(file *os.File) error
	// Unlock releases the advisory lock held on an open file.
	Unlock(file *os.File) error
}

// Default returns a Filer interface that works, using default procedures.
func Default() Filer {
	return &File{}
}

// File can be embedded in a custom type to provide the missing methods for the Filer interface.
type File struct{}

// Remove provides os.Remove.
func (f *File) Remove(fileName string) error {
	return os.Remove(fileName)
}

// ReadDir provides os.ReadDir.
func (f *File) ReadDir(dirPath string) ([]os.DirEntry, error) {
	return os.ReadDir(dirPath)
}

// MkdirAll provides os.MkdirAll.
func (f *File) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// OpenFile provides os.OpenFile.
func (f *File) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// Stat provides os.Stat.
func (f *File) Stat(fileName string) (os.FileInfo, error) {
	return os.Stat(fileName)
}
