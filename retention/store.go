// Package retention enumerates, validates, and prunes the dated log files
// in one directory. Every operation here is best-effort and returns
// nothing: a logging subsystem must never become a source of application
// failures, so file system errors degrade into no-ops instead of
// propagating. The sink in the parent package notices real trouble the
// next time it opens a file.
package retention

import (
	"os"
	"path/filepath"
	"sort"

	timefmt "github.com/itchyny/timefmt-go"

	"golift.io/daterr/filer"
)

// Store holds the retention policy for one log directory.
type Store struct {
	filer.Filer

	Dir         string      // The directory containing the managed files.
	Format      string      // strftime pattern the file names follow.
	BackupCount int         // Maximum number of dated files Prune leaves behind.
	DirMode     os.FileMode // POSIX mode used when creating Dir.
}

// DirMode is the default POSIX mode for created log directories.
const DirMode os.FileMode = 0o750

// New returns a Store with default file procedures attached.
func New(dir, format string, backupCount int) *Store {
	return &Store{
		Filer:       filer.Default(),
		Dir:         dir,
		Format:      format,
		BackupCount: backupCount,
		DirMode:     DirMode,
	}
}

// EnsureDir creates the log directory (and any parents) if missing.
// Failure is swallowed: the next file open fails in its place, and the
// sink reports that through its own error hook.
func (s *Store) EnsureDir() {
	_ = s.MkdirAll(s.Dir, s.DirMode)
}

// Files lists the file names present in the directory. A missing or
// unreadable directory yields an empty list, not an error. Directories
// inside the log directory are not ours and are skipped.
func (s *Store) Files() []string {
	entries, err := s.ReadDir(s.Dir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		names = append(names, entry.Name())
	}

	return names
}

// FileExists returns true if path exists and is a regular file.
func (s *Store) FileExists(path string) bool {
	info, err := s.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

// SortByTime parses each name against the Store's time format and returns
// the parseable ones oldest first. A name that does not parse is not part
// of the managed set and is deleted on the spot. Returned names are
// re-rendered through the format, so two spellings of the same time stamp
// collapse into one.
func (s *Store) SortByTime(names []string) []string {
	stamps := make(timeStamps, 0, len(names))

	for _, name := range names {
		when, err := timefmt.Parse(name, s.Format)
		if err != nil {
			s.RemoveFile(name) // not our file; clean it out.
			continue
		}

		stamps = append(stamps, when)
	}

	sort.Sort(stamps)

	sorted := make([]string, len(stamps))
	for idx, when := range stamps {
		sorted[idx] = timefmt.Format(when, s.Format)
	}

	return sorted
}

// Prune deletes the oldest files beyond the retention policy. The boundary
// is inclusive: with count files present and diff = count - BackupCount at
// or above zero, diff+1 files go - one more than the naive excess. That
// leaves headroom for the file the sink is about to create, after which
// the directory holds exactly BackupCount files again. No-op when the
// directory lists nothing.
func (s *Store) Prune() {
	names := s.Files()
	if len(names) == 0 {
		return
	}

	sorted := s.SortByTime(names)

	diff := len(sorted) - s.BackupCount
	if diff < 0 {
		return
	}

	if diff+1 > len(sorted) {
		diff = len(sorted) - 1
	}

	for _, name := range sorted[:diff+1] {
		s.RemoveFile(name)
	}
}

// RemoveFile deletes one file from the directory by bare name. A file that
// is already gone is not a failure; someone else pruning the same
// directory got there first.
func (s *Store) RemoveFile(name string) {
	_ = s.Remove(filepath.Join(s.Dir, name))
}
