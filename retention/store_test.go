package retention_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golift.io/daterr/mocks"
	"golift.io/daterr/retention"
)

const dayFormat = "%Y-%m-%d"

// writeFiles drops empty files with the given names into dir.
func writeFiles(t *testing.T, dir string, names []string) {
	t.Helper()

	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("log line\n"), 0o600); err != nil {
			t.Fatalf("writing test file %s: %v", name, err)
		}
	}
}

// listDir returns the names currently present in dir.
func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading test dir: %v", err)
	}

	names := make([]string, len(entries))
	for idx, entry := range entries {
		names[idx] = entry.Name()
	}

	return names
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	dir := filepath.Join(t.TempDir(), "nested", "logs")
	store := retention.New(dir, dayFormat, 3)

	store.EnsureDir()
	info, err := os.Stat(dir)
	assert.NoError(err)
	assert.True(info.IsDir())

	store.EnsureDir() // a second call must be a no-op, not a failure.
	_, err = os.Stat(dir)
	assert.NoError(err)
}

func TestEnsureDirSwallowsErrors(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	// A path routed through a regular file cannot be created. The store
	// must shrug, not blow up.
	blocker := filepath.Join(t.TempDir(), "blocker")
	assert.NoError(os.WriteFile(blocker, []byte("in the way"), 0o600))

	store := retention.New(filepath.Join(blocker, "logs"), dayFormat, 3)
	store.EnsureDir()

	_, err := os.Stat(filepath.Join(blocker, "logs"))
	assert.Error(err, "the directory must not exist, and EnsureDir must not panic")
}

func TestFiles(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	dir := t.TempDir()
	writeFiles(t, dir, []string{"2023-11-01", "2023-11-02"})
	assert.NoError(os.Mkdir(filepath.Join(dir, "2023-11-03"), 0o750)) // a dir, not ours.

	store := retention.New(dir, dayFormat, 3)
	assert.ElementsMatch([]string{"2023-11-01", "2023-11-02"}, store.Files())
}

func TestFilesMissingDir(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	store := retention.New(filepath.Join(t.TempDir(), "nope"), dayFormat, 3)
	assert.Empty(store.Files(), "a missing directory lists as empty, not as an error")
}

func TestFileExists(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	dir := t.TempDir()
	writeFiles(t, dir, []string{"2023-11-01"})

	store := retention.New(dir, dayFormat, 3)
	assert.True(store.FileExists(filepath.Join(dir, "2023-11-01")))
	assert.False(store.FileExists(filepath.Join(dir, "2023-11-02")))
	assert.False(store.FileExists(dir), "a directory is not a regular file")
}

func TestSortByTime(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	dir := t.TempDir()
	writeFiles(t, dir, []string{"2023-01-02", "not-a-date", "2023-01-01"})

	store := retention.New(dir, dayFormat, 3)
	sorted := store.SortByTime(store.Files())

	assert.Equal([]string{"2023-01-01", "2023-01-02"}, sorted)

	_, err := os.Stat(filepath.Join(dir, "not-a-date"))
	assert.True(os.IsNotExist(err), "names that do not parse are deleted during sorting")
}

func TestSortByTimeCollapsesSpellings(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	store := retention.New(t.TempDir(), "%Y-%m-%dT%H", 3)

	// Both names parse to the same hour; sorting re-renders through the
	// format, so the canonical spelling comes out for each.
	sorted := store.SortByTime([]string{"2023-01-01T09", "2023-01-01T8"})
	assert.Equal([]string{"2023-01-01T08", "2023-01-01T09"}, sorted)
}

func TestPrune(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	dir := t.TempDir()
	writeFiles(t, dir, []string{"2023-11-01", "2023-11-02", "2023-11-03", "2023-11-04", "2023-11-05"})

	store := retention.New(dir, dayFormat, 3)
	store.Prune()

	// diff = 5-3 = 2, and the boundary is inclusive: 3 files go.
	assert.ElementsMatch([]string{"2023-11-04", "2023-11-05"}, listDir(t, dir))
}

func TestPruneUnderLimit(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	dir := t.TempDir()
	writeFiles(t, dir, []string{"2023-11-01", "2023-11-02"})

	store := retention.New(dir, dayFormat, 3)
	store.Prune()

	assert.ElementsMatch([]string{"2023-11-01", "2023-11-02"}, listDir(t, dir))
}

func TestPruneAtLimit(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	dir := t.TempDir()
	writeFiles(t, dir, []string{"2023-11-01", "2023-11-02", "2023-11-03"})

	store := retention.New(dir, dayFormat, 3)
	store.Prune()

	// diff = 0 is still inside the inclusive boundary: the oldest file
	// goes, making room for the one about to be created.
	assert.ElementsMatch([]string{"2023-11-02", "2023-11-03"}, listDir(t, dir))
}

func TestPruneKeepNothing(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	dir := t.TempDir()
	writeFiles(t, dir, []string{"2023-11-01", "2023-11-02"})

	store := retention.New(dir, dayFormat, 0)
	store.Prune()

	assert.Empty(listDir(t, dir))
}

func TestPruneEmptyDir(t *testing.T) {
	t.Parallel()

	store := retention.New(t.TempDir(), dayFormat, 0)
	store.Prune() // nothing listed, nothing pruned, nothing panicked.

	missing := retention.New(filepath.Join(t.TempDir(), "gone"), dayFormat, 0)
	missing.Prune()
}

// Make fake directory entries with dated names.
func testFakeEntries(mockCtrl *gomock.Controller, names []string) []os.DirEntry {
	entries := make([]os.DirEntry, len(names))

	for idx, name := range names {
		fake := mocks.NewMockDirEntry(mockCtrl)
		fake.EXPECT().IsDir().Return(false)
		fake.EXPECT().Name().Return(name)
		entries[idx] = fake
	}

	return entries
}

func TestPruneMocked(t *testing.T) {
	t.Parallel()

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	mockFiler := mocks.NewMockFiler(mockCtrl)
	names := []string{"2023-11-03", "2023-11-01", "2023-11-02", "2023-11-04"}
	store := &retention.Store{
		Filer:       mockFiler,
		Dir:         filepath.Join("/", "var", "log", "app"),
		Format:      dayFormat,
		BackupCount: 2,
	}

	mockFiler.EXPECT().ReadDir(store.Dir).Return(testFakeEntries(mockCtrl, names), nil)

	// 4 files, keep 2: diff+1 = 3 oldest are removed, in time order.
	gomock.InOrder(
		mockFiler.EXPECT().Remove(filepath.Join(store.Dir, "2023-11-01")),
		mockFiler.EXPECT().Remove(filepath.Join(store.Dir, "2023-11-02")),
		mockFiler.EXPECT().Remove(filepath.Join(store.Dir, "2023-11-03")),
	)

	store.Prune()
}
