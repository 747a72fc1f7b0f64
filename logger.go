package daterr

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	timefmt "github.com/itchyny/timefmt-go"

	"golift.io/daterr/filer"
	"golift.io/daterr/retention"
)

// These are the default directory and log file POSIX modes.
const (
	FileMode os.FileMode = 0o600
	DirMode  os.FileMode = 0o750
)

// Defaults used when the matching Config members are omitted.
const (
	// DefaultTimeFormat maps one point in time to one calendar day.
	DefaultTimeFormat = "%Y-%m-%d"
	// DefaultBackupCount is how many dated files are kept around.
	DefaultBackupCount = 14
)

// Custom errors returned by this package.
var (
	ErrBadBackupCount = errors.New("backup count must not be negative")
	ErrClosed         = errors.New("write to closed logger")
)

// Config is the data needed to create a new date-rotating Logger.
type Config struct {
	Directory   string      // Folder holding the dated log files. Set this, the default is lousy.
	TimeFormat  string      // strftime pattern mapping a point in time to a file name.
	BackupCount int         // Number of dated files kept around. 0 means DefaultBackupCount.
	MinLevel    Level       // Records below this severity never touch a file. Default: INFO.
	FileMode    os.FileMode // POSIX mode for new files.
	DirMode     os.FileMode // POSIX mode for new folders.
	// OnError is called when a record cannot be written. The record is
	// dropped, never retried. Default: one line on stderr.
	OnError func(Record, error)
	// Clock is the time source used when a Record carries no time of its
	// own. Leave nil outside of tests.
	Clock func() time.Time
	// Filer overrides file system procedures. Setting this is very optional.
	Filer filer.Filer
}

// Record is one formatted log line on its way into the active file.
type Record struct {
	Time    time.Time // When the record happened. Zero means now.
	Level   Level     // Severity, checked against Config.MinLevel.
	Message string    // The rendered message, without trailing newline.
}

// Logger owns the active log file for a directory of dated files. Obtain
// one from New or NewMust. It may be shared by any number of goroutines;
// the file itself may be shared by any number of processes.
type Logger struct {
	config *Config
	store  *retention.Store
	filer.Filer

	mu     sync.Mutex // covers the rollover decision AND the write, as one region.
	file   *os.File   // the active open file.
	path   string     // full path of the active open file.
	closed bool
}

// New takes in your configuration and returns a Logger. The directory is
// created if missing and the current bucket's file is opened immediately.
func New(config *Config) (*Logger, error) {
	logger := &Logger{config: config}
	if err := logger.setConfigDefaults(); err != nil {
		return nil, err
	}

	logger.mu.Lock()
	defer logger.mu.Unlock()

	if err := logger.openLog(logger.fileName(logger.now())); err != nil {
		return nil, err
	}

	return logger, nil
}

// NewMust is New for the set-and-forget crowd. A file that cannot be opened
// now is retried on the next record; only a broken Config (negative backup
// count) panics, since that is a programming error and not an IO problem.
func NewMust(config *Config) *Logger {
	logger := &Logger{config: config}
	if err := logger.setConfigDefaults(); err != nil {
		panic(err)
	}

	logger.mu.Lock()
	defer logger.mu.Unlock()

	if err := logger.openLog(logger.fileName(logger.now())); err != nil {
		logger.config.OnError(Record{}, err)
	}

	return logger
}

// setConfigDefaults does exactly what it says. Sets missing values.
func (l *Logger) setConfigDefaults() error {
	if l.config.BackupCount < 0 {
		return fmt.Errorf("%w: %d", ErrBadBackupCount, l.config.BackupCount)
	}

	if l.config.BackupCount == 0 {
		l.config.BackupCount = DefaultBackupCount
	}

	if l.config.Directory == "" {
		l.config.Directory = filepath.Join(os.TempDir(), filepath.Base(os.Args[0])+"-daterr")
	}

	if l.config.TimeFormat == "" {
		l.config.TimeFormat = DefaultTimeFormat
	}

	if l.config.FileMode == 0 {
		l.config.FileMode = FileMode
	}

	if l.config.DirMode == 0 {
		l.config.DirMode = DirMode
	}

	if l.config.Clock == nil {
		l.config.Clock = time.Now
	}

	if l.config.OnError == nil {
		l.config.OnError = reportToStderr
	}

	if l.config.Filer == nil {
		l.config.Filer = filer.Default()
	}

	l.Filer = l.config.Filer

	// A pattern that cannot round-trip a file name back into a time stamp
	// would break sorting and retention, so it falls back to the default.
	rendered := timefmt.Format(l.config.Clock(), l.config.TimeFormat)
	if _, err := timefmt.Parse(rendered, l.config.TimeFormat); err != nil {
		l.config.TimeFormat = DefaultTimeFormat
	}

	l.store = &retention.Store{
		Filer:       l.config.Filer,
		Dir:         l.config.Directory,
		Format:      l.config.TimeFormat,
		BackupCount: l.config.BackupCount,
		DirMode:     l.config.DirMode,
	}

	return nil
}

// Emit writes one record to the file its time stamp maps to, rotating and
// pruning first when the bucket changed. Failures never reach the caller:
// the record is dropped and handed to the OnError hook. This is the surface
// a log dispatcher calls, possibly from many goroutines at once.
func (l *Logger) Emit(record Record) {
	if record.Level < l.config.MinLevel {
		return
	}

	if record.Time.IsZero() {
		record.Time = l.now()
	}

	if err := l.emit(record.Time, []byte(record.Message)); err != nil {
		l.config.OnError(record, err)
	}
}

// Write sends a pre-formatted log line to the current bucket's file. This
// satisfies io.Writer so the Logger plugs straight into log.SetOutput().
// Unlike Emit it returns errors and applies no level filter: whatever
// dispatched the write already decided it should happen.
func (l *Logger) Write(b []byte) (int, error) {
	if err := l.emit(l.now(), bytes.TrimSuffix(b, []byte("\n"))); err != nil {
		return 0, err
	}

	return len(b), nil
}

// emit is the whole rotation state machine for one record. The mutex spans
// the file-name decision, the prune, the rollover and the write, so a
// concurrent rollover can never swap the handle out from under a write.
// The advisory lock inside write covers only the OS-level append; that is
// the cross-process contract and cannot protect our in-memory state.
func (l *Logger) emit(when time.Time, msg []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}

	name := l.fileName(when)

	// Absent-on-disk rather than differs-from-active: an external delete of
	// the current bucket's file also lands here, so retention runs again
	// before the file is recreated.
	exists := l.store.FileExists(name)
	if !exists {
		l.store.Prune()
	}

	// Re-open when the bucket changed, but also when our file vanished from
	// under us; writing on would fill an unlinked inode nobody can read.
	if name != l.path || l.file == nil || !exists {
		if err := l.rollover(name); err != nil {
			return err
		}
	}

	return l.write(msg)
}

// rollover closes the active handle and opens the file for the new bucket.
// The superseded file stays on disk; only retention.Prune deletes anything.
func (l *Logger) rollover(name string) error {
	if err := l.closeFile(); err != nil {
		return err
	}

	return l.openLog(name)
}

// openLog opens the named log file: created if absent, appended to if not.
// The directory is re-made first; together with O_CREATE that makes an
// external delete-then-recreate of our files and folders benign.
func (l *Logger) openLog(name string) error {
	l.store.EnsureDir()

	file, err := l.OpenFile(name, os.O_WRONLY|os.O_APPEND|os.O_CREATE, l.config.FileMode)
	if err != nil {
		return fmt.Errorf("error with new logfile: %w", err)
	}

	l.file = file
	l.path = name

	return nil
}

// write appends one line to the active file while holding the exclusive
// advisory lock. The lock blocks until acquired and has no timeout: a
// crashed holder wedges all writers, which is accepted as an OS-level risk.
func (l *Logger) write(msg []byte) error {
	if err := l.Lock(l.file); err != nil {
		return fmt.Errorf("locking log file: %w", err)
	}
	defer func() {
		_ = l.Unlock(l.file)
	}()

	line := make([]byte, 0, len(msg)+1)
	line = append(line, msg...)
	line = append(line, '\n')

	if _, err := l.file.Write(line); err != nil {
		return fmt.Errorf("error writing log msg: %w", err)
	}

	return nil
}

// fileName is a pure function of the clock and the configured pattern: the
// same bucket always maps to the same path.
func (l *Logger) fileName(when time.Time) string {
	return filepath.Join(l.config.Directory, timefmt.Format(when, l.config.TimeFormat))
}

func (l *Logger) now() time.Time {
	return l.config.Clock()
}

// Path returns the full path of the active log file.
func (l *Logger) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.path
}

// Close releases the active file handle. Writes after Close return (or
// report) ErrClosed.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true

	return l.closeFile()
}

// closeFile closes the active log file, if one is open.
func (l *Logger) closeFile() error {
	if l.file == nil {
		return nil
	}

	err := l.file.Close()
	l.file = nil

	if err != nil {
		return fmt.Errorf("closing log file %s: %w", l.path, err)
	}

	return nil
}

// reportToStderr is the default OnError hook: one line on stderr, and the
// record is gone. Logging infrastructure must never crash the application.
func reportToStderr(record Record, err error) {
	fmt.Fprintf(os.Stderr, "daterr: dropping %s record: %v\n", LevelName(record.Level), err)
}

// Our Logger must satisfy an io.WriteCloser.
var _ io.WriteCloser = (*Logger)(nil)
