// Package daterr is a date-bucketed log file sink. Instead of rotating one
// big file when it fills up, it names every file after the time bucket it
// belongs to (one file per day by default) and switches files the moment a
// record lands in a new bucket. Old files are pruned once a retention count
// is exceeded; the sorted list of parseable file names IS the index - there
// is no manifest, no extension, no subdirectory.
//
// The Logger returned by New() is an io.WriteCloser that works with
// log.SetOutput(), and NewHandler() adapts it into a log/slog handler. The
// retention package does the listing, sorting, and pruning; the filer
// package is the overridable (and mockable) file system boundary.
//
// File names use strftime patterns ("%Y-%m-%d" by default) so a name always
// parses back into the time stamp that produced it. Because the active file
// is a pure function of the clock, rotation is detected on every write - no
// timers, no background goroutines. The flip side: if no records arrive
// while a bucket boundary passes, the first records afterwards land in the
// new bucket rather than the old one. At date granularity this is harmless,
// but it is a property of the design, not an accident.
//
// Writes to the active file are serialized across processes with an
// exclusive advisory file lock, so several programs can share one log
// directory. Failures inside the sink never crash the host application:
// the record is dropped and reported through the Config.OnError hook.
package daterr
