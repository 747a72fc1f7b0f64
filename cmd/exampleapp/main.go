// Package main is a simple example app to write logs and watch date-based
// rotation and retention in action.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"golift.io/daterr"
	"golift.io/daterr/logconf"
)

// ///////////////////////////////////////////////////////////////////////// //

/* This is a simple example app to write logs and watch rotation happen. */

// Usage, standard library logger with per-minute buckets:
//   go run ./cmd/exampleapp std
//
// Usage, slog built from a logconf config, echoing to the console:
//   go run ./cmd/exampleapp slog

const (
	logDirectory    = "/tmp/daterr-example"
	minuteFormat    = "%Y-%m-%dT%H-%M" // per-minute buckets; rotation you can watch.
	timeBetweenLogs = 250 * time.Millisecond
	fileCount       = 5
)

// ///////////////////////////////////////////////////////////////////////// //

func main() {
	switch {
	case isArg("std"):
		stdLogs()
	case isArg("slog"):
		slogLogs()
	default:
		fmt.Println("pass test arg: std or slog")
		os.Exit(1)
	}
}

// stdLogs wires the sink into the standard library logger.
func stdLogs() {
	logger := daterr.NewMust(&daterr.Config{
		Directory:   logDirectory,
		TimeFormat:  minuteFormat,
		BackupCount: fileCount,
	})
	defer logger.Close()

	log.SetFlags(log.LstdFlags)
	log.SetOutput(logger)

	makeLogs(func(line string) {
		if err := log.Output(0, line); err != nil {
			panic(err)
		}
	})
}

// slogLogs builds a console+file slog logger from a logconf Config.
func slogLogs() {
	logger, closer, err := (&logconf.Config{
		Directory:   logDirectory,
		TimeFormat:  minuteFormat,
		BackupCount: fileCount,
		Level:       "DEBUG",
		Console:     true,
		Service:     "exampleapp",
	}).Build()
	if err != nil {
		panic(err)
	}
	defer closer.Close()

	count := 0

	makeLogs(func(line string) {
		count++
		logger.Info(line, "count", count)
	})
}

// Write fake logs! Watch the directory while it runs: a new file appears
// every minute and the oldest disappear once fileCount is exceeded.
func makeLogs(write func(string)) {
	ticker := time.NewTicker(timeBetweenLogs)
	for range ticker.C {
		fmt.Print(".")
		write("a log line to fill up the current bucket")
	}
}

// seems easy, but flag is better.
func isArg(arg string) bool {
	for _, a := range os.Args {
		if strings.EqualFold(a, arg) {
			return true
		}
	}

	return false
}
