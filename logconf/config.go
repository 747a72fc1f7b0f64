// Package logconf assembles ready-to-use slog loggers around daterr's
// rotating file sink from one small, typed configuration. Applications that
// just want "console plus dated files" point this at a directory (or a
// YAML file) and get a *slog.Logger back, without wiring the pieces
// themselves.
package logconf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"golift.io/daterr"
)

// ErrNoDirectory is returned by Build when the Config names no directory.
var ErrNoDirectory = errors.New("log config requires a directory")

// Config describes one application logger.
type Config struct {
	Directory   string `yaml:"directory"`    // Where the dated files live. Required.
	TimeFormat  string `yaml:"time_format"`  // strftime pattern. Default: %Y-%m-%d.
	BackupCount int    `yaml:"backup_count"` // Dated files kept. Default: 14.
	Level       string `yaml:"level"`        // DEBUG, INFO, WARNING, ERROR or CRITICAL.
	Console     bool   `yaml:"console"`      // Also copy records to stdout.
	Service     string `yaml:"service"`      // Optional attr stamped on every record.
}

// Load parses a YAML document into a Config.
func Load(data []byte) (*Config, error) {
	config := &Config{}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing log config: %w", err)
	}

	return config, nil
}

// LoadFile reads a YAML file and parses it into a Config.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading log config: %w", err)
	}

	return Load(data)
}

// Build validates the Config and assembles the logger. The returned closer
// owns the rotating file; close it when the application exits.
func (c *Config) Build() (*slog.Logger, io.Closer, error) {
	if c.Directory == "" {
		return nil, nil, ErrNoDirectory
	}

	level, err := daterr.ParseLevel(c.Level)
	if err != nil {
		return nil, nil, err
	}

	sink, err := daterr.New(&daterr.Config{
		Directory:   c.Directory,
		TimeFormat:  c.TimeFormat,
		BackupCount: c.BackupCount,
		MinLevel:    level,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("opening log directory: %w", err)
	}

	var handler slog.Handler = daterr.NewHandler(sink)
	if c.Console {
		handler = fanout{handler, slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})}
	}

	logger := slog.New(handler)
	if c.Service != "" {
		logger = logger.With("service", c.Service)
	}

	return logger, sink, nil
}
