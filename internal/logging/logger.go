// Package logging builds the application's zerolog logger.
package logging

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 30

	// LogFilename is the rotated log file inside Config.Dir.
	LogFilename = "scopeview.log"
)

// Config defines how the logger is created.
// Production leaves Writer nil and sets Dir; tests pass an in-memory Writer.
type Config struct {
	Writer io.Writer
	Dir    string
	Level  string
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	name = strings.TrimSpace(name)
	if name == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// New creates a logger writing to cfg.Writer, or to a rotating file in cfg.Dir
// on fs when no writer is given.
func New(fs afero.Fs, cfg Config) (zerolog.Logger, error) {
	writer := cfg.Writer
	if writer == nil {
		if fs == nil {
			return zerolog.Nop(), errors.New("filesystem required when no writer provided")
		}
		if cfg.Dir == "" {
			return zerolog.Nop(), errors.New("log directory required when no writer provided")
		}
		if err := fs.MkdirAll(cfg.Dir, 0o750); err != nil {
			return zerolog.Nop(), fmt.Errorf("failed to create log directory %s: %w", cfg.Dir, err)
		}
		writer = &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, LogFilename),
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
		}
	}

	return zerolog.New(writer).With().
		Timestamp().
		Str("app", "scopeview").
		Logger().
		Level(ParseLevel(cfg.Level)), nil
}
