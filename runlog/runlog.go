// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package runlog implements the log of a command run.
//
// Messages are written to a terminal
// (usually the standard error)
// as structured text.
// Warnings and notes can be mirrored
// into a metadata file
// stored along the output of the command.
package runlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// MetadataSuffix is the suffix of a metadata file name.
const MetadataSuffix = "_metadata.txt"

// MetadataName returns the name of the metadata file
// of an output file.
func MetadataName(output string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + MetadataSuffix
}

// A Logger is the log of a run.
type Logger struct {
	term *slog.Logger
	meta *slog.Logger
	f    *os.File
}

// New returns a new logger
// that writes to w.
// If verbose is true,
// progress (info) messages are written,
// otherwise only warnings and errors are written.
func New(w io.Writer, verbose bool) *Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: dropTime,
	})
	return &Logger{term: slog.New(h)}
}

func dropTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.Attr{}
	}
	return a
}

// Metadata opens a metadata file,
// with the indicated title.
// Any previous metadata file is closed.
func (l *Logger) Metadata(name, title string) error {
	if err := l.Close(); err != nil {
		return err
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "# %s\n", title); err != nil {
		f.Close()
		return fmt.Errorf("on file %q: %v", name, err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		ReplaceAttr: dropTime,
	})
	l.f = f
	l.meta = slog.New(h)
	return nil
}

// Info writes a progress message.
func (l *Logger) Info(msg string, args ...any) {
	l.term.Info(msg, args...)
}

// Warn writes a warning,
// that is also stored in the metadata file.
func (l *Logger) Warn(msg string, args ...any) {
	l.term.Warn(msg, args...)
	if l.meta != nil {
		l.meta.Warn(msg, args...)
	}
}

// Note writes a progress message
// that is also stored in the metadata file.
func (l *Logger) Note(msg string, args ...any) {
	l.term.Info(msg, args...)
	if l.meta != nil {
		l.meta.Info(msg, args...)
	}
}

// Close closes the metadata file.
func (l *Logger) Close() error {
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	l.meta = nil
	return err
}
