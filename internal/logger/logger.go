// Copyright (c) 2024, Intel Corporation.
// SPDX-License-Identifier: BSD-3-Clause

// Package logger is the leveled logger used by the commands.
package logger

import (
	"io"
	"log"
)

type Logger interface {
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
	Debugf(format string, v ...any)
}

type stdLogger struct {
	l     *log.Logger
	debug bool
}

// New returns a Logger writing through the standard log package.
// Debug messages are dropped unless debug is set.
func New(debug bool) Logger {
	return &stdLogger{l: log.Default(), debug: debug}
}

// NewWithWriter is like New but writes to w with the given log flags.
func NewWithWriter(w io.Writer, flags int, debug bool) Logger {
	return &stdLogger{l: log.New(w, "", flags), debug: debug}
}

func (s *stdLogger) Infof(format string, v ...any)  { s.l.Printf("[INFO] "+format, v...) }
func (s *stdLogger) Errorf(format string, v ...any) { s.l.Printf("[ERROR] "+format, v...) }

func (s *stdLogger) Debugf(format string, v ...any) {
	if s.debug {
		s.l.Printf("[DEBUG] "+format, v...)
	}
}
