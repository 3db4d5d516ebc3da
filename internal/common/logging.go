package common

import (
	"log"
	"os"
)

// Logger is the narrow logging surface every package in this module depends
// on, so production code can wire a rotating file logger (see cmd/tapvalidated)
// while tests use a discarding or buffering stand-in.
type Logger interface {
	Printf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// StdLogger adapts a *log.Logger to the Logger interface, tagging every
// error line so it stands out in an otherwise quiet validation log.
type StdLogger struct {
	l *log.Logger
}

// NewStdLogger wraps l.
func NewStdLogger(l *log.Logger) *StdLogger {
	return &StdLogger{l: l}
}

// NewDefaultLogger returns a StdLogger writing to stderr, matching the
// format the bundled CLI and daemon use before any rotating file sink is
// attached.
func NewDefaultLogger() *StdLogger {
	return NewStdLogger(log.New(os.Stderr, "[tapgate] ", log.LstdFlags|log.Lmicroseconds))
}

func (s *StdLogger) Printf(format string, args ...interface{}) {
	s.l.Printf(format, args...)
}

func (s *StdLogger) Errorf(format string, args ...interface{}) {
	s.l.Printf("ERROR "+format, args...)
}

// NopLogger discards everything written to it.
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}
func (NopLogger) Errorf(string, ...interface{}) {}
