package calculation

import (
	"log"
	"os"
)

// Logger is a minimal logging interface for the calculation engine.
// Implementations should be fast; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger implements Logger with no output.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...any) {}
func (NopLogger) Infof(format string, args ...any)  {}
func (NopLogger) Warnf(format string, args ...any)  {}
func (NopLogger) Errorf(format string, args ...any) {}

// StderrLogger writes timestamped log lines to standard error. The CLI wires
// it in when debug output is requested.
type StderrLogger struct {
	l *log.Logger
}

// NewStderrLogger returns a Logger writing to stderr.
func NewStderrLogger() *StderrLogger {
	return &StderrLogger{l: log.New(os.Stderr, "", log.LstdFlags)}
}

func (s *StderrLogger) Debugf(format string, args ...any) { s.l.Printf("DEBUG "+format, args...) }
func (s *StderrLogger) Infof(format string, args ...any)  { s.l.Printf("INFO "+format, args...) }
func (s *StderrLogger) Warnf(format string, args ...any)  { s.l.Printf("WARN "+format, args...) }
func (s *StderrLogger) Errorf(format string, args ...any) { s.l.Printf("ERROR "+format, args...) }
