package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	DEBUG = "DEBUG"
	INFO  = "INFO"
	WARN  = "WARN"
	ERROR = "ERROR"
)

// Logger is the structured logger used by the loader and resolvers
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	IsDebugEnabled() bool
}

type slogger struct {
	logger *slog.Logger
	level  slog.Level
}

// New creates a structured logger using the JSON Handler, dest defaults to stderr.
func New(level string, dest io.Writer) Logger {
	if dest == nil {
		dest = os.Stderr
	}
	logLevel := Level(level)
	handler := slog.NewJSONHandler(dest, &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Rename the time key to "timestamp"
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
			}
			return a
		},
	})
	return &slogger{logger: slog.New(handler).With("component", "tagmeta"), level: logLevel}
}

// Level maps a level name to slog level, info is used for unknown names
func Level(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	}
	return slog.LevelInfo
}

func (s *slogger) IsDebugEnabled() bool {
	return s.level <= slog.LevelDebug
}

func (s *slogger) Debug(msg string, args ...any) {
	s.logger.Debug(msg, args...)
}

func (s *slogger) Info(msg string, args ...any) {
	s.logger.Info(msg, args...)
}

func (s *slogger) Warn(msg string, args ...any) {
	s.logger.Warn(msg, args...)
}

func (s *slogger) Error(msg string, args ...any) {
	s.logger.Error(msg, args...)
}

type nop struct{}

// Nop returns a logger discarding all messages
func Nop() Logger {
	return nop{}
}

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}
func (nop) IsDebugEnabled() bool { return false }
