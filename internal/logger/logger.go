// Package logger provides leveled diagnostic logging for the tenantrouter CLI.
//
// Log lines go to stderr so they never mix with the JSON and glyph output
// the commands print on stdout. The package keeps a small printf-style API
// over a zap core with a console encoder:
//
//	logger.Init(verbose)                 // verbose=true enables Debug
//	logger.Debug("probing port %d", p)
//	logger.WarnFields("sidecar skipped", map[string]interface{}{"domain": d})
//
// Lines look like:
//
//	2026-10-19 10:30:45 [DEBUG] probing port 6001
//	2026-10-19 10:30:45 [WARN] sidecar skipped {"domain": "t1.cyzor.local"}
//
// By default only Warn and Error are shown.
package logger

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents a logging severity level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// Logger wraps a zap logger whose output and level can be swapped at runtime.
type Logger struct {
	mu     sync.Mutex
	atom   zap.AtomicLevel
	output io.Writer
	sugar  *zap.SugaredLogger
}

var std = newLogger(os.Stderr, LevelWarn)

func newLogger(w io.Writer, level Level) *Logger {
	l := &Logger{
		atom:   zap.NewAtomicLevelAt(level.zapLevel()),
		output: w,
	}
	l.build()
	return l
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeLevel:      bracketLevelEncoder,
		ConsoleSeparator: " ",
	}
}

func bracketLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}

// build must be called with mu held (or before l is shared).
func (l *Logger) build() {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.Lock(zapcore.AddSync(l.output)),
		l.atom,
	)
	l.sugar = zap.New(core).Sugar()
}

// Init initializes the global logger with the specified verbosity.
func Init(verbose bool) {
	if verbose {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelWarn)
	}
}

// SetLevel sets the minimum log level for the global logger.
func SetLevel(level Level) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.atom.SetLevel(level.zapLevel())
}

// SetOutput sets the output destination for the global logger.
// A nil writer restores os.Stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	std.mu.Lock()
	defer std.mu.Unlock()
	std.output = w
	std.build()
}

func (l *Logger) current() *zap.SugaredLogger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sugar
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	s := l.current()
	msg := fmt.Sprintf(format, args...)
	switch level {
	case LevelDebug:
		s.Debug(msg)
	case LevelInfo:
		s.Info(msg)
	case LevelWarn:
		s.Warn(msg)
	default:
		s.Error(msg)
	}
}

func (l *Logger) logFields(level Level, msg string, fields map[string]interface{}) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]interface{}, 0, len(keys)*2)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}

	s := l.current()
	switch level {
	case LevelDebug:
		s.Debugw(msg, kv...)
	case LevelInfo:
		s.Infow(msg, kv...)
	case LevelWarn:
		s.Warnw(msg, kv...)
	default:
		s.Errorw(msg, kv...)
	}
}

// Debug logs a debug message.
func Debug(format string, args ...interface{}) {
	std.log(LevelDebug, format, args...)
}

// Info logs an informational message.
func Info(format string, args ...interface{}) {
	std.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	std.log(LevelWarn, format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	std.log(LevelError, format, args...)
}

// DebugFields logs a debug message with structured fields.
func DebugFields(msg string, fields map[string]interface{}) {
	std.logFields(LevelDebug, msg, fields)
}

// InfoFields logs an informational message with structured fields.
func InfoFields(msg string, fields map[string]interface{}) {
	std.logFields(LevelInfo, msg, fields)
}

// WarnFields logs a warning message with structured fields.
func WarnFields(msg string, fields map[string]interface{}) {
	std.logFields(LevelWarn, msg, fields)
}

// ErrorFields logs an error message with structured fields.
func ErrorFields(msg string, fields map[string]interface{}) {
	std.logFields(LevelError, msg, fields)
}

// LogError logs err with a context message. A nil err is ignored.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	std.log(LevelError, "%s: %v", msg, err)
}
