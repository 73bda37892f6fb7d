// Package observability defines the minimal structured logging surface
// the library emits through. Library code takes a Logger and defaults to
// NopLogger; applications plug in their own or use NewStdLogger.
package observability

import (
	"fmt"
	"log"
	"strings"
)

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type Field interface {
	Key() string
	Value() interface{}
}

type stringField struct{ key, val string }

func (f stringField) Key() string        { return f.key }
func (f stringField) Value() interface{} { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string        { return f.key }
func (f intField) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

func String(key, value string) Field  { return stringField{key, value} }
func Int(key string, value int) Field { return intField{key, value} }
func Error(key string, err error) Field {
	return errorField{key, err}
}

type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// stdLogger writes through the standard library logger, one line per
// event with key=value fields appended.
type stdLogger struct {
	l     *log.Logger
	bound []Field
	debug bool
}

// NewStdLogger returns a Logger backed by l. Debug events are dropped
// unless debug is set.
func NewStdLogger(l *log.Logger, debug bool) Logger {
	return &stdLogger{l: l, debug: debug}
}

func (s *stdLogger) emit(level, msg string, fields []Field) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteString(" ")
	b.WriteString(msg)
	for _, f := range append(s.bound, fields...) {
		fmt.Fprintf(&b, " %s=%v", f.Key(), f.Value())
	}
	s.l.Println(b.String())
}

func (s *stdLogger) Debug(msg string, fields ...Field) {
	if s.debug {
		s.emit("DEBUG", msg, fields)
	}
}
func (s *stdLogger) Info(msg string, fields ...Field)  { s.emit("INFO", msg, fields) }
func (s *stdLogger) Warn(msg string, fields ...Field)  { s.emit("WARN", msg, fields) }
func (s *stdLogger) Error(msg string, fields ...Field) { s.emit("ERROR", msg, fields) }

func (s *stdLogger) With(fields ...Field) Logger {
	bound := make([]Field, 0, len(s.bound)+len(fields))
	bound = append(bound, s.bound...)
	bound = append(bound, fields...)
	return &stdLogger{l: s.l, bound: bound, debug: s.debug}
}
