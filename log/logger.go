// Package log provides the engine's logger: a small wrapper around the
// standard library's log.Logger with level filtering and a Severe/Critical
// assertion pair, in the shape the teacher repo uses throughout its own
// modules (build.DEBUG gating, a Critical call that panics).
package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/therewillbecode/Fae-1/build"
)

// Level controls which of Debugln's calls actually reach the writer.
type Level int

const (
	// LevelNormal logs Println/Printf/Severe/Critical but discards Debugln.
	LevelNormal Level = iota
	// LevelVerbose logs everything, including Debugln.
	LevelVerbose
)

// Logger wraps a standard library logger with level filtering and the
// Severe/Critical assertion pair every orchestration step in engine/ calls
// through (spec: "dispatchInput, injectReward, runBody, checkClosure,
// commit logs at Debug/Info").
type Logger struct {
	*log.Logger
	closer io.Closer
	level  Level
}

// New wraps w as a Logger at the given level, writing a startup line
// immediately (mirrors the teacher's file logger startup/shutdown framing).
func New(w io.Writer, level Level, prefix string) *Logger {
	l := &Logger{
		Logger: log.New(w, prefix, log.Ldate|log.Ltime|log.Lmicroseconds),
		level:  level,
	}
	l.Println("STARTUP: Fae engine logger started at", time.Now().Format(time.RFC3339))
	return l
}

// NewFileLogger opens (creating if necessary) filename and returns a Logger
// writing to it, at LevelVerbose if verbose is true.
func NewFileLogger(filename string, verbose bool) (*Logger, error) {
	f, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("log: opening %s: %w", filename, err)
	}
	level := LevelNormal
	if verbose {
		level = LevelVerbose
	}
	l := New(f, level, "")
	l.closer = f
	return l, nil
}

// Debugln logs args only when the logger is at LevelVerbose.
func (l *Logger) Debugln(args ...interface{}) {
	if l.level < LevelVerbose {
		return
	}
	l.Println(args...)
}

// Severe logs args as a SEVERE-prefixed line. Unlike Critical it panics only
// when build.DEBUG is set: it marks an invariant violation worth surfacing,
// which crashes a debug build but leaves a non-debug build running.
func (l *Logger) Severe(args ...interface{}) {
	l.Println(append([]interface{}{"SEVERE:"}, args...)...)
	if build.DEBUG {
		panic(fmt.Sprintln(args...))
	}
}

// Critical logs args as a CRITICAL-prefixed line and always panics: an
// invariant the engine depends on for correctness (not just debug-build
// strictness) has been violated.
func (l *Logger) Critical(args ...interface{}) {
	l.Println(append([]interface{}{"CRITICAL:"}, args...)...)
	panic(fmt.Sprintln(args...))
}

// Close writes a shutdown line and closes the underlying writer, if any.
func (l *Logger) Close() error {
	l.Println("SHUTDOWN: Fae engine logger stopped at", time.Now().Format(time.RFC3339))
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
