// Package logger is the console logger shared by the CLI and the HTTP
// server: leveled, color-aware when stdout is a terminal, with quiet and
// verbose modes toggled from flags.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelSuccess
	levelWarn
	levelError
)

var levelTags = map[level]struct {
	tag   string
	color string
}{
	levelDebug:   {"DEBUG", "\033[90m"},
	levelInfo:    {"INFO", "\033[34m"},
	levelSuccess: {"OK", "\033[32m"},
	levelWarn:    {"WARN", "\033[33m"},
	levelError:   {"ERROR", "\033[31m"},
}

const resetColor = "\033[0m"

type consoleLogger struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	verbose bool
	quiet   bool
	isTTY   bool
}

var (
	std  *consoleLogger
	once sync.Once
)

func get() *consoleLogger {
	once.Do(func() {
		std = &consoleLogger{
			out:    os.Stdout,
			errOut: os.Stderr,
			isTTY:  term.IsTerminal(int(os.Stdout.Fd())),
		}
	})
	return std
}

func (l *consoleLogger) log(lv level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lv == levelDebug && !l.verbose {
		return
	}
	if l.quiet && lv != levelError {
		return
	}

	out := l.out
	if lv == levelError {
		out = l.errOut
	}

	tag := levelTags[lv].tag
	msg := fmt.Sprintf(format, args...)
	if lv == levelDebug {
		msg = fmt.Sprintf("[%s] %s", time.Now().Format("2006-01-02 15:04:05.000"), msg)
	}

	if l.isTTY {
		fmt.Fprintf(out, "%s%s %s%s\n", levelTags[lv].color, tag, msg, resetColor)
	} else {
		fmt.Fprintf(out, "%s %s\n", tag, msg)
	}
}

// SetOutput redirects non-error output, mainly for tests.
func SetOutput(out io.Writer) {
	l := get()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = out
}

func SetVerbose(enabled bool) {
	l := get()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = enabled
}

func IsVerbose() bool {
	l := get()
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.verbose
}

func SetQuiet(enabled bool) {
	l := get()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quiet = enabled
}

func Debug(format string, args ...any)   { get().log(levelDebug, format, args...) }
func Info(format string, args ...any)    { get().log(levelInfo, format, args...) }
func Success(format string, args ...any) { get().log(levelSuccess, format, args...) }
func Warn(format string, args ...any)    { get().log(levelWarn, format, args...) }
func Error(format string, args ...any)   { get().log(levelError, format, args...) }
