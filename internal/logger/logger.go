package logger

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// maxLines is how many recent lines Lines keeps for the on-screen log panel.
const maxLines = 200

// Options configures New.
type Options struct {
	Level slog.Level
	// File, when set, receives the log through a rotating writer in addition to stderr.
	File string
	// Console defaults to os.Stderr.
	Console io.Writer
}

// Logger stores recent log lines in memory and forwards every line to the console and,
// optionally, to a rotated log file.
type Logger struct {
	mu      sync.Mutex
	lines   []string
	partial []byte
	out     io.Writer
	file    *lumberjack.Logger
}

// New returns a Logger and the slog.Logger writing through it.
func New(opts Options) (*Logger, *slog.Logger) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	l := &Logger{lines: make([]string, 0), out: console}
	if opts.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    20, // megabytes
			MaxBackups: 3,
		}
		l.out = io.MultiWriter(console, l.file)
	}
	h := slog.NewTextHandler(l, &slog.HandlerOptions{Level: opts.Level})
	return l, slog.New(h)
}

// Write implements io.Writer. Complete lines are kept for Lines; a trailing partial line waits for its newline.
func (l *Logger) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	buf := append(l.partial, p...)
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		l.lines = append(l.lines, strings.TrimRight(string(buf[:i]), "\r"))
		buf = buf[i+1:]
	}
	if n := len(l.lines) - maxLines; n > 0 {
		l.lines = append(l.lines[:0], l.lines[n:]...)
	}
	l.partial = append(l.partial[:0], buf...)
	return l.out.Write(p)
}

// Lines returns a copy of the most recent complete lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
